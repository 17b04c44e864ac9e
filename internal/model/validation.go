package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errFieldNameMissing    = errors.New("model: field name is required")
	errWorkflowNameMissing = errors.New("model: workflow name is required")
)

// ValidateFieldName checks that name can be used verbatim as an XML element
// name: ASCII letters, digits and underscores only, not starting with a digit
// and not using the reserved "xml" prefix.
func ValidateFieldName(name string) error {
	if name == "" {
		return errFieldNameMissing
	}
	for i, r := range name {
		switch {
		case isLetter(r), r == '_':
		case isDigit(r):
			if i == 0 {
				return fmt.Errorf("model: field name %q must not start with a digit", name)
			}
		default:
			return fmt.Errorf("model: field name %q contains invalid character %q", name, r)
		}
	}
	if strings.HasPrefix(strings.ToLower(name), "xml") {
		return fmt.Errorf("model: field name %q uses the reserved xml prefix", name)
	}
	return nil
}

// Validate checks the configuration before it is persisted or used to encode.
func (c WorkflowConfiguration) Validate() error {
	if strings.TrimSpace(c.WorkflowName) == "" {
		return errWorkflowNameMissing
	}
	if c.RootElement != "" {
		if err := ValidateFieldName(c.RootElement); err != nil {
			return fmt.Errorf("model: invalid root element: %w", err)
		}
	}
	seen := make(map[string]struct{}, len(c.Fields))
	for i, field := range c.Fields {
		if err := ValidateFieldName(field.Name); err != nil {
			return fmt.Errorf("model: field %d: %w", i, err)
		}
		if _, dup := seen[field.Name]; dup {
			return fmt.Errorf("model: duplicate field name %q", field.Name)
		}
		seen[field.Name] = struct{}{}
		if field.Type != "" && !field.Type.Valid() {
			return fmt.Errorf("model: field %q has unknown type %q", field.Name, field.Type)
		}
	}
	return nil
}
