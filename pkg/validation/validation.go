package validation

import (
	"errors"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-clmform/pkg/encoder"
	"github.com/goliatone/go-clmform/pkg/model"
)

var (
	emailPattern  = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// Messages reported for invalid values.
const (
	MessageInvalidEmail    = "Please enter a valid email address"
	MessageInvalidNumber   = "Please enter a whole number"
	MessageInvalidQuantity = "Quantity must be at least 1"
)

var (
	generalRequired = []string{"email", "phone", "productCategory"}
	agentRequired   = []string{
		"agentName",
		"agentRole",
		"agentTelephone",
		"clientRegistrationData",
		"salesSegment",
		"contractDuration",
		"contractRouting",
		"chosenService",
	}
)

// Issue is a single validation failure bound to a field.
type Issue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists the fields that block a submission.
type ValidationError struct {
	Missing []string          `json:"missing,omitempty"`
	Invalid map[string]string `json:"invalid,omitempty"`
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "Please fill in all required fields: "+strings.Join(e.Missing, ", "))
	}
	for _, issue := range e.invalidIssues() {
		parts = append(parts, issue.Message)
	}
	return strings.Join(parts, "; ")
}

// Issues flattens the error into per-field entries, missing fields first.
func (e *ValidationError) Issues() []Issue {
	if e == nil {
		return nil
	}
	issues := make([]Issue, 0, len(e.Missing)+len(e.Invalid))
	for _, name := range e.Missing {
		issues = append(issues, Issue{Field: name, Message: "required"})
	}
	return append(issues, e.invalidIssues()...)
}

func (e *ValidationError) invalidIssues() []Issue {
	keys := make([]string, 0, len(e.Invalid))
	for key := range e.Invalid {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	issues := make([]Issue, 0, len(keys))
	for _, key := range keys {
		issues = append(issues, Issue{Field: key, Message: e.Invalid[key]})
	}
	return issues
}

type collector struct {
	err ValidationError
}

func (c *collector) missing(name string) {
	c.err.Missing = append(c.err.Missing, name)
}

func (c *collector) invalid(name, message string) {
	if c.err.Invalid == nil {
		c.err.Invalid = make(map[string]string)
	}
	c.err.Invalid[name] = message
}

func (c *collector) result() error {
	if len(c.err.Missing) == 0 && len(c.err.Invalid) == 0 {
		return nil
	}
	out := c.err
	return &out
}

// Validator checks values before they are encoded and submitted.
type Validator struct{}

// New returns the default Validator.
func New() Validator { return Validator{} }

// Validate implements the orchestrator validator contract.
func (Validator) Validate(mode encoder.Mode, values encoder.Values) error {
	return Validate(mode, values)
}

// Validate applies the rules of mode to values. It returns nil or a
// *ValidationError.
func Validate(mode encoder.Mode, values encoder.Values) error {
	var c collector
	switch mode.Kind {
	case encoder.KindDynamic:
		validateDynamic(&c, mode.Workflow.Fields, values)
	case encoder.KindLegacyAgent:
		requireAll(&c, agentRequired, values)
		if values.Present("email") {
			checkEmail(&c, "email", values)
		}
	default:
		requireAll(&c, generalRequired, values)
		if values.Present("email") {
			checkEmail(&c, "email", values)
		}
		checkQuantity(&c, values)
	}
	return c.result()
}

func validateDynamic(c *collector, fields []model.FieldSpec, values encoder.Values) {
	for _, field := range fields {
		if !values.Present(field.Name) {
			if field.Required {
				c.missing(field.Name)
			}
			continue
		}
		if err := CheckType(field.Type, values.String(field.Name)); err != nil {
			c.invalid(field.Name, err.Error())
		}
	}
}

// CheckType validates one non-blank value against the format rules of t.
// Types without format rules always pass.
func CheckType(t model.FieldType, value string) error {
	switch t {
	case model.FieldTypeEmail:
		if !emailPattern.MatchString(value) {
			return errors.New(MessageInvalidEmail)
		}
	case model.FieldTypeNumber:
		if !digitsPattern.MatchString(strings.TrimSpace(value)) {
			return errors.New(MessageInvalidNumber)
		}
	}
	return nil
}

func requireAll(c *collector, names []string, values encoder.Values) {
	for _, name := range names {
		if !values.Present(name) {
			c.missing(name)
		}
	}
}

func checkEmail(c *collector, name string, values encoder.Values) {
	if !emailPattern.MatchString(values.String(name)) {
		c.invalid(name, MessageInvalidEmail)
	}
}

func checkQuantity(c *collector, values encoder.Values) {
	if !values.Present("quantity") {
		return
	}
	q, err := strconv.Atoi(strings.TrimSpace(values.String("quantity")))
	if err != nil || q < 1 {
		c.invalid("quantity", MessageInvalidQuantity)
	}
}
