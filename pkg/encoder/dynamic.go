package encoder

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-clmform/pkg/infer"
	"github.com/goliatone/go-clmform/pkg/model"
)

// RootElementFor returns the element wrapping dynamic documents for cfg. A
// sample root that is not a usable element name is ignored.
func RootElementFor(cfg model.WorkflowConfiguration) string {
	if root := strings.TrimSpace(cfg.RootElement); root != "" {
		return root
	}
	if root := infer.RootElement(cfg.SampleXML); root != "" && model.ValidateFieldName(root) == nil {
		return root
	}
	return DefaultRootElement
}

// encodeDynamic emits one element per field in schema order. Values are
// written verbatim; missing values produce empty elements.
func encodeDynamic(values Values, cfg model.WorkflowConfiguration) (string, error) {
	root := RootElementFor(cfg)
	if err := model.ValidateFieldName(root); err != nil {
		return "", fmt.Errorf("encoder: root element: %w", err)
	}

	var doc document
	doc.open(root)
	for _, field := range cfg.Fields {
		if err := model.ValidateFieldName(field.Name); err != nil {
			return "", fmt.Errorf("encoder: %w", err)
		}
		doc.element(field.Name, values.String(field.Name))
	}
	doc.close(root)
	return doc.String(), nil
}
