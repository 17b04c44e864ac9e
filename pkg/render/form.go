package render

import (
	"strings"

	"github.com/goliatone/go-clmform/pkg/model"
)

// Control kinds used by descriptors.
const (
	ControlInput    = "input"
	ControlSelect   = "select"
	ControlTextarea = "textarea"
)

// EmptyOptionLabel is the label of the blank first option of every select.
const EmptyOptionLabel = "Select..."

// OptionDescriptor is one select option.
type OptionDescriptor struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// FieldDescriptor is the renderer-neutral description of one form control.
type FieldDescriptor struct {
	Name        string             `json:"name"`
	Label       string             `json:"label"`
	Control     string             `json:"control"`
	InputType   string             `json:"inputType,omitempty"`
	Placeholder string             `json:"placeholder,omitempty"`
	Value       string             `json:"value,omitempty"`
	Required    bool               `json:"required"`
	Options     []OptionDescriptor `json:"options,omitempty"`
	Errors      []string           `json:"errors,omitempty"`
}

// DisplayLabel returns the label with a trailing " *" for required fields.
func (d FieldDescriptor) DisplayLabel() string {
	if d.Required {
		return d.Label + " *"
	}
	return d.Label
}

// Form is the input handed to renderers.
type Form struct {
	Title        string            `json:"title,omitempty"`
	WorkflowName string            `json:"workflowName,omitempty"`
	Mode         string            `json:"mode,omitempty"`
	Action       string            `json:"action,omitempty"`
	Method       string            `json:"method,omitempty"`
	Fields       []FieldDescriptor `json:"fields"`
}

// NewForm describes fields and wraps them in a Form.
func NewForm(title string, fields []model.FieldSpec) Form {
	return Form{
		Title:  title,
		Method: "post",
		Fields: Describe(fields),
	}
}

// Describe maps field specs to descriptors. Sample values become both the
// placeholder and the initial value; selects get a leading empty option and
// the sample pre-selected.
func Describe(fields []model.FieldSpec) []FieldDescriptor {
	out := make([]FieldDescriptor, 0, len(fields))
	for _, field := range fields {
		out = append(out, describe(field))
	}
	return out
}

func describe(field model.FieldSpec) FieldDescriptor {
	label := strings.TrimSpace(field.Label)
	if label == "" {
		label = model.DefaultLabeler(field.Name)
	}
	d := FieldDescriptor{
		Name:     field.Name,
		Label:    label,
		Required: field.Required,
	}

	switch field.Type {
	case model.FieldTypeSelect:
		d.Control = ControlSelect
		d.Options = selectOptions(field.Options, field.SampleValue)
	case model.FieldTypeTextarea:
		d.Control = ControlTextarea
		d.Placeholder = field.SampleValue
		d.Value = field.SampleValue
	default:
		d.Control = ControlInput
		d.InputType = inputType(field.Type)
		d.Placeholder = field.SampleValue
		d.Value = field.SampleValue
	}
	return d
}

func inputType(t model.FieldType) string {
	switch t {
	case model.FieldTypeEmail, model.FieldTypeNumber, model.FieldTypeTel:
		return string(t)
	default:
		return string(model.FieldTypeText)
	}
}

func selectOptions(options []string, selected string) []OptionDescriptor {
	out := make([]OptionDescriptor, 0, len(options)+1)
	out = append(out, OptionDescriptor{Value: "", Label: EmptyOptionLabel})
	for _, option := range options {
		out = append(out, OptionDescriptor{
			Value:    option,
			Label:    option,
			Selected: option == selected,
		})
	}
	return out
}

// Apply returns a copy of form with opts.Values and opts.Errors merged into
// the descriptors.
func Apply(form Form, opts RenderOptions) Form {
	fields := make([]FieldDescriptor, len(form.Fields))
	for i, field := range form.Fields {
		if value, ok := opts.Values[field.Name]; ok {
			field = withValue(field, value)
		}
		if errs := opts.Errors[field.Name]; len(errs) > 0 {
			field.Errors = append([]string(nil), errs...)
		}
		fields[i] = field
	}
	form.Fields = fields
	return form
}

func withValue(field FieldDescriptor, value string) FieldDescriptor {
	if field.Control != ControlSelect {
		field.Value = value
		return field
	}
	options := make([]OptionDescriptor, len(field.Options))
	for i, option := range field.Options {
		option.Selected = option.Value == value && value != ""
		options[i] = option
	}
	field.Options = options
	return field
}
