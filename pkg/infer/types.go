package infer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-clmform/pkg/model"
)

// TextareaThreshold is the sample length above which a field becomes a textarea.
const TextareaThreshold = 50

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	phonePattern  = regexp.MustCompile(`^\d{3}[-.\s]?\d{3}[-.\s]?\d{4}$`)
)

// YesNoOptions are the options attached to fields inferred as yes/no selects.
func YesNoOptions() []string {
	return []string{"Yes", "No"}
}

// InferType maps a sample value to a field type. Rules are evaluated in
// order and the first match wins; only select fields carry options.
func InferType(sample string) (model.FieldType, []string) {
	lower := strings.ToLower(sample)
	switch {
	case lower == "yes" || lower == "no":
		return model.FieldTypeSelect, YesNoOptions()
	case strings.Contains(sample, "@"):
		return model.FieldTypeEmail, nil
	case digitsPattern.MatchString(sample):
		return model.FieldTypeNumber, nil
	case phonePattern.MatchString(sample):
		return model.FieldTypeTel, nil
	case utf8.RuneCountInString(sample) > TextareaThreshold:
		return model.FieldTypeTextarea, nil
	default:
		return model.FieldTypeText, nil
	}
}
