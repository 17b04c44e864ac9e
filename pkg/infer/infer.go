package infer

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/goliatone/go-clmform/pkg/model"
)

// ErrMalformedSample is returned when the sample document is not well-formed XML.
var ErrMalformedSample = errors.New("infer: malformed sample document")

// Skip reasons reported in Result.Skipped.
const (
	ReasonWrapper    = "wrapper"
	ReasonNested     = "nested"
	ReasonAttributes = "attributes"
	ReasonNamespaced = "namespaced"
	ReasonInvalid    = "invalid-name"
	ReasonDuplicate  = "duplicate"
)

// DefaultWrappers lists element names treated as containers, never as fields.
var DefaultWrappers = []string{"TemplateFieldData", "params", "root"}

// SkippedElement records an element that did not become a field.
type SkippedElement struct {
	Name   string `json:"name"`
	Reason string `json:"reason"`
}

// Result is the outcome of analysing a sample document.
type Result struct {
	RootElement string            `json:"rootElement,omitempty"`
	Fields      []model.FieldSpec `json:"fields"`
	Skipped     []SkippedElement  `json:"skipped,omitempty"`
}

// Option customises an Inferencer.
type Option func(*Inferencer)

// WithLabeler overrides the label derivation for inferred fields.
func WithLabeler(labeler func(string) string) Option {
	return func(i *Inferencer) {
		if labeler != nil {
			i.labeler = labeler
		}
	}
}

// WithWrappers replaces the set of wrapper element names.
func WithWrappers(names ...string) Option {
	return func(i *Inferencer) {
		i.wrappers = make(map[string]struct{}, len(names))
		for _, name := range names {
			i.wrappers[strings.TrimSpace(name)] = struct{}{}
		}
	}
}

// Inferencer derives a field schema from a sample XML document.
type Inferencer struct {
	labeler  func(string) string
	wrappers map[string]struct{}
}

// New constructs an Inferencer with the default labeler and wrapper set.
func New(options ...Option) *Inferencer {
	i := &Inferencer{labeler: model.DefaultLabeler}
	WithWrappers(DefaultWrappers...)(i)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(i)
	}
	return i
}

// Infer returns the fields found in sample using the default Inferencer.
func Infer(sample string) ([]model.FieldSpec, error) {
	return New().Infer(sample)
}

// RootElement returns the local name of the first element in sample, or ""
// when the sample holds no element or cannot be parsed.
func RootElement(sample string) string {
	decoder := xml.NewDecoder(strings.NewReader(sample))
	for {
		tok, err := decoder.Token()
		if err != nil {
			return ""
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Local
		}
	}
}

// Infer returns only the fields of Analyze.
func (i *Inferencer) Infer(sample string) ([]model.FieldSpec, error) {
	result, err := i.Analyze(sample)
	if err != nil {
		return nil, err
	}
	return result.Fields, nil
}

type frame struct {
	name     string
	valid    bool
	reason   string
	children int
	text     strings.Builder
}

// Analyze walks sample and turns every leaf element into a FieldSpec. Leaf
// elements are those holding only character data. Elements that contain
// markup, carry attributes, use a namespace or have a non-word name are
// listed in Skipped instead of being dropped silently. An empty sample yields
// an empty Result.
func (i *Inferencer) Analyze(sample string) (Result, error) {
	var result Result
	if strings.TrimSpace(sample) == "" {
		return result, nil
	}

	decoder := xml.NewDecoder(strings.NewReader(sample))
	seen := make(map[string]struct{})
	var stack []*frame

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrMalformedSample, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if result.RootElement == "" && len(stack) == 0 {
				result.RootElement = t.Name.Local
			}
			if len(stack) > 0 {
				stack[len(stack)-1].children++
			}
			stack = append(stack, newFrame(t))
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text.Write(t)
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			i.collect(&result, top, seen)
		}
	}

	if len(stack) > 0 {
		return Result{}, fmt.Errorf("%w: unclosed element %q", ErrMalformedSample, stack[len(stack)-1].name)
	}
	return result, nil
}

func newFrame(start xml.StartElement) *frame {
	f := &frame{name: start.Name.Local, valid: true}
	switch {
	case start.Name.Space != "":
		f.valid, f.reason = false, ReasonNamespaced
	case model.ValidateFieldName(start.Name.Local) != nil:
		f.valid, f.reason = false, ReasonInvalid
	case len(start.Attr) > 0:
		f.valid, f.reason = false, ReasonAttributes
	}
	return f
}

func (i *Inferencer) collect(result *Result, f *frame, seen map[string]struct{}) {
	if _, wrapper := i.wrappers[f.name]; wrapper {
		if f.children == 0 {
			result.Skipped = append(result.Skipped, SkippedElement{Name: f.name, Reason: ReasonWrapper})
		}
		return
	}
	if f.children > 0 {
		result.Skipped = append(result.Skipped, SkippedElement{Name: f.name, Reason: ReasonNested})
		return
	}
	if !f.valid {
		result.Skipped = append(result.Skipped, SkippedElement{Name: f.name, Reason: f.reason})
		return
	}
	if _, dup := seen[f.name]; dup {
		result.Skipped = append(result.Skipped, SkippedElement{Name: f.name, Reason: ReasonDuplicate})
		return
	}
	seen[f.name] = struct{}{}

	sample := f.text.String()
	fieldType, options := InferType(sample)
	result.Fields = append(result.Fields, model.FieldSpec{
		Name:        f.name,
		Label:       i.labeler(f.name),
		Type:        fieldType,
		Options:     options,
		SampleValue: sample,
		Required:    true,
	})
}
