package encoder

import (
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-clmform/pkg/catalog"
	"github.com/goliatone/go-clmform/pkg/model"
)

// DefaultRootElement wraps dynamic documents when neither the configuration
// nor its sample names a root element.
const DefaultRootElement = "TemplateFieldData"

var errUnknownMode = errors.New("encoder: unknown mode")

// Option customises an Encoder.
type Option func(*Encoder)

// WithCatalog sets the catalogue used to resolve selectedProduct in the
// legacy general shape.
func WithCatalog(c *catalog.Catalog) Option {
	return func(e *Encoder) {
		e.catalog = c
	}
}

// WithClock overrides the clock stamping legacy general documents.
func WithClock(now func() time.Time) Option {
	return func(e *Encoder) {
		if now != nil {
			e.now = now
		}
	}
}

// Encoder turns form values into the XML parameter document of a workflow.
// It never validates; callers run validation first.
type Encoder struct {
	catalog *catalog.Catalog
	now     func() time.Time
}

// New constructs an Encoder. Without WithCatalog the embedded catalogue is
// used on first demand.
func New(options ...Option) *Encoder {
	e := &Encoder{now: time.Now}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Encode is a convenience wrapper around New().Encode.
func Encode(values Values, mode Mode) (string, error) {
	return New().Encode(values, mode)
}

// Encode renders values with the strategy selected by mode.
func (e *Encoder) Encode(values Values, mode Mode) (string, error) {
	switch mode.Kind {
	case KindDynamic:
		return encodeDynamic(values, mode.Workflow)
	case KindLegacyAgent:
		return encodeAgent(values), nil
	case KindLegacyGeneral:
		products, err := e.products()
		if err != nil {
			return "", err
		}
		return encodeGeneral(values, products, e.now()), nil
	default:
		return "", fmt.Errorf("%w: %d", errUnknownMode, mode.Kind)
	}
}

// Fields returns the form fields for mode, using the encoder's catalogue for
// the legacy product options.
func (e *Encoder) Fields(mode Mode) ([]model.FieldSpec, error) {
	if mode.Kind != KindLegacyGeneral {
		return mode.Fields(nil), nil
	}
	products, err := e.products()
	if err != nil {
		return nil, err
	}
	return mode.Fields(products), nil
}

func (e *Encoder) products() (*catalog.Catalog, error) {
	if e.catalog != nil {
		return e.catalog, nil
	}
	c, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("encoder: load catalog: %w", err)
	}
	return c, nil
}
