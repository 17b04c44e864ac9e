package products

import (
	"net/http"

	"github.com/goliatone/go-clmform/pkg/catalog"
)

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath     string
	CategoryParam string
	SearchParam   string
	LimitParam    string
	DefaultLimit  int
	MaxLimit      int
	Currency      string
	Guard         GuardFunc

	// Catalog overrides the embedded product catalogue.
	Catalog *catalog.Catalog
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     "/api/products",
		CategoryParam: "category",
		SearchParam:   "q",
		LimitParam:    "limit",
		DefaultLimit:  50,
		MaxLimit:      200,
		Currency:      "£",
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = 50
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = 200
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/products"
	}
	if opts.CategoryParam == "" {
		opts.CategoryParam = "category"
	}
	if opts.SearchParam == "" {
		opts.SearchParam = "q"
	}
	if opts.LimitParam == "" {
		opts.LimitParam = "limit"
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithCurrency(symbol string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Currency = symbol
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithCatalog(c *catalog.Catalog) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Catalog = c
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
