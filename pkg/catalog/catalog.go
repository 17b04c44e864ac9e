package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/products.yaml
var dataFS embed.FS

const defaultCatalogPath = "data/products.yaml"

// Product is a single orderable plan.
type Product struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Price       float64 `json:"price" yaml:"price"`
	Category    string  `json:"category" yaml:"-"`
}

// Category groups products shown together in the signup form.
type Category struct {
	ID       string    `json:"id" yaml:"id"`
	Label    string    `json:"label" yaml:"label"`
	Products []Product `json:"products" yaml:"products"`
}

// Catalog indexes products by id while keeping category order.
type Catalog struct {
	categories []Category
	byID       map[string]Product
}

type document struct {
	Categories []Category `yaml:"categories"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalogue. The result is shared; callers must
// not mutate it.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		data, err := dataFS.ReadFile(defaultCatalogPath)
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = Load(bytes.NewReader(data))
	})
	return defaultCatalog, defaultErr
}

// Load parses a YAML catalogue document.
func Load(r io.Reader) (*Catalog, error) {
	if r == nil {
		return nil, errors.New("catalog: missing reader")
	}
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	return New(doc.Categories...)
}

// New builds a catalogue from categories. Product ids must be unique across
// categories.
func New(categories ...Category) (*Catalog, error) {
	c := &Catalog{byID: make(map[string]Product)}
	for _, category := range categories {
		id := strings.TrimSpace(category.ID)
		if id == "" {
			return nil, errors.New("catalog: category id is required")
		}
		cat := Category{ID: id, Label: category.Label}
		for _, product := range category.Products {
			if product.ID == "" {
				return nil, fmt.Errorf("catalog: category %q has a product without id", id)
			}
			if _, exists := c.byID[product.ID]; exists {
				return nil, fmt.Errorf("catalog: duplicate product %q", product.ID)
			}
			product.Category = id
			c.byID[product.ID] = product
			cat.Products = append(cat.Products, product)
		}
		c.categories = append(c.categories, cat)
	}
	return c, nil
}

// Lookup returns the product with the given id.
func (c *Catalog) Lookup(id string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	product, ok := c.byID[strings.TrimSpace(id)]
	return product, ok
}

// Categories returns a copy of the categories in declaration order.
func (c *Catalog) Categories() []Category {
	if c == nil {
		return nil
	}
	out := make([]Category, len(c.categories))
	for i, category := range c.categories {
		out[i] = Category{
			ID:       category.ID,
			Label:    category.Label,
			Products: append([]Product{}, category.Products...),
		}
	}
	return out
}

// Products returns the products of one category, or every product when
// category is empty.
func (c *Catalog) Products(category string) []Product {
	if c == nil {
		return nil
	}
	category = strings.TrimSpace(category)
	var out []Product
	for _, cat := range c.categories {
		if category != "" && cat.ID != category {
			continue
		}
		out = append(out, cat.Products...)
	}
	return out
}
