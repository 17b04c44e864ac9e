package products

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/goliatone/go-clmform/pkg/catalog"
)

// Option is one entry of the product select, carrying the data the legacy
// signup form needs for pricing.
type Option struct {
	Value       string  `json:"value"`
	Label       string  `json:"label"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
}

// Search filters products by category and a case-insensitive query over
// name and description, keeping catalogue order.
func Search(c *catalog.Catalog, category, query string, limit int, opts Options) []catalog.Product {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	var out []catalog.Product
	for _, product := range c.Products(category) {
		if q != "" &&
			!strings.Contains(strings.ToLower(product.Name), q) &&
			!strings.Contains(strings.ToLower(product.Description), q) {
			continue
		}
		out = append(out, product)
		if len(out) == limit {
			break
		}
	}
	return out
}

func SearchOptions(c *catalog.Catalog, category, query string, limit int, opts Options) []Option {
	results := Search(c, category, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, product := range results {
		out = append(out, Option{
			Value:       product.ID,
			Label:       OptionLabel(product, opts.Currency),
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Category:    product.Category,
		})
	}
	return out
}

// OptionLabel renders "Name - £15.00/month".
func OptionLabel(product catalog.Product, currency string) string {
	return product.Name + " - " + currency + humanize.FormatFloat("#,###.##", product.Price) + "/month"
}
