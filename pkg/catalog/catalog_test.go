package catalog_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-clmform/pkg/catalog"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	product, ok := cat.Lookup("mob_red_plus")
	if !ok {
		t.Fatalf("expected mob_red_plus in catalogue")
	}
	if product.Name != "Red Plus 50GB" || product.Price != 25 || product.Category != "mobile" {
		t.Fatalf("unexpected product: %#v", product)
	}

	if got := len(cat.Categories()); got != 4 {
		t.Fatalf("expected 4 categories, got %d", got)
	}
	if got := len(cat.Products("iot")); got != 4 {
		t.Fatalf("expected 4 iot products, got %d", got)
	}
	if got := len(cat.Products("")); got != 16 {
		t.Fatalf("expected 16 products, got %d", got)
	}
}

func TestLoad_RejectsDuplicates(t *testing.T) {
	doc := `
categories:
  - id: a
    products:
      - id: p1
        name: One
  - id: b
    products:
      - id: p1
        name: Again
`
	if _, err := catalog.Load(strings.NewReader(doc)); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestNilCatalog(t *testing.T) {
	var cat *catalog.Catalog
	if _, ok := cat.Lookup("x"); ok {
		t.Fatalf("nil catalogue must not resolve products")
	}
	if cat.Products("") != nil {
		t.Fatalf("nil catalogue must not list products")
	}
}
