package encoder

import (
	"github.com/goliatone/go-clmform/pkg/catalog"
	"github.com/goliatone/go-clmform/pkg/model"
)

// Fields returns the form fields collected for m. Dynamic modes return the
// configured fields; legacy modes describe their fixed input keys, with the
// general shape offering the catalog's categories and products as options.
func (m Mode) Fields(products *catalog.Catalog) []model.FieldSpec {
	switch m.Kind {
	case KindDynamic:
		return append([]model.FieldSpec(nil), m.Workflow.Fields...)
	case KindLegacyAgent:
		return agentFields()
	default:
		return generalFields(products)
	}
}

func agentFields() []model.FieldSpec {
	fields := make([]model.FieldSpec, 0, len(agentElements))
	for _, el := range agentElements {
		field := model.FieldSpec{
			Name:     el.key,
			Label:    model.DefaultLabeler(el.key),
			Type:     model.FieldTypeText,
			Required: el.required,
		}
		if el.yesNo {
			field.Type = model.FieldTypeSelect
			field.Options = []string{"Yes", "No"}
			field.SampleValue = "No"
		}
		fields = append(fields, field)
	}
	return fields
}

func generalFields(products *catalog.Catalog) []model.FieldSpec {
	var categories, productIDs []string
	for _, category := range products.Categories() {
		categories = append(categories, category.ID)
	}
	for _, product := range products.Products("") {
		productIDs = append(productIDs, product.ID)
	}

	return []model.FieldSpec{
		{Name: "fullName", Label: "Full Name", Type: model.FieldTypeText},
		{Name: "companyName", Label: "Company Name", Type: model.FieldTypeText},
		{Name: "contactName", Label: "Contact Name", Type: model.FieldTypeText},
		{Name: "email", Label: "Email", Type: model.FieldTypeEmail, Required: true},
		{Name: "phone", Label: "Phone", Type: model.FieldTypeTel, Required: true},
		{Name: "address", Label: "Address", Type: model.FieldTypeTextarea},
		{Name: "planType", Label: "Plan Type", Type: model.FieldTypeText},
		{Name: "productCategory", Label: "Product Category", Type: model.FieldTypeSelect, Options: categories, Required: true},
		{Name: "selectedProduct", Label: "Product", Type: model.FieldTypeSelect, Options: productIDs},
		{Name: "quantity", Label: "Quantity", Type: model.FieldTypeNumber, SampleValue: "1"},
		{Name: "businessSize", Label: "Business Size", Type: model.FieldTypeText},
		{Name: "requirements", Label: "Requirements", Type: model.FieldTypeTextarea},
	}
}
