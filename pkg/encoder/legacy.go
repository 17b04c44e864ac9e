package encoder

import (
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-clmform/pkg/catalog"
)

// SignupSource is written to the source element of general signups.
const SignupSource = "Vodafone Product Signup Portal"

const (
	generalRoot = "params"
	agentRoot   = "TemplateFieldData"
)

type agentElement struct {
	name     string
	key      string
	yesNo    bool
	required bool
}

var agentElements = []agentElement{
	{name: "Addendum_Number", key: "addendumNo"},
	{name: "Serie_Number_Contract", key: "serieNumberContract"},
	{name: "Vodafone_Registration_Data", key: "vodafoneRegistrationData"},
	{name: "Agent_Name", key: "agentName", required: true},
	{name: "Agent_Role", key: "agentRole", required: true},
	{name: "Agent_Telephone_Number", key: "agentTelephone", required: true},
	{name: "Client_Registration_Data", key: "clientRegistrationData", required: true},
	{name: "Sales_Segment", key: "salesSegment", required: true},
	{name: "Invoice_should_be_issued_on_the_1st_of_each_month", key: "invoiceFirstMonth", yesNo: true},
	{name: "Electronic_invoice", key: "electronicInvoice", yesNo: true},
	{name: "SMS_or_RCS_or_USSD_Notification", key: "smsNotification", yesNo: true},
	{name: "Emails", key: "emailNotification", yesNo: true},
	{name: "Automatic_Phone_Calls", key: "automaticPhoneCalls", yesNo: true},
	{name: "Contract_Duration", key: "contractDuration", required: true},
	{name: "Contract_Routing", key: "contractRouting", required: true},
	{name: "Chosen_Service", key: "chosenService", required: true},
}

// AgentElementNames lists the agent shape's elements in document order.
func AgentElementNames() []string {
	names := make([]string, len(agentElements))
	for i, el := range agentElements {
		names[i] = el.name
	}
	return names
}

func encodeAgent(values Values) string {
	var doc document
	doc.open(agentRoot)
	for _, el := range agentElements {
		if el.yesNo {
			doc.element(el.name, YesNo(values[el.key]))
			continue
		}
		doc.element(el.name, values.String(el.key))
	}
	doc.close(agentRoot)
	return doc.String()
}

type orderLine struct {
	product  catalog.Product
	quantity int
	total    float64
}

func resolveOrder(values Values, products *catalog.Catalog) orderLine {
	line := orderLine{quantity: 1}
	product, ok := products.Lookup(values.String("selectedProduct"))
	if !ok {
		return line
	}
	line.product = product
	if q, err := strconv.Atoi(strings.TrimSpace(values.String("quantity"))); err == nil && q != 0 {
		line.quantity = q
	}
	line.total = product.Price * float64(line.quantity)
	return line
}

func formatPrice(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func encodeGeneral(values Values, products *catalog.Catalog, now time.Time) string {
	line := resolveOrder(values, products)

	var doc document
	doc.open(generalRoot)
	optional := func(key string) {
		if values.String(key) != "" {
			doc.element(key, values.String(key))
		}
	}

	optional("fullName")
	optional("companyName")
	optional("contactName")
	doc.element("email", values.String("email"))
	doc.element("phone", values.String("phone"))
	optional("address")
	optional("planType")
	doc.element("productCategory", values.String("productCategory"))
	doc.element("productId", line.product.ID)
	doc.element("productName", line.product.Name)
	doc.element("productDescription", line.product.Description)
	doc.element("unitPrice", formatPrice(line.product.Price))
	doc.element("quantity", strconv.Itoa(line.quantity))
	doc.element("totalMonthlyPrice", formatPrice(line.total))
	optional("businessSize")
	doc.element("requirements", values.String("requirements"))
	doc.element("source", SignupSource)
	doc.element("timestamp", now.UTC().Format(time.RFC3339))
	doc.close(generalRoot)
	return doc.String()
}
