package encoder_test

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clmform/pkg/catalog"
	"github.com/goliatone/go-clmform/pkg/encoder"
	"github.com/goliatone/go-clmform/pkg/infer"
	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/testsupport"
)

func TestEncode_DynamicEscapesValues(t *testing.T) {
	cfg := model.WorkflowConfiguration{
		WorkflowName: "Agent Contract",
		Fields: []model.FieldSpec{
			{Name: "Agent_Name", Type: model.FieldTypeText},
			{Name: "Electronic_invoice", Type: model.FieldTypeSelect, Options: []string{"Yes", "No"}},
		},
		SampleXML: "<TemplateFieldData><Agent_Name>x</Agent_Name></TemplateFieldData>",
	}
	values := encoder.Values{"Agent_Name": "Jane & Co", "Electronic_invoice": "yes"}

	got, err := encoder.Encode(values, encoder.Dynamic(cfg))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := "<TemplateFieldData><Agent_Name>Jane &amp; Co</Agent_Name><Electronic_invoice>yes</Electronic_invoice></TemplateFieldData>"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dynamic xml mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_DynamicRootElementPrecedence(t *testing.T) {
	fields := []model.FieldSpec{{Name: "a"}}
	cases := []struct {
		name string
		cfg  model.WorkflowConfiguration
		want string
	}{
		{
			name: "configured root",
			cfg:  model.WorkflowConfiguration{WorkflowName: "w", Fields: fields, RootElement: "Data", SampleXML: "<params><a>1</a></params>"},
			want: "<Data><a></a></Data>",
		},
		{
			name: "sample root",
			cfg:  model.WorkflowConfiguration{WorkflowName: "w", Fields: fields, SampleXML: "<params><a>1</a></params>"},
			want: "<params><a></a></params>",
		},
		{
			name: "reserved sample root",
			cfg:  model.WorkflowConfiguration{WorkflowName: "w", Fields: fields, SampleXML: "<xmlRoot><a>1</a></xmlRoot>"},
			want: "<TemplateFieldData><a></a></TemplateFieldData>",
		},
		{
			name: "default root",
			cfg:  model.WorkflowConfiguration{WorkflowName: "w", Fields: fields},
			want: "<TemplateFieldData><a></a></TemplateFieldData>",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := encoder.Encode(nil, encoder.Dynamic(tc.cfg))
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEncode_DynamicRejectsUnsafeNames(t *testing.T) {
	cfg := model.WorkflowConfiguration{WorkflowName: "w", Fields: []model.FieldSpec{{Name: "bad name"}}}
	if _, err := encoder.Encode(encoder.Values{}, encoder.Dynamic(cfg)); err == nil {
		t.Fatalf("expected error for invalid element name")
	}
}

func TestEncode_InferRoundTrip(t *testing.T) {
	sample := "<TemplateFieldData><Agent_Name>John Doe</Agent_Name><Emails>Yes</Emails><Sales_Segment>SME &amp; Corporate</Sales_Segment></TemplateFieldData>"
	fields, err := infer.Infer(sample)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}

	values := encoder.Values{}
	for _, field := range fields {
		values[field.Name] = field.SampleValue
	}
	cfg := model.WorkflowConfiguration{WorkflowName: "w", Fields: fields, SampleXML: sample}

	got, err := encoder.Encode(values, encoder.Dynamic(cfg))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if got != sample {
		t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", sample, got)
	}
}

func TestEncode_InferSkipsReservedNames(t *testing.T) {
	sample := "<xmlRoot><XML_Reference>abc</XML_Reference><Agent_Name>Jane</Agent_Name></xmlRoot>"
	fields, err := infer.Infer(sample)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	cfg := model.WorkflowConfiguration{WorkflowName: "w", Fields: fields, SampleXML: sample}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}

	got, err := encoder.Encode(encoder.Values{"Agent_Name": "Sam"}, encoder.Dynamic(cfg))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if want := "<TemplateFieldData><Agent_Name>Sam</Agent_Name></TemplateFieldData>"; got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestEncode_LegacyGeneral(t *testing.T) {
	enc := encoder.New(encoder.WithClock(testsupport.FixedClock(testsupport.ReferenceTime)))
	values := encoder.Values{
		"fullName":        "Ann Example",
		"email":           "ann@example.com",
		"phone":           "555-010-0000",
		"productCategory": "mobile",
		"selectedProduct": "mob_red_plus",
		"quantity":        "2",
		"requirements":    "needs <5G>",
	}

	got, err := enc.Encode(values, encoder.LegacyGeneral())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := strings.Join([]string{
		"<params>",
		"<fullName>Ann Example</fullName>",
		"<email>ann@example.com</email>",
		"<phone>555-010-0000</phone>",
		"<productCategory>mobile</productCategory>",
		"<productId>mob_red_plus</productId>",
		"<productName>Red Plus 50GB</productName>",
		"<productDescription>50GB data + international roaming</productDescription>",
		"<unitPrice>25</unitPrice>",
		"<quantity>2</quantity>",
		"<totalMonthlyPrice>50</totalMonthlyPrice>",
		"<requirements>needs &lt;5G&gt;</requirements>",
		"<source>Vodafone Product Signup Portal</source>",
		"<timestamp>2025-03-04T10:30:00Z</timestamp>",
		"</params>",
	}, "")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("general xml mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_LegacyGeneralWithoutProduct(t *testing.T) {
	products, err := catalog.New()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	enc := encoder.New(
		encoder.WithCatalog(products),
		encoder.WithClock(testsupport.FixedClock(testsupport.ReferenceTime)),
	)

	got, err := enc.Encode(encoder.Values{"email": "a@b.co", "selectedProduct": "missing"}, encoder.LegacyGeneral())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for _, fragment := range []string{
		"<productId></productId>",
		"<unitPrice>0</unitPrice>",
		"<quantity>1</quantity>",
		"<totalMonthlyPrice>0</totalMonthlyPrice>",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected %s in %s", fragment, got)
		}
	}
	if strings.Contains(got, "<fullName>") {
		t.Fatalf("optional elements must be omitted when empty: %s", got)
	}
}

func TestEncode_LegacyAgent(t *testing.T) {
	values := encoder.Values{
		"agentName":           "A&B",
		"agentRole":           "Lead",
		"invoiceFirstMonth":   true,
		"electronicInvoice":   "on",
		"smsNotification":     "NO",
		"emailNotification":   "yes",
		"automaticPhoneCalls": nil,
	}

	got, err := encoder.Encode(values, encoder.LegacyAgent())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := strings.Join([]string{
		"<TemplateFieldData>",
		"<Addendum_Number></Addendum_Number>",
		"<Serie_Number_Contract></Serie_Number_Contract>",
		"<Vodafone_Registration_Data></Vodafone_Registration_Data>",
		"<Agent_Name>A&amp;B</Agent_Name>",
		"<Agent_Role>Lead</Agent_Role>",
		"<Agent_Telephone_Number></Agent_Telephone_Number>",
		"<Client_Registration_Data></Client_Registration_Data>",
		"<Sales_Segment></Sales_Segment>",
		"<Invoice_should_be_issued_on_the_1st_of_each_month>Yes</Invoice_should_be_issued_on_the_1st_of_each_month>",
		"<Electronic_invoice>Yes</Electronic_invoice>",
		"<SMS_or_RCS_or_USSD_Notification>No</SMS_or_RCS_or_USSD_Notification>",
		"<Emails>Yes</Emails>",
		"<Automatic_Phone_Calls>No</Automatic_Phone_Calls>",
		"<Contract_Duration></Contract_Duration>",
		"<Contract_Routing></Contract_Routing>",
		"<Chosen_Service></Chosen_Service>",
		"</TemplateFieldData>",
	}, "")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("agent xml mismatch (-want +got):\n%s", diff)
	}
}

func TestEncode_LegacyAgentIsWellFormed(t *testing.T) {
	got, err := encoder.Encode(encoder.Values{"agentName": `"quoted" <tag> & 'apos'`}, encoder.LegacyAgent())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoder := xml.NewDecoder(strings.NewReader(got))
	var names []string
	depth := 0
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 1 {
				names = append(names, t.Name.Local)
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if diff := cmp.Diff(encoder.AgentElementNames(), names); diff != "" {
		t.Fatalf("element order mismatch (-want +got):\n%s", diff)
	}
}

func TestYesNo(t *testing.T) {
	yes := []any{true, "true", "on", "YES", "yes"}
	no := []any{false, "false", "", nil, "NO", "no", "Yes", "1", 1, "off"}

	for _, v := range yes {
		if got := encoder.YesNo(v); got != "Yes" {
			t.Errorf("YesNo(%#v) = %q, want Yes", v, got)
		}
	}
	for _, v := range no {
		if got := encoder.YesNo(v); got != "No" {
			t.Errorf("YesNo(%#v) = %q, want No", v, got)
		}
	}
}

func TestEscapeText(t *testing.T) {
	got := encoder.EscapeText(`Tom & "Jerry" <cat> 'mouse'`)
	want := "Tom &amp; &quot;Jerry&quot; &lt;cat&gt; &apos;mouse&apos;"
	if got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

func TestSelectMode(t *testing.T) {
	dynamic := model.WorkflowConfiguration{WorkflowName: "w", Fields: []model.FieldSpec{{Name: "a"}}}

	cases := []struct {
		name   string
		cfg    model.WorkflowConfiguration
		values encoder.Values
		want   encoder.ModeKind
	}{
		{name: "dynamic wins", cfg: dynamic, values: encoder.Values{"agentName": "a", "agentRole": "b"}, want: encoder.KindDynamic},
		{name: "agent", values: encoder.Values{"agentName": "a", "agentRole": "b"}, want: encoder.KindLegacyAgent},
		{name: "agent needs role", values: encoder.Values{"agentName": "a"}, want: encoder.KindLegacyGeneral},
		{name: "name without fields", cfg: model.WorkflowConfiguration{WorkflowName: "w"}, want: encoder.KindLegacyGeneral},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := encoder.SelectMode(tc.cfg, tc.values).Kind; got != tc.want {
				t.Fatalf("want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestModeWorkflowName(t *testing.T) {
	names := model.LegacyWorkflowNames{model.LegacyWorkflowAgent: "Custom Agent"}

	if got := encoder.LegacyAgent().WorkflowName(names); got != "Custom Agent" {
		t.Fatalf("agent name: %q", got)
	}
	if got := encoder.LegacyGeneral().WorkflowName(names); got != model.DefaultGeneralWorkflowName {
		t.Fatalf("general name: %q", got)
	}
	cfg := model.WorkflowConfiguration{WorkflowName: " Dyn "}
	if got := encoder.Dynamic(cfg).WorkflowName(names); got != "Dyn" {
		t.Fatalf("dynamic name: %q", got)
	}
}

func TestModeFields(t *testing.T) {
	agent := encoder.LegacyAgent().Fields(nil)
	if len(agent) != len(encoder.AgentElementNames()) {
		t.Fatalf("expected one field per agent element, got %d", len(agent))
	}
	required := 0
	for _, field := range agent {
		if field.Required {
			required++
		}
	}
	if required != 8 {
		t.Fatalf("expected 8 required agent fields, got %d", required)
	}
	if agent[8].Name != "invoiceFirstMonth" || agent[8].Type != model.FieldTypeSelect {
		t.Fatalf("unexpected yes/no field %+v", agent[8])
	}

	products, err := catalog.Default()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	general := encoder.LegacyGeneral().Fields(products)
	var category model.FieldSpec
	for _, field := range general {
		if field.Name == "productCategory" {
			category = field
		}
	}
	if diff := cmp.Diff([]string{"mobile", "broadband", "business", "iot"}, category.Options); diff != "" {
		t.Fatalf("category options mismatch (-want +got):\n%s", diff)
	}

	cfg := model.WorkflowConfiguration{WorkflowName: "W", Fields: []model.FieldSpec{{Name: "A"}}}
	if got := encoder.Dynamic(cfg).Fields(nil); len(got) != 1 || got[0].Name != "A" {
		t.Fatalf("unexpected dynamic fields %+v", got)
	}
}
