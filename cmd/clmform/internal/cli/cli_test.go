package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clmform/pkg/encoder"
	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/orchestrator"
	"github.com/goliatone/go-clmform/pkg/renderers/tui"
	"github.com/goliatone/go-clmform/pkg/store"
	"github.com/goliatone/go-clmform/pkg/testsupport"
)

const sampleXML = `<TemplateFieldData><Customer_Name>Jane Doe</Customer_Name><Email>jane@example.com</Email></TemplateFieldData>`

type scriptedDriver struct {
	inputs   []string
	confirm  bool
	messages []string
}

func (d *scriptedDriver) Input(_ context.Context, _ tui.InputConfig) (string, error) {
	return d.next()
}

func (d *scriptedDriver) Password(_ context.Context, _ tui.InputConfig) (string, error) {
	return d.next()
}

func (d *scriptedDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	return d.confirm, nil
}

func (d *scriptedDriver) Select(_ context.Context, _ tui.SelectConfig) (int, error) {
	return -1, errors.New("no select scripted")
}

func (d *scriptedDriver) TextArea(_ context.Context, _ tui.TextAreaConfig) (string, error) {
	return d.next()
}

func (d *scriptedDriver) Info(_ context.Context, msg string) error {
	d.messages = append(d.messages, msg)
	return nil
}

func (d *scriptedDriver) next() (string, error) {
	if len(d.inputs) == 0 {
		return "", errors.New("no input scripted")
	}
	v := d.inputs[0]
	d.inputs = d.inputs[1:]
	return v, nil
}

type harness struct {
	t      *testing.T
	dir    string
	env    map[string]string
	driver *scriptedDriver
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	return &harness{
		t:      t,
		dir:    dir,
		env:    map[string]string{"CLMFORM_DATA_DIR": dir},
		driver: &scriptedDriver{},
	}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCommand(
		WithIO(strings.NewReader(""), &out, &errOut),
		WithLookup(func(key string) (string, bool) {
			v, ok := h.env[key]
			return v, ok
		}),
		WithPromptDriver(h.driver),
		WithClock(testsupport.FixedClock(testsupport.ReferenceTime)),
	)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("clmform %s: %v\n%s", strings.Join(args, " "), err, out)
	}
	return out
}

func (h *harness) writeFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		h.t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func (h *harness) saveWorkflow() {
	h.t.Helper()
	h.mustRun("infer", h.writeFile("sample.xml", sampleXML), "--save", "--workflow", "Onboarding")
}

func (h *harness) blob() *store.FileBlob {
	h.t.Helper()
	blob, err := store.NewFileBlob(h.dir)
	if err != nil {
		h.t.Fatalf("open blob: %v", err)
	}
	return blob
}

func TestInferSavesWorkflow(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("infer", h.writeFile("sample.xml", sampleXML), "--save", "--workflow", "Onboarding")

	for _, want := range []string{"Root element: TemplateFieldData", "Customer_Name", "email", `Saved 2 fields for workflow "Onboarding"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	cfg, err := store.NewWorkflowStore(h.blob()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Dynamic() || cfg.WorkflowName != "Onboarding" || cfg.SampleXML != sampleXML {
		t.Fatalf("unexpected stored configuration %#v", cfg)
	}
}

func TestInferRequiresWorkflowWhenSaving(t *testing.T) {
	h := newHarness(t)
	_, err := h.run("infer", h.writeFile("sample.xml", sampleXML), "--save")
	if err == nil || !strings.Contains(err.Error(), "--workflow") {
		t.Fatalf("expected --workflow error, got %v", err)
	}
}

func TestEncodeDynamic(t *testing.T) {
	h := newHarness(t)
	h.saveWorkflow()

	out := h.mustRun("encode", "Customer_Name=Ada & Co", "Email=ada@example.com")
	want := "<TemplateFieldData><Customer_Name>Ada &amp; Co</Customer_Name><Email>ada@example.com</Email></TemplateFieldData>\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("encode output mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodePayloadUsesLegacyName(t *testing.T) {
	h := newHarness(t)
	h.mustRun("config", "legacy-name", "agent", "Partner Agent Workflow")

	out := h.mustRun("encode", "--mode", "agent", "--payload", "agentName=Sam")
	var payload model.SubmissionPayload
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode payload: %v\n%s", err, out)
	}
	if payload.Name != "Partner Agent Workflow" {
		t.Fatalf("expected stored agent name, got %q", payload.Name)
	}
	if !strings.Contains(payload.Params, "Sam") {
		t.Fatalf("expected agent name in params, got %q", payload.Params)
	}
}

func TestEncodeRejectsDynamicWithoutConfiguration(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("encode", "--mode", "dynamic"); err == nil {
		t.Fatalf("expected error without a stored configuration")
	}
}

func TestSubmitRecordsSubmission(t *testing.T) {
	h := newHarness(t)
	srv := testsupport.NewRecordingServer(t, http.StatusOK, "application/json", `{"Id":"wf-9"}`)
	h.env["CLMFORM_RELAY_URL"] = srv.URL
	h.env["CLM_ACCOUNT_ID"] = "acct-1"
	h.saveWorkflow()
	h.mustRun("token", "set", "opaque-token")

	out := h.mustRun("submit", "Customer_Name=Ada", "Email=ada@example.com")
	if !strings.Contains(out, "Workflow started successfully (ID: wf-9)") {
		t.Fatalf("unexpected submit output:\n%s", out)
	}

	var body struct {
		Token     string                  `json:"token"`
		AccountID string                  `json:"accountId"`
		Payload   model.SubmissionPayload `json:"payload"`
	}
	if err := json.Unmarshal([]byte(srv.Last(t).Body), &body); err != nil {
		t.Fatalf("decode relay request: %v", err)
	}
	if body.Token != "opaque-token" || body.AccountID != "acct-1" || body.Payload.Name != "Onboarding" {
		t.Fatalf("unexpected relay request %#v", body)
	}

	list := h.mustRun("submissions", "list")
	for _, want := range []string{"wf-9", "submitted", "Onboarding", "now"} {
		if !strings.Contains(list, want) {
			t.Fatalf("expected %q in list:\n%s", want, list)
		}
	}

	h.mustRun("submissions", "status", "wf-9", "completed")
	record, err := store.NewSubmissionLog(h.blob()).Get(context.Background(), "wf-9")
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if record.Status != "completed" || record.UpdatedAt == nil {
		t.Fatalf("unexpected record %#v", record)
	}
}

func TestSubmitWithoutTokenSendsNothing(t *testing.T) {
	h := newHarness(t)
	srv := testsupport.NewRecordingServer(t, http.StatusOK, "application/json", `{}`)
	h.env["CLMFORM_RELAY_URL"] = srv.URL
	h.env["CLM_ACCOUNT_ID"] = "acct-1"

	_, err := h.run("submit", "email=a@b.test")
	if err == nil || err.Error() != orchestrator.MessageMissingToken {
		t.Fatalf("expected missing token error, got %v", err)
	}
	if got := len(srv.Requests()); got != 0 {
		t.Fatalf("expected no relay request, got %d", got)
	}
}

func TestSubmitReportsValidationIssues(t *testing.T) {
	h := newHarness(t)
	srv := testsupport.NewRecordingServer(t, http.StatusOK, "application/json", `{}`)
	h.env["CLMFORM_RELAY_URL"] = srv.URL
	h.env["CLM_ACCOUNT_ID"] = "acct-1"
	h.saveWorkflow()

	out, err := h.run("submit", "--token", "tok", "Customer_Name=Ada", "Email=not-an-email")
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(out, "✗ Email:") {
		t.Fatalf("expected field issue in output:\n%s", out)
	}
	if got := len(srv.Requests()); got != 0 {
		t.Fatalf("expected no relay request, got %d", got)
	}
}

func TestFillDryRun(t *testing.T) {
	h := newHarness(t)
	h.saveWorkflow()
	h.driver.inputs = []string{"Ada", "ada@example.com"}

	out := h.mustRun("fill", "--dry-run")
	want := "<TemplateFieldData><Customer_Name>Ada</Customer_Name><Email>ada@example.com</Email></TemplateFieldData>\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("fill output mismatch (-want +got):\n%s", diff)
	}
	if len(h.driver.messages) == 0 || !strings.Contains(h.driver.messages[0], "Onboarding") {
		t.Fatalf("expected the workflow title first, got %v", h.driver.messages)
	}
}

func TestFillDeclinedConfirmation(t *testing.T) {
	h := newHarness(t)
	srv := testsupport.NewRecordingServer(t, http.StatusOK, "application/json", `{}`)
	h.env["CLMFORM_RELAY_URL"] = srv.URL
	h.env["CLM_ACCOUNT_ID"] = "acct-1"
	h.saveWorkflow()
	h.driver.inputs = []string{"Ada", "ada@example.com"}

	_, err := h.run("fill", "--token", "tok")
	if !errors.Is(err, tui.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
	if got := len(srv.Requests()); got != 0 {
		t.Fatalf("expected no relay request, got %d", got)
	}
}

func TestTokenLifecycle(t *testing.T) {
	h := newHarness(t)

	if out := h.mustRun("token", "status"); !strings.Contains(out, "No API token configured") {
		t.Fatalf("unexpected status without token:\n%s", out)
	}

	h.driver.inputs = []string{"prompted-opaque-token"}
	h.mustRun("token", "set")
	out := h.mustRun("token", "status")
	if !strings.Contains(out, "Format: opaque") || !strings.Contains(out, "(21 characters)") {
		t.Fatalf("unexpected token status:\n%s", out)
	}

	h.mustRun("token", "clear")
	if out := h.mustRun("token", "status"); !strings.Contains(out, "No API token configured") {
		t.Fatalf("token still present after clear:\n%s", out)
	}
}

func TestConfigSetAndClear(t *testing.T) {
	h := newHarness(t)
	fields := h.writeFile("fields.yaml", "- name: Account_Number\n  sampleValue: \"12345\"\n  required: true\n")

	h.mustRun("config", "set", "--workflow", "Accounts", "--fields", fields, "--root-element", "Data")
	out := h.mustRun("config", "show")
	for _, want := range []string{"workflowName: Accounts", "rootElement: Data", "name: Account_Number", "label: Account Number", "type: number", "dynamic: true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in config show:\n%s", want, out)
		}
	}

	h.mustRun("config", "clear")
	out = h.mustRun("config", "show")
	if !strings.Contains(out, "dynamic: false") || !strings.Contains(out, model.DefaultGeneralWorkflowName) {
		t.Fatalf("expected legacy defaults after clear:\n%s", out)
	}
}

func TestConfigLegacyNameRejectsUnknownKind(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("config", "legacy-name", "other", "Name"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestRenderJSON(t *testing.T) {
	h := newHarness(t)
	h.saveWorkflow()

	out := h.mustRun("render", "--renderer", "json", "Customer_Name=Ada")
	if !strings.Contains(out, `"Customer_Name"`) || !strings.Contains(out, `"Ada"`) {
		t.Fatalf("unexpected json render:\n%s", out)
	}
}

func TestOpenAPIRequiresDynamicConfiguration(t *testing.T) {
	h := newHarness(t)
	if _, err := h.run("openapi"); err == nil {
		t.Fatalf("expected error without configuration")
	}

	h.saveWorkflow()
	out := h.mustRun("openapi")
	var doc map[string]any
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if doc["openapi"] == nil || doc["paths"] == nil {
		t.Fatalf("unexpected document %v", doc)
	}
}

func TestFormPagePrefillsFromQuery(t *testing.T) {
	cfg := model.WorkflowConfiguration{
		WorkflowName: "Onboarding",
		Fields:       []model.FieldSpec{{Name: "Customer_Name", Label: "Customer Name", Type: model.FieldTypeText, Required: true}},
	}
	orch := orchestrator.New(orchestrator.WithWorkflow(cfg))
	rec := httptest.NewRecorder()
	formPage(orch).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?Customer_Name=Ada", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `value="Ada"`) || !strings.Contains(body, "Onboarding") {
		t.Fatalf("unexpected page:\n%s", body)
	}
}

func TestReadValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.json")
	if err := os.WriteFile(path, []byte(`{"a":"file","quantity":2}`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := readValues(nil, path, []string{"a=arg", "b=x=y"})
	if err != nil {
		t.Fatalf("readValues: %v", err)
	}
	want := encoder.Values{"a": "arg", "b": "x=y", "quantity": float64(2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	if _, err := readValues(nil, "", []string{"novalue"}); err == nil {
		t.Fatalf("expected error for argument without '='")
	}
}
