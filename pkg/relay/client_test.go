package relay_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/relay"
	"github.com/goliatone/go-clmform/pkg/testsupport"
)

func TestClient_SubmitWorkflow(t *testing.T) {
	srv := testsupport.NewRecordingServer(t, http.StatusCreated, "application/json", `{"Id":"wf-1"}`)
	client, err := relay.NewClient(srv.URL + "/")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	req := relay.Request{Token: "tok", AccountID: "acct", Payload: model.SubmissionPayload{Name: "Flow", Params: "<a/>"}}
	resp, err := client.SubmitWorkflow(testsupport.Context(), req)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !resp.OK() || string(resp.Body) != `{"Id":"wf-1"}` {
		t.Fatalf("unexpected response %#v", resp)
	}

	got := srv.Last(t)
	if got.Path != relay.WorkflowsPath || got.Header.Get("Content-Type") != "application/json" {
		t.Fatalf("unexpected request %s %v", got.Path, got.Header)
	}
	if !strings.Contains(got.Body, `"Params":"<a/>"`) {
		t.Fatalf("expected unescaped params in body %s", got.Body)
	}
	var body map[string]any
	if err := json.Unmarshal([]byte(got.Body), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	want := map[string]any{
		"token":     "tok",
		"accountId": "acct",
		"payload":   map[string]any{"Name": "Flow", "Params": "<a/>"},
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := testsupport.NewRecordingServer(t, http.StatusOK, "", "")
	client, err := relay.NewClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	srv.Close()

	if _, err := client.SubmitWorkflow(testsupport.Context(), relay.Request{}); err == nil {
		t.Fatalf("expected transport error")
	}
	if _, err := relay.NewClient(" "); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}
