package clm_test

import (
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-clmform/pkg/clm"
	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/testsupport"
)

func TestStartWorkflow(t *testing.T) {
	srv := testsupport.NewRecordingServer(t, http.StatusCreated, "application/json", `{"Href":"https://x/v2/acct/workflows/wf-9"}`)
	client := clm.NewClient(clm.WithBaseURL(srv.URL + "/v2/"))

	resp, err := client.StartWorkflow(testsupport.Context(), "tok", "acct-1", model.SubmissionPayload{Name: "Flow", Params: "<params/>"})
	if err != nil {
		t.Fatalf("start workflow: %v", err)
	}
	if !resp.OK() || resp.Status != http.StatusCreated || resp.ContentType != "application/json" {
		t.Fatalf("unexpected response: %#v", resp)
	}

	got := srv.Last(t)
	if got.Method != http.MethodPost || got.Path != "/v2/acct-1/workflows" {
		t.Fatalf("unexpected request %s %s", got.Method, got.Path)
	}
	if auth := got.Header.Get("Authorization"); auth != "Bearer tok" {
		t.Fatalf("unexpected authorization %q", auth)
	}
	if diff := cmp.Diff(`{"Name":"Flow","Params":"<params/>"}`, got.Body); diff != "" {
		t.Fatalf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestStartWorkflow_RequiresCredentials(t *testing.T) {
	client := clm.NewClient()
	ctx := testsupport.Context()
	if _, err := client.StartWorkflow(ctx, "", "acct", model.SubmissionPayload{}); !errors.Is(err, clm.ErrMissingToken) {
		t.Fatalf("expected ErrMissingToken, got %v", err)
	}
	if _, err := client.StartWorkflow(ctx, "tok", " ", model.SubmissionPayload{}); !errors.Is(err, clm.ErrMissingAccount) {
		t.Fatalf("expected ErrMissingAccount, got %v", err)
	}
}

func TestGet_Resources(t *testing.T) {
	srv := testsupport.NewRecordingServer(t, http.StatusOK, "application/json", `{}`)
	client := clm.NewClient(clm.WithBaseURL(srv.URL), clm.WithDefaultAccount("default-acct"))

	cases := []struct {
		resource clm.Resource
		account  string
		path     string
		query    string
	}{
		{resource: clm.CurrentMember(), account: "a1", path: "/a1/members/current"},
		{resource: clm.CurrentUserWorkItems(), path: "/default-acct/members/current/workitems"},
		{resource: clm.UserWorkflowQueues(), account: "a1", path: "/a1/members/current/workflowqueues"},
		{resource: clm.WorkflowQueues(), path: "/default-acct/workflowqueues"},
		{resource: clm.Member("m 1"), account: "a1", path: "/a1/members/m 1"},
		{resource: clm.Workflow("wf-1"), path: "/default-acct/workflows/wf-1"},
		{resource: clm.DocumentAttributes("doc-1"), path: "/default-acct/documents/doc-1", query: "expand=AttributeGroups"},
		{resource: clm.QueueWorkItems("q-1"), account: "a1", path: "/a1/workflowqueues/q-1/workitems"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			if _, err := client.Get(testsupport.Context(), "tok", tc.account, tc.resource); err != nil {
				t.Fatalf("get: %v", err)
			}
			got := srv.Last(t)
			if got.Path != tc.path || got.Query != tc.query {
				t.Fatalf("want %s?%s, got %s?%s", tc.path, tc.query, got.Path, got.Query)
			}
		})
	}
}

func TestGet_RequiresAccount(t *testing.T) {
	if _, err := clm.NewClient().Get(testsupport.Context(), "tok", "", clm.CurrentMember()); !errors.Is(err, clm.ErrMissingAccount) {
		t.Fatalf("expected ErrMissingAccount, got %v", err)
	}
}

func TestExchangeCode(t *testing.T) {
	srv := testsupport.NewRecordingServer(t, http.StatusOK, "application/json", `{"access_token":"abc"}`)
	client := clm.NewClient(clm.WithOAuthURL(srv.URL + "/oauth/token"))

	resp, err := client.ExchangeCode(testsupport.Context(), clm.CodeExchange{Code: "c", ClientID: "id", RedirectURI: "https://app/cb"})
	if err != nil {
		t.Fatalf("exchange: %v", err)
	}
	if string(resp.Body) != `{"access_token":"abc"}` {
		t.Fatalf("unexpected body %s", resp.Body)
	}

	got := srv.Last(t)
	form, err := url.ParseQuery(got.Body)
	if err != nil {
		t.Fatalf("parse form: %v", err)
	}
	if form.Get("grant_type") != "authorization_code" || form.Get("client_id") != "id" || form.Has("client_secret") {
		t.Fatalf("unexpected form %v", form)
	}

	if _, err := client.ExchangeCode(testsupport.Context(), clm.CodeExchange{Code: "c"}); err == nil {
		t.Fatalf("expected missing parameters error")
	}
}
