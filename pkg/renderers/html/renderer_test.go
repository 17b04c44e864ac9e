package html_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-clmform/pkg/model"
	"github.com/goliatone/go-clmform/pkg/render"
	"github.com/goliatone/go-clmform/pkg/renderers/html"
)

func sampleForm() render.Form {
	form := render.NewForm("Agent contract", []model.FieldSpec{
		{Name: "Agent_Name", Label: "Agent Name", Type: model.FieldTypeText, SampleValue: "John Doe", Required: true},
		{Name: "Emails", Label: "Emails", Type: model.FieldTypeSelect, Options: []string{"Yes", "No"}, SampleValue: "Yes", Required: true},
		{Name: "Notes", Label: "Notes", Type: model.FieldTypeTextarea},
		{Name: "Contact", Label: "Contact", Type: model.FieldTypeEmail},
	})
	form.WorkflowName = "Agent Contract Workflow"
	return form
}

func TestRender_Controls(t *testing.T) {
	out, err := html.New().Render(context.Background(), sampleForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)

	for _, fragment := range []string{
		`<form class="clm-form" method="post">`,
		`<h2>Agent contract</h2>`,
		`<label for="Agent_Name">Agent Name *</label>`,
		`<input type="text" id="Agent_Name" name="Agent_Name" value="John Doe" placeholder="John Doe" required>`,
		`<option value="">Select...</option>`,
		`<option value="Yes" selected>Yes</option>`,
		`<textarea id="Notes" name="Notes" placeholder=""></textarea>`,
		`<input type="email" id="Contact" name="Contact"`,
		`<button type="submit">Submit</button>`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, got)
		}
	}
	if strings.Contains(got, "<html") {
		t.Fatalf("expected a bare form without page chrome")
	}
}

func TestRender_EscapesValuesAndSanitisesIntro(t *testing.T) {
	out, err := html.New().Render(context.Background(), sampleForm(), render.RenderOptions{
		Values: map[string]string{"Agent_Name": `<b>"Jane"</b>`},
		Intro:  `<p>Fill in <em>all</em> fields</p><script>alert(1)</script>`,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if strings.Contains(got, `<b>"Jane"</b>`) {
		t.Fatalf("expected value to be escaped\n%s", got)
	}
	if !strings.Contains(got, `<p>Fill in <em>all</em> fields</p>`) {
		t.Fatalf("expected allowed intro markup to survive\n%s", got)
	}
	if strings.Contains(got, "<script>") {
		t.Fatalf("expected script to be stripped\n%s", got)
	}
}

func TestRender_ErrorsAndHidden(t *testing.T) {
	out, err := html.New(html.WithSubmitLabel("Start workflow")).Render(context.Background(), sampleForm(), render.RenderOptions{
		Errors:     map[string][]string{"Contact": {"Please enter a valid email address"}},
		FormErrors: []string{"Please fill in all required fields: Agent_Name"},
		Hidden:     map[string]string{"mode": "dynamic"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	for _, fragment := range []string{
		`<li>Please fill in all required fields: Agent_Name</li>`,
		`<p class="clm-field__error">Please enter a valid email address</p>`,
		`<div class="clm-field clm-field--invalid">`,
		`<input type="hidden" name="mode" value="dynamic">`,
		`<button type="submit">Start workflow</button>`,
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, got)
		}
	}
}

func TestRender_Page(t *testing.T) {
	out, err := html.New(html.WithPage(true)).Render(context.Background(), sampleForm(), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	got := string(out)
	if !strings.HasPrefix(got, "<!DOCTYPE html>") || !strings.Contains(got, ".clm-form {") {
		t.Fatalf("expected standalone page with stylesheet\n%s", got)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
	calls     [][2]string
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, s.err
}

func TestRender_ThemeTokens(t *testing.T) {
	selector := &stubSelector{selection: &theme.Selection{
		Theme:   "vodafone",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "vodafone",
			Version: "1.0.0",
			Tokens:  map[string]string{"brand": "#e60000", "text": "#222"},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{"text": "#eee"}},
			},
		},
	}}

	out, err := html.New(html.WithThemeSelector(selector)).Render(context.Background(), sampleForm(), render.RenderOptions{
		Theme:   "vodafone",
		Variant: "dark",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(selector.calls) != 1 || selector.calls[0] != [2]string{"vodafone", "dark"} {
		t.Fatalf("unexpected selector calls %v", selector.calls)
	}
	got := string(out)
	if !strings.Contains(got, `style="--brand: #e60000; --text: #eee;"`) {
		t.Fatalf("expected css vars from merged tokens\n%s", got)
	}
	if !strings.Contains(got, `data-theme="vodafone" data-variant="dark"`) {
		t.Fatalf("expected theme data attributes\n%s", got)
	}
}

func TestRender_ThemeSelectionError(t *testing.T) {
	selector := &stubSelector{err: errors.New("unknown theme")}
	_, err := html.New(html.WithThemeSelector(selector)).Render(context.Background(), sampleForm(), render.RenderOptions{Theme: "nope"})
	if err == nil || !strings.Contains(err.Error(), "unknown theme") {
		t.Fatalf("expected selector error, got %v", err)
	}
}

func TestCSSVars(t *testing.T) {
	if got := html.CSSVars(map[string]string{"--space": "4px", "brand": "red"}); got != "--brand: red; --space: 4px;" {
		t.Fatalf("unexpected css vars %q", got)
	}
	if got := html.CSSVars(map[string]string{"brand": "red", "--brand": "blue"}); got != "--brand: blue;" {
		t.Fatalf("expected prefixed token to win once, got %q", got)
	}
	if got := html.CSSVars(nil); got != "" {
		t.Fatalf("expected empty style, got %q", got)
	}
}
