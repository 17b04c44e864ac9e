package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	pkgmodel "github.com/goliatone/go-clmform/pkg/model"
)

// ReferenceTime is the fixed instant used by clock-dependent tests.
var ReferenceTime = time.Date(2025, time.March, 4, 10, 30, 0, 0, time.UTC)

// FixedClock returns a clock that always reports at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// MustLoadWorkflowConfiguration loads a JSON workflow configuration fixture.
func MustLoadWorkflowConfiguration(t *testing.T, path string) pkgmodel.WorkflowConfiguration {
	t.Helper()

	cfg, err := LoadWorkflowConfiguration(path)
	if err != nil {
		t.Fatalf("load workflow configuration: %v", err)
	}
	return cfg
}

// LoadWorkflowConfiguration reads a JSON fixture into a WorkflowConfiguration,
// returning an error for callers managing setup outside of *testing.T.
func LoadWorkflowConfiguration(path string) (pkgmodel.WorkflowConfiguration, error) {
	if path == "" {
		return pkgmodel.WorkflowConfiguration{}, errors.New("testsupport: workflow configuration path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pkgmodel.WorkflowConfiguration{}, fmt.Errorf("testsupport: read workflow configuration: %w", err)
	}
	var out pkgmodel.WorkflowConfiguration
	if err := json.Unmarshal(data, &out); err != nil {
		return pkgmodel.WorkflowConfiguration{}, fmt.Errorf("testsupport: unmarshal workflow configuration: %w", err)
	}
	return out, nil
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
