package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-clmform/pkg/model"
)

// WorkflowStore persists the dynamic workflow configuration and the legacy
// workflow name overrides.
type WorkflowStore struct {
	blob Blob
	mu   sync.Mutex
}

// NewWorkflowStore wraps blob.
func NewWorkflowStore(blob Blob) *WorkflowStore {
	return &WorkflowStore{blob: blob}
}

// Load returns the stored configuration. A missing document yields the zero
// configuration, which disables dynamic mode.
func (s *WorkflowStore) Load(ctx context.Context) (model.WorkflowConfiguration, error) {
	var cfg model.WorkflowConfiguration
	if _, err := readJSON(ctx, s.blob, KeyWorkflowConfiguration, &cfg); err != nil {
		return model.WorkflowConfiguration{}, err
	}
	return cfg, nil
}

// Save replaces the stored configuration after validating it.
func (s *WorkflowStore) Save(ctx context.Context, cfg model.WorkflowConfiguration) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(ctx, s.blob, KeyWorkflowConfiguration, cfg)
}

// Clear removes the configuration, returning the system to legacy mode.
func (s *WorkflowStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blob.Delete(ctx, KeyWorkflowConfiguration)
}

// LegacyNames returns the stored legacy workflow name overrides.
func (s *WorkflowStore) LegacyNames(ctx context.Context) (model.LegacyWorkflowNames, error) {
	names := model.LegacyWorkflowNames{}
	if _, err := readJSON(ctx, s.blob, KeyLegacyWorkflowNames, &names); err != nil {
		return nil, err
	}
	return names, nil
}

// SetLegacyName stores the CLM workflow name used for a legacy workflow kind.
func (s *WorkflowStore) SetLegacyName(ctx context.Context, kind, name string) error {
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return errors.New("store: workflow kind is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	names := model.LegacyWorkflowNames{}
	if _, err := readJSON(ctx, s.blob, KeyLegacyWorkflowNames, &names); err != nil {
		return err
	}
	names[kind] = strings.TrimSpace(name)
	return writeJSON(ctx, s.blob, KeyLegacyWorkflowNames, names)
}
