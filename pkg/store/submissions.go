package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-clmform/pkg/model"
)

// SubmissionOption customises a SubmissionLog.
type SubmissionOption func(*SubmissionLog)

// WithSubmissionClock overrides the clock used to stamp status updates.
func WithSubmissionClock(now func() time.Time) SubmissionOption {
	return func(l *SubmissionLog) {
		if now != nil {
			l.now = now
		}
	}
}

// SubmissionLog is the append-only list of successful submissions. Records
// are kept in submission order.
type SubmissionLog struct {
	blob Blob
	now  func() time.Time
	mu   sync.Mutex
}

// NewSubmissionLog wraps blob.
func NewSubmissionLog(blob Blob, options ...SubmissionOption) *SubmissionLog {
	l := &SubmissionLog{blob: blob, now: time.Now}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Append adds record to the log.
func (l *SubmissionLog) Append(ctx context.Context, record model.SubmissionRecord) error {
	if strings.TrimSpace(record.ID) == "" {
		return errors.New("store: submission id is required")
	}
	if record.Status == "" {
		record.Status = model.StatusSubmitted
	}
	if record.SubmittedAt.IsZero() {
		record.SubmittedAt = l.now().UTC()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load(ctx)
	if err != nil {
		return err
	}
	return l.save(ctx, append(records, record))
}

// List returns every record in submission order.
func (l *SubmissionLog) List(ctx context.Context) ([]model.SubmissionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(ctx)
}

// Get returns the first record with id.
func (l *SubmissionLog) Get(ctx context.Context, id string) (model.SubmissionRecord, error) {
	records, err := l.List(ctx)
	if err != nil {
		return model.SubmissionRecord{}, err
	}
	for _, record := range records {
		if record.ID == id {
			return record, nil
		}
	}
	return model.SubmissionRecord{}, fmt.Errorf("%w: submission %q", ErrNotFound, id)
}

// UpdateStatus sets the status of the first record with id and stamps
// UpdatedAt.
func (l *SubmissionLog) UpdateStatus(ctx context.Context, id string, status model.SubmissionStatus) (model.SubmissionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	records, err := l.load(ctx)
	if err != nil {
		return model.SubmissionRecord{}, err
	}
	for i := range records {
		if records[i].ID != id {
			continue
		}
		updated := l.now().UTC()
		records[i].Status = status
		records[i].UpdatedAt = &updated
		if err := l.save(ctx, records); err != nil {
			return model.SubmissionRecord{}, err
		}
		return records[i], nil
	}
	return model.SubmissionRecord{}, fmt.Errorf("%w: submission %q", ErrNotFound, id)
}

// Record implements the orchestrator recorder contract.
func (l *SubmissionLog) Record(ctx context.Context, record model.SubmissionRecord) error {
	return l.Append(ctx, record)
}

func (l *SubmissionLog) load(ctx context.Context) ([]model.SubmissionRecord, error) {
	var records []model.SubmissionRecord
	if _, err := readJSON(ctx, l.blob, KeySubmissions, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (l *SubmissionLog) save(ctx context.Context, records []model.SubmissionRecord) error {
	return writeJSON(ctx, l.blob, KeySubmissions, records)
}
