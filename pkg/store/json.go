package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// readJSON decodes the document at key into out. found is false when the
// document does not exist.
func readJSON(ctx context.Context, blob Blob, key string, out any) (found bool, err error) {
	data, err := blob.Read(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func writeJSON(ctx context.Context, blob Blob, key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return blob.Write(ctx, key, data)
}
