package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// SaveJSON marshals v and stores it under key.
func (s *SQLiteStore) SaveJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling snapshot %s: %w", key, err)
	}
	return s.SaveSnapshot(ctx, key, data)
}

// LoadJSON unmarshals the snapshot under key into v. It reports false,
// leaving v untouched, when nothing has been stored yet.
func (s *SQLiteStore) LoadJSON(ctx context.Context, key string, v any) (bool, error) {
	data, err := s.LoadSnapshot(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("unmarshaling snapshot %s: %w", key, err)
	}
	return true, nil
}
