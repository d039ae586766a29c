package store

import (
	"context"
	"errors"
	"time"
)

// Snapshot keys, one per entity store.
const (
	KeyTasks  = "tasks"
	KeyHabits = "habits"
	KeyNotes  = "notes"
	KeyTimer  = "timer"
	KeySocial = "social"
	KeyWeb3   = "web3"
	KeyApp    = "app"
)

// Keys lists every snapshot key.
var Keys = []string{KeyTasks, KeyHabits, KeyNotes, KeyTimer, KeySocial, KeyWeb3, KeyApp}

// ErrNotFound is returned when no snapshot exists for a key.
var ErrNotFound = errors.New("snapshot not found")

// SnapshotInfo describes a stored snapshot without its payload.
type SnapshotInfo struct {
	Key       string    `db:"key"`
	Size      int       `db:"size"`
	Revision  int       `db:"revision"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Store persists one independently keyed snapshot per entity store.
// Each save overwrites the previous snapshot for its key.
type Store interface {
	SaveSnapshot(ctx context.Context, key string, data []byte) error
	LoadSnapshot(ctx context.Context, key string) ([]byte, error)
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
	DeleteSnapshot(ctx context.Context, key string) error

	SaveJSON(ctx context.Context, key string, v any) error
	LoadJSON(ctx context.Context, key string, v any) (bool, error)

	Close() error
}
