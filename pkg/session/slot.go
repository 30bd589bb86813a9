package session

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-cvgen/pkg/persist"
)

// Storage backends accepted by OpenSlot.
const (
	StorageBadger = "badger"
	StorageFile   = "file"
	StorageMemory = "memory"
)

// OpenSlot opens the storage backend named kind under dir. Badger keeps its
// files in dir/badger; the file backend writes one JSON file per key.
func OpenSlot(kind, dir string, logger *zap.Logger) (persist.Slot, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", StorageBadger:
		slot, err := persist.OpenBadger(persist.BadgerConfig{
			Path:   filepath.Join(dir, "badger"),
			Logger: logger,
		})
		if err != nil {
			return nil, err
		}
		return slot, nil
	case StorageFile:
		slot, err := persist.NewFileSlot(dir)
		if err != nil {
			return nil, err
		}
		return slot, nil
	case StorageMemory:
		return persist.NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("session: unknown storage %q", kind)
	}
}
