package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// SlotProfiles holds the JSON array of every saved profile
	SlotProfiles = "profilespace_profiles"

	// SlotSettings holds the JSON GlobalSettings record
	SlotSettings = "vanaclone_settings"
)

// ErrSlotNotFound is returned by Get when nothing was ever written to a slot
var ErrSlotNotFound = errors.New("slot not found")

// Store is a durable mapping from slot name to an opaque value. Every Put
// replaces the whole value; there are no partial writes.
type Store interface {
	Ping() error
	Get(slot string) ([]byte, error)
	Put(slot string, value []byte) error
	Delete(slot string) error
	Slots() ([]string, error)
	Close() error
}

// Backend selects a Store implementation
type Backend string

const (
	BackendBolt   Backend = "bolt"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// ParseBackend validates a backend name. The empty string selects bolt.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "", BackendBolt:
		return BackendBolt, nil
	case BackendSQLite, BackendMemory:
		return b, nil
	default:
		return "", fmt.Errorf("unknown storage backend %q (want bolt, sqlite or memory)", s)
	}
}

// FileName returns the data file name used by a backend inside the data dir.
func (b Backend) FileName() string {
	switch b {
	case BackendSQLite:
		return "vanaclone.db"
	case BackendMemory:
		return ""
	default:
		return "vanaclone.bolt"
	}
}

// Open creates the store for backend inside dir.
func Open(backend Backend, dir string) (Store, error) {
	switch backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return NewSQLite(filepath.Join(dir, backend.FileName()))
	case BackendBolt, "":
		return NewBolt(filepath.Join(dir, BackendBolt.FileName()))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func validSlot(slot string) error {
	if strings.TrimSpace(slot) == "" {
		return errors.New("slot name is required")
	}

	return nil
}
