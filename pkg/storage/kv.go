package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/tagduke/tagduke-cli/pkg/models"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrInvalidKey  = errors.New("invalid storage key")
)

// KV is the key-value contract every backend satisfies. It plays the role
// local storage plays for a browser page: string keys, opaque values.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Open returns the backend named by kind rooted at dataDir
func Open(kind, dataDir string) (KV, error) {
	switch kind {
	case models.BackendBadger, "":
		return OpenBadger(filepath.Join(dataDir, "db"))
	case models.BackendFile:
		return NewFileKV(filepath.Join(dataDir, "records"))
	case models.BackendMemory:
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", kind)
	}
}
