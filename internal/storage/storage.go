package storage

import (
	"context"
	"errors"
	"strings"
)

// KV is the key-value persistence primitive every pillar store is built on.
// Implementations only guarantee single-key atomicity.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

const (
	EngineSQLite = "sqlite"
	EngineJSON   = "json"
	EngineMemory = "memory"
)

var ErrUnsupportedEngine = errors.New("unsupported store engine")

// Opener builds the sqlite engine. It lives in the database package, which
// depends on storage, so the factory receives it instead of importing it.
type Opener func(path string) (KV, error)

// NewByEngine returns the KV selected by engine. An empty engine means sqlite.
func NewByEngine(engine, path string, openSQLite Opener) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		if openSQLite == nil {
			return nil, errors.New("sqlite engine is not available")
		}
		return openSQLite(path)
	case EngineJSON:
		return NewFileStore(path)
	case EngineMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.Join(ErrUnsupportedEngine, errors.New(engine))
	}
}
