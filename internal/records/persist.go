package records

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"strings"

	"mizman/internal/storage"
)

// decodeOrEmpty is the single place where a stored value that cannot be read
// turns into "no data". Missing keys are silent; read and decode failures are
// logged and then treated the same way.
func decodeOrEmpty[T any](ctx context.Context, kv storage.KV, key string) (T, bool) {
	var zero T
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Printf("⚠️ Read %s failed, using empty value: %v", key, err)
		return zero, false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return zero, false
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		log.Printf("⚠️ Stored %s is malformed, using empty value: %v", key, err)
		return zero, false
	}
	return v, true
}

// SaveOrLog writes value under key and swallows the failure. It is the only
// fire-and-forget write path: a dropped write is logged and never retried.
func SaveOrLog(ctx context.Context, kv storage.KV, key, value string) bool {
	if err := kv.Set(ctx, key, value); err != nil {
		log.Printf("⚠️ Write %s dropped: %v", key, err)
		return false
	}
	return true
}

// LoadJSON reads a JSON value. ok is false when the key is missing or unreadable.
func LoadJSON[T any](ctx context.Context, kv storage.KV, key string) (T, bool) {
	return decodeOrEmpty[T](ctx, kv, key)
}

// SaveJSONOrLog encodes v and writes it through SaveOrLog.
func SaveJSONOrLog[T any](ctx context.Context, kv storage.KV, key string, v T) bool {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("⚠️ Write %s dropped: %v", key, err)
		return false
	}
	return SaveOrLog(ctx, kv, key, string(data))
}

// LoadInt reads a string-encoded integer such as an epoch-ms timestamp.
func LoadInt(ctx context.Context, kv storage.KV, key string) (int64, bool) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Printf("⚠️ Read %s failed, using empty value: %v", key, err)
		return 0, false
	}
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		log.Printf("⚠️ Stored %s is not an integer, ignoring: %v", key, err)
		return 0, false
	}
	return n, true
}

func SaveIntOrLog(ctx context.Context, kv storage.KV, key string, n int64) bool {
	return SaveOrLog(ctx, kv, key, strconv.FormatInt(n, 10))
}

// LoadString reads a plain string preference.
func LoadString(ctx context.Context, kv storage.KV, key string) (string, bool) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		log.Printf("⚠️ Read %s failed, using default: %v", key, err)
		return "", false
	}
	if !ok || raw == "" {
		return "", false
	}
	return raw, true
}
