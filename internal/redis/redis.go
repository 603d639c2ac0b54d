package redis

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	redisClient "github.com/go-redis/redis/v8"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zeebo/blake3"
)

const keyPrefix = "chordsheet:"

// CachedSheet is a rendered chord sheet stored in the cache.
type CachedSheet struct {
	HTML       string    `msgpack:"html"`
	Title      string    `msgpack:"title,omitempty"`
	Artist     string    `msgpack:"artist,omitempty"`
	RenderedAt time.Time `msgpack:"rendered_at"`
}

type DBManager struct {
	client *redisClient.Client
	ttl    time.Duration
}

// NewDBManager connects to a TLS redis endpoint given as host:port.
func NewDBManager(url, password string, ttl time.Duration) (*DBManager, error) {
	opt, err := redisClient.ParseURL(fmt.Sprintf("rediss://default:%s@%s", password, url))
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &DBManager{client: redisClient.NewClient(opt), ttl: ttl}, nil
}

// NewDBManagerWithClient wraps an existing client.
func NewDBManagerWithClient(client *redisClient.Client, ttl time.Duration) *DBManager {
	return &DBManager{client: client, ttl: ttl}
}

// SheetKey derives the cache key for a ChordPro source. The render mode is
// part of the key since raw and escaped output differ.
func SheetKey(source string, raw bool) string {
	mode := "esc"
	if raw {
		mode = "raw"
	}
	sum := blake3.Sum256([]byte(source))
	return keyPrefix + mode + ":" + hex.EncodeToString(sum[:])
}

// EncodeSheet serialises a sheet for storage.
func EncodeSheet(sheet CachedSheet) ([]byte, error) {
	return msgpack.Marshal(&sheet)
}

// DecodeSheet parses a stored sheet.
func DecodeSheet(data []byte) (*CachedSheet, error) {
	var sheet CachedSheet
	if err := msgpack.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to decode cached sheet: %w", err)
	}
	return &sheet, nil
}

// GetSheet returns the cached sheet under key. A miss is (nil, false, nil).
func (redis *DBManager) GetSheet(ctx context.Context, key string) (*CachedSheet, bool, error) {
	data, err := redis.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redisClient.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", key, err)
	}

	sheet, err := DecodeSheet(data)
	if err != nil {
		return nil, false, err
	}
	return sheet, true, nil
}

// SetSheet stores sheet under key with the manager's TTL.
func (redis *DBManager) SetSheet(ctx context.Context, key string, sheet CachedSheet) error {
	data, err := EncodeSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to encode sheet: %w", err)
	}
	if err := redis.client.Set(ctx, key, data, redis.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (redis *DBManager) Close() error {
	return redis.client.Close()
}
