package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/katalvlaran/tubesort/liquid"
)

var (
	// ErrNotFound is returned by Store.Load for an unknown key.
	ErrNotFound = errors.New("cache: entry not found")
	// ErrClosed is returned by stores used after Close.
	ErrClosed = errors.New("cache: store closed")
)

// Entry is a memoized search outcome.
type Entry struct {
	Solved   bool            `json:"solved"`
	Actions  []liquid.Action `json:"actions"`
	Explored int             `json:"explored"`
}

// Store persists entries by key. Implementations are safe for concurrent use.
type Store interface {
	Load(ctx context.Context, key string) (Entry, error)
	Save(ctx context.Context, key string, e Entry) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Key returns the cache key of s.
func Key(s liquid.State) string {
	sum := sha256.Sum256([]byte(s.Key()))
	return hex.EncodeToString(sum[:])
}

func marshalEntry(e Entry) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal entry: %w", err)
	}
	return data, nil
}

func unmarshalEntry(data []byte) (Entry, error) {
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return Entry{}, fmt.Errorf("failed to unmarshal entry: %w", err)
	}
	return e, nil
}
