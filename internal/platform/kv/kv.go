// Package kv is the namespaced key-value persistence layer behind every lab
// session component. Stores are plain byte stores; typed access goes through
// Entity, which owns the key layout and the schema version of its values.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// Store is the minimal persistence contract. Get on an absent key reports
// found=false without an error. Set overwrites the whole value; the last
// writer wins.
type Store interface {
	Get(ctx context.Context, key Key) ([]byte, bool, error)
	Set(ctx context.Context, key Key, value []byte) error
}

type Key string

// Entity describes one persisted record type.
type Entity struct {
	Name string
	// LabScoped entities are keyed as "<Name>-<labID>"; the others use Name alone.
	LabScoped bool
	Version   int
}

var (
	Entrance      = Entity{Name: "lab-entrance", LabScoped: true, Version: 1}
	Workplace     = Entity{Name: "workplace", LabScoped: true, Version: 1}
	ResultHistory = Entity{Name: "vlx-results-history", Version: 1}
	Accessibility = Entity{Name: "accessibility-settings", Version: 1}
)

// Key builds the storage key for a lab id. Global entities ignore labID.
func (e Entity) Key(labID string) Key {
	if !e.LabScoped {
		return Key(e.Name)
	}
	return Key(e.Name + "-" + strings.TrimSpace(labID))
}

type envelope struct {
	Schema  string          `json:"schema"`
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Encode wraps v in the entity's versioned envelope.
func (e Entity) Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", e.Name, err)
	}
	out, err := json.Marshal(envelope{Schema: e.Name, Version: e.Version, Data: data})
	if err != nil {
		return nil, fmt.Errorf("marshal %s envelope: %w", e.Name, err)
	}
	return out, nil
}

// Decode unwraps a value written by Encode. Any payload that is not a
// well-formed envelope of this entity at this version is rejected.
func (e Entity) Decode(raw []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode %s envelope: %w", e.Name, err)
	}
	if env.Schema != e.Name {
		return fmt.Errorf("decode %s: foreign schema %q", e.Name, env.Schema)
	}
	if env.Version != e.Version {
		return fmt.Errorf("decode %s: unsupported version %d", e.Name, env.Version)
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("decode %s: empty payload", e.Name)
	}
	if err := json.Unmarshal(env.Data, v); err != nil {
		return fmt.Errorf("decode %s payload: %w", e.Name, err)
	}
	return nil
}

// Load reads and decodes the record of entity e for labID. A corrupt or
// outdated record is logged and reported as absent so callers fall back to
// their defaults; only store failures are returned as errors.
func Load[T any](ctx context.Context, store Store, log *slog.Logger, e Entity, labID string) (T, bool, error) {
	var zero T
	key := e.Key(labID)
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return zero, false, fmt.Errorf("get %s: %w", key, err)
	}
	if !found {
		return zero, false, nil
	}
	var v T
	if err := e.Decode(raw, &v); err != nil {
		if log != nil {
			log.Warn("discarding unreadable record", "key", string(key), "err", err)
		}
		return zero, false, nil
	}
	return v, true, nil
}

// Save encodes v and overwrites the record of entity e for labID.
func Save[T any](ctx context.Context, store Store, e Entity, labID string, v T) error {
	raw, err := e.Encode(v)
	if err != nil {
		return err
	}
	key := e.Key(labID)
	if err := store.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}
