package kv_test

import (
	"context"
	"testing"

	"vlx/internal/platform/kv"
	"vlx/internal/platform/logging"
)

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestEntityKeys(t *testing.T) {
	t.Parallel()
	cases := map[kv.Key]kv.Key{
		kv.Entrance.Key("optics-1"):      "lab-entrance-optics-1",
		kv.Workplace.Key("optics-1"):     "workplace-optics-1",
		kv.ResultHistory.Key("ignored"):  "vlx-results-history",
		kv.Accessibility.Key(""):         "accessibility-settings",
		kv.Entrance.Key("  padded-id  "): "lab-entrance-padded-id",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("expected key %q, got %q", want, got)
		}
	}
}

func TestLoadAbsentKeyIsNotAnError(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	v, found, err := kv.Load[sample](context.Background(), store, logging.Discard(), kv.Entrance, "nope")
	if err != nil {
		t.Fatalf("absent key must not fail: %v", err)
	}
	if found || v != (sample{}) {
		t.Fatalf("expected zero value for absent key, got %+v found=%t", v, found)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	in := sample{Name: "beam", Count: 3}
	if err := kv.Save(ctx, store, kv.Workplace, "lab-a", in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, found, err := kv.Load[sample](ctx, store, nil, kv.Workplace, "lab-a")
	if err != nil || !found {
		t.Fatalf("load: found=%t err=%v", found, err)
	}
	if out != in {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestCorruptRecordsBehaveLikeAbsentKeys(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	foreign, err := kv.Workplace.Encode(sample{Name: "x"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	future := kv.Entrance
	future.Version = 99
	newer, err := future.Encode(sample{Name: "y"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	payloads := map[string][]byte{
		"garbage":  []byte("{not json"),
		"legacy":   []byte(`{"mode":"solo","difficulty":1}`),
		"foreign":  foreign,
		"future":   newer,
		"nulldata": []byte(`{"schema":"lab-entrance","version":1}`),
	}
	for lab, raw := range payloads {
		if err := store.Set(ctx, kv.Entrance.Key(lab), raw); err != nil {
			t.Fatalf("set: %v", err)
		}
		v, found, err := kv.Load[sample](ctx, store, logging.Discard(), kv.Entrance, lab)
		if err != nil {
			t.Fatalf("%s: corrupt record must not fail: %v", lab, err)
		}
		if found || v != (sample{}) {
			t.Fatalf("%s: corrupt record should read as absent, got %+v", lab, v)
		}
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	buf := []byte("abc")
	if err := store.Set(ctx, "k", buf); err != nil {
		t.Fatalf("set: %v", err)
	}
	buf[0] = 'z'
	got, _, _ := store.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("store must not alias caller buffers, got %q", got)
	}
	got[1] = 'z'
	again, _, _ := store.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("store must not alias returned buffers, got %q", again)
	}
	if len(store.Keys()) != 1 {
		t.Fatalf("expected one key")
	}
}
