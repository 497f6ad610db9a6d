package out_test

import (
	"context"
	"encoding/json"
	"testing"

	workplaceout "vlx/internal/modules/workplace/adapter/out"
	"vlx/internal/modules/workplace/domain"
	"vlx/internal/platform/kv"
	"vlx/internal/platform/logging"
)

func TestKVStateStoreRecordShape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	store := workplaceout.NewKVStateStore(mem, logging.Discard())
	exp := domain.NewExperiment("optics", []string{"laser", "prism"}, []domain.Parameter{{Name: "angle", Min: 0, Max: 10, Value: 5}})
	if err := store.Save(ctx, domain.Workplace{Experiment: exp, SustainabilityEnabled: true}); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, found, err := mem.Get(ctx, "workplace-optics")
	if err != nil || !found {
		t.Fatalf("expected workplace-optics key, found=%v err=%v", found, err)
	}
	var env struct {
		Schema  string
		Version int
		Data    map[string]json.RawMessage
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Schema != "workplace" || env.Version != 1 {
		t.Fatalf("unexpected envelope: %s v%d", env.Schema, env.Version)
	}
	for _, field := range []string{"selectedTools", "experiment", "sustainabilityEnabled"} {
		if _, ok := env.Data[field]; !ok {
			t.Fatalf("missing field %s in %s", field, raw)
		}
	}

	loaded, found, err := store.Load(ctx, "optics")
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if !loaded.SustainabilityEnabled || len(loaded.Experiment.SelectedTools) != 2 || loaded.Experiment.Progress != exp.Progress {
		t.Fatalf("unexpected round trip: %+v", loaded)
	}
}

func TestKVStateStoreClampsTamperedValues(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	mem := kv.NewMemoryStore()
	tampered := `{"schema":"workplace","version":1,"data":{"selectedTools":["a","b","c","d","e","f","g"],` +
		`"experiment":{"parameters":[{"name":"angle","min":0,"max":10,"value":99}],"paused":true}}}`
	if err := mem.Set(ctx, kv.Workplace.Key("optics"), []byte(tampered)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	loaded, found, err := workplaceout.NewKVStateStore(mem, logging.Discard()).Load(ctx, "optics")
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	exp := loaded.Experiment
	if len(exp.SelectedTools) != domain.ToolTarget || exp.Parameters[0].Value != 10 || exp.Progress != 100 || !exp.Paused {
		t.Fatalf("expected capped and clamped state, got %+v", exp)
	}
}
