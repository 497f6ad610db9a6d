package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	resultsout "vlx/internal/modules/results/adapter/out"
	"vlx/internal/modules/results/dto"
	resultsin "vlx/internal/modules/results/port/in"
	"vlx/internal/modules/results/service"
	"vlx/internal/modules/results/usecase"
	"vlx/internal/platform/clock"
	apperrors "vlx/internal/platform/errors"
	"vlx/internal/platform/kv"
	"vlx/internal/platform/logging"
	"vlx/internal/platform/markdown"
)

type seqID struct {
	n *int
}

func (s seqID) New() string {
	*s.n++
	return fmt.Sprintf("result-%02d", *s.n)
}

var completedAt = time.Date(2025, 5, 4, 9, 30, 0, 0, time.UTC)

func newInteractor(store kv.Store) resultsin.Usecase {
	n := 0
	svc := service.NewResultService(clock.Fixed(completedAt), seqID{n: &n}, resultsout.NewKVHistoryStore(store, logging.Discard()))
	return usecase.NewInteractor(svc, resultsout.NewMarkdownExporter())
}

func TestElevenCompletionsEvictTheFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	uc := newInteractor(store)
	for n := 1; n <= 11; n++ {
		lab := "optics"
		if n%2 == 0 {
			lab = "pendulum"
		}
		if _, err := uc.Record(ctx, dto.RecordInput{LabID: lab, LabTitle: strings.ToUpper(lab), Score: 80 + n}); err != nil {
			t.Fatalf("record %d: %v", n, err)
		}
	}

	history, err := newInteractor(store).History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 10 {
		t.Fatalf("expected 10 records, got %d", len(history))
	}
	for i, r := range history {
		if want := fmt.Sprintf("result-%02d", i+2); r.ID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, r.ID)
		}
	}
	latest, err := uc.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest.ID != "result-11" || latest.Score != 91 || !latest.Timestamp.Equal(completedAt) {
		t.Fatalf("unexpected latest: %+v", latest)
	}
}

func TestRecordRejectsInvalidScoreWithoutWriting(t *testing.T) {
	t.Parallel()
	store := kv.NewMemoryStore()
	uc := newInteractor(store)
	if _, err := uc.Record(context.Background(), dto.RecordInput{LabID: "optics", Score: 120}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid score, got %v", err)
	}
	if len(store.Keys()) != 0 {
		t.Fatalf("expected no history write")
	}
	if _, err := uc.Latest(context.Background()); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected empty history, got %v", err)
	}
}

func TestCorruptHistoryStartsOver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := kv.NewMemoryStore()
	if err := store.Set(ctx, kv.ResultHistory.Key(""), []byte(`[{"id":"legacy"}]`)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	uc := newInteractor(store)
	history, err := uc.History(ctx)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected unversioned history to be ignored, got %+v", history)
	}
	if _, err := uc.Record(ctx, dto.RecordInput{LabID: "optics", LabTitle: "Optics", Score: 90}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if history, _ = uc.History(ctx); len(history) != 1 {
		t.Fatalf("expected a fresh history, got %+v", history)
	}
}

func TestExportWritesNotesAndKeepsIndexEdits(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "export")
	uc := newInteractor(kv.NewMemoryStore())
	if _, err := uc.Export(ctx, dto.ExportInput{Dir: " "}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected missing dir to fail, got %v", err)
	}
	if _, err := uc.Record(ctx, dto.RecordInput{LabID: "optics", LabTitle: "Light & Lenses", Score: 84}); err != nil {
		t.Fatalf("record: %v", err)
	}

	out, err := uc.Export(ctx, dto.ExportInput{Dir: dir})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(out.Notes) != 1 || !strings.Contains(filepath.Base(out.Notes[0]), "light-lenses") {
		t.Fatalf("unexpected notes: %v", out.Notes)
	}
	raw, err := os.ReadFile(out.Notes[0])
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	meta, body, err := markdown.Split(string(raw))
	if err != nil {
		t.Fatalf("split note: %v", err)
	}
	if meta["lab_id"] != "optics" || meta["score"] != 84 || !strings.Contains(body, "Score: 84/100") {
		t.Fatalf("unexpected note: %v %q", meta, body)
	}

	index, err := os.ReadFile(out.Index)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	edited := string(index) + "\nMy own notes.\n"
	if err := os.WriteFile(out.Index, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit index: %v", err)
	}
	if _, err := uc.Record(ctx, dto.RecordInput{LabID: "optics", LabTitle: "Light & Lenses", Score: 95}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := uc.Export(ctx, dto.ExportInput{Dir: dir}); err != nil {
		t.Fatalf("export again: %v", err)
	}
	index, err = os.ReadFile(out.Index)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	text := string(index)
	if !strings.Contains(text, "My own notes.") || !strings.Contains(text, "| 95 |") || strings.Count(text, "vlx:results:start") != 1 {
		t.Fatalf("unexpected index after re-export:\n%s", text)
	}
}
