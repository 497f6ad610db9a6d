package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"vlx/internal/modules/results/domain"
	resultsout "vlx/internal/modules/results/port/out"
	"vlx/internal/platform/markdown"
	"vlx/internal/platform/slug"
)

const indexName = "index.md"

var indexBlock = markdown.Block{Start: "<!-- vlx:results:start -->", End: "<!-- vlx:results:end -->"}

type noteMeta struct {
	ID        string `yaml:"id"`
	LabID     string `yaml:"lab_id"`
	LabTitle  string `yaml:"lab_title"`
	Score     int    `yaml:"score"`
	Timestamp string `yaml:"timestamp"`
}

// MarkdownExporter writes one note per result and an index whose generated
// table is refreshed in place.
type MarkdownExporter struct{}

func NewMarkdownExporter() resultsout.Exporter {
	return MarkdownExporter{}
}

func (MarkdownExporter) Export(ctx context.Context, dir string, records []domain.ResultRecord) (string, []string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, fmt.Errorf("create export dir: %w", err)
	}
	notes := make([]string, 0, len(records))
	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return "", nil, err
		}
		path, err := writeNote(dir, r)
		if err != nil {
			return "", nil, err
		}
		notes = append(notes, path)
	}
	index, err := writeIndex(dir, records)
	if err != nil {
		return "", nil, err
	}
	return index, notes, nil
}

func noteName(r domain.ResultRecord) string {
	return fmt.Sprintf("%s-%s-%s.md", r.Timestamp.Format("20060102-150405"), slug.Make(r.LabTitle), shortID(r.ID))
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[:8]
	}
	if id == "" {
		return "result"
	}
	return id
}

func writeNote(dir string, r domain.ResultRecord) (string, error) {
	meta := noteMeta{
		ID:        r.ID,
		LabID:     r.LabID,
		LabTitle:  r.LabTitle,
		Score:     r.Score,
		Timestamp: r.Timestamp.Format(time.RFC3339),
	}
	body := fmt.Sprintf("# %s\n\n- Lab: %s\n- Score: %d/%d\n- Completed: %s\n",
		r.LabTitle, r.LabID, r.Score, domain.MaxScore, r.Timestamp.Format("2006-01-02 15:04 MST"))
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, noteName(r))
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write result note: %w", err)
	}
	return path, nil
}

func writeIndex(dir string, records []domain.ResultRecord) (string, error) {
	path := filepath.Join(dir, indexName)
	current := "# Lab results\n"
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		current = string(raw)
	case !os.IsNotExist(err):
		return "", fmt.Errorf("read results index: %w", err)
	}

	var table strings.Builder
	table.WriteString("| Completed | Lab | Score |\n|---|---|---|\n")
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		fmt.Fprintf(&table, "| %s | [%s](%s) | %d |\n", r.Timestamp.Format("2006-01-02 15:04"), r.LabTitle, noteName(r), r.Score)
	}
	if err := os.WriteFile(path, []byte(indexBlock.Replace(current, table.String())), 0o644); err != nil {
		return "", fmt.Errorf("write results index: %w", err)
	}
	return path, nil
}
