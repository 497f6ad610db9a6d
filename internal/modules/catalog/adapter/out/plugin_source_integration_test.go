package out_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	catalogout "vlx/internal/modules/catalog/adapter/out"
	"vlx/internal/platform/logging"
)

func TestPluginLabSourceReferencePlugin(t *testing.T) {
	if testing.Short() {
		t.Skip("builds a plugin binary")
	}
	binPath := buildReferencePlugin(t)
	source := catalogout.NewPluginLabSource(binPath, logging.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	labs, err := source.List(ctx)
	if err != nil {
		t.Fatalf("list labs from plugin: %v", err)
	}
	if len(labs) == 0 {
		t.Fatalf("expected labs from reference plugin")
	}
	for _, lab := range labs {
		if err := lab.Validate(); err != nil {
			t.Fatalf("plugin lab %s invalid: %v", lab.ID, err)
		}
	}
}

func buildReferencePlugin(t *testing.T) string {
	t.Helper()
	binPath := filepath.Join(t.TempDir(), "catalog-reference")
	cmd := exec.Command("go", "build", "-o", binPath, "./plugins/catalog-reference")
	cmd.Dir = repositoryRoot(t)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build reference plugin: %v\n%s", err, string(out))
	}
	return binPath
}

func repositoryRoot(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller failed")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "../../../../../"))
}
