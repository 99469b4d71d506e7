package executor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coderunner/coderun/internal/cerr"
	"github.com/coderunner/coderun/internal/config"
	"github.com/coderunner/coderun/internal/langtag"
)

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	dir := t.TempDir()
	for _, bin := range []string{"deno", "uv"} {
		script := "#!/bin/sh\ncat <<'EOF'\n{\"logs\":[],\"result\":1,\"error\":null}\nEOF\n"
		if err := os.WriteFile(filepath.Join(dir, bin), []byte(script), 0o755); err != nil {
			t.Fatalf("failed to write fake %s: %v", bin, err)
		}
	}
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))

	cfg := config.Defaults()
	cfg.CacheRoot = t.TempDir()
	cfg.DenoPath = filepath.Join(dir, "deno")
	cfg.UvPath = filepath.Join(dir, "uv")
	return New(cfg)
}

func TestExecutorDispatchesToRegisteredLanguages(t *testing.T) {
	e := newTestExecutor(t)

	for _, lang := range []langtag.Tag{langtag.Js, langtag.Ts, langtag.Python} {
		outcome, err := e.Run(context.Background(), lang, "def main(i): return 1", "", time.Second)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", lang, err)
		}
		if !outcome.Result.Success {
			t.Fatalf("%s: expected success, got %+v", lang, outcome.Result)
		}
	}
}

func TestExecutorRejectsUnknownLanguage(t *testing.T) {
	e := newTestExecutor(t)
	_, err := e.Run(context.Background(), langtag.Tag(99), "code", "", time.Second)
	if !cerr.Is(err, cerr.KindUnsupportedLanguage) {
		t.Fatalf("expected KindUnsupportedLanguage, got %v", err)
	}
}
