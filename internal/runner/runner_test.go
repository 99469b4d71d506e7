package runner

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/coderunner/coderun/internal/cache"
	"github.com/coderunner/coderun/internal/cerr"
	"github.com/coderunner/coderun/internal/config"
)

// writeFakeBinary installs a shell script named name on PATH (via a temp
// dir prepended to t's environment) that prints stdout to fd 1 regardless
// of its arguments, standing in for deno/uv in tests that don't need a
// real runtime installed.
func writeFakeBinary(t *testing.T, name, stdout string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake binary shim is POSIX shell only")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\ncat <<'EOF'\n" + stdout + "\nEOF\n"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake binary: %v", err)
	}

	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestJSRunnerCachesAfterFirstRun(t *testing.T) {
	writeFakeBinary(t, "deno", `{"logs":[],"result":7,"error":null}`)

	cfg := config.Defaults()
	cfg.CacheRoot = t.TempDir()
	c := cache.New(cfg.CacheRoot)
	r := NewJS(cfg, c)

	code := "function handler(input) { return 7; }"

	first, err := r.Run(context.Background(), code, "", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Cached {
		t.Fatalf("expected first run to be a cache miss")
	}
	if !first.Result.Success || first.Result.Result != float64(7) {
		t.Fatalf("unexpected result: %+v", first.Result)
	}

	second, err := r.Run(context.Background(), code, "", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Cached {
		t.Fatalf("expected second run to be a cache hit")
	}
}

func TestPythonRunnerScansImportsBeforeRunning(t *testing.T) {
	writeFakeBinary(t, "uv", `{"logs":["hi"],"result":null,"error":null}`)

	cfg := config.Defaults()
	cfg.CacheRoot = t.TempDir()
	c := cache.New(cfg.CacheRoot)
	r := NewPython(cfg, c)

	code := "import requests\ndef main(input):\n    return None\n"

	outcome, err := r.Run(context.Background(), code, "", time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.Cached {
		t.Fatalf("expected first run to be a cache miss")
	}
	if !outcome.Result.Success {
		t.Fatalf("expected success, got %+v", outcome.Result)
	}
}

func TestDenoRunnerPropagatesTimeoutError(t *testing.T) {
	dir := t.TempDir()
	script := "#!/bin/sh\nsleep 2\n"
	if err := os.WriteFile(filepath.Join(dir, "deno"), []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write fake deno: %v", err)
	}

	cfg := config.Defaults()
	cfg.CacheRoot = t.TempDir()
	cfg.DenoPath = filepath.Join(dir, "deno")
	c := cache.New(cfg.CacheRoot)
	r := &denoRunner{cfg: cfg, cache: c, lang: 0, wrap: func(string, bool) string { return "ignored" }}

	_, err := r.Run(context.Background(), "anything", "", 20*time.Millisecond)
	if err == nil {
		t.Fatalf("expected a timeout error")
	}
	if !cerr.Is(err, cerr.KindTimeout) {
		t.Fatalf("expected KindTimeout, got %v", err)
	}
}
