// Package executor implements C8: the single dispatch point that routes
// a (language, code, params, timeout) request to the right C6 runner.
package executor

import (
	"context"
	"time"

	"github.com/coderunner/coderun/internal/cache"
	"github.com/coderunner/coderun/internal/cerr"
	"github.com/coderunner/coderun/internal/config"
	"github.com/coderunner/coderun/internal/langtag"
	"github.com/coderunner/coderun/internal/runner"
)

// Executor dispatches execution requests to the runner registered for
// their language.
type Executor struct {
	runners map[langtag.Tag]runner.Runner
	cfg     config.RuntimeConfig
}

// New builds an Executor with the standard JS/TS/Python runners wired to a
// shared cache rooted at cfg.CacheRoot.
func New(cfg config.RuntimeConfig) *Executor {
	c := cache.New(cfg.CacheRoot)
	return &Executor{
		cfg: cfg,
		runners: map[langtag.Tag]runner.Runner{
			langtag.Js:     runner.NewJS(cfg, c),
			langtag.Ts:     runner.NewTS(cfg, c),
			langtag.Python: runner.NewPython(cfg, c),
		},
	}
}

// Run executes code in lang with paramsJSON as its INPUT_JSON payload. A
// non-positive timeout falls back to the configured default.
func (e *Executor) Run(ctx context.Context, lang langtag.Tag, code, paramsJSON string, timeout time.Duration) (runner.Outcome, error) {
	r, ok := e.runners[lang]
	if !ok {
		return runner.Outcome{}, cerr.New(cerr.KindUnsupportedLanguage, "unsupported language: "+lang.String())
	}
	return r.Run(ctx, code, paramsJSON, resolveTimeout(timeout, e.cfg))
}

func resolveTimeout(requested time.Duration, cfg config.RuntimeConfig) time.Duration {
	if requested > 0 {
		return requested
	}
	return time.Duration(cfg.DefaultTimeoutSeconds) * time.Second
}
