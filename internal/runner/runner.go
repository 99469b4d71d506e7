// Package runner implements C6: the per-language execution contract that
// turns (code, params, timeout) into a structured result, going through
// the cache, wrapper, and output parser along the way.
package runner

import (
	"context"
	"time"

	"github.com/coderunner/coderun/internal/config"
	"github.com/coderunner/coderun/internal/outputparser"
)

// Outcome is a single script run: the parsed result plus the bookkeeping
// the CLI and RPC server report alongside it.
type Outcome struct {
	Result     outputparser.Result
	Cached     bool
	DurationMs int64
}

// Runner is the contract every language backend implements.
type Runner interface {
	// Run executes code with the given raw JSON params (already the exact
	// text that will land in the wrapper's INPUT_JSON env var; "" means no
	// input) under timeout, and reports whether the wrapped script had
	// already been cached before this call.
	Run(ctx context.Context, code string, paramsJSON string, timeout time.Duration) (Outcome, error)
}

// effectiveTimeout resolves a caller-supplied timeout against the
// configured default: non-positive means "use the default".
func effectiveTimeout(requested time.Duration, cfg config.RuntimeConfig) time.Duration {
	if requested > 0 {
		return requested
	}
	return time.Duration(cfg.DefaultTimeoutSeconds) * time.Second
}

func elapsedMs(start time.Time) int64 {
	return time.Since(start).Milliseconds()
}
