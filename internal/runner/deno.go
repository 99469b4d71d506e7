package runner

import (
	"context"
	"os"
	"time"

	"github.com/coderunner/coderun/internal/cache"
	"github.com/coderunner/coderun/internal/config"
	"github.com/coderunner/coderun/internal/execwait"
	"github.com/coderunner/coderun/internal/hashutil"
	"github.com/coderunner/coderun/internal/langtag"
	"github.com/coderunner/coderun/internal/outputparser"
)

// denoRunner is the shared backend for JS and TS: both go through the
// cache and are executed by the same deno invocation, differing only in
// the wrap function and the cache/language tag.
type denoRunner struct {
	cfg   config.RuntimeConfig
	cache *cache.Cache
	lang  langtag.Tag
	wrap  func(code string, showLogs bool) string
}

func (r *denoRunner) Run(ctx context.Context, code string, paramsJSON string, timeout time.Duration) (Outcome, error) {
	start := time.Now()

	digest := hashutil.Digest([]byte(code))
	cached := r.cache.Exists(digest, r.lang)

	var path string
	if cached {
		_, p, err := r.cache.Open(digest, r.lang)
		if err != nil {
			return Outcome{}, err
		}
		path = p
	} else {
		wrapped := r.wrap(code, true)
		_, p, err := r.cache.Put(digest, []byte(wrapped), r.lang)
		if err != nil {
			return Outcome{}, err
		}
		path = p
	}

	env := append(os.Environ(), "INPUT_JSON="+inputJSON(paramsJSON))

	res, err := execwait.Run(ctx, execwait.Spec{
		Name: r.cfg.DenoPath,
		Args: []string{
			"run",
			"--allow-net", "--allow-env", "--allow-read", "--no-check",
			"--v8-flags=--max-heap-size=512",
			path,
		},
		Env:     env,
		Timeout: timeout,
	})
	if err != nil {
		return Outcome{}, err
	}

	return Outcome{
		Result:     outputparser.Parse(res.Stdout, res.Stderr),
		Cached:     cached,
		DurationMs: elapsedMs(start),
	}, nil
}

func inputJSON(raw string) string {
	if raw == "" {
		return "{}"
	}
	return raw
}
