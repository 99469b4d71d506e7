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
	"github.com/coderunner/coderun/internal/pyimports"
	"github.com/coderunner/coderun/internal/report"
	"github.com/coderunner/coderun/internal/wrapper"
)

// pythonRunner scans the script's imports and pre-installs the third-party
// ones into the script's uv-managed environment before running it. A
// failed dependency install is logged and ignored rather than aborting the
// run -- the script may not actually need the package at runtime (e.g. an
// import guarded by a try/except), and uv run will fail loudly on its own
// if it truly can't resolve an import.
type pythonRunner struct {
	cfg   config.RuntimeConfig
	cache *cache.Cache
}

// NewPython returns the Python runner: uv-managed scripts, wrapped
// through wrapper.Python.
func NewPython(cfg config.RuntimeConfig, c *cache.Cache) Runner {
	return &pythonRunner{cfg: cfg, cache: c}
}

func (r *pythonRunner) Run(ctx context.Context, code string, paramsJSON string, timeout time.Duration) (Outcome, error) {
	start := time.Now()

	digest := hashutil.Digest([]byte(code))
	cached := r.cache.Exists(digest, langtag.Python)

	var path string
	if cached {
		_, p, err := r.cache.Open(digest, langtag.Python)
		if err != nil {
			return Outcome{}, err
		}
		path = p
	} else {
		deps, err := pyimports.Scan(code)
		if err != nil {
			return Outcome{}, err
		}

		wrapped := wrapper.Python(code, true)
		_, p, err := r.cache.Put(digest, []byte(wrapped), langtag.Python)
		if err != nil {
			return Outcome{}, err
		}
		path = p

		if len(deps) > 0 {
			addArgs := append([]string{"add", "--script", path}, deps...)
			addRes, err := execwait.Run(ctx, execwait.Spec{
				Name:    r.cfg.UvPath,
				Args:    addArgs,
				Timeout: 60 * time.Second,
			})
			if err != nil {
				report.Warnf("failed to pre-install python dependencies %v for %s: %v\n", deps, path, err)
			} else if addRes.ExitCode != 0 {
				report.Warnf("failed to pre-install python dependencies %v for %s: uv exited with status %d\n", deps, path, addRes.ExitCode)
			}
		}
	}

	env := append(os.Environ(), "INPUT_JSON="+inputJSON(paramsJSON))

	res, err := execwait.Run(ctx, execwait.Spec{
		Name:    r.cfg.UvPath,
		Args:    []string{"run", "-s", "-p", r.cfg.PythonVersion, path},
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
