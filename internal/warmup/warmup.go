// Package warmup implements C10: pre-populating the deno and uv caches
// so the first real request against each language isn't slowed down by a
// cold package download. The concurrency shape -- a semaphore channel plus
// WaitGroup plus mutex-protected result slice -- is the teacher's
// ParallelRunner.RunParallel pattern, generalized from running CI stages
// to installing packages.
package warmup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/coderunner/coderun/internal/config"
	"github.com/coderunner/coderun/internal/execwait"
)

const (
	packageTimeout   = 60 * time.Second
	pythonEnvTimeout = 200 * time.Second
	concurrency      = 6
)

// nodeBuiltins lists the Node compatibility modules ("node:crypto" etc.)
// warm-up primes into deno's cache alongside the npm/jsr package lists.
var nodeBuiltins = []string{
	"crypto", "buffer", "fs", "path", "http", "https",
	"url", "util", "stream", "events",
}

// Outcome records one warm-up operation's result.
type Outcome struct {
	Kind    string // "python-env", "python-venv", "python-package", "npm-package", "jsr-package", "node-builtin"
	Name    string
	Err     error
	Elapsed time.Duration
}

// Run warms every package list in cfg concurrently, bounded by
// concurrency. A failed install is recorded in the returned slice but does
// not stop the rest of warm-up -- a missing optional package shouldn't
// block every other one from being prefetched.
func Run(ctx context.Context, cfg config.RuntimeConfig) []Outcome {
	var mu sync.Mutex
	var results []Outcome
	record := func(o Outcome) {
		mu.Lock()
		results = append(results, o)
		mu.Unlock()
	}

	run := func(spec execwait.Spec) error {
		res, err := execwait.Run(ctx, spec)
		if err == nil && res.ExitCode != 0 {
			err = fmt.Errorf("%s exited with status %d", spec.Name, res.ExitCode)
		}
		return err
	}

	pythonEnvStart := time.Now()
	err := run(execwait.Spec{
		Name:    cfg.UvPath,
		Args:    []string{"python", "install", cfg.PythonVersion},
		Timeout: pythonEnvTimeout,
	})
	record(Outcome{Kind: "python-env", Name: cfg.PythonVersion, Err: err, Elapsed: time.Since(pythonEnvStart)})

	pythonVenvStart := time.Now()
	err = run(execwait.Spec{
		Name:    cfg.UvPath,
		Args:    []string{"venv", cfg.PythonVersion},
		Timeout: pythonEnvTimeout,
	})
	record(Outcome{Kind: "python-venv", Name: cfg.PythonVersion, Err: err, Elapsed: time.Since(pythonVenvStart)})

	type job struct {
		kind string
		name string
		spec execwait.Spec
	}

	var jobs []job
	for _, pkg := range cfg.WarmupPython {
		jobs = append(jobs, job{
			kind: "python-package",
			name: pkg,
			spec: execwait.Spec{Name: cfg.UvPath, Args: []string{"pip", "install", "-p", cfg.PythonVersion, pkg}, Timeout: packageTimeout},
		})
	}
	for _, pkg := range cfg.WarmupNpm {
		jobs = append(jobs, job{
			kind: "npm-package",
			name: pkg,
			spec: execwait.Spec{Name: cfg.DenoPath, Args: []string{"cache", "--reload", "npm:" + pkg}, Timeout: packageTimeout},
		})
	}
	for _, pkg := range cfg.WarmupJSR {
		jobs = append(jobs, job{
			kind: "jsr-package",
			name: pkg,
			spec: execwait.Spec{Name: cfg.DenoPath, Args: []string{"cache", "--reload", "jsr:" + pkg}, Timeout: packageTimeout},
		})
	}
	for _, builtin := range nodeBuiltins {
		jobs = append(jobs, job{
			kind: "node-builtin",
			name: builtin,
			spec: execwait.Spec{Name: cfg.DenoPath, Args: []string{"cache", "--reload", "node:" + builtin}, Timeout: packageTimeout},
		})
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for _, j := range jobs {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			start := time.Now()
			err := run(j.spec)
			record(Outcome{Kind: j.kind, Name: j.name, Err: err, Elapsed: time.Since(start)})
		}(j)
	}
	wg.Wait()

	return results
}
