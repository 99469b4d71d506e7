// Package report implements C13: ANSI-colored console output and the
// structured JSON run report, ported from the teacher's printf/successf/
// errorf/warnf/fatalf helpers and its DryRunReport shape.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/coderunner/coderun/internal/outputparser"
)

// Printf writes uncolored output to stdout.
func Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, format, args...)
}

// Successf writes green output to stdout.
func Successf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stdout, "\033[32m"+format+"\033[0m", args...)
}

// Errorf writes red output to stderr.
func Errorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "\033[31m"+format+"\033[0m", args...)
}

// Warnf writes yellow output to stderr.
func Warnf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "\033[33m"+format+"\033[0m", args...)
}

// Fatalf writes red output to stderr and exits the process with status 1.
func Fatalf(format string, args ...interface{}) {
	Errorf(format+"\n", args...)
	os.Exit(1)
}

// RunReport is the structured, machine-readable summary of a single CLI
// script execution -- the --json output shape.
type RunReport struct {
	Language   string      `json:"language"`
	Cached     bool        `json:"cached"`
	DurationMs int64       `json:"duration_ms"`
	Success    bool        `json:"success"`
	Result     interface{} `json:"result,omitempty"`
	Error      interface{} `json:"error,omitempty"`
	Logs       []string    `json:"logs"`
}

// NewRunReport builds a RunReport from a parsed execution result.
func NewRunReport(language string, cached bool, durationMs int64, result outputparser.Result) RunReport {
	logs := result.Logs
	if logs == nil {
		logs = []string{}
	}
	return RunReport{
		Language:   language,
		Cached:     cached,
		DurationMs: durationMs,
		Success:    result.Success,
		Result:     result.Result,
		Error:      result.Error,
		Logs:       logs,
	}
}

// WriteJSON encodes v (a RunReport or DryRunReport) as indented JSON to w.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// DryRunEntry describes whether a single (digest, language) script would
// hit the cache if run right now.
type DryRunEntry struct {
	Language string `json:"language"`
	Digest   string `json:"digest"`
	Cached   bool   `json:"cached"`
	Reason   string `json:"reason"` // "cached" or "would_compile"
}

// DryRunReport is the --dry-run preview for a single CLI run: whether the
// script would be served straight from the cache or wrapped and compiled
// fresh, without actually executing it.
type DryRunReport struct {
	DryRun bool        `json:"dry_run"`
	Entry  DryRunEntry `json:"entry"`
}

// BuildDryRunReport reports the cache state for one script without
// running it.
func BuildDryRunReport(language, digest string, cached bool) DryRunReport {
	reason := "would_compile"
	if cached {
		reason = "cached"
	}
	return DryRunReport{
		DryRun: true,
		Entry: DryRunEntry{
			Language: language,
			Digest:   digest,
			Cached:   cached,
			Reason:   reason,
		},
	}
}
