// coderun — sandboxed JavaScript/TypeScript/Python execution, as a CLI and
// as an MCP stdio tool server.
//
// Usage:
//
//	coderun js --file script.js              Run a JavaScript file
//	coderun python --code 'print("hi")'       Run inline Python source
//	coderun serve                             Serve run_javascript/run_typescript/run_python over stdio (MCP)
//	coderun warm-up                           Pre-populate the deno/uv package caches
//	coderun clear-cache --language python      Clear one language's cached wrappers
//	coderun clear-cache --language all         Clear the entire cache
package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/coderunner/coderun/internal/cache"
	"github.com/coderunner/coderun/internal/config"
	"github.com/coderunner/coderun/internal/executor"
	"github.com/coderunner/coderun/internal/hashutil"
	"github.com/coderunner/coderun/internal/langtag"
	"github.com/coderunner/coderun/internal/mcpserver"
	"github.com/coderunner/coderun/internal/report"
	"github.com/coderunner/coderun/internal/warmup"
)

var version = "dev"

func main() {
	app := &cli.Command{
		Name:        "coderun",
		Usage:       "coderun js|ts|python --file <path>",
		Description: "Runs JavaScript, TypeScript, and Python snippets in a disposable sandbox.",
		Version:     version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "show-logs", Usage: "not read: captured logs are always printed after the run", Value: true},
			&cli.BoolFlag{Name: "json", Usage: "print the run report as indented JSON instead of a plain summary"},
		},
		Commands: []*cli.Command{
			runCommand(langtag.Js, "js", "Run a JavaScript snippet"),
			runCommand(langtag.Ts, "ts", "Run a TypeScript snippet"),
			runCommand(langtag.Python, "python", "Run a Python snippet"),
			clearCacheCommand,
			serveCommand,
			warmUpCommand,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		report.Fatalf("%v\n", err)
	}
}

func loadConfig() config.RuntimeConfig {
	cwd, err := os.Getwd()
	if err != nil {
		return config.Defaults()
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		report.Warnf("failed to load %s, using defaults: %v\n", config.FileName, err)
		return config.Defaults()
	}
	return cfg
}

func runCommand(lang langtag.Tag, name, usage string) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "path to a source file"},
			&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Usage: "inline source"},
			&cli.StringFlag{Name: "params", Aliases: []string{"p"}, Usage: "JSON object passed to the entrypoint as input"},
			&cli.IntFlag{Name: "timeout", Usage: "execution timeout in seconds (0 uses the configured default)"},
			&cli.BoolFlag{Name: "dry-run", Usage: "report whether this script is cached without running it"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			code, err := resolveSource(cmd)
			if err != nil {
				return err
			}

			cfg := loadConfig()

			if cmd.Bool("dry-run") {
				c := cache.New(cfg.CacheRoot)
				digest := hashutil.Digest([]byte(code))
				dr := report.BuildDryRunReport(lang.String(), digest, c.Exists(digest, lang))
				return report.WriteJSON(os.Stdout, dr)
			}

			timeout := time.Duration(cmd.Int("timeout")) * time.Second
			exec := executor.New(cfg)
			outcome, err := exec.Run(ctx, lang, code, cmd.String("params"), timeout)
			if err != nil {
				report.Errorf("%v\n", err)
				os.Exit(1)
			}

			rr := report.NewRunReport(lang.String(), outcome.Cached, outcome.DurationMs, outcome.Result)
			if cmd.Bool("json") {
				return report.WriteJSON(os.Stdout, rr)
			}
			printPlainReport(rr)
			return nil
		},
	}
}

func resolveSource(cmd *cli.Command) (string, error) {
	if code := cmd.String("code"); code != "" {
		return code, nil
	}
	if file := cmd.String("file"); file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", errors.New("either --file or --code is required")
}

func printPlainReport(rr report.RunReport) {
	for _, line := range rr.Logs {
		report.Printf("%s\n", line)
	}
	if rr.Success {
		report.Successf("ok (%dms, cached=%v)\n", rr.DurationMs, rr.Cached)
	} else {
		report.Errorf("error: %v\n", rr.Error)
	}
}

var clearCacheCommand = &cli.Command{
	Name:  "clear-cache",
	Usage: "clear cached wrapped scripts",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "language", Value: "all", Usage: "js, ts, python, or all"},
	},
	Action: func(_ context.Context, cmd *cli.Command) error {
		cfg := loadConfig()
		c := cache.New(cfg.CacheRoot)

		lang := cmd.String("language")
		if lang == "all" {
			return c.ClearAll()
		}
		tag, err := langtag.Parse(lang)
		if err != nil {
			return err
		}
		return c.ClearLanguage(tag)
	},
}

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "serve run_javascript/run_typescript/run_python over stdio (MCP)",
	Action: func(_ context.Context, _ *cli.Command) error {
		return mcpserver.Serve(loadConfig())
	},
}

var warmUpCommand = &cli.Command{
	Name:  "warm-up",
	Usage: "pre-populate the deno and uv package caches",
	Action: func(ctx context.Context, _ *cli.Command) error {
		cfg := loadConfig()
		results := warmup.Run(ctx, cfg)
		failures := 0
		for _, r := range results {
			if r.Err != nil {
				failures++
				report.Warnf("%s %s failed: %v\n", r.Kind, r.Name, r.Err)
			}
		}
		report.Printf("warm-up complete: %d/%d succeeded\n", len(results)-failures, len(results))
		return nil
	},
}
