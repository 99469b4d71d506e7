// Package config loads the runtime configuration (C12): cache location,
// default timeout, runtime binary paths, and warm-up package lists. It
// follows the teacher's LoadConfig shape -- an optional TOML file in the
// working directory, merged over built-in defaults, never fatal when the
// file is absent.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the optional project-local config file coderun looks for in
// the current working directory.
const FileName = ".coderun.toml"

// RuntimeConfig controls how scripts are cached, wrapped, and executed.
type RuntimeConfig struct {
	CacheRoot             string   `toml:"cache_root"`
	DefaultTimeoutSeconds int      `toml:"default_timeout_seconds"`
	DenoPath              string   `toml:"deno_path"`
	UvPath                string   `toml:"uv_path"`
	PythonVersion         string   `toml:"python_version"`
	WarmupPython          []string `toml:"warmup_python"`
	WarmupNpm             []string `toml:"warmup_npm"`
	WarmupJSR             []string `toml:"warmup_jsr"`
}

// Defaults returns the built-in configuration used when no .coderun.toml
// is present, and as the base that a partial file is merged over.
func Defaults() RuntimeConfig {
	return RuntimeConfig{
		CacheRoot:             filepath.Join(os.TempDir(), "code_cache"),
		DefaultTimeoutSeconds: 120,
		DenoPath:              "deno",
		UvPath:                "uv",
		PythonVersion:         "3.13",
		WarmupPython: []string{
			"requests", "pandas", "numpy", "matplotlib", "scikit-learn",
			"pytest", "pydantic", "fastapi", "uvicorn", "sqlalchemy",
		},
		WarmupNpm: []string{
			"lodash", "axios", "moment", "uuid", "express",
			"react", "react-dom", "typescript", "jest", "webpack",
		},
		WarmupJSR: []string{
			"@std/testing", "@std/http", "@std/path", "@std/fs", "@std/encoding/json",
		},
	}
}

// Load reads FileName from dir if present and merges it over Defaults().
// A missing file is not an error -- Load simply returns the defaults.
func Load(dir string) (RuntimeConfig, error) {
	cfg := Defaults()

	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
