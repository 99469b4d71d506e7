// Package langtag defines the discriminated language tag used to route
// an execution request to its wrapper template, cache extension, and runner.
package langtag

import "github.com/coderunner/coderun/internal/cerr"

// Tag identifies the language of a submitted script.
type Tag int

const (
	Js Tag = iota
	Ts
	Python
)

// Ext returns the file extension used for cache filenames and scratch files.
func (t Tag) Ext() string {
	switch t {
	case Js:
		return ".js"
	case Ts:
		return ".ts"
	case Python:
		return ".py"
	default:
		return ""
	}
}

func (t Tag) String() string {
	switch t {
	case Js:
		return "js"
	case Ts:
		return "ts"
	case Python:
		return "python"
	default:
		return "unknown"
	}
}

// Parse maps a free-form string (as arrives from the CLI or an RPC tool
// name) to a Tag. Accepts common aliases.
func Parse(s string) (Tag, error) {
	switch s {
	case "js", "javascript":
		return Js, nil
	case "ts", "typescript":
		return Ts, nil
	case "py", "python":
		return Python, nil
	default:
		return 0, cerr.New(cerr.KindUnsupportedLanguage, "unsupported language: "+s)
	}
}
