// Package wrapper holds the four static wrapper templates (C3) that get
// the user's code to do log capture, INPUT_JSON parsing, entrypoint
// invocation, and envelope emission. Templates are embedded at build
// time so the binary is self-contained.
package wrapper

import (
	_ "embed"
	"strings"
)

//go:embed templates/js_classic.js.tmpl
var jsClassicTemplate string

//go:embed templates/js_esm.js.tmpl
var jsESMTemplate string

//go:embed templates/ts.ts.tmpl
var tsTemplate string

//go:embed templates/python.py.tmpl
var pythonTemplate string

func fill(template, userCode, showLogs string) string {
	out := strings.ReplaceAll(template, "{{USER_CODE}}", userCode)
	out = strings.ReplaceAll(out, "{{SHOW_LOGS}}", showLogs)
	return out
}

// IsESM applies the coarse textual heuristic from the spec: ESM module
// syntax is present, and CommonJS require() is not.
func IsESM(code string) bool {
	hasImportExport := strings.Contains(code, "import ") ||
		strings.Contains(code, "export ") ||
		strings.Contains(code, "import{") ||
		strings.Contains(code, "export{")
	hasDynamicImport := strings.Contains(code, "import(")
	hasRequire := strings.Contains(code, "require(")

	return (hasImportExport || hasDynamicImport) && !hasRequire
}

// JS wraps JavaScript user code, selecting the ESM or classic template
// by source inspection. showLogs controls whether captured log lines
// are also echoed to the real stdout; the wrapper always captures them
// into the envelope regardless.
func JS(code string, showLogs bool) string {
	template := jsClassicTemplate
	if IsESM(code) {
		template = jsESMTemplate
	}
	return fill(template, code, boolLiteral(showLogs))
}

// TS wraps TypeScript user code. There is a single TS template; Deno's
// type-stripping handles both module styles uniformly.
func TS(code string, showLogs bool) string {
	return fill(tsTemplate, code, boolLiteral(showLogs))
}

// Python wraps Python user code.
func Python(code string, showLogs bool) string {
	return fill(pythonTemplate, code, pyBoolLiteral(showLogs))
}

func boolLiteral(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func pyBoolLiteral(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
