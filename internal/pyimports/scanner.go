// Package pyimports implements C4, the Python dependency scanner. It walks
// source text line by line looking for the three import forms the spec
// recognizes, ignores what's inside strings and comments, and filters the
// result against the standard-library allow-list so only installable
// third-party package names remain.
package pyimports

import (
	"regexp"
	"strings"

	"github.com/coderunner/coderun/internal/cerr"
)

var (
	importlibRe = regexp.MustCompile(`importlib\s*\.\s*import_module\s*\(\s*['"]([A-Za-z_][\w]*(?:\.[\w]+)*)['"]`)
	importRe    = regexp.MustCompile(`^import\s+(.+)$`)
	fromImportRe = regexp.MustCompile(`^from\s+([A-Za-z_][\w]*(?:\.[\w]+)*)\s+import\s+.+$`)
)

// Scan returns the ordered, deduplicated-by-occurrence list of third-party
// top-level package names imported by code. Standard-library modules are
// dropped. Order of first appearance is preserved; re-imports of the same
// package only appear once.
func Scan(code string) ([]string, error) {
	if !strings.HasSuffix(code, "\n") {
		code += "\n"
	}

	seen := make(map[string]bool)
	var deps []string
	add := func(name string) {
		if name == "" || isStandardLibrary(name) || seen[name] {
			return
		}
		seen[name] = true
		deps = append(deps, name)
	}

	lines := strings.Split(code, "\n")
	var inTripleQuote string // "" if not inside one, else the delimiter ("'''" or `"""`)

	for _, raw := range lines {
		line := raw

		if inTripleQuote != "" {
			idx := strings.Index(line, inTripleQuote)
			if idx == -1 {
				continue // still inside the string, whole line is opaque
			}
			line = line[idx+len(inTripleQuote):]
			inTripleQuote = ""
		}

		// importlib.import_module(...) targets live inside a string literal,
		// so find them before any comment/string stripping.
		for _, m := range importlibRe.FindAllStringSubmatch(line, -1) {
			add(leadingSegment(m[1]))
		}

		stripped, opensTriple := stripCommentsAndStrings(line)
		if opensTriple != "" {
			inTripleQuote = opensTriple
		}

		trimmed := strings.TrimSpace(stripped)
		if trimmed == "" {
			continue
		}

		if m := importRe.FindStringSubmatch(trimmed); m != nil {
			for _, item := range strings.Split(m[1], ",") {
				item = strings.TrimSpace(item)
				if item == "" {
					continue
				}
				if idx := strings.Index(item, " as "); idx >= 0 {
					item = item[:idx]
				}
				add(leadingSegment(strings.TrimSpace(item)))
			}
			continue
		}

		if m := fromImportRe.FindStringSubmatch(trimmed); m != nil {
			module := m[1]
			if strings.HasPrefix(module, ".") {
				continue // relative import, not an installable dependency
			}
			add(leadingSegment(module))
		}
	}

	if inTripleQuote != "" {
		return nil, cerr.New(cerr.KindDependencyScan, "unterminated triple-quoted string while scanning imports")
	}

	return deps, nil
}

// leadingSegment returns the first dotted component of a module path, e.g.
// "pandas.core.frame" -> "pandas".
func leadingSegment(module string) string {
	if idx := strings.IndexByte(module, '.'); idx >= 0 {
		return module[:idx]
	}
	return module
}

// stripCommentsAndStrings removes a trailing "#" comment and the contents
// of single/double quoted string literals from a line of Python source,
// tracking backslash escapes. If the line opens (but does not close) a
// triple-quoted string, the delimiter is returned so the caller can treat
// subsequent lines as opaque until it closes.
func stripCommentsAndStrings(line string) (out string, opensTriple string) {
	var b strings.Builder
	i := 0
	n := len(line)
	for i < n {
		c := line[i]

		if c == '#' {
			break
		}

		if c == '\'' || c == '"' {
			if i+2 < n && line[i+1] == c && line[i+2] == c {
				delim := line[i : i+3]
				rest := line[i+3:]
				if end := strings.Index(rest, delim); end >= 0 {
					i = i + 3 + end + 3
					continue
				}
				return b.String(), delim
			}

			quote := c
			j := i + 1
			for j < n {
				if line[j] == '\\' {
					j += 2
					continue
				}
				if line[j] == quote {
					j++
					break
				}
				j++
			}
			i = j
			continue
		}

		b.WriteByte(c)
		i++
	}
	return b.String(), ""
}
