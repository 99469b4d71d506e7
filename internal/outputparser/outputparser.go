// Package outputparser implements C7: turning a wrapper's raw stdout back
// into a structured result. The wrapper always prints exactly one JSON
// envelope line, but stdout can be interleaved with anything else the
// runtime itself emits (deno startup noise, uv resolver chatter), so
// parsing looks for the envelope by shape rather than assuming stdout is
// pure JSON.
package outputparser

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Result is the structured outcome of a single script execution.
type Result struct {
	Logs    []string    `json:"logs"`
	Result  interface{} `json:"result"`
	Error   interface{} `json:"error"`
	Success bool        `json:"success"`
}

var envelopeStart = regexp.MustCompile(`"logs"\s*:\s*\[`)

// Parse extracts the wrapper's {logs, result, error} envelope from stdout.
// On success, Success is true and Error is nil. When no envelope can be
// found, Parse falls back to a failure Result carrying the raw stdout as a
// single log line and stderr folded into the error message.
func Parse(stdout, stderr []byte) Result {
	text := strings.ToValidUTF8(string(stdout), "�")

	if env, ok := extractEnvelope(text); ok {
		return env
	}

	var logs []string
	if trimmed := strings.TrimSpace(text); trimmed != "" {
		logs = []string{trimmed}
	}

	return Result{
		Logs:    logs,
		Result:  nil,
		Error:   "Failed to extract structured output: " + strings.TrimSpace(string(stderr)),
		Success: false,
	}
}

// extractEnvelope locates the first `{"logs":[...` object in text and
// decodes it, extending the match to the last balanced closing brace so
// that braces nested in the user's result value don't truncate it early.
func extractEnvelope(text string) (Result, bool) {
	loc := envelopeStart.FindStringIndex(text)
	if loc == nil {
		return Result{}, false
	}

	objStart := strings.LastIndexByte(text[:loc[0]], '{')
	if objStart == -1 {
		return Result{}, false
	}

	objEnd := lastBalancedBrace(text, objStart)
	if objEnd == -1 {
		return Result{}, false
	}

	raw := text[objStart : objEnd+1]

	var decoded struct {
		Logs   []string        `json:"logs"`
		Result json.RawMessage `json:"result"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return Result{}, false
	}

	result := Result{Logs: decoded.Logs}
	result.Error = normalize(decoded.Error)
	result.Result = normalize(decoded.Result)
	result.Success = result.Error == nil
	return result, true
}

// lastBalancedBrace returns the index of the '}' that closes the object
// opened at text[start], respecting nested braces and string literals, or
// -1 if the object never closes.
func lastBalancedBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// normalize preserves the JSON kind of a raw field: a JSON string decodes
// to a Go string, null decodes to nil, and everything else (numbers,
// objects, arrays, booleans) is handed back as its own decoded value so
// callers re-embedding it as JSON get the original shape, not a stringified
// copy of it.
func normalize(raw json.RawMessage) interface{} {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
