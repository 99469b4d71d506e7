// Package mcpserver implements C9: the stdio MCP tool surface exposing
// run_javascript, run_typescript, and run_python. It mirrors the
// teacher's mcp_server.go shape -- a shared context struct, one
// mcp.NewTool/s.AddTool registration per tool, one handler per tool that
// returns a JSON CallToolResult -- generalized from CI-stage execution to
// sandboxed script execution.
package mcpserver

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/coderunner/coderun/internal/config"
	"github.com/coderunner/coderun/internal/executor"
	"github.com/coderunner/coderun/internal/langtag"
)

// protocolVersion is the MCP wire protocol tag this server speaks.
const protocolVersion = "2024-11-05"

// version is the server's own reported version, independent of the MCP
// protocol version above.
const version = "0.1.0"

type toolContext struct {
	exec *executor.Executor
	cfg  config.RuntimeConfig
}

// Serve builds the MCP server and blocks serving it over stdio until the
// client disconnects or the process is killed.
func Serve(cfg config.RuntimeConfig) error {
	ctx := &toolContext{exec: executor.New(cfg), cfg: cfg}

	s := server.NewMCPServer(
		"coderun",
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions(
			"Executes short JavaScript, TypeScript, or Python snippets in a "+
				"disposable sandbox and returns their structured result, captured "+
				"logs, and any error. Each tool takes a `code` string defining a "+
				"top-level handler/main function and an optional `params` object "+
				"passed to it as input.",
		),
	)

	s.AddTool(mcp.NewTool("run_javascript",
		mcp.WithDescription("Run a JavaScript snippet and return its result, logs, and error"),
		mcp.WithString("code", mcp.Required(), mcp.Description("JavaScript source defining a top-level handler(input) or main(input) function")),
		mcp.WithObject("params", mcp.Description("JSON object passed to the entrypoint as its input argument")),
	), ctx.handleRun(langtag.Js))

	s.AddTool(mcp.NewTool("run_typescript",
		mcp.WithDescription("Run a TypeScript snippet and return its result, logs, and error"),
		mcp.WithString("code", mcp.Required(), mcp.Description("TypeScript source defining a top-level handler(input) or main(input) function")),
		mcp.WithObject("params", mcp.Description("JSON object passed to the entrypoint as its input argument")),
	), ctx.handleRun(langtag.Ts))

	s.AddTool(mcp.NewTool("run_python",
		mcp.WithDescription("Run a Python snippet and return its result, logs, and error"),
		mcp.WithString("code", mcp.Required(), mcp.Description("Python source defining a top-level main(input) or handler(input) function")),
		mcp.WithObject("params", mcp.Description("JSON object passed to the entrypoint as its input argument")),
	), ctx.handleRun(langtag.Python))

	return server.ServeStdio(s)
}

// runResult is the JSON shape returned in the tool's text content block.
type runResult struct {
	Success bool        `json:"success"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
	Logs    []string    `json:"logs"`
	Cached  bool        `json:"cached"`
}

func (tc *toolContext) handleRun(lang langtag.Tag) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		code, err := req.RequireString("code")
		if err != nil {
			return mcp.NewToolResultError("missing required parameter: code"), nil
		}

		paramsJSON := ""
		if params, ok := req.GetArguments()["params"]; ok && params != nil {
			data, err := json.Marshal(params)
			if err != nil {
				return mcp.NewToolResultError("params is not valid JSON"), nil
			}
			paramsJSON = string(data)
		}

		timeout := time.Duration(tc.cfg.DefaultTimeoutSeconds) * time.Second
		outcome, err := tc.exec.Run(ctx, lang, code, paramsJSON, timeout)
		if err != nil {
			rr := runResult{Success: false, Error: err.Error(), Logs: []string{}}
			data, marshalErr := json.Marshal(rr)
			if marshalErr != nil {
				return mcp.NewToolResultError("failed to encode result: " + marshalErr.Error()), nil
			}
			return mcp.NewToolResultText(string(data)), nil
		}

		rr := runResult{
			Success: outcome.Result.Success,
			Result:  outcome.Result.Result,
			Error:   outcome.Result.Error,
			Logs:    outcome.Result.Logs,
			Cached:  outcome.Cached,
		}
		if rr.Logs == nil {
			rr.Logs = []string{}
		}

		data, err := json.Marshal(rr)
		if err != nil {
			return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
		}
		return mcp.NewToolResultText(string(data)), nil
	}
}

// ProtocolVersion reports the MCP wire protocol version this server
// implements, for diagnostics.
func ProtocolVersion() string {
	return protocolVersion
}
