package runner

import "os/exec"

// Tool represents an external runtime coderun shells out to.
type Tool struct {
	Name       string // Display name
	Command    string // Command to check (e.g. "deno", "uv")
	CheckArgs  []string
	InstallCmd string
}

var requiredTools = []Tool{
	{
		Name:       "deno",
		Command:    "deno",
		CheckArgs:  []string{"--version"},
		InstallCmd: "curl -fsSL https://deno.land/install.sh | sh",
	},
	{
		Name:       "uv",
		Command:    "uv",
		CheckArgs:  []string{"--version"},
		InstallCmd: "curl -LsSf https://astral.sh/uv/install.sh | sh",
	},
}

// ToolCheck is the result of checking whether a Tool is on PATH.
type ToolCheck struct {
	Tool  Tool
	Found bool
	Error string
}

// CheckTool checks whether tool is installed and runnable.
func CheckTool(tool Tool) ToolCheck {
	cmd := exec.Command(tool.Command, tool.CheckArgs...)
	err := cmd.Run()

	check := ToolCheck{Tool: tool, Found: err == nil}
	if err != nil {
		check.Error = err.Error()
	}
	return check
}

// CheckRequiredTools checks deno and uv, the two external runtimes every
// language backend depends on.
func CheckRequiredTools() map[string]ToolCheck {
	results := make(map[string]ToolCheck, len(requiredTools))
	for _, tool := range requiredTools {
		results[tool.Name] = CheckTool(tool)
	}
	return results
}

// MissingToolHints returns install instructions for any required tool
// that isn't on PATH.
func MissingToolHints() map[string]string {
	hints := make(map[string]string)
	for name, check := range CheckRequiredTools() {
		if !check.Found {
			hints[name] = check.Tool.InstallCmd
		}
	}
	return hints
}
