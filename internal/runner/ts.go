package runner

import (
	"github.com/coderunner/coderun/internal/cache"
	"github.com/coderunner/coderun/internal/config"
	"github.com/coderunner/coderun/internal/langtag"
	"github.com/coderunner/coderun/internal/wrapper"
)

// NewTS returns the TypeScript runner: deno, wrapped through wrapper.TS.
// Deno type-strips rather than type-checks (--no-check), so this is the
// same execution path as JS with a different template and extension.
func NewTS(cfg config.RuntimeConfig, c *cache.Cache) Runner {
	return &denoRunner{cfg: cfg, cache: c, lang: langtag.Ts, wrap: wrapper.TS}
}
