package runner

import (
	"github.com/coderunner/coderun/internal/cache"
	"github.com/coderunner/coderun/internal/config"
	"github.com/coderunner/coderun/internal/langtag"
	"github.com/coderunner/coderun/internal/wrapper"
)

// NewJS returns the JavaScript runner: deno, wrapped through wrapper.JS.
func NewJS(cfg config.RuntimeConfig, c *cache.Cache) Runner {
	return &denoRunner{cfg: cfg, cache: c, lang: langtag.Js, wrap: wrapper.JS}
}
