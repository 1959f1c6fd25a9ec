package dump

import (
	"io"

	"github.com/k0kubun/pp/v3"

	"github.com/nyxlang/nyxc/internal/config"
)

// Context pretty-prints the runtime configuration for --dump-context.
// Unlike the AST/entity/token dumps, this is not spec-normative
// output — it exists for the person running the binary, so it uses
// k0kubun/pp's generic struct pretty-printer rather than the fixed
// §6.2/§6.3 layout.
func Context(w io.Writer, cfg config.Config, version string) {
	printer := pp.New()
	printer.SetOutput(w)
	printer.Println(struct {
		Config  config.Config
		Version string
	}{cfg, version})
}
