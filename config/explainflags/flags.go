// Package explainflags registers command-line flags for
// config.ExplanationConfig, including the short --format/-f and
// --detail/-d aliases from the documented CLI surface.
package explainflags

import (
	"flag"

	"github.com/mdxtodax/unmdx/config"
)

type Flags struct {
	Config *config.ExplanationConfig
}

func New(c *config.ExplanationConfig) *Flags {
	return &Flags{Config: c}
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.Config.Format, "explanation.format", f.Config.Format, "sql|natural|json|markdown")
	fs.StringVar(&f.Config.Detail, "explanation.detail", f.Config.Detail, "minimal|standard|detailed")
	fs.BoolVar(&f.Config.IncludeDaxComparison, "explanation.include_dax_comparison", f.Config.IncludeDaxComparison, "embed the generated DAX in the explanation")
	fs.BoolVar(&f.Config.RenderHTML, "explanation.render_html", f.Config.RenderHTML, "render a markdown explanation to an HTML fragment")

	fs.StringVar(&f.Config.Format, "format", f.Config.Format, "shorthand for -explanation.format")
	fs.StringVar(&f.Config.Format, "f", f.Config.Format, "shorthand for -format")
	fs.StringVar(&f.Config.Detail, "detail", f.Config.Detail, "shorthand for -explanation.detail")
	fs.StringVar(&f.Config.Detail, "d", f.Config.Detail, "shorthand for -detail")
	fs.BoolVar(&f.Config.IncludeDaxComparison, "include-dax", f.Config.IncludeDaxComparison, "shorthand for -explanation.include_dax_comparison")
	fs.BoolVar(&f.Config.RenderHTML, "html", f.Config.RenderHTML, "shorthand for -explanation.render_html")
}
