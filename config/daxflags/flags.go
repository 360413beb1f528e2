// Package daxflags registers command-line flags for config.DAXConfig.
package daxflags

import (
	"flag"

	"github.com/mdxtodax/unmdx/config"
)

type Flags struct {
	Config *config.DAXConfig
}

func New(c *config.DAXConfig) *Flags {
	return &Flags{Config: c}
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.Config.FormatOutput, "dax.format_output", f.Config.FormatOutput, "pretty-print generated DAX")
	fs.IntVar(&f.Config.IndentSize, "dax.indent_size", f.Config.IndentSize, "spaces per indent level")
	fs.IntVar(&f.Config.LineWidth, "dax.line_width", f.Config.LineWidth, "soft wrap threshold")
	fs.BoolVar(&f.Config.UseSummarizeColumns, "dax.use_summarizecolumns", f.Config.UseSummarizeColumns, "prefer SUMMARIZECOLUMNS over CALCULATETABLE wrapping")
	fs.BoolVar(&f.Config.EscapeReservedWords, "dax.escape_reserved_words", f.Config.EscapeReservedWords, "quote reserved table identifiers")
}
