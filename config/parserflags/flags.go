// Package parserflags registers command-line flags for config.ParserConfig,
// following the teacher's cli/logflags convention of a Flags struct that
// wraps the config section it edits.
package parserflags

import (
	"flag"

	"github.com/mdxtodax/unmdx/config"
)

type Flags struct {
	Config *config.ParserConfig
}

func New(c *config.ParserConfig) *Flags {
	return &Flags{Config: c}
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.Config.StrictMode, "parser.strict_mode", f.Config.StrictMode, "treat warnings as errors during lowering")
	fs.BoolVar(&f.Config.AllowUnknownFunctions, "parser.allow_unknown_functions", f.Config.AllowUnknownFunctions, "accept identifiers as function names")
	fs.IntVar(&f.Config.MaxParseErrors, "parser.max_parse_errors", f.Config.MaxParseErrors, "abort after this many parse errors")
	fs.IntVar(&f.Config.ParseTimeoutMs, "parser.parse_timeout_ms", f.Config.ParseTimeoutMs, "time budget for parsing, in milliseconds (0 = unlimited)")
	fs.IntVar(&f.Config.MaxInputChars, "parser.max_input_chars", f.Config.MaxInputChars, "input size cap in characters (0 = unlimited)")
}
