// Package linterflags registers command-line flags for config.LinterConfig.
package linterflags

import (
	"flag"
	"strings"

	"github.com/mdxtodax/unmdx/compiler/optimizer"
	"github.com/mdxtodax/unmdx/config"
)

type Flags struct {
	Config      *config.LinterConfig
	disabledCSV string
	noLinter    bool
	useLinter   bool
}

func New(c *config.LinterConfig) *Flags {
	return &Flags{Config: c}
}

// SetFlags registers both the full dotted linter.* flags and the shorter
// CLI-surface aliases from spec.md §6 (--optimization-level,
// --use-linter/--no-linter), the latter taking precedence when both are
// supplied since they're parsed later in fs.Args() order only if the
// caller registers them after; convert.go controls that ordering.
func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.Config.OptimizationLevel, "linter.optimization_level", f.Config.OptimizationLevel, "none|conservative|moderate|aggressive")
	fs.IntVar(&f.Config.MaxCrossJoinDepth, "linter.max_crossjoin_depth", f.Config.MaxCrossJoinDepth, "depth above which dimensions are coalesced")
	fs.StringVar(&f.disabledCSV, "linter.disabled_rules", strings.Join(f.Config.DisabledRules, ","), "comma-separated pass names to skip")
	fs.IntVar(&f.Config.MaxProcessingMs, "linter.max_processing_ms", f.Config.MaxProcessingMs, "linter time cap in milliseconds")

	fs.StringVar(&f.Config.OptimizationLevel, "optimization-level", f.Config.OptimizationLevel, "shorthand for -linter.optimization_level")
	fs.BoolVar(&f.noLinter, "no-linter", false, "disable linting entirely (equivalent to optimization-level=none)")
	fs.BoolVar(&f.useLinter, "use-linter", true, "enable linting (default)")
}

// Resolve reconciles the CSV and boolean shorthand flags into Config
// after fs.Parse has run. --no-linter wins over --use-linter when both
// are (unusually) supplied, since disabling is the more specific ask.
func (f *Flags) Resolve() {
	if f.disabledCSV != "" {
		var names []string
		for _, n := range strings.Split(f.disabledCSV, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
		f.Config.DisabledRules = names
	}
	if f.noLinter || !f.useLinter {
		f.Config.OptimizationLevel = string(optimizer.LevelNone)
	}
}
