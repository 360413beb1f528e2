// Package optimizer runs the ordered, idempotent IR-to-IR passes that
// normalize a lowered Query before emission, the way the teacher's own
// optimizer package threads a single Optimize entry point over a fixed
// pass list rather than an open-ended registry.
package optimizer

import (
	"time"

	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/diag"
)

type Level string

const (
	LevelNone         Level = "none"
	LevelConservative Level = "conservative"
	LevelModerate     Level = "moderate"
	LevelAggressive   Level = "aggressive"
)

// Config mirrors config.LinterConfig's optimizer-affecting fields.
type Config struct {
	Level             Level
	MaxCrossJoinDepth int
	DisabledRules     map[string]bool
	MaxProcessingTime time.Duration
}

func (c Config) disabled(rule string) bool {
	return c.DisabledRules != nil && c.DisabledRules[rule]
}

type pass struct {
	name string
	fn   func(ir.Query, *diag.Bag, Config) ir.Query
}

// passOrder is the fixed 6-pass rewrite sequence; pass 7 (Validate) runs
// after every individual pass rather than only at the end, so a pass that
// breaks an invariant is reverted immediately instead of poisoning the
// passes after it.
var passOrder = []pass{
	{"flatten_sets", passFlattenSets},
	{"hierarchy_collapse", passHierarchyCollapse},
	{"deduplicate_members", passDeduplicateMembers},
	{"remove_empty_filters", passRemoveEmptyFilters},
	{"clean_calculations", passCleanCalculations},
	{"crossjoin_optimization", passCrossJoinOptimization},
}

// levelSkips names the passes a level opts out of, per the §4.4 table.
// Passes 1-4 always run: only the last two (clean_calculations,
// crossjoin_optimization) are level-gated.
func levelSkips(level Level) map[string]bool {
	switch level {
	case LevelNone, LevelConservative:
		return map[string]bool{"clean_calculations": true, "crossjoin_optimization": true}
	default:
		return nil
	}
}

// Optimize runs every enabled pass over q in order, reverting any pass
// whose output fails validation, then applies aggressive-only calculation
// inlining. It always returns a well-formed Query, even when every pass is
// skipped or reverted.
func Optimize(q ir.Query, cfg Config, bag *diag.Bag) ir.Query {
	skip := levelSkips(cfg.Level)
	cur := q.Clone()
	start := time.Now()

	for _, p := range passOrder {
		if skip[p.name] || cfg.disabled(p.name) {
			continue
		}
		if cfg.MaxProcessingTime > 0 && time.Since(start) > cfg.MaxProcessingTime {
			bag.Add(diag.Diagnostic{
				Severity: diag.Warning, Kind: diag.ResourceError,
				Message:    "linter exceeded linter.max_processing_ms; returning the last well-formed IR",
				Suggestion: diag.Suggest("resource_error:linter_timeout"),
			})
			return cur
		}
		candidate := p.fn(cur.Clone(), bag, cfg)
		check := diag.NewBag(false, 0)
		if !ir.Validate(&candidate, check) {
			bag.Add(diag.Diagnostic{
				Severity: diag.Warning, Kind: diag.SemanticError,
				Message: "linter pass " + p.name + " produced an invalid IR; reverted",
			})
			continue
		}
		cur = candidate
	}

	if cfg.Level == LevelAggressive && !cfg.disabled("inline_calculations") {
		candidate := inlineCalculations(cur.Clone(), bag)
		check := diag.NewBag(false, 0)
		if ir.Validate(&candidate, check) {
			cur = candidate
		}
	}

	ir.Validate(&cur, bag)
	return cur
}
