// Package unmdx is the top-level API composing the parser, lowerer,
// linter, DAX emitter, and explainer, grounded on the teacher's own
// compiler package pattern of thin top-level functions
// (compiler.Parse, compiler.Describe) that wire per-stage packages
// together without owning any stage's logic themselves.
package unmdx

import (
	"encoding/json"
	"time"

	"github.com/segmentio/ksuid"
	"go.uber.org/zap"

	"github.com/mdxtodax/unmdx/cache"
	"github.com/mdxtodax/unmdx/compiler/ast"
	"github.com/mdxtodax/unmdx/compiler/dax"
	"github.com/mdxtodax/unmdx/compiler/explain"
	"github.com/mdxtodax/unmdx/compiler/ir"
	"github.com/mdxtodax/unmdx/compiler/optimizer"
	"github.com/mdxtodax/unmdx/compiler/parser"
	"github.com/mdxtodax/unmdx/compiler/semantic"
	"github.com/mdxtodax/unmdx/config"
	"github.com/mdxtodax/unmdx/diag"
)

// ParseMDX tokenizes, parses, and lowers src into IR in one step, per
// the "parse_mdx(text, config) -> (IR, diagnostics)" primary-API entry.
func ParseMDX(src string, cfg config.Config) (*ir.Query, []diag.Diagnostic) {
	bag := diag.NewBag(cfg.Global.FailFast, cfg.Parser.MaxParseErrors)
	res := parser.Parse(src, cfg.ToParserOptions())
	bag.Extend(res.Bag)
	if res.Query == nil {
		return nil, bag.Diagnostics()
	}
	q := semantic.Lower(res.Query, res.Hints, cfg.ToSemanticConfig(), bag)
	if cfg.Global.Debug {
		if q.Metadata.Debug == nil {
			q.Metadata.Debug = map[string]string{}
		}
		if raw, err := json.Marshal(res.Query); err == nil {
			q.Metadata.Debug["parse_tree"] = string(raw)
			// Round-trip the dump back through the AST's own decoder so a
			// --debug consumer can trust the JSON it's handed, not just
			// eyeball it.
			if _, uerr := ast.Unpacker.Unpack("kind", raw); uerr != nil {
				q.Metadata.Debug["parse_tree_roundtrip"] = "failed: " + uerr.Error()
			} else {
				q.Metadata.Debug["parse_tree_roundtrip"] = "ok"
			}
		}
	}
	return q, bag.Diagnostics()
}

// OptimizeIR runs the linter over q per "optimize_ir(ir, config) ->
// (IR, diagnostics)".
func OptimizeIR(q ir.Query, cfg config.Config) (ir.Query, []diag.Diagnostic) {
	bag := diag.NewBag(cfg.Global.FailFast, 0)
	out := optimizer.Optimize(q, cfg.ToOptimizerConfig(), bag)
	if cfg.Global.Debug {
		if out.Metadata.Debug == nil {
			out.Metadata.Debug = map[string]string{}
		}
		if raw, err := json.Marshal(out); err == nil {
			if _, uerr := ir.Unpacker.Unpack("kind", raw); uerr != nil {
				out.Metadata.Debug["ir_roundtrip"] = "failed: " + uerr.Error()
			} else {
				out.Metadata.Debug["ir_roundtrip"] = "ok"
			}
		}
	}
	return out, bag.Diagnostics()
}

// GenerateDAX emits DAX text for q per "generate_dax(ir, config) ->
// (text, diagnostics)".
func GenerateDAX(q ir.Query, cfg config.Config) (string, []diag.Diagnostic) {
	bag := diag.NewBag(cfg.Global.FailFast, 0)
	out := dax.Generate(q, cfg.ToDaxConfig(), bag)
	return out, bag.Diagnostics()
}

// ExplainIR renders q as prose/SQL/JSON/Markdown per "explain_ir(ir,
// config) -> (text, diagnostics)".
func ExplainIR(q ir.Query, cfg config.Config) (string, []diag.Diagnostic) {
	bag := diag.NewBag(cfg.Global.FailFast, 0)
	out := explain.Generate(q, cfg.ToExplainConfig(), bag)
	return out, bag.Diagnostics()
}

// Result is what MDXToDAX returns: the composed parse -> optimize ->
// generate pipeline's output plus per-stage timings, for a CLI or test
// to report without re-running any stage.
type Result struct {
	RequestID   string
	Dax         string
	IR          ir.Query
	Diagnostics []diag.Diagnostic
	Timings     Timings
}

type Timings struct {
	Parse    time.Duration
	Optimize time.Duration
	Generate time.Duration
}

// MDXToDAX composes parse -> optimize -> generate, per the documented
// convenience wrapper. c, if non-nil and global.enable_caching is set,
// is consulted before running the pipeline and populated afterward; a
// cache hit still returns accurate timings of zero duration for the
// skipped stages, which is the correct answer to "how long did this
// call take" rather than a stale value from the original run.
func MDXToDAX(src string, cfg config.Config, c *cache.Cache) Result {
	requestID := ksuid.New().String()
	logger := cfg.Global.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("request_id", requestID))

	var key string
	if cfg.Global.EnableCaching && c != nil {
		key = cache.Key(src, cfg)
		if entry, ok := c.Get(key); ok {
			logger.Debug("cache hit")
			return Result{RequestID: requestID, Dax: entry.Dax, IR: *entry.IR}
		}
	}

	var timings Timings

	parseStart := time.Now()
	q, diags := ParseMDX(src, cfg)
	timings.Parse = time.Since(parseStart)
	if q == nil {
		logger.Warn("parse produced no query", zap.Int("diagnostics", len(diags)))
		return Result{RequestID: requestID, Diagnostics: diags, Timings: timings}
	}

	optStart := time.Now()
	optimized, optDiags := OptimizeIR(*q, cfg)
	timings.Optimize = time.Since(optStart)
	diags = append(diags, optDiags...)

	genStart := time.Now()
	daxText, genDiags := GenerateDAX(optimized, cfg)
	timings.Generate = time.Since(genStart)
	diags = append(diags, genDiags...)

	if cfg.Global.EnableCaching && c != nil {
		c.Put(key, cache.Entry{IR: &optimized, Dax: daxText})
	}

	logger.Debug("conversion complete",
		zap.Duration("parse", timings.Parse),
		zap.Duration("optimize", timings.Optimize),
		zap.Duration("generate", timings.Generate),
	)
	return Result{RequestID: requestID, Dax: daxText, IR: optimized, Diagnostics: diags, Timings: timings}
}

// HasErrors reports whether any diagnostic in diags carries error
// severity, the check the CLI uses to pick its exit code.
func HasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == diag.Error {
			return true
		}
	}
	return false
}
