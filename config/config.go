// Package config holds the nested configuration record every pipeline
// stage reads its options from, the way the teacher's own service config
// packages (service/logger.Config, ppl/zqd/db/postgresdb.Config) are
// plain structs with yaml/json tags loaded once at startup and threaded
// down through the stages that need them, rather than read ad hoc from a
// package-global.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mdxtodax/unmdx/compiler/dax"
	"github.com/mdxtodax/unmdx/compiler/explain"
	"github.com/mdxtodax/unmdx/compiler/optimizer"
	"github.com/mdxtodax/unmdx/compiler/parser"
	"github.com/mdxtodax/unmdx/compiler/semantic"
)

// Config is the top-level nested record; every field group matches one
// row-family of the documented configuration table.
type Config struct {
	Parser      ParserConfig      `yaml:"parser" json:"parser"`
	Linter      LinterConfig      `yaml:"linter" json:"linter"`
	Dax         DAXConfig         `yaml:"dax" json:"dax"`
	Explanation ExplanationConfig `yaml:"explanation" json:"explanation"`
	Global      GlobalConfig      `yaml:"global" json:"global"`
}

type ParserConfig struct {
	StrictMode            bool `yaml:"strict_mode" json:"strict_mode"`
	AllowUnknownFunctions bool `yaml:"allow_unknown_functions" json:"allow_unknown_functions"`
	MaxParseErrors        int  `yaml:"max_parse_errors" json:"max_parse_errors"`
	ParseTimeoutMs        int  `yaml:"parse_timeout_ms" json:"parse_timeout_ms"`
	MaxInputChars         int  `yaml:"max_input_chars" json:"max_input_chars"`
}

type LinterConfig struct {
	OptimizationLevel string   `yaml:"optimization_level" json:"optimization_level"`
	MaxCrossJoinDepth int      `yaml:"max_crossjoin_depth" json:"max_crossjoin_depth"`
	DisabledRules     []string `yaml:"disabled_rules" json:"disabled_rules"`
	MaxProcessingMs   int      `yaml:"max_processing_ms" json:"max_processing_ms"`
}

type DAXConfig struct {
	FormatOutput        bool `yaml:"format_output" json:"format_output"`
	IndentSize          int  `yaml:"indent_size" json:"indent_size"`
	LineWidth           int  `yaml:"line_width" json:"line_width"`
	UseSummarizeColumns bool `yaml:"use_summarizecolumns" json:"use_summarizecolumns"`
	EscapeReservedWords bool `yaml:"escape_reserved_words" json:"escape_reserved_words"`
}

type ExplanationConfig struct {
	Format               string `yaml:"format" json:"format"`
	Detail               string `yaml:"detail" json:"detail"`
	IncludeDaxComparison bool   `yaml:"include_dax_comparison" json:"include_dax_comparison"`
	// RenderHTML only takes effect when Format is markdown; it runs the
	// generated report through explain.RenderHTML before it reaches the
	// caller, for embedding in a report page rather than a terminal.
	RenderHTML bool `yaml:"render_html" json:"render_html"`
}

type GlobalConfig struct {
	Debug         bool `yaml:"debug" json:"debug"`
	FailFast      bool `yaml:"fail_fast" json:"fail_fast"`
	EnableCaching bool `yaml:"enable_caching" json:"enable_caching"`
	// Logger is never marshaled; it is populated by the CLI (via
	// config/globalflags) or left as a no-op logger for library callers
	// that never call logflags.
	Logger *zap.Logger `yaml:"-" json:"-"`
}

// Default returns the documented defaults: pretty DAX, moderate linting,
// standard-detail natural-language explanations, no caching or debug
// attachments, and a no-op logger.
func Default() Config {
	return Config{
		Parser: ParserConfig{
			MaxParseErrors: 50,
		},
		Linter: LinterConfig{
			OptimizationLevel: string(optimizer.LevelModerate),
			MaxCrossJoinDepth: 8,
			MaxProcessingMs:   5000,
		},
		Dax: DAXConfig{
			FormatOutput:        true,
			IndentSize:          4,
			LineWidth:           100,
			UseSummarizeColumns: true,
			EscapeReservedWords: true,
		},
		Explanation: ExplanationConfig{
			Format: string(explain.FormatNatural),
			Detail: string(explain.DetailStandard),
		},
		Global: GlobalConfig{
			Logger: zap.NewNop(),
		},
	}
}

// Load reads a JSON or YAML configuration document from r into a copy of
// Default(), auto-detecting the format from the first non-whitespace
// byte when format is empty (a YAML document that happens to start with
// "{" is the one case this heuristic gets wrong; callers who hit that
// should pass format explicitly).
func Load(r io.Reader, format string) (Config, error) {
	cfg := Default()
	data, err := io.ReadAll(r)
	if err != nil {
		return cfg, fmt.Errorf("config: read: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}
	if format == "" {
		format = sniffFormat(data)
	}
	switch format {
	case "json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse json: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse yaml: %w", err)
		}
	}
	if cfg.Global.Logger == nil {
		cfg.Global.Logger = zap.NewNop()
	}
	return cfg, nil
}

func sniffFormat(data []byte) string {
	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") {
		return "json"
	}
	return "yaml"
}

// ToParserOptions adapts the parser section into parser.Options, folding
// in global.fail_fast since parser.Options.FailFast is the pipeline's
// single fail-fast switch.
func (c Config) ToParserOptions() parser.Options {
	return parser.Options{
		MaxParseErrors: c.Parser.MaxParseErrors,
		FailFast:       c.Global.FailFast,
		MaxInputChars:  c.Parser.MaxInputChars,
		Timeout:        time.Duration(c.Parser.ParseTimeoutMs) * time.Millisecond,
	}
}

func (c Config) ToSemanticConfig() semantic.Config {
	return semantic.Config{
		StrictMode:            c.Parser.StrictMode,
		AllowUnknownFunctions: c.Parser.AllowUnknownFunctions,
	}
}

func (c Config) ToOptimizerConfig() optimizer.Config {
	disabled := make(map[string]bool, len(c.Linter.DisabledRules))
	for _, name := range c.Linter.DisabledRules {
		disabled[name] = true
	}
	return optimizer.Config{
		Level:             optimizer.Level(c.Linter.OptimizationLevel),
		MaxCrossJoinDepth: c.Linter.MaxCrossJoinDepth,
		DisabledRules:     disabled,
		MaxProcessingTime: time.Duration(c.Linter.MaxProcessingMs) * time.Millisecond,
	}
}

func (c Config) ToDaxConfig() dax.Config {
	return dax.Config{
		FormatOutput:        c.Dax.FormatOutput,
		IndentSize:          c.Dax.IndentSize,
		LineWidth:           c.Dax.LineWidth,
		UseSummarizeColumns: c.Dax.UseSummarizeColumns,
		EscapeReservedWords: c.Dax.EscapeReservedWords,
	}
}

func (c Config) ToExplainConfig() explain.Config {
	return explain.Config{
		Format:               explain.Format(c.Explanation.Format),
		Detail:               explain.Detail(c.Explanation.Detail),
		IncludeDAXComparison: c.Explanation.IncludeDaxComparison,
		DaxConfig:            c.ToDaxConfig(),
		RenderHTML:           c.Explanation.RenderHTML,
	}
}
