package config

import (
	"os"
	"strconv"
	"strings"
)

// envBool, envInt and envString back the UNMDX_<SECTION>_<OPTION>
// overrides; ApplyEnvOverrides is their only caller, and cmd/unmdx runs it
// before registering any flags, so an environment variable sets the
// default a plain CLI flag can still override, per the documented
// precedence (env overrides config-file/hardcoded defaults, explicit flags
// override everything).
func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envString(key string, def string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	return v
}

func envStringSlice(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ApplyEnvOverrides mutates cfg in place, applying every UNMDX_<SECTION>_
// <OPTION> variable that is set, following the documented naming scheme
// exactly (section and option names upper-cased, dots turned to
// underscores).
func ApplyEnvOverrides(cfg *Config) {
	p := &cfg.Parser
	p.StrictMode = envBool("UNMDX_PARSER_STRICT_MODE", p.StrictMode)
	p.AllowUnknownFunctions = envBool("UNMDX_PARSER_ALLOW_UNKNOWN_FUNCTIONS", p.AllowUnknownFunctions)
	p.MaxParseErrors = envInt("UNMDX_PARSER_MAX_PARSE_ERRORS", p.MaxParseErrors)
	p.ParseTimeoutMs = envInt("UNMDX_PARSER_PARSE_TIMEOUT_MS", p.ParseTimeoutMs)
	p.MaxInputChars = envInt("UNMDX_PARSER_MAX_INPUT_CHARS", p.MaxInputChars)

	l := &cfg.Linter
	l.OptimizationLevel = envString("UNMDX_LINTER_OPTIMIZATION_LEVEL", l.OptimizationLevel)
	l.MaxCrossJoinDepth = envInt("UNMDX_LINTER_MAX_CROSSJOIN_DEPTH", l.MaxCrossJoinDepth)
	l.DisabledRules = envStringSlice("UNMDX_LINTER_DISABLED_RULES", l.DisabledRules)
	l.MaxProcessingMs = envInt("UNMDX_LINTER_MAX_PROCESSING_MS", l.MaxProcessingMs)

	d := &cfg.Dax
	d.FormatOutput = envBool("UNMDX_DAX_FORMAT_OUTPUT", d.FormatOutput)
	d.IndentSize = envInt("UNMDX_DAX_INDENT_SIZE", d.IndentSize)
	d.LineWidth = envInt("UNMDX_DAX_LINE_WIDTH", d.LineWidth)
	d.UseSummarizeColumns = envBool("UNMDX_DAX_USE_SUMMARIZECOLUMNS", d.UseSummarizeColumns)
	d.EscapeReservedWords = envBool("UNMDX_DAX_ESCAPE_RESERVED_WORDS", d.EscapeReservedWords)

	e := &cfg.Explanation
	e.Format = envString("UNMDX_EXPLANATION_FORMAT", e.Format)
	e.Detail = envString("UNMDX_EXPLANATION_DETAIL", e.Detail)
	e.IncludeDaxComparison = envBool("UNMDX_EXPLANATION_INCLUDE_DAX_COMPARISON", e.IncludeDaxComparison)
	e.RenderHTML = envBool("UNMDX_EXPLANATION_RENDER_HTML", e.RenderHTML)

	g := &cfg.Global
	g.Debug = envBool("UNMDX_GLOBAL_DEBUG", g.Debug)
	g.FailFast = envBool("UNMDX_GLOBAL_FAIL_FAST", g.FailFast)
	g.EnableCaching = envBool("UNMDX_GLOBAL_ENABLE_CACHING", g.EnableCaching)
}
