package semantic

import (
	"github.com/agnivade/levenshtein"

	"github.com/mdxtodax/unmdx/diag"
)

// knownFunctions lists the MDX function names the emitter and explainer
// have a direct or approximated DAX translation for. It is not
// exhaustive of MDX itself — only of what compiler/dax's FunctionCall
// handling recognizes, including the time-intelligence functions it
// passes through.
var knownFunctions = map[string]bool{
	"SUM": true, "AVG": true, "MIN": true, "MAX": true, "COUNT": true,
	"DISTINCTCOUNT": true, "DISTINCT_COUNT": true,
	"IIF": true, "ISEMPTY": true, "IS_EMPTY": true,
	"PARALLELPERIOD": true, "YTD": true, "QTD": true, "MTD": true,
	"OPENINGPERIOD": true, "CLOSINGPERIOD": true,
	"COALESCEEMPTY": true, "DIVIDE": true, "RANK": true,
}

// checkFunctionName warns on a function identifier that isn't in
// knownFunctions unless parser.allow_unknown_functions is set, offering
// the closest known name as a suggestion when one is within edit
// distance 3 — cheap enough to compute against knownFunctions' small
// fixed size and precise enough to catch the "SUMM"/"AVGE" typos a
// hand-written MDX query actually produces.
func (l *lowerer) checkFunctionName(name string, span diag.Span) {
	if l.cfg.AllowUnknownFunctions || knownFunctions[name] {
		return
	}
	suggestion := diag.Suggest("unsupported_construct:unknown_function")
	if close := closestFunctionName(name); close != "" {
		suggestion = "did you mean " + close + "?"
	}
	l.bag.Add(diag.Diagnostic{
		Severity:   diag.Warning,
		Kind:       diag.UnsupportedConstruct,
		Message:    "unrecognized function " + name,
		Span:       span,
		Suggestion: suggestion,
	})
}

func closestFunctionName(name string) string {
	best := ""
	bestDist := 4 // no suggestion beyond this distance
	for candidate := range knownFunctions {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			bestDist = d
			best = candidate
		}
	}
	return best
}
