package diag

// catalogue is the fixed suggestion vocabulary looked up by Kind. Callers
// pick a subkind key (e.g. "parse_error:missing_from") explicitly; there is
// no dynamic sentence generation.
var catalogue = map[string]string{
	"parse_error:missing_from":       "add a FROM clause naming the cube",
	"parse_error:unbalanced_brackets": "check for a missing ']' or '}'",
	"parse_error:duplicate_axis":      "each axis id (COLUMNS, ROWS, ...) may appear at most once",
	"parse_error:missing_select":      "an MDX query must start with SELECT or WITH",
	"parse_error:unexpected_token":    "check for a missing comma, keyword, or closing delimiter",
	"parse_error:unterminated_string": "close the string literal with a matching quote",
	"parse_error:invalid_where":       "WHERE accepts a tuple, a member, or a logical expression",
	"parse_error:recovery":            "the parser skipped tokens to resynchronize after the error above",

	"semantic_error:circular_calculation": "remove the cycle among WITH MEMBER definitions",
	"semantic_error:undefined_reference":  "check the measure or calculation name for typos",
	"semantic_error:empty_specific":       "a specific member selection must name at least one member",
	"semantic_error:duplicate_calculation": "rename one of the WITH MEMBER definitions",

	"normalization_warning:redundant_hierarchy_levels": "keep only the deepest .Members level on a hierarchy",
	"normalization_warning:excessive_nesting":          "flatten nested set braces before submitting",
	"normalization_warning:mixed_axis":                 "put measures and dimension members on separate axes",
	"normalization_warning:duplicate_measure_alias":     "give each measure a distinct alias",

	"unsupported_construct:drillthrough": "DRILLTHROUGH bodies are not translated; only the SELECT is",
	"unsupported_construct:scope":        "SCOPE assignments have no DAX equivalent and are dropped",
	"unsupported_construct:time_intelligence": "this time-intelligence function is passed through as-is",
	"unsupported_construct:subselect_cube":    "sub-select cube sources are approximated by the innermost SELECT's cube",
	"unsupported_construct:navigation":        "PARENT/FIRSTCHILD/LASTCHILD/LEAD/LAG are approximated as a single named member",
	"unsupported_construct:unknown_function":  "enable parser.allow_unknown_functions or check the function name for typos",

	"emitter_error:no_dax_equivalent":     "simplify the expression; it has no direct DAX counterpart",
	"emitter_error:approximated_selection": "children/descendants/range axis selections narrow to their reference member; rewrite as an explicit member list for an exact filter",

	"resource_error:input_too_large": "reduce the query size or raise parser.max_input_chars",
	"resource_error:parse_timeout":   "simplify the query or raise parser.parse_timeout_ms",
	"resource_error:linter_timeout":  "raise linter.max_processing_ms or disable optimization",
}

// Suggest looks up a canned suggestion for a "kind:subkind" key. It returns
// "" when no suggestion is catalogued, which callers treat as "omit".
func Suggest(key string) string {
	return catalogue[key]
}
