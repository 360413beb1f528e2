package dax

import "strings"

// reservedWords forces single-quoting even when the identifier has no
// whitespace, matching the minimum set §4.5 requires.
var reservedWords = map[string]bool{
	"Date": true, "Time": true, "Value": true, "Min": true,
	"Max": true, "Sum": true, "Count": true, "Average": true,
}

// quoteIdent renders a table identifier, single-quoting it when it
// contains whitespace or collides with the reserved-words list.
func quoteIdent(name string) string {
	if strings.ContainsAny(name, " \t") || reservedWords[name] {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}

func quoteString(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
}
