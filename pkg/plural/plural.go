package plural

// Slice returns suffix unless s has exactly one element, e.g.
// fmt.Sprintf("%d arg%s", len(args), plural.Slice(args, "s")).
func Slice[S ~[]E, E any](s S, suffix string) string {
	return Count(len(s), suffix)
}

// Count is Slice for callers that already have a count and would
// otherwise build a throwaway slice just to measure its length, e.g.
// diag.Bag's error/warning/note tallies in diag/report.go.
func Count(n int, suffix string) string {
	if n == 1 {
		return ""
	}
	return suffix
}
