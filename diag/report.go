package diag

import (
	"fmt"
	"strings"

	"github.com/mdxtodax/unmdx/pkg/plural"
)

// Summary renders a one-line "N errors, N warnings" tally for CLI output,
// pluralized the way the teacher's pkg/plural helper is used for record
// and field counts elsewhere in its CLI.
func Summary(diags []Diagnostic) string {
	var errs, warns, infos int
	for _, d := range diags {
		switch d.Severity {
		case Error:
			errs++
		case Warning:
			warns++
		case Info:
			infos++
		}
	}
	var parts []string
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%d error%s", errs, plural.Count(errs, "s")))
	}
	if warns > 0 {
		parts = append(parts, fmt.Sprintf("%d warning%s", warns, plural.Count(warns, "s")))
	}
	if infos > 0 {
		parts = append(parts, fmt.Sprintf("%d note%s", infos, plural.Count(infos, "s")))
	}
	if len(parts) == 0 {
		return "no diagnostics"
	}
	return strings.Join(parts, ", ")
}

// Report renders every diagnostic in emission order, one per line block,
// followed by the Summary tally.
func Report(diags []Diagnostic, m *SourceMap) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(d.Render(m))
		b.WriteByte('\n')
	}
	b.WriteString(Summary(diags))
	return b.String()
}
