package ir

type CalcKind string

const (
	CalcMeasure CalcKind = "MEASURE"
	CalcMember  CalcKind = "MEMBER"
)

// Calculation is one WITH-section definition. DAX measures are
// dimensionless, so a WITH MEMBER's target dimension is discarded by the
// lowerer; only its name and expression survive here.
type Calculation struct {
	Name         string
	Kind         CalcKind
	Expression   Expression
	SolveOrder   *int   `json:"solve_order,omitempty"`
	FormatString string `json:"format_string,omitempty"`
}
