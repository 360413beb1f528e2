package ir

import "github.com/mdxtodax/unmdx/pkg/unpack"

// Unpacker decodes a --debug-dumped IR back into the concrete types
// above. unmdx.OptimizeIR uses it to verify its own debug dump
// round-trips before handing it to a caller; tests use it the same way.
var Unpacker = unpack.New().Init(
	Query{},
	AllMembers{},
	SpecificMembers{},
	ChildrenMembers{},
	DescendantsMembers{},
	RangeMembers{},
	DimensionFilter{},
	MeasureFilter{},
	NonEmptyFilter{},
	Constant{},
	MeasureReference{},
	MemberReference{},
	BinaryOp{},
	Comparison{},
	LogicalOp{},
	FunctionCall{},
	Conditional{},
)
