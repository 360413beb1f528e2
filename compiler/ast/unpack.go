package ast

import "github.com/mdxtodax/unmdx/pkg/unpack"

// Unpacker decodes debug-dumped AST JSON back into the concrete node
// types above, keyed on each node's "kind" field. unmdx.ParseMDX uses
// it to verify its own --debug parse-tree dump round-trips before
// exposing it; tests use it the same way. The parser itself still
// builds nodes directly.
var Unpacker = unpack.New().Init(
	Query{},
	MemberDecl{},
	SetDecl{},
	SelectStmt{},
	AxisSpec{},
	CubeName{},
	SubSelectCube{},
	WhereClause{},
	SetLiteral{},
	SetFunction{},
	SetOpExpr{},
	ParenSet{},
	Tuple{},
	MemberRange{},
	NumberLit{},
	StringLit{},
	BoolLit{},
	MemberExpr{},
	BinaryExpr{},
	UnaryExpr{},
	FunctionCallExpr{},
	CaseExpr{},
	WhenClause{},
	IIFExpr{},
	ParenExpr{},
	LogicalExpr{},
	ComparisonExpr{},
	IsExpr{},
	BetweenExpr{},
	InExpr{},
)
