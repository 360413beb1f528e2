// Package ast holds the concrete parse tree produced by compiler/parser.
// Every node carries a Kind discriminant tag and an unpack:"" struct tag
// so the tree can round-trip through pkg/unpack for --debug dumps, in the
// same style the teacher tags its own dag/ast nodes.
package ast

import "github.com/mdxtodax/unmdx/diag"

// Node is implemented by every AST type. Pos/End give the byte-offset
// span of the production that built the node.
type Node interface {
	Pos() int
	End() int
	Span() diag.Span
}

// NodeSpan is embedded in every concrete node to satisfy Node.
type NodeSpan struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s NodeSpan) Pos() int        { return s.From }
func (s NodeSpan) End() int        { return s.To }
func (s NodeSpan) Span() diag.Span { return diag.Span{Start: s.From, End: s.To} }

func NewSpan(from, to int) NodeSpan { return NodeSpan{From: from, To: to} }
