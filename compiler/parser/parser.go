package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/mdxtodax/unmdx/compiler/ast"
	"github.com/mdxtodax/unmdx/diag"
)

// parser is a recursive-descent parser over a pre-lexed token stream,
// threading a *diag.Bag the way the teacher's own analyzer threads an
// error accumulator through its walk (compiler/semantic.analyzer).
type parser struct {
	src      string
	toks     []Token
	i        int
	bag      *diag.Bag
	deadline time.Time
}

func newParser(src string, toks []Token, bag *diag.Bag, deadline time.Time) *parser {
	return &parser{src: src, toks: toks, bag: bag, deadline: deadline}
}

func (p *parser) cur() Token {
	return p.toks[p.i]
}

func (p *parser) timedOut() bool {
	return !p.deadline.IsZero() && time.Now().After(p.deadline)
}

func (p *parser) next() Token {
	t := p.toks[p.i]
	if p.i < len(p.toks)-1 {
		p.i++
	}
	return t
}

func (p *parser) at(k TokenKind) bool { return p.cur().Kind == k }

// peekKind returns the kind of the token off positions ahead, clamped to
// the final EOF token so lookahead never indexes past the slice.
func (p *parser) peekKind(off int) TokenKind {
	idx := p.i + off
	if idx >= len(p.toks) {
		idx = len(p.toks) - 1
	}
	return p.toks[idx].Kind
}

func (p *parser) atKeyword(word string) bool {
	t := p.cur()
	return t.Kind == Keyword && t.Upper == word
}

func (p *parser) atIdentUpper(word string) bool {
	t := p.cur()
	return t.Kind == Ident && t.Upper == word
}

func (p *parser) expect(k TokenKind) Token {
	if p.at(k) {
		return p.next()
	}
	t := p.cur()
	p.bag.Add(diag.Diagnostic{
		Severity:   diag.Error,
		Kind:       diag.ParseError,
		Message:    "unexpected token " + tokenDesc(t),
		Span:       diag.Span{Start: t.Start, End: t.End},
		Suggestion: diag.Suggest("parse_error:unexpected_token"),
	})
	return t
}

func (p *parser) expectKeyword(word string) Token {
	if p.atKeyword(word) {
		return p.next()
	}
	t := p.cur()
	key := "parse_error:unexpected_token"
	if word == "FROM" {
		key = "parse_error:missing_from"
	} else if word == "SELECT" {
		key = "parse_error:missing_select"
	}
	p.bag.Add(diag.Diagnostic{
		Severity:   diag.Error,
		Kind:       diag.ParseError,
		Message:    "expected " + word + ", found " + tokenDesc(t),
		Span:       diag.Span{Start: t.Start, End: t.End},
		Suggestion: diag.Suggest(key),
	})
	return t
}

func tokenDesc(t Token) string {
	if t.Kind == EOF {
		return "end of input"
	}
	return strconv.Quote(t.Text)
}

// recover skips forward to the next axis separator, WHERE, FROM, or
// statement terminator, consuming at least one token, per the grammar's
// stated recovery rule. It reports the span it skipped over as an info
// diagnostic so callers (and tests) can see recovery actually ran, then
// lets the caller resume parsing from the boundary token.
func (p *parser) recover() {
	begin := p.cur().Start
	startIdx := p.i
	for !p.at(EOF) {
		if p.at(Comma) || p.at(Semicolon) || p.atKeyword("WHERE") || p.atKeyword("FROM") {
			break
		}
		p.next()
	}
	if p.i == startIdx && !p.at(EOF) {
		p.next()
	}
	end := p.cur().Start
	p.bag.Add(diag.Diagnostic{
		Severity:   diag.Info,
		Kind:       diag.ParseError,
		Message:    "recovery skipped tokens from offset " + strconv.Itoa(begin) + " to " + strconv.Itoa(end),
		Span:       diag.Span{Start: begin, End: end},
		Suggestion: diag.Suggest("parse_error:recovery"),
	})
}

func (p *parser) parseTopLevel() *ast.Query {
	start := p.cur().Start
	var withItems []ast.WithItem
	if p.atKeyword("WITH") {
		p.next()
		for p.atKeyword("MEMBER") || p.atKeyword("SET") {
			withItems = append(withItems, p.parseWithItem())
			if p.timedOut() {
				p.bag.Add(diag.Diagnostic{Severity: diag.Error, Kind: diag.ResourceError,
					Message: "parser exceeded parser.parse_timeout_ms", Suggestion: diag.Suggest("resource_error:parse_timeout")})
				return &ast.Query{Kind: "Query", With: withItems}
			}
		}
	}
	sel := p.parseSelectStmt()
	end := p.toks[p.i].Start
	return &ast.Query{Kind: "Query", With: withItems, Select: sel, NodeSpan: ast.NewSpan(start, end)}
}

func (p *parser) parseWithItem() ast.WithItem {
	if p.atKeyword("MEMBER") {
		return p.parseMemberDecl()
	}
	return p.parseSetDecl()
}

func (p *parser) parseMemberDecl() *ast.MemberDecl {
	start := p.cur().Start
	p.expectKeyword("MEMBER")
	path := p.parseDottedPath()
	p.expectKeyword("AS")
	val := p.parseValueExpr()
	format := ""
	if p.at(Comma) {
		save := p.i
		p.next()
		if p.atIdentUpper("FORMAT_STRING") {
			p.next()
			p.expect(Eq)
			if p.at(String) {
				format = p.next().Text
			}
		} else {
			p.i = save
		}
	}
	end := p.toks[p.i].Start
	return &ast.MemberDecl{Kind: "MemberDecl", Path: path, Value: val, Format: format, NodeSpan: ast.NewSpan(start, end)}
}

func (p *parser) parseSetDecl() *ast.SetDecl {
	start := p.cur().Start
	p.expectKeyword("SET")
	alias := strings.Join(p.parseDottedPath(), ".")
	p.expectKeyword("AS")
	set := p.parseSetExpr()
	end := p.toks[p.i].Start
	return &ast.SetDecl{Kind: "SetDecl", Alias: alias, Set: set, NodeSpan: ast.NewSpan(start, end)}
}

// parseDottedPath consumes "seg (.seg)*" where each seg is a bracketed or
// bare identifier, used for member-declaration targets and set aliases
// (not full member expressions with navigation suffixes).
func (p *parser) parseDottedPath() []string {
	var parts []string
	parts = append(parts, p.parseSegmentText())
	for p.at(Dot) {
		p.next()
		parts = append(parts, p.parseSegmentText())
	}
	return parts
}

func (p *parser) parseSegmentText() string {
	if p.at(BracketedIdent) || p.at(Ident) {
		return p.next().Text
	}
	t := p.cur()
	p.bag.Add(diag.Diagnostic{Severity: diag.Error, Kind: diag.ParseError,
		Message: "expected identifier, found " + tokenDesc(t), Span: diag.Span{Start: t.Start, End: t.End}})
	return ""
}

func (p *parser) parseSelectStmt() *ast.SelectStmt {
	start := p.cur().Start
	p.expectKeyword("SELECT")
	var axes []*ast.AxisSpec
	seen := map[int]bool{}
	axes = append(axes, p.parseAxisSpec(seen))
	for {
		if p.at(Comma) {
			p.next()
			axes = append(axes, p.parseAxisSpec(seen))
			continue
		}
		if p.atKeyword("FROM") || p.at(EOF) {
			break
		}
		// Whatever follows an axis spec isn't a separator or FROM: skip
		// forward to the next axis separator/WHERE/FROM/terminator so one
		// bad axis doesn't cascade into every remaining production.
		p.recover()
		if p.at(Comma) {
			continue
		}
		break
	}
	p.expectKeyword("FROM")
	cube := p.parseCubeSpec()
	var where *ast.WhereClause
	if p.atKeyword("WHERE") {
		where = p.parseWhereClause()
	}
	end := p.toks[p.i].Start
	return &ast.SelectStmt{Kind: "SelectStmt", Axes: axes, Cube: cube, Where: where, NodeSpan: ast.NewSpan(start, end)}
}

func (p *parser) parseAxisSpec(seen map[int]bool) *ast.AxisSpec {
	start := p.cur().Start
	nonEmpty := false
	if p.atKeyword("NON") {
		p.next()
		p.expectKeyword("EMPTY")
		nonEmpty = true
	}
	set := p.parseSetExpr()
	p.expectKeyword("ON")
	name, idx := p.parseAxisID()
	if seen[idx] {
		p.bag.Add(diag.Diagnostic{Severity: diag.Error, Kind: diag.ParseError,
			Message: "duplicate axis " + name, Span: diag.Span{Start: start, End: p.toks[p.i].Start},
			Suggestion: diag.Suggest("parse_error:duplicate_axis")})
	}
	seen[idx] = true
	end := p.toks[p.i].Start
	return &ast.AxisSpec{Kind: "AxisSpec", NonEmpty: nonEmpty, Set: set, AxisName: name, AxisIndex: idx, NodeSpan: ast.NewSpan(start, end)}
}

var namedAxes = map[string]int{"COLUMNS": 0, "ROWS": 1, "PAGES": 2, "CHAPTERS": 3, "SECTIONS": 4}

func (p *parser) parseAxisID() (string, int) {
	t := p.cur()
	if t.Kind == Keyword {
		if idx, ok := namedAxes[t.Upper]; ok {
			p.next()
			return t.Upper, idx
		}
		if t.Upper == "AXIS" {
			p.next()
			p.expect(LParen)
			n := p.parseIntLiteral()
			p.expect(RParen)
			return "AXIS", n
		}
	}
	if t.Kind == Number {
		p.next()
		n, _ := strconv.Atoi(strings.TrimSuffix(t.Text, ".0"))
		return t.Text, n
	}
	p.bag.Add(diag.Diagnostic{Severity: diag.Error, Kind: diag.ParseError,
		Message: "expected axis id, found " + tokenDesc(t), Span: diag.Span{Start: t.Start, End: t.End}})
	return "", -1
}

func (p *parser) parseIntLiteral() int {
	if p.at(Number) {
		t := p.next()
		n, _ := strconv.Atoi(strings.SplitN(t.Text, ".", 2)[0])
		return n
	}
	return 0
}

func (p *parser) parseCubeSpec() ast.CubeSpec {
	start := p.cur().Start
	if p.at(LParen) {
		p.next()
		sub := p.parseSelectStmt()
		p.expect(RParen)
		end := p.toks[p.i].Start
		return &ast.SubSelectCube{Kind: "SubSelectCube", Select: sub, NodeSpan: ast.NewSpan(start, end)}
	}
	segs := p.parseDottedPath()
	end := p.toks[p.i].Start
	name := segs[len(segs)-1]
	db := ""
	if len(segs) > 1 {
		db = strings.Join(segs[:len(segs)-1], ".")
	}
	return &ast.CubeName{Kind: "CubeName", Database: db, Name: name, NodeSpan: ast.NewSpan(start, end)}
}

func (p *parser) parseWhereClause() *ast.WhereClause {
	start := p.cur().Start
	p.expectKeyword("WHERE")
	if p.at(LParen) {
		save := p.i
		p.next()
		if p.at(RParen) {
			p.next()
			end := p.toks[p.i].Start
			return &ast.WhereClause{Kind: "WhereClause", NodeSpan: ast.NewSpan(start, end)}
		}
		if members, ok := p.tryParseTupleMembers(); ok && p.at(RParen) {
			p.next()
			end := p.toks[p.i].Start
			return &ast.WhereClause{Kind: "WhereClause", Tuple: members, NodeSpan: ast.NewSpan(start, end)}
		}
		p.i = save
	}
	expr := p.parseExpr()
	end := p.toks[p.i].Start
	return &ast.WhereClause{Kind: "WhereClause", Logical: expr, NodeSpan: ast.NewSpan(start, end)}
}

// tryParseTupleMembers speculatively parses a comma-separated list of
// plain member expressions; it backtracks and reports failure rather
// than emitting diagnostics, since the caller falls back to a full
// logical-expression parse when this fails.
func (p *parser) tryParseTupleMembers() ([]*ast.MemberExpr, bool) {
	save := p.i
	savedErrs := p.bag
	scratch := diag.NewBag(false, 0)
	p.bag = scratch
	var members []*ast.MemberExpr
	ok := true
	for {
		if !p.at(BracketedIdent) && !p.at(Ident) {
			ok = false
			break
		}
		m := p.parseMemberExpr()
		members = append(members, m)
		if p.at(Comma) {
			p.next()
			continue
		}
		break
	}
	p.bag = savedErrs
	if !ok || scratch.HasErrors() || !p.at(RParen) {
		p.i = save
		return nil, false
	}
	return members, true
}

// ---- logical / value expression grammar ----
// precedence, loosest to tightest: XOR, OR, AND, NOT, comparison,
// concatenation (&), additive (+ -), multiplicative (* /), unary (-), primary.

func (p *parser) parseExpr() ast.Expr { return p.parseXor() }

func (p *parser) parseXor() ast.Expr {
	left := p.parseOr()
	for p.atKeyword("XOR") {
		p.next()
		right := p.parseOr()
		left = &ast.LogicalExpr{Kind: "LogicalExpr", Op: "XOR", Operands: []ast.Expr{left, right}}
	}
	return left
}

func (p *parser) parseOr() ast.Expr {
	left := p.parseAnd()
	for p.atKeyword("OR") {
		p.next()
		right := p.parseAnd()
		left = &ast.LogicalExpr{Kind: "LogicalExpr", Op: "OR", Operands: []ast.Expr{left, right}}
	}
	return left
}

func (p *parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for p.atKeyword("AND") {
		p.next()
		right := p.parseNot()
		left = &ast.LogicalExpr{Kind: "LogicalExpr", Op: "AND", Operands: []ast.Expr{left, right}}
	}
	return left
}

func (p *parser) parseNot() ast.Expr {
	if p.atKeyword("NOT") {
		p.next()
		operand := p.parseNot()
		return &ast.LogicalExpr{Kind: "LogicalExpr", Op: "NOT", Operands: []ast.Expr{operand}}
	}
	return p.parseComparison()
}

var compareOps = map[TokenKind]string{Eq: "=", Ne: "<>", Lt: "<", Gt: ">", Le: "<=", Ge: ">="}

func (p *parser) parseComparison() ast.Expr {
	left := p.parseValueExpr()
	if op, ok := compareOps[p.cur().Kind]; ok {
		p.next()
		right := p.parseValueExpr()
		return &ast.ComparisonExpr{Kind: "ComparisonExpr", Op: op, Left: left, Right: right}
	}
	if p.atKeyword("IS") {
		p.next()
		check := "NULL"
		if p.at(Keyword) || p.at(Ident) {
			check = p.next().Upper
		}
		return &ast.IsExpr{Kind: "IsExpr", Operand: left, Check: check}
	}
	if p.atKeyword("BETWEEN") {
		p.next()
		low := p.parseValueExpr()
		p.expectKeyword("AND")
		high := p.parseValueExpr()
		return &ast.BetweenExpr{Kind: "BetweenExpr", Operand: left, Low: low, High: high}
	}
	if p.atKeyword("IN") {
		p.next()
		set := p.parseSetExpr()
		return &ast.InExpr{Kind: "InExpr", Operand: left, Set: set}
	}
	return left
}

func (p *parser) parseValueExpr() ast.Expr { return p.parseConcat() }

func (p *parser) parseConcat() ast.Expr {
	left := p.parseAdditive()
	for p.at(Amp) {
		p.next()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Kind: "BinaryExpr", Op: "&", Left: left, Right: right}
	}
	return left
}

func (p *parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(Plus) || p.at(Minus) {
		op := "+"
		if p.at(Minus) {
			op = "-"
		}
		p.next()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Kind: "BinaryExpr", Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for p.at(Star) || p.at(Slash) {
		op := "*"
		if p.at(Slash) {
			op = "/"
		}
		p.next()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Kind: "BinaryExpr", Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseUnary() ast.Expr {
	if p.at(Minus) {
		start := p.cur().Start
		p.next()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Kind: "UnaryExpr", Op: "-", Operand: operand, NodeSpan: ast.NewSpan(start, p.toks[p.i].Start)}
	}
	return p.parsePrimaryValue()
}

var navSuffixes = map[string]string{
	"MEMBERS": "Members", "CHILDREN": "Children", "PARENT": "Parent",
	"FIRSTCHILD": "FirstChild", "LASTCHILD": "LastChild",
}

func (p *parser) parsePrimaryValue() ast.Expr {
	t := p.cur()
	switch {
	case t.Kind == Number:
		p.next()
		v, _ := ParseNumber(t.Text)
		return &ast.NumberLit{Kind: "NumberLit", Value: v, NodeSpan: ast.NewSpan(t.Start, t.End)}
	case t.Kind == String:
		p.next()
		return &ast.StringLit{Kind: "StringLit", Value: t.Text, NodeSpan: ast.NewSpan(t.Start, t.End)}
	case t.Kind == LParen:
		p.next()
		inner := p.parseExpr()
		p.expect(RParen)
		return &ast.ParenExpr{Kind: "ParenExpr", Inner: inner, NodeSpan: ast.NewSpan(t.Start, p.toks[p.i].Start)}
	case t.Kind == Keyword && t.Upper == "CASE":
		return p.parseCase()
	case t.Kind == Keyword && t.Upper == "IIF":
		return p.parseIIF()
	case t.Kind == BracketedIdent || t.Kind == Ident:
		if t.Kind == Ident && p.peekKind(1) == LParen {
			return p.parseFunctionCallExpr()
		}
		return p.parseMemberExpr()
	default:
		p.bag.Add(diag.Diagnostic{Severity: diag.Error, Kind: diag.ParseError,
			Message: "unexpected token " + tokenDesc(t), Span: diag.Span{Start: t.Start, End: t.End},
			Suggestion: diag.Suggest("parse_error:unexpected_token")})
		p.next()
		return &ast.NumberLit{Kind: "NumberLit", NodeSpan: ast.NewSpan(t.Start, t.End)}
	}
}

func (p *parser) parseFunctionCallExpr() *ast.FunctionCallExpr {
	start := p.cur().Start
	name := p.next().Text
	p.expect(LParen)
	var args []ast.Expr
	if !p.at(RParen) {
		args = append(args, p.parseValueExpr())
		for p.at(Comma) {
			p.next()
			args = append(args, p.parseValueExpr())
		}
	}
	p.expect(RParen)
	end := p.toks[p.i].Start
	return &ast.FunctionCallExpr{Kind: "FunctionCallExpr", Name: name, Args: args, NodeSpan: ast.NewSpan(start, end)}
}

func (p *parser) parseCase() *ast.CaseExpr {
	start := p.cur().Start
	p.expectKeyword("CASE")
	var operand ast.Expr
	if !p.atKeyword("WHEN") {
		operand = p.parseValueExpr()
	}
	var whens []*ast.WhenClause
	for p.atKeyword("WHEN") {
		wstart := p.cur().Start
		p.next()
		var cond ast.Expr
		if operand != nil {
			cond = p.parseValueExpr()
		} else {
			cond = p.parseExpr()
		}
		p.expectKeyword("THEN")
		result := p.parseValueExpr()
		whens = append(whens, &ast.WhenClause{Kind: "WhenClause", Cond: cond, Result: result, NodeSpan: ast.NewSpan(wstart, p.toks[p.i].Start)})
	}
	var elseExpr ast.Expr
	if p.atKeyword("ELSE") {
		p.next()
		elseExpr = p.parseValueExpr()
	}
	p.expectKeyword("END")
	end := p.toks[p.i].Start
	return &ast.CaseExpr{Kind: "CaseExpr", Operand: operand, Whens: whens, Else: elseExpr, NodeSpan: ast.NewSpan(start, end)}
}

func (p *parser) parseIIF() *ast.IIFExpr {
	start := p.cur().Start
	p.expectKeyword("IIF")
	p.expect(LParen)
	cond := p.parseExpr()
	p.expect(Comma)
	then := p.parseValueExpr()
	p.expect(Comma)
	els := p.parseValueExpr()
	p.expect(RParen)
	end := p.toks[p.i].Start
	return &ast.IIFExpr{Kind: "IIFExpr", Cond: cond, Then: then, Else: els, NodeSpan: ast.NewSpan(start, end)}
}

// parseMemberExpr parses a dotted member path with an optional trailing
// navigation suffix or .&[key] reference.
func (p *parser) parseMemberExpr() *ast.MemberExpr {
	start := p.cur().Start
	parts := []string{p.parseSegmentText()}
	suffix := ""
	var suffixArg *int
	key := ""
loop:
	for p.at(Dot) {
		save := p.i
		p.next()
		if p.at(Amp) {
			p.next()
			key = p.parseSegmentText()
			break loop
		}
		if p.cur().Kind == Ident {
			up := p.cur().Upper
			if s, ok := navSuffixes[up]; ok {
				p.next()
				suffix = s
				break loop
			}
			if up == "LEAD" || up == "LAG" {
				p.next()
				suffix = strings.Title(strings.ToLower(up))
				if p.at(LParen) {
					p.next()
					n := p.parseIntLiteral()
					suffixArg = &n
					p.expect(RParen)
				}
				break loop
			}
		}
		if !p.at(BracketedIdent) && !p.at(Ident) {
			p.i = save
			break loop
		}
		parts = append(parts, p.parseSegmentText())
	}
	end := p.toks[p.i].Start
	return &ast.MemberExpr{Kind: "MemberExpr", Parts: parts, Suffix: suffix, SuffixArg: suffixArg, Key: key, NodeSpan: ast.NewSpan(start, end)}
}

// ---- set expression grammar ----

func (p *parser) parseSetExpr() ast.SetExpr {
	left := p.parseSetCross()
	for p.at(Plus) || p.at(Minus) {
		op := "+"
		if p.at(Minus) {
			op = "-"
		}
		p.next()
		right := p.parseSetCross()
		left = &ast.SetOpExpr{Kind: "SetOpExpr", Op: op, Left: left, Right: right}
	}
	return left
}

func (p *parser) parseSetCross() ast.SetExpr {
	left := p.parsePrimarySet()
	for p.at(Star) {
		p.next()
		right := p.parsePrimarySet()
		left = &ast.SetOpExpr{Kind: "SetOpExpr", Op: "*", Left: left, Right: right}
	}
	return left
}

func (p *parser) parsePrimarySet() ast.SetExpr {
	t := p.cur()
	switch {
	case t.Kind == LBrace:
		return p.parseSetLiteral()
	case t.Kind == LParen:
		p.next()
		inner := p.parseSetExpr()
		p.expect(RParen)
		return &ast.ParenSet{Kind: "ParenSet", Inner: inner, NodeSpan: ast.NewSpan(t.Start, p.toks[p.i].Start)}
	case t.Kind == Ident && p.peekKind(1) == LParen:
		return p.parseSetFunction()
	default:
		return p.parseMemberExpr()
	}
}

func (p *parser) parseSetLiteral() *ast.SetLiteral {
	start := p.cur().Start
	p.expect(LBrace)
	var items []ast.SetItem
	if !p.at(RBrace) {
		items = append(items, p.parseSetItem())
		for p.at(Comma) {
			p.next()
			items = append(items, p.parseSetItem())
		}
	}
	p.expect(RBrace)
	end := p.toks[p.i].Start
	return &ast.SetLiteral{Kind: "SetLiteral", Items: items, NodeSpan: ast.NewSpan(start, end)}
}

func (p *parser) parseSetItem() ast.SetItem {
	if p.at(LBrace) {
		return p.parseSetLiteral()
	}
	if p.at(LParen) {
		start := p.cur().Start
		p.next()
		var members []*ast.MemberExpr
		if !p.at(RParen) {
			members = append(members, p.parseMemberExpr())
			for p.at(Comma) {
				p.next()
				members = append(members, p.parseMemberExpr())
			}
		}
		p.expect(RParen)
		end := p.toks[p.i].Start
		return &ast.Tuple{Kind: "Tuple", Members: members, NodeSpan: ast.NewSpan(start, end)}
	}
	m := p.parseMemberExpr()
	if p.at(Colon) {
		p.next()
		to := p.parseMemberExpr()
		return &ast.MemberRange{Kind: "MemberRange", From: m, To: to, NodeSpan: ast.NewSpan(m.Pos(), to.End())}
	}
	return m
}

func (p *parser) parseSetFunction() *ast.SetFunction {
	start := p.cur().Start
	name := p.next().Text
	p.expect(LParen)
	var args []ast.Node
	if !p.at(RParen) {
		args = append(args, p.parseFunctionArg())
		for p.at(Comma) {
			p.next()
			args = append(args, p.parseFunctionArg())
		}
	}
	p.expect(RParen)
	end := p.toks[p.i].Start
	return &ast.SetFunction{Kind: "SetFunction", Name: name, Args: args, NodeSpan: ast.NewSpan(start, end)}
}

// parseFunctionArg dispatches on lookahead: a brace starts a nested set
// argument (as in DESCENDANTS/CROSSJOIN taking a set), anything else is
// parsed as a value expression (which subsumes bare member expressions).
func (p *parser) parseFunctionArg() ast.Node {
	if p.at(LBrace) {
		return p.parseSetLiteral()
	}
	return p.parseValueExpr()
}
