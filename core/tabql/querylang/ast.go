package querylang

import "github.com/FocuswithJustin/tabkit/core/tabql/kind"

// expr is the AST node interface. The parser produces a tree of these
// before codegen walks it to emit bytecode.
type expr interface {
	isExpr()
}

type literalExpr struct {
	value kind.Value
}

type variableExpr struct {
	name   string
	offset int
}

type callExpr struct {
	name   string
	args   []literalExpr
	offset int
}

type notExpr struct {
	x expr
}

// binaryExpr is a comparison: =, !=, <, <=, >, >=.
type binaryExpr struct {
	op   tokenKind
	l, r expr
}

type membershipExpr struct {
	negate bool
	x      expr
	list   []literalExpr
}

// logicalExpr is "and"/"or".
type logicalExpr struct {
	op   tokenKind
	l, r expr
}

func (literalExpr) isExpr()    {}
func (variableExpr) isExpr()   {}
func (callExpr) isExpr()       {}
func (notExpr) isExpr()        {}
func (binaryExpr) isExpr()     {}
func (membershipExpr) isExpr() {}
func (logicalExpr) isExpr()    {}
