package querylang

import (
	"github.com/FocuswithJustin/tabkit/core/tabql/bytecode"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
)

// codegen walks an AST and emits bytecode, kept as a pass separate
// from parsing per Design Notes §9 (mirrors
// core/sqlite/internal/expr/codegen.go's CodeGenerator, a type switch
// over AST node kinds emitting into a VDBE program, generalized to
// this grammar's 17 opcodes).
type codegen struct {
	instrs []bytecode.Instr
}

func (g *codegen) emit(op bytecode.Op) {
	g.instrs = append(g.instrs, bytecode.Instr{Op: op})
}

func (g *codegen) emitVal(v bytecode.Value) {
	g.instrs = append(g.instrs, bytecode.Instr{Op: bytecode.OpVal, Arg: v})
}

func (g *codegen) emitVar(name string) {
	g.instrs = append(g.instrs, bytecode.Instr{
		Op:  bytecode.OpVar,
		Arg: bytecode.Value{Kind: kind.NarrowString, Str: name},
	})
}

func (g *codegen) genLiteral(e literalExpr) {
	g.emitVal(e.value)
}

func (g *codegen) genList(list []literalExpr) {
	g.emit(bytecode.OpLis)
	for _, lit := range list {
		g.emitVal(lit.value)
	}
	g.emit(bytecode.OpLie)
}

func (g *codegen) gen(e expr) {
	switch n := e.(type) {
	case literalExpr:
		g.genLiteral(n)
	case variableExpr:
		g.emitVar(n.name)
	case callExpr:
		g.emitVal(bytecode.Value{Kind: kind.NarrowString, Str: n.name})
		g.emit(bytecode.OpLis)
		for _, a := range n.args {
			g.emitVal(a.value)
		}
		g.emit(bytecode.OpLie)
		g.emit(bytecode.OpFun)
	case notExpr:
		g.gen(n.x)
		g.emit(bytecode.OpNot)
	case binaryExpr:
		g.gen(n.l)
		g.gen(n.r)
		g.emit(binaryOp(n.op))
	case logicalExpr:
		g.gen(n.l)
		g.gen(n.r)
		if n.op == tokAnd {
			g.emit(bytecode.OpAnd)
		} else {
			g.emit(bytecode.OpOr)
		}
	case membershipExpr:
		g.gen(n.x)
		g.genList(n.list)
		if n.negate {
			g.emit(bytecode.OpNin)
		} else {
			g.emit(bytecode.OpIn)
		}
	}
}

func binaryOp(t tokenKind) bytecode.Op {
	switch t {
	case tokEq:
		return bytecode.OpEq
	case tokNe:
		return bytecode.OpNe
	case tokLt:
		return bytecode.OpLt
	case tokLe:
		return bytecode.OpLe
	case tokGt:
		return bytecode.OpGt
	case tokGe:
		return bytecode.OpGe
	default:
		panic("querylang: unreachable binary operator")
	}
}
