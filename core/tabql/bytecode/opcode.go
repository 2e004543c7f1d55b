// Package bytecode defines the 17-opcode instruction set the query
// compiler emits and the stack VM executes, plus the Program type
// they flow through.
//
// Grounded on core/sqlite/internal/vdbe/opcode.go's Opcode enum +
// OpcodeNames map + String() method pattern, trimmed from ~140
// SQLite opcodes to the 17 this engine's grammar needs, and confirmed
// against original_source/stlib/sqlvm.h's byte_code switch (OP_NOT
// through OP_RET) as the literal ground truth for semantics.
package bytecode

import "github.com/FocuswithJustin/tabkit/core/tabql/kind"

// Value is the VM's tagged-union operand type: Program literals, row
// bindings, and stack slots are all this one type. It is a type alias
// of kind.Value so the to-VM-value contract (spec §4.5) produces
// exactly what the VM consumes, with no conversion layer between them.
type Value = kind.Value

// Op is the closed enumeration of VM opcodes.
type Op uint8

const (
	OpNot Op = iota
	OpAnd
	OpOr
	OpEq
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
	OpLis
	OpLie
	OpIn
	OpNin
	OpVal
	OpVar
	OpFun
	OpRet
)

var opcodeNames = map[Op]string{
	OpNot: "NOT", OpAnd: "AND", OpOr: "OR",
	OpEq: "EQ", OpNe: "NE", OpLt: "LT", OpLe: "LE", OpGt: "GT", OpGe: "GE",
	OpLis: "LIS", OpLie: "LIE", OpIn: "IN", OpNin: "NIN",
	OpVal: "VAL", OpVar: "VAR", OpFun: "FUN", OpRet: "RET",
}

func (op Op) String() string {
	if s, ok := opcodeNames[op]; ok {
		return s
	}
	return "UNKNOWN"
}

// Instr is one bytecode instruction. Arg carries the operand for VAL
// (the literal value) and VAR (the variable name, itself packed as a
// NarrowString Value, mirroring how the original VM's OP_VAR reads its
// operand through the same sqlvar slot type as OP_VAL). All other
// opcodes ignore Arg.
type Instr struct {
	Op  Op
	Arg Value
}

// Program is a compiled, read-only, linear instruction sequence ending
// in OpRet.
type Program struct {
	Instrs []Instr
}

// NumOps reports the instruction count.
func (p *Program) NumOps() int { return len(p.Instrs) }
