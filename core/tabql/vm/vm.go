// Package vm implements the stack machine that executes compiled
// bytecode.Program values against a per-row variable binding.
//
// Grounded on the teacher's core/sqlite/internal/vdbe/vdbe.go struct
// shape (value stack + program counter + execution loop), trimmed to
// remove cursors, registers, and transaction state (Non-goals), and on
// functions/functions.go's map-based Registry, adapted to
// case-insensitive (ASCII upper-case) lookup per
// original_source/stlib/sqlvm.h's invoke_.
package vm

import (
	"strings"

	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/bytecode"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
)

// DefaultStackSize is the value stack's default capacity.
const DefaultStackSize = 1024

// slot is a stack entry: either an ordinary value, or a marker for an
// in-progress or completed value list. Lists never nest in this
// grammar (value lists and call argument lists hold only literals), so
// a single "current list" buffer suffices.
type slot struct {
	isList bool
	list   []kind.Value
	val    kind.Value
}

// VM executes one compiled program at a time. It is not safe for
// concurrent use; callers needing concurrency run one VM per goroutine
// (spec's single-threaded, non-suspending execution model).
type VM struct {
	stack    []slot
	funcs    map[string]Func
	curList  []kind.Value
	inList   bool
}

// Func is a registered VM function implementation.
type Func struct {
	// MinArgs and MaxArgs bound the accepted argument count.
	MinArgs, MaxArgs int
	Call             func(args []kind.Value) (kind.Value, error)
}

// New builds a VM with the default stack size and the standard
// DATE/TODAY/DATETIME/NOW function registry.
func New() *VM {
	return NewSize(DefaultStackSize)
}

// NewSize builds a VM whose value stack is pre-allocated to size.
func NewSize(size int) *VM {
	v := &VM{
		stack: make([]slot, 0, size),
		funcs: make(map[string]Func),
	}
	registerBuiltins(v)
	return v
}

// Register adds or replaces a function under name, canonicalized to
// ASCII upper case (spec's resolved Open Question: canonicalization is
// ASCII-only, not full Unicode case folding).
func (v *VM) Register(name string, fn Func) {
	v.funcs[canonicalName(name)] = fn
}

func canonicalName(name string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - ('a' - 'A')
		}
		return r
	}, name)
}

func registerBuiltins(v *VM) {
	v.Register("DATE", Func{MinArgs: 0, MaxArgs: 1, Call: dateFunc})
	v.Register("TODAY", Func{MinArgs: 0, MaxArgs: 0, Call: todayFunc})
	v.Register("DATETIME", Func{MinArgs: 0, MaxArgs: 1, Call: datetimeFunc})
	v.Register("NOW", Func{MinArgs: 0, MaxArgs: 0, Call: nowFunc})
}

func dateFunc(args []kind.Value) (kind.Value, error) {
	if len(args) == 0 {
		return kind.Value{Kind: kind.Date, Date: kind.TodayDate()}, nil
	}
	s := args[0].Str
	if s == "" {
		return kind.Value{}, tabqlerrors.NewArgCount("DATE", len(args))
	}
	d, err := kind.ParseDate(s)
	if err != nil {
		return kind.Value{}, err
	}
	return kind.Value{Kind: kind.Date, Date: d}, nil
}

func todayFunc(args []kind.Value) (kind.Value, error) {
	return kind.Value{Kind: kind.Date, Date: kind.TodayDate()}, nil
}

func datetimeFunc(args []kind.Value) (kind.Value, error) {
	if len(args) == 0 {
		return kind.Value{Kind: kind.DateTime, DateTime: kind.NowDateTime()}, nil
	}
	s := args[0].Str
	if s == "" {
		return kind.Value{}, tabqlerrors.NewArgCount("DATETIME", len(args))
	}
	dt, err := kind.ParseDateTime(s)
	if err != nil {
		return kind.Value{}, err
	}
	return kind.Value{Kind: kind.DateTime, DateTime: dt}, nil
}

func nowFunc(args []kind.Value) (kind.Value, error) {
	return kind.Value{Kind: kind.DateTime, DateTime: kind.NowDateTime()}, nil
}

// Execute runs prog against binding (the per-row variable values) and
// returns the top-of-stack result at RET. The stack is reset at the
// start of every call.
func (v *VM) Execute(prog *bytecode.Program, binding map[string]kind.Value) (kind.Value, error) {
	v.stack = v.stack[:0]
	v.inList = false
	v.curList = nil

	for _, instr := range prog.Instrs {
		switch instr.Op {
		case bytecode.OpNot:
			x, err := v.popVal()
			if err != nil {
				return kind.Value{}, err
			}
			v.pushVal(kind.Value{Kind: kind.Bool, Bool: !x.Bool})

		case bytecode.OpAnd, bytecode.OpOr:
			r, err := v.popVal()
			if err != nil {
				return kind.Value{}, err
			}
			l, err := v.popVal()
			if err != nil {
				return kind.Value{}, err
			}
			var result bool
			if instr.Op == bytecode.OpAnd {
				result = l.Bool && r.Bool
			} else {
				result = l.Bool || r.Bool
			}
			v.pushVal(kind.Value{Kind: kind.Bool, Bool: result})

		case bytecode.OpEq, bytecode.OpNe, bytecode.OpLt, bytecode.OpLe, bytecode.OpGt, bytecode.OpGe:
			r, err := v.popVal()
			if err != nil {
				return kind.Value{}, err
			}
			l, err := v.popVal()
			if err != nil {
				return kind.Value{}, err
			}
			cmp, err := compareCoerced(l, r)
			if err != nil {
				return kind.Value{}, err
			}
			v.pushVal(kind.Value{Kind: kind.Bool, Bool: evalComparator(instr.Op, cmp)})

		case bytecode.OpLis:
			if v.inList {
				return kind.Value{}, tabqlerrors.NewUnsupportedOp("LIS", "nested value lists are not supported")
			}
			v.inList = true
			v.curList = nil

		case bytecode.OpLie:
			if !v.inList {
				return kind.Value{}, tabqlerrors.NewUnsupportedOp("LIE", "no open value list")
			}
			list := v.curList
			v.inList = false
			v.curList = nil
			v.stack = append(v.stack, slot{isList: true, list: list})

		case bytecode.OpIn, bytecode.OpNin:
			listSlot, err := v.popSlot()
			if err != nil {
				return kind.Value{}, err
			}
			if !listSlot.isList {
				return kind.Value{}, tabqlerrors.NewUnsupportedOp(instr.Op.String(), "expected a value list")
			}
			item, err := v.popVal()
			if err != nil {
				return kind.Value{}, err
			}
			member, err := membership(item, listSlot.list)
			if err != nil {
				return kind.Value{}, err
			}
			if instr.Op == bytecode.OpNin {
				member = !member
			}
			v.pushVal(kind.Value{Kind: kind.Bool, Bool: member})

		case bytecode.OpVal:
			if v.inList {
				v.curList = append(v.curList, instr.Arg)
			} else {
				v.pushVal(instr.Arg)
			}

		case bytecode.OpVar:
			val, ok := binding[instr.Arg.Str]
			if !ok {
				return kind.Value{}, tabqlerrors.NewSchema("lookup", instr.Arg.Str, "variable not bound")
			}
			v.pushVal(val)

		case bytecode.OpFun:
			listSlot, err := v.popSlot()
			if err != nil {
				return kind.Value{}, err
			}
			if !listSlot.isList {
				return kind.Value{}, tabqlerrors.NewUnsupportedOp("FUN", "expected a value list")
			}
			nameVal, err := v.popVal()
			if err != nil {
				return kind.Value{}, err
			}
			result, err := v.call(nameVal.Str, listSlot.list)
			if err != nil {
				return kind.Value{}, err
			}
			v.pushVal(result)

		case bytecode.OpRet:
			if v.inList {
				return kind.Value{}, tabqlerrors.NewUnsupportedOp("RET", "value list left open")
			}
			return v.popVal()

		default:
			return kind.Value{}, tabqlerrors.NewType("execute", "unknown opcode")
		}
	}

	return kind.Value{}, tabqlerrors.NewUnsupportedOp("execute", "program did not end in RET")
}

func (v *VM) call(name string, args []kind.Value) (kind.Value, error) {
	fn, ok := v.funcs[canonicalName(name)]
	if !ok {
		return kind.Value{}, tabqlerrors.NewUnknownFunction(name)
	}
	if len(args) < fn.MinArgs || len(args) > fn.MaxArgs {
		return kind.Value{}, tabqlerrors.NewArgCount(name, len(args))
	}
	return fn.Call(args)
}

func (v *VM) pushVal(val kind.Value) {
	v.stack = append(v.stack, slot{val: val})
}

func (v *VM) popSlot() (slot, error) {
	if len(v.stack) == 0 {
		return slot{}, tabqlerrors.NewOutOfRange("pop", 0, 0)
	}
	s := v.stack[len(v.stack)-1]
	v.stack = v.stack[:len(v.stack)-1]
	return s, nil
}

func (v *VM) popVal() (kind.Value, error) {
	s, err := v.popSlot()
	if err != nil {
		return kind.Value{}, err
	}
	if s.isList {
		return kind.Value{}, tabqlerrors.NewUnsupportedOp("pop", "expected a value, found a value list")
	}
	return s.val, nil
}

func evalComparator(op bytecode.Op, cmp int) bool {
	switch op {
	case bytecode.OpEq:
		return cmp == 0
	case bytecode.OpNe:
		return cmp != 0
	case bytecode.OpLt:
		return cmp < 0
	case bytecode.OpLe:
		return cmp <= 0
	case bytecode.OpGt:
		return cmp > 0
	case bytecode.OpGe:
		return cmp >= 0
	default:
		return false
	}
}

func membership(item kind.Value, list []kind.Value) (bool, error) {
	for _, elem := range list {
		cmp, err := compareCoerced(item, elem)
		if err != nil {
			return false, err
		}
		if cmp == 0 {
			return true, nil
		}
	}
	return false, nil
}
