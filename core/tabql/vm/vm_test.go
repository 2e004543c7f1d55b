package vm

import (
	"testing"

	"github.com/FocuswithJustin/tabkit/core/tabql/bytecode"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
)

func intVal(n int32) kind.Value { return kind.Value{Kind: kind.Int32, I32: n} }
func strVal(s string) kind.Value {
	return kind.Value{Kind: kind.NarrowString, Str: s}
}

func TestExecuteComparison(t *testing.T) {
	prog := &bytecode.Program{Instrs: []bytecode.Instr{
		{Op: bytecode.OpVar, Arg: strVal("age")},
		{Op: bytecode.OpVal, Arg: intVal(21)},
		{Op: bytecode.OpGe},
		{Op: bytecode.OpRet},
	}}
	v := New()
	result, err := v.Execute(prog, map[string]kind.Value{"age": intVal(30)})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Bool {
		t.Fatalf("expected true, got %v", result)
	}
}

func TestExecuteLogical(t *testing.T) {
	prog := &bytecode.Program{Instrs: []bytecode.Instr{
		{Op: bytecode.OpVal, Arg: kind.Value{Kind: kind.Bool, Bool: true}},
		{Op: bytecode.OpVal, Arg: kind.Value{Kind: kind.Bool, Bool: false}},
		{Op: bytecode.OpOr},
		{Op: bytecode.OpNot},
		{Op: bytecode.OpRet},
	}}
	v := New()
	result, err := v.Execute(prog, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Bool {
		t.Fatalf("expected false, got %v", result)
	}
}

func TestExecuteMembership(t *testing.T) {
	prog := &bytecode.Program{Instrs: []bytecode.Instr{
		{Op: bytecode.OpVar, Arg: strVal("status")},
		{Op: bytecode.OpLis},
		{Op: bytecode.OpVal, Arg: strVal("open")},
		{Op: bytecode.OpVal, Arg: strVal("pending")},
		{Op: bytecode.OpLie},
		{Op: bytecode.OpNin},
		{Op: bytecode.OpRet},
	}}
	v := New()
	result, err := v.Execute(prog, map[string]kind.Value{"status": strVal("closed")})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !result.Bool {
		t.Fatalf("expected true (closed not in [open,pending]), got %v", result)
	}
}

func TestExecuteFunctionCall(t *testing.T) {
	prog := &bytecode.Program{Instrs: []bytecode.Instr{
		{Op: bytecode.OpVal, Arg: strVal("DATE")},
		{Op: bytecode.OpLis},
		{Op: bytecode.OpVal, Arg: strVal("20260101")},
		{Op: bytecode.OpLie},
		{Op: bytecode.OpFun},
		{Op: bytecode.OpRet},
	}}
	v := New()
	result, err := v.Execute(prog, nil)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Kind != kind.Date || result.Date.Year != 2026 {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestExecuteUnknownFunction(t *testing.T) {
	prog := &bytecode.Program{Instrs: []bytecode.Instr{
		{Op: bytecode.OpVal, Arg: strVal("NOPE")},
		{Op: bytecode.OpLis},
		{Op: bytecode.OpLie},
		{Op: bytecode.OpFun},
		{Op: bytecode.OpRet},
	}}
	v := New()
	if _, err := v.Execute(prog, nil); err == nil {
		t.Fatal("expected an error for an unregistered function")
	}
}

func TestExecuteTodayRejectsArguments(t *testing.T) {
	prog := &bytecode.Program{Instrs: []bytecode.Instr{
		{Op: bytecode.OpVal, Arg: strVal("TODAY")},
		{Op: bytecode.OpLis},
		{Op: bytecode.OpVal, Arg: strVal("20260101")},
		{Op: bytecode.OpLie},
		{Op: bytecode.OpFun},
		{Op: bytecode.OpRet},
	}}
	v := New()
	if _, err := v.Execute(prog, nil); err == nil {
		t.Fatal("expected ArgCountError for TODAY(arg)")
	}
}

func TestExecuteDateEmptyArgumentIsArgCountError(t *testing.T) {
	prog := &bytecode.Program{Instrs: []bytecode.Instr{
		{Op: bytecode.OpVal, Arg: strVal("DATE")},
		{Op: bytecode.OpLis},
		{Op: bytecode.OpVal, Arg: strVal("")},
		{Op: bytecode.OpLie},
		{Op: bytecode.OpFun},
		{Op: bytecode.OpRet},
	}}
	v := New()
	if _, err := v.Execute(prog, nil); err == nil {
		t.Fatal("expected ArgCountError for DATE(\"\")")
	}
}

func TestExecuteUnboundVariable(t *testing.T) {
	prog := &bytecode.Program{Instrs: []bytecode.Instr{
		{Op: bytecode.OpVar, Arg: strVal("missing")},
		{Op: bytecode.OpRet},
	}}
	v := New()
	if _, err := v.Execute(prog, map[string]kind.Value{}); err == nil {
		t.Fatal("expected an error for an unbound variable")
	}
}

func TestExecuteResetsStackBetweenCalls(t *testing.T) {
	prog := &bytecode.Program{Instrs: []bytecode.Instr{
		{Op: bytecode.OpVal, Arg: kind.Value{Kind: kind.Bool, Bool: true}},
		{Op: bytecode.OpRet},
	}}
	v := New()
	for i := 0; i < 3; i++ {
		result, err := v.Execute(prog, nil)
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		if !result.Bool {
			t.Fatalf("run %d: expected true", i)
		}
	}
}
