package querylang

import "github.com/FocuswithJustin/tabkit/core/tabql/bytecode"

// Compile parses query against the given set of valid variable names
// and emits bytecode. On success it returns the compiled program and
// the subset of vars actually referenced, per spec §4.6's "on
// successful parse the compiler appends RET and returns (program,
// referenced-variable-set)". On failure the returned error is a
// *errors.QueryParseError carrying the byte offset at which parsing
// stopped.
func Compile(query string, vars map[string]struct{}) (*bytecode.Program, map[string]bool, error) {
	p := newParser(query, vars)
	tree, err := p.parse()
	if err != nil {
		return nil, nil, err
	}

	g := &codegen{}
	g.gen(tree)
	g.emit(bytecode.OpRet)

	return &bytecode.Program{Instrs: g.instrs}, p.used, nil
}
