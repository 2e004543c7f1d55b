// Package selectdriver implements the table facade's select operation
// (SPEC_FULL.md §4.8): compile a query once against a table's schema,
// prune the per-row binding to referenced columns, scan every row
// projecting only those columns, and collect matching indices in
// ascending order.
//
// Grounded on the teacher's functions/functions.go Registry +
// vdbe/functions.go FunctionContext.ExecuteFunction pairing (one
// compiled artifact reused across many invocations). The blake3-keyed
// compilation cache is this engine's one optimization layered beyond
// the spec's mandated unreferenced-column pruning; see DESIGN.md.
package selectdriver

import (
	"context"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/zeebo/blake3"

	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/bytecode"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
	"github.com/FocuswithJustin/tabkit/core/tabql/querylang"
	"github.com/FocuswithJustin/tabkit/core/tabql/schema"
	"github.com/FocuswithJustin/tabkit/core/tabql/table"
	"github.com/FocuswithJustin/tabkit/core/tabql/vm"
	"github.com/FocuswithJustin/tabkit/internal/logging"
)

type cacheEntry struct {
	prog *bytecode.Program
	used map[string]bool
}

// Driver compiles and executes select queries against one table,
// caching compiled programs keyed by a blake3 hash of the query text.
// The cache is dropped whenever the table's schema shape changes.
type Driver struct {
	mu        sync.Mutex
	cache     map[[32]byte]cacheEntry
	schemaSig string
	vm        *vm.VM
}

// NewDriver returns a driver with an empty cache.
func NewDriver() *Driver {
	return &Driver{
		cache: make(map[[32]byte]cacheEntry),
		vm:    vm.New(),
	}
}

func schemaSignature(s *schema.Schema) string {
	var b strings.Builder
	for _, c := range s.Columns() {
		b.WriteString(c.Name)
		b.WriteByte(0)
		b.WriteByte(byte(c.Kind))
		b.WriteByte(0)
	}
	return b.String()
}

func variableSet(s *schema.Schema) map[string]struct{} {
	out := make(map[string]struct{})
	for _, c := range s.Columns() {
		if c.Kind == kind.Subtable {
			continue
		}
		out[c.Name] = struct{}{}
	}
	return out
}

func queryKey(query string) [32]byte {
	return blake3.Sum256([]byte(query))
}

// compile returns the cached program for query against t's current
// schema, compiling and caching it on a miss. A schema shape change
// since the last call drops the entire cache first.
func (d *Driver) compile(t *table.Table, query string) (*bytecode.Program, map[string]bool, error) {
	sig := schemaSignature(t.Schema())

	d.mu.Lock()
	if sig != d.schemaSig {
		d.cache = make(map[[32]byte]cacheEntry)
		d.schemaSig = sig
	}
	key := queryKey(query)
	if e, ok := d.cache[key]; ok {
		d.mu.Unlock()
		return e.prog, e.used, nil
	}
	d.mu.Unlock()

	prog, used, err := querylang.Compile(query, variableSet(t.Schema()))
	if err != nil {
		logging.QueryParseError(context.Background(), query, parseOffset(err), err.Error())
		return nil, nil, err
	}

	logging.QueryCompiled(context.Background(), query, prog.NumOps(), "hash", hex.EncodeToString(hashSlice(prog)))

	d.mu.Lock()
	d.cache[key] = cacheEntry{prog: prog, used: used}
	d.mu.Unlock()

	return prog, used, nil
}

func hashSlice(prog *bytecode.Program) []byte {
	h := prog.Hash()
	return h[:]
}

func parseOffset(err error) int {
	var perr *tabqlerrors.QueryParseError
	if tabqlerrors.As(err, &perr) {
		return perr.Offset
	}
	return -1
}
