package selectdriver

import (
	"context"
	"sync"

	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
	"github.com/FocuswithJustin/tabkit/core/tabql/table"
	"github.com/FocuswithJustin/tabkit/internal/logging"
)

// drivers holds one cache per table seen through the package-level
// Select. Entries are never evicted; callers that create and discard
// many short-lived tables should hold their own *Driver instead (see
// NewDriver) rather than go through this convenience registry.
var (
	driversMu sync.Mutex
	drivers   = map[*table.Table]*Driver{}
)

func driverFor(t *table.Table) *Driver {
	driversMu.Lock()
	defer driversMu.Unlock()
	d, ok := drivers[t]
	if !ok {
		d = NewDriver()
		drivers[t] = d
	}
	return d
}

// Select compiles query against t's schema (reusing a cached program
// when available), then scans every row, invoking sink with the index
// of each row where the query evaluates true. It returns the total
// match count. A compile error aborts before any row is scanned; a VM
// error during the scan aborts immediately without reporting partial
// matches.
func Select(t *table.Table, query string, sink func(row int)) (int, error) {
	return driverFor(t).Select(t, query, sink)
}

// Select is the Driver method form of the package-level Select,
// letting a caller hold onto one driver (and its cache) across many
// calls explicitly instead of relying on the package's implicit
// per-table registry.
func (d *Driver) Select(t *table.Table, query string, sink func(row int)) (int, error) {
	prog, used, err := d.compile(t, query)
	if err != nil {
		return 0, err
	}

	rows := t.NumRows()
	var matched []int
	binding := make(map[string]kind.Value, len(used))
	for r := 0; r < rows; r++ {
		for name := range used {
			v, err := t.Value(r, name)
			if err != nil {
				return 0, err
			}
			binding[name] = v
		}

		result, err := d.vm.Execute(prog, binding)
		if err != nil {
			return 0, err
		}
		if result.Kind == kind.Bool && result.Bool {
			matched = append(matched, r)
		}
	}

	if sink != nil {
		for _, r := range matched {
			sink(r)
		}
	}
	count := len(matched)
	logging.SelectScanned(context.Background(), query, rows, count)
	return count, nil
}
