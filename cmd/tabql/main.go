// Command tabql is an interactive driver for the tabql engine: it
// builds a small demonstration table and reads query expressions from
// stdin, printing the boolean result of each one evaluated against the
// table's first row.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
	"github.com/FocuswithJustin/tabkit/core/tabql/querylang"
	"github.com/FocuswithJustin/tabkit/core/tabql/table"
	"github.com/FocuswithJustin/tabkit/core/tabql/vm"
	"github.com/FocuswithJustin/tabkit/internal/logging"
)

// CLI defines the command-line interface for tabql.
var CLI struct {
	Layout    string `enum:"row,column" default:"row" help:"Physical cell store layout"`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" help:"Log output format"`
}

func main() {
	kong.Parse(&CLI,
		kong.Name("tabql"),
		kong.Description("Interactive driver for the tabql in-process table engine"),
		kong.UsageOnError(),
	)

	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(logging.LevelInfo, format)

	layout := table.RowLayout
	if CLI.Layout == "column" {
		layout = table.ColumnLayout
	}

	t := demoTable(layout)
	if err := repl(os.Stdin, os.Stdout, t); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// demoTable builds the small built-in table the REPL evaluates queries
// against: name (narrow string), age (int32), active (bool).
func demoTable(layout table.Layout) *table.Table {
	t := table.New("demo", layout)
	t.AddColumn("name", kind.NarrowString, 0)
	t.AddColumn("age", kind.Int32, 0)
	t.AddColumn("active", kind.Bool, 0)

	rows := []struct {
		name   string
		age    int32
		active bool
	}{
		{"ada", 36, true},
		{"alan", 41, false},
		{"grace", 85, true},
	}
	for _, row := range rows {
		r, _ := t.AddRow()
		t.SetNarrowString(r, "name", row.name)
		t.SetInt32(r, "age", row.age)
		t.SetBool(r, "active", row.active)
	}
	return t
}

func variableSet(t *table.Table) map[string]struct{} {
	out := make(map[string]struct{})
	for _, c := range t.Schema().Columns() {
		if c.Kind == kind.Subtable {
			continue
		}
		out[c.Name] = struct{}{}
	}
	return out
}

// repl reads one line at a time from r, compiles and evaluates it
// against t's first row, and prints the boolean result to w. An empty
// line, or a line starting with 'q' or 'Q', terminates the loop.
func repl(r *os.File, w *os.File, t *table.Table) error {
	scanner := bufio.NewScanner(r)
	machine := vm.New()
	vars := variableSet(t)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || line[0] == 'q' || line[0] == 'Q' {
			return nil
		}

		prog, used, err := querylang.Compile(line, vars)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}

		binding := make(map[string]kind.Value, len(used))
		for name := range used {
			v, err := t.Value(0, name)
			if err != nil {
				fmt.Fprintln(w, err)
				continue
			}
			binding[name] = v
		}

		result, err := machine.Execute(prog, binding)
		if err != nil {
			fmt.Fprintln(w, err)
			continue
		}
		fmt.Fprintln(w, result.Bool)
	}
	return scanner.Err()
}
