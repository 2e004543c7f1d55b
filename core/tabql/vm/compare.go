package vm

import (
	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
)

// compareCoerced implements §4.7's comparison dispatch: the left
// operand's runtime kind chooses the comparator, and the right operand
// is coerced to that kind before comparing.
func compareCoerced(left, right kind.Value) (int, error) {
	if !left.Kind.Comparable() {
		return 0, tabqlerrors.NewType("compare", left.Kind.String())
	}
	r, err := coerceTo(left.Kind, right)
	if err != nil {
		return 0, err
	}
	switch left.Kind {
	case kind.Int32:
		return cmpInt(int64(left.I32), int64(r.I32)), nil
	case kind.Double:
		return cmpFloat(left.F64, r.F64), nil
	case kind.NarrowString, kind.WideString:
		return cmpString(left.Str, r.Str), nil
	case kind.Date:
		return left.Date.Compare(r.Date), nil
	case kind.DateTime:
		return left.DateTime.Compare(r.DateTime), nil
	default:
		return 0, tabqlerrors.NewType("compare", left.Kind.String())
	}
}

// coerceTo converts v to target's representation, following the kinds
// the grammar can actually produce on either side of an operator:
// numeric widening between int32/double, narrow/wide string
// reinterpretation, and string-to-date/datetime parsing (since the
// grammar has no date/datetime literal syntax, a date column compared
// against a quoted ISO-8601 string parses that string; a Date or
// DateTime from DATE()/TODAY()/DATETIME()/NOW() needs no coercion).
func coerceTo(target kind.Kind, v kind.Value) (kind.Value, error) {
	if v.Kind == target {
		return v, nil
	}
	switch target {
	case kind.Int32:
		if v.Kind == kind.Double {
			return kind.Value{Kind: kind.Int32, I32: int32(v.F64)}, nil
		}
	case kind.Double:
		if v.Kind == kind.Int32 {
			return kind.Value{Kind: kind.Double, F64: float64(v.I32)}, nil
		}
	case kind.NarrowString, kind.WideString:
		if v.Kind == kind.NarrowString || v.Kind == kind.WideString {
			return kind.Value{Kind: target, Str: v.Str}, nil
		}
	case kind.Date:
		if v.Kind == kind.NarrowString || v.Kind == kind.WideString {
			d, err := kind.ParseDate(v.Str)
			if err != nil {
				return kind.Value{}, err
			}
			return kind.Value{Kind: kind.Date, Date: d}, nil
		}
	case kind.DateTime:
		if v.Kind == kind.NarrowString || v.Kind == kind.WideString {
			dt, err := kind.ParseDateTime(v.Str)
			if err != nil {
				return kind.Value{}, err
			}
			return kind.Value{Kind: kind.DateTime, DateTime: dt}, nil
		}
	}
	return kind.Value{}, tabqlerrors.NewType("compare", v.Kind.String())
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
