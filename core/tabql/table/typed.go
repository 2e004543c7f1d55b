package table

import "github.com/FocuswithJustin/tabkit/core/tabql/kind"

// Typed convenience wrappers over SetValue/Value, one pair per
// non-subtable kind, matching §4.4's "set<K>/get<K>" contract as
// concrete named methods (Go has no ergonomic way to parameterize a
// method by a runtime kind tag the way the original's template
// parameter does).

func (t *Table) SetInt32(r int, ref any, v int32) error {
	return t.SetValue(r, ref, kind.Value{Kind: kind.Int32, I32: v})
}

func (t *Table) GetInt32(r int, ref any) (int32, error) {
	v, err := t.Value(r, ref)
	return v.I32, err
}

func (t *Table) SetDouble(r int, ref any, v float64) error {
	return t.SetValue(r, ref, kind.Value{Kind: kind.Double, F64: v})
}

func (t *Table) GetDouble(r int, ref any) (float64, error) {
	v, err := t.Value(r, ref)
	return v.F64, err
}

func (t *Table) SetBool(r int, ref any, v bool) error {
	return t.SetValue(r, ref, kind.Value{Kind: kind.Bool, Bool: v})
}

func (t *Table) GetBool(r int, ref any) (bool, error) {
	v, err := t.Value(r, ref)
	return v.Bool, err
}

func (t *Table) SetNarrowString(r int, ref any, v string) error {
	return t.SetValue(r, ref, kind.Value{Kind: kind.NarrowString, Str: v})
}

func (t *Table) GetNarrowString(r int, ref any) (string, error) {
	v, err := t.Value(r, ref)
	return v.Str, err
}

func (t *Table) SetWideString(r int, ref any, v string) error {
	return t.SetValue(r, ref, kind.Value{Kind: kind.WideString, Str: v})
}

func (t *Table) GetWideString(r int, ref any) (string, error) {
	v, err := t.Value(r, ref)
	return v.Str, err
}

func (t *Table) SetDate(r int, ref any, v kind.Date) error {
	return t.SetValue(r, ref, kind.Value{Kind: kind.Date, Date: v})
}

func (t *Table) GetDate(r int, ref any) (kind.Date, error) {
	v, err := t.Value(r, ref)
	return v.Date, err
}

func (t *Table) SetDateTime(r int, ref any, v kind.DateTime) error {
	return t.SetValue(r, ref, kind.Value{Kind: kind.DateTime, DateTime: v})
}

func (t *Table) GetDateTime(r int, ref any) (kind.DateTime, error) {
	v, err := t.Value(r, ref)
	return v.DateTime, err
}

func (t *Table) SetPOD(r int, ref any, data []byte) error {
	c, _, err := t.cell(r, ref)
	if err != nil {
		return err
	}
	return c.SetPOD(data)
}

func (t *Table) GetPOD(r int, ref any) ([]byte, error) {
	c, _, err := t.cell(r, ref)
	if err != nil {
		return nil, err
	}
	return c.POD(), nil
}
