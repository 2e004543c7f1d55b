package schema

import (
	"testing"

	tabqlerrors "github.com/FocuswithJustin/tabkit/core/errors"
	"github.com/FocuswithJustin/tabkit/core/tabql/kind"
)

func TestSchemaAddAssignsSequentialIDsAndOffsets(t *testing.T) {
	s := New()
	if _, err := s.Add("a", kind.Int32, 0); err != nil {
		t.Fatalf("Add a: %v", err)
	}
	if _, err := s.Add("b", kind.Double, 0); err != nil {
		t.Fatalf("Add b: %v", err)
	}

	defA, _ := s.ByName("a")
	defB, _ := s.ByName("b")
	if defA.ID != 0 || defB.ID != 1 {
		t.Fatalf("expected sequential ids, got a=%d b=%d", defA.ID, defB.ID)
	}
	if defA.Offset != 0 || defB.Offset != defA.Size {
		t.Fatalf("expected b's offset to follow a's size, got a.Offset=%d b.Offset=%d a.Size=%d", defA.Offset, defB.Offset, defA.Size)
	}
}

func TestSchemaAddDuplicateNameFails(t *testing.T) {
	s := New()
	s.Add("a", kind.Int32, 0)
	if _, err := s.Add("a", kind.Double, 0); err == nil {
		t.Fatal("expected an error adding a duplicate column name")
	}
}

func TestSchemaAddEmptyNameFails(t *testing.T) {
	s := New()
	if _, err := s.Add("", kind.Int32, 0); err == nil {
		t.Fatal("expected an error for an empty column name")
	}
}

func TestSchemaRemoveReflowsLaterColumns(t *testing.T) {
	s := New()
	s.Add("a", kind.Int32, 0)
	s.Add("b", kind.Double, 0)
	s.Add("c", kind.Bool, 0)

	if err := s.Remove("a"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 remaining columns, got %d", s.Len())
	}

	defB, _ := s.ByName("b")
	defC, _ := s.ByName("c")
	if defB.ID != 0 || defC.ID != 1 {
		t.Fatalf("expected reflowed ids b=0 c=1, got b=%d c=%d", defB.ID, defC.ID)
	}
	if defB.Offset != 0 {
		t.Fatalf("expected b to move to offset 0, got %d", defB.Offset)
	}
	if defC.Offset != defB.Size {
		t.Fatalf("expected c's offset to follow b's size, got %d", defC.Offset)
	}
}

func TestSchemaRemoveUnknownColumnFails(t *testing.T) {
	s := New()
	if err := s.Remove("ghost"); err == nil {
		t.Fatal("expected an error removing an unknown column")
	}
}

func TestSchemaByIDAndResolve(t *testing.T) {
	s := New()
	s.Add("a", kind.Int32, 0)
	byID, err := s.ByID(0)
	if err != nil || byID.Name != "a" {
		t.Fatalf("ByID: got (%v, %v)", byID, err)
	}
	byName, err := s.Resolve("a")
	if err != nil || byName != byID {
		t.Fatalf("Resolve(name): got (%v, %v)", byName, err)
	}
	byIDRef, err := s.Resolve(0)
	if err != nil || byIDRef != byID {
		t.Fatalf("Resolve(id): got (%v, %v)", byIDRef, err)
	}
	if _, err := s.Resolve(3.14); err == nil {
		t.Fatal("expected an error resolving an unsupported reference type")
	}
}

func TestSchemaOutOfRangeIDFails(t *testing.T) {
	s := New()
	s.Add("a", kind.Int32, 0)
	if _, err := s.ByID(5); err == nil {
		t.Fatal("expected an error for an out-of-range column id")
	}
	var schemaErr *tabqlerrors.SchemaError
	if _, err := s.ByID(5); !tabqlerrors.As(err, &schemaErr) {
		t.Fatalf("expected *errors.SchemaError, got %v", err)
	}
}

func TestSchemaEqual(t *testing.T) {
	a := New()
	a.Add("x", kind.Int32, 0)
	a.Add("y", kind.NarrowString, 0)

	b := New()
	b.Add("x", kind.Int32, 0)
	b.Add("y", kind.NarrowString, 0)

	if !a.Equal(b) {
		t.Fatal("expected identical schemas to compare equal")
	}

	c := New()
	c.Add("y", kind.NarrowString, 0)
	c.Add("x", kind.Int32, 0)
	if a.Equal(c) {
		t.Fatal("expected order to matter for schema equality")
	}
}

func TestSchemaNamesAndColumnsAreCopies(t *testing.T) {
	s := New()
	s.Add("a", kind.Int32, 0)

	names := s.Names()
	names[0] = "mutated"
	if got, _ := s.ByName("a"); got == nil {
		t.Fatal("expected mutating the returned Names slice not to affect the schema")
	}

	cols := s.Columns()
	cols[0] = &ColumnDef{Name: "mutated"}
	if got, _ := s.ByName("a"); got.Name != "a" {
		t.Fatal("expected mutating the returned Columns slice not to affect the schema")
	}
}
