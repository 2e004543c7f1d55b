package blob

import "testing"

func TestBlobSetGetNarrowWide(t *testing.T) {
	b := New()
	if !b.Empty() {
		t.Fatal("expected a new blob to be empty")
	}

	b.SetNarrow("hello")
	if b.Empty() || b.Len() != 5 {
		t.Fatalf("expected len 5, got %d", b.Len())
	}
	if got := b.GetNarrow(); got != "hello" {
		t.Fatalf("GetNarrow: got %q", got)
	}
	if got := b.GetWide(); got != "hello" {
		t.Fatalf("GetWide: got %q", got)
	}

	b.SetWide("wide")
	if got := b.GetWide(); got != "wide" {
		t.Fatalf("GetWide after SetWide: got %q", got)
	}
}

func TestBlobCloneIsIndependent(t *testing.T) {
	b := New()
	b.SetNarrow("original")
	clone := b.Clone()
	clone.SetNarrow("mutated")

	if got := b.GetNarrow(); got != "original" {
		t.Fatalf("expected original blob unaffected by clone mutation, got %q", got)
	}
	if got := clone.GetNarrow(); got != "mutated" {
		t.Fatalf("expected clone to hold mutated value, got %q", got)
	}
}

func TestBlobReleaseEmpties(t *testing.T) {
	b := New()
	b.SetNarrow("something")
	b.Release()
	if !b.Empty() {
		t.Fatal("expected blob to be empty after Release")
	}
	if got := b.GetNarrow(); got != "" {
		t.Fatalf("expected empty string after Release, got %q", got)
	}
}

func TestBlobStoreReleasesPriorBuffer(t *testing.T) {
	b := New()
	b.SetNarrow("first")
	b.SetNarrow("second")
	if got := b.GetNarrow(); got != "second" {
		t.Fatalf("expected overwrite to second, got %q", got)
	}
	if b.Len() != len([]rune("second")) {
		t.Fatalf("unexpected length %d", b.Len())
	}
}

func TestBlobUnicodeRuneHandling(t *testing.T) {
	b := New()
	s := "café中文"
	b.SetNarrow(s)
	if got := b.GetNarrow(); got != s {
		t.Fatalf("expected multi-byte round trip, got %q", got)
	}
	if b.Len() != len([]rune(s)) {
		t.Fatalf("expected rune-counted length, got %d", b.Len())
	}
}
