// Package blob implements the variable-length cell handle: a
// fixed-size owning reference to a heap buffer of characters, with
// deep-copy semantics and narrow/wide string conversion.
//
// Grounded on original_source/stlib/varblob.h's varblob<T,_TA> class:
// a private "holder{buffer,size}" released before every new store, and
// get/set helpers that convert between the element type and whatever
// string type the caller presents (char <-> wchar_t in the original;
// here, UTF-8 bytes <-> runes).
package blob

// Blob is an owning handle to a heap-allocated character buffer. The
// zero value (via New) is empty. Blob is not safe for concurrent use,
// matching the engine's single-writer rule (spec §5).
type Blob struct {
	// data holds the logical content as runes so that narrow (one
	// byte-oriented string) and wide (code-point oriented string)
	// views can both be produced from the same buffer, mirroring the
	// original's char_of<V>-driven narrow/wide conversion.
	data []rune
}

// New returns an empty Blob.
func New() *Blob {
	return &Blob{}
}

// Clone deep-copies the blob, allocating a new backing buffer (§3:
// "copying between slots is deep; the handle does not share").
func (b *Blob) Clone() *Blob {
	out := &Blob{}
	if len(b.data) > 0 {
		out.data = append([]rune(nil), b.data...)
	}
	return out
}

// Empty reports whether the blob holds no characters.
func (b *Blob) Empty() bool { return len(b.data) == 0 }

// Len reports the number of characters (runes) stored.
func (b *Blob) Len() int { return len(b.data) }

// Release frees the backing buffer. Safe to call on an already-empty
// blob. Grounded on varblob<T,_TA>::release().
func (b *Blob) Release() {
	b.data = nil
}

// store replaces the buffer with a copy of runes, releasing the prior
// buffer first. Grounded on varblob<T,_TA>::store(p, len): "release();
// copy_(p, len);" — always release-then-allocate, never reuse in place.
func (b *Blob) store(runes []rune) {
	b.Release()
	if len(runes) == 0 {
		return
	}
	b.data = append([]rune(nil), runes...)
}

// SetNarrow stores s, treating it as a narrow (byte-per-character in
// its origin locale, represented here as a rune sequence) string.
func (b *Blob) SetNarrow(s string) {
	b.store([]rune(s))
}

// SetWide stores s as a wide-character string. The engine represents
// both narrow and wide cells as rune sequences internally; the
// distinction is the Kind tag used for VM dispatch and literal syntax
// (the `L'...'` prefix), not the storage encoding.
func (b *Blob) SetWide(s string) {
	b.store([]rune(s))
}

// GetNarrow returns the buffer's content as a narrow string.
func (b *Blob) GetNarrow() string {
	if b.Empty() {
		return ""
	}
	return string(b.data)
}

// GetWide returns the buffer's content as a wide string.
func (b *Blob) GetWide() string {
	if b.Empty() {
		return ""
	}
	return string(b.data)
}
