package bytecode

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/blake3"
)

// Hash fingerprints the program. selectdriver logs it as an attribute
// when it compiles a query; its compilation cache is keyed by a hash
// of the query text instead (see SPEC_FULL.md §4.8).
// The encoding only needs to be stable within one process lifetime, so
// it does not attempt to be a portable wire format.
func (p *Program) Hash() [32]byte {
	h := blake3.New()
	var buf [8]byte
	for _, in := range p.Instrs {
		buf[0] = byte(in.Op)
		h.Write(buf[:1])
		binary.LittleEndian.PutUint64(buf[:], uint64(in.Arg.Kind))
		h.Write(buf[:])
		binary.LittleEndian.PutUint32(buf[:4], uint32(in.Arg.I32))
		h.Write(buf[:4])
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(in.Arg.F64))
		h.Write(buf[:])
		h.Write([]byte(in.Arg.Str))
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}
