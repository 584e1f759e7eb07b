package wire

import "encoding/binary"

// Encoder accumulates request-body bytes. Unlike Cursor it never
// fails: callers build bodies from already-validated Go values.
type Encoder struct {
	buf []byte
}

// NewEncoder returns an Encoder with cap bytes pre-reserved.
func NewEncoder(cap int) *Encoder { return &Encoder{buf: make([]byte, 0, cap)} }

// Bytes returns the accumulated body.
func (e *Encoder) Bytes() []byte { return e.buf }

// PutBytes appends raw bytes.
func (e *Encoder) PutBytes(b []byte) { e.buf = append(e.buf, b...) }

// PutU8 appends a single byte.
func (e *Encoder) PutU8(v uint8) { e.buf = append(e.buf, v) }

// PutBool appends a single byte, 1 for true, 0 for false.
func (e *Encoder) PutBool(v bool) {
	if v {
		e.PutU8(1)
	} else {
		e.PutU8(0)
	}
}

// PutU16BE appends a big-endian 16-bit integer.
func (e *Encoder) PutU16BE(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// PutU32BE appends a big-endian 32-bit integer.
func (e *Encoder) PutU32BE(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// PutU32LE appends a little-endian 32-bit integer.
func (e *Encoder) PutU32LE(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// PutU64BE appends a big-endian 64-bit integer.
func (e *Encoder) PutU64BE(v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// PutIdentifier appends a 16-byte opaque identifier.
func (e *Encoder) PutIdentifier(id Identifier) { e.buf = append(e.buf, id[:]...) }

// PutStr8 appends a one-byte length prefix and the UTF-8 bytes of s.
// s must not exceed 255 bytes; PutStr8 does not check this, and
// neither do the schema encoders that call it.
func (e *Encoder) PutStr8(s string) {
	e.PutU8(uint8(len(s)))
	e.buf = append(e.buf, s...)
}

// PutZero appends n zero bytes, used for the cluster-context request's
// two-byte padding and similar fixed gaps.
func (e *Encoder) PutZero(n int) {
	for i := 0; i < n; i++ {
		e.buf = append(e.buf, 0)
	}
}
