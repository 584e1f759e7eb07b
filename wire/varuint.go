package wire

import (
	"io"

	"github.com/alkoleft/racclient/racerr"
)

// EncodeVaruint appends the LEB128-style encoding of n (7-bit groups,
// MSB continuation) to dst and returns the result. It is used only for
// frame payload lengths.
func EncodeVaruint(dst []byte, n uint64) []byte {
	for {
		b := byte(n & 0x7f)
		n >>= 7
		if n != 0 {
			dst = append(dst, b|0x80)
		} else {
			dst = append(dst, b)
			return dst
		}
	}
}

// DecodeVaruint reads a varuint from r, rejecting any encoding whose
// continuation shift would exceed 63 bits.
func DecodeVaruint(r io.Reader) (uint64, error) {
	var result uint64
	var shift uint
	var b [1]byte
	for {
		if shift > 63 {
			return 0, racerr.InvalidData("varuint shift exceeds 63 bits")
		}
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, racerr.IO(err)
		}
		result |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
}

// DecodeVaruintBytes decodes a varuint from the head of buf, returning
// the value and the number of bytes consumed.
func DecodeVaruintBytes(buf []byte) (uint64, int, error) {
	var result uint64
	var shift uint
	for i, b := range buf {
		if shift > 63 {
			return 0, 0, racerr.InvalidData("varuint shift exceeds 63 bits")
		}
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, racerr.Truncated("varuint")
}
