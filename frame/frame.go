// Package frame implements the length-prefixed frame layer that sits
// directly on top of the TCP byte stream: every frame is
// (opcode byte, varuint payload length, payload bytes).
package frame

import (
	"io"

	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

// Opcodes recognized by the core protocol engine.
const (
	OpInitAck            byte = 0x02
	OpServiceNegotiation byte = 0x0b
	OpServiceAck         byte = 0x0c
	OpClose              byte = 0x0d
	OpRPC                byte = 0x0e
	OpServiceNotice      byte = 0x0f
)

// Frame is one decoded (opcode, payload) unit. A frame is atomic: a
// partial read blocks at the transport until the full payload is
// available or the socket closes.
type Frame struct {
	Opcode  byte
	Payload []byte
}

// WriteFrame writes opcode, the varuint length of payload, then
// payload itself to w. The caller is responsible for flushing w; no
// internal buffering is performed beyond what w itself provides.
func WriteFrame(w io.Writer, opcode byte, payload []byte) error {
	header := make([]byte, 0, 1+10)
	header = append(header, opcode)
	header = wire.EncodeVaruint(header, uint64(len(payload)))
	if _, err := w.Write(header); err != nil {
		return racerr.IO(err)
	}
	if len(payload) > 0 {
		if _, err := w.Write(payload); err != nil {
			return racerr.IO(err)
		}
	}
	return nil
}

// ReadFrame reads one opcode byte, one varuint length, then that many
// payload bytes from r. Short reads propagate as I/O errors.
func ReadFrame(r io.Reader) (Frame, error) {
	var opBuf [1]byte
	if _, err := io.ReadFull(r, opBuf[:]); err != nil {
		return Frame{}, racerr.IO(err)
	}
	n, err := wire.DecodeVaruint(r)
	if err != nil {
		return Frame{}, err
	}
	payload := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			return Frame{}, racerr.IO(err)
		}
	}
	return Frame{Opcode: opBuf[0], Payload: payload}, nil
}

// ParseFrames bulk-parses every complete frame found in buf starting
// at startOffset, used by offline tooling and tests operating on an
// in-memory capture rather than a live socket. It stops (without
// error) at the first incomplete trailing frame.
func ParseFrames(buf []byte, startOffset int) ([]Frame, error) {
	var frames []Frame
	pos := startOffset
	for pos < len(buf) {
		if pos+1 > len(buf) {
			break
		}
		opcode := buf[pos]
		n, consumed, err := wire.DecodeVaruintBytes(buf[pos+1:])
		if err != nil {
			break
		}
		payloadStart := pos + 1 + consumed
		payloadEnd := payloadStart + int(n)
		if payloadEnd > len(buf) {
			break
		}
		payload := make([]byte, n)
		copy(payload, buf[payloadStart:payloadEnd])
		frames = append(frames, Frame{Opcode: opcode, Payload: payload})
		pos = payloadEnd
	}
	return frames, nil
}
