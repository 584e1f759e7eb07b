// Package protocol implements the fixed init/service-negotiation/close
// payloads, the opcode table, and the RPC envelope encode/decode used
// by every message schema, parameterized by the negotiated Version.
package protocol

import (
	"bytes"

	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

// initPacket is identical across protocol versions: a literal
// preamble, a one-byte version marker, and the single named parameter
// "connect.timeout" carrying a 32-bit big-endian value of 2000.
var initPacket = []byte{
	0x1c, 0x53, 0x57, 0x50, 0x01, 0x00, 0x01, 0x00, 0x01, 0x16, 0x01, 0x0f, 0x63, 0x6f, 0x6e,
	0x6e, 0x65, 0x63, 0x74, 0x2e, 0x74, 0x69, 0x6d, 0x65, 0x6f, 0x75, 0x74, 0x04, 0x00, 0x00,
	0x07, 0xd0,
}

var serviceNegotiationV11 = []byte{
	0x18, 0x76, 0x38, 0x2e, 0x73, 0x65, 0x72, 0x76, 0x69, 0x63, 0x65, 0x2e, 0x41, 0x64, 0x6d,
	0x69, 0x6e, 0x2e, 0x43, 0x6c, 0x75, 0x73, 0x74, 0x65, 0x72, 0x04, 0x31, 0x31, 0x2e, 0x30,
	0x80,
}

var serviceNegotiationV16 = []byte{
	0x18, 0x76, 0x38, 0x2e, 0x73, 0x65, 0x72, 0x76, 0x69, 0x63, 0x65, 0x2e, 0x41, 0x64, 0x6d,
	0x69, 0x6e, 0x2e, 0x43, 0x6c, 0x75, 0x73, 0x74, 0x65, 0x72, 0x04, 0x31, 0x36, 0x2e, 0x30,
	0x80,
}

// closePayload is the single-byte body of the close frame (opcode
// frame.OpClose).
var closePayload = []byte{0x01}

// rpcHeader is the fixed 4-byte prefix of every RPC envelope,
// preceding the single method-id byte.
var rpcHeader = []byte{0x01, 0x00, 0x00, 0x01}

// ackLiteral is the full reply body signaling acknowledgement without
// a typed payload.
var ackLiteral = []byte{0x01, 0x00, 0x00, 0x00}

// serviceNoticeHeader prefixes out-of-band opcode-0x0f notices.
var serviceNoticeHeader = []byte{0x01, 0x00, 0x00, 0xff}

// Method ids fixed regardless of protocol version, used by the
// client session to establish implicit connection context.
const (
	MethodClusterAuth  uint8 = 0x09
	MethodInfobaseAuth uint8 = 0x0a
)

// Codec exposes every version-parameterized encode/decode the message
// schemas and handshake need.
type Codec struct {
	version Version
}

// NewCodec returns a Codec bound to the given negotiated version.
func NewCodec(v Version) *Codec { return &Codec{version: v} }

// Version reports the codec's bound protocol version.
func (c *Codec) Version() Version { return c.version }

// InitPacket returns the fixed init packet (identical across
// versions).
func (c *Codec) InitPacket() []byte { return initPacket }

// ServiceNegotiationPayload returns the service-negotiation payload
// embedding this codec's version string.
func (c *Codec) ServiceNegotiationPayload() []byte {
	if c.version == V11_0 {
		return serviceNegotiationV11
	}
	return serviceNegotiationV16
}

// ClosePayload returns the single-byte close frame body.
func (c *Codec) ClosePayload() []byte { return closePayload }

// IsAck reports whether body is exactly the acknowledgement literal.
func IsAck(body []byte) bool { return bytes.Equal(body, ackLiteral) }

// IsServiceNotice reports whether a frame payload carries the
// out-of-band service-notice header.
func IsServiceNotice(payload []byte) bool {
	return len(payload) >= 4 && bytes.Equal(payload[:4], serviceNoticeHeader)
}

// ContainsUnsupportedServiceMarker reports whether payload contains
// the ASCII marker the server uses to signal that the offered service
// version is not supported.
func ContainsUnsupportedServiceMarker(payload []byte) bool {
	return bytes.Contains(payload, []byte("UnsupportedService"))
}

// EncodeRPC builds a full RPC envelope: the fixed header, the method
// id, then body.
func EncodeRPC(methodID uint8, body []byte) []byte {
	out := make([]byte, 0, len(rpcHeader)+1+len(body))
	out = append(out, rpcHeader...)
	out = append(out, methodID)
	out = append(out, body...)
	return out
}

// DecodeRPCMethodID returns the method id if payload's header matches
// the fixed RPC envelope prefix, and ok=false otherwise.
func DecodeRPCMethodID(payload []byte) (methodID uint8, body []byte, ok bool) {
	if len(payload) < 5 || !bytes.Equal(payload[:4], rpcHeader) {
		return 0, nil, false
	}
	return payload[4], payload[5:], true
}

// EncodeClusterContext builds the cluster-context request body: the
// target cluster identifier followed by two zero padding bytes.
func EncodeClusterContext(cluster wire.Identifier) []byte {
	e := wire.NewEncoder(18)
	e.PutIdentifier(cluster)
	e.PutZero(2)
	return e.Bytes()
}

// EncodeInfobaseContext builds the infobase-context request body,
// using the same cluster-identifier-plus-padding shape as
// EncodeClusterContext.
func EncodeInfobaseContext(cluster wire.Identifier) []byte {
	return EncodeClusterContext(cluster)
}

// UnexpectedOpcode builds a formatted protocol error describing an
// opcode the caller did not expect, including a hex preview of the
// payload head.
func UnexpectedOpcode(got byte, payload []byte) error {
	n := len(payload)
	if n > 8 {
		n = 8
	}
	return racerr.ProtocolMessagef("unexpected opcode 0x%02x (payload head % x)", got, payload[:n])
}
