// Package schema implements the per-RPC request encoders and response
// decoders described in the protocol's message-schema component: one
// file per cluster sub-resource family (agent, cluster, server,
// process, manager, infobase, connection, session, lock, counter,
// limit, rule, profile, service setting).
package schema

import (
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

// Ack is the generic acknowledgement response: every mutating RPC
// that has no typed reply decodes to this by reading the fixed
// 32-bit-big-endian 0x01000000 literal.
type Ack struct {
	Acknowledged bool
}

// DecodeAck reports whether body is exactly the ack literal
// [0x01, 0x00, 0x00, 0x00]. For ack-only requests the session returns
// this literal verbatim as the reply body (see client.sendRPCRaw).
func DecodeAck(body []byte, _ *protocol.Codec) (Ack, error) {
	return Ack{Acknowledged: protocol.IsAck(body)}, nil
}

func noCluster() (wire.Identifier, bool)  { return wire.Identifier{}, false }
func noInfobase() (wire.Identifier, bool) { return wire.Identifier{}, false }

// clusterScopedEncode builds a request body that begins with the
// target cluster identifier, optionally followed by more fields
// (e.g. an object identifier for "scoped object" requests).
func clusterScopedEncode(cluster wire.Identifier, rest func(e *wire.Encoder)) []byte {
	e := wire.NewEncoder(32)
	e.PutIdentifier(cluster)
	if rest != nil {
		rest(e)
	}
	return e.Bytes()
}

// decodeCount reads the u8 record-count prefix used by every list
// response.
func decodeCount(c *wire.Cursor) (int, error) {
	n, err := c.TakeU8()
	if err != nil {
		return 0, racerr.DecodeMessagef(err, "list count")
	}
	return int(n), nil
}
