package client

import (
	"github.com/alkoleft/racclient/frame"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
)

// negotiate runs the fixed handshake state machine exactly once per
// socket: send init packet, wait for the init acknowledgement, send
// the service-negotiation request for codec's version, then wait for
// the service acknowledgement. An UnsupportedService out-of-band
// notice is returned as racerr.UnsupportedService (Connect falls back
// to the next version); any other service-negotiation notice is
// skipped, with three reads in all before giving up.
func negotiate(t *Transport, codec *protocol.Codec, logger logAdapter) error {
	if err := t.WriteRaw(codec.InitPacket()); err != nil {
		return err
	}
	initAck, err := t.ReadFrame()
	if err != nil {
		return err
	}
	if initAck.Opcode != frame.OpInitAck {
		return protocol.UnexpectedOpcode(initAck.Opcode, initAck.Payload)
	}

	if err := t.WriteFrame(frame.OpServiceNegotiation, codec.ServiceNegotiationPayload()); err != nil {
		return err
	}

	for attempt := 0; attempt < 3; attempt++ {
		reply, err := t.ReadFrame()
		if err != nil {
			return err
		}
		switch reply.Opcode {
		case frame.OpServiceAck:
			return nil
		case frame.OpServiceNotice:
			if protocol.ContainsUnsupportedServiceMarker(reply.Payload) {
				return racerr.UnsupportedService(reply.Payload)
			}
			logger.debugf("handshake: service-negotiation notice, retrying (%d/3)", attempt+1)
			continue
		default:
			return racerr.Protocol("handshake: unexpected opcode waiting for service ack")
		}
	}
	return racerr.Protocol("handshake: service negotiation failed after 3 notices")
}

// logAdapter is the minimal logging surface handshake/session code
// needs; Session.logger implements it directly over zerolog.
type logAdapter interface {
	debugf(format string, args ...any)
}
