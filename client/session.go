package client

import (
	"fmt"

	"github.com/alkoleft/racclient/frame"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
	"github.com/rs/zerolog"
)

// Session owns exactly one TCP socket plus the implicit per-connection
// context latches. It must not be shared across goroutines; ownership
// transfer is the pool's job (see package pool).
type Session struct {
	transport *Transport
	codec     *protocol.Codec
	cfg       Config
	log       sessionLogger

	currentCluster  wire.Identifier
	hasCluster      bool
	currentInfobase wire.Identifier
	hasInfobase     bool
}

type sessionLogger struct {
	zerolog.Logger
	debugRaw bool
}

func (l sessionLogger) debugf(format string, args ...any) {
	l.Logger.Debug().Msg(fmt.Sprintf(format, args...))
}

func newSession(t *Transport, codec *protocol.Codec, cfg Config) *Session {
	return &Session{
		transport: t,
		codec:     codec,
		cfg:       cfg,
		log:       sessionLogger{Logger: cfg.Logger, debugRaw: cfg.DebugRaw},
	}
}

// Version reports the negotiated protocol version.
func (s *Session) Version() protocol.Version { return s.codec.Version() }

// Close writes the single-byte close frame and drops the socket.
func (s *Session) Close() error {
	_ = s.transport.WriteFrame(frame.OpClose, s.codec.ClosePayload())
	return s.transport.Close()
}

// Call sends a pre-built RPC envelope and returns the matching reply
// payload (or the ack literal), exposed for callers that build their
// own envelopes rather than going through CallTyped.
func (s *Session) Call(envelope []byte, expectMethod *uint8) ([]byte, error) {
	return s.sendRPCRaw(envelope, expectMethod)
}

// ensureContext issues the cluster-context and/or infobase-context
// RPCs required by meta/req, honoring the latch invariants of the
// session's data model: infobase implies cluster, infobase is cleared
// whenever cluster changes, and a would-block error during a context
// RPC optimistically sets the latch anyway.
func (s *Session) ensureContext(meta Meta, req interface {
	Cluster() (wire.Identifier, bool)
	Infobase() (wire.Identifier, bool)
}) error {
	if meta.RequiresClusterContext {
		cluster, ok := req.Cluster()
		if !ok {
			return racerr.Protocol("request declares RequiresClusterContext but returned no cluster")
		}
		if !s.hasCluster || s.currentCluster != cluster {
			if err := s.setClusterContext(cluster); err != nil {
				return err
			}
		}
	}
	if meta.RequiresInfobaseContext {
		infobase, ok := req.Infobase()
		if !ok {
			return racerr.Protocol("request declares RequiresInfobaseContext but returned no infobase")
		}
		if !s.hasInfobase || s.currentInfobase != infobase {
			if err := s.setInfobaseContext(infobase); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Session) setClusterContext(cluster wire.Identifier) error {
	envelope := protocol.EncodeRPC(protocol.MethodClusterAuth, protocol.EncodeClusterContext(cluster))
	_, err := s.sendRPCRaw(envelope, nil)
	if err != nil {
		if !racerr.IsWouldBlock(err) {
			return err
		}
		// Would-block during a context RPC: optimistically assume the
		// server absorbed the change.
	}
	s.currentCluster = cluster
	s.hasCluster = true
	s.hasInfobase = false
	s.currentInfobase = wire.Identifier{}
	return nil
}

func (s *Session) setInfobaseContext(infobase wire.Identifier) error {
	envelope := protocol.EncodeRPC(protocol.MethodInfobaseAuth, protocol.EncodeInfobaseContext(infobase))
	_, err := s.sendRPCRaw(envelope, nil)
	if err != nil {
		if !racerr.IsWouldBlock(err) {
			return err
		}
	}
	s.currentInfobase = infobase
	s.hasInfobase = true
	return nil
}

// sendRPCRaw writes the 0x0e frame and reads replies until a matching
// one arrives, transparently discarding out-of-band service notices,
// for up to three iterations.
func (s *Session) sendRPCRaw(envelope []byte, expectMethod *uint8) ([]byte, error) {
	if s.log.debugRaw {
		s.log.debugf("rpc: send frame 0x%02x % x", frame.OpRPC, envelope)
	}
	if err := s.transport.WriteFrame(frame.OpRPC, envelope); err != nil {
		return nil, err
	}
	for i := 0; i < 3; i++ {
		reply, err := s.transport.ReadFrame()
		if err != nil {
			return nil, err
		}
		if s.log.debugRaw {
			s.log.debugf("rpc: recv frame 0x%02x % x", reply.Opcode, reply.Payload)
		}
		if reply.Opcode == frame.OpServiceNotice {
			s.log.debugf("rpc: discarding service notice (% x)", reply.Payload)
			continue
		}
		if reply.Opcode != frame.OpRPC {
			return nil, protocol.UnexpectedOpcode(reply.Opcode, reply.Payload)
		}
		if protocol.IsAck(reply.Payload) {
			if expectMethod != nil {
				// Spurious ack while a method-tagged reply was
				// expected; keep reading.
				continue
			}
			return reply.Payload, nil
		}
		methodID, body, ok := protocol.DecodeRPCMethodID(reply.Payload)
		if !ok {
			if protocol.IsServiceNotice(reply.Payload) {
				continue
			}
			return nil, racerr.Protocol("missing rpc header")
		}
		if expectMethod != nil && methodID != *expectMethod {
			return nil, racerr.UnexpectedMethod(methodID, *expectMethod)
		}
		return body, nil
	}
	return nil, racerr.Protocol("rpc reply not received")
}
