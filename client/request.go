package client

import (
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/wire"
)

// Meta describes the method ids and context requirements of one RPC,
// as defined by its message schema.
type Meta struct {
	MethodReq               uint8
	MethodResp              uint8
	HasMethodResp           bool
	RequiresClusterContext  bool
	RequiresInfobaseContext bool
}

// Request is implemented by every typed RPC request. T is the decoded
// response type.
type Request[T any] interface {
	Meta() Meta
	// Cluster returns the cluster this request targets, when the
	// request is cluster-scoped.
	Cluster() (wire.Identifier, bool)
	// Infobase returns the infobase this request targets, when the
	// request is infobase-scoped.
	Infobase() (wire.Identifier, bool)
	EncodeBody(codec *protocol.Codec) ([]byte, error)
	DecodeResponse(body []byte, codec *protocol.Codec) (T, error)
}

// CallTyped issues req on s, establishing any required context first,
// and decodes the reply with req's own decoder.
func CallTyped[T any](s *Session, req Request[T]) (T, error) {
	var zero T
	meta := req.Meta()
	if err := s.ensureContext(meta, req); err != nil {
		return zero, err
	}
	body, err := req.EncodeBody(s.codec)
	if err != nil {
		return zero, err
	}
	envelope := protocol.EncodeRPC(meta.MethodReq, body)
	var expect *uint8
	if meta.HasMethodResp {
		m := meta.MethodResp
		expect = &m
	}
	reply, err := s.sendRPCRaw(envelope, expect)
	if err != nil {
		return zero, err
	}
	resp, err := req.DecodeResponse(reply, s.codec)
	if err != nil {
		return zero, err
	}
	return resp, nil
}
