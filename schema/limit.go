package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodLimitListReq   uint8 = 0x7c
	methodLimitListResp  uint8 = 0x7d
	methodLimitInfoReq   uint8 = 0x7e
	methodLimitInfoResp  uint8 = 0x7f
	methodLimitUpdateReq uint8 = 0x80
	methodLimitRemoveReq uint8 = 0x81
)

// Limit is a resource-quota record applied against a named counter.
type Limit struct {
	Name                   string
	Counter                string
	Action                 uint8
	Duration               uint64
	CPUTime                uint64
	Memory                 uint64
	Read                   uint64
	Write                  uint64
	DurationDBMS           uint64
	DBMSBytes              uint64
	Service                uint64
	Call                   uint64
	NumberOfActiveSessions uint64
	NumberOfSessions       uint64
	ErrorMessage           string
	Descr                  string
}

func decodeLimit(c *wire.Cursor) (Limit, error) {
	var l Limit
	var err error
	if l.Name, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.name")
	}
	if l.Counter, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.counter")
	}
	if l.Action, err = c.TakeU8(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.action")
	}
	if l.Duration, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.duration")
	}
	if l.CPUTime, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.cpu_time")
	}
	if l.Memory, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.memory")
	}
	if l.Read, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.read")
	}
	if l.Write, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.write")
	}
	if l.DurationDBMS, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.duration_dbms")
	}
	if l.DBMSBytes, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.dbms_bytes")
	}
	if l.Service, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.service")
	}
	if l.Call, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.call")
	}
	if l.NumberOfActiveSessions, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.number_of_active_sessions")
	}
	if l.NumberOfSessions, err = c.TakeU64BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.number_of_sessions")
	}
	if l.ErrorMessage, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.error_message")
	}
	if l.Descr, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "limit.descr")
	}
	return l, nil
}

// LimitListRequest lists the limits configured in a cluster.
type LimitListRequest struct {
	ClusterID wire.Identifier
}

func (LimitListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodLimitListReq, MethodResp: methodLimitListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r LimitListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r LimitListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r LimitListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (LimitListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Limit, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Limit, 0, n)
	for i := 0; i < n; i++ {
		l, err := decodeLimit(c)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// LimitInfoRequest fetches one limit by name.
type LimitInfoRequest struct {
	ClusterID wire.Identifier
	Name      string
}

func (LimitInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodLimitInfoReq, MethodResp: methodLimitInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r LimitInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r LimitInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r LimitInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(r.Name)
	}), nil
}
func (LimitInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Limit, error) {
	return decodeLimit(wire.NewCursor(body))
}

// LimitUpdateRequest creates or updates a limit definition.
type LimitUpdateRequest struct {
	ClusterID wire.Identifier
	Limit     Limit
}

func (LimitUpdateRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodLimitUpdateReq, RequiresClusterContext: true}
}
func (r LimitUpdateRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r LimitUpdateRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r LimitUpdateRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	l := r.Limit
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(l.Name)
		e.PutStr8(l.Counter)
		e.PutU8(l.Action)
		e.PutU64BE(l.Duration)
		e.PutU64BE(l.CPUTime)
		e.PutU64BE(l.Memory)
		e.PutU64BE(l.Read)
		e.PutU64BE(l.Write)
		e.PutU64BE(l.DurationDBMS)
		e.PutU64BE(l.DBMSBytes)
		e.PutU64BE(l.Service)
		e.PutU64BE(l.Call)
		e.PutU64BE(l.NumberOfActiveSessions)
		e.PutU64BE(l.NumberOfSessions)
		e.PutStr8(l.ErrorMessage)
		e.PutStr8(l.Descr)
	}), nil
}
func (LimitUpdateRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// LimitRemoveRequest deletes a limit definition.
type LimitRemoveRequest struct {
	ClusterID wire.Identifier
	Name      string
}

func (LimitRemoveRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodLimitRemoveReq, RequiresClusterContext: true}
}
func (r LimitRemoveRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r LimitRemoveRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r LimitRemoveRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(r.Name)
	}), nil
}
func (LimitRemoveRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}
