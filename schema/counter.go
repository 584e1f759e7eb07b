package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodCounterListReq             uint8 = 0x76
	methodCounterListResp             uint8 = 0x77
	methodCounterInfoReq              uint8 = 0x78
	methodCounterInfoResp             uint8 = 0x79
	methodCounterUpdateReq            uint8 = 0x7a
	methodCounterRemoveReq             uint8 = 0x7b
	methodCounterClearReq              uint8 = 0x84
	methodCounterValuesReq             uint8 = 0x82
	methodCounterValuesResp            uint8 = 0x83
	methodCounterAccumulatedValuesReq  uint8 = 0x85
	methodCounterAccumulatedValuesResp uint8 = 0x86
)

// Counter is a performance-counter definition record. The weight
// fields (duration, cpu_time, ...) are single bytes, not the wider
// integers used by the value/accumulation records below.
type Counter struct {
	Name                    string
	CollectionTime          uint64
	Group                   uint8
	FilterType              uint8
	Filter                  string
	Duration                uint8
	CPUTime                 uint8
	DurationDBMS            uint8
	Service                 uint8
	Memory                  uint8
	Read                    uint8
	Write                   uint8
	DBMSBytes               uint8
	Call                    uint8
	NumberOfActiveSessions  uint8
	NumberOfSessions        uint8
	Descr                   string
}

func decodeCounter(c *wire.Cursor) (Counter, error) {
	var n Counter
	var err error
	if n.Name, err = c.TakeStr8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.name")
	}
	if n.CollectionTime, err = c.TakeU64BE(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.collection_time")
	}
	if n.Group, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.group")
	}
	if n.FilterType, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.filter_type")
	}
	if n.Filter, err = c.TakeStr8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.filter")
	}
	if n.Duration, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.duration")
	}
	if n.CPUTime, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.cpu_time")
	}
	if n.DurationDBMS, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.duration_dbms")
	}
	if n.Service, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.service")
	}
	if n.Memory, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.memory")
	}
	if n.Read, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.read")
	}
	if n.Write, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.write")
	}
	if n.DBMSBytes, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.dbms_bytes")
	}
	if n.Call, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.call")
	}
	if n.NumberOfActiveSessions, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.number_of_active_sessions")
	}
	if n.NumberOfSessions, err = c.TakeU8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.number_of_sessions")
	}
	if n.Descr, err = c.TakeStr8(); err != nil {
		return n, racerr.DecodeMessagef(err, "counter.descr")
	}
	return n, nil
}

// CounterValues is a sampled counter reading for one object.
type CounterValues struct {
	Object                 string
	CollectionTime         uint64
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
	Time                   string
}

func decodeCounterValues(c *wire.Cursor) (CounterValues, error) {
	var v CounterValues
	var err error
	if v.Object, err = c.TakeStr8(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.object")
	}
	if v.CollectionTime, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.collection_time")
	}
	if v.Duration, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.duration")
	}
	if v.CPUTime, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.cpu_time")
	}
	if v.Memory, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.memory")
	}
	if v.Read, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.read")
	}
	if v.Write, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.write")
	}
	if v.DurationDBMS, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.duration_dbms")
	}
	if v.DBMSBytes, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.dbms_bytes")
	}
	if v.Service, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.service")
	}
	if v.Call, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.call")
	}
	if v.NumberOfActiveSessions, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.number_of_active_sessions")
	}
	if v.NumberOfSessions, err = c.TakeU64BE(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.number_of_sessions")
	}
	if v.Time, err = c.TakeDateTime(); err != nil {
		return v, racerr.DecodeMessagef(err, "counter_values.time")
	}
	return v, nil
}

func decodeCounterValuesList(body []byte) ([]CounterValues, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]CounterValues, 0, n)
	for i := 0; i < n; i++ {
		v, err := decodeCounterValues(c)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// CounterListRequest lists the counter definitions in a cluster.
type CounterListRequest struct {
	ClusterID wire.Identifier
}

func (CounterListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodCounterListReq, MethodResp: methodCounterListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r CounterListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r CounterListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r CounterListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (CounterListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Counter, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Counter, 0, n)
	for i := 0; i < n; i++ {
		ct, err := decodeCounter(c)
		if err != nil {
			return nil, err
		}
		out = append(out, ct)
	}
	return out, nil
}

// CounterInfoRequest fetches one counter definition by name.
type CounterInfoRequest struct {
	ClusterID wire.Identifier
	Counter   string
}

func (CounterInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodCounterInfoReq, MethodResp: methodCounterInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r CounterInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r CounterInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r CounterInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(r.Counter)
	}), nil
}
func (CounterInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Counter, error) {
	return decodeCounter(wire.NewCursor(body))
}

// CounterUpdateRequest creates or updates a counter definition.
type CounterUpdateRequest struct {
	ClusterID              wire.Identifier
	Name                   string
	CollectionTime         uint64
	Group                  uint8
	FilterType             uint8
	Filter                 string
	Duration               uint8
	CPUTime                uint8
	DurationDBMS           uint8
	Service                uint8
	Memory                 uint8
	Read                   uint8
	Write                  uint8
	DBMSBytes              uint8
	Call                   uint8
	NumberOfActiveSessions uint8
	NumberOfSessions       uint8
	Descr                  string
}

func (CounterUpdateRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodCounterUpdateReq, RequiresClusterContext: true}
}
func (r CounterUpdateRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r CounterUpdateRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r CounterUpdateRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(r.Name)
		e.PutU64BE(r.CollectionTime)
		e.PutU8(r.Group)
		e.PutU8(r.FilterType)
		e.PutStr8(r.Filter)
		e.PutU8(r.Duration)
		e.PutU8(r.CPUTime)
		e.PutU8(r.DurationDBMS)
		e.PutU8(r.Service)
		e.PutU8(r.Memory)
		e.PutU8(r.Read)
		e.PutU8(r.Write)
		e.PutU8(r.DBMSBytes)
		e.PutU8(r.Call)
		e.PutU8(r.NumberOfActiveSessions)
		e.PutU8(r.NumberOfSessions)
		e.PutStr8(r.Descr)
	}), nil
}
func (CounterUpdateRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// CounterRemoveRequest deletes a counter definition.
type CounterRemoveRequest struct {
	ClusterID wire.Identifier
	Name      string
}

func (CounterRemoveRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodCounterRemoveReq, RequiresClusterContext: true}
}
func (r CounterRemoveRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r CounterRemoveRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r CounterRemoveRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(r.Name)
	}), nil
}
func (CounterRemoveRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// CounterClearRequest resets accumulated values for a counter/object
// pair.
type CounterClearRequest struct {
	ClusterID wire.Identifier
	Counter   string
	Object    string
}

func (CounterClearRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodCounterClearReq, RequiresClusterContext: true}
}
func (r CounterClearRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r CounterClearRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r CounterClearRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(r.Counter)
		e.PutStr8(r.Object)
	}), nil
}
func (CounterClearRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// CounterValuesRequest reads the current sampled value of a counter
// for an object.
type CounterValuesRequest struct {
	ClusterID wire.Identifier
	Counter   string
	Object    string
}

func (CounterValuesRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodCounterValuesReq, MethodResp: methodCounterValuesResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r CounterValuesRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r CounterValuesRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r CounterValuesRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(r.Counter)
		e.PutStr8(r.Object)
	}), nil
}
func (CounterValuesRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]CounterValues, error) {
	return decodeCounterValuesList(body)
}

// CounterAccumulatedValuesRequest reads the accumulated value of a
// counter for an object since its last clear.
type CounterAccumulatedValuesRequest struct {
	ClusterID wire.Identifier
	Counter   string
	Object    string
}

func (CounterAccumulatedValuesRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodCounterAccumulatedValuesReq, MethodResp: methodCounterAccumulatedValuesResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r CounterAccumulatedValuesRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r CounterAccumulatedValuesRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r CounterAccumulatedValuesRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(r.Counter)
		e.PutStr8(r.Object)
	}), nil
}
func (CounterAccumulatedValuesRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]CounterValues, error) {
	return decodeCounterValuesList(body)
}
