package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodInfobaseSummaryUpdateReq uint8 = 0x27
	methodInfobaseSummaryListReq   uint8 = 0x2a
	methodInfobaseSummaryListResp  uint8 = 0x2b
	methodInfobaseSummaryInfoReq   uint8 = 0x2e
	methodInfobaseSummaryInfoResp  uint8 = 0x2f
	methodInfobaseInfoReq          uint8 = 0x30
	methodInfobaseInfoResp         uint8 = 0x31
)

// InfobaseSummary is the lightweight infobase listing record. Descr
// is decoded with TakeStr8Opt, whose one-byte length may be preceded
// by the 0x2c tag; Name is always a plain str8.
type InfobaseSummary struct {
	ID    wire.Identifier
	Descr string
	Name  string
}

func decodeInfobaseSummary(c *wire.Cursor) (InfobaseSummary, error) {
	var ib InfobaseSummary
	var err error
	if ib.ID, err = c.TakeIdentifier(); err != nil {
		return ib, racerr.DecodeMessagef(err, "infobase_summary.id")
	}
	if ib.Descr, err = c.TakeStr8Opt(); err != nil {
		return ib, racerr.DecodeMessagef(err, "infobase_summary.descr")
	}
	if ib.Name, err = c.TakeStr8(); err != nil {
		return ib, racerr.DecodeMessagef(err, "infobase_summary.name")
	}
	return ib, nil
}

// InfobaseSummaryListRequest lists every infobase summary in a
// cluster.
type InfobaseSummaryListRequest struct {
	ClusterID wire.Identifier
}

func (InfobaseSummaryListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodInfobaseSummaryListReq, MethodResp: methodInfobaseSummaryListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r InfobaseSummaryListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r InfobaseSummaryListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r InfobaseSummaryListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (InfobaseSummaryListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]InfobaseSummary, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]InfobaseSummary, 0, n)
	for i := 0; i < n; i++ {
		ib, err := decodeInfobaseSummary(c)
		if err != nil {
			return nil, err
		}
		out = append(out, ib)
	}
	return out, nil
}

// InfobaseSummaryInfoRequest fetches one infobase summary record.
type InfobaseSummaryInfoRequest struct {
	ClusterID  wire.Identifier
	InfobaseID wire.Identifier
}

func (InfobaseSummaryInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodInfobaseSummaryInfoReq, MethodResp: methodInfobaseSummaryInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r InfobaseSummaryInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r InfobaseSummaryInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r InfobaseSummaryInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.InfobaseID)
	}), nil
}
func (InfobaseSummaryInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (InfobaseSummary, error) {
	return decodeInfobaseSummary(wire.NewCursor(body))
}

// InfobaseSummaryUpdateRequest updates an infobase's descr/name.
type InfobaseSummaryUpdateRequest struct {
	ClusterID  wire.Identifier
	InfobaseID wire.Identifier
	Descr      string
	Name       string
}

func (InfobaseSummaryUpdateRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodInfobaseSummaryUpdateReq, RequiresClusterContext: true}
}
func (r InfobaseSummaryUpdateRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r InfobaseSummaryUpdateRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r InfobaseSummaryUpdateRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.InfobaseID)
		e.PutStr8(r.Descr)
		e.PutStr8(r.Name)
	}), nil
}
func (InfobaseSummaryUpdateRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// InfobaseInfoRequest fetches the full infobase record, requiring the
// infobase context to be established first.
type InfobaseInfoRequest struct {
	ClusterID  wire.Identifier
	InfobaseID wire.Identifier
}

func (InfobaseInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodInfobaseInfoReq, MethodResp: methodInfobaseInfoResp, HasMethodResp: true,
		RequiresClusterContext: true, RequiresInfobaseContext: true,
	}
}
func (r InfobaseInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r InfobaseInfoRequest) Infobase() (wire.Identifier, bool) { return r.InfobaseID, true }
func (r InfobaseInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.InfobaseID)
	}), nil
}
func (InfobaseInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (InfobaseSummary, error) {
	return decodeInfobaseSummary(wire.NewCursor(body))
}
