package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodConnectionListReq            uint8 = 0x32
	methodConnectionListResp           uint8 = 0x33
	methodConnectionListByInfobaseReq  uint8 = 0x34
	methodConnectionListByInfobaseResp uint8 = 0x35
	methodConnectionInfoReq            uint8 = 0x36
	methodConnectionInfoResp           uint8 = 0x37
	methodConnectionDisconnectReq      uint8 = 0x40
)

// Connection is the client-connection record.
type Connection struct {
	ID            wire.Identifier
	Application   string
	BlockedByLS   uint32
	ConnectedAt   string
	ConnID        uint32
	Host          string
	InfobaseID    wire.Identifier
	ProcessID     wire.Identifier
	SessionNumber uint32
}

func decodeConnection(c *wire.Cursor) (Connection, error) {
	var cn Connection
	var err error
	if cn.ID, err = c.TakeIdentifier(); err != nil {
		return cn, racerr.DecodeMessagef(err, "connection.id")
	}
	if cn.Application, err = c.TakeStr8(); err != nil {
		return cn, racerr.DecodeMessagef(err, "connection.application")
	}
	if cn.BlockedByLS, err = c.TakeU32BE(); err != nil {
		return cn, racerr.DecodeMessagef(err, "connection.blocked_by_ls")
	}
	if cn.ConnectedAt, err = c.TakeDateTime(); err != nil {
		return cn, racerr.DecodeMessagef(err, "connection.connected_at")
	}
	if cn.ConnID, err = c.TakeU32BE(); err != nil {
		return cn, racerr.DecodeMessagef(err, "connection.conn_id")
	}
	if cn.Host, err = c.TakeStr8(); err != nil {
		return cn, racerr.DecodeMessagef(err, "connection.host")
	}
	if cn.InfobaseID, err = c.TakeIdentifier(); err != nil {
		return cn, racerr.DecodeMessagef(err, "connection.infobase")
	}
	if cn.ProcessID, err = c.TakeIdentifier(); err != nil {
		return cn, racerr.DecodeMessagef(err, "connection.process")
	}
	if cn.SessionNumber, err = c.TakeU32BE(); err != nil {
		return cn, racerr.DecodeMessagef(err, "connection.session_number")
	}
	return cn, nil
}

// ConnectionListRequest lists every connection in a cluster.
type ConnectionListRequest struct {
	ClusterID wire.Identifier
}

func (ConnectionListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodConnectionListReq, MethodResp: methodConnectionListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ConnectionListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ConnectionListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ConnectionListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (ConnectionListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Connection, error) {
	return decodeConnectionList(body)
}

// ConnectionListByInfobaseRequest lists connections scoped to one
// infobase.
type ConnectionListByInfobaseRequest struct {
	ClusterID  wire.Identifier
	InfobaseID wire.Identifier
}

func (ConnectionListByInfobaseRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodConnectionListByInfobaseReq, MethodResp: methodConnectionListByInfobaseResp, HasMethodResp: true,
		RequiresClusterContext: true, RequiresInfobaseContext: true,
	}
}
func (r ConnectionListByInfobaseRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ConnectionListByInfobaseRequest) Infobase() (wire.Identifier, bool) { return r.InfobaseID, true }
func (r ConnectionListByInfobaseRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.InfobaseID)
	}), nil
}
func (ConnectionListByInfobaseRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Connection, error) {
	return decodeConnectionList(body)
}

func decodeConnectionList(body []byte) ([]Connection, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Connection, 0, n)
	for i := 0; i < n; i++ {
		cn, err := decodeConnection(c)
		if err != nil {
			return nil, err
		}
		out = append(out, cn)
	}
	return out, nil
}

// ConnectionInfoRequest fetches one connection's record.
type ConnectionInfoRequest struct {
	ClusterID    wire.Identifier
	ConnectionID wire.Identifier
}

func (ConnectionInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodConnectionInfoReq, MethodResp: methodConnectionInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ConnectionInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ConnectionInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ConnectionInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ConnectionID)
	}), nil
}
func (ConnectionInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Connection, error) {
	return decodeConnection(wire.NewCursor(body))
}

// ConnectionDisconnectRequest forcibly drops a connection.
type ConnectionDisconnectRequest struct {
	ClusterID    wire.Identifier
	ConnectionID wire.Identifier
}

func (ConnectionDisconnectRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodConnectionDisconnectReq, RequiresClusterContext: true}
}
func (r ConnectionDisconnectRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ConnectionDisconnectRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ConnectionDisconnectRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ConnectionID)
	}), nil
}
func (ConnectionDisconnectRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}
