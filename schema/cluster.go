package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

// Method ids for the cluster family have no recovered defining
// constant (only symbolic names were recovered). These numeric values
// are ASSUMED by following the ascending per-family numbering
// convention observed everywhere else (Server begins at 0x16 right
// after this block); see DESIGN.md.
const (
	methodClusterAdminListReq     uint8 = 0x10
	methodClusterAdminListResp    uint8 = 0x11
	methodClusterAdminRegisterReq uint8 = 0x12
	methodClusterListReq          uint8 = 0x13
	methodClusterListResp         uint8 = 0x14
	methodClusterInfoReq          uint8 = 0x15
	methodClusterInfoResp         uint8 = 0x15
)

const clusterRecordTailSize = 32

// Cluster is the deterministic decode of the cluster record shared by
// ClusterList and ClusterInfo, grounded byte-exact on the source's
// ClusterRecord::decode: identifier, expiration timeout, host, an
// unknown u32, port, an unknown u64, display name, then a fixed
// 32-byte trailer the source never interprets and this module
// likewise discards.
type Cluster struct {
	ID                wire.Identifier
	Host              string
	Port              uint16
	ExpirationTimeout uint32
	DisplayName       string
}

func decodeCluster(c *wire.Cursor) (Cluster, error) {
	var cl Cluster
	var err error
	if cl.ID, err = c.TakeIdentifier(); err != nil {
		return cl, racerr.DecodeMessagef(err, "cluster.id")
	}
	if cl.ExpirationTimeout, err = c.TakeU32BE(); err != nil {
		return cl, racerr.DecodeMessagef(err, "cluster.expiration_timeout")
	}
	if cl.Host, err = c.TakeStr8(); err != nil {
		return cl, racerr.DecodeMessagef(err, "cluster.host")
	}
	if _, err = c.TakeU32BE(); err != nil { // unknown, discarded
		return cl, racerr.DecodeMessagef(err, "cluster.__unknown_u32")
	}
	if cl.Port, err = c.TakeU16BE(); err != nil {
		return cl, racerr.DecodeMessagef(err, "cluster.port")
	}
	if _, err = c.TakeU64BE(); err != nil { // unknown, discarded
		return cl, racerr.DecodeMessagef(err, "cluster.__unknown_u64")
	}
	if cl.DisplayName, err = c.TakeStr8(); err != nil {
		return cl, racerr.DecodeMessagef(err, "cluster.display_name")
	}
	if _, err = c.TakeBytes(clusterRecordTailSize); err != nil {
		return cl, racerr.DecodeMessagef(err, "cluster.__tail")
	}
	return cl, nil
}

// ClusterAdminListRequest lists administrators registered for a
// specific cluster.
type ClusterAdminListRequest struct {
	ClusterID wire.Identifier
}

func (ClusterAdminListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodClusterAdminListReq, MethodResp: methodClusterAdminListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ClusterAdminListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ClusterAdminListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ClusterAdminListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (r ClusterAdminListRequest) DecodeResponse(body []byte, _ *protocol.Codec) (AgentAdminListResp, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return AgentAdminListResp{}, err
	}
	out := AgentAdminListResp{Admins: make([]AgentAdmin, 0, n)}
	for i := 0; i < n; i++ {
		a, err := decodeAgentAdmin(c)
		if err != nil {
			return AgentAdminListResp{}, err
		}
		out.Admins = append(out.Admins, a)
	}
	return out, nil
}

// ClusterListRequest lists every cluster known to the agent.
type ClusterListRequest struct{}

func (ClusterListRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodClusterListReq, MethodResp: methodClusterListResp, HasMethodResp: true}
}
func (ClusterListRequest) Cluster() (wire.Identifier, bool)  { return noCluster() }
func (ClusterListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (ClusterListRequest) EncodeBody(*protocol.Codec) ([]byte, error) { return nil, nil }
func (ClusterListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Cluster, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Cluster, 0, n)
	for i := 0; i < n; i++ {
		cl, err := decodeCluster(c)
		if err != nil {
			return nil, err
		}
		out = append(out, cl)
	}
	return out, nil
}

// ClusterInfoRequest fetches one cluster's record by identifier. It is
// not cluster-context-scoped itself (the identifier is the request
// payload, not a latch requirement) per the source's cluster_info.
type ClusterInfoRequest struct {
	ClusterID wire.Identifier
}

func (ClusterInfoRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodClusterInfoReq, MethodResp: methodClusterInfoResp, HasMethodResp: true}
}
func (ClusterInfoRequest) Cluster() (wire.Identifier, bool)  { return noCluster() }
func (ClusterInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ClusterInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	e := wire.NewEncoder(16)
	e.PutIdentifier(r.ClusterID)
	return e.Bytes(), nil
}
func (ClusterInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Cluster, error) {
	return decodeCluster(wire.NewCursor(body))
}

// ClusterAdminRegisterRequest registers a new administrator for the
// given cluster.
type ClusterAdminRegisterRequest struct {
	ClusterID wire.Identifier
	Name      string
	Descr     string
	Password  string
	AuthFlags uint8
}

func (ClusterAdminRegisterRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodClusterAdminRegisterReq, RequiresClusterContext: true}
}
func (r ClusterAdminRegisterRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ClusterAdminRegisterRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ClusterAdminRegisterRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(r.Name)
		e.PutStr8(r.Descr)
		e.PutStr8(r.Password)
		e.PutU8(r.AuthFlags)
	}), nil
}
func (ClusterAdminRegisterRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}
