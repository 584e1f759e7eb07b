package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

// Method ids for the manager family are ASSUMED (no defining constant
// was ever recovered) by following the ascending per-family
// convention; see DESIGN.md.
const (
	methodManagerListReq  uint8 = 0x21
	methodManagerListResp uint8 = 0x22
	methodManagerInfoReq  uint8 = 0x23
	methodManagerInfoResp uint8 = 0x24
)

// Manager is the cluster manager process record.
type Manager struct {
	ID    wire.Identifier
	Descr string
	Host  string
	Using bool // true when Using == 1 ("main")
	Port  uint16
	PID   uint32
}

func decodeManager(c *wire.Cursor) (Manager, error) {
	var m Manager
	var err error
	if m.ID, err = c.TakeIdentifier(); err != nil {
		return m, racerr.DecodeMessagef(err, "manager.id")
	}
	if m.Descr, err = c.TakeStr8(); err != nil {
		return m, racerr.DecodeMessagef(err, "manager.descr")
	}
	if m.Host, err = c.TakeStr8(); err != nil {
		return m, racerr.DecodeMessagef(err, "manager.host")
	}
	usingTag, err := c.TakeU8()
	if err != nil {
		return m, racerr.DecodeMessagef(err, "manager.using")
	}
	m.Using = usingTag == 1
	if m.Port, err = c.TakeU16BE(); err != nil {
		return m, racerr.DecodeMessagef(err, "manager.port")
	}
	if m.PID, err = c.TakeU32BE(); err != nil {
		return m, racerr.DecodeMessagef(err, "manager.pid")
	}
	return m, nil
}

// ManagerListRequest lists the managers in a cluster.
type ManagerListRequest struct {
	ClusterID wire.Identifier
}

func (ManagerListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodManagerListReq, MethodResp: methodManagerListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ManagerListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ManagerListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ManagerListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (ManagerListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Manager, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Manager, 0, n)
	for i := 0; i < n; i++ {
		m, err := decodeManager(c)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// ManagerInfoRequest fetches one manager's record.
type ManagerInfoRequest struct {
	ClusterID wire.Identifier
	ManagerID wire.Identifier
}

func (ManagerInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodManagerInfoReq, MethodResp: methodManagerInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ManagerInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ManagerInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ManagerInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ManagerID)
	}), nil
}
func (ManagerInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Manager, error) {
	return decodeManager(wire.NewCursor(body))
}
