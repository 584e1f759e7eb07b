package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodServerListReq  uint8 = 0x16
	methodServerListResp uint8 = 0x17
	methodServerInfoReq  uint8 = 0x18
	methodServerInfoResp uint8 = 0x19
)

// Server is the working-server record. Endianness is mixed:
// AgentPort, ClusterPort, and the port-range bounds are little-endian
// while every other integer field is big-endian, a documented
// per-field property rather than a cursor default.
type Server struct {
	ID                         wire.Identifier
	AgentHost                  string
	AgentPort                  uint16
	DisplayName                string
	Enabled                    bool
	DedicatedManagers          bool
	SafeCallMemoryLimit        uint64
	InfobaseLimit              uint32
	ClusterPort                uint16
	ConnectionLimit            uint32
	PortRangeStart             uint16
	PortRangeEnd               uint16
	CriticalTotalMemory        uint64
	TempAllowedTotalMemory     uint64
	TempAllowedTotalMemoryTime uint32
	ServicePrincipalName       string
	RestartSchedule            string
}

func decodeServer(c *wire.Cursor) (Server, error) {
	var s Server
	var err error
	if s.ID, err = c.TakeIdentifier(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.id")
	}
	if s.AgentHost, err = c.TakeStr8(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.agent_host")
	}
	if s.AgentPort, err = c.TakeU16LE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.agent_port")
	}
	if s.DisplayName, err = c.TakeStr8(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.display_name")
	}
	if s.Enabled, err = c.TakeBool(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.enabled")
	}
	if s.DedicatedManagers, err = c.TakeBool(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.dedicated_managers")
	}
	if s.SafeCallMemoryLimit, err = c.TakeU64BE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.safe_call_memory_limit")
	}
	if s.InfobaseLimit, err = c.TakeU32BE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.infobase_limit")
	}
	if s.ClusterPort, err = c.TakeU16LE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.cluster_port")
	}
	if s.ConnectionLimit, err = c.TakeU32BE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.connection_limit")
	}
	if s.PortRangeStart, err = c.TakeU16LE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.port_range_start")
	}
	if s.PortRangeEnd, err = c.TakeU16LE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.port_range_end")
	}
	if s.CriticalTotalMemory, err = c.TakeU64BE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.critical_total_memory")
	}
	if s.TempAllowedTotalMemory, err = c.TakeU64BE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.temp_allowed_total_memory")
	}
	if s.TempAllowedTotalMemoryTime, err = c.TakeU32BE(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.temp_allowed_total_memory_time")
	}
	if s.ServicePrincipalName, err = c.TakeStr8(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.service_principal_name")
	}
	if s.RestartSchedule, err = c.TakeStr8(); err != nil {
		return s, racerr.DecodeMessagef(err, "server.restart_schedule")
	}
	return s, nil
}

// ServerListRequest lists the working servers in a cluster.
type ServerListRequest struct {
	ClusterID wire.Identifier
}

func (ServerListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodServerListReq, MethodResp: methodServerListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ServerListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ServerListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ServerListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (ServerListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Server, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Server, 0, n)
	for i := 0; i < n; i++ {
		s, err := decodeServer(c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ServerInfoRequest fetches one working server's record.
type ServerInfoRequest struct {
	ClusterID wire.Identifier
	ServerID  wire.Identifier
}

func (ServerInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodServerInfoReq, MethodResp: methodServerInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ServerInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ServerInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ServerInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
	}), nil
}
func (ServerInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Server, error) {
	return decodeServer(wire.NewCursor(body))
}
