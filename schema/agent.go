package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodAgentAdminListReq      uint8 = 0x00
	methodAgentAdminListResp     uint8 = 0x01
	methodAgentAdminRegisterReq  uint8 = 0x04
	methodAgentAdminRemoveReq    uint8 = 0x06
	methodAgentAuthReq           uint8 = 0x08
	methodAgentVersionReq        uint8 = 0x87
	methodAgentVersionResp       uint8 = 0x88
)

// AgentAdmin mirrors the source ClusterAdminRecord/AgentAdminRecord
// shape: a name plus three fields whose purpose was never confirmed
// against a server reference and are carried through verbatim.
type AgentAdmin struct {
	Name         string
	UnknownTag   uint8
	UnknownFlags uint32
	UnknownTail  [3]byte
}

func decodeAgentAdmin(c *wire.Cursor) (AgentAdmin, error) {
	var a AgentAdmin
	var err error
	if a.Name, err = c.TakeStr8(); err != nil {
		return a, racerr.DecodeMessagef(err, "agent_admin.name")
	}
	if a.UnknownTag, err = c.TakeU8(); err != nil {
		return a, racerr.DecodeMessagef(err, "agent_admin.unknown_tag")
	}
	if a.UnknownFlags, err = c.TakeU32BE(); err != nil {
		return a, racerr.DecodeMessagef(err, "agent_admin.unknown_flags")
	}
	tail, err := c.TakeBytes(3)
	if err != nil {
		return a, racerr.DecodeMessagef(err, "agent_admin.unknown_tail")
	}
	copy(a.UnknownTail[:], tail)
	return a, nil
}

// AgentAdminListResp is the decoded reply to AgentAdminListRequest.
type AgentAdminListResp struct {
	Admins []AgentAdmin
}

// AgentAdminListRequest lists the administrators registered on the
// agent itself (not scoped to any cluster).
type AgentAdminListRequest struct{}

func (AgentAdminListRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodAgentAdminListReq, MethodResp: methodAgentAdminListResp, HasMethodResp: true}
}
func (AgentAdminListRequest) Cluster() (wire.Identifier, bool)  { return noCluster() }
func (AgentAdminListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (AgentAdminListRequest) EncodeBody(*protocol.Codec) ([]byte, error) { return nil, nil }
func (AgentAdminListRequest) DecodeResponse(body []byte, _ *protocol.Codec) (AgentAdminListResp, error) {
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

// AgentAuthRequest authenticates against the agent with a
// username/password pair; succeeds with an acknowledgement.
type AgentAuthRequest struct {
	User     string
	Password string
}

func (AgentAuthRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodAgentAuthReq}
}
func (AgentAuthRequest) Cluster() (wire.Identifier, bool)  { return noCluster() }
func (AgentAuthRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r AgentAuthRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	e := wire.NewEncoder(2 + len(r.User) + len(r.Password))
	e.PutStr8(r.User)
	e.PutStr8(r.Password)
	return e.Bytes(), nil
}
func (AgentAuthRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// AgentVersionRequest asks the agent for its version string.
type AgentVersionRequest struct{}

func (AgentVersionRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodAgentVersionReq, MethodResp: methodAgentVersionResp, HasMethodResp: true}
}
func (AgentVersionRequest) Cluster() (wire.Identifier, bool)  { return noCluster() }
func (AgentVersionRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (AgentVersionRequest) EncodeBody(*protocol.Codec) ([]byte, error) { return nil, nil }
func (AgentVersionRequest) DecodeResponse(body []byte, _ *protocol.Codec) (string, error) {
	c := wire.NewCursor(body)
	v, err := c.TakeStr8()
	if err != nil {
		return "", racerr.DecodeMessagef(err, "agent_version")
	}
	return v, nil
}

// AgentAdminRegisterRequest registers a new agent administrator.
type AgentAdminRegisterRequest struct {
	Name     string
	Password string
}

func (AgentAdminRegisterRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodAgentAdminRegisterReq}
}
func (AgentAdminRegisterRequest) Cluster() (wire.Identifier, bool)  { return noCluster() }
func (AgentAdminRegisterRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r AgentAdminRegisterRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	e := wire.NewEncoder(2 + len(r.Name) + len(r.Password))
	e.PutStr8(r.Name)
	e.PutStr8(r.Password)
	return e.Bytes(), nil
}
func (AgentAdminRegisterRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// AgentAdminRemoveRequest removes an agent administrator by name.
type AgentAdminRemoveRequest struct {
	Name string
}

func (AgentAdminRemoveRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodAgentAdminRemoveReq}
}
func (AgentAdminRemoveRequest) Cluster() (wire.Identifier, bool)  { return noCluster() }
func (AgentAdminRemoveRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r AgentAdminRemoveRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	e := wire.NewEncoder(1 + len(r.Name))
	e.PutStr8(r.Name)
	return e.Bytes(), nil
}
func (AgentAdminRemoveRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}
