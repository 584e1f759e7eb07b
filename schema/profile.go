package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodProfileListReq   uint8 = 0x59
	methodProfileListResp  uint8 = 0x5a
	methodProfileUpdateReq uint8 = 0x5b
)

// Profile is a security-profile record constraining what an infobase
// is allowed to do (file system, COM, add-ins, external modules,
// privileged mode, network, and cryptography access).
type Profile struct {
	Name                              string
	Descr                             string
	DirectoryAccess                   uint8
	COMAccess                         uint8
	AddinAccess                       uint8
	ModuleAccess                      uint8
	AppAccess                         uint8
	Config                            uint8
	PrivilegedMode                    uint8
	InetAccess                        uint8
	Crypto                            uint8
	RightExtension                    uint8
	RightExtensionDefinitionRoles     string
	AllModulesExtension               uint8
	ModulesAvailableForExtension      string
	ModulesNotAvailableForExtension   string
	PrivilegedModeRoles               string
}

func decodeProfile(c *wire.Cursor) (Profile, error) {
	var p Profile
	var err error
	if p.Name, err = c.TakeStr8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.name")
	}
	if p.Descr, err = c.TakeStr8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.descr")
	}
	if p.DirectoryAccess, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.directory_access")
	}
	if p.COMAccess, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.com_access")
	}
	if p.AddinAccess, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.addin_access")
	}
	if p.ModuleAccess, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.module_access")
	}
	if p.AppAccess, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.app_access")
	}
	if p.Config, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.config")
	}
	if p.PrivilegedMode, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.privileged_mode")
	}
	if p.InetAccess, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.inet_access")
	}
	if p.Crypto, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.crypto")
	}
	if p.RightExtension, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.right_extension")
	}
	if p.RightExtensionDefinitionRoles, err = c.TakeStr8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.right_extension_definition_roles")
	}
	if p.AllModulesExtension, err = c.TakeU8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.all_modules_extension")
	}
	if p.ModulesAvailableForExtension, err = c.TakeStr8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.modules_available_for_extension")
	}
	if p.ModulesNotAvailableForExtension, err = c.TakeStr8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.modules_not_available_for_extension")
	}
	if p.PrivilegedModeRoles, err = c.TakeStr8(); err != nil {
		return p, racerr.DecodeMessagef(err, "profile.privileged_mode_roles")
	}
	return p, nil
}

// ProfileListRequest lists the security profiles defined in a
// cluster.
type ProfileListRequest struct {
	ClusterID wire.Identifier
}

func (ProfileListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodProfileListReq, MethodResp: methodProfileListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ProfileListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ProfileListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ProfileListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (ProfileListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Profile, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Profile, 0, n)
	for i := 0; i < n; i++ {
		p, err := decodeProfile(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ProfileUpdateRequest creates or updates a security profile.
type ProfileUpdateRequest struct {
	ClusterID wire.Identifier
	Profile   Profile
}

func (ProfileUpdateRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodProfileUpdateReq, RequiresClusterContext: true}
}
func (r ProfileUpdateRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ProfileUpdateRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ProfileUpdateRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	p := r.Profile
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutStr8(p.Name)
		e.PutStr8(p.Descr)
		e.PutU8(p.DirectoryAccess)
		e.PutU8(p.COMAccess)
		e.PutU8(p.AddinAccess)
		e.PutU8(p.ModuleAccess)
		e.PutU8(p.AppAccess)
		e.PutU8(p.Config)
		e.PutU8(p.PrivilegedMode)
		e.PutU8(p.InetAccess)
		e.PutU8(p.Crypto)
		e.PutU8(p.RightExtension)
		e.PutStr8(p.RightExtensionDefinitionRoles)
		e.PutU8(p.AllModulesExtension)
		e.PutStr8(p.ModulesAvailableForExtension)
		e.PutStr8(p.ModulesNotAvailableForExtension)
		e.PutStr8(p.PrivilegedModeRoles)
	}), nil
}
func (ProfileUpdateRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}
