package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodServiceSettingInfoReq         uint8 = 0x89
	methodServiceSettingInfoResp        uint8 = 0x8a
	methodServiceSettingListReq         uint8 = 0x8b
	methodServiceSettingListResp        uint8 = 0x8c
	methodServiceSettingInsertOrUpdateReq  uint8 = 0x8d
	methodServiceSettingInsertOrUpdateResp uint8 = 0x8e
	methodServiceSettingRemoveReq       uint8 = 0x8f
	methodServiceSettingApplyReq        uint8 = 0x90
	methodServiceSettingGetDataDirsReq  uint8 = 0x91
	methodServiceSettingGetDataDirsResp uint8 = 0x92
)

// ServiceSetting binds a managed service to an infobase and data
// directory on a working server.
type ServiceSetting struct {
	ID             wire.Identifier
	ServiceName    string
	InfobaseName   string
	ServiceDataDir string
	Active         bool
}

func decodeServiceSetting(c *wire.Cursor) (ServiceSetting, error) {
	var s ServiceSetting
	var err error
	if s.ID, err = c.TakeIdentifier(); err != nil {
		return s, racerr.DecodeMessagef(err, "service_setting.id")
	}
	if s.ServiceName, err = c.TakeStr8(); err != nil {
		return s, racerr.DecodeMessagef(err, "service_setting.service_name")
	}
	if s.InfobaseName, err = c.TakeStr8(); err != nil {
		return s, racerr.DecodeMessagef(err, "service_setting.infobase_name")
	}
	if s.ServiceDataDir, err = c.TakeStr8(); err != nil {
		return s, racerr.DecodeMessagef(err, "service_setting.service_data_dir")
	}
	activeTag, err := c.TakeU16BE()
	if err != nil {
		return s, racerr.DecodeMessagef(err, "service_setting.active")
	}
	s.Active = activeTag != 0
	return s, nil
}

// ServiceSettingTransferDataDir is a reported data-directory transfer
// target from a GetDataDirs query.
type ServiceSettingTransferDataDir struct {
	ServiceName   string
	User          string
	SourceDirFlag uint8
	SourceDir     string
	TargetDirFlag uint8
	TargetDir     string
}

func decodeServiceSettingTransferDataDir(c *wire.Cursor) (ServiceSettingTransferDataDir, error) {
	var t ServiceSettingTransferDataDir
	var err error
	if t.ServiceName, err = c.TakeStr8(); err != nil {
		return t, racerr.DecodeMessagef(err, "transfer_data_dir.service_name")
	}
	if t.User, err = c.TakeStr8(); err != nil {
		return t, racerr.DecodeMessagef(err, "transfer_data_dir.user")
	}
	sourceLen, err := c.TakeU8()
	if err != nil {
		return t, racerr.DecodeMessagef(err, "transfer_data_dir.source_dir_len")
	}
	if t.SourceDirFlag, err = c.TakeU8(); err != nil {
		return t, racerr.DecodeMessagef(err, "transfer_data_dir.source_dir_flag")
	}
	sourceBytes, err := c.TakeBytes(int(sourceLen))
	if err != nil {
		return t, racerr.DecodeMessagef(err, "transfer_data_dir.source_dir")
	}
	t.SourceDir = string(sourceBytes)
	targetLen, err := c.TakeU8()
	if err != nil {
		return t, racerr.DecodeMessagef(err, "transfer_data_dir.target_dir_len")
	}
	if t.TargetDirFlag, err = c.TakeU8(); err != nil {
		return t, racerr.DecodeMessagef(err, "transfer_data_dir.target_dir_flag")
	}
	targetBytes, err := c.TakeBytes(int(targetLen))
	if err != nil {
		return t, racerr.DecodeMessagef(err, "transfer_data_dir.target_dir")
	}
	t.TargetDir = string(targetBytes)
	return t, nil
}

// ServiceSettingListRequest lists the service settings bound on a
// working server.
type ServiceSettingListRequest struct {
	ClusterID wire.Identifier
	ServerID  wire.Identifier
}

func (ServiceSettingListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodServiceSettingListReq, MethodResp: methodServiceSettingListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ServiceSettingListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ServiceSettingListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ServiceSettingListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
	}), nil
}
func (ServiceSettingListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]ServiceSetting, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceSetting, 0, n)
	for i := 0; i < n; i++ {
		s, err := decodeServiceSetting(c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ServiceSettingInfoRequest fetches one service setting's record.
type ServiceSettingInfoRequest struct {
	ClusterID wire.Identifier
	ServerID  wire.Identifier
	SettingID wire.Identifier
}

func (ServiceSettingInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodServiceSettingInfoReq, MethodResp: methodServiceSettingInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ServiceSettingInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ServiceSettingInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ServiceSettingInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
		e.PutIdentifier(r.SettingID)
	}), nil
}
func (ServiceSettingInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (ServiceSetting, error) {
	return decodeServiceSetting(wire.NewCursor(body))
}

// ServiceSettingInsertRequest binds a new service setting. The wire
// setting-identifier slot is zeroed, matching the source's convention
// of reusing the insert/update method id and distinguishing by the
// populated identifier.
type ServiceSettingInsertRequest struct {
	ClusterID      wire.Identifier
	ServerID       wire.Identifier
	ServiceName    string
	InfobaseName   string
	ServiceDataDir string
	Active         bool
}

func (ServiceSettingInsertRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodServiceSettingInsertOrUpdateReq, MethodResp: methodServiceSettingInsertOrUpdateResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ServiceSettingInsertRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ServiceSettingInsertRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ServiceSettingInsertRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
		e.PutIdentifier(wire.Identifier{})
		e.PutStr8(r.ServiceName)
		e.PutStr8(r.InfobaseName)
		e.PutStr8(r.ServiceDataDir)
		if r.Active {
			e.PutU16BE(1)
		} else {
			e.PutU16BE(0)
		}
	}), nil
}
func (ServiceSettingInsertRequest) DecodeResponse(body []byte, _ *protocol.Codec) (wire.Identifier, error) {
	return wire.NewCursor(body).TakeIdentifier()
}

// ServiceSettingUpdateRequest edits an existing service setting,
// reusing ServiceSettingInsertRequest's wire method id.
type ServiceSettingUpdateRequest struct {
	ClusterID      wire.Identifier
	ServerID       wire.Identifier
	SettingID      wire.Identifier
	ServiceName    string
	InfobaseName   string
	ServiceDataDir string
	Active         bool
}

func (ServiceSettingUpdateRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodServiceSettingInsertOrUpdateReq, MethodResp: methodServiceSettingInsertOrUpdateResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ServiceSettingUpdateRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ServiceSettingUpdateRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ServiceSettingUpdateRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
		e.PutIdentifier(r.SettingID)
		e.PutStr8(r.ServiceName)
		e.PutStr8(r.InfobaseName)
		e.PutStr8(r.ServiceDataDir)
		if r.Active {
			e.PutU16BE(1)
		} else {
			e.PutU16BE(0)
		}
	}), nil
}
func (ServiceSettingUpdateRequest) DecodeResponse(body []byte, _ *protocol.Codec) (wire.Identifier, error) {
	return wire.NewCursor(body).TakeIdentifier()
}

// ServiceSettingRemoveRequest deletes a service setting.
type ServiceSettingRemoveRequest struct {
	ClusterID wire.Identifier
	ServerID  wire.Identifier
	SettingID wire.Identifier
}

func (ServiceSettingRemoveRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodServiceSettingRemoveReq, RequiresClusterContext: true}
}
func (r ServiceSettingRemoveRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ServiceSettingRemoveRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ServiceSettingRemoveRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
		e.PutIdentifier(r.SettingID)
	}), nil
}
func (ServiceSettingRemoveRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// ServiceSettingApplyRequest commits pending service-setting edits on
// a working server.
type ServiceSettingApplyRequest struct {
	ClusterID wire.Identifier
	ServerID  wire.Identifier
}

func (ServiceSettingApplyRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodServiceSettingApplyReq, RequiresClusterContext: true}
}
func (r ServiceSettingApplyRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ServiceSettingApplyRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ServiceSettingApplyRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
	}), nil
}
func (ServiceSettingApplyRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// ServiceSettingGetDataDirsRequest reports where a service's data
// would be relocated if applied.
type ServiceSettingGetDataDirsRequest struct {
	ClusterID   wire.Identifier
	ServerID    wire.Identifier
	ServiceName string
}

func (ServiceSettingGetDataDirsRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodServiceSettingGetDataDirsReq, MethodResp: methodServiceSettingGetDataDirsResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ServiceSettingGetDataDirsRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ServiceSettingGetDataDirsRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ServiceSettingGetDataDirsRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ServerID)
		e.PutStr8(r.ServiceName)
	}), nil
}
func (ServiceSettingGetDataDirsRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]ServiceSettingTransferDataDir, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]ServiceSettingTransferDataDir, 0, n)
	for i := 0; i < n; i++ {
		t, err := decodeServiceSettingTransferDataDir(c)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
