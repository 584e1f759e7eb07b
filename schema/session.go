package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodSessionListReq                       uint8 = 0x41
	methodSessionListResp                       uint8 = 0x42
	methodSessionInfoReq                        uint8 = 0x45
	methodSessionInfoResp                       uint8 = 0x46
	methodSessionTerminateReq                   uint8 = 0x47
	methodSessionInterruptCurrentServerCallReq  uint8 = 0x75
)

// SessionLicense is the license entry attached to a Session record
// when one is present; decoded only when a preceding license-count
// byte is nonzero.
type SessionLicense struct {
	FileName           string
	FullPresentation   string
	IssuedByServer     bool
	LicenseType        uint32
	MaxUsersAll        uint32
	MaxUsersCurrent    uint32
	NetworkKey         bool
	ServerAddress      string
	ProcessID          string
	ServerPort         uint32
	KeySeries          string
	BriefPresentation  string
}

func decodeSessionLicense(c *wire.Cursor) (SessionLicense, error) {
	var l SessionLicense
	var err error
	if l.FileName, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.file_name")
	}
	if l.FullPresentation, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.full_presentation")
	}
	if l.IssuedByServer, err = c.TakeBool(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.issued_by_server")
	}
	if l.LicenseType, err = c.TakeU32BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.license_type")
	}
	if l.MaxUsersAll, err = c.TakeU32BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.max_users_all")
	}
	if l.MaxUsersCurrent, err = c.TakeU32BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.max_users_current")
	}
	if l.NetworkKey, err = c.TakeBool(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.network_key")
	}
	if l.ServerAddress, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.server_address")
	}
	if l.ProcessID, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.process_id")
	}
	if l.ServerPort, err = c.TakeU32BE(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.server_port")
	}
	if l.KeySeries, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.key_series")
	}
	if l.BriefPresentation, err = c.TakeStr8(); err != nil {
		return l, racerr.DecodeMessagef(err, "session_license.brief_presentation")
	}
	return l, nil
}

// Session is the deterministic decode of the session record, grounded
// byte-exact on the source's SessionRecord::decode. This module
// decodes sessions only via this fixed schema; the source's
// capture-time heuristic probing (RFC-4122 version-bit guessing,
// host/user shape detection) is out of scope.
type Session struct {
	ID                           wire.Identifier
	AppID                        string
	BlockedByDBMS                uint32
	BlockedByLS                  uint32
	BytesAll                     uint64
	BytesLast5Min                uint64
	CallsAll                     uint32
	CallsLast5Min                uint64
	ConnectionID                 wire.Identifier
	DBMSBytesAll                 uint64
	DBMSBytesLast5Min            uint64
	DBProcInfo                   string
	DBProcTook                   uint32
	DBProcTookAt                 string
	DurationAll                  uint32
	DurationAllDBMS              uint32
	DurationCurrent              uint32
	DurationCurrentDBMS          uint32
	DurationLast5Min             uint64
	DurationLast5MinDBMS         uint64
	Host                         string
	InfobaseID                   wire.Identifier
	LastActiveAt                 string
	Hibernate                    bool
	PassiveSessionHibernateTime  uint32
	HibernateSessionTerminateTime uint32
	License                      *SessionLicense
	Locale                       string
	ProcessID                    wire.Identifier
	SessionID                    uint32
	StartedAt                    string
	UserName                     string
	MemoryCurrent                uint64
	MemoryLast5Min               uint64
	MemoryTotal                  uint64
	ReadCurrent                  uint64
	ReadLast5Min                 uint64
	ReadTotal                    uint64
	WriteCurrent                 uint64
	WriteLast5Min                uint64
	WriteTotal                   uint64
	DurationCurrentService       uint32
	DurationLast5MinService      uint64
	DurationAllService           uint32
	CurrentServiceName           string
	CPUTimeCurrent               uint64
	CPUTimeLast5Min              uint64
	CPUTimeTotal                 uint64
	DataSeparation               string
	ClientIP                     string
}

func decodeSession(c *wire.Cursor) (Session, error) {
	var s Session
	var err error
	step := func(name string, fn func() error) bool {
		if err != nil {
			return false
		}
		if e := fn(); e != nil {
			err = racerr.DecodeMessagef(e, "session.%s", name)
			return false
		}
		return true
	}
	step("session", func() error { s.ID, err = c.TakeIdentifier(); return err })
	step("app_id", func() error { s.AppID, err = c.TakeStr8(); return err })
	step("blocked_by_dbms", func() error { s.BlockedByDBMS, err = c.TakeU32BE(); return err })
	step("blocked_by_ls", func() error { s.BlockedByLS, err = c.TakeU32BE(); return err })
	step("bytes_all", func() error { s.BytesAll, err = c.TakeU64BE(); return err })
	step("bytes_last_5min", func() error { s.BytesLast5Min, err = c.TakeU64BE(); return err })
	step("calls_all", func() error { s.CallsAll, err = c.TakeU32BE(); return err })
	step("calls_last_5min", func() error { s.CallsLast5Min, err = c.TakeU64BE(); return err })
	step("connection", func() error { s.ConnectionID, err = c.TakeIdentifier(); return err })
	step("dbms_bytes_all", func() error { s.DBMSBytesAll, err = c.TakeU64BE(); return err })
	step("dbms_bytes_last_5min", func() error { s.DBMSBytesLast5Min, err = c.TakeU64BE(); return err })
	step("db_proc_info", func() error { s.DBProcInfo, err = c.TakeStr8(); return err })
	step("db_proc_took", func() error { s.DBProcTook, err = c.TakeU32BE(); return err })
	step("db_proc_took_at", func() error { s.DBProcTookAt, err = c.TakeDateTime(); return err })
	step("duration_all", func() error { s.DurationAll, err = c.TakeU32BE(); return err })
	step("duration_all_dbms", func() error { s.DurationAllDBMS, err = c.TakeU32BE(); return err })
	step("duration_current", func() error { s.DurationCurrent, err = c.TakeU32BE(); return err })
	step("duration_current_dbms", func() error { s.DurationCurrentDBMS, err = c.TakeU32BE(); return err })
	step("duration_last_5min", func() error { s.DurationLast5Min, err = c.TakeU64BE(); return err })
	step("duration_last_5min_dbms", func() error { s.DurationLast5MinDBMS, err = c.TakeU64BE(); return err })
	step("host", func() error { s.Host, err = c.TakeStr8(); return err })
	step("infobase", func() error { s.InfobaseID, err = c.TakeIdentifier(); return err })
	step("last_active_at", func() error { s.LastActiveAt, err = c.TakeDateTime(); return err })
	step("hibernate", func() error { s.Hibernate, err = c.TakeBool(); return err })
	step("passive_session_hibernate_time", func() error { s.PassiveSessionHibernateTime, err = c.TakeU32BE(); return err })
	step("hibernate_session_terminate_time", func() error { s.HibernateSessionTerminateTime, err = c.TakeU32BE(); return err })
	if err == nil {
		count, cErr := c.TakeU8()
		if cErr != nil {
			err = racerr.DecodeMessagef(cErr, "session.license_count")
		} else if count != 0 {
			lic, lErr := decodeSessionLicense(c)
			if lErr != nil {
				err = lErr
			} else {
				s.License = &lic
			}
		}
	}
	step("locale", func() error { s.Locale, err = c.TakeStr8(); return err })
	step("process", func() error { s.ProcessID, err = c.TakeIdentifier(); return err })
	step("session_id", func() error { s.SessionID, err = c.TakeU32BE(); return err })
	step("started_at", func() error { s.StartedAt, err = c.TakeDateTime(); return err })
	step("user_name", func() error { s.UserName, err = c.TakeStr8(); return err })
	step("memory_current", func() error { s.MemoryCurrent, err = c.TakeU64BE(); return err })
	step("memory_last_5min", func() error { s.MemoryLast5Min, err = c.TakeU64BE(); return err })
	step("memory_total", func() error { s.MemoryTotal, err = c.TakeU64BE(); return err })
	step("read_current", func() error { s.ReadCurrent, err = c.TakeU64BE(); return err })
	step("read_last_5min", func() error { s.ReadLast5Min, err = c.TakeU64BE(); return err })
	step("read_total", func() error { s.ReadTotal, err = c.TakeU64BE(); return err })
	step("write_current", func() error { s.WriteCurrent, err = c.TakeU64BE(); return err })
	step("write_last_5min", func() error { s.WriteLast5Min, err = c.TakeU64BE(); return err })
	step("write_total", func() error { s.WriteTotal, err = c.TakeU64BE(); return err })
	step("duration_current_service", func() error { s.DurationCurrentService, err = c.TakeU32BE(); return err })
	step("duration_last_5min_service", func() error { s.DurationLast5MinService, err = c.TakeU64BE(); return err })
	step("duration_all_service", func() error { s.DurationAllService, err = c.TakeU32BE(); return err })
	step("current_service_name", func() error { s.CurrentServiceName, err = c.TakeStr8(); return err })
	step("cpu_time_current", func() error { s.CPUTimeCurrent, err = c.TakeU64BE(); return err })
	step("cpu_time_last_5min", func() error { s.CPUTimeLast5Min, err = c.TakeU64BE(); return err })
	step("cpu_time_total", func() error { s.CPUTimeTotal, err = c.TakeU64BE(); return err })
	step("data_separation", func() error { s.DataSeparation, err = c.TakeStr8(); return err })
	step("client_ip", func() error { s.ClientIP, err = c.TakeStr8(); return err })
	return s, err
}

// SessionListRequest lists every session in a cluster.
type SessionListRequest struct {
	ClusterID wire.Identifier
}

func (SessionListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodSessionListReq, MethodResp: methodSessionListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r SessionListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r SessionListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r SessionListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (SessionListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Session, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Session, 0, n)
	for i := 0; i < n; i++ {
		s, err := decodeSession(c)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SessionInfoRequest fetches one session's record.
type SessionInfoRequest struct {
	ClusterID wire.Identifier
	SessionID wire.Identifier
}

func (SessionInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodSessionInfoReq, MethodResp: methodSessionInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r SessionInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r SessionInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r SessionInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.SessionID)
	}), nil
}
func (SessionInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Session, error) {
	return decodeSession(wire.NewCursor(body))
}

// SessionTerminateRequest forcibly ends a session.
type SessionTerminateRequest struct {
	ClusterID wire.Identifier
	SessionID wire.Identifier
	Message   string
}

func (SessionTerminateRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodSessionTerminateReq, RequiresClusterContext: true}
}
func (r SessionTerminateRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r SessionTerminateRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r SessionTerminateRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.SessionID)
		e.PutStr8(r.Message)
	}), nil
}
func (SessionTerminateRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}

// SessionInterruptCurrentServerCallRequest interrupts the call the
// session is currently blocked on, without terminating the session.
type SessionInterruptCurrentServerCallRequest struct {
	ClusterID wire.Identifier
	SessionID wire.Identifier
}

func (SessionInterruptCurrentServerCallRequest) Meta() client.Meta {
	return client.Meta{MethodReq: methodSessionInterruptCurrentServerCallReq, RequiresClusterContext: true}
}
func (r SessionInterruptCurrentServerCallRequest) Cluster() (wire.Identifier, bool) {
	return r.ClusterID, true
}
func (r SessionInterruptCurrentServerCallRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r SessionInterruptCurrentServerCallRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.SessionID)
	}), nil
}
func (SessionInterruptCurrentServerCallRequest) DecodeResponse(body []byte, codec *protocol.Codec) (Ack, error) {
	return DecodeAck(body, codec)
}
