package schema

import (
	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
)

const (
	methodProcessListReq  uint8 = 0x1d
	methodProcessListResp uint8 = 0x1e
	methodProcessInfoReq  uint8 = 0x1f
	methodProcessInfoResp uint8 = 0x20
)

// ProcessLicense is one entry in a process record's license list.
type ProcessLicense struct {
	Name string
}

// Process is the working-process record.
type Process struct {
	ID                  wire.Identifier
	AvgCallTime         float64
	AvgDBCallTime       float64
	AvgLockCallTime      float64
	AvgServerCallTime   float64
	AvgThreads          float64
	Capacity            uint32
	Connections         uint32
	Host                string
	Licenses            []ProcessLicense
	Port                uint16
	MemorySize          uint64
	MemoryExcessTime    uint32
	PID                 uint32
	Use                 bool
	SelectionSize       uint32
	StartedAt           string
	Running             bool
	AvailablePerformance uint32
	Reserve             bool
}

func decodeProcess(c *wire.Cursor) (Process, error) {
	var p Process
	var err error
	if p.ID, err = c.TakeIdentifier(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.id")
	}
	if p.AvgCallTime, err = c.TakeF64BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.avg_call_time")
	}
	if p.AvgDBCallTime, err = c.TakeF64BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.avg_db_call_time")
	}
	if p.AvgLockCallTime, err = c.TakeF64BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.avg_lock_call_time")
	}
	if p.AvgServerCallTime, err = c.TakeF64BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.avg_server_call_time")
	}
	if p.AvgThreads, err = c.TakeF64BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.avg_threads")
	}
	if p.Capacity, err = c.TakeU32BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.capacity")
	}
	if p.Connections, err = c.TakeU32BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.connections")
	}
	if p.Host, err = c.TakeStr8(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.host")
	}
	licenseCount, err := c.TakeU8()
	if err != nil {
		return p, racerr.DecodeMessagef(err, "process.license_count")
	}
	p.Licenses = make([]ProcessLicense, 0, licenseCount)
	for i := 0; i < int(licenseCount); i++ {
		name, err := c.TakeStr8()
		if err != nil {
			return p, racerr.DecodeMessagef(err, "process.license.name")
		}
		p.Licenses = append(p.Licenses, ProcessLicense{Name: name})
	}
	if p.Port, err = c.TakeU16BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.port")
	}
	if p.MemorySize, err = c.TakeU64BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.memory_size")
	}
	if p.MemoryExcessTime, err = c.TakeU32BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.memory_excess_time")
	}
	if p.PID, err = c.TakeU32BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.pid")
	}
	if p.Use, err = c.TakeBool(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.use")
	}
	if p.SelectionSize, err = c.TakeU32BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.selection_size")
	}
	if p.StartedAt, err = c.TakeDateTime(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.started_at")
	}
	if p.Running, err = c.TakeBool(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.running")
	}
	if p.AvailablePerformance, err = c.TakeU32BE(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.available_performance")
	}
	if p.Reserve, err = c.TakeBool(); err != nil {
		return p, racerr.DecodeMessagef(err, "process.reserve")
	}
	return p, nil
}

// ProcessListRequest lists the working processes in a cluster.
type ProcessListRequest struct {
	ClusterID wire.Identifier
}

func (ProcessListRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodProcessListReq, MethodResp: methodProcessListResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ProcessListRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ProcessListRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ProcessListRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, nil), nil
}
func (ProcessListRequest) DecodeResponse(body []byte, _ *protocol.Codec) ([]Process, error) {
	c := wire.NewCursor(body)
	n, err := decodeCount(c)
	if err != nil {
		return nil, err
	}
	out := make([]Process, 0, n)
	for i := 0; i < n; i++ {
		p, err := decodeProcess(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// ProcessInfoRequest fetches one working process's record.
type ProcessInfoRequest struct {
	ClusterID wire.Identifier
	ProcessID wire.Identifier
}

func (ProcessInfoRequest) Meta() client.Meta {
	return client.Meta{
		MethodReq: methodProcessInfoReq, MethodResp: methodProcessInfoResp, HasMethodResp: true,
		RequiresClusterContext: true,
	}
}
func (r ProcessInfoRequest) Cluster() (wire.Identifier, bool)  { return r.ClusterID, true }
func (r ProcessInfoRequest) Infobase() (wire.Identifier, bool) { return noInfobase() }
func (r ProcessInfoRequest) EncodeBody(*protocol.Codec) ([]byte, error) {
	return clusterScopedEncode(r.ClusterID, func(e *wire.Encoder) {
		e.PutIdentifier(r.ProcessID)
	}), nil
}
func (ProcessInfoRequest) DecodeResponse(body []byte, _ *protocol.Codec) (Process, error) {
	return decodeProcess(wire.NewCursor(body))
}
