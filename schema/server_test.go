package schema

import (
	"encoding/binary"
	"testing"

	"github.com/alkoleft/racclient/wire"
	"lukechampine.com/frand"
)

func putU16LE(e *wire.Encoder, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.PutBytes(b[:])
}

func writeServerRecord(e *wire.Encoder, id wire.Identifier) {
	e.PutIdentifier(id)
	e.PutStr8("cluster-host")
	putU16LE(e, 1540)
	e.PutStr8("central server")
	e.PutBool(true)
	e.PutBool(false)
	e.PutU64BE(2147483648)
	e.PutU32BE(500)
	putU16LE(e, 1541)
	e.PutU32BE(1000)
	putU16LE(e, 1560)
	putU16LE(e, 1591)
	e.PutU64BE(4294967296)
	e.PutU64BE(3221225472)
	e.PutU32BE(300)
	e.PutStr8("")
	e.PutStr8("")
}

func TestServerListRequestDecodeResponse(t *testing.T) {
	var id wire.Identifier
	frand.Read(id[:])

	e := wire.NewEncoder(256)
	e.PutU8(1)
	writeServerRecord(e, id)

	req := ServerListRequest{}
	servers, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if len(servers) != 1 {
		t.Fatalf("want 1 server, got %d", len(servers))
	}
	s := servers[0]
	if s.ID != id || s.AgentHost != "cluster-host" || s.AgentPort != 1540 || s.DisplayName != "central server" {
		t.Fatalf("unexpected server: %+v", s)
	}
	if !s.Enabled || s.DedicatedManagers {
		t.Fatalf("unexpected bool decode: Enabled=%v DedicatedManagers=%v", s.Enabled, s.DedicatedManagers)
	}
	if s.ClusterPort != 1541 || s.PortRangeStart != 1560 || s.PortRangeEnd != 1591 {
		t.Fatalf("unexpected little-endian port decode: %+v", s)
	}
}

func TestServerListRequestDistinguishesLittleEndianFromBigEndian(t *testing.T) {
	var id wire.Identifier
	frand.Read(id[:])

	e := wire.NewEncoder(256)
	e.PutU8(1)
	writeServerRecord(e, id)

	req := ServerListRequest{}
	servers, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	s := servers[0]
	// 1540 swapped byte-for-byte would read back as 0x0406 (1030) in BE.
	if s.AgentPort == 0x0406 {
		t.Fatalf("AgentPort decoded with wrong endianness: %d", s.AgentPort)
	}
	if s.InfobaseLimit != 500 || s.ConnectionLimit != 1000 {
		t.Fatalf("big-endian fields decoded incorrectly: %+v", s)
	}
}

func TestServerInfoRequestEncodeBody(t *testing.T) {
	var cluster, server wire.Identifier
	frand.Read(cluster[:])
	frand.Read(server[:])

	req := ServerInfoRequest{ClusterID: cluster, ServerID: server}
	body, err := req.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	c := wire.NewCursor(body)
	gotCluster, err := c.TakeIdentifier()
	if err != nil || gotCluster != cluster {
		t.Fatalf("cluster: %v %v", gotCluster, err)
	}
	gotServer, err := c.TakeIdentifier()
	if err != nil || gotServer != server {
		t.Fatalf("server: %v %v", gotServer, err)
	}
}
