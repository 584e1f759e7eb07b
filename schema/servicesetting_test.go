package schema

import (
	"testing"

	"github.com/alkoleft/racclient/wire"
	"lukechampine.com/frand"
)

func TestServiceSettingInsertZeroesSettingSlotAndSharesMethodID(t *testing.T) {
	insert := ServiceSettingInsertRequest{}
	update := ServiceSettingUpdateRequest{}
	if insert.Meta().MethodReq != update.Meta().MethodReq || insert.Meta().MethodResp != update.Meta().MethodResp {
		t.Fatalf("insert/update must share a wire method id: insert=%+v update=%+v", insert.Meta(), update.Meta())
	}

	var cluster, server wire.Identifier
	frand.Read(cluster[:])
	frand.Read(server[:])

	req := ServiceSettingInsertRequest{
		ClusterID:      cluster,
		ServerID:       server,
		ServiceName:    "ras",
		InfobaseName:   "accounting",
		ServiceDataDir: "/var/1C/accounting",
		Active:         true,
	}
	body, err := req.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	c := wire.NewCursor(body)
	if _, err := c.TakeIdentifier(); err != nil { // cluster
		t.Fatalf("cluster: %v", err)
	}
	if _, err := c.TakeIdentifier(); err != nil { // server
		t.Fatalf("server: %v", err)
	}
	settingSlot, err := c.TakeIdentifier()
	if err != nil {
		t.Fatalf("setting slot: %v", err)
	}
	if !settingSlot.IsZero() {
		t.Fatalf("expected zeroed setting identifier slot on insert, got %x", settingSlot)
	}
}

func TestServiceSettingUpdatePopulatesSettingSlot(t *testing.T) {
	var cluster, server, setting wire.Identifier
	frand.Read(cluster[:])
	frand.Read(server[:])
	frand.Read(setting[:])

	req := ServiceSettingUpdateRequest{
		ClusterID:      cluster,
		ServerID:       server,
		SettingID:      setting,
		ServiceName:    "ras",
		InfobaseName:   "accounting",
		ServiceDataDir: "/var/1C/accounting",
		Active:         false,
	}
	body, err := req.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	c := wire.NewCursor(body)
	if _, err := c.TakeIdentifier(); err != nil { // cluster
		t.Fatalf("cluster: %v", err)
	}
	if _, err := c.TakeIdentifier(); err != nil { // server
		t.Fatalf("server: %v", err)
	}
	gotSetting, err := c.TakeIdentifier()
	if err != nil || gotSetting != setting {
		t.Fatalf("expected populated setting slot: want %x got %x err=%v", setting, gotSetting, err)
	}
	name, err := c.TakeStr8()
	if err != nil || name != "ras" {
		t.Fatalf("service name: %q %v", name, err)
	}
}

func TestDecodeServiceSettingActiveFlag(t *testing.T) {
	var id wire.Identifier
	frand.Read(id[:])

	e := wire.NewEncoder(64)
	e.PutIdentifier(id)
	e.PutStr8("ras")
	e.PutStr8("accounting")
	e.PutStr8("/var/1C/accounting")
	e.PutU16BE(1)

	s, err := decodeServiceSetting(wire.NewCursor(e.Bytes()))
	if err != nil {
		t.Fatalf("decodeServiceSetting: %v", err)
	}
	if !s.Active {
		t.Fatal("expected Active=true from nonzero u16 tag")
	}

	e2 := wire.NewEncoder(64)
	e2.PutIdentifier(id)
	e2.PutStr8("ras")
	e2.PutStr8("accounting")
	e2.PutStr8("/var/1C/accounting")
	e2.PutU16BE(0)

	s2, err := decodeServiceSetting(wire.NewCursor(e2.Bytes()))
	if err != nil {
		t.Fatalf("decodeServiceSetting: %v", err)
	}
	if s2.Active {
		t.Fatal("expected Active=false from zero u16 tag")
	}
}

// TestDecodeServiceSettingTransferDataDir exercises the non-str8,
// length-byte/flag-byte/raw-bytes encoding used for the two directory
// fields (see decodeServiceSettingTransferDataDir).
func TestDecodeServiceSettingTransferDataDir(t *testing.T) {
	e := wire.NewEncoder(64)
	e.PutStr8("ras")
	e.PutStr8("admin")
	source := "/var/1C/old"
	e.PutU8(uint8(len(source)))
	e.PutU8(1) // source dir flag
	e.PutBytes([]byte(source))
	target := "/var/1C/new"
	e.PutU8(uint8(len(target)))
	e.PutU8(0) // target dir flag
	e.PutBytes([]byte(target))

	got, err := decodeServiceSettingTransferDataDir(wire.NewCursor(e.Bytes()))
	if err != nil {
		t.Fatalf("decodeServiceSettingTransferDataDir: %v", err)
	}
	if got.ServiceName != "ras" || got.User != "admin" {
		t.Fatalf("unexpected header fields: %+v", got)
	}
	if got.SourceDirFlag != 1 || got.SourceDir != source {
		t.Fatalf("unexpected source dir: flag=%d dir=%q", got.SourceDirFlag, got.SourceDir)
	}
	if got.TargetDirFlag != 0 || got.TargetDir != target {
		t.Fatalf("unexpected target dir: flag=%d dir=%q", got.TargetDirFlag, got.TargetDir)
	}
}
