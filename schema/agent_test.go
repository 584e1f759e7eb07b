package schema

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/wire"
)

func TestAgentAuthRequestEncodeBodyLiteral(t *testing.T) {
	req := AgentAuthRequest{User: "admin", Password: "pass"}
	body, err := req.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	want, err := hex.DecodeString("0561646d696e0470617373")
	if err != nil {
		t.Fatalf("hex decode: %v", err)
	}
	if !bytes.Equal(body, want) {
		t.Fatalf("body mismatch: want % x got % x", want, body)
	}
}

func TestAgentAuthRequestMeta(t *testing.T) {
	req := AgentAuthRequest{}
	meta := req.Meta()
	if meta.MethodReq != methodAgentAuthReq {
		t.Fatalf("want method 0x%02x, got 0x%02x", methodAgentAuthReq, meta.MethodReq)
	}
	if meta.HasMethodResp {
		t.Fatal("agent auth expects an ack, not a method-tagged reply")
	}
}

func TestAgentAdminListRespDecode(t *testing.T) {
	e := wire.NewEncoder(64)
	e.PutU8(2)
	e.PutStr8("root")
	e.PutU8(1)
	e.PutU32BE(0xaabbccdd)
	e.PutBytes([]byte{1, 2, 3})
	e.PutStr8("second")
	e.PutU8(0)
	e.PutU32BE(0)
	e.PutBytes([]byte{0, 0, 0})

	req := AgentAdminListRequest{}
	resp, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if len(resp.Admins) != 2 {
		t.Fatalf("want 2 admins, got %d", len(resp.Admins))
	}
	if resp.Admins[0].Name != "root" || resp.Admins[0].UnknownTag != 1 || resp.Admins[0].UnknownFlags != 0xaabbccdd {
		t.Fatalf("unexpected admin[0]: %+v", resp.Admins[0])
	}
	if resp.Admins[1].Name != "second" {
		t.Fatalf("unexpected admin[1]: %+v", resp.Admins[1])
	}
}

func TestAgentAdminRegisterAndRemoveEncode(t *testing.T) {
	reg := AgentAdminRegisterRequest{Name: "alice", Password: "s3cret"}
	body, err := reg.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	c := wire.NewCursor(body)
	name, err := c.TakeStr8()
	if err != nil || name != "alice" {
		t.Fatalf("name: %q %v", name, err)
	}
	pass, err := c.TakeStr8()
	if err != nil || pass != "s3cret" {
		t.Fatalf("password: %q %v", pass, err)
	}

	rem := AgentAdminRemoveRequest{Name: "alice"}
	body, err = rem.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	c = wire.NewCursor(body)
	name, err = c.TakeStr8()
	if err != nil || name != "alice" {
		t.Fatalf("remove name: %q %v", name, err)
	}
}

func TestAgentVersionRequestDecode(t *testing.T) {
	e := wire.NewEncoder(8)
	e.PutStr8("8.3.24")
	req := AgentVersionRequest{}
	v, err := req.DecodeResponse(e.Bytes(), protocol.NewCodec(protocol.V16_0))
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if v != "8.3.24" {
		t.Fatalf("want 8.3.24, got %q", v)
	}
}
