package wire

import (
	"testing"

	"lukechampine.com/frand"
)

func TestCursorEncoderRoundTrip(t *testing.T) {
	var id Identifier
	frand.Read(id[:])

	e := NewEncoder(64)
	e.PutU8(0x42)
	e.PutBool(true)
	e.PutU16BE(0xbeef)
	e.PutU32BE(0xdeadbeef)
	e.PutU64BE(0x0102030405060708)
	e.PutIdentifier(id)
	e.PutStr8("hello")
	e.PutZero(2)

	c := NewCursor(e.Bytes())
	if v, err := c.TakeU8(); err != nil || v != 0x42 {
		t.Fatalf("TakeU8: %v %v", v, err)
	}
	if v, err := c.TakeBool(); err != nil || v != true {
		t.Fatalf("TakeBool: %v %v", v, err)
	}
	if v, err := c.TakeU16BE(); err != nil || v != 0xbeef {
		t.Fatalf("TakeU16BE: %v %v", v, err)
	}
	if v, err := c.TakeU32BE(); err != nil || v != 0xdeadbeef {
		t.Fatalf("TakeU32BE: %v %v", v, err)
	}
	if v, err := c.TakeU64BE(); err != nil || v != 0x0102030405060708 {
		t.Fatalf("TakeU64BE: %v %v", v, err)
	}
	if v, err := c.TakeIdentifier(); err != nil || !v.Equal(id) {
		t.Fatalf("TakeIdentifier: %v %v", v, err)
	}
	if v, err := c.TakeStr8(); err != nil || v != "hello" {
		t.Fatalf("TakeStr8: %v %v", v, err)
	}
	if _, err := c.TakeBytes(2); err != nil {
		t.Fatalf("TakeBytes(padding): %v", err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("expected cursor fully consumed, %d bytes remain", c.Remaining())
	}
}

func TestCursorTruncated(t *testing.T) {
	c := NewCursor([]byte{0x01})
	if _, err := c.TakeU32BE(); err == nil {
		t.Fatal("expected truncation error")
	}
}

func TestCursorStr8OptShortLength(t *testing.T) {
	// length byte below the marker: a bare str8 "xy".
	buf := []byte{0x02, 'x', 'y'}
	c := NewCursor(buf)
	s, err := c.TakeStr8Opt()
	if err != nil {
		t.Fatalf("TakeStr8Opt: %v", err)
	}
	if s != "xy" {
		t.Fatalf("want xy, got %q", s)
	}
}

func TestCursorStr8OptWideLength(t *testing.T) {
	// marker byte 0x2c, then a real length byte, then that many bytes.
	s := "this description happens to run longer than a single length byte can hold on its own"
	buf := append([]byte{str8OptMarker, byte(len(s))}, []byte(s)...)
	c := NewCursor(buf)
	got, err := c.TakeStr8Opt()
	if err != nil {
		t.Fatalf("TakeStr8Opt: %v", err)
	}
	if got != s {
		t.Fatalf("want %q, got %q", s, got)
	}
}

func TestCursorI32BEOptAbsent(t *testing.T) {
	c := NewCursor([]byte{0x00})
	v, present, err := c.TakeI32BEOpt()
	if err != nil {
		t.Fatalf("TakeI32BEOpt: %v", err)
	}
	if present || v != 0 {
		t.Fatalf("expected absent zero value, got %d present=%v", v, present)
	}
}

func TestCursorI32BEOptPresent(t *testing.T) {
	buf := []byte{0x01, 0x00, 0x00, 0x00, 0x2a}
	c := NewCursor(buf)
	v, present, err := c.TakeI32BEOpt()
	if err != nil {
		t.Fatalf("TakeI32BEOpt: %v", err)
	}
	if !present || v != 42 {
		t.Fatalf("expected present 42, got %d present=%v", v, present)
	}
}
