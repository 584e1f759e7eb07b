package schema

import (
	"testing"

	"github.com/alkoleft/racclient/wire"
	"lukechampine.com/frand"
)

func TestLockListRequestMetaRequiresBothContexts(t *testing.T) {
	req := LockListRequest{}
	meta := req.Meta()
	if !meta.RequiresClusterContext || !meta.RequiresInfobaseContext {
		t.Fatalf("lock list must require both cluster and infobase context, got %+v", meta)
	}
}

func TestLockListRequestEncodeBody(t *testing.T) {
	var cluster, infobase wire.Identifier
	frand.Read(cluster[:])
	frand.Read(infobase[:])

	req := LockListRequest{ClusterID: cluster, InfobaseID: infobase}
	body, err := req.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	c := wire.NewCursor(body)
	gotCluster, err := c.TakeIdentifier()
	if err != nil || gotCluster != cluster {
		t.Fatalf("cluster: %v %v", gotCluster, err)
	}
	gotInfobase, err := c.TakeIdentifier()
	if err != nil || gotInfobase != infobase {
		t.Fatalf("infobase: %v %v", gotInfobase, err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("expected full consumption, %d bytes remain", c.Remaining())
	}
}

// appendLockRecordNoFlag writes one lock record in connection -> descr
// -> locked_at -> session -> object order, with a plain (no
// disambiguation byte) description.
func appendLockRecordNoFlag(e *wire.Encoder, conn wire.Identifier, descr string, lockedAt uint64, session, object wire.Identifier) {
	e.PutIdentifier(conn)
	e.PutU8(uint8(len(descr)))
	e.PutBytes([]byte(descr))
	e.PutU64BE(lockedAt)
	e.PutIdentifier(session)
	e.PutIdentifier(object)
}

// appendLockRecordWithFlag writes one lock record whose description is
// prefixed with an explicit disambiguation byte, mirroring a
// description that happens to start with 0x01.
func appendLockRecordWithFlag(e *wire.Encoder, conn wire.Identifier, flag byte, descr string, lockedAt uint64, session, object wire.Identifier) {
	e.PutIdentifier(conn)
	e.PutU8(uint8(len(descr)))
	e.PutU8(flag)
	e.PutBytes([]byte(descr))
	e.PutU64BE(lockedAt)
	e.PutIdentifier(session)
	e.PutIdentifier(object)
}

func TestLockListRequestDecodeResponseNoFlagDescr(t *testing.T) {
	const epochTicks = wire.EpochOffsetTicks + 1_700_000_000*wire.TicksPerSecond

	var conn, session, object wire.Identifier
	frand.Read(conn[:])
	frand.Read(session[:])
	frand.Read(object[:])

	e := wire.NewEncoder(256)
	e.PutU8(1)
	appendLockRecordNoFlag(e, conn, "Lock-A", epochTicks, session, object)

	req := LockListRequest{}
	locks, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if len(locks) != 1 {
		t.Fatalf("want 1 lock, got %d", len(locks))
	}
	l := locks[0]
	if l.ConnectionID != conn || l.Descr != "Lock-A" || l.SessionID != session || l.Object != object {
		t.Fatalf("unexpected lock: %+v", l)
	}
}

// TestLockListRequestDecodeResponseDescrStartingWithFlagByte exercises
// the ambiguous case: a description whose first (and only) byte is
// 0x01. Because the remaining-length accounting matches the no-flag
// shape, the decoder must resolve it as a literal one-byte "\x01"
// description, not as an empty description preceded by a
// disambiguation byte.
func TestLockListRequestDecodeResponseDescrStartingWithFlagByte(t *testing.T) {
	const epochTicks = wire.EpochOffsetTicks + 1_700_000_000*wire.TicksPerSecond

	var conn, session, object wire.Identifier
	frand.Read(conn[:])
	frand.Read(session[:])
	frand.Read(object[:])

	e := wire.NewEncoder(256)
	e.PutU8(1)
	appendLockRecordNoFlag(e, conn, "\x01", epochTicks, session, object)

	req := LockListRequest{}
	locks, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if locks[0].Descr != "\x01" {
		t.Fatalf("expected literal 0x01 description, got %q", locks[0].Descr)
	}
	if locks[0].SessionID != session || locks[0].Object != object {
		t.Fatalf("unexpected lock: %+v", locks[0])
	}
}

func TestLockListRequestDecodeResponseWithDisambiguationFlag(t *testing.T) {
	const epochTicks = wire.EpochOffsetTicks + 1_700_000_000*wire.TicksPerSecond

	var conn, session, object wire.Identifier
	frand.Read(conn[:])
	frand.Read(session[:])
	frand.Read(object[:])

	e := wire.NewEncoder(256)
	e.PutU8(1)
	appendLockRecordWithFlag(e, conn, 0x01, "B", epochTicks, session, object)

	req := LockListRequest{}
	locks, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	l := locks[0]
	if l.ConnectionID != conn || l.Descr != "B" || l.SessionID != session || l.Object != object {
		t.Fatalf("unexpected lock: %+v", l)
	}
}

func TestLockListRequestDecodeResponseEmptyDescr(t *testing.T) {
	const epochTicks = wire.EpochOffsetTicks + 1_700_000_000*wire.TicksPerSecond

	var conn, session, object wire.Identifier
	frand.Read(conn[:])
	frand.Read(session[:])
	frand.Read(object[:])

	e := wire.NewEncoder(256)
	e.PutU8(1)
	appendLockRecordNoFlag(e, conn, "", epochTicks, session, object)

	req := LockListRequest{}
	locks, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if locks[0].Descr != "" {
		t.Fatalf("expected empty description, got %q", locks[0].Descr)
	}
}
