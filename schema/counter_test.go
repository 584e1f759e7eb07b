package schema

import (
	"testing"

	"github.com/alkoleft/racclient/wire"
	"lukechampine.com/frand"
)

func TestCounterUpdateRequestEncodeDecodeRoundTrip(t *testing.T) {
	var cluster wire.Identifier
	frand.Read(cluster[:])

	req := CounterUpdateRequest{
		ClusterID:              cluster,
		Name:                   "call-time",
		CollectionTime:         300,
		Group:                  1,
		FilterType:             2,
		Filter:                 "*.1cws",
		Duration:               1,
		CPUTime:                1,
		DurationDBMS:           0,
		Service:                1,
		Memory:                 1,
		Read:                   1,
		Write:                  1,
		DBMSBytes:              0,
		Call:                   1,
		NumberOfActiveSessions: 1,
		NumberOfSessions:       1,
		Descr:                  "per-call timing counter",
	}
	body, err := req.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	c := wire.NewCursor(body)
	gotCluster, err := c.TakeIdentifier()
	if err != nil || gotCluster != cluster {
		t.Fatalf("cluster: %v %v", gotCluster, err)
	}
	got, err := decodeCounter(c)
	if err != nil {
		t.Fatalf("decodeCounter: %v", err)
	}
	if c.Remaining() != 0 {
		t.Fatalf("expected full consumption, %d bytes remain", c.Remaining())
	}
	want := Counter{
		Name: "call-time", CollectionTime: 300, Group: 1, FilterType: 2, Filter: "*.1cws",
		Duration: 1, CPUTime: 1, DurationDBMS: 0, Service: 1, Memory: 1, Read: 1, Write: 1,
		DBMSBytes: 0, Call: 1, NumberOfActiveSessions: 1, NumberOfSessions: 1,
		Descr: "per-call timing counter",
	}
	if got != want {
		t.Fatalf("round trip mismatch: want %+v got %+v", want, got)
	}
}

func TestCounterValuesRequestDecodeResponse(t *testing.T) {
	const epochTicks = wire.EpochOffsetTicks + 1_700_000_000*wire.TicksPerSecond

	e := wire.NewEncoder(256)
	e.PutU8(1)
	e.PutStr8("infobase-1")
	e.PutU64BE(300)
	for i := 0; i < 11; i++ {
		e.PutU64BE(uint64(i * 10))
	}
	e.PutU64BE(epochTicks)

	req := CounterValuesRequest{}
	values, err := req.DecodeResponse(e.Bytes(), nil)
	if err != nil {
		t.Fatalf("DecodeResponse: %v", err)
	}
	if len(values) != 1 {
		t.Fatalf("want 1 value, got %d", len(values))
	}
	if values[0].Object != "infobase-1" || values[0].CollectionTime != 300 {
		t.Fatalf("unexpected counter values: %+v", values[0])
	}
}

func TestCounterClearRequestEncodeBody(t *testing.T) {
	var cluster wire.Identifier
	frand.Read(cluster[:])
	req := CounterClearRequest{ClusterID: cluster, Counter: "call-time", Object: "infobase-1"}
	body, err := req.EncodeBody(nil)
	if err != nil {
		t.Fatalf("EncodeBody: %v", err)
	}
	c := wire.NewCursor(body)
	if _, err := c.TakeIdentifier(); err != nil {
		t.Fatalf("cluster: %v", err)
	}
	counter, err := c.TakeStr8()
	if err != nil || counter != "call-time" {
		t.Fatalf("counter: %q %v", counter, err)
	}
	object, err := c.TakeStr8()
	if err != nil || object != "infobase-1" {
		t.Fatalf("object: %q %v", object, err)
	}
}
