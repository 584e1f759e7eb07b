package client

import (
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/alkoleft/racclient/frame"
	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
)

func pipeTransport() (*Transport, net.Conn) {
	clientSide, serverSide := net.Pipe()
	t := &Transport{
		conn:         clientSide,
		readTimeout:  time.Second,
		writeTimeout: time.Second,
	}
	return t, serverSide
}

type nopLogger struct{}

func (nopLogger) debugf(string, ...any) {}

// readRawInitPacket reads the unframed init packet the client writes
// with Transport.WriteRaw: no opcode byte, no length prefix, just the
// fixed-size literal itself.
func readRawInitPacket(t *testing.T, conn net.Conn, codec *protocol.Codec) {
	t.Helper()
	buf := make([]byte, len(codec.InitPacket()))
	if _, err := io.ReadFull(conn, buf); err != nil {
		t.Fatalf("server read raw init packet: %v", err)
	}
}

func TestNegotiateHappyPath(t *testing.T) {
	tr, server := pipeTransport()
	codec := protocol.NewCodec(protocol.V16_0)
	done := make(chan error, 1)
	go func() { done <- negotiate(tr, codec, nopLogger{}) }()

	readRawInitPacket(t, server, codec)
	if err := frame.WriteFrame(server, frame.OpInitAck, nil); err != nil {
		t.Fatalf("server write init ack: %v", err)
	}
	if _, err := frame.ReadFrame(server); err != nil {
		t.Fatalf("server read service negotiation: %v", err)
	}
	if err := frame.WriteFrame(server, frame.OpServiceAck, nil); err != nil {
		t.Fatalf("server write service ack: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("negotiate: %v", err)
	}
}

func TestNegotiateReturnsUnsupportedService(t *testing.T) {
	tr, server := pipeTransport()
	codec := protocol.NewCodec(protocol.V16_0)
	done := make(chan error, 1)
	go func() { done <- negotiate(tr, codec, nopLogger{}) }()

	readRawInitPacket(t, server, codec)
	if err := frame.WriteFrame(server, frame.OpInitAck, nil); err != nil {
		t.Fatalf("server write init ack: %v", err)
	}
	if _, err := frame.ReadFrame(server); err != nil {
		t.Fatalf("server read service negotiation: %v", err)
	}
	notice := append([]byte{0x01, 0x00, 0x00, 0xff}, []byte("UnsupportedService: v8.service.Admin.Cluster")...)
	if err := frame.WriteFrame(server, frame.OpServiceNotice, notice); err != nil {
		t.Fatalf("server write notice: %v", err)
	}

	err := <-done
	if err == nil {
		t.Fatal("expected unsupported-service error")
	}
	var racErr *racerr.Error
	if !errors.As(err, &racErr) || racErr.Kind != racerr.KindUnsupportedService {
		t.Fatalf("expected KindUnsupportedService, got %v", err)
	}
}

func TestNegotiateRetriesUnrelatedNotice(t *testing.T) {
	tr, server := pipeTransport()
	codec := protocol.NewCodec(protocol.V11_0)
	done := make(chan error, 1)
	go func() { done <- negotiate(tr, codec, nopLogger{}) }()

	readRawInitPacket(t, server, codec)
	if err := frame.WriteFrame(server, frame.OpInitAck, nil); err != nil {
		t.Fatalf("server write init ack: %v", err)
	}
	if _, err := frame.ReadFrame(server); err != nil {
		t.Fatalf("server read service negotiation: %v", err)
	}
	// Unrelated notice, should be retried rather than failing outright.
	if err := frame.WriteFrame(server, frame.OpServiceNotice, []byte("keepalive")); err != nil {
		t.Fatalf("server write notice: %v", err)
	}
	if err := frame.WriteFrame(server, frame.OpServiceAck, nil); err != nil {
		t.Fatalf("server write service ack: %v", err)
	}

	if err := <-done; err != nil {
		t.Fatalf("negotiate: %v", err)
	}
}
