package pool

import (
	"context"
	"io"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/frame"
	"github.com/alkoleft/racclient/protocol"
)

// fakeServer accepts connections and performs just enough of the
// handshake for client.Connect to succeed, then holds the connection
// open until the test closes the listener.
type fakeServer struct {
	ln       net.Listener
	accepted int32
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := &fakeServer{ln: ln}
	go s.serve()
	return s
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		atomic.AddInt32(&s.accepted, 1)
		go s.handshake(conn)
	}
}

func (s *fakeServer) handshake(conn net.Conn) {
	initPacket := protocol.NewCodec(protocol.V16_0).InitPacket()
	if _, err := io.ReadFull(conn, make([]byte, len(initPacket))); err != nil {
		return
	}
	if err := frame.WriteFrame(conn, frame.OpInitAck, nil); err != nil {
		return
	}
	if _, err := frame.ReadFrame(conn); err != nil {
		return
	}
	if err := frame.WriteFrame(conn, frame.OpServiceAck, nil); err != nil {
		return
	}
	// Keep the connection open (but otherwise idle) until the test
	// tears the listener down.
	buf := make([]byte, 1)
	for {
		if _, err := conn.Read(buf); err != nil {
			return
		}
	}
}

func (s *fakeServer) addr() string { return s.ln.Addr().String() }

func (s *fakeServer) acceptedCount() int32 { return atomic.LoadInt32(&s.accepted) }

func testClientConfig() client.Config {
	cfg := client.DefaultConfig()
	cfg.ConnectTimeout = time.Second
	cfg.ReadTimeout = time.Second
	cfg.WriteTimeout = time.Second
	cfg.Protocol = protocol.PinV16_0
	return cfg
}

func TestPoolCheckoutReleaseReusesIdleSession(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.ln.Close()

	p := New(Config{Addr: srv.addr(), ClientConfig: testClientConfig(), Max: 1})

	s1, err := p.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if srv.acceptedCount() != 1 {
		t.Fatalf("expected 1 dial, got %d", srv.acceptedCount())
	}
	p.Release(s1, true)

	if idle, inUse := p.Stats(); idle != 1 || inUse != 0 {
		t.Fatalf("expected idle=1 inUse=0 after release, got idle=%d inUse=%d", idle, inUse)
	}

	s2, err := p.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout (reuse): %v", err)
	}
	if s2 != s1 {
		t.Fatal("expected the idle session to be reused")
	}
	if srv.acceptedCount() != 1 {
		t.Fatalf("expected no additional dial on reuse, got %d accepts", srv.acceptedCount())
	}
	p.Release(s2, true)
}

func TestPoolReleaseNotOkClosesSession(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.ln.Close()

	p := New(Config{Addr: srv.addr(), ClientConfig: testClientConfig(), Max: 1})

	s1, err := p.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	p.Release(s1, false)

	if idle, inUse := p.Stats(); idle != 0 || inUse != 0 {
		t.Fatalf("expected idle=0 inUse=0 after discarding release, got idle=%d inUse=%d", idle, inUse)
	}

	if _, err := p.Checkout(context.Background()); err != nil {
		t.Fatalf("Checkout (fresh dial): %v", err)
	}
	if srv.acceptedCount() != 2 {
		t.Fatalf("expected a second dial after ok=false release, got %d accepts", srv.acceptedCount())
	}
}

func TestPoolCheckoutBlocksAtCapacity(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.ln.Close()

	p := New(Config{Addr: srv.addr(), ClientConfig: testClientConfig(), Max: 1})

	s1, err := p.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	done := make(chan *client.Session, 1)
	go func() {
		s, err := p.Checkout(context.Background())
		if err != nil {
			done <- nil
			return
		}
		done <- s
	}()

	select {
	case <-done:
		t.Fatal("second Checkout should have blocked at capacity")
	case <-time.After(50 * time.Millisecond):
	}

	p.Release(s1, true)

	select {
	case s2 := <-done:
		if s2 == nil {
			t.Fatal("blocked Checkout returned an error")
		}
	case <-time.After(time.Second):
		t.Fatal("blocked Checkout never returned after Release")
	}
}

func TestPoolCheckoutRespectsContextCancellation(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.ln.Close()

	p := New(Config{Addr: srv.addr(), ClientConfig: testClientConfig(), Max: 1})
	if _, err := p.Checkout(context.Background()); err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := p.Checkout(ctx); err == nil {
		t.Fatal("expected Checkout to fail once context is canceled while blocked")
	}
}

func TestPoolPrunesExpiredIdleSessions(t *testing.T) {
	srv := newFakeServer(t)
	defer srv.ln.Close()

	p := New(Config{Addr: srv.addr(), ClientConfig: testClientConfig(), Max: 1, IdleTTL: 20 * time.Millisecond})

	s1, err := p.Checkout(context.Background())
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	p.Release(s1, true)

	time.Sleep(60 * time.Millisecond)

	if _, err := p.Checkout(context.Background()); err != nil {
		t.Fatalf("Checkout (post-expiry): %v", err)
	}
	if srv.acceptedCount() != 2 {
		t.Fatalf("expected expired idle session to be dropped and a new dial made, got %d accepts", srv.acceptedCount())
	}
}
