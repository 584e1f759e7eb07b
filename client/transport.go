package client

import (
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alkoleft/racclient/frame"
	"github.com/alkoleft/racclient/racerr"
	"github.com/alkoleft/racclient/wire"
	"golang.org/x/sys/unix"
)

// Transport owns the raw TCP socket for one session. It is used by one
// goroutine at a time (writes are not serialized; the mutex guards only
// the poison latch and the closed flag), tracks byte counters, and
// poisons itself on the first unrecoverable I/O error so that every
// subsequent call fails fast
// instead of retrying a socket that may be in an inconsistent state.
// The concurrency shape (mutex, atomic counters, poison latch, scoped
// deadlines) follows the renter-host Transport in this module's
// ancestry, reworked for plaintext length-prefixed frames instead of
// an encrypted message stream.
type Transport struct {
	conn net.Conn

	mu     sync.Mutex
	err    error
	closed bool

	bytesRead    uint64
	bytesWritten uint64

	readTimeout  time.Duration
	writeTimeout time.Duration
}

// DialTransport opens a TCP connection to addr with the configured
// connect timeout, applies TCP_NODELAY, and returns a Transport ready
// for the handshake.
func DialTransport(addr string, cfg Config) (*Transport, error) {
	conn, err := net.DialTimeout("tcp", addr, cfg.ConnectTimeout)
	if err != nil {
		return nil, racerr.IO(err)
	}
	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
		tuneKeepAlive(tcpConn)
	}
	return &Transport{
		conn:         conn,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
	}, nil
}

// tuneKeepAlive enables TCP keepalive with a 30-second period through
// the net.TCPConn API, then sets TCP_NODELAY once more on the raw
// socket via golang.org/x/sys/unix.
func tuneKeepAlive(conn *net.TCPConn) {
	_ = conn.SetKeepAlive(true)
	_ = conn.SetKeepAlivePeriod(30 * time.Second)
	rawConn, err := conn.SyscallConn()
	if err != nil {
		return
	}
	_ = rawConn.Control(func(fd uintptr) {
		_ = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	})
}

func (t *Transport) setErr(err error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err == nil {
		t.err = err
	}
	return t.err
}

func (t *Transport) poisoned() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// WriteRaw writes payload directly to the socket with no opcode or
// length-prefix envelope, applying the configured write deadline. Used
// only for the handshake's init packet, which the protocol puts on the
// wire unframed.
func (t *Transport) WriteRaw(payload []byte) error {
	if err := t.poisoned(); err != nil {
		return err
	}
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
		return t.setErr(racerr.IO(err))
	}
	if _, err := t.conn.Write(payload); err != nil {
		return t.setErr(racerr.IO(err))
	}
	atomic.AddUint64(&t.bytesWritten, uint64(len(payload)))
	return nil
}

// WriteFrame writes one frame, applying the configured write deadline.
// A write that fails is latched as a poisoning error for all future
// calls on this transport, except a would-block (deadline) failure,
// which is returned without latching so that context-setup callers
// can decide on it themselves (see Session.ensureContext).
func (t *Transport) WriteFrame(opcode byte, payload []byte) error {
	if err := t.poisoned(); err != nil {
		return err
	}
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.writeTimeout)); err != nil {
		return t.setErr(racerr.IO(err))
	}
	if err := frame.WriteFrame(t.conn, opcode, payload); err != nil {
		if racerr.IsWouldBlock(err) {
			return err
		}
		return t.setErr(err)
	}
	header := 1 + len(wire.EncodeVaruint(nil, uint64(len(payload))))
	atomic.AddUint64(&t.bytesWritten, uint64(header+len(payload)))
	return nil
}

// ReadFrame reads one frame, applying the configured read deadline.
func (t *Transport) ReadFrame() (frame.Frame, error) {
	if err := t.poisoned(); err != nil {
		return frame.Frame{}, err
	}
	if err := t.conn.SetReadDeadline(time.Now().Add(t.readTimeout)); err != nil {
		return frame.Frame{}, t.setErr(racerr.IO(err))
	}
	f, err := frame.ReadFrame(t.conn)
	if err != nil {
		return frame.Frame{}, t.setErr(err)
	}
	header := 1 + len(wire.EncodeVaruint(nil, uint64(len(f.Payload))))
	atomic.AddUint64(&t.bytesRead, uint64(header+len(f.Payload)))
	return f, nil
}

// BytesRead reports cumulative bytes read since the transport opened.
func (t *Transport) BytesRead() uint64 { return atomic.LoadUint64(&t.bytesRead) }

// BytesWritten reports cumulative bytes written since the transport
// opened.
func (t *Transport) BytesWritten() uint64 { return atomic.LoadUint64(&t.bytesWritten) }

// Close drops the underlying socket without writing the protocol's
// close frame; used after an error has already poisoned the session.
func (t *Transport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	t.mu.Unlock()
	return t.conn.Close()
}
