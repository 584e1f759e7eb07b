// Package client owns the single-socket protocol engine: transport
// dialing, the handshake state machine, the implicit context latches,
// and the RPC dispatch loop that filters out-of-band service notices.
package client

import (
	"time"

	"github.com/alkoleft/racclient/protocol"
	"github.com/rs/zerolog"
)

// Config configures a single client session. Zero value is not usable
// directly; use DefaultConfig to obtain sane defaults, then apply
// Option functions.
type Config struct {
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	DebugRaw       bool
	Protocol       protocol.Preference
	Logger         zerolog.Logger
}

// DefaultConfig mirrors the source client's defaults: 5-second
// connect/read/write timeouts, no raw frame tracing, automatic
// protocol-version fallback.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		DebugRaw:       false,
		Protocol:       protocol.Auto,
		Logger:         zerolog.Nop(),
	}
}

// Option mutates a Config; used as a functional-options constructor
// idiom on top of DefaultConfig.
type Option func(*Config)

// WithTimeouts overrides all three transport timeouts at once.
func WithTimeouts(connect, read, write time.Duration) Option {
	return func(c *Config) {
		c.ConnectTimeout = connect
		c.ReadTimeout = read
		c.WriteTimeout = write
	}
}

// WithDebugRaw enables debug-level hex-dump tracing, via Logger, of
// every RPC frame a Session sends and receives. Handshake and close
// frames are not traced.
func WithDebugRaw(v bool) Option {
	return func(c *Config) { c.DebugRaw = v }
}

// WithProtocol pins or resets the protocol-version candidate list.
func WithProtocol(p protocol.Preference) Option {
	return func(c *Config) { c.Protocol = p }
}

// WithLogger installs a zerolog.Logger for lifecycle and (when
// DebugRaw is set) frame-trace events.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
