package client

import (
	"errors"

	"github.com/alkoleft/racclient/protocol"
	"github.com/alkoleft/racclient/racerr"
)

// Connect dials addr and negotiates a protocol version, trying each
// candidate from cfg.Protocol.Candidates() in order. On
// UnsupportedService it closes the transport and tries the next
// candidate; any other error closes the transport and is returned
// immediately. Exhausting the candidate list fails with a
// "service negotiation failed" protocol error that carries the last
// UnsupportedService error's text.
func Connect(addr string, cfg Config) (*Session, error) {
	var lastErr error
	for _, v := range cfg.Protocol.Candidates() {
		t, err := DialTransport(addr, cfg)
		if err != nil {
			return nil, err
		}
		codec := protocol.NewCodec(v)
		log := sessionLogger{Logger: cfg.Logger, debugRaw: cfg.DebugRaw}
		if err := negotiate(t, codec, log); err != nil {
			_ = t.Close()
			var racErr *racerr.Error
			if errors.As(err, &racErr) && racErr.Kind == racerr.KindUnsupportedService {
				lastErr = err
				log.debugf("connect: protocol %s unsupported, falling back", v)
				continue
			}
			return nil, err
		}
		cfg.Logger.Info().Str("protocol", v.String()).Str("addr", addr).Msg("rac: connected")
		return newSession(t, codec, cfg), nil
	}
	if lastErr != nil {
		return nil, racerr.ProtocolMessagef("service negotiation failed: %v", lastErr)
	}
	return nil, racerr.Protocol("service negotiation failed")
}
