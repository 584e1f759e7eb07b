// Package pool implements a bounded pool of authenticated client
// sessions, admitting callers under a mutex + condition variable
// rather than a plain counting semaphore so that idle-reuse and
// new-session decisions stay atomic with in_use_count.
package pool

import (
	"context"
	"sync"
	"time"

	"github.com/alkoleft/racclient/client"
	"github.com/alkoleft/racclient/racerr"
)

// Config parameterizes a Pool.
type Config struct {
	Addr         string
	ClientConfig client.Config
	Max          int
	IdleTTL      time.Duration
}

type idleEntry struct {
	session  *client.Session
	lastUsed time.Time
}

// Pool hands out authenticated *client.Session values to concurrent
// callers, reusing idle sessions (LIFO) within their TTL and opening
// new sessions up to Max. Session-close operations are always
// performed outside the mutex to keep contention bounded.
type Pool struct {
	cfg Config

	mu    sync.Mutex
	cond  *sync.Cond
	idle  []idleEntry
	inUse int

	metrics *Metrics
}

// New constructs a Pool. cfg.Max must be at least 1.
func New(cfg Config) *Pool {
	if cfg.Max < 1 {
		cfg.Max = 1
	}
	p := &Pool{cfg: cfg}
	p.cond = sync.NewCond(&p.mu)
	p.metrics = newMetrics(p)
	return p
}

// Metrics returns a prometheus.Collector reporting pool state;
// callers register it with their own registry.
func (p *Pool) Metrics() *Metrics { return p.metrics }

// Checkout returns an idle session if one is available and fresh,
// opens a new one if under capacity, or blocks on the pool's
// condition variable until a slot frees up or ctx is done.
func (p *Pool) Checkout(ctx context.Context) (*client.Session, error) {
	start := time.Now()
	p.mu.Lock()
	for {
		p.pruneLocked()

		if n := len(p.idle); n > 0 {
			e := p.idle[n-1]
			p.idle = p.idle[:n-1]
			p.inUse++
			p.mu.Unlock()
			p.metrics.observeCheckoutWait(time.Since(start))
			return e.session, nil
		}

		if p.inUse+len(p.idle) < p.cfg.Max {
			p.inUse++
			p.mu.Unlock()
			s, err := client.Connect(p.cfg.Addr, p.cfg.ClientConfig)
			if err != nil {
				p.mu.Lock()
				p.inUse--
				p.cond.Signal()
				p.mu.Unlock()
				return nil, err
			}
			p.metrics.observeCheckoutWait(time.Since(start))
			return s, nil
		}

		if err := p.waitLocked(ctx); err != nil {
			p.mu.Unlock()
			return nil, err
		}
	}
}

// waitLocked blocks on the condition variable until Signal/Broadcast
// or ctx is canceled, without releasing p.mu across the ctx check in
// a way that could race a concurrent Release.
func (p *Pool) waitLocked(ctx context.Context) error {
	if ctx == nil {
		p.cond.Wait()
		return nil
	}
	select {
	case <-ctx.Done():
		return racerr.IO(ctx.Err())
	default:
	}
	done := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		close(done)
		p.cond.Broadcast()
	})
	defer stop()
	p.cond.Wait()
	select {
	case <-done:
		return racerr.IO(ctx.Err())
	default:
		return nil
	}
}

// pruneLocked closes and drops idle entries older than IdleTTL.
// Expired sessions are collected here and closed on a separate
// goroutine, so the Close calls never run under the pool mutex.
func (p *Pool) pruneLocked() {
	if p.cfg.IdleTTL <= 0 || len(p.idle) == 0 {
		return
	}
	cutoff := time.Now().Add(-p.cfg.IdleTTL)
	kept := p.idle[:0]
	var expired []idleEntry
	for _, e := range p.idle {
		if e.lastUsed.Before(cutoff) {
			expired = append(expired, e)
		} else {
			kept = append(kept, e)
		}
	}
	p.idle = kept
	if len(expired) > 0 {
		go func() {
			for _, e := range expired {
				_ = e.session.Close()
			}
		}()
	}
}

// Release returns s to the pool. ok must be false whenever any RPC on
// s returned an error that may have left the connection or its
// context latches in an inconsistent state; the session is then
// closed instead of reused.
func (p *Pool) Release(s *client.Session, ok bool) {
	p.mu.Lock()
	p.inUse--
	if ok {
		p.idle = append(p.idle, idleEntry{session: s, lastUsed: time.Now()})
		p.pruneLocked()
		p.cond.Signal()
		p.mu.Unlock()
		return
	}
	p.pruneLocked()
	p.cond.Signal()
	p.mu.Unlock()
	_ = s.Close()
}

// Stats reports the current (idle, inUse) snapshot for metrics.
func (p *Pool) Stats() (idle, inUse int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.idle), p.inUse
}
