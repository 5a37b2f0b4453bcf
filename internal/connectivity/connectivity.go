// Package connectivity answers "are we online?" for the view controller.
package connectivity

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"time"
)

// Static is a monitor with a fixed answer. Used for --offline and tests.
type Static bool

// Online returns the fixed value
func (s Static) Online() bool { return bool(s) }

// Dialer opens a connection; satisfied by *net.Dialer
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Probe reports online when a TCP connection to addr succeeds. Online
// never dials: it returns the last answer from Refresh (or Run), and
// assumes online until the first check has finished.
type Probe struct {
	addr     string
	timeout  time.Duration
	interval time.Duration
	dialer   Dialer
	logger   *slog.Logger

	mu      sync.Mutex
	online  bool
	checked bool
}

// NewProbe creates a probe dialing addr
func NewProbe(addr string, timeout, interval time.Duration, logger *slog.Logger) *Probe {
	if logger == nil {
		logger = slog.Default()
	}
	return &Probe{
		addr:     addr,
		timeout:  timeout,
		interval: interval,
		dialer:   &net.Dialer{},
		logger:   logger,
	}
}

// Online returns the last known answer, true before the first check
func (p *Probe) Online() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.checked || p.online
}

// Refresh probes now and stores the answer
func (p *Probe) Refresh() bool {
	online := p.check()

	p.mu.Lock()
	if !p.checked || online != p.online {
		p.logger.Info("connectivity changed", "online", online, "probe", p.addr)
	}
	p.online = online
	p.checked = true
	p.mu.Unlock()

	return online
}

// Interval is how often Run refreshes
func (p *Probe) Interval() time.Duration { return p.interval }

// Run refreshes every interval until ctx is done
func (p *Probe) Run(ctx context.Context) {
	if p.interval <= 0 {
		return
	}
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh()
		}
	}
}

func (p *Probe) check() bool {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		p.logger.Debug("connectivity probe failed", "error", err)
		return false
	}
	conn.Close()
	return true
}
