// Package netmon provides an independent connectivity signal by probing the
// backend health endpoint on an interval. It only reports status; it never
// triggers retries itself.
package netmon

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Prober checks whether the backend is reachable
type Prober interface {
	Health(ctx context.Context) error
}

// Monitor tracks backend reachability and last probe latency
type Monitor struct {
	prober   Prober
	interval time.Duration
	log      *zap.Logger

	mu       sync.Mutex
	online   bool
	latency  time.Duration
	probed   bool
	onChange []func(online bool)

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a monitor. Until the first probe completes the status
// is reported as online, so the UI does not flash an offline banner on
// startup.
func NewMonitor(prober Prober, interval time.Duration, log *zap.Logger) *Monitor {
	return &Monitor{
		prober:   prober,
		interval: interval,
		log:      log,
		online:   true,
	}
}

// Online reports the last observed connectivity status
func (m *Monitor) Online() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.online
}

// Latency returns the duration of the last successful probe
func (m *Monitor) Latency() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.latency
}

// OnChange registers a callback fired when connectivity flips
func (m *Monitor) OnChange(fn func(online bool)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = append(m.onChange, fn)
}

// Start begins probing in the background until Stop or ctx cancellation
func (m *Monitor) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go func() {
		defer close(m.done)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.probe(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.probe(ctx)
			}
		}
	}()
}

// Stop halts probing and waits for the probe loop to exit
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.interval)
	defer cancel()

	start := time.Now()
	err := m.prober.Health(probeCtx)
	elapsed := time.Since(start)

	m.mu.Lock()
	wasOnline := m.online
	m.online = err == nil
	if err == nil {
		m.latency = elapsed
	}
	flipped := m.probed && wasOnline != m.online
	m.probed = true
	callbacks := make([]func(bool), len(m.onChange))
	copy(callbacks, m.onChange)
	online := m.online
	m.mu.Unlock()

	if err != nil {
		m.log.Debug("health_probe_failed", zap.Error(err))
	}
	if flipped {
		m.log.Info("connectivity_changed", zap.Bool("online", online))
		for _, fn := range callbacks {
			fn(online)
		}
	}
}
