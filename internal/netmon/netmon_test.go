package netmon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type scriptedProber struct {
	mu   sync.Mutex
	errs []error
	idx  int
}

func (p *scriptedProber) Health(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.idx >= len(p.errs) {
		return p.errs[len(p.errs)-1]
	}
	err := p.errs[p.idx]
	p.idx++
	return err
}

func TestMonitor_ReportsOfflineAndRecovers(t *testing.T) {
	t.Parallel()

	prober := &scriptedProber{errs: []error{
		nil,
		errors.New("connection refused"),
		nil,
	}}

	monitor := NewMonitor(prober, 5*time.Millisecond, zap.NewNop())

	var mu sync.Mutex
	var flips []bool
	monitor.OnChange(func(online bool) {
		mu.Lock()
		flips = append(flips, online)
		mu.Unlock()
	})

	monitor.Start(context.Background())
	defer monitor.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(flips)
		mu.Unlock()
		if n >= 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Expected connectivity to flip offline then back online")
		}
		time.Sleep(5 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if flips[0] != false || flips[1] != true {
		t.Errorf("Expected offline then online, got %v", flips)
	}
	if !monitor.Online() {
		t.Error("Expected monitor to end online")
	}
	if monitor.Latency() <= 0 {
		t.Error("Expected a recorded latency from successful probes")
	}
}

func TestMonitor_OnlineBeforeFirstProbe(t *testing.T) {
	t.Parallel()

	monitor := NewMonitor(&scriptedProber{errs: []error{nil}}, time.Hour, zap.NewNop())
	if !monitor.Online() {
		t.Error("Expected optimistic online status before the first probe")
	}
}
