package health

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Prober is the reachability probe the monitor polls.
type Prober interface {
	HealthCheck(ctx context.Context) bool
}

type Status struct {
	Reachable   bool
	LastChecked time.Time
	LastOK      time.Time
}

// Monitor polls the backend's health endpoint on a fixed interval and keeps
// the latest result for display.
type Monitor struct {
	prober   Prober
	interval time.Duration
	logger   *zap.Logger

	mu     sync.RWMutex
	status Status
}

func NewMonitor(prober Prober, interval time.Duration, logger *zap.Logger) *Monitor {
	return &Monitor{
		prober:   prober,
		interval: interval,
		logger:   logger,
	}
}

// Start probes once immediately, then on every tick until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	m.CheckNow(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.CheckNow(ctx)
		}
	}
}

// CheckNow runs a single probe and records the result.
func (m *Monitor) CheckNow(ctx context.Context) bool {
	reachable := m.prober.HealthCheck(ctx)
	now := time.Now()

	m.mu.Lock()
	wasReachable := m.status.Reachable
	m.status.Reachable = reachable
	m.status.LastChecked = now
	if reachable {
		m.status.LastOK = now
	}
	m.mu.Unlock()

	if reachable != wasReachable {
		m.logger.Info("Backend reachability changed", zap.Bool("reachable", reachable))
	}

	return reachable
}

func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}
