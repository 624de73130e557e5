// Package worker runs background jobs of the service.
package worker

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/go-sentiment-service/internal/classifier"
)

// DefaultHealthInterval is how often the classifier is probed.
const DefaultHealthInterval = 15 * time.Second

// HealthMonitor probes a classifier backend on a ticker and remembers the
// last result. It starts healthy.
type HealthMonitor struct {
	probe    classifier.HealthChecker
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	healthy  atomic.Bool
}

func NewHealthMonitor(logger *zap.Logger, probe classifier.HealthChecker, interval time.Duration) *HealthMonitor {
	m := &HealthMonitor{
		probe:    probe,
		interval: interval,
		timeout:  interval / 2,
		logger:   logger,
	}
	m.healthy.Store(true)
	return m
}

// Healthy reports the outcome of the last probe.
func (m *HealthMonitor) Healthy() bool {
	return m.healthy.Load()
}

// Check probes once and records the result.
func (m *HealthMonitor) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	err := m.probe.Health(ctx)
	healthy := err == nil

	if was := m.healthy.Swap(healthy); was != healthy {
		if healthy {
			m.logger.Info("classifier recovered")
		} else {
			m.logger.Warn("classifier is unhealthy", zap.Error(err))
		}
	}
	return healthy
}

// Run probes immediately and then on every tick until ctx is done.
func (m *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
