package application

import (
	"context"
	"time"

	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// HealthStatus values.
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// HealthReport is the readiness view of the process.
type HealthReport struct {
	Status  string
	Storage string
	Error   string
}

// HealthService reports whether the storage backend is reachable.
type HealthService struct {
	storage string
	pinger  driven.Pinger
	timeout time.Duration
}

// NewHealthService creates a HealthService for the named storage backend.
// A nil pinger is always healthy.
func NewHealthService(storage string, pinger driven.Pinger) *HealthService {
	return &HealthService{storage: storage, pinger: pinger, timeout: 2 * time.Second}
}

// Check pings the storage backend.
func (s *HealthService) Check(ctx context.Context) HealthReport {
	report := HealthReport{Status: HealthOK, Storage: s.storage}
	if s.pinger == nil {
		return report
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.pinger.Ping(ctx); err != nil {
		report.Status = HealthDegraded
		report.Error = err.Error()
	}
	return report
}
