package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	HealthStatusOK       = "ok"
	HealthStatusDegraded = "degraded"

	defaultCheckTimeout = 2 * time.Second
)

// HealthCheck pings one named dependency.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type HealthReport struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	CheckedAt time.Time         `json:"checked_at"`
}

func (r HealthReport) Healthy() bool {
	return r.Status == HealthStatusOK
}

type HealthUsecase interface {
	Readiness(ctx context.Context) HealthReport
}

type Health struct {
	checks  []HealthCheck
	timeout time.Duration
	log     *log.Logger
}

func NewHealthUsecase(logger *log.Logger, checks ...HealthCheck) *Health {
	if logger == nil {
		logger = log.Default()
	}
	return &Health{checks: checks, timeout: defaultCheckTimeout, log: logger.WithPrefix("health")}
}

// Readiness runs every check concurrently. The report is degraded when any
// check fails.
func (u *Health) Readiness(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:    HealthStatusOK,
		Checks:    map[string]string{},
		CheckedAt: time.Now().UTC(),
	}
	if u == nil || len(u.checks) == 0 {
		return report
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, chk := range u.checks {
		if chk.Ping == nil {
			continue
		}
		wg.Add(1)
		go func(chk HealthCheck) {
			defer wg.Done()
			cctx, cancel := context.WithTimeout(ctx, u.timeout)
			defer cancel()

			status := HealthStatusOK
			if err := chk.Ping(cctx); err != nil {
				status = "error: " + err.Error()
				u.log.Warn("readiness check failed", "check", chk.Name, "err", err)
			}

			mu.Lock()
			report.Checks[chk.Name] = status
			if status != HealthStatusOK {
				report.Status = HealthStatusDegraded
			}
			mu.Unlock()
		}(chk)
	}
	wg.Wait()

	return report
}

var _ HealthUsecase = (*Health)(nil)
