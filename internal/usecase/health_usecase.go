package usecase

import (
	"context"
	"time"
)

// Pinger is anything that can report its own reachability.
type Pinger func(ctx context.Context) error

type HealthUsecase interface {
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	checks map[string]Pinger
}

// NewHealthUsecase reports on the named dependencies. A nil pinger is
// reported as "disabled".
func NewHealthUsecase(checks map[string]Pinger) HealthUsecase {
	return &healthUsecase{checks: checks}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	healthy := true
	status := map[string]string{"status": "ok"}
	for name, ping := range u.checks {
		switch {
		case ping == nil:
			status[name] = "disabled"
		case ping(ctx) != nil:
			status[name] = "down"
			healthy = false
		default:
			status[name] = "up"
		}
	}
	if !healthy {
		status["status"] = "degraded"
	}
	return status, healthy
}
