package jobs

import (
	"context"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/services"
)

// CertExpiryJob periodically flags approved certifications entering the
// expiring-soon window and queues a notification for each holder.
type CertExpiryJob struct {
	certs *services.CertificationService
}

func NewCertExpiryJob(certs *services.CertificationService) *CertExpiryJob {
	return &CertExpiryJob{certs: certs}
}

// Run performs a single sweep.
func (j *CertExpiryJob) Run(ctx context.Context) {
	start := time.Now()

	count, err := j.certs.NotifyExpiring(ctx)
	if err != nil {
		logging.Error("Certification expiry sweep failed", "error", err.Error())
		return
	}

	logging.Info("Certification expiry sweep completed",
		"expiring", count,
		"duration_ms", int(time.Since(start).Milliseconds()),
	)
}

// RunScheduled sweeps on the given interval until ctx is done.
func (j *CertExpiryJob) RunScheduled(ctx context.Context, interval time.Duration) {
	logging.Info("Certification expiry job scheduled", "interval", interval.String())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Info("Certification expiry job stopping")
			return
		case <-ticker.C:
			j.Run(ctx)
		}
	}
}
