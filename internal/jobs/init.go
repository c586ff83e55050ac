package jobs

import (
	"context"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/services"
)

type JobsContainer struct {
	CertExpiry *CertExpiryJob
}

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	certs *services.CertificationService,
) *JobsContainer {
	certExpiryJob := NewCertExpiryJob(certs)

	// Hourly sweep in the background
	go certExpiryJob.RunScheduled(ctx, 1*time.Hour)

	return &JobsContainer{
		CertExpiry: certExpiryJob,
	}
}
