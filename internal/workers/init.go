package workers

import (
	"context"

	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/services"
)

type WorkersContainer struct {
	Notifications *NotificationWorker
}

func InitWorkers(
	ctx context.Context,
	queue *common.NotificationQueueService,
	notifications *services.NotificationService,
) *WorkersContainer {
	if queue == nil {
		// Without Redis, dispatch already falls back to direct sends
		logging.Warn("Notification queue not configured, workers disabled")
		return &WorkersContainer{}
	}

	worker := NewNotificationWorker(queue, notifications)

	go func() {
		if err := worker.Start(ctx, 3); err != nil {
			logging.Error("Notification workers exited", "error", err.Error())
		}
	}()

	return &WorkersContainer{
		Notifications: worker,
	}
}
