package workers

import (
	"context"
	"fmt"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/services"

	"golang.org/x/sync/errgroup"
)

const notificationGroup = "notification-workers"

// NotificationWorker drains the notification stream and hands each item to
// the mail provider. Failed sends are logged and acked anyway; a stuck
// message must never wedge the queue.
type NotificationWorker struct {
	queue         *common.NotificationQueueService
	notifications *services.NotificationService
}

func NewNotificationWorker(queue *common.NotificationQueueService, notifications *services.NotificationService) *NotificationWorker {
	return &NotificationWorker{
		queue:         queue,
		notifications: notifications,
	}
}

// Start runs numWorkers consumers against the stream until ctx is done.
func (w *NotificationWorker) Start(ctx context.Context, numWorkers int) error {
	if err := w.queue.CreateConsumerGroup(ctx, services.NotificationStream, notificationGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	logging.Info("Notification workers starting",
		"stream", services.NotificationStream,
		"workers", numWorkers,
	)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		consumerName := fmt.Sprintf("notify-worker-%d", i)
		g.Go(func() error {
			w.consume(gctx, consumerName)
			return nil
		})
	}

	return g.Wait()
}

func (w *NotificationWorker) consume(ctx context.Context, consumerName string) {
	processed := 0
	failed := 0

	for {
		select {
		case <-ctx.Done():
			logging.Info("Notification worker stopping",
				"consumer", consumerName,
				"processed", processed,
				"failed", failed,
			)
			return
		default:
		}

		item, messageID, err := w.queue.Dequeue(ctx, services.NotificationStream, notificationGroup, consumerName, 5*time.Second)
		if err != nil {
			logging.Warn("Notification dequeue failed",
				"consumer", consumerName,
				"error", err.Error(),
			)
			time.Sleep(2 * time.Second)
			continue
		}
		if item == nil {
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		if err := w.notifications.SendNow(sendCtx, item); err != nil {
			failed++
		} else {
			processed++
		}
		cancel()

		if err := w.queue.Ack(ctx, services.NotificationStream, notificationGroup, messageID); err != nil {
			logging.Warn("Notification ack failed",
				"consumer", consumerName,
				"message_id", messageID,
				"error", err.Error(),
			)
		}
	}
}
