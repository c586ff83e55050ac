package services

import (
	"context"
	"time"

	"github.com/s4ngl/iu-icems-website-sub000/internal/common"
	"github.com/s4ngl/iu-icems-website-sub000/internal/logging"
	"github.com/s4ngl/iu-icems-website-sub000/internal/metrics"
	"github.com/s4ngl/iu-icems-website-sub000/internal/providers"
)

const NotificationStream = "icems:notifications"

// Notifier dispatches templated messages triggered by state transitions.
// Dispatch never returns an error: notification is best-effort and must not
// roll back or block the transition that triggered it.
type Notifier interface {
	Dispatch(ctx context.Context, item *common.NotificationItem)
}

// NotificationService enqueues notifications onto the Redis stream for the
// worker pool, falling back to a direct async send when no queue is
// configured.
type NotificationService struct {
	queue  *common.NotificationQueueService
	mailer *providers.MailProvider
	reg    *metrics.MetricsRegistry
}

var _ Notifier = (*NotificationService)(nil)

func NewNotificationService(queue *common.NotificationQueueService, mailer *providers.MailProvider, reg *metrics.MetricsRegistry) *NotificationService {
	return &NotificationService{
		queue:  queue,
		mailer: mailer,
		reg:    reg,
	}
}

func (svc *NotificationService) Dispatch(ctx context.Context, item *common.NotificationItem) {
	if item.EnqueuedAt.IsZero() {
		item.EnqueuedAt = time.Now().UTC()
	}

	if svc.reg != nil {
		svc.reg.NotificationsQueued.WithLabelValues(string(item.Kind)).Inc()
	}

	if svc.queue != nil {
		if err := svc.queue.Enqueue(ctx, NotificationStream, item); err != nil {
			logging.Error("Failed to enqueue notification",
				"kind", item.Kind,
				"recipient", item.RecipientEmail,
				"error", err.Error(),
			)
			if svc.reg != nil {
				svc.reg.NotificationsFailed.WithLabelValues(string(item.Kind)).Inc()
			}
		}
		return
	}

	// No queue configured: send directly, detached from the request so a
	// slow mail API cannot block the state transition.
	go func(item common.NotificationItem) {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		_ = svc.SendNow(sendCtx, &item)
	}(*item)
}

// SendNow renders and sends one notification synchronously. The queue
// workers call this after a dequeue; failures count against the failed
// metric but the message is still acked, there is no retry.
func (svc *NotificationService) SendNow(ctx context.Context, item *common.NotificationItem) error {
	err := svc.mailer.Send(ctx, &providers.MailSendReq{
		To:       item.RecipientEmail,
		ToName:   item.RecipientName,
		Template: string(item.Kind),
		Fields:   item.Fields,
	})
	if err != nil {
		logging.Error("Failed to send notification",
			"kind", item.Kind,
			"recipient", item.RecipientEmail,
			"error", err.Error(),
		)
		if svc.reg != nil {
			svc.reg.NotificationsFailed.WithLabelValues(string(item.Kind)).Inc()
		}
	}
	return err
}

// NoopNotifier swallows everything; used in tests.
type NoopNotifier struct{}

func (NoopNotifier) Dispatch(ctx context.Context, item *common.NotificationItem) {}
