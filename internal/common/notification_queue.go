package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NotificationQueueService provides queue functionality using Redis Streams.
// Notifications are best-effort: enqueue failures are logged by callers and
// never propagated back to the state transition that triggered them.
type NotificationQueueService struct {
	client *redis.Client
}

// NewNotificationQueueService creates a new Redis-backed notification queue
func NewNotificationQueueService(client *redis.Client) *NotificationQueueService {
	return &NotificationQueueService{
		client: client,
	}
}

// NotificationKind names the state transition that produced a notification.
type NotificationKind string

const (
	AssignmentMade        NotificationKind = "assignment_made"
	EventModified         NotificationKind = "event_modified"
	EventCancelled        NotificationKind = "event_cancelled"
	CertificationExpiring NotificationKind = "certification_expiring"
	AccountStatusChanged  NotificationKind = "account_status_changed"
)

// NotificationItem is one templated message waiting to be rendered and sent.
type NotificationItem struct {
	Kind           NotificationKind  `json:"kind"`
	RecipientEmail string            `json:"recipient_email"`
	RecipientName  string            `json:"recipient_name"`
	Fields         map[string]string `json:"fields"`
	EnqueuedAt     time.Time         `json:"enqueued_at"`
}

// Enqueue adds a notification to the dispatch queue using a Redis Stream
func (s *NotificationQueueService) Enqueue(ctx context.Context, streamName string, item *NotificationItem) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	// XADD stream_name * data <json>
	args := &redis.XAddArgs{
		Stream: streamName,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}

	_, err = s.client.XAdd(ctx, args).Result()
	if err != nil {
		return fmt.Errorf("failed to add to stream: %w", err)
	}

	return nil
}

// Dequeue reads one notification from the queue using a consumer group.
// Returns (item, messageID, error); a nil item with nil error means the
// blocking read timed out with nothing pending.
func (s *NotificationQueueService) Dequeue(ctx context.Context, streamName, groupName, consumerName string, blockTime time.Duration) (*NotificationItem, string, error) {
	args := &redis.XReadGroupArgs{
		Group:    groupName,
		Consumer: consumerName,
		Streams:  []string{streamName, ">"}, // ">" means new messages only
		Count:    1,
		Block:    blockTime,
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read from stream: %w", err)
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, "", nil
	}

	msg := streams[0].Messages[0]

	dataStr, ok := msg.Values["data"].(string)
	if !ok {
		return nil, "", fmt.Errorf("invalid message format: data field missing")
	}

	var item NotificationItem
	if err := json.Unmarshal([]byte(dataStr), &item); err != nil {
		return nil, "", fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	return &item, msg.ID, nil
}

// Ack acknowledges successful processing of a message
func (s *NotificationQueueService) Ack(ctx context.Context, streamName, groupName, messageID string) error {
	return s.client.XAck(ctx, streamName, groupName, messageID).Err()
}

// CreateConsumerGroup creates a consumer group for the stream if it doesn't exist
func (s *NotificationQueueService) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	// XGROUP CREATE stream group 0 MKSTREAM
	err := s.client.XGroupCreateMkStream(ctx, streamName, groupName, "0").Err()
	if err != nil && err.Error() == "BUSYGROUP Consumer Group name already exists" {
		return nil
	}
	return err
}

// QueueLength returns the number of messages in the stream
func (s *NotificationQueueService) QueueLength(ctx context.Context, streamName string) (int64, error) {
	length, err := s.client.XLen(ctx, streamName).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to get queue length: %w", err)
	}
	return length, nil
}
