package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paylock/services/ledger/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	notificationKeyPrefix = "notifications:"
	maxNotifications      = 100
	notificationTTL       = 30 * 24 * time.Hour
)

type NotificationStore interface {
	Push(ctx context.Context, notification *entity.Notification) error
	List(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error)
}

type notificationStore struct {
	client redis.Cmdable
}

func NewNotificationStore(client redis.Cmdable) NotificationStore {
	return &notificationStore{client: client}
}

func notificationKey(userID string) string {
	return notificationKeyPrefix + userID
}

// Push prepends the notification to the user's list, keeps the newest entries and
// announces it on the user's pub/sub channel.
func (s *notificationStore) Push(ctx context.Context, notification *entity.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := notificationKey(notification.UserID)
	pipe := s.client.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, maxNotifications-1)
	pipe.Expire(ctx, key, notificationTTL)
	pipe.Publish(ctx, key, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store notification for %s: %w", notification.UserID, err)
	}
	return nil
}

func (s *notificationStore) List(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	key := notificationKey(userID)
	raw, err := s.client.LRange(ctx, key, int64(offset), int64(offset+limit-1)).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get notifications: %w", err)
	}

	notifications := make([]*entity.Notification, 0, len(raw))
	for _, item := range raw {
		var n entity.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		notifications = append(notifications, &n)
	}

	total, err := s.client.LLen(ctx, key).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}
	return notifications, total, nil
}
