package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/repo/cache"
)

type NotificationUseCase interface {
	HandleUnlockEvent(ctx context.Context, body []byte) error
	GetNotifications(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error)
}

type notificationUseCase struct {
	store  cache.NotificationStore
	logger *logger.Logger
	now    func() time.Time
}

func NewNotificationUseCase(store cache.NotificationStore, logger *logger.Logger) NotificationUseCase {
	return &notificationUseCase{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// HandleUnlockEvent turns a published unlock into notifications for the creator and,
// for buyouts, for the new seat holder. Malformed events are rejected so the consumer
// can drop them.
func (uc *notificationUseCase) HandleUnlockEvent(ctx context.Context, body []byte) error {
	var event entity.UnlockEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("%w: undecodable unlock event: %v", entity.ErrInvalidRequest, err)
	}
	if event.PostID == "" || event.UserID == "" || event.CreatorID == "" {
		return fmt.Errorf("%w: unlock event is missing post, payer or creator", entity.ErrInvalidRequest)
	}

	for _, n := range uc.notificationsFor(&event) {
		if err := uc.store.Push(ctx, n); err != nil {
			return err
		}
		uc.logger.Info("[NOTIFICATION] %s notification for %s about post %s", n.Type, n.UserID, n.PostID)
	}
	return nil
}

func (uc *notificationUseCase) notificationsFor(event *entity.UnlockEvent) []*entity.Notification {
	createdAt := event.OccurredAt
	if createdAt.IsZero() {
		createdAt = uc.now().UTC()
	}
	data := map[string]interface{}{
		"payer_id":    event.UserID,
		"tier":        string(event.Tier),
		"amount_usd":  event.AmountUSD.String(),
		"creator_usd": event.CreatorUSD.String(),
	}

	creator := &entity.Notification{
		UserID:    event.CreatorID,
		PostID:    event.PostID,
		Data:      data,
		CreatedAt: createdAt,
	}
	switch {
	case event.AccessKind == entity.AccessComments:
		creator.Type = entity.NotificationCommentPaid
		creator.Title = "Comments unlocked"
		creator.Message = fmt.Sprintf("Someone paid $%s to join the discussion on your post", event.AmountUSD)
	case event.Tier == entity.TierBuyout:
		creator.Type = entity.NotificationBuyout
		creator.Title = "New investor"
		creator.Message = fmt.Sprintf("Someone bought investor seat #%d on your post for $%s", positionOf(event), event.AmountUSD)
	default:
		creator.Type = entity.NotificationUnlock
		creator.Title = "New unlock"
		creator.Message = fmt.Sprintf("Your post was unlocked for $%s, you earned $%s", event.AmountUSD, event.CreatorUSD)
	}

	out := []*entity.Notification{creator}
	if event.Tier == entity.TierBuyout && event.Position != nil {
		out = append(out, &entity.Notification{
			UserID:    event.UserID,
			Title:     "Investor seat claimed",
			Message:   fmt.Sprintf("You hold seat #%d and earn a share of every later unlock", *event.Position),
			Type:      entity.NotificationSeatClaimed,
			PostID:    event.PostID,
			Data:      map[string]interface{}{"position": *event.Position},
			CreatedAt: createdAt,
		})
	}
	return out
}

func positionOf(event *entity.UnlockEvent) int {
	if event.Position == nil {
		return 0
	}
	return *event.Position
}

func (uc *notificationUseCase) GetNotifications(ctx context.Context, userID string, limit, offset int) ([]*entity.Notification, int64, error) {
	return uc.store.List(ctx, userID, limit, offset)
}
