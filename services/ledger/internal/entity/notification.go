package entity

import "time"

const (
	NotificationUnlock      = "unlock"
	NotificationCommentPaid = "comment_unlock"
	NotificationBuyout      = "buyout"
	NotificationSeatClaimed = "seat_claimed"
)

// Notification is an entry in a user's activity list, built from unlock events.
type Notification struct {
	UserID    string                 `json:"user_id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Type      string                 `json:"type"`
	PostID    string                 `json:"post_id"`
	Data      map[string]interface{} `json:"data,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
