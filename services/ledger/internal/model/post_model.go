package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Monetary columns hold micro-USD.
type PostModel struct {
	ID                      string    `gorm:"type:uuid;primary_key" json:"id"`
	CreatorID               string    `gorm:"type:varchar(100);not null;index" json:"creator_id"`
	Title                   string    `gorm:"type:varchar(255);not null" json:"title"`
	Description             string    `gorm:"type:text" json:"description"`
	PriceMicros             int64     `gorm:"not null;default:0" json:"price_micros"`
	IsFree                  bool      `gorm:"not null;default:false" json:"is_free"`
	BuyoutPriceMicros       *int64    `json:"buyout_price_micros"`
	MaxInvestors            *int      `json:"max_investors"`
	InvestorRevenueSharePct int       `gorm:"not null;default:0" json:"investor_revenue_share_pct"`
	CommentsLocked          bool      `gorm:"not null;default:false" json:"comments_locked"`
	CommentFeeMicros        *int64    `json:"comment_fee_micros"`
	AcceptedCurrencies      string    `gorm:"type:varchar(255)" json:"accepted_currencies"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
