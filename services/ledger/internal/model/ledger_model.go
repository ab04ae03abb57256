package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UnlockRecordModel struct {
	ID                   string    `gorm:"type:uuid;primary_key" json:"id"`
	PostID               string    `gorm:"type:uuid;not null;uniqueIndex:ux_unlock_post_user_kind,priority:1" json:"post_id"`
	UserID               string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_unlock_post_user_kind,priority:2;index" json:"user_id"`
	AccessKind           string    `gorm:"type:varchar(20);not null;uniqueIndex:ux_unlock_post_user_kind,priority:3" json:"access_kind"`
	Tier                 string    `gorm:"type:varchar(20);not null" json:"tier"`
	AmountPaidMicros     int64     `gorm:"not null" json:"amount_paid_micros"`
	Currency             string    `gorm:"type:varchar(10);not null" json:"currency"`
	Network              string    `gorm:"type:varchar(40)" json:"network"`
	PayableAmount        string    `gorm:"type:varchar(40);not null" json:"payable_amount"`
	AmountOffered        string    `gorm:"type:varchar(40);not null;default:''" json:"amount_offered"`
	WasBuyout            bool      `gorm:"not null;default:false" json:"was_buyout"`
	Downgraded           bool      `gorm:"not null;default:false" json:"downgraded"`
	TransactionProof     string    `gorm:"type:varchar(512);not null;uniqueIndex" json:"transaction_proof"`
	CreatorAmountMicros  int64     `gorm:"not null;default:0" json:"creator_amount_micros"`
	InvestorAmountMicros int64     `gorm:"not null;default:0" json:"investor_amount_micros"`
	UnlockedAt           time.Time `gorm:"not null;index" json:"unlocked_at"`
}

func (UnlockRecordModel) TableName() string {
	return "unlock_records"
}

func (u *UnlockRecordModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

type InvestorSeatModel struct {
	ID                    string    `gorm:"type:uuid;primary_key" json:"id"`
	PostID                string    `gorm:"type:uuid;not null;uniqueIndex:ux_seat_post_position,priority:1;uniqueIndex:ux_seat_post_holder,priority:1" json:"post_id"`
	Position              int       `gorm:"not null;uniqueIndex:ux_seat_post_position,priority:2" json:"position"`
	HolderUserID          string    `gorm:"type:varchar(100);not null;uniqueIndex:ux_seat_post_holder,priority:2;index:idx_seat_holder" json:"holder_user_id"`
	EarningsAccruedMicros int64     `gorm:"not null;default:0" json:"earnings_accrued_micros"`
	UnlockRecordID        string    `gorm:"type:uuid;not null" json:"unlock_record_id"`
	SeatedAt              time.Time `gorm:"not null" json:"seated_at"`
}

func (InvestorSeatModel) TableName() string {
	return "investor_seats"
}

func (s *InvestorSeatModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

type PlatformFeeRecordModel struct {
	ID             string    `gorm:"type:uuid;primary_key" json:"id"`
	UnlockRecordID string    `gorm:"type:uuid;not null;uniqueIndex" json:"unlock_record_id"`
	AmountMicros   int64     `gorm:"not null" json:"amount_micros"`
	CreatedAt      time.Time `json:"created_at"`
}

func (PlatformFeeRecordModel) TableName() string {
	return "platform_fee_records"
}

func (f *PlatformFeeRecordModel) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}

// AutoMigrate creates the ledger tables. Production schemas come from the goose migrations.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&PostModel{},
		&UnlockRecordModel{},
		&InvestorSeatModel{},
		&PlatformFeeRecordModel{},
	)
}
