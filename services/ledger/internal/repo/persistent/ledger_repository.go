package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerTx is the view of the ledger available while a post lock is held.
// Every call runs inside the same database transaction.
type LedgerTx interface {
	FindUnlock(postID, userID string, kind entity.AccessKind) (*entity.UnlockRecord, error)
	ProofUsed(proof string) (bool, error)
	ListSeats(postID string) ([]*entity.InvestorSeat, error)
	CreateSeat(seat *entity.InvestorSeat) error
	CreateUnlock(record *entity.UnlockRecord) error
	SetUnlockSplit(recordID string, creator, investor entity.Money) error
	CreatePlatformFee(fee *entity.PlatformFeeRecord) error
	CreditSeats(postID string, amount entity.Money, expected int) error
}

type LedgerRepository interface {
	// WithPostLock runs fn in a transaction holding a row lock on the post.
	// Commits on the same post are serialized; fn's error rolls everything back.
	WithPostLock(ctx context.Context, postID string, fn func(tx LedgerTx, post *entity.Post) error) error
	FindUnlock(ctx context.Context, postID, userID string, kind entity.AccessKind) (*entity.UnlockRecord, error)
	CountSeats(ctx context.Context, postID string) (int, error)
	ListSeats(ctx context.Context, postID string) ([]*entity.InvestorSeat, error)
	GetSeat(ctx context.Context, postID, userID string) (*entity.InvestorSeat, error)
	GetPlatformFee(ctx context.Context, unlockRecordID string) (*entity.PlatformFeeRecord, error)
	GetInvestorEarnings(ctx context.Context, userID string) ([]*entity.InvestorEarning, error)
	GetCreatorEarnings(ctx context.Context, creatorID string) ([]*entity.CreatorPostEarnings, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) WithPostLock(ctx context.Context, postID string, fn func(tx LedgerTx, post *entity.Post) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postModel model.PostModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", postID).First(&postModel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return entity.ErrPostNotFound
			}
			return err
		}
		return fn(&ledgerTx{db: tx}, ToPostEntity(&postModel))
	})
}

func (r *ledgerRepository) FindUnlock(ctx context.Context, postID, userID string, kind entity.AccessKind) (*entity.UnlockRecord, error) {
	return (&ledgerTx{db: r.db.WithContext(ctx)}).FindUnlock(postID, userID, kind)
}

func (r *ledgerRepository) CountSeats(ctx context.Context, postID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.InvestorSeatModel{}).Where("post_id = ?", postID).Count(&count).Error
	return int(count), err
}

func (r *ledgerRepository) ListSeats(ctx context.Context, postID string) ([]*entity.InvestorSeat, error) {
	return (&ledgerTx{db: r.db.WithContext(ctx)}).ListSeats(postID)
}

func (r *ledgerRepository) GetSeat(ctx context.Context, postID, userID string) (*entity.InvestorSeat, error) {
	var seatModel model.InvestorSeatModel
	err := r.db.WithContext(ctx).Where("post_id = ? AND holder_user_id = ?", postID, userID).First(&seatModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToInvestorSeatEntity(&seatModel), nil
}

func (r *ledgerRepository) GetPlatformFee(ctx context.Context, unlockRecordID string) (*entity.PlatformFeeRecord, error) {
	var feeModel model.PlatformFeeRecordModel
	err := r.db.WithContext(ctx).Where("unlock_record_id = ?", unlockRecordID).First(&feeModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToPlatformFeeEntity(&feeModel), nil
}

type investorEarningRow struct {
	PostID                string
	PostTitle             string
	Position              int
	EarningsAccruedMicros int64
	TotalUnlocks          int64
	SeatedAt              time.Time
}

func (r *ledgerRepository) GetInvestorEarnings(ctx context.Context, userID string) ([]*entity.InvestorEarning, error) {
	var rows []investorEarningRow
	err := r.db.WithContext(ctx).
		Table("investor_seats AS s").
		Select(`s.post_id, p.title AS post_title, s.position, s.earnings_accrued_micros, s.seated_at,
			(SELECT COUNT(*) FROM unlock_records u WHERE u.post_id = s.post_id AND u.access_kind = ?) AS total_unlocks`,
			string(entity.AccessContent)).
		Joins("JOIN posts p ON p.id = s.post_id").
		Where("s.holder_user_id = ?", userID).
		Order("s.seated_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	earnings := make([]*entity.InvestorEarning, len(rows))
	for i, row := range rows {
		earnings[i] = &entity.InvestorEarning{
			PostID:             row.PostID,
			PostTitle:          row.PostTitle,
			Position:           row.Position,
			EarningsAccruedUSD: entity.Money(row.EarningsAccruedMicros),
			TotalUnlocksOnPost: int(row.TotalUnlocks),
			SeatedAt:           row.SeatedAt,
		}
	}
	return earnings, nil
}

type creatorEarningRow struct {
	PostID         string
	PostTitle      string
	Unlocks        int64
	Gross          int64
	Fees           int64
	InvestorPayout int64
	Creator        int64
}

func (r *ledgerRepository) GetCreatorEarnings(ctx context.Context, creatorID string) ([]*entity.CreatorPostEarnings, error) {
	var rows []creatorEarningRow
	err := r.db.WithContext(ctx).
		Table("posts AS p").
		Select(`p.id AS post_id, p.title AS post_title, COUNT(u.id) AS unlocks,
			COALESCE(SUM(u.amount_paid_micros), 0) AS gross,
			COALESCE(SUM(f.amount_micros), 0) AS fees,
			COALESCE(SUM(u.investor_amount_micros), 0) AS investor_payout,
			COALESCE(SUM(u.creator_amount_micros), 0) AS creator`).
		Joins("LEFT JOIN unlock_records u ON u.post_id = p.id").
		Joins("LEFT JOIN platform_fee_records f ON f.unlock_record_id = u.id").
		Where("p.creator_id = ?", creatorID).
		Group("p.id, p.title, p.created_at").
		Order("p.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	earnings := make([]*entity.CreatorPostEarnings, len(rows))
	for i, row := range rows {
		earnings[i] = &entity.CreatorPostEarnings{
			PostID:             row.PostID,
			PostTitle:          row.PostTitle,
			Unlocks:            int(row.Unlocks),
			GrossUSD:           entity.Money(row.Gross),
			PlatformFeesUSD:    entity.Money(row.Fees),
			InvestorPayoutsUSD: entity.Money(row.InvestorPayout),
			CreatorUSD:         entity.Money(row.Creator),
		}
	}
	return earnings, nil
}

type ledgerTx struct {
	db *gorm.DB
}

func (t *ledgerTx) FindUnlock(postID, userID string, kind entity.AccessKind) (*entity.UnlockRecord, error) {
	var recordModel model.UnlockRecordModel
	err := t.db.Where("post_id = ? AND user_id = ? AND access_kind = ?", postID, userID, string(kind)).First(&recordModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToUnlockRecordEntity(&recordModel), nil
}

func (t *ledgerTx) ProofUsed(proof string) (bool, error) {
	var count int64
	err := t.db.Model(&model.UnlockRecordModel{}).Where("transaction_proof = ?", proof).Count(&count).Error
	return count > 0, err
}

func (t *ledgerTx) ListSeats(postID string) ([]*entity.InvestorSeat, error) {
	var seatModels []model.InvestorSeatModel
	if err := t.db.Where("post_id = ?", postID).Order("position ASC").Find(&seatModels).Error; err != nil {
		return nil, err
	}

	seats := make([]*entity.InvestorSeat, len(seatModels))
	for i := range seatModels {
		seats[i] = ToInvestorSeatEntity(&seatModels[i])
	}
	return seats, nil
}

func (t *ledgerTx) CreateSeat(seat *entity.InvestorSeat) error {
	seatModel := ToInvestorSeatModel(seat)
	if err := t.db.Create(seatModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrSeatsFull
		}
		return err
	}
	seat.ID = seatModel.ID
	return nil
}

func (t *ledgerTx) CreateUnlock(record *entity.UnlockRecord) error {
	recordModel := ToUnlockRecordModel(record)
	if err := t.db.Create(recordModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return entity.ErrAlreadyUnlocked
		}
		return err
	}
	record.ID = recordModel.ID
	return nil
}

func (t *ledgerTx) SetUnlockSplit(recordID string, creator, investor entity.Money) error {
	result := t.db.Model(&model.UnlockRecordModel{}).
		Where("id = ?", recordID).
		Updates(map[string]interface{}{
			"creator_amount_micros":  creator.Micros(),
			"investor_amount_micros": investor.Micros(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("unlock record %s not found", recordID)
	}
	return nil
}

func (t *ledgerTx) CreatePlatformFee(fee *entity.PlatformFeeRecord) error {
	feeModel := ToPlatformFeeModel(fee)
	if err := t.db.Create(feeModel).Error; err != nil {
		return err
	}
	fee.ID = feeModel.ID
	fee.CreatedAt = feeModel.CreatedAt
	return nil
}

// CreditSeats adds amount to every seat on the post in a single statement.
func (t *ledgerTx) CreditSeats(postID string, amount entity.Money, expected int) error {
	result := t.db.Model(&model.InvestorSeatModel{}).
		Where("post_id = ?", postID).
		UpdateColumn("earnings_accrued_micros", gorm.Expr("earnings_accrued_micros + ?", amount.Micros()))
	if result.Error != nil {
		return result.Error
	}
	if int(result.RowsAffected) != expected {
		return fmt.Errorf("credited %d seats, expected %d", result.RowsAffected, expected)
	}
	return nil
}
