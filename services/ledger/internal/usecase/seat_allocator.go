package usecase

import (
	"time"

	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/repo/persistent"
)

// SeatAllocator hands out investor seat positions. It must run under the post lock.
type SeatAllocator struct {
	now func() time.Time
}

func NewSeatAllocator() *SeatAllocator {
	return &SeatAllocator{now: time.Now}
}

// ClaimSeat creates the next dense position for userID, tied to the buyout record unlockRecordID.
func (a *SeatAllocator) ClaimSeat(tx persistent.LedgerTx, post *entity.Post, userID, unlockRecordID string) (*entity.InvestorSeat, error) {
	limit := post.SeatLimit()
	if limit == 0 {
		return nil, entity.ErrInvalidPost
	}

	seats, err := tx.ListSeats(post.ID)
	if err != nil {
		return nil, err
	}

	next := 1
	for _, seat := range seats {
		if seat.HolderUserID == userID {
			return nil, entity.ErrDuplicateSeat
		}
		if seat.Position >= next {
			next = seat.Position + 1
		}
	}
	if len(seats) >= limit || next > limit {
		return nil, entity.ErrSeatsFull
	}

	seat := &entity.InvestorSeat{
		PostID:         post.ID,
		Position:       next,
		HolderUserID:   userID,
		UnlockRecordID: unlockRecordID,
		SeatedAt:       a.now().UTC(),
	}
	if err := tx.CreateSeat(seat); err != nil {
		return nil, err
	}
	return seat, nil
}
