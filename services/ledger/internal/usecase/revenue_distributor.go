package usecase

import (
	"paylock/services/ledger/internal/entity"
)

type SplitMode string

const (
	// SplitWithhold divides the pool by max investors; unfilled shares stay with the creator.
	SplitWithhold SplitMode = "withhold"
	// SplitRedistribute divides the pool among the seats filled at commit time.
	SplitRedistribute SplitMode = "redistribute"
)

func ParseSplitMode(s string) SplitMode {
	if SplitMode(s) == SplitRedistribute {
		return SplitRedistribute
	}
	return SplitWithhold
}

// RevenueDistributor splits a payment between platform, investors and creator.
type RevenueDistributor struct {
	platformFee entity.Money
	mode        SplitMode
}

func NewRevenueDistributor(platformFee entity.Money, mode SplitMode) *RevenueDistributor {
	return &RevenueDistributor{platformFee: platformFee, mode: mode}
}

func (d *RevenueDistributor) PlatformFee(amountPaid entity.Money) entity.Money {
	if amountPaid <= 0 {
		return 0
	}
	if d.platformFee > amountPaid {
		return amountPaid
	}
	return d.platformFee
}

// Distribute credits every seat in seats equally. Pass no seats for comment unlocks.
// Rounding residue goes to the creator, so the parts always sum to amountPaid.
func (d *RevenueDistributor) Distribute(post *entity.Post, amountPaid entity.Money, seats []*entity.InvestorSeat) *entity.Distribution {
	fee := d.PlatformFee(amountPaid)
	distributable := amountPaid - fee

	dist := &entity.Distribution{
		AmountPaidUSD:  amountPaid,
		PlatformFeeUSD: fee,
		CreatorUSD:     distributable,
	}
	if len(seats) == 0 || post.InvestorRevenueSharePct <= 0 || distributable <= 0 {
		return dist
	}

	pool := distributable * entity.Money(post.InvestorRevenueSharePct) / 100
	divisor := post.SeatLimit()
	if d.mode == SplitRedistribute || divisor < len(seats) {
		divisor = len(seats)
	}
	perSeat := pool / entity.Money(divisor)

	dist.InvestorPoolUSD = pool
	dist.PerSeatUSD = perSeat
	dist.SeatCredits = make([]entity.SeatCredit, len(seats))
	for i, seat := range seats {
		dist.SeatCredits[i] = entity.SeatCredit{
			Position:     seat.Position,
			HolderUserID: seat.HolderUserID,
			AmountUSD:    perSeat,
		}
		dist.InvestorPaidUSD += perSeat
	}
	dist.CreatorUSD = distributable - dist.InvestorPaidUSD
	return dist
}
