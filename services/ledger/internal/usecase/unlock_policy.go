package usecase

import (
	"paylock/services/ledger/internal/entity"
)

// UnlockState is what the ledger already knows about a requester and post.
type UnlockState struct {
	AlreadyUnlocked bool
	SeatedCount     int
}

// UnlockPolicy decides the tier and USD price of an unlock attempt.
type UnlockPolicy struct{}

func (UnlockPolicy) Quote(post *entity.Post, requesterID string, kind entity.AccessKind, wantsBuyout bool, state UnlockState) (*entity.Quote, error) {
	if err := post.Validate(); err != nil {
		return nil, err
	}

	switch {
	case requesterID != "" && requesterID == post.CreatorID:
		return &entity.Quote{Tier: entity.TierOwner}, nil
	case kind == entity.AccessContent && post.IsFree:
		return &entity.Quote{Tier: entity.TierFree}, nil
	case state.AlreadyUnlocked:
		return &entity.Quote{Tier: entity.TierAlreadyUnlocked}, nil
	}

	if kind == entity.AccessComments {
		if !post.CommentsLocked {
			return nil, entity.ErrCommentsNotLocked
		}
		return &entity.Quote{Tier: entity.TierComment, PriceUSD: *post.CommentFeeUSD}, nil
	}

	quote := &entity.Quote{Tier: entity.TierStandard, PriceUSD: post.PriceUSD}
	if post.HasBuyout() {
		remaining := post.SeatLimit() - state.SeatedCount
		if remaining < 0 {
			remaining = 0
		}
		quote.SeatsRemaining = &remaining

		if wantsBuyout && remaining > 0 {
			quote.Tier = entity.TierBuyout
			quote.PriceUSD = *post.BuyoutPriceUSD
		}
	}
	return quote, nil
}
