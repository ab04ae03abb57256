package persistent

import (
	"strings"

	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:                      m.ID,
		CreatorID:               m.CreatorID,
		Title:                   m.Title,
		Description:             m.Description,
		PriceUSD:                entity.Money(m.PriceMicros),
		IsFree:                  m.IsFree,
		BuyoutPriceUSD:          toMoneyPtr(m.BuyoutPriceMicros),
		InvestorRevenueSharePct: m.InvestorRevenueSharePct,
		CommentsLocked:          m.CommentsLocked,
		CommentFeeUSD:           toMoneyPtr(m.CommentFeeMicros),
		CreatedAt:               m.CreatedAt,
	}

	if m.MaxInvestors != nil {
		maxInvestors := *m.MaxInvestors
		post.MaxInvestors = &maxInvestors
	}
	if m.AcceptedCurrencies != "" {
		post.AcceptedCurrencies = strings.Split(m.AcceptedCurrencies, ",")
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	post := &model.PostModel{
		ID:                      e.ID,
		CreatorID:               e.CreatorID,
		Title:                   e.Title,
		Description:             e.Description,
		PriceMicros:             e.PriceUSD.Micros(),
		IsFree:                  e.IsFree,
		BuyoutPriceMicros:       toMicrosPtr(e.BuyoutPriceUSD),
		InvestorRevenueSharePct: e.InvestorRevenueSharePct,
		CommentsLocked:          e.CommentsLocked,
		CommentFeeMicros:        toMicrosPtr(e.CommentFeeUSD),
		AcceptedCurrencies:      strings.Join(e.AcceptedCurrencies, ","),
		CreatedAt:               e.CreatedAt,
	}

	if e.MaxInvestors != nil {
		maxInvestors := *e.MaxInvestors
		post.MaxInvestors = &maxInvestors
	}

	return post
}

func ToUnlockRecordEntity(m *model.UnlockRecordModel) *entity.UnlockRecord {
	if m == nil {
		return nil
	}

	return &entity.UnlockRecord{
		ID:                m.ID,
		PostID:            m.PostID,
		UserID:            m.UserID,
		AccessKind:        entity.AccessKind(m.AccessKind),
		Tier:              entity.Tier(m.Tier),
		AmountPaidUSD:     entity.Money(m.AmountPaidMicros),
		Currency:          m.Currency,
		Network:           m.Network,
		PayableAmount:     m.PayableAmount,
		AmountOffered:     m.AmountOffered,
		WasBuyout:         m.WasBuyout,
		Downgraded:        m.Downgraded,
		TransactionProof:  m.TransactionProof,
		CreatorAmountUSD:  entity.Money(m.CreatorAmountMicros),
		InvestorAmountUSD: entity.Money(m.InvestorAmountMicros),
		UnlockedAt:        m.UnlockedAt,
	}
}

func ToUnlockRecordModel(e *entity.UnlockRecord) *model.UnlockRecordModel {
	if e == nil {
		return nil
	}

	return &model.UnlockRecordModel{
		ID:                   e.ID,
		PostID:               e.PostID,
		UserID:               e.UserID,
		AccessKind:           string(e.AccessKind),
		Tier:                 string(e.Tier),
		AmountPaidMicros:     e.AmountPaidUSD.Micros(),
		Currency:             e.Currency,
		Network:              e.Network,
		PayableAmount:        e.PayableAmount,
		AmountOffered:        e.AmountOffered,
		WasBuyout:            e.WasBuyout,
		Downgraded:           e.Downgraded,
		TransactionProof:     e.TransactionProof,
		CreatorAmountMicros:  e.CreatorAmountUSD.Micros(),
		InvestorAmountMicros: e.InvestorAmountUSD.Micros(),
		UnlockedAt:           e.UnlockedAt,
	}
}

func ToInvestorSeatEntity(m *model.InvestorSeatModel) *entity.InvestorSeat {
	if m == nil {
		return nil
	}

	return &entity.InvestorSeat{
		ID:                 m.ID,
		PostID:             m.PostID,
		Position:           m.Position,
		HolderUserID:       m.HolderUserID,
		EarningsAccruedUSD: entity.Money(m.EarningsAccruedMicros),
		UnlockRecordID:     m.UnlockRecordID,
		SeatedAt:           m.SeatedAt,
	}
}

func ToInvestorSeatModel(e *entity.InvestorSeat) *model.InvestorSeatModel {
	if e == nil {
		return nil
	}

	return &model.InvestorSeatModel{
		ID:                    e.ID,
		PostID:                e.PostID,
		Position:              e.Position,
		HolderUserID:          e.HolderUserID,
		EarningsAccruedMicros: e.EarningsAccruedUSD.Micros(),
		UnlockRecordID:        e.UnlockRecordID,
		SeatedAt:              e.SeatedAt,
	}
}

func ToPlatformFeeEntity(m *model.PlatformFeeRecordModel) *entity.PlatformFeeRecord {
	if m == nil {
		return nil
	}

	return &entity.PlatformFeeRecord{
		ID:             m.ID,
		UnlockRecordID: m.UnlockRecordID,
		AmountUSD:      entity.Money(m.AmountMicros),
		CreatedAt:      m.CreatedAt,
	}
}

func ToPlatformFeeModel(e *entity.PlatformFeeRecord) *model.PlatformFeeRecordModel {
	if e == nil {
		return nil
	}

	return &model.PlatformFeeRecordModel{
		ID:             e.ID,
		UnlockRecordID: e.UnlockRecordID,
		AmountMicros:   e.AmountUSD.Micros(),
		CreatedAt:      e.CreatedAt,
	}
}

func toMoneyPtr(micros *int64) *entity.Money {
	if micros == nil {
		return nil
	}
	return entity.MoneyPtr(entity.Money(*micros))
}

func toMicrosPtr(m *entity.Money) *int64 {
	if m == nil {
		return nil
	}
	micros := m.Micros()
	return &micros
}
