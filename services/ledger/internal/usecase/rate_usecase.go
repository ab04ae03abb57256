package usecase

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/repo/cache"
)

type RateUseCase interface {
	// SetRate stores either a rate (units per USD) or a USD price per unit; exactly one must be set.
	SetRate(ctx context.Context, currency, rate, usdPrice string) (*entity.ExchangeRate, error)
	ListRates(ctx context.Context) ([]*entity.ExchangeRate, error)
}

type rateUseCase struct {
	store     cache.RateStore
	reference string
	logger    *logger.Logger
}

func NewRateUseCase(store cache.RateStore, referenceCurrency string, logger *logger.Logger) RateUseCase {
	return &rateUseCase{
		store:     store,
		reference: entity.NormalizeCurrency(referenceCurrency),
		logger:    logger,
	}
}

func (uc *rateUseCase) SetRate(ctx context.Context, currency, rate, usdPrice string) (*entity.ExchangeRate, error) {
	currency = entity.NormalizeCurrency(currency)
	if currency == "" || len(currency) > 10 {
		return nil, fmt.Errorf("%w: invalid currency", entity.ErrInvalidRequest)
	}
	if currency == uc.reference {
		return nil, fmt.Errorf("%w: %s is the reference currency", entity.ErrInvalidRequest, currency)
	}

	rate, usdPrice = strings.TrimSpace(rate), strings.TrimSpace(usdPrice)
	if (rate == "") == (usdPrice == "") {
		return nil, fmt.Errorf("%w: provide exactly one of rate or usd_price", entity.ErrInvalidRequest)
	}

	raw := rate
	if raw == "" {
		raw = usdPrice
	}
	value, ok := new(big.Rat).SetString(raw)
	if !ok || value.Sign() <= 0 {
		return nil, fmt.Errorf("%w: rate must be a positive number", entity.ErrInvalidRequest)
	}
	if usdPrice != "" {
		value.Inv(value)
	}

	stored, err := uc.store.SetRate(ctx, currency, value)
	if err != nil {
		uc.logger.Error("Failed to store %s rate: %v", currency, err)
		return nil, fmt.Errorf("failed to store rate: %w", err)
	}

	uc.logger.Info("Rate for %s set to %s per USD", currency, stored.Rate)
	return stored, nil
}

func (uc *rateUseCase) ListRates(ctx context.Context) ([]*entity.ExchangeRate, error) {
	rates, err := uc.store.ListRates(ctx)
	if err != nil {
		uc.logger.Error("Failed to list rates: %v", err)
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	return rates, nil
}
