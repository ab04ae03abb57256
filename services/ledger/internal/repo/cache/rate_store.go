package cache

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"

	"paylock/services/ledger/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	rateKeyPrefix     = "rate:"
	rateCurrenciesKey = "rates:currencies"
)

type RateStore interface {
	// Rate returns currency units per USD, or entity.ErrRateUnavailable when no fresh rate exists.
	Rate(ctx context.Context, currency string) (*big.Rat, error)
	SetRate(ctx context.Context, currency string, rate *big.Rat) (*entity.ExchangeRate, error)
	ListRates(ctx context.Context) ([]*entity.ExchangeRate, error)
}

type rateStore struct {
	client redis.Cmdable
	ttl    time.Duration
	now    func() time.Time
}

// NewRateStore stores rates as "<rational>|<unix seconds>" under rate:<CUR>, each expiring after ttl.
func NewRateStore(client redis.Cmdable, ttl time.Duration) RateStore {
	return &rateStore{client: client, ttl: ttl, now: time.Now}
}

func rateKey(currency string) string {
	return rateKeyPrefix + entity.NormalizeCurrency(currency)
}

func (s *rateStore) Rate(ctx context.Context, currency string) (*big.Rat, error) {
	raw, err := s.client.Get(ctx, rateKey(currency)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, entity.ErrRateUnavailable
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrRateUnavailable, err)
	}

	rate, _, err := decodeRate(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrRateUnavailable, err)
	}
	return rate, nil
}

func (s *rateStore) SetRate(ctx context.Context, currency string, rate *big.Rat) (*entity.ExchangeRate, error) {
	currency = entity.NormalizeCurrency(currency)
	updatedAt := s.now().UTC().Truncate(time.Second)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, rateKey(currency), encodeRate(rate, updatedAt), s.ttl)
	pipe.SAdd(ctx, rateCurrenciesKey, currency)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	return toExchangeRate(currency, rate, updatedAt), nil
}

func (s *rateStore) ListRates(ctx context.Context) ([]*entity.ExchangeRate, error) {
	currencies, err := s.client.SMembers(ctx, rateCurrenciesKey).Result()
	if err != nil {
		return nil, err
	}
	if len(currencies) == 0 {
		return []*entity.ExchangeRate{}, nil
	}
	sort.Strings(currencies)

	keys := make([]string, len(currencies))
	for i, currency := range currencies {
		keys[i] = rateKey(currency)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rates := make([]*entity.ExchangeRate, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			// expired
			continue
		}
		rate, updatedAt, err := decodeRate(raw)
		if err != nil {
			continue
		}
		rates = append(rates, toExchangeRate(currencies[i], rate, updatedAt))
	}
	return rates, nil
}

func encodeRate(rate *big.Rat, updatedAt time.Time) string {
	return rate.RatString() + "|" + strconv.FormatInt(updatedAt.Unix(), 10)
}

func decodeRate(raw string) (*big.Rat, time.Time, error) {
	ratPart, tsPart, _ := strings.Cut(raw, "|")
	rate, ok := new(big.Rat).SetString(ratPart)
	if !ok || rate.Sign() <= 0 {
		return nil, time.Time{}, fmt.Errorf("malformed rate %q", raw)
	}

	var updatedAt time.Time
	if ts, err := strconv.ParseInt(tsPart, 10, 64); err == nil {
		updatedAt = time.Unix(ts, 0).UTC()
	}
	return rate, updatedAt, nil
}

func toExchangeRate(currency string, rate *big.Rat, updatedAt time.Time) *entity.ExchangeRate {
	return &entity.ExchangeRate{
		Currency:  currency,
		Rate:      rate.FloatString(12),
		USDPrice:  new(big.Rat).Inv(rate).FloatString(6),
		UpdatedAt: updatedAt,
	}
}
