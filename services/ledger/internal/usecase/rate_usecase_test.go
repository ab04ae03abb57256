package usecase

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/repo/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateStore struct {
	mock.Mock
}

func (m *MockRateStore) Rate(ctx context.Context, currency string) (*big.Rat, error) {
	args := m.Called(ctx, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*big.Rat), args.Error(1)
}

func (m *MockRateStore) SetRate(ctx context.Context, currency string, rate *big.Rat) (*entity.ExchangeRate, error) {
	args := m.Called(ctx, currency, rate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ExchangeRate), args.Error(1)
}

func (m *MockRateStore) ListRates(ctx context.Context) ([]*entity.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.ExchangeRate), args.Error(1)
}

var _ cache.RateStore = (*MockRateStore)(nil)

func ratEquals(want *big.Rat) interface{} {
	return mock.MatchedBy(func(got *big.Rat) bool { return got.Cmp(want) == 0 })
}

func TestSetRate_FromUSDPrice(t *testing.T) {
	store := new(MockRateStore)
	uc := NewRateUseCase(store, "USDC", logger.New())
	ctx := context.Background()

	stored := &entity.ExchangeRate{Currency: "ETH", Rate: "0.000400000000", USDPrice: "2500.000000"}
	store.On("SetRate", ctx, "ETH", ratEquals(big.NewRat(1, 2500))).Return(stored, nil)

	rate, err := uc.SetRate(ctx, "eth", "", "2500")
	require.NoError(t, err)
	assert.Equal(t, stored, rate)
	store.AssertExpectations(t)
}

func TestSetRate_FromRate(t *testing.T) {
	store := new(MockRateStore)
	uc := NewRateUseCase(store, "USDC", logger.New())
	ctx := context.Background()

	store.On("SetRate", ctx, "SOL", ratEquals(big.NewRat(1, 100))).Return(&entity.ExchangeRate{Currency: "SOL"}, nil)

	_, err := uc.SetRate(ctx, "SOL", "0.01", "")
	require.NoError(t, err)
	store.AssertExpectations(t)
}

func TestSetRate_RejectsBadInput(t *testing.T) {
	store := new(MockRateStore)
	uc := NewRateUseCase(store, "USDC", logger.New())
	ctx := context.Background()

	cases := [][3]string{
		{"USDC", "1", ""},
		{"", "1", ""},
		{"ETH", "", ""},
		{"ETH", "1", "1"},
		{"ETH", "-3", ""},
		{"ETH", "0", ""},
		{"ETH", "abc", ""},
	}
	for _, c := range cases {
		_, err := uc.SetRate(ctx, c[0], c[1], c[2])
		assert.ErrorIs(t, err, entity.ErrInvalidRequest, c)
	}
	store.AssertNotCalled(t, "SetRate", mock.Anything, mock.Anything, mock.Anything)
}

func TestListRates(t *testing.T) {
	store := new(MockRateStore)
	uc := NewRateUseCase(store, "USDC", logger.New())
	ctx := context.Background()

	store.On("ListRates", ctx).Return([]*entity.ExchangeRate{{Currency: "ETH"}}, nil).Once()
	rates, err := uc.ListRates(ctx)
	require.NoError(t, err)
	assert.Len(t, rates, 1)

	store.On("ListRates", ctx).Return(nil, errors.New("redis down")).Once()
	_, err = uc.ListRates(ctx)
	assert.Error(t, err)
}
