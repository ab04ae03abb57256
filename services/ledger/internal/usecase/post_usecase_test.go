package usecase

import (
	"context"
	"testing"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/repo/persistent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishPost_NormalizesTerms(t *testing.T) {
	db := setupLedgerTestDB(t)
	uc := NewPostUseCase(persistent.NewPostRepository(db), logger.New())

	post, err := uc.PublishPost(context.Background(), "creator", PublishPostInput{
		Title:                   "  Deep dive  ",
		PriceUSD:                entity.USD(2),
		BuyoutPriceUSD:          entity.MoneyPtr(entity.USD(20)),
		InvestorRevenueSharePct: 40,
		CommentFeeUSD:           entity.MoneyPtr(entity.Cents(25)),
		AcceptedCurrencies:      []string{"usdc", " eth", "USDC", ""},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Equal(t, "Deep dive", post.Title)
	assert.Equal(t, defaultMaxInvestors, *post.MaxInvestors)
	assert.Nil(t, post.CommentFeeUSD, "fee is dropped while comments are open")
	assert.Equal(t, []string{"USDC", "ETH"}, post.AcceptedCurrencies)

	stored, err := uc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.USD(20), *stored.Post.BuyoutPriceUSD)
	assert.Equal(t, []string{"USDC", "ETH"}, stored.Post.AcceptedCurrencies)
	assert.Equal(t, 0, stored.InvestorCount)
	assert.Equal(t, defaultMaxInvestors, *stored.SeatsRemaining)
}

func TestPublishPost_DropsSeatsWithoutBuyout(t *testing.T) {
	db := setupLedgerTestDB(t)
	uc := NewPostUseCase(persistent.NewPostRepository(db), logger.New())

	post, err := uc.PublishPost(context.Background(), "creator", PublishPostInput{
		Title:          "No buyout",
		PriceUSD:       entity.USD(1),
		BuyoutPriceUSD: entity.MoneyPtr(0),
		MaxInvestors:   intPtr(5),
	})
	require.NoError(t, err)
	assert.Nil(t, post.BuyoutPriceUSD)
	assert.Nil(t, post.MaxInvestors)
}

func TestPublishPost_RejectsInvalidTerms(t *testing.T) {
	db := setupLedgerTestDB(t)
	uc := NewPostUseCase(persistent.NewPostRepository(db), logger.New())
	ctx := context.Background()

	inputs := []PublishPostInput{
		{Title: "zero price"},
		{Title: "too many seats", PriceUSD: entity.USD(1), BuyoutPriceUSD: entity.MoneyPtr(entity.USD(5)), MaxInvestors: intPtr(101)},
		{Title: "bad share", PriceUSD: entity.USD(1), InvestorRevenueSharePct: 150},
		{Title: "locked without fee", PriceUSD: entity.USD(1), CommentsLocked: true},
		{Title: "   ", PriceUSD: entity.USD(1)},
	}
	for _, input := range inputs {
		_, err := uc.PublishPost(ctx, "creator", input)
		assert.ErrorIs(t, err, entity.ErrInvalidPost, input.Title)
	}

	_, err := uc.PublishPost(ctx, "", PublishPostInput{Title: "anon", PriceUSD: entity.USD(1)})
	assert.ErrorIs(t, err, entity.ErrInvalidRequest)
}

func TestGetPost_CountsFromLedger(t *testing.T) {
	f := newLedgerFixture(t, LedgerOptions{})
	post := f.publish(t, scenarioBPost(10))
	uc := NewPostUseCase(f.posts, logger.New())

	_, err := f.pay(post.ID, "x", entity.AccessContent, true, "5")
	require.NoError(t, err)
	_, err = f.pay(post.ID, "y", entity.AccessContent, false, "1")
	require.NoError(t, err)
	_, err = f.pay(post.ID, "y", entity.AccessComments, false, "0.10")
	require.NoError(t, err)

	details, err := uc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, details.InvestorCount)
	assert.Equal(t, 2, details.TotalUnlocks)
	assert.Equal(t, 1, details.CommentUnlocks)
	assert.Equal(t, 9, *details.SeatsRemaining)

	_, err = uc.GetPost(context.Background(), "missing")
	assert.ErrorIs(t, err, entity.ErrPostNotFound)
}
