package usecase

import (
	"testing"

	"paylock/services/ledger/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func buyoutPost() *entity.Post {
	return &entity.Post{
		ID:                      "post-1",
		CreatorID:               "creator",
		Title:                   "Buyout",
		PriceUSD:                entity.USD(1),
		BuyoutPriceUSD:          entity.MoneyPtr(entity.USD(5)),
		MaxInvestors:            intPtr(10),
		InvestorRevenueSharePct: 50,
		CommentsLocked:          true,
		CommentFeeUSD:           entity.MoneyPtr(entity.Cents(10)),
	}
}

func TestUnlockPolicy_DecisionOrder(t *testing.T) {
	policy := UnlockPolicy{}
	post := buyoutPost()

	quote, err := policy.Quote(post, "creator", entity.AccessContent, true, UnlockState{})
	require.NoError(t, err)
	assert.Equal(t, entity.TierOwner, quote.Tier)
	assert.Equal(t, entity.Money(0), quote.PriceUSD)

	quote, err = policy.Quote(post, "alice", entity.AccessContent, true, UnlockState{AlreadyUnlocked: true})
	require.NoError(t, err)
	assert.Equal(t, entity.TierAlreadyUnlocked, quote.Tier)
	assert.Equal(t, entity.Money(0), quote.PriceUSD)

	quote, err = policy.Quote(post, "alice", entity.AccessComments, true, UnlockState{})
	require.NoError(t, err)
	assert.Equal(t, entity.TierComment, quote.Tier)
	assert.Equal(t, entity.Cents(10), quote.PriceUSD)

	quote, err = policy.Quote(post, "alice", entity.AccessContent, true, UnlockState{SeatedCount: 9})
	require.NoError(t, err)
	assert.Equal(t, entity.TierBuyout, quote.Tier)
	assert.Equal(t, entity.USD(5), quote.PriceUSD)
	assert.Equal(t, 1, *quote.SeatsRemaining)

	quote, err = policy.Quote(post, "alice", entity.AccessContent, false, UnlockState{})
	require.NoError(t, err)
	assert.Equal(t, entity.TierStandard, quote.Tier)
	assert.Equal(t, entity.USD(1), quote.PriceUSD)
}

func TestUnlockPolicy_FullSeatsFallBackToStandard(t *testing.T) {
	quote, err := UnlockPolicy{}.Quote(buyoutPost(), "alice", entity.AccessContent, true, UnlockState{SeatedCount: 10})
	require.NoError(t, err)
	assert.Equal(t, entity.TierStandard, quote.Tier)
	assert.Equal(t, entity.USD(1), quote.PriceUSD)
	assert.Equal(t, 0, *quote.SeatsRemaining)
}

func TestUnlockPolicy_FreeContent(t *testing.T) {
	post := &entity.Post{ID: "post-2", CreatorID: "creator", Title: "Free", IsFree: true}

	quote, err := UnlockPolicy{}.Quote(post, "alice", entity.AccessContent, false, UnlockState{})
	require.NoError(t, err)
	assert.Equal(t, entity.TierFree, quote.Tier)
	assert.False(t, quote.Tier.Paid())

	_, err = UnlockPolicy{}.Quote(post, "alice", entity.AccessComments, false, UnlockState{})
	assert.ErrorIs(t, err, entity.ErrCommentsNotLocked)
}

func TestUnlockPolicy_InvalidTerms(t *testing.T) {
	post := buyoutPost()
	post.MaxInvestors = intPtr(0)

	_, err := UnlockPolicy{}.Quote(post, "alice", entity.AccessContent, true, UnlockState{})
	assert.ErrorIs(t, err, entity.ErrInvalidPost)
}
