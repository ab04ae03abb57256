package entity

import (
	"fmt"
	"strings"
	"time"
)

const MaxSeatLimit = 100

type AccessKind string

const (
	AccessContent  AccessKind = "content"
	AccessComments AccessKind = "comments"
)

func ParseAccessKind(s string) (AccessKind, bool) {
	switch AccessKind(strings.ToLower(strings.TrimSpace(s))) {
	case AccessContent:
		return AccessContent, true
	case AccessComments:
		return AccessComments, true
	}
	return "", false
}

// Post holds the price terms a creator published. Terms are immutable after publication.
type Post struct {
	ID                      string    `json:"id"`
	CreatorID               string    `json:"creator_id"`
	Title                   string    `json:"title"`
	Description             string    `json:"description,omitempty"`
	PriceUSD                Money     `json:"price_usd"`
	IsFree                  bool      `json:"is_free"`
	BuyoutPriceUSD          *Money    `json:"buyout_price_usd,omitempty"`
	MaxInvestors            *int      `json:"max_investors,omitempty"`
	InvestorRevenueSharePct int       `json:"investor_revenue_share_pct"`
	CommentsLocked          bool      `json:"comments_locked"`
	CommentFeeUSD           *Money    `json:"comment_fee_usd,omitempty"`
	AcceptedCurrencies      []string  `json:"accepted_currencies,omitempty"`
	CreatedAt               time.Time `json:"created_at"`
}

func (p *Post) HasBuyout() bool {
	return p.BuyoutPriceUSD != nil
}

// SeatLimit returns the number of investor seats, or 0 when the post has no buyout.
func (p *Post) SeatLimit() int {
	if !p.HasBuyout() || p.MaxInvestors == nil {
		return 0
	}
	return *p.MaxInvestors
}

// Accepts reports whether payment in currency is allowed. An empty list accepts everything.
func (p *Post) Accepts(currency string) bool {
	if len(p.AcceptedCurrencies) == 0 {
		return true
	}
	currency = NormalizeCurrency(currency)
	for _, c := range p.AcceptedCurrencies {
		if c == currency {
			return true
		}
	}
	return false
}

// Validate checks the price terms. Every failure wraps ErrInvalidPost.
func (p *Post) Validate() error {
	if p.PriceUSD < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidPost)
	}
	if !p.IsFree && p.PriceUSD == 0 {
		return fmt.Errorf("%w: paid post requires a price greater than 0", ErrInvalidPost)
	}
	if p.InvestorRevenueSharePct < 0 || p.InvestorRevenueSharePct > 100 {
		return fmt.Errorf("%w: investor revenue share must be between 0 and 100", ErrInvalidPost)
	}

	if p.HasBuyout() {
		if p.IsFree {
			return fmt.Errorf("%w: free posts cannot offer a buyout", ErrInvalidPost)
		}
		if *p.BuyoutPriceUSD <= 0 {
			return fmt.Errorf("%w: buyout price must be greater than 0", ErrInvalidPost)
		}
		if p.MaxInvestors == nil || *p.MaxInvestors < 1 || *p.MaxInvestors > MaxSeatLimit {
			return fmt.Errorf("%w: max investors must be between 1 and %d", ErrInvalidPost, MaxSeatLimit)
		}
	} else if p.MaxInvestors != nil {
		return fmt.Errorf("%w: max investors requires a buyout price", ErrInvalidPost)
	}

	if p.CommentFeeUSD != nil && *p.CommentFeeUSD < 0 {
		return fmt.Errorf("%w: comment fee cannot be negative", ErrInvalidPost)
	}
	if p.CommentsLocked && (p.CommentFeeUSD == nil || *p.CommentFeeUSD == 0) {
		return fmt.Errorf("%w: locked comments require a comment fee greater than 0", ErrInvalidPost)
	}
	return nil
}

// PostDetails is a post together with its live ledger counters.
type PostDetails struct {
	Post           *Post `json:"post"`
	InvestorCount  int   `json:"investor_count"`
	SeatsRemaining *int  `json:"seats_remaining,omitempty"`
	TotalUnlocks   int   `json:"total_unlocks"`
	CommentUnlocks int   `json:"comment_unlocks"`
}

type PostStats struct {
	InvestorCount  int
	ContentUnlocks int
	CommentUnlocks int
}
