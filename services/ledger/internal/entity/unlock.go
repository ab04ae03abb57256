package entity

import "time"

type Tier string

const (
	TierOwner           Tier = "owner"
	TierFree            Tier = "free"
	TierAlreadyUnlocked Tier = "already_unlocked"
	TierComment         Tier = "comment"
	TierBuyout          Tier = "buyout"
	TierStandard        Tier = "standard"
)

// Paid reports whether the tier requires a payment.
func (t Tier) Paid() bool {
	return t == TierComment || t == TierBuyout || t == TierStandard
}

type UnlockRecord struct {
	ID                string     `json:"id"`
	PostID            string     `json:"post_id"`
	UserID            string     `json:"user_id"`
	AccessKind        AccessKind `json:"access_kind"`
	Tier              Tier       `json:"tier"`
	AmountPaidUSD     Money      `json:"amount_paid_usd"`
	Currency          string     `json:"currency"`
	Network           string     `json:"network,omitempty"`
	PayableAmount     string     `json:"payable_amount"`
	AmountOffered     string     `json:"amount_offered"`
	WasBuyout         bool       `json:"was_buyout"`
	Downgraded        bool       `json:"downgraded"`
	TransactionProof  string     `json:"transaction_proof"`
	CreatorAmountUSD  Money      `json:"creator_amount_usd"`
	InvestorAmountUSD Money      `json:"investor_amount_usd"`
	UnlockedAt        time.Time  `json:"unlocked_at"`
}

type InvestorSeat struct {
	ID                 string    `json:"id"`
	PostID             string    `json:"post_id"`
	Position           int       `json:"position"`
	HolderUserID       string    `json:"holder_user_id"`
	EarningsAccruedUSD Money     `json:"earnings_accrued_usd"`
	UnlockRecordID     string    `json:"unlock_record_id"`
	SeatedAt           time.Time `json:"seated_at"`
}

type PlatformFeeRecord struct {
	ID             string    `json:"id"`
	UnlockRecordID string    `json:"unlock_record_id"`
	AmountUSD      Money     `json:"amount_usd"`
	CreatedAt      time.Time `json:"created_at"`
}

type SeatCredit struct {
	Position     int    `json:"position"`
	HolderUserID string `json:"holder_user_id"`
	AmountUSD    Money  `json:"amount_usd"`
}

// Distribution is how one payment splits between platform, investors and creator.
// PlatformFeeUSD + InvestorPaidUSD + CreatorUSD always equals the amount paid.
type Distribution struct {
	AmountPaidUSD   Money        `json:"amount_paid_usd"`
	PlatformFeeUSD  Money        `json:"platform_fee_usd"`
	InvestorPoolUSD Money        `json:"investor_pool_usd"`
	PerSeatUSD      Money        `json:"per_seat_usd"`
	SeatCredits     []SeatCredit `json:"seat_credits,omitempty"`
	InvestorPaidUSD Money        `json:"investor_paid_usd"`
	CreatorUSD      Money        `json:"creator_usd"`
}

// Quote is the price a requester would pay right now.
type Quote struct {
	Tier           Tier     `json:"tier"`
	PriceUSD       Money    `json:"price_usd"`
	Payable        *Payable `json:"payable,omitempty"`
	SeatsRemaining *int     `json:"seats_remaining,omitempty"`
}

type UnlockResult struct {
	FirstUnlock  bool          `json:"first_unlock"`
	AlreadyPaid  bool          `json:"already_paid"`
	Tier         Tier          `json:"tier"`
	PriceUSD     Money         `json:"price_usd"`
	Position     *int          `json:"position,omitempty"`
	Downgraded   bool          `json:"downgraded"`
	Payable      *Payable      `json:"payable,omitempty"`
	Record       *UnlockRecord `json:"record,omitempty"`
	Distribution *Distribution `json:"distribution,omitempty"`
}

type AccessStatus struct {
	PostID           string `json:"post_id"`
	ContentUnlocked  bool   `json:"content_unlocked"`
	CommentsUnlocked bool   `json:"comments_unlocked"`
	IsOwner          bool   `json:"is_owner"`
	IsInvestor       bool   `json:"is_investor"`
	Position         *int   `json:"position,omitempty"`
}

// UnlockEvent is published after a first unlock commits.
type UnlockEvent struct {
	Type       string     `json:"type"`
	PostID     string     `json:"post_id"`
	CreatorID  string     `json:"creator_id"`
	UserID     string     `json:"user_id"`
	AccessKind AccessKind `json:"access_kind"`
	Tier       Tier       `json:"tier"`
	Position   *int       `json:"position,omitempty"`
	AmountUSD  Money      `json:"amount_usd"`
	CreatorUSD Money      `json:"creator_usd"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type InvestorEarning struct {
	PostID             string    `json:"post_id"`
	PostTitle          string    `json:"post_title"`
	Position           int       `json:"position"`
	EarningsAccruedUSD Money     `json:"earnings_accrued_usd"`
	TotalUnlocksOnPost int       `json:"total_unlocks_on_post"`
	SeatedAt           time.Time `json:"seated_at"`
}

type InvestorEarnings struct {
	TotalEarningsUSD Money              `json:"total_earnings_usd"`
	Seats            []*InvestorEarning `json:"seats"`
}

type CreatorPostEarnings struct {
	PostID             string `json:"post_id"`
	PostTitle          string `json:"post_title"`
	Unlocks            int    `json:"unlocks"`
	GrossUSD           Money  `json:"gross_usd"`
	PlatformFeesUSD    Money  `json:"platform_fees_usd"`
	InvestorPayoutsUSD Money  `json:"investor_payouts_usd"`
	CreatorUSD         Money  `json:"creator_usd"`
}

type CreatorEarnings struct {
	TotalCreatorUSD Money                  `json:"total_creator_usd"`
	TotalGrossUSD   Money                  `json:"total_gross_usd"`
	Posts           []*CreatorPostEarnings `json:"posts"`
}
