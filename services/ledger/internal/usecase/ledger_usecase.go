package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"paylock/pkg/logger"
	"paylock/pkg/metrics"
	"paylock/pkg/queue"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/repo/persistent"

	"github.com/google/uuid"
)

const (
	unlockPriority = 1
	buyoutPriority = 5
)

type UnlockRequest struct {
	PostID      string
	UserID      string
	AccessKind  entity.AccessKind
	WantsBuyout bool
	// AmountOffered is the amount paid in Currency. Empty skips the amount check.
	AmountOffered string
	Currency      string
	Network       string
	Proof         string
}

type LedgerUseCase interface {
	AttemptUnlock(ctx context.Context, req UnlockRequest) (*entity.UnlockResult, error)
	Quote(ctx context.Context, postID, userID string, kind entity.AccessKind, wantsBuyout bool, currency string) (*entity.Quote, error)
	GetAccess(ctx context.Context, postID, userID string) (*entity.AccessStatus, error)
	GetInvestorEarnings(ctx context.Context, userID string) (*entity.InvestorEarnings, error)
	GetCreatorEarnings(ctx context.Context, creatorID string) (*entity.CreatorEarnings, error)
}

// RateSource supplies currency units per USD.
type RateSource interface {
	Rate(ctx context.Context, currency string) (*big.Rat, error)
}

// EventPublisher is satisfied by *queue.Client.
type EventPublisher interface {
	PublishEvent(routingKey string, priority uint8, event interface{}) error
}

type LedgerOptions struct {
	PlatformFee       entity.Money
	ReferenceCurrency string
	SplitMode         SplitMode
	SlippageBps       int
	AutoDowngrade     bool
	Verifier          ProofVerifier
}

type ledgerUseCase struct {
	postRepo    persistent.PostRepository
	ledgerRepo  persistent.LedgerRepository
	rates       RateSource
	events      EventPublisher
	metrics     *metrics.Ledger
	logger      *logger.Logger
	resolver    *PriceResolver
	policy      UnlockPolicy
	allocator   *SeatAllocator
	distributor *RevenueDistributor
	verifier    ProofVerifier
	slippageBps int
	downgrade   bool
	now         func() time.Time
}

func NewLedgerUseCase(
	postRepo persistent.PostRepository,
	ledgerRepo persistent.LedgerRepository,
	rates RateSource,
	events EventPublisher,
	m *metrics.Ledger,
	logger *logger.Logger,
	opts LedgerOptions,
) LedgerUseCase {
	verifier := opts.Verifier
	if verifier == nil {
		verifier = FormatProofVerifier{}
	}
	if opts.ReferenceCurrency == "" {
		opts.ReferenceCurrency = "USDC"
	}

	return &ledgerUseCase{
		postRepo:    postRepo,
		ledgerRepo:  ledgerRepo,
		rates:       rates,
		events:      events,
		metrics:     m,
		logger:      logger,
		resolver:    NewPriceResolver(opts.ReferenceCurrency),
		allocator:   NewSeatAllocator(),
		distributor: NewRevenueDistributor(opts.PlatformFee, opts.SplitMode),
		verifier:    verifier,
		slippageBps: opts.SlippageBps,
		downgrade:   opts.AutoDowngrade,
		now:         time.Now,
	}
}

func (uc *ledgerUseCase) AttemptUnlock(ctx context.Context, req UnlockRequest) (*entity.UnlockResult, error) {
	result, err := uc.attemptUnlock(ctx, req)
	if err != nil {
		kind := entity.ErrorKind(err)
		if kind == "" {
			uc.logger.Error("Unlock of post %s by %s failed: %v", req.PostID, req.UserID, err)
			kind = "Internal"
		}
		uc.metrics.ObserveRejection(kind)
		return nil, err
	}

	if result.FirstUnlock {
		uc.metrics.ObserveUnlock(string(req.AccessKind), string(result.Tier))
	} else {
		uc.metrics.ObserveReplay(string(result.Tier))
	}
	return result, nil
}

func (uc *ledgerUseCase) attemptUnlock(ctx context.Context, req UnlockRequest) (*entity.UnlockResult, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user is required", entity.ErrInvalidRequest)
	}
	if _, ok := entity.ParseAccessKind(string(req.AccessKind)); !ok {
		return nil, fmt.Errorf("%w: unknown access kind %q", entity.ErrInvalidRequest, req.AccessKind)
	}
	if req.AccessKind == entity.AccessComments {
		req.WantsBuyout = false
	}

	post, err := uc.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	quote, existing, err := uc.quote(ctx, post, req.UserID, req.AccessKind, req.WantsBuyout)
	if err != nil {
		return nil, err
	}

	switch quote.Tier {
	case entity.TierOwner, entity.TierFree:
		return &entity.UnlockResult{Tier: quote.Tier}, nil
	case entity.TierAlreadyUnlocked:
		return uc.alreadyUnlocked(ctx, existing)
	}
	if req.WantsBuyout && post.HasBuyout() && quote.Tier == entity.TierStandard && !uc.downgrade {
		return nil, entity.ErrSeatsFull
	}

	payable, err := uc.checkPayment(ctx, post, req, quote)
	if err != nil {
		return nil, err
	}

	result, err := uc.commit(ctx, req, quote, payable)
	if errors.Is(err, entity.ErrSeatsFull) && uc.downgrade && quote.Tier == entity.TierBuyout {
		result, err = uc.commitDowngraded(ctx, post, req, err)
	}
	if err != nil {
		return nil, err
	}

	if result.FirstUnlock {
		if req.WantsBuyout && post.HasBuyout() && result.Tier == entity.TierStandard {
			result.Downgraded = true
			uc.metrics.ObserveDowngrade()
			uc.logger.Warn("Buyout of post %s by %s downgraded to standard: seats full", req.PostID, req.UserID)
		}
		uc.publishUnlock(post, req, result)
	}
	return result, nil
}

// commitDowngraded retries a buyout that lost the last seat as a standard unlock.
func (uc *ledgerUseCase) commitDowngraded(ctx context.Context, post *entity.Post, req UnlockRequest, seatsErr error) (*entity.UnlockResult, error) {
	quote, err := uc.policy.Quote(post, req.UserID, req.AccessKind, false, UnlockState{SeatedCount: post.SeatLimit()})
	if err != nil {
		return nil, err
	}

	payable, err := uc.checkPayment(ctx, post, req, quote)
	if err != nil {
		// The buyout payment does not cover the standard price.
		return nil, seatsErr
	}

	return uc.commit(ctx, req, quote, payable)
}

func (uc *ledgerUseCase) quote(ctx context.Context, post *entity.Post, userID string, kind entity.AccessKind, wantsBuyout bool) (*entity.Quote, *entity.UnlockRecord, error) {
	existing, err := uc.ledgerRepo.FindUnlock(ctx, post.ID, userID, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read unlock record: %w", err)
	}

	state := UnlockState{AlreadyUnlocked: existing != nil}
	if kind == entity.AccessContent && post.HasBuyout() {
		state.SeatedCount, err = uc.ledgerRepo.CountSeats(ctx, post.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to count seats: %w", err)
		}
	}

	quote, err := uc.policy.Quote(post, userID, kind, wantsBuyout, state)
	if err != nil {
		return nil, nil, err
	}
	return quote, existing, nil
}

func (uc *ledgerUseCase) resolve(ctx context.Context, post *entity.Post, priceUSD entity.Money, currency string) (*entity.Payable, error) {
	currency = entity.NormalizeCurrency(currency)
	if currency == "" {
		currency = uc.resolver.Reference()
	}
	if !post.Accepts(currency) {
		return nil, fmt.Errorf("%w: %s", entity.ErrCurrencyNotAccepted, currency)
	}

	var rate *big.Rat
	if !uc.resolver.IsReference(currency) {
		if uc.rates == nil {
			return nil, entity.ErrRateUnavailable
		}
		r, err := uc.rates.Rate(ctx, currency)
		if err != nil {
			if !errors.Is(err, entity.ErrRateUnavailable) {
				uc.logger.Error("Failed to read %s rate: %v", currency, err)
			}
			return nil, fmt.Errorf("%w: %s", entity.ErrRateUnavailable, currency)
		}
		rate = r
	}
	return uc.resolver.Resolve(priceUSD, currency, rate)
}

// checkPayment resolves the payable amount and validates the offer and proof against it.
func (uc *ledgerUseCase) checkPayment(ctx context.Context, post *entity.Post, req UnlockRequest, quote *entity.Quote) (*entity.Payable, error) {
	payable, err := uc.resolve(ctx, post, quote.PriceUSD, req.Currency)
	if err != nil {
		return nil, err
	}
	if req.Network != "" {
		payable.Network = strings.ToLower(strings.TrimSpace(req.Network))
	}

	if req.AmountOffered != "" {
		offered, ok := new(big.Rat).SetString(strings.TrimSpace(req.AmountOffered))
		if !ok || offered.Sign() < 0 {
			return nil, fmt.Errorf("%w: malformed amount %q", entity.ErrInvalidRequest, req.AmountOffered)
		}
		if offered.Cmp(uc.minimumAccepted(payable)) < 0 {
			return nil, fmt.Errorf("%w: offered %s %s, payable %s", entity.ErrInsufficientPayment, req.AmountOffered, payable.Currency, payable.Amount)
		}
	}

	claim := PaymentClaim{
		PostID:  post.ID,
		UserID:  req.UserID,
		Payable: payable,
		Proof:   strings.TrimSpace(req.Proof),
		Network: payable.Network,
	}
	if err := uc.verifier.Verify(ctx, claim); err != nil {
		return nil, err
	}
	return payable, nil
}

// minimumAccepted is payable × (1 − slippage). The reference currency allows no slippage.
func (uc *ledgerUseCase) minimumAccepted(payable *entity.Payable) *big.Rat {
	exact := payable.Exact()
	if uc.slippageBps <= 0 || uc.resolver.IsReference(payable.Currency) {
		return exact
	}
	factor := big.NewRat(int64(10_000-uc.slippageBps), 10_000)
	return exact.Mul(exact, factor)
}

func (uc *ledgerUseCase) commit(ctx context.Context, req UnlockRequest, quote *entity.Quote, payable *entity.Payable) (*entity.UnlockResult, error) {
	start := uc.now()
	proof := strings.TrimSpace(req.Proof)

	var result *entity.UnlockResult
	err := uc.ledgerRepo.WithPostLock(ctx, req.PostID, func(tx persistent.LedgerTx, post *entity.Post) error {
		existing, err := tx.FindUnlock(post.ID, req.UserID, req.AccessKind)
		if err != nil {
			return err
		}
		if existing != nil {
			// Lost the race to a concurrent commit by the same user.
			result = &entity.UnlockResult{Record: existing}
			return nil
		}

		used, err := tx.ProofUsed(proof)
		if err != nil {
			return err
		}
		if used {
			return fmt.Errorf("%w: transaction proof already used", entity.ErrPaymentProofInvalid)
		}

		offered := strings.TrimSpace(req.AmountOffered)
		if offered == "" {
			offered = payable.Amount
		}
		record := &entity.UnlockRecord{
			ID:               uuid.New().String(),
			PostID:           post.ID,
			UserID:           req.UserID,
			AccessKind:       req.AccessKind,
			Tier:             quote.Tier,
			AmountPaidUSD:    quote.PriceUSD,
			Currency:         payable.Currency,
			Network:          payable.Network,
			PayableAmount:    payable.Amount,
			AmountOffered:    offered,
			WasBuyout:        quote.Tier == entity.TierBuyout,
			Downgraded:       req.WantsBuyout && post.HasBuyout() && quote.Tier == entity.TierStandard,
			TransactionProof: proof,
			UnlockedAt:       uc.now().UTC(),
		}

		// Seats and fee rows reference the record, so it is inserted first
		// and its split is filled in once the seats are known.
		if err := tx.CreateUnlock(record); err != nil {
			return err
		}

		var position *int
		if record.WasBuyout {
			seat, err := uc.allocator.ClaimSeat(tx, post, req.UserID, record.ID)
			if err != nil {
				return err
			}
			position = &seat.Position
		}

		var seats []*entity.InvestorSeat
		if req.AccessKind == entity.AccessContent && post.HasBuyout() {
			seats, err = tx.ListSeats(post.ID)
			if err != nil {
				return err
			}
		}

		dist := uc.distributor.Distribute(post, record.AmountPaidUSD, seats)
		record.CreatorAmountUSD = dist.CreatorUSD
		record.InvestorAmountUSD = dist.InvestorPaidUSD
		if err := tx.SetUnlockSplit(record.ID, dist.CreatorUSD, dist.InvestorPaidUSD); err != nil {
			return err
		}

		if dist.PlatformFeeUSD > 0 {
			fee := &entity.PlatformFeeRecord{UnlockRecordID: record.ID, AmountUSD: dist.PlatformFeeUSD}
			if err := tx.CreatePlatformFee(fee); err != nil {
				return err
			}
		}
		if dist.PerSeatUSD > 0 {
			if err := tx.CreditSeats(post.ID, dist.PerSeatUSD, len(dist.SeatCredits)); err != nil {
				return err
			}
		}

		result = &entity.UnlockResult{
			FirstUnlock:  true,
			Tier:         quote.Tier,
			PriceUSD:     quote.PriceUSD,
			Position:     position,
			Payable:      payable,
			Record:       record,
			Distribution: dist,
		}
		return nil
	})

	if errors.Is(err, entity.ErrAlreadyUnlocked) {
		// A unique index caught a race the lock did not cover.
		existing, findErr := uc.ledgerRepo.FindUnlock(ctx, req.PostID, req.UserID, req.AccessKind)
		if findErr != nil {
			return nil, fmt.Errorf("failed to read unlock record: %w", findErr)
		}
		if existing == nil {
			return nil, fmt.Errorf("%w: transaction proof already used", entity.ErrPaymentProofInvalid)
		}
		return uc.alreadyUnlocked(ctx, existing)
	}
	if err != nil {
		if entity.ErrorKind(err) == "" {
			return nil, fmt.Errorf("failed to commit unlock: %w", err)
		}
		return nil, err
	}

	if !result.FirstUnlock {
		return uc.alreadyUnlocked(ctx, result.Record)
	}

	uc.metrics.ObserveCommit(uc.now().Sub(start).Seconds())
	if result.Position != nil {
		uc.metrics.ObserveSeatClaimed()
	}
	d := result.Distribution
	uc.metrics.ObserveRevenue(d.PlatformFeeUSD.Micros(), d.InvestorPaidUSD.Micros(), d.CreatorUSD.Micros())
	uc.logger.Info("Post %s unlocked by %s: tier=%s paid=%s", req.PostID, req.UserID, result.Tier, result.PriceUSD)
	return result, nil
}

func (uc *ledgerUseCase) alreadyUnlocked(ctx context.Context, existing *entity.UnlockRecord) (*entity.UnlockResult, error) {
	result := &entity.UnlockResult{
		Tier:        entity.TierAlreadyUnlocked,
		AlreadyPaid: true,
		Record:      existing,
	}
	if existing.WasBuyout {
		seat, err := uc.ledgerRepo.GetSeat(ctx, existing.PostID, existing.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to read seat: %w", err)
		}
		if seat != nil {
			result.Position = &seat.Position
		}
	}
	return result, nil
}

func (uc *ledgerUseCase) publishUnlock(post *entity.Post, req UnlockRequest, result *entity.UnlockResult) {
	if uc.events == nil {
		return
	}

	event := entity.UnlockEvent{
		Type:       queue.UnlockRoutingKey,
		PostID:     post.ID,
		CreatorID:  post.CreatorID,
		UserID:     req.UserID,
		AccessKind: req.AccessKind,
		Tier:       result.Tier,
		Position:   result.Position,
		AmountUSD:  result.PriceUSD,
		OccurredAt: uc.now().UTC(),
	}
	if result.Distribution != nil {
		event.CreatorUSD = result.Distribution.CreatorUSD
	}

	priority := uint8(unlockPriority)
	if result.Tier == entity.TierBuyout {
		priority = buyoutPriority
	}

	go func() {
		if err := uc.events.PublishEvent(queue.UnlockRoutingKey, priority, event); err != nil {
			uc.logger.Error("Failed to publish unlock event for post %s: %v", event.PostID, err)
		}
	}()
}

func (uc *ledgerUseCase) Quote(ctx context.Context, postID, userID string, kind entity.AccessKind, wantsBuyout bool, currency string) (*entity.Quote, error) {
	if _, ok := entity.ParseAccessKind(string(kind)); !ok {
		return nil, fmt.Errorf("%w: unknown access kind %q", entity.ErrInvalidRequest, kind)
	}

	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	quote, _, err := uc.quote(ctx, post, userID, kind, wantsBuyout && kind == entity.AccessContent)
	if err != nil {
		return nil, err
	}
	if !quote.Tier.Paid() {
		return quote, nil
	}

	quote.Payable, err = uc.resolve(ctx, post, quote.PriceUSD, currency)
	if err != nil {
		return nil, err
	}
	return quote, nil
}

func (uc *ledgerUseCase) GetAccess(ctx context.Context, postID, userID string) (*entity.AccessStatus, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	status := &entity.AccessStatus{
		PostID:           post.ID,
		IsOwner:          userID != "" && userID == post.CreatorID,
		ContentUnlocked:  post.IsFree,
		CommentsUnlocked: !post.CommentsLocked,
	}
	if status.IsOwner {
		status.ContentUnlocked = true
		status.CommentsUnlocked = true
		return status, nil
	}
	if userID == "" {
		return status, nil
	}

	if !status.ContentUnlocked {
		record, err := uc.ledgerRepo.FindUnlock(ctx, post.ID, userID, entity.AccessContent)
		if err != nil {
			uc.logger.Error("Failed to read unlock record: %v", err)
			return nil, fmt.Errorf("failed to read access: %w", err)
		}
		status.ContentUnlocked = record != nil
	}
	if !status.CommentsUnlocked {
		record, err := uc.ledgerRepo.FindUnlock(ctx, post.ID, userID, entity.AccessComments)
		if err != nil {
			uc.logger.Error("Failed to read unlock record: %v", err)
			return nil, fmt.Errorf("failed to read access: %w", err)
		}
		status.CommentsUnlocked = record != nil
	}

	if post.HasBuyout() {
		seat, err := uc.ledgerRepo.GetSeat(ctx, post.ID, userID)
		if err != nil {
			uc.logger.Error("Failed to read seat: %v", err)
			return nil, fmt.Errorf("failed to read access: %w", err)
		}
		if seat != nil {
			status.IsInvestor = true
			status.Position = &seat.Position
		}
	}
	return status, nil
}

func (uc *ledgerUseCase) GetInvestorEarnings(ctx context.Context, userID string) (*entity.InvestorEarnings, error) {
	seats, err := uc.ledgerRepo.GetInvestorEarnings(ctx, userID)
	if err != nil {
		uc.logger.Error("Failed to get investor earnings: %v", err)
		return nil, fmt.Errorf("failed to get investor earnings: %w", err)
	}

	earnings := &entity.InvestorEarnings{Seats: seats}
	for _, seat := range seats {
		earnings.TotalEarningsUSD += seat.EarningsAccruedUSD
	}
	return earnings, nil
}

func (uc *ledgerUseCase) GetCreatorEarnings(ctx context.Context, creatorID string) (*entity.CreatorEarnings, error) {
	posts, err := uc.ledgerRepo.GetCreatorEarnings(ctx, creatorID)
	if err != nil {
		uc.logger.Error("Failed to get creator earnings: %v", err)
		return nil, fmt.Errorf("failed to get creator earnings: %w", err)
	}

	earnings := &entity.CreatorEarnings{Posts: posts}
	for _, p := range posts {
		earnings.TotalCreatorUSD += p.CreatorUSD
		earnings.TotalGrossUSD += p.GrossUSD
	}
	return earnings, nil
}
