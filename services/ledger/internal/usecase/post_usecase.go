package usecase

import (
	"context"
	"fmt"
	"strings"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/repo/persistent"
)

const defaultMaxInvestors = 10

type PublishPostInput struct {
	Title                   string
	Description             string
	PriceUSD                entity.Money
	IsFree                  bool
	BuyoutPriceUSD          *entity.Money
	MaxInvestors            *int
	InvestorRevenueSharePct int
	CommentsLocked          bool
	CommentFeeUSD           *entity.Money
	AcceptedCurrencies      []string
}

type PostUseCase interface {
	PublishPost(ctx context.Context, creatorID string, input PublishPostInput) (*entity.Post, error)
	GetPost(ctx context.Context, postID string) (*entity.PostDetails, error)
}

type postUseCase struct {
	postRepo persistent.PostRepository
	logger   *logger.Logger
}

func NewPostUseCase(postRepo persistent.PostRepository, logger *logger.Logger) PostUseCase {
	return &postUseCase{
		postRepo: postRepo,
		logger:   logger,
	}
}

func (uc *postUseCase) PublishPost(ctx context.Context, creatorID string, input PublishPostInput) (*entity.Post, error) {
	if creatorID == "" {
		return nil, fmt.Errorf("%w: creator is required", entity.ErrInvalidRequest)
	}

	post := &entity.Post{
		CreatorID:               creatorID,
		Title:                   strings.TrimSpace(input.Title),
		Description:             input.Description,
		PriceUSD:                input.PriceUSD,
		IsFree:                  input.IsFree,
		InvestorRevenueSharePct: input.InvestorRevenueSharePct,
		CommentsLocked:          input.CommentsLocked,
		AcceptedCurrencies:      normalizeCurrencies(input.AcceptedCurrencies),
	}
	if post.Title == "" {
		return nil, fmt.Errorf("%w: title is required", entity.ErrInvalidPost)
	}
	// A zero buyout price means no buyout.
	if input.BuyoutPriceUSD != nil && *input.BuyoutPriceUSD == 0 {
		input.BuyoutPriceUSD = nil
	}

	if input.BuyoutPriceUSD != nil {
		buyout := *input.BuyoutPriceUSD
		post.BuyoutPriceUSD = &buyout

		maxInvestors := defaultMaxInvestors
		if input.MaxInvestors != nil {
			maxInvestors = *input.MaxInvestors
		}
		post.MaxInvestors = &maxInvestors
	}
	if input.CommentsLocked && input.CommentFeeUSD != nil {
		fee := *input.CommentFeeUSD
		post.CommentFeeUSD = &fee
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		uc.logger.Error("Failed to create post: %v", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	uc.logger.Info("Post %s published by %s", post.ID, creatorID)
	return post, nil
}

func (uc *postUseCase) GetPost(ctx context.Context, postID string) (*entity.PostDetails, error) {
	post, err := uc.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	stats, err := uc.postRepo.GetStats(ctx, post.ID)
	if err != nil {
		uc.logger.Error("Failed to get post stats: %v", err)
		return nil, fmt.Errorf("failed to get post stats: %w", err)
	}

	details := &entity.PostDetails{
		Post:           post,
		InvestorCount:  stats.InvestorCount,
		TotalUnlocks:   stats.ContentUnlocks,
		CommentUnlocks: stats.CommentUnlocks,
	}
	if post.HasBuyout() {
		remaining := post.SeatLimit() - stats.InvestorCount
		if remaining < 0 {
			remaining = 0
		}
		details.SeatsRemaining = &remaining
	}
	return details, nil
}

func normalizeCurrencies(currencies []string) []string {
	seen := make(map[string]bool, len(currencies))
	var out []string
	for _, c := range currencies {
		c = entity.NormalizeCurrency(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
