package http

import (
	"net/http"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Title                   string        `json:"title" binding:"required"`
	Description             string        `json:"description"`
	PriceUSD                entity.Money  `json:"price_usd" swaggertype:"string" example:"1.00"`
	IsFree                  bool          `json:"is_free"`
	BuyoutPriceUSD          *entity.Money `json:"buyout_price_usd" swaggertype:"string" example:"5.00"`
	MaxInvestors            *int          `json:"max_investors" example:"10"`
	InvestorRevenueSharePct int           `json:"investor_revenue_share_pct" example:"50"`
	CommentsLocked          bool          `json:"comments_locked"`
	CommentFeeUSD           *entity.Money `json:"comment_fee_usd" swaggertype:"string" example:"0.10"`
	AcceptedCurrencies      []string      `json:"accepted_currencies"`
}

// CreatePost godoc
// @Summary      Publish a post
// @Description  Publishes price terms for a new post. Terms cannot be changed afterwards.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  CreatePostRequest  true  "Post terms"
// @Success      201  {object}  entity.Post
// @Failure      400  {object}  ErrorResponse
// @Failure      422  {object}  ErrorResponse
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	post, err := h.postUseCase.PublishPost(c.Request.Context(), userID, usecase.PublishPostInput{
		Title:                   req.Title,
		Description:             req.Description,
		PriceUSD:                req.PriceUSD,
		IsFree:                  req.IsFree,
		BuyoutPriceUSD:          req.BuyoutPriceUSD,
		MaxInvestors:            req.MaxInvestors,
		InvestorRevenueSharePct: req.InvestorRevenueSharePct,
		CommentsLocked:          req.CommentsLocked,
		CommentFeeUSD:           req.CommentFeeUSD,
		AcceptedCurrencies:      req.AcceptedCurrencies,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary      Get post
// @Description  Returns price terms with live investor and unlock counts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Post ID"
// @Success      200  {object}  entity.PostDetails
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	details, err := h.postUseCase.GetPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
