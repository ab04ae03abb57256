package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/usecase"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerUseCase usecase.LedgerUseCase
	logger        *logger.Logger
}

func NewLedgerHandler(ledgerUseCase usecase.LedgerUseCase, logger *logger.Logger) *LedgerHandler {
	return &LedgerHandler{
		ledgerUseCase: ledgerUseCase,
		logger:        logger,
	}
}

type PayRequest struct {
	Amount          json.Number `json:"amount" binding:"required" swaggertype:"string" example:"0.0025"`
	Cryptocurrency  string      `json:"cryptocurrency" binding:"required" example:"ETH"`
	Network         string      `json:"network" example:"ethereum-sepolia"`
	IsBuyout        bool        `json:"is_buyout"`
	TransactionHash string      `json:"transaction_hash" binding:"required"`
}

type PayResponse struct {
	FirstUnlock bool            `json:"first_unlock"`
	AlreadyPaid bool            `json:"already_paid"`
	Tier        entity.Tier     `json:"tier"`
	PriceUSD    entity.Money    `json:"price_usd" swaggertype:"string"`
	Position    *int            `json:"position,omitempty"`
	Downgraded  bool            `json:"downgraded"`
	Payable     *entity.Payable `json:"payable,omitempty"`
	UnlockID    string          `json:"unlock_id,omitempty"`
}

// Pay godoc
// @Summary      Pay to unlock post content
// @Description  Records a content unlock. With is_buyout the payer claims the next investor seat.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string      true  "Post ID"
// @Param        request  body  PayRequest  true  "Payment"
// @Success      200  {object}  PayResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      402  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Failure      424  {object}  ErrorResponse
// @Router       /posts/{id}/pay [post]
func (h *LedgerHandler) Pay(c *gin.Context) {
	h.pay(c, entity.AccessContent)
}

// PayComment godoc
// @Summary      Pay to unlock comments
// @Description  Records a comment access unlock. Comment fees are never shared with investors.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string      true  "Post ID"
// @Param        request  body  PayRequest  true  "Payment"
// @Success      200  {object}  PayResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/pay-comment [post]
func (h *LedgerHandler) PayComment(c *gin.Context) {
	h.pay(c, entity.AccessComments)
}

func (h *LedgerHandler) pay(c *gin.Context, kind entity.AccessKind) {
	userID := c.GetString("user_id")
	postID := c.Param("id")

	var req PayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.ledgerUseCase.AttemptUnlock(c.Request.Context(), usecase.UnlockRequest{
		PostID:        postID,
		UserID:        userID,
		AccessKind:    kind,
		WantsBuyout:   req.IsBuyout && kind == entity.AccessContent,
		AmountOffered: req.Amount.String(),
		Currency:      req.Cryptocurrency,
		Network:       req.Network,
		Proof:         req.TransactionHash,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	resp := PayResponse{
		FirstUnlock: result.FirstUnlock,
		AlreadyPaid: result.AlreadyPaid,
		Tier:        result.Tier,
		PriceUSD:    result.PriceUSD,
		Position:    result.Position,
		Downgraded:  result.Downgraded,
		Payable:     result.Payable,
	}
	if result.Record != nil {
		resp.UnlockID = result.Record.ID
	}
	c.JSON(http.StatusOK, resp)
}

// GetAccess godoc
// @Summary      Get access status
// @Description  Reports whether the caller may view the content and comments of a post
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Post ID"
// @Success      200  {object}  entity.AccessStatus
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/access [get]
func (h *LedgerHandler) GetAccess(c *gin.Context) {
	access, err := h.ledgerUseCase.GetAccess(c.Request.Context(), c.Param("id"), c.GetString("user_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, access)
}

// Quote godoc
// @Summary      Quote an unlock
// @Description  Returns the tier and amount the caller would pay right now
// @Tags         ledger
// @Produce      json
// @Security     BearerAuth
// @Param        id        path   string  true   "Post ID"
// @Param        kind      query  string  false  "content or comments"  default(content)
// @Param        buyout    query  bool    false  "Request an investor seat"
// @Param        currency  query  string  false  "Payment currency"  default(USDC)
// @Success      200  {object}  entity.Quote
// @Failure      404  {object}  ErrorResponse
// @Failure      424  {object}  ErrorResponse
// @Router       /posts/{id}/quote [get]
func (h *LedgerHandler) Quote(c *gin.Context) {
	kind, ok := entity.ParseAccessKind(c.DefaultQuery("kind", string(entity.AccessContent)))
	if !ok {
		badRequest(c, errors.New("kind must be content or comments"))
		return
	}

	wantsBuyout := false
	if raw := c.Query("buyout"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, errors.New("buyout must be a boolean"))
			return
		}
		wantsBuyout = parsed
	}

	quote, err := h.ledgerUseCase.Quote(c.Request.Context(), c.Param("id"), c.GetString("user_id"), kind, wantsBuyout, c.Query("currency"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

// GetInvestorEarnings godoc
// @Summary      Get investor earnings
// @Description  Lists the caller's investor seats with accrued earnings
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.InvestorEarnings
// @Router       /earnings/investor [get]
func (h *LedgerHandler) GetInvestorEarnings(c *gin.Context) {
	earnings, err := h.ledgerUseCase.GetInvestorEarnings(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, earnings)
}

// GetCreatorEarnings godoc
// @Summary      Get creator earnings
// @Description  Per-post revenue split for posts published by the caller
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.CreatorEarnings
// @Router       /earnings/creator [get]
func (h *LedgerHandler) GetCreatorEarnings(c *gin.Context) {
	earnings, err := h.ledgerUseCase.GetCreatorEarnings(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, earnings)
}
