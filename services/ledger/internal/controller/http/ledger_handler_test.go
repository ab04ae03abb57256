package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockLedgerUseCase is a mock implementation of LedgerUseCase
type MockLedgerUseCase struct {
	mock.Mock
}

func (m *MockLedgerUseCase) AttemptUnlock(ctx context.Context, req usecase.UnlockRequest) (*entity.UnlockResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UnlockResult), args.Error(1)
}

func (m *MockLedgerUseCase) Quote(ctx context.Context, postID, userID string, kind entity.AccessKind, wantsBuyout bool, currency string) (*entity.Quote, error) {
	args := m.Called(postID, userID, kind, wantsBuyout, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quote), args.Error(1)
}

func (m *MockLedgerUseCase) GetAccess(ctx context.Context, postID, userID string) (*entity.AccessStatus, error) {
	args := m.Called(postID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AccessStatus), args.Error(1)
}

func (m *MockLedgerUseCase) GetInvestorEarnings(ctx context.Context, userID string) (*entity.InvestorEarnings, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.InvestorEarnings), args.Error(1)
}

func (m *MockLedgerUseCase) GetCreatorEarnings(ctx context.Context, creatorID string) (*entity.CreatorEarnings, error) {
	args := m.Called(creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.CreatorEarnings), args.Error(1)
}

var _ usecase.LedgerUseCase = (*MockLedgerUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withUser(userID string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		h(c)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func TestPay_Buyout(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	handler := NewLedgerHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/pay", withUser("0xBuyer", handler.Pay))

	position := 3
	expected := usecase.UnlockRequest{
		PostID:        "post-123",
		UserID:        "0xBuyer",
		AccessKind:    entity.AccessContent,
		WantsBuyout:   true,
		AmountOffered: "0.0025",
		Currency:      "ETH",
		Network:       "ethereum-sepolia",
		Proof:         "0xabc",
	}
	mockUseCase.On("AttemptUnlock", expected).Return(&entity.UnlockResult{
		FirstUnlock: true,
		Tier:        entity.TierBuyout,
		PriceUSD:    entity.USD(5),
		Position:    &position,
		Payable:     &entity.Payable{Currency: "ETH", Amount: "0.002500", Decimals: 6},
		Record:      &entity.UnlockRecord{ID: "unlock-1"},
	}, nil)

	body := `{"amount":0.0025,"cryptocurrency":"ETH","network":"ethereum-sepolia","is_buyout":true,"transaction_hash":"0xabc"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/pay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, true, response["first_unlock"])
	assert.Equal(t, false, response["already_paid"])
	assert.Equal(t, "buyout", response["tier"])
	assert.Equal(t, "5.00", response["price_usd"])
	assert.Equal(t, float64(3), response["position"])
	assert.Equal(t, "unlock-1", response["unlock_id"])

	mockUseCase.AssertExpectations(t)
}

func TestPayComment_IgnoresBuyoutFlag(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	handler := NewLedgerHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/pay-comment", withUser("user-1", handler.PayComment))

	mockUseCase.On("AttemptUnlock", mock.MatchedBy(func(req usecase.UnlockRequest) bool {
		return req.AccessKind == entity.AccessComments && !req.WantsBuyout && req.AmountOffered == "0.10"
	})).Return(&entity.UnlockResult{FirstUnlock: true, Tier: entity.TierComment, PriceUSD: entity.Cents(10)}, nil)

	body := `{"amount":"0.10","cryptocurrency":"USDC","is_buyout":true,"transaction_hash":"0xdef"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/pay-comment", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "comment", decode(t, w)["tier"])
	mockUseCase.AssertExpectations(t)
}

func TestPay_AlreadyUnlockedIsSuccess(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	handler := NewLedgerHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/pay", withUser("user-1", handler.Pay))

	mockUseCase.On("AttemptUnlock", mock.Anything).Return(&entity.UnlockResult{AlreadyPaid: true, Tier: entity.TierAlreadyUnlocked}, nil)

	body := `{"amount":"1","cryptocurrency":"USDC","transaction_hash":"0x1"}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/pay", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, false, response["first_unlock"])
	assert.Equal(t, true, response["already_paid"])
}

func TestPay_MissingFields(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	handler := NewLedgerHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts/:id/pay", withUser("user-1", handler.Pay))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts/post-123/pay", bytes.NewBufferString(`{"cryptocurrency":"USDC"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "InvalidRequest", decode(t, w)["kind"])
	mockUseCase.AssertNotCalled(t, "AttemptUnlock", mock.Anything)
}

func TestPay_ErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		kind   string
	}{
		{entity.ErrSeatsFull, http.StatusConflict, "SeatsFull"},
		{entity.ErrDuplicateSeat, http.StatusConflict, "DuplicateSeat"},
		{entity.ErrRateUnavailable, http.StatusFailedDependency, "RateUnavailable"},
		{entity.ErrInvalidPost, http.StatusUnprocessableEntity, "InvalidPost"},
		{entity.ErrPaymentProofInvalid, http.StatusBadRequest, "PaymentProofInvalid"},
		{entity.ErrCommentsNotLocked, http.StatusBadRequest, "CommentsNotLocked"},
		{entity.ErrPostNotFound, http.StatusNotFound, "PostNotFound"},
		{entity.ErrInsufficientPayment, http.StatusPaymentRequired, "InsufficientPayment"},
		{errors.New("database is gone"), http.StatusInternalServerError, "Internal"},
	}

	for _, tt := range tests {
		mockUseCase := new(MockLedgerUseCase)
		handler := NewLedgerHandler(mockUseCase, logger.New())
		router := setupTestRouter()
		router.POST("/posts/:id/pay", withUser("user-1", handler.Pay))

		mockUseCase.On("AttemptUnlock", mock.Anything).Return(nil, tt.err)

		body := `{"amount":"5","cryptocurrency":"USDC","is_buyout":true,"transaction_hash":"0x1"}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/posts/post-123/pay", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, tt.status, w.Code, tt.kind)
		response := decode(t, w)
		assert.Equal(t, tt.kind, response["kind"])
		if tt.status == http.StatusInternalServerError {
			assert.Equal(t, "internal server error", response["error"])
		}
	}
}

func TestQuote_ParsesQuery(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	handler := NewLedgerHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id/quote", withUser("user-1", handler.Quote))

	remaining := 4
	mockUseCase.On("Quote", "post-123", "user-1", entity.AccessContent, true, "SOL").Return(&entity.Quote{
		Tier:           entity.TierBuyout,
		PriceUSD:       entity.USD(5),
		SeatsRemaining: &remaining,
		Payable:        &entity.Payable{Currency: "SOL", Amount: "0.050000", Decimals: 6},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-123/quote?buyout=true&currency=SOL", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, "buyout", response["tier"])
	assert.Equal(t, float64(4), response["seats_remaining"])
	mockUseCase.AssertExpectations(t)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/posts/post-123/quote?kind=video", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/posts/post-123/quote?buyout=maybe", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAccess(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	handler := NewLedgerHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id/access", withUser("user-1", handler.GetAccess))

	mockUseCase.On("GetAccess", "post-123", "user-1").Return(&entity.AccessStatus{PostID: "post-123", ContentUnlocked: true}, nil)
	mockUseCase.On("GetAccess", "missing", "user-1").Return(nil, entity.ErrPostNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-123/access", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["content_unlocked"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/posts/missing/access", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetEarnings(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	handler := NewLedgerHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/earnings/investor", withUser("0xInvestor", handler.GetInvestorEarnings))
	router.GET("/earnings/creator", withUser("0xCreator", handler.GetCreatorEarnings))

	mockUseCase.On("GetInvestorEarnings", "0xInvestor").Return(&entity.InvestorEarnings{
		TotalEarningsUSD: entity.MustParseMoney("0.295"),
		Seats: []*entity.InvestorEarning{
			{PostID: "post-1", PostTitle: "Deep dive", Position: 1, EarningsAccruedUSD: entity.MustParseMoney("0.295"), TotalUnlocksOnPost: 2},
		},
	}, nil)
	mockUseCase.On("GetCreatorEarnings", "0xCreator").Return(&entity.CreatorEarnings{TotalCreatorUSD: entity.MustParseMoney("5.605")}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/earnings/investor", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, "0.295", response["total_earnings_usd"])
	seats := response["seats"].([]interface{})
	assert.Len(t, seats, 1)
	assert.Equal(t, float64(2), seats[0].(map[string]interface{})["total_unlocks_on_post"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/earnings/creator", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "5.605", decode(t, w)["total_creator_usd"])

	mockUseCase.AssertExpectations(t)
}
