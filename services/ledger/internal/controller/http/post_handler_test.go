package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"paylock/pkg/logger"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPostUseCase is a mock implementation of PostUseCase
type MockPostUseCase struct {
	mock.Mock
}

func (m *MockPostUseCase) PublishPost(ctx context.Context, creatorID string, input usecase.PublishPostInput) (*entity.Post, error) {
	args := m.Called(creatorID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Post), args.Error(1)
}

func (m *MockPostUseCase) GetPost(ctx context.Context, postID string) (*entity.PostDetails, error) {
	args := m.Called(postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PostDetails), args.Error(1)
}

var _ usecase.PostUseCase = (*MockPostUseCase)(nil)

func TestCreatePost_Success(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", withUser("0xCreator", handler.CreatePost))

	mockUseCase.On("PublishPost", "0xCreator", mock.MatchedBy(func(in usecase.PublishPostInput) bool {
		return in.Title == "Deep dive" &&
			in.PriceUSD == entity.USD(1) &&
			in.BuyoutPriceUSD != nil && *in.BuyoutPriceUSD == entity.USD(5) &&
			in.MaxInvestors != nil && *in.MaxInvestors == 10 &&
			in.InvestorRevenueSharePct == 50
	})).Return(&entity.Post{ID: "post-1", CreatorID: "0xCreator", Title: "Deep dive", PriceUSD: entity.USD(1)}, nil)

	body := `{"title":"Deep dive","price_usd":"1.00","buyout_price_usd":5,"max_investors":10,"investor_revenue_share_pct":50}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	response := decode(t, w)
	assert.Equal(t, "post-1", response["id"])
	assert.Equal(t, "1.00", response["price_usd"])
	mockUseCase.AssertExpectations(t)
}

func TestCreatePost_InvalidTerms(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", withUser("0xCreator", handler.CreatePost))

	mockUseCase.On("PublishPost", "0xCreator", mock.Anything).Return(nil, entity.ErrInvalidPost)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBufferString(`{"title":"Zero","price_usd":"0"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "InvalidPost", decode(t, w)["kind"])
}

func TestCreatePost_MalformedMoney(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/posts", withUser("0xCreator", handler.CreatePost))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/posts", bytes.NewBufferString(`{"title":"Bad","price_usd":"1.0000001"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "PublishPost", mock.Anything, mock.Anything)
}

func TestGetPost(t *testing.T) {
	mockUseCase := new(MockPostUseCase)
	handler := NewPostHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/posts/:id", withUser("user-1", handler.GetPost))

	mockUseCase.On("GetPost", "post-1").Return(&entity.PostDetails{
		Post:          &entity.Post{ID: "post-1", Title: "Deep dive"},
		InvestorCount: 3,
		TotalUnlocks:  7,
	}, nil)
	mockUseCase.On("GetPost", "missing").Return(nil, entity.ErrPostNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/posts/post-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	response := decode(t, w)
	assert.Equal(t, float64(3), response["investor_count"])
	assert.Equal(t, float64(7), response["total_unlocks"])

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/posts/missing", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
