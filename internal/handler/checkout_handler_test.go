package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"relove/internal/service/checkout"
	"relove/pkg/utils"
)

// MockCheckoutService is a mock implementation of checkout.CheckoutService
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, userID string, req *checkout.CheckoutRequest) (*checkout.CheckoutResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.CheckoutResponse), args.Error(1)
}

func checkoutRouter(handler *CheckoutHandler, userID string) *gin.Engine {
	router := gin.New()
	router.POST("/checkout", func(c *gin.Context) {
		c.Set("user_id", userID)
		handler.Checkout(c)
	})
	return router
}

func TestCheckoutHandler_Checkout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("successful checkout", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		handler := NewCheckoutHandler(mockService)

		mockService.On("Checkout", mock.Anything, "buyer-1", mock.Anything).Return(&checkout.CheckoutResponse{
			OrderID:     "ORDER-abc",
			Token:       "tok-1",
			RedirectURL: "https://snap/redirect",
			GrossAmount: 230000,
		}, nil)

		router := checkoutRouter(handler, "buyer-1")

		body, _ := json.Marshal(checkout.CheckoutRequest{PaymentMethod: "e_wallet"})
		req, _ := http.NewRequest("POST", "/checkout", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &response)
		assert.NoError(t, err)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "ORDER-abc", data["order_id"])
		assert.Equal(t, "tok-1", data["token"])

		mockService.AssertExpectations(t)
	})

	t.Run("empty cart", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		handler := NewCheckoutHandler(mockService)

		mockService.On("Checkout", mock.Anything, "buyer-1", mock.Anything).Return(nil, utils.ErrEmptyCart)

		router := checkoutRouter(handler, "buyer-1")

		req, _ := http.NewRequest("POST", "/checkout", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("gateway timeout", func(t *testing.T) {
		mockService := new(MockCheckoutService)
		handler := NewCheckoutHandler(mockService)

		mockService.On("Checkout", mock.Anything, "buyer-1", mock.Anything).Return(nil, utils.ErrGatewayTimeout)

		router := checkoutRouter(handler, "buyer-1")

		req, _ := http.NewRequest("POST", "/checkout", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	})
}
