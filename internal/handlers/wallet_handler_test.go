package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "recivo/internal/errors"
	"recivo/internal/services"
)

// --- mock wallet service ---

type mockWalletService struct {
	getBalanceFn func(userID string) (decimal.Decimal, error)
}

func (m *mockWalletService) Credit(_ *gorm.DB, _ string, _ decimal.Decimal) error { return nil }
func (m *mockWalletService) Debit(_ *gorm.DB, _ string, _ decimal.Decimal) error  { return nil }

func (m *mockWalletService) GetBalance(userID string) (decimal.Decimal, error) {
	if m.getBalanceFn != nil {
		return m.getBalanceFn(userID)
	}
	return decimal.Zero, nil
}

var _ services.WalletServicer = (*mockWalletService)(nil)

func TestWalletHandler_GetBalance(t *testing.T) {
	t.Run("returns 200 with balance", func(t *testing.T) {
		walletSvc := &mockWalletService{
			getBalanceFn: func(_ string) (decimal.Decimal, error) {
				return decimal.RequireFromString("990.00"), nil
			},
		}
		handler := NewWalletHandler(walletSvc)
		r := gin.New()
		r.GET("/wallet", injectUserID(testUserID), handler.GetBalance)

		rec := doRequest(r, "GET", "/wallet", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["balance"] != "990" && result["balance"] != "990.00" {
			t.Errorf("expected balance 990, got %v", result["balance"])
		}
	})

	t.Run("returns 404 when user is missing", func(t *testing.T) {
		walletSvc := &mockWalletService{
			getBalanceFn: func(_ string) (decimal.Decimal, error) {
				return decimal.Zero, apperrors.ErrUserNotFound
			},
		}
		handler := NewWalletHandler(walletSvc)
		r := gin.New()
		r.GET("/wallet", injectUserID(testUserID), handler.GetBalance)

		rec := doRequest(r, "GET", "/wallet", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})

	t.Run("returns 401 without auth", func(t *testing.T) {
		handler := NewWalletHandler(&mockWalletService{})
		r := gin.New()
		r.GET("/wallet", handler.GetBalance)

		rec := doRequest(r, "GET", "/wallet", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
