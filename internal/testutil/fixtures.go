package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"recivo/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestMerchant creates a merchant user with a hashed password.
func CreateTestMerchant(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createTestUser(t, db, models.RoleMerchant)
}

// CreateTestInvestor creates an investor user with a hashed password.
func CreateTestInvestor(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createTestUser(t, db, models.RoleInvestor)
}

func createTestUser(t *testing.T, db *gorm.DB, role models.UserRole) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    fmt.Sprintf("%s%d@test.com", role, nextID()),
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestReceivable creates a draft receivable for the merchant with
// the given amount.
func CreateTestReceivable(t *testing.T, db *gorm.DB, merchantID string, amount string) *models.Receivable {
	t.Helper()

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid amount %q: %v", amount, err)
	}

	receivable := &models.Receivable{
		MerchantID: merchantID,
		DebtorName: fmt.Sprintf("Debtor %d", nextID()),
		Amount:     amt,
		Currency:   "USD",
		DueDate:    time.Now().AddDate(0, 3, 0),
		Category:   "trade",
		RiskLevel:  models.RiskLevelMedium,
		Status:     models.ReceivableStatusDraft,
	}
	if err := db.Create(receivable).Error; err != nil {
		t.Fatalf("failed to create test receivable: %v", err)
	}
	return receivable
}

// CreateTestSecurity creates a security in the given status, backed by a
// fresh receivable in the matching status.
func CreateTestSecurity(t *testing.T, db *gorm.DB, merchantID string, totalValue string, status models.SecurityStatus) *models.Security {
	t.Helper()

	receivable := CreateTestReceivable(t, db, merchantID, totalValue)

	receivableStatus := models.ReceivableStatusSecuritized
	var listedAt *time.Time
	switch status {
	case models.SecurityStatusListed:
		receivableStatus = models.ReceivableStatusListed
		now := time.Now()
		listedAt = &now
	case models.SecurityStatusPurchased, models.SecurityStatusPaymentDue, models.SecurityStatusPaid:
		receivableStatus = models.ReceivableStatusSold
	}
	if err := db.Model(receivable).Update("status", receivableStatus).Error; err != nil {
		t.Fatalf("failed to update receivable status: %v", err)
	}

	value, err := decimal.NewFromString(totalValue)
	if err != nil {
		t.Fatalf("invalid total value %q: %v", totalValue, err)
	}

	security := &models.Security{
		ReceivableID: receivable.ID,
		MerchantID:   merchantID,
		Title:        fmt.Sprintf("Test Security %d", nextID()),
		TotalValue:   value,
		Currency:     "USD",
		RiskGrade:    models.RiskGradeB,
		Duration:     "90 days",
		Status:       status,
		ListedAt:     listedAt,
	}
	if err := db.Create(security).Error; err != nil {
		t.Fatalf("failed to create test security: %v", err)
	}
	return security
}

// CreateTestListedSecurity creates a listed security ready for purchase.
func CreateTestListedSecurity(t *testing.T, db *gorm.DB, merchantID string, totalValue string) *models.Security {
	t.Helper()
	return CreateTestSecurity(t, db, merchantID, totalValue, models.SecurityStatusListed)
}

// CreateTestPurchasedSecurity creates a security already purchased by the
// given investor.
func CreateTestPurchasedSecurity(t *testing.T, db *gorm.DB, merchantID, investorID string, totalValue string) *models.Security {
	t.Helper()

	security := CreateTestSecurity(t, db, merchantID, totalValue, models.SecurityStatusPurchased)
	now := time.Now()
	if err := db.Model(security).Updates(map[string]any{
		"purchased_by": investorID,
		"purchased_at": &now,
	}).Error; err != nil {
		t.Fatalf("failed to mark test security purchased: %v", err)
	}
	security.PurchasedBy = &investorID
	security.PurchasedAt = &now
	return security
}

// CreateTestWatchlistEntry puts a security on an investor's watchlist.
func CreateTestWatchlistEntry(t *testing.T, db *gorm.DB, investorID, securityID string) *models.WatchlistEntry {
	t.Helper()

	entry := &models.WatchlistEntry{UserID: investorID, SecurityID: securityID}
	if err := db.Create(entry).Error; err != nil {
		t.Fatalf("failed to create test watchlist entry: %v", err)
	}
	return entry
}
