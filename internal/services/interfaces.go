package services

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"recivo/internal/models"
	"recivo/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string, role models.UserRole) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	AttemptLogin(email, password string) (*models.User, error)
	UpdateProfile(userID, firstName, lastName string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
}

// WalletServicer defines the ledger primitives on a user's wallet
// balance. Both mutations are atomic increments at the store layer;
// application code never computes a new balance from a read value.
type WalletServicer interface {
	Credit(tx *gorm.DB, userID string, amount decimal.Decimal) error
	Debit(tx *gorm.DB, userID string, amount decimal.Decimal) error
	GetBalance(userID string) (decimal.Decimal, error)
}

// ReceivableDraft holds the merchant-supplied fields of a new receivable.
type ReceivableDraft struct {
	DebtorName  string
	Amount      decimal.Decimal
	Currency    string
	DueDate     time.Time
	Description string
	Category    string
	RiskLevel   models.RiskLevel
}

// ReceivableServicer defines the contract for receivable business logic.
type ReceivableServicer interface {
	CreateReceivable(merchantID string, draft ReceivableDraft) (*models.Receivable, error)
	GetMerchantReceivables(merchantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Receivable], error)
	GetReceivableByID(merchantID, receivableID string) (*models.Receivable, error)
	UpdateReceivable(merchantID, receivableID string, draft ReceivableDraft) (*models.Receivable, error)
	DeleteReceivable(merchantID, receivableID string) error
}

// SecurityDraft holds the merchant-supplied fields of a new security.
// A zero TotalValue defaults to the parent receivable's amount.
type SecurityDraft struct {
	Title          string
	Description    string
	TotalValue     decimal.Decimal
	ExpectedReturn decimal.Decimal
	RiskGrade      models.RiskGrade
	Duration       string
}

// MarketplaceFilter holds optional filter parameters for browsing listed
// securities.
type MarketplaceFilter struct {
	RiskGrade *models.RiskGrade
	Search    string
	MinValue  *decimal.Decimal
	MaxValue  *decimal.Decimal
}

// SecurityServicer defines the contract for securitization, listing, and
// marketplace queries.
type SecurityServicer interface {
	SecuritizeReceivable(merchantID, receivableID string, draft SecurityDraft) (*models.Security, error)
	ListSecurity(merchantID, securityID string) (*models.Security, error)
	CancelSecurity(merchantID, securityID string) (*models.Security, error)
	GetMerchantSecurities(merchantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Security], error)
	BrowseMarketplace(filter MarketplaceFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Security], error)
	GetListedSecurity(securityID string) (*models.Security, error)
}

// PurchaseResult is returned by a successful single-security purchase.
type PurchaseResult struct {
	Security    *models.Security    `json:"security"`
	Transaction *models.Transaction `json:"transaction"`
	Commission  decimal.Decimal     `json:"commission"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
}

// TradeServicer defines the purchase and settlement workflows.
type TradeServicer interface {
	PurchaseSecurity(investorID, securityID string, method models.PaymentMethod) (*PurchaseResult, error)
	PurchaseWatchlist(investorID string) ([]models.Security, error)
	MarkSecurityPaid(merchantID, securityID string) (*models.Security, error)
	GetInvestorSecurities(investorID string, page pagination.PageRequest) (*pagination.PageResponse[models.Security], error)
}

// WatchlistServicer defines the contract for watchlist set operations.
type WatchlistServicer interface {
	Add(investorID, securityID string) (*models.WatchlistEntry, error)
	Remove(investorID, securityID string) error
	Clear(investorID string) error
	GetCurrent(investorID string) ([]models.WatchlistEntry, error)
}

// NotificationServicer defines the notification sink: workflows append,
// users read and clear.
type NotificationServicer interface {
	Notify(tx *gorm.DB, userID string, kind models.NotificationType, title, message string, data map[string]any) error
	GetUserNotifications(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
	UnreadCount(userID string) (int64, error)
	MarkRead(userID, notificationID string) (*models.Notification, error)
	MarkAllRead(userID string) error
	DeleteNotification(userID, notificationID string) error
	ClearNotifications(userID string) error
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]any)
}
