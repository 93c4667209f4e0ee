package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserRole distinguishes the two sides of the marketplace. A user's role
// is chosen at registration and never changes afterwards.
type UserRole string

const (
	RoleMerchant UserRole = "merchant"
	RoleInvestor UserRole = "investor"
)

// User represents a marketplace participant with a wallet.
type User struct {
	Base
	Email     string   `gorm:"uniqueIndex;not null" json:"email"`
	Password  string   `gorm:"not null" json:"-"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Role      UserRole `gorm:"not null" json:"role"`
	IsActive  bool     `gorm:"default:true" json:"is_active"`

	// WalletBalance is only ever mutated through the wallet service's
	// atomic increment primitives, never by read-modify-write.
	WalletBalance decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"wallet_balance"`

	RefreshTokenHash    string     `gorm:"size:64" json:"-"`
	FailedLoginAttempts int        `gorm:"default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`

	Receivables []Receivable `gorm:"foreignKey:MerchantID" json:"receivables,omitempty"`
}
