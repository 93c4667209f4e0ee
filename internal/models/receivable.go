package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceivableStatus tracks a receivable through its lifecycle.
type ReceivableStatus string

const (
	ReceivableStatusDraft       ReceivableStatus = "draft"
	ReceivableStatusActive      ReceivableStatus = "active"
	ReceivableStatusSecuritized ReceivableStatus = "securitized"
	ReceivableStatusListed      ReceivableStatus = "listed"
	ReceivableStatusSold        ReceivableStatus = "sold"
	ReceivableStatusPaid        ReceivableStatus = "paid"
	ReceivableStatusOverdue     ReceivableStatus = "overdue"
	ReceivableStatusCancelled   ReceivableStatus = "cancelled"
)

// RiskLevel is the merchant-declared risk of a receivable.
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Receivable is a merchant's claim against a debtor, the raw asset
// before securitization.
type Receivable struct {
	Base
	MerchantID  string           `gorm:"type:uuid;not null;index" json:"merchant_id"`
	DebtorName  string           `gorm:"not null" json:"debtor_name"`
	Amount      decimal.Decimal  `gorm:"type:numeric(18,2);not null" json:"amount"`
	Currency    string           `gorm:"size:3;not null;default:'USD'" json:"currency"`
	DueDate     time.Time        `gorm:"not null" json:"due_date"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	RiskLevel   RiskLevel        `gorm:"not null;default:'medium'" json:"risk_level"`
	Status      ReceivableStatus `gorm:"not null;default:'draft';index" json:"status"`

	Merchant *User `gorm:"foreignKey:MerchantID" json:"merchant,omitempty"`
}

// Deletable reports whether the receivable may still be deleted by its
// owner. Once securitized the asset backs a security and must survive.
func (r *Receivable) Deletable() bool {
	return r.Status == ReceivableStatusDraft || r.Status == ReceivableStatusActive
}
