package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SecurityStatus tracks a security through its lifecycle. The graph is
// linear with cancelled as an alternate terminal; payment_due sits between
// purchased and paid but nothing transitions into it automatically.
type SecurityStatus string

const (
	SecurityStatusDraft       SecurityStatus = "draft"
	SecurityStatusSecuritized SecurityStatus = "securitized"
	SecurityStatusListed      SecurityStatus = "listed"
	SecurityStatusPurchased   SecurityStatus = "purchased"
	SecurityStatusPaymentDue  SecurityStatus = "payment_due"
	SecurityStatusPaid        SecurityStatus = "paid"
	SecurityStatusCancelled   SecurityStatus = "cancelled"
)

// RiskGrade is the ordinal credit grade assigned at securitization.
type RiskGrade string

const (
	RiskGradeA      RiskGrade = "A"
	RiskGradeAMinus RiskGrade = "A-"
	RiskGradeB      RiskGrade = "B"
	RiskGradeBMinus RiskGrade = "B-"
	RiskGradeC      RiskGrade = "C"
	RiskGradeCMinus RiskGrade = "C-"
)

// Security is a tradeable instrument derived 1:1 from exactly one
// receivable. PurchasedBy is set exactly once, by the conditional update
// that wins the listed→purchased race.
type Security struct {
	Base
	ReceivableID   string          `gorm:"type:uuid;not null;uniqueIndex" json:"receivable_id"`
	MerchantID     string          `gorm:"type:uuid;not null;index" json:"merchant_id"`
	Title          string          `gorm:"not null" json:"title"`
	Description    string          `json:"description"`
	TotalValue     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total_value"`
	Currency       string          `gorm:"size:3;not null;default:'USD'" json:"currency"`
	ExpectedReturn decimal.Decimal `gorm:"type:numeric(6,2)" json:"expected_return"`
	RiskGrade      RiskGrade       `gorm:"not null;default:'B'" json:"risk_grade"`
	Duration       string          `json:"duration"`
	Status         SecurityStatus  `gorm:"not null;default:'securitized';index" json:"status"`

	ListedAt    *time.Time `json:"listed_at,omitempty"`
	PurchasedBy *string    `gorm:"type:uuid;index" json:"purchased_by,omitempty"`
	PurchasedAt *time.Time `json:"purchased_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`

	Receivable *Receivable `gorm:"foreignKey:ReceivableID" json:"receivable,omitempty"`
}
