package models

import "github.com/shopspring/decimal"

// TransactionStatus is the settlement status of a purchase transaction.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
)

// PaymentMethod is the buyer-declared funding source. There is no real
// payment gateway behind it.
type PaymentMethod string

const (
	PaymentMethodWallet       PaymentMethod = "wallet"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
)

// Transaction is the append-only audit record of a completed purchase.
// Exactly one row is created per successful purchase and never mutated.
type Transaction struct {
	Base
	SecurityID       string            `gorm:"type:uuid;not null;index" json:"security_id"`
	BuyerID          string            `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID         string            `gorm:"type:uuid;not null;index" json:"seller_id"`
	Amount           decimal.Decimal   `gorm:"type:numeric(18,2);not null" json:"amount"`
	CommissionAmount decimal.Decimal   `gorm:"type:numeric(18,2);not null" json:"commission_amount"`
	Currency         string            `gorm:"size:3;not null;default:'USD'" json:"currency"`
	PaymentMethod    PaymentMethod     `gorm:"not null" json:"payment_method"`
	Status           TransactionStatus `gorm:"not null" json:"status"`
	Reference        string            `gorm:"uniqueIndex" json:"reference"`
	GatewayResponse  string            `json:"gateway_response,omitempty"`

	Security *Security `gorm:"foreignKey:SecurityID" json:"security,omitempty"`
}
