// Package lifecycle defines the legal status transitions for receivables
// and securities. Services consult the transition tables here before any
// mutation, so illegal moves are rejected in one place instead of with
// ad hoc status checks at every call site.
package lifecycle

import (
	"fmt"

	apperrors "recivo/internal/errors"
	"recivo/internal/models"
)

// Event is a lifecycle-changing action applied to an entity.
type Event string

const (
	EventSecuritize Event = "securitize"
	EventList       Event = "list"
	EventPurchase   Event = "purchase"
	EventSettle     Event = "settle"
	EventCancel     Event = "cancel"
)

// receivableTransitions maps current receivable status + event to the
// next status. The purchase event is driven through the child security.
var receivableTransitions = map[models.ReceivableStatus]map[Event]models.ReceivableStatus{
	models.ReceivableStatusDraft: {
		EventSecuritize: models.ReceivableStatusSecuritized,
		EventCancel:     models.ReceivableStatusCancelled,
	},
	models.ReceivableStatusActive: {
		EventSecuritize: models.ReceivableStatusSecuritized,
		EventCancel:     models.ReceivableStatusCancelled,
	},
	models.ReceivableStatusSecuritized: {
		EventList:   models.ReceivableStatusListed,
		EventCancel: models.ReceivableStatusCancelled,
	},
	models.ReceivableStatusListed: {
		EventPurchase: models.ReceivableStatusSold,
		EventCancel:   models.ReceivableStatusCancelled,
	},
}

// securityTransitions maps current security status + event to the next
// status. Settlement accepts purchased and payment_due alike.
var securityTransitions = map[models.SecurityStatus]map[Event]models.SecurityStatus{
	models.SecurityStatusDraft: {
		EventSecuritize: models.SecurityStatusSecuritized,
		EventCancel:     models.SecurityStatusCancelled,
	},
	models.SecurityStatusSecuritized: {
		EventList:   models.SecurityStatusListed,
		EventCancel: models.SecurityStatusCancelled,
	},
	models.SecurityStatusListed: {
		EventPurchase: models.SecurityStatusPurchased,
		EventCancel:   models.SecurityStatusCancelled,
	},
	models.SecurityStatusPurchased: {
		EventSettle: models.SecurityStatusPaid,
		EventCancel: models.SecurityStatusCancelled,
	},
	models.SecurityStatusPaymentDue: {
		EventSettle: models.SecurityStatusPaid,
		EventCancel: models.SecurityStatusCancelled,
	},
}

// ForReceivable returns the status a receivable moves to when the event
// is applied, or an INVALID_STATUS_TRANSITION error if the move is not
// in the table.
func ForReceivable(current models.ReceivableStatus, event Event) (models.ReceivableStatus, error) {
	if next, ok := receivableTransitions[current][event]; ok {
		return next, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidStatusTransition,
		fmt.Sprintf("cannot %s a %s receivable", event, current))
}

// ForSecurity returns the status a security moves to when the event is
// applied, or an INVALID_STATUS_TRANSITION error if the move is not in
// the table.
func ForSecurity(current models.SecurityStatus, event Event) (models.SecurityStatus, error) {
	if next, ok := securityTransitions[current][event]; ok {
		return next, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrInvalidStatusTransition,
		fmt.Sprintf("cannot %s a %s security", event, current))
}

// SettleableStatuses are the security statuses a merchant may settle
// from. Used by the settlement workflow's conditional update.
func SettleableStatuses() []models.SecurityStatus {
	return []models.SecurityStatus{models.SecurityStatusPurchased, models.SecurityStatusPaymentDue}
}
