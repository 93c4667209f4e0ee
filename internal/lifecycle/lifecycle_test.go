package lifecycle

import (
	"testing"

	"recivo/internal/models"
	"recivo/internal/testutil"
)

func TestForSecurity(t *testing.T) {
	tests := []struct {
		name    string
		current models.SecurityStatus
		event   Event
		want    models.SecurityStatus
		wantErr bool
	}{
		{"securitized_to_listed", models.SecurityStatusSecuritized, EventList, models.SecurityStatusListed, false},
		{"listed_to_purchased", models.SecurityStatusListed, EventPurchase, models.SecurityStatusPurchased, false},
		{"purchased_to_paid", models.SecurityStatusPurchased, EventSettle, models.SecurityStatusPaid, false},
		{"payment_due_to_paid", models.SecurityStatusPaymentDue, EventSettle, models.SecurityStatusPaid, false},
		{"listed_cancellable", models.SecurityStatusListed, EventCancel, models.SecurityStatusCancelled, false},
		{"relist_listed", models.SecurityStatusListed, EventList, "", true},
		{"purchase_unlisted", models.SecurityStatusSecuritized, EventPurchase, "", true},
		{"settle_listed", models.SecurityStatusListed, EventSettle, "", true},
		{"settle_paid_again", models.SecurityStatusPaid, EventSettle, "", true},
		{"cancel_paid", models.SecurityStatusPaid, EventCancel, "", true},
		{"purchase_cancelled", models.SecurityStatusCancelled, EventPurchase, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ForSecurity(tt.current, tt.event)
			if tt.wantErr {
				testutil.AssertAppError(t, err, "INVALID_STATUS_TRANSITION")
				return
			}
			testutil.AssertNoError(t, err)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestForReceivable(t *testing.T) {
	tests := []struct {
		name    string
		current models.ReceivableStatus
		event   Event
		want    models.ReceivableStatus
		wantErr bool
	}{
		{"draft_securitizable", models.ReceivableStatusDraft, EventSecuritize, models.ReceivableStatusSecuritized, false},
		{"active_securitizable", models.ReceivableStatusActive, EventSecuritize, models.ReceivableStatusSecuritized, false},
		{"securitized_to_listed", models.ReceivableStatusSecuritized, EventList, models.ReceivableStatusListed, false},
		{"listed_to_sold", models.ReceivableStatusListed, EventPurchase, models.ReceivableStatusSold, false},
		{"resecuritize", models.ReceivableStatusSecuritized, EventSecuritize, "", true},
		{"securitize_sold", models.ReceivableStatusSold, EventSecuritize, "", true},
		{"settle_has_no_receivable_transition", models.ReceivableStatusSold, EventSettle, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ForReceivable(tt.current, tt.event)
			if tt.wantErr {
				testutil.AssertAppError(t, err, "INVALID_STATUS_TRANSITION")
				return
			}
			testutil.AssertNoError(t, err)
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
