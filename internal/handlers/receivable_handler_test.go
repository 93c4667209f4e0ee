package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apperrors "recivo/internal/errors"
	"recivo/internal/models"
	"recivo/internal/pagination"
	"recivo/internal/services"
)

// --- mock receivable service ---

type mockReceivableService struct {
	createFn  func(merchantID string, draft services.ReceivableDraft) (*models.Receivable, error)
	getListFn func(merchantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Receivable], error)
	getByIDFn func(merchantID, receivableID string) (*models.Receivable, error)
	updateFn  func(merchantID, receivableID string, draft services.ReceivableDraft) (*models.Receivable, error)
	deleteFn  func(merchantID, receivableID string) error
}

func (m *mockReceivableService) CreateReceivable(merchantID string, draft services.ReceivableDraft) (*models.Receivable, error) {
	if m.createFn != nil {
		return m.createFn(merchantID, draft)
	}
	return &models.Receivable{}, nil
}

func (m *mockReceivableService) GetMerchantReceivables(merchantID string, page pagination.PageRequest) (*pagination.PageResponse[models.Receivable], error) {
	if m.getListFn != nil {
		return m.getListFn(merchantID, page)
	}
	resp := pagination.NewPageResponse([]models.Receivable{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockReceivableService) GetReceivableByID(merchantID, receivableID string) (*models.Receivable, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(merchantID, receivableID)
	}
	return &models.Receivable{}, nil
}

func (m *mockReceivableService) UpdateReceivable(merchantID, receivableID string, draft services.ReceivableDraft) (*models.Receivable, error) {
	if m.updateFn != nil {
		return m.updateFn(merchantID, receivableID, draft)
	}
	return &models.Receivable{}, nil
}

func (m *mockReceivableService) DeleteReceivable(merchantID, receivableID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(merchantID, receivableID)
	}
	return nil
}

var _ services.ReceivableServicer = (*mockReceivableService)(nil)

const testReceivableID = "2f1a9c7e-0000-7000-8000-0000000000bb"

func setupReceivableRouter(handler *ReceivableHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/receivables", handler.CreateReceivable)
	auth.GET("/receivables", handler.GetReceivables)
	auth.GET("/receivables/:id", handler.GetReceivableByID)
	auth.PUT("/receivables/:id", handler.UpdateReceivable)
	auth.DELETE("/receivables/:id", handler.DeleteReceivable)
	return r
}

func TestReceivableHandler_Create(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotDraft services.ReceivableDraft
		recSvc := &mockReceivableService{
			createFn: func(merchantID string, draft services.ReceivableDraft) (*models.Receivable, error) {
				gotDraft = draft
				return &models.Receivable{
					Base:       models.Base{ID: testReceivableID},
					MerchantID: merchantID,
					DebtorName: draft.DebtorName,
					Amount:     draft.Amount,
					Status:     models.ReceivableStatusDraft,
				}, nil
			},
		}
		handler := NewReceivableHandler(recSvc, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "POST", "/receivables",
			`{"debtor_name":"Acme Corp","amount":"2500.00","currency":"USD","due_date":"2026-12-31","risk_level":"low"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotDraft.Amount.Equal(decimal.RequireFromString("2500.00")) {
			t.Errorf("expected amount 2500.00, got %s", gotDraft.Amount)
		}
		if gotDraft.RiskLevel != models.RiskLevelLow {
			t.Errorf("expected risk level low, got %q", gotDraft.RiskLevel)
		}
		result := parseJSON(t, rec)
		receivable := result["receivable"].(map[string]interface{})
		if receivable["status"] != "draft" {
			t.Errorf("expected draft status, got %v", receivable["status"])
		}
	})

	t.Run("accepts RFC3339 due dates", func(t *testing.T) {
		recSvc := &mockReceivableService{}
		handler := NewReceivableHandler(recSvc, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "POST", "/receivables",
			`{"debtor_name":"Acme Corp","amount":"100.00","due_date":"2026-12-31T00:00:00Z"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns 400 on non-numeric amount", func(t *testing.T) {
		handler := NewReceivableHandler(&mockReceivableService{}, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "POST", "/receivables",
			`{"debtor_name":"Acme Corp","amount":"lots","due_date":"2026-12-31"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on bad due date", func(t *testing.T) {
		handler := NewReceivableHandler(&mockReceivableService{}, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "POST", "/receivables",
			`{"debtor_name":"Acme Corp","amount":"100.00","due_date":"end of year"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on unknown currency", func(t *testing.T) {
		handler := NewReceivableHandler(&mockReceivableService{}, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "POST", "/receivables",
			`{"debtor_name":"Acme Corp","amount":"100.00","currency":"XQZ","due_date":"2026-12-31"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on missing debtor name", func(t *testing.T) {
		handler := NewReceivableHandler(&mockReceivableService{}, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "POST", "/receivables", `{"amount":"100.00","due_date":"2026-12-31"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReceivableHandler_GetByID(t *testing.T) {
	t.Run("returns 200 with receivable", func(t *testing.T) {
		recSvc := &mockReceivableService{
			getByIDFn: func(merchantID, receivableID string) (*models.Receivable, error) {
				return &models.Receivable{
					Base:       models.Base{ID: receivableID},
					MerchantID: merchantID,
					DebtorName: "Acme Corp",
					Status:     models.ReceivableStatusDraft,
				}, nil
			},
		}
		handler := NewReceivableHandler(recSvc, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "GET", "/receivables/"+testReceivableID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		receivable := result["receivable"].(map[string]interface{})
		if receivable["debtor_name"] != "Acme Corp" {
			t.Errorf("expected Acme Corp, got %v", receivable["debtor_name"])
		}
	})

	t.Run("returns 404 when not found", func(t *testing.T) {
		recSvc := &mockReceivableService{
			getByIDFn: func(_, _ string) (*models.Receivable, error) {
				return nil, apperrors.ErrReceivableNotFound
			},
		}
		handler := NewReceivableHandler(recSvc, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "GET", "/receivables/"+testReceivableID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "RECEIVABLE_NOT_FOUND")
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		handler := NewReceivableHandler(&mockReceivableService{}, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "GET", "/receivables/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestReceivableHandler_Update(t *testing.T) {
	t.Run("returns 400 when already securitized", func(t *testing.T) {
		recSvc := &mockReceivableService{
			updateFn: func(_, _ string, _ services.ReceivableDraft) (*models.Receivable, error) {
				return nil, apperrors.ErrReceivableSecuritized
			},
		}
		handler := NewReceivableHandler(recSvc, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "PUT", "/receivables/"+testReceivableID,
			`{"debtor_name":"Acme Corp","amount":"100.00","due_date":"2026-12-31"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "RECEIVABLE_SECURITIZED")
	})
}

func TestReceivableHandler_Delete(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		var deletedID string
		recSvc := &mockReceivableService{
			deleteFn: func(_, receivableID string) error {
				deletedID = receivableID
				return nil
			},
		}
		handler := NewReceivableHandler(recSvc, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "DELETE", "/receivables/"+testReceivableID, "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
		if deletedID != testReceivableID {
			t.Errorf("expected delete of %s, got %s", testReceivableID, deletedID)
		}
	})

	t.Run("returns 400 when not deletable", func(t *testing.T) {
		recSvc := &mockReceivableService{
			deleteFn: func(_, _ string) error {
				return apperrors.ErrReceivableNotDeletable
			},
		}
		handler := NewReceivableHandler(recSvc, &mockAuditService{})
		r := setupReceivableRouter(handler)

		rec := doRequest(r, "DELETE", "/receivables/"+testReceivableID, "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "RECEIVABLE_NOT_DELETABLE")
	})
}
