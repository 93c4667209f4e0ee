package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apperrors "recivo/internal/errors"
	"recivo/internal/models"
	"recivo/internal/pagination"
	"recivo/internal/services"
)

// --- mock notification service ---

type mockNotificationService struct {
	getListFn     func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error)
	unreadCountFn func(userID string) (int64, error)
	markReadFn    func(userID, notificationID string) (*models.Notification, error)
	markAllReadFn func(userID string) error
	deleteFn      func(userID, notificationID string) error
	clearFn       func(userID string) error
}

func (m *mockNotificationService) Notify(_ *gorm.DB, _ string, _ models.NotificationType, _, _ string, _ map[string]any) error {
	return nil
}

func (m *mockNotificationService) GetUserNotifications(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	if m.getListFn != nil {
		return m.getListFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Notification{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockNotificationService) UnreadCount(userID string) (int64, error) {
	if m.unreadCountFn != nil {
		return m.unreadCountFn(userID)
	}
	return 0, nil
}

func (m *mockNotificationService) MarkRead(userID, notificationID string) (*models.Notification, error) {
	if m.markReadFn != nil {
		return m.markReadFn(userID, notificationID)
	}
	return &models.Notification{}, nil
}

func (m *mockNotificationService) MarkAllRead(userID string) error {
	if m.markAllReadFn != nil {
		return m.markAllReadFn(userID)
	}
	return nil
}

func (m *mockNotificationService) DeleteNotification(userID, notificationID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, notificationID)
	}
	return nil
}

func (m *mockNotificationService) ClearNotifications(userID string) error {
	if m.clearFn != nil {
		return m.clearFn(userID)
	}
	return nil
}

var _ services.NotificationServicer = (*mockNotificationService)(nil)

const testNotificationID = "2f1a9c7e-0000-7000-8000-0000000000cc"

func setupNotificationRouter(handler *NotificationHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/notifications", handler.GetNotifications)
	auth.GET("/notifications/unread-count", handler.GetUnreadCount)
	auth.POST("/notifications/:id/read", handler.MarkRead)
	auth.POST("/notifications/read-all", handler.MarkAllRead)
	auth.DELETE("/notifications/:id", handler.DeleteNotification)
	auth.DELETE("/notifications", handler.ClearNotifications)
	return r
}

func TestNotificationHandler_Get(t *testing.T) {
	t.Run("returns 200 with notifications", func(t *testing.T) {
		notifSvc := &mockNotificationService{
			getListFn: func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
				resp := pagination.NewPageResponse([]models.Notification{
					{Base: models.Base{ID: testNotificationID}, UserID: userID, Type: models.NotificationSecurityPurchased, Title: "Security sold"},
				}, 1, 20, 1)
				return &resp, nil
			},
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "GET", "/notifications", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_items"].(float64) != 1 {
			t.Errorf("expected 1 notification, got %v", result["total_items"])
		}
	})
}

func TestNotificationHandler_UnreadCount(t *testing.T) {
	t.Run("returns the count", func(t *testing.T) {
		notifSvc := &mockNotificationService{
			unreadCountFn: func(_ string) (int64, error) { return 3, nil },
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "GET", "/notifications/unread-count", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["unread_count"].(float64) != 3 {
			t.Errorf("expected unread_count 3, got %v", result["unread_count"])
		}
	})
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	t.Run("returns 200 with updated notification", func(t *testing.T) {
		notifSvc := &mockNotificationService{
			markReadFn: func(userID, notificationID string) (*models.Notification, error) {
				return &models.Notification{
					Base:   models.Base{ID: notificationID},
					UserID: userID,
					Read:   true,
				}, nil
			},
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "POST", "/notifications/"+testNotificationID+"/read", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		notification := result["notification"].(map[string]interface{})
		if notification["read"] != true {
			t.Errorf("expected read true, got %v", notification["read"])
		}
	})

	t.Run("returns 404 for another user's notification", func(t *testing.T) {
		notifSvc := &mockNotificationService{
			markReadFn: func(_, _ string) (*models.Notification, error) {
				return nil, apperrors.ErrNotificationNotFound
			},
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "POST", "/notifications/"+testNotificationID+"/read", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NOTIFICATION_NOT_FOUND")
	})

	t.Run("returns 400 on invalid id", func(t *testing.T) {
		handler := NewNotificationHandler(&mockNotificationService{})
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "POST", "/notifications/not-a-uuid/read", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestNotificationHandler_Delete(t *testing.T) {
	t.Run("returns 204 on success", func(t *testing.T) {
		handler := NewNotificationHandler(&mockNotificationService{})
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "DELETE", "/notifications/"+testNotificationID, "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestNotificationHandler_Clear(t *testing.T) {
	t.Run("returns 204 and clears for the caller", func(t *testing.T) {
		var clearedFor string
		notifSvc := &mockNotificationService{
			clearFn: func(userID string) error {
				clearedFor = userID
				return nil
			},
		}
		handler := NewNotificationHandler(notifSvc)
		r := setupNotificationRouter(handler)

		rec := doRequest(r, "DELETE", "/notifications", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
		}
		if clearedFor != testUserID {
			t.Errorf("expected clear for %s, got %s", testUserID, clearedFor)
		}
	})
}
