package services

import (
	"testing"

	"recivo/internal/models"
	"recivo/internal/pagination"
	"recivo/internal/testutil"
)

func TestNotify(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)

	user := testutil.CreateTestInvestor(t, db)

	err := svc.Notify(db, user.ID, models.NotificationSecurityListed, "Listed", "Your security is live",
		map[string]any{"security_id": "abc"})
	testutil.AssertNoError(t, err)

	result, err := svc.GetUserNotifications(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 {
		t.Fatalf("expected 1 notification, got %d", result.TotalItems)
	}
	notification := result.Data[0]
	if notification.Type != models.NotificationSecurityListed {
		t.Errorf("expected security_listed type, got %s", notification.Type)
	}
	if notification.Read {
		t.Error("expected notification to start unread")
	}
	if notification.Data == "" {
		t.Error("expected payload to be stored")
	}
}

func TestUnreadCountAndMarkRead(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)

	user := testutil.CreateTestInvestor(t, db)
	other := testutil.CreateTestInvestor(t, db)

	for i := 0; i < 3; i++ {
		testutil.AssertNoError(t, svc.Notify(db, user.ID, models.NotificationPaymentDue, "Due", "Payment is due", nil))
	}
	testutil.AssertNoError(t, svc.Notify(db, other.ID, models.NotificationPaymentDue, "Due", "Payment is due", nil))

	count, err := svc.UnreadCount(user.ID)
	testutil.AssertNoError(t, err)
	if count != 3 {
		t.Errorf("expected 3 unread, got %d", count)
	}

	result, err := svc.GetUserNotifications(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	marked, err := svc.MarkRead(user.ID, result.Data[0].ID)
	testutil.AssertNoError(t, err)
	if !marked.Read {
		t.Error("expected notification to be read")
	}

	count, err = svc.UnreadCount(user.ID)
	testutil.AssertNoError(t, err)
	if count != 2 {
		t.Errorf("expected 2 unread, got %d", count)
	}

	testutil.AssertNoError(t, svc.MarkAllRead(user.ID))
	count, err = svc.UnreadCount(user.ID)
	testutil.AssertNoError(t, err)
	if count != 0 {
		t.Errorf("expected 0 unread, got %d", count)
	}

	// The other user's notifications are untouched.
	count, err = svc.UnreadCount(other.ID)
	testutil.AssertNoError(t, err)
	if count != 1 {
		t.Errorf("expected 1 unread for the other user, got %d", count)
	}
}

func TestMarkReadOwnership(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)

	user := testutil.CreateTestInvestor(t, db)
	other := testutil.CreateTestInvestor(t, db)

	testutil.AssertNoError(t, svc.Notify(db, user.ID, models.NotificationPaymentDue, "Due", "Payment is due", nil))
	result, err := svc.GetUserNotifications(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	_, err = svc.MarkRead(other.ID, result.Data[0].ID)
	testutil.AssertAppError(t, err, "NOTIFICATION_NOT_FOUND")
}

func TestDeleteAndClearNotifications(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewNotificationService(db)

	user := testutil.CreateTestInvestor(t, db)

	for i := 0; i < 2; i++ {
		testutil.AssertNoError(t, svc.Notify(db, user.ID, models.NotificationPaymentDue, "Due", "Payment is due", nil))
	}

	result, err := svc.GetUserNotifications(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	testutil.AssertNoError(t, svc.DeleteNotification(user.ID, result.Data[0].ID))
	err = svc.DeleteNotification(user.ID, result.Data[0].ID)
	testutil.AssertAppError(t, err, "NOTIFICATION_NOT_FOUND")

	testutil.AssertNoError(t, svc.ClearNotifications(user.ID))
	count, err := svc.UnreadCount(user.ID)
	testutil.AssertNoError(t, err)
	if count != 0 {
		t.Errorf("expected no notifications, got %d", count)
	}
}
