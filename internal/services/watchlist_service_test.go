package services

import (
	"testing"

	"recivo/internal/models"
	"recivo/internal/testutil"
)

func TestWatchlistAdd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewWatchlistService(db)

	merchant := testutil.CreateTestMerchant(t, db)
	investor := testutil.CreateTestInvestor(t, db)

	t.Run("adds_listed_security", func(t *testing.T) {
		security := testutil.CreateTestListedSecurity(t, db, merchant.ID, "100.00")

		entry, err := svc.Add(investor.ID, security.ID)
		testutil.AssertNoError(t, err)
		if entry.SecurityID != security.ID {
			t.Errorf("expected entry for %s, got %s", security.ID, entry.SecurityID)
		}
		if entry.Security == nil {
			t.Error("expected entry to carry the security")
		}
	})

	t.Run("duplicate_is_conflict", func(t *testing.T) {
		security := testutil.CreateTestListedSecurity(t, db, merchant.ID, "100.00")

		_, err := svc.Add(investor.ID, security.ID)
		testutil.AssertNoError(t, err)

		_, err = svc.Add(investor.ID, security.ID)
		testutil.AssertAppError(t, err, "ALREADY_WATCHLISTED")
	})

	t.Run("unlisted_security_is_not_found", func(t *testing.T) {
		security := testutil.CreateTestSecurity(t, db, merchant.ID, "100.00", models.SecurityStatusSecuritized)

		_, err := svc.Add(investor.ID, security.ID)
		testutil.AssertAppError(t, err, "SECURITY_NOT_FOUND")
	})
}

func TestWatchlistRemove(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewWatchlistService(db)

	merchant := testutil.CreateTestMerchant(t, db)
	investor := testutil.CreateTestInvestor(t, db)
	security := testutil.CreateTestListedSecurity(t, db, merchant.ID, "100.00")
	testutil.CreateTestWatchlistEntry(t, db, investor.ID, security.ID)

	testutil.AssertNoError(t, svc.Remove(investor.ID, security.ID))

	entries, err := svc.GetCurrent(investor.ID)
	testutil.AssertNoError(t, err)
	if len(entries) != 0 {
		t.Errorf("expected empty watchlist, got %d entries", len(entries))
	}

	// Removing again is a no-op, not an error.
	testutil.AssertNoError(t, svc.Remove(investor.ID, security.ID))
}

func TestWatchlistGetCurrent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewWatchlistService(db)

	merchant := testutil.CreateTestMerchant(t, db)
	investor := testutil.CreateTestInvestor(t, db)

	listed := testutil.CreateTestListedSecurity(t, db, merchant.ID, "100.00")
	gone := testutil.CreateTestListedSecurity(t, db, merchant.ID, "200.00")
	testutil.CreateTestWatchlistEntry(t, db, investor.ID, listed.ID)
	testutil.CreateTestWatchlistEntry(t, db, investor.ID, gone.ID)

	// A security that leaves the listed state drops out of the view but
	// its entry stays in the table.
	if err := db.Model(gone).Update("status", models.SecurityStatusPurchased).Error; err != nil {
		t.Fatalf("failed to update status: %v", err)
	}

	entries, err := svc.GetCurrent(investor.ID)
	testutil.AssertNoError(t, err)
	if len(entries) != 1 {
		t.Fatalf("expected 1 current entry, got %d", len(entries))
	}
	if entries[0].SecurityID != listed.ID {
		t.Errorf("expected %s, got %s", listed.ID, entries[0].SecurityID)
	}
	if entries[0].Security == nil || entries[0].Security.ID != listed.ID {
		t.Error("expected preloaded security on the entry")
	}

	var total int64
	if err := db.Model(&models.WatchlistEntry{}).Where("user_id = ?", investor.ID).Count(&total).Error; err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	if total != 2 {
		t.Errorf("expected stale entry to remain in the table, got %d entries", total)
	}
}

func TestWatchlistClear(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewWatchlistService(db)

	merchant := testutil.CreateTestMerchant(t, db)
	investor := testutil.CreateTestInvestor(t, db)
	other := testutil.CreateTestInvestor(t, db)

	first := testutil.CreateTestListedSecurity(t, db, merchant.ID, "100.00")
	second := testutil.CreateTestListedSecurity(t, db, merchant.ID, "200.00")
	testutil.CreateTestWatchlistEntry(t, db, investor.ID, first.ID)
	testutil.CreateTestWatchlistEntry(t, db, investor.ID, second.ID)
	testutil.CreateTestWatchlistEntry(t, db, other.ID, first.ID)

	testutil.AssertNoError(t, svc.Clear(investor.ID))

	var count int64
	if err := db.Model(&models.WatchlistEntry{}).Where("user_id = ?", investor.ID).Count(&count).Error; err != nil {
		t.Fatalf("failed to count entries: %v", err)
	}
	if count != 0 {
		t.Errorf("expected cleared watchlist, got %d entries", count)
	}

	// Other investors' watchlists are untouched.
	entries, err := svc.GetCurrent(other.ID)
	testutil.AssertNoError(t, err)
	if len(entries) != 1 {
		t.Errorf("expected 1 entry for the other investor, got %d", len(entries))
	}
}
