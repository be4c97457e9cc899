package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gautamg795/forkable-menu/internal/domain"
)

const testAccount = "lunch@example.com"

var testNow = time.Date(2024, time.March, 5, 9, 0, 0, 0, time.UTC)

// TestGetSessionReturnsNilForNonExistentAccount tests that GetSession returns nil for an unknown account
func TestGetSessionReturnsNilForNonExistentAccount(t *testing.T) {
	store := NewMemorySessionStore()

	record, err := store.GetSession(context.Background(), "nobody@example.com", testNow)
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if record != nil {
		t.Error("expected nil record for non-existent account, got non-nil")
	}
}

// TestReplaceSessionThenGetSession tests that a stored record is returned unchanged
func TestReplaceSessionThenGetSession(t *testing.T) {
	store := NewMemorySessionStore()
	record := domain.NewSessionRecord(testAccount, "token-1", testNow.Add(time.Hour), testNow)

	if err := store.ReplaceSession(context.Background(), record); err != nil {
		t.Fatalf("expected no error on ReplaceSession, got %v", err)
	}

	retrieved, err := store.GetSession(context.Background(), testAccount, testNow)
	if err != nil {
		t.Fatalf("expected no error on GetSession, got %v", err)
	}
	if retrieved == nil {
		t.Fatal("expected record to be retrieved, got nil")
	}
	if retrieved.SessionToken != "token-1" || retrieved.ExpiresAt != record.ExpiresAt {
		t.Errorf("expected token-1/%d, got %s/%d", record.ExpiresAt, retrieved.SessionToken, retrieved.ExpiresAt)
	}
}

// TestReplaceSessionOverwritesPreviousRecord tests the one-record-per-account invariant
func TestReplaceSessionOverwritesPreviousRecord(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	store.ReplaceSession(ctx, domain.NewSessionRecord(testAccount, "old", testNow.Add(time.Hour), testNow))
	store.ReplaceSession(ctx, domain.NewSessionRecord(testAccount, "new", testNow.Add(2*time.Hour), testNow))

	retrieved, _ := store.GetSession(ctx, testAccount, testNow)
	if retrieved == nil || retrieved.SessionToken != "new" {
		t.Fatalf("expected the new record, got %+v", retrieved)
	}

	count := 0
	store.sessions.Range(func(key, value interface{}) bool {
		count++
		return true
	})
	if count != 1 {
		t.Errorf("expected exactly 1 stored record, got %d", count)
	}
}

// TestExpiredSessionIsDropped tests that expired records are hidden and removed (lazy cleanup)
func TestExpiredSessionIsDropped(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	store.ReplaceSession(ctx, domain.NewSessionRecord(testAccount, "token", testNow, testNow.Add(-time.Hour)))

	retrieved, err := store.GetSession(ctx, testAccount, testNow)
	if err != nil {
		t.Errorf("expected no error on GetSession, got %v", err)
	}
	if retrieved != nil {
		t.Error("expected nil for a record expiring exactly now, got non-nil")
	}

	if _, exists := store.sessions.Load(testAccount); exists {
		t.Error("expected expired record to be deleted from store")
	}
}

// TestGetSessionReturnsCopy tests that callers cannot mutate the stored record
func TestGetSessionReturnsCopy(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()
	store.ReplaceSession(ctx, domain.NewSessionRecord(testAccount, "token", testNow.Add(time.Hour), testNow))

	retrieved, _ := store.GetSession(ctx, testAccount, testNow)
	retrieved.SessionToken = "tampered"

	again, _ := store.GetSession(ctx, testAccount, testNow)
	if again.SessionToken != "token" {
		t.Errorf("expected stored token to be unchanged, got %s", again.SessionToken)
	}
}

// TestConcurrentAccess tests thread-safety with concurrent readers and writers
func TestConcurrentAccess(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.ReplaceSession(ctx, domain.NewSessionRecord(testAccount, "token", testNow.Add(time.Hour), testNow))
		}()
		go func() {
			defer wg.Done()
			store.GetSession(ctx, testAccount, testNow)
		}()
	}
	wg.Wait()

	retrieved, _ := store.GetSession(ctx, testAccount, testNow)
	if retrieved == nil {
		t.Error("expected a record after concurrent writes")
	}
}
