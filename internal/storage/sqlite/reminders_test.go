package sqlite

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/the-moog/trac-ticketreminder/internal/models"
	"github.com/the-moog/trac-ticketreminder/internal/storage"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testReminder(ticket int64, due time.Time) models.Reminder {
	return models.Reminder{
		Ticket: ticket,
		Time:   due,
		Author: "alice",
		Origin: time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC),
	}
}

func TestInsertAndGetReminder(t *testing.T) {
	store := setupTestStore(t)
	due := time.Date(2024, time.January, 13, 0, 0, 0, 0, time.UTC)

	inserted, err := store.InsertReminder(models.Reminder{
		Ticket:      42,
		Time:        due,
		Author:      "alice",
		Origin:      time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC),
		Description: "check the release notes",
	})
	if err != nil {
		t.Fatalf("InsertReminder() failed: %v", err)
	}
	if inserted.ID == 0 {
		t.Error("InsertReminder() did not assign an id")
	}
	if inserted.Reminded {
		t.Error("new reminder has reminded flag set")
	}

	got, err := store.GetReminder(inserted.ID)
	if err != nil {
		t.Fatalf("GetReminder() failed: %v", err)
	}
	if got.Ticket != 42 {
		t.Errorf("Ticket = %d, want 42", got.Ticket)
	}
	if !got.Time.Equal(due) {
		t.Errorf("Time = %v, want %v", got.Time, due)
	}
	if got.Author != "alice" {
		t.Errorf("Author = %q, want %q", got.Author, "alice")
	}
	if got.Description != "check the release notes" {
		t.Errorf("Description = %q, want %q", got.Description, "check the release notes")
	}
}

func TestInsertRejectsInvalidReminder(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.InsertReminder(models.Reminder{Time: time.Now(), Origin: time.Now()}); err == nil {
		t.Error("InsertReminder() accepted a reminder without a ticket")
	}
	if _, err := store.InsertReminder(models.Reminder{Ticket: 1, Origin: time.Now()}); err == nil {
		t.Error("InsertReminder() accepted a reminder without a due time")
	}
}

func TestGetReminderNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetReminder(12345)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetReminder() error = %v, want storage.ErrNotFound", err)
	}
}

func TestListPendingOrderedByDueTime(t *testing.T) {
	store := setupTestStore(t)
	base := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)

	// Insert deliberately out of order
	for _, days := range []int{30, 3, 14, 1} {
		if _, err := store.InsertReminder(testReminder(7, base.AddDate(0, 0, days))); err != nil {
			t.Fatalf("InsertReminder() failed: %v", err)
		}
	}

	reminders, err := store.ListPending(7)
	if err != nil {
		t.Fatalf("ListPending() failed: %v", err)
	}
	if len(reminders) != 4 {
		t.Fatalf("ListPending() returned %d reminders, want 4", len(reminders))
	}

	for i := 1; i < len(reminders); i++ {
		if reminders[i].Time.Before(reminders[i-1].Time) {
			t.Errorf("reminders out of order at index %d: %v before %v", i, reminders[i].Time, reminders[i-1].Time)
		}
	}
}

func TestListPendingScopedToTicket(t *testing.T) {
	store := setupTestStore(t)
	due := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	if _, err := store.InsertReminder(testReminder(1, due)); err != nil {
		t.Fatalf("InsertReminder() failed: %v", err)
	}
	if _, err := store.InsertReminder(testReminder(2, due)); err != nil {
		t.Fatalf("InsertReminder() failed: %v", err)
	}

	reminders, err := store.ListPending(1)
	if err != nil {
		t.Fatalf("ListPending() failed: %v", err)
	}
	if len(reminders) != 1 {
		t.Errorf("ListPending(1) returned %d reminders, want 1", len(reminders))
	}
}

func TestListPendingExcludesReminded(t *testing.T) {
	store := setupTestStore(t)
	due := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	kept, err := store.InsertReminder(testReminder(9, due))
	if err != nil {
		t.Fatalf("InsertReminder() failed: %v", err)
	}
	fired, err := store.InsertReminder(testReminder(9, due.AddDate(0, 0, 1)))
	if err != nil {
		t.Fatalf("InsertReminder() failed: %v", err)
	}

	if _, err := store.db.Exec("UPDATE ticketreminder SET reminded = 1 WHERE id = ?", fired.ID); err != nil {
		t.Fatalf("failed to mark reminder fired: %v", err)
	}

	reminders, err := store.ListPending(9)
	if err != nil {
		t.Fatalf("ListPending() failed: %v", err)
	}
	if len(reminders) != 1 || reminders[0].ID != kept.ID {
		t.Errorf("ListPending() = %v, want only reminder %d", reminders, kept.ID)
	}
}

func TestDeleteReminder(t *testing.T) {
	store := setupTestStore(t)
	due := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)

	first, err := store.InsertReminder(testReminder(3, due))
	if err != nil {
		t.Fatalf("InsertReminder() failed: %v", err)
	}
	second, err := store.InsertReminder(testReminder(3, due.AddDate(0, 0, 1)))
	if err != nil {
		t.Fatalf("InsertReminder() failed: %v", err)
	}

	if err := store.DeleteReminder(first.ID); err != nil {
		t.Fatalf("DeleteReminder() failed: %v", err)
	}

	// Second delete of the same id reports not found, never success
	if err := store.DeleteReminder(first.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("repeat DeleteReminder() error = %v, want storage.ErrNotFound", err)
	}

	// The sibling reminder is untouched
	remaining, err := store.ListPending(3)
	if err != nil {
		t.Fatalf("ListPending() failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != second.ID {
		t.Errorf("ListPending() after delete = %v, want only reminder %d", remaining, second.ID)
	}
}

func TestPermissions(t *testing.T) {
	store := setupTestStore(t)

	if err := store.GrantPermission("alice", "TICKET_REMINDER_MODIFY"); err != nil {
		t.Fatalf("GrantPermission() failed: %v", err)
	}
	if err := store.GrantPermission("alice", "TICKET_VIEW"); err != nil {
		t.Fatalf("GrantPermission() failed: %v", err)
	}
	// Granting twice is not an error
	if err := store.GrantPermission("alice", "TICKET_VIEW"); err != nil {
		t.Errorf("repeat GrantPermission() failed: %v", err)
	}

	actions, err := store.PermissionsFor("alice")
	if err != nil {
		t.Fatalf("PermissionsFor() failed: %v", err)
	}
	if len(actions) != 2 {
		t.Errorf("PermissionsFor() = %v, want 2 actions", actions)
	}

	if err := store.RevokePermission("alice", "TICKET_VIEW"); err != nil {
		t.Fatalf("RevokePermission() failed: %v", err)
	}
	actions, err = store.PermissionsFor("alice")
	if err != nil {
		t.Fatalf("PermissionsFor() failed: %v", err)
	}
	if len(actions) != 1 || actions[0] != "TICKET_REMINDER_MODIFY" {
		t.Errorf("PermissionsFor() after revoke = %v", actions)
	}

	// Unknown users simply have no capabilities
	actions, err = store.PermissionsFor("nobody")
	if err != nil {
		t.Fatalf("PermissionsFor() failed: %v", err)
	}
	if len(actions) != 0 {
		t.Errorf("PermissionsFor(nobody) = %v, want empty", actions)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	store := setupTestStore(t)

	exists, err := store.tableExists("ticketreminder")
	if err != nil {
		t.Fatalf("tableExists() failed: %v", err)
	}
	if !exists {
		t.Fatal("ticketreminder table missing after Init()")
	}

	// Re-running Init against a current schema changes nothing
	if err := store.runMigrations(); err != nil {
		t.Fatalf("re-running migrations failed: %v", err)
	}
}
