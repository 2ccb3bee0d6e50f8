package duetime

import (
	"testing"
	"time"
)

func TestUntil(t *testing.T) {
	now := time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC)

	t.Run("due reached is pending", func(t *testing.T) {
		for _, due := range []time.Time{
			now,
			now.Add(-time.Hour),
			now.AddDate(0, -1, 0),
		} {
			r := Until(now, due)
			if !r.Pending {
				t.Errorf("Until(now, %v).Pending = false, want true", due)
			}
			if r.In != "" || r.DueDate != "" {
				t.Errorf("pending Remaining carries display fields: %+v", r)
			}
		}
	})

	t.Run("future due is not pending", func(t *testing.T) {
		due := time.Date(2024, time.January, 13, 0, 0, 0, 0, time.UTC)
		r := Until(now, due)
		if r.Pending {
			t.Fatal("Until() pending for a future due time")
		}
		if r.In == "" {
			t.Error("Until() returned empty relative duration")
		}
		if r.DueDate != "2024-01-13" {
			t.Errorf("DueDate = %q, want %q", r.DueDate, "2024-01-13")
		}
	})

	t.Run("pure function of inputs", func(t *testing.T) {
		due := now.AddDate(0, 0, 7)
		if Until(now, due) != Until(now, due) {
			t.Error("Until() not deterministic for identical inputs")
		}
	})
}

func TestAgo(t *testing.T) {
	now := time.Date(2024, time.January, 10, 15, 0, 0, 0, time.UTC)
	origin := now.Add(-5 * time.Minute)

	if got := Ago(now, origin); got == "" {
		t.Error("Ago() returned empty string")
	}
}
