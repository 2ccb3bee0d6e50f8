package models

import (
	"fmt"
	"time"
)

// Reminder is a single time-triggered note attached to a ticket. It fires
// once; the Reminded flag is reserved for a delivery mechanism and is never
// set by this component.
type Reminder struct {
	ID          int64     `json:"id"`
	Ticket      int64     `json:"ticket"`
	Time        time.Time `json:"time"`   // due instant
	Author      string    `json:"author"` // creating principal, or an anonymous fallback
	Origin      time.Time `json:"origin"` // creation instant, display only
	Reminded    bool      `json:"reminded"`
	Description string    `json:"description,omitempty"`
}

func (r *Reminder) Validate() error {
	if r.Ticket <= 0 {
		return fmt.Errorf("reminder must reference a ticket")
	}

	if r.Time.IsZero() {
		return fmt.Errorf("reminder due time cannot be empty")
	}

	if r.Origin.IsZero() {
		return fmt.Errorf("reminder origin time cannot be empty")
	}

	return nil
}

// Pending reports whether the due instant has been reached.
func (r *Reminder) Pending(now time.Time) bool {
	return !now.Before(r.Time)
}
