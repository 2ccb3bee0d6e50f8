// Package workflow orchestrates the reminder use cases: capability check,
// input validation, due-time computation and the store mutation, in that
// order. It returns structured outcomes; turning them into warnings, notices
// or rendered markup is the caller's concern.
package workflow

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/the-moog/trac-ticketreminder/internal/constants"
	"github.com/the-moog/trac-ticketreminder/internal/duetime"
	"github.com/the-moog/trac-ticketreminder/internal/logger"
	"github.com/the-moog/trac-ticketreminder/internal/models"
	"github.com/the-moog/trac-ticketreminder/internal/perm"
	"github.com/the-moog/trac-ticketreminder/internal/storage"
)

// Clock supplies the current moment, injectable for tests.
type Clock func() time.Time

type Workflow struct {
	store storage.Provider
	now   Clock
}

func New(store storage.Provider, clock Clock) *Workflow {
	if clock == nil {
		clock = time.Now
	}
	return &Workflow{
		store: store,
		now:   clock,
	}
}

// AddRequest is a validated-intent envelope for the add flow. Spec carries
// the raw user input; Author may be empty, in which case the anonymous
// fallback is recorded.
type AddRequest struct {
	Ticket      int64
	Subject     perm.Subject
	Author      string
	Spec        duetime.Spec
	Description string
}

// Add runs the add flow: authorization, validation, due-time computation,
// persistence. A *perm.PermissionError means the subject may not act; a
// *duetime.ValidationError carries the single user-facing warning and leaves
// req.Spec with any normalized field for redisplay.
func (w *Workflow) Add(req *AddRequest) (models.Reminder, error) {
	requestID := uuid.NewString()
	logger.Debug("Add requested", "request", requestID, "ticket", req.Ticket)

	if err := perm.RequireTicketView(req.Subject); err != nil {
		return models.Reminder{}, err
	}
	if err := perm.RequireModify(req.Subject); err != nil {
		return models.Reminder{}, err
	}

	now := w.now()
	due, err := req.Spec.Resolve(now)
	if err != nil {
		return models.Reminder{}, err
	}

	author := req.Author
	if author == "" {
		author = constants.AnonymousAuthor
	}

	reminder, err := w.store.InsertReminder(models.Reminder{
		Ticket:      req.Ticket,
		Time:        due,
		Author:      author,
		Origin:      now,
		Description: req.Description,
	})
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to add reminder: %w", err)
	}

	logger.Info("Reminder added",
		"request", requestID,
		"ticket", reminder.Ticket,
		"reminder", reminder.ID,
		"due", reminder.Time,
		"author", reminder.Author,
	)

	return reminder, nil
}

// DeleteRequest is the envelope for the delete flow. An unconfirmed request
// only looks the reminder up, so the caller can present a confirmation view
// without mutating anything.
type DeleteRequest struct {
	ReminderID int64
	Subject    perm.Subject
	Confirmed  bool
}

// Delete runs the delete flow and returns the reminder plus whether it was
// actually removed. storage.ErrNotFound means a warning, not a failure: the
// reminder may have been deleted by a racing request.
func (w *Workflow) Delete(req *DeleteRequest) (models.Reminder, bool, error) {
	requestID := uuid.NewString()
	logger.Debug("Delete requested", "request", requestID, "reminder", req.ReminderID, "confirmed", req.Confirmed)

	if err := perm.RequireTicketView(req.Subject); err != nil {
		return models.Reminder{}, false, err
	}
	if err := perm.RequireModify(req.Subject); err != nil {
		return models.Reminder{}, false, err
	}

	reminder, err := w.store.GetReminder(req.ReminderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Reminder{}, false, storage.ErrNotFound
		}
		return models.Reminder{}, false, fmt.Errorf("failed to look up reminder: %w", err)
	}

	if !req.Confirmed {
		return reminder, false, nil
	}

	if err := w.store.DeleteReminder(req.ReminderID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Lost the race with a concurrent delete
			return models.Reminder{}, false, storage.ErrNotFound
		}
		return models.Reminder{}, false, fmt.Errorf("failed to delete reminder: %w", err)
	}

	logger.Info("Reminder deleted",
		"request", requestID,
		"ticket", reminder.Ticket,
		"reminder", reminder.ID,
	)

	return reminder, true, nil
}
