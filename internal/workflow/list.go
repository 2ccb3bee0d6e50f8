package workflow

import (
	"fmt"

	"github.com/the-moog/trac-ticketreminder/internal/duetime"
	"github.com/the-moog/trac-ticketreminder/internal/models"
	"github.com/the-moog/trac-ticketreminder/internal/perm"
)

// Entry is one reminder prepared for display.
type Entry struct {
	Reminder  models.Reminder
	Remaining duetime.Remaining
	AddedAgo  string // humanized distance since the origin instant
}

// View is the gate-filtered reminder section for one ticket. Show reports
// whether the section renders at all; ShowControls whether the add and
// delete affordances are emitted alongside it.
type View struct {
	Ticket       int64
	Entries      []Entry
	Show         bool
	ShowControls bool
}

// List produces the reminder section for a ticket, applying the view rules:
// no TICKET_VIEW means no section regardless of reminder capabilities, and an
// empty list is only shown to subjects who could add to it. A subject the
// gate filters out gets Show=false, never an error, so nothing leaks about
// the ticket's reminders.
func (w *Workflow) List(ticket int64, subject perm.Subject) (View, error) {
	view := View{Ticket: ticket}

	if !perm.CanViewList(subject) {
		return view, nil
	}

	reminders, err := w.store.ListPending(ticket)
	if err != nil {
		return View{}, fmt.Errorf("failed to list reminders: %w", err)
	}

	if !perm.ShowSection(subject, len(reminders) > 0) {
		return view, nil
	}

	now := w.now()
	view.Show = true
	view.ShowControls = perm.CanModify(subject)
	for _, r := range reminders {
		view.Entries = append(view.Entries, Entry{
			Reminder:  r,
			Remaining: duetime.Until(now, r.Time),
			AddedAgo:  duetime.Ago(now, r.Origin),
		})
	}

	return view, nil
}
