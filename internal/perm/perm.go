// Package perm evaluates who may see and change ticket reminders. The
// component registers two capability actions with the host tracker;
// TICKET_VIEW and the TICKET_ADMIN override are owned by the host. Admin
// subsumes both reminder capabilities through a single superset check, so
// call sites never repeat the OR-condition.
package perm

import (
	"fmt"

	"github.com/the-moog/trac-ticketreminder/internal/constants"
)

// Subject is the authorization port: a request-scoped principal whose
// capability set can be queried by name.
type Subject interface {
	HasCapability(action string) bool
}

// PermissionError reports a denied operation, naming the missing capability.
type PermissionError struct {
	Capability string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s privileges are required to perform this operation", e.Capability)
}

// Actions returns the capability actions registered by this component.
func Actions() []string {
	return []string{constants.CapReminderView, constants.CapReminderModify}
}

// CanModify reports whether the subject may create or delete reminders,
// ticket visibility aside.
func CanModify(s Subject) bool {
	return s.HasCapability(constants.CapReminderModify) || s.HasCapability(constants.CapTicketAdmin)
}

// CanViewList reports whether the subject may see the reminder list of a
// ticket it is allowed to view.
func CanViewList(s Subject) bool {
	if !s.HasCapability(constants.CapTicketView) {
		return false
	}
	return s.HasCapability(constants.CapReminderView) || CanModify(s)
}

// ShowSection decides whether the reminder section renders at all. A subject
// that cannot view the ticket sees nothing, whatever else it holds. An empty
// list is only worth showing to someone who could add to it.
func ShowSection(s Subject, hasReminders bool) bool {
	if !CanViewList(s) {
		return false
	}
	if !hasReminders && !CanModify(s) {
		return false
	}
	return true
}

// RequireTicketView fails with a PermissionError unless the subject can view
// the ticket.
func RequireTicketView(s Subject) error {
	if !s.HasCapability(constants.CapTicketView) {
		return &PermissionError{Capability: constants.CapTicketView}
	}
	return nil
}

// RequireModify fails with a PermissionError unless the subject may mutate
// reminders. The error names the modify capability, not the admin override.
func RequireModify(s Subject) error {
	if !CanModify(s) {
		return &PermissionError{Capability: constants.CapReminderModify}
	}
	return nil
}

// Set is a static capability set, useful as a Subject for resolved grants.
type Set map[string]bool

// NewSet builds a Set from a list of granted actions.
func NewSet(actions ...string) Set {
	s := make(Set, len(actions))
	for _, a := range actions {
		s[a] = true
	}
	return s
}

func (s Set) HasCapability(action string) bool {
	return s[action]
}
