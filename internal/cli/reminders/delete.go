package reminders

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/the-moog/trac-ticketreminder/internal/cli"
	"github.com/the-moog/trac-ticketreminder/internal/storage"
	"github.com/the-moog/trac-ticketreminder/internal/utils"
	"github.com/the-moog/trac-ticketreminder/internal/workflow"
)

type DeleteCmd struct {
	ReminderID int64 `arg:"" name:"reminder-id" help:"Reminder to delete."`
	Yes        bool  `help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	subject, err := ctx.Subject()
	if err != nil {
		return err
	}

	wf := workflow.New(ctx.Store, nil)

	// First pass only looks the reminder up, so the confirmation shows what
	// is about to go
	reminder, _, err := wf.Delete(&workflow.DeleteRequest{
		ReminderID: c.ReminderID,
		Subject:    subject,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Println("Warning: Could not find reminder to delete.")
			return nil
		}
		return err
	}

	if !c.Yes {
		confirmed := false
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete reminder #%d (due %s) on ticket %d?",
						reminder.ID, utils.FormatDateTime(reminder.Time), reminder.Ticket)).
					Value(&confirmed),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	_, deleted, err := wf.Delete(&workflow.DeleteRequest{
		ReminderID: c.ReminderID,
		Subject:    subject,
		Confirmed:  true,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Println("Warning: Could not find reminder to delete.")
			return nil
		}
		return err
	}

	if deleted {
		fmt.Println("Reminder has been deleted.")
	}
	return nil
}
