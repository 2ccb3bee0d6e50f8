package reminders

import (
	"fmt"

	"github.com/the-moog/trac-ticketreminder/internal/cli"
	"github.com/the-moog/trac-ticketreminder/internal/workflow"
)

type ListCmd struct {
	Ticket int64 `arg:"" help:"Ticket whose pending reminders to show."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	subject, err := ctx.Subject()
	if err != nil {
		return err
	}

	wf := workflow.New(ctx.Store, nil)
	view, err := wf.List(c.Ticket, subject)
	if err != nil {
		return err
	}

	// Same output whether the gate filtered or the list is empty, so nothing
	// leaks about reminders the actor may not see
	if !view.Show {
		fmt.Printf("No reminders to show for ticket %d.\n", c.Ticket)
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Reminders for ticket %d", c.Ticket)))
	for _, entry := range view.Entries {
		var when string
		if entry.Remaining.Pending {
			when = pendingStyle.Render("Right now") + " (pending)"
		} else {
			when = fmt.Sprintf("In %s (%s)", whenStyle.Render(entry.Remaining.In), entry.Remaining.DueDate)
		}

		fmt.Printf("  [%d] %s - added by %s %s ago.\n",
			entry.Reminder.ID, when, authorStyle.Render(entry.Reminder.Author), entry.AddedAgo)
		if entry.Reminder.Description != "" {
			fmt.Println(descriptionStyle.Render(entry.Reminder.Description))
		}
	}

	if view.ShowControls {
		fmt.Println()
		fmt.Println("Use 'ticketreminder add' or 'ticketreminder delete' to change reminders.")
	}

	return nil
}
