package reminders

import (
	"errors"
	"fmt"

	"github.com/the-moog/trac-ticketreminder/internal/cli"
	"github.com/the-moog/trac-ticketreminder/internal/duetime"
	"github.com/the-moog/trac-ticketreminder/internal/utils"
	"github.com/the-moog/trac-ticketreminder/internal/workflow"
)

type AddCmd struct {
	Ticket      int64  `arg:"" help:"Ticket the reminder is attached to."`
	Type        string `help:"Reminder type (interval|date)." required:""`
	Interval    string `help:"Interval count for type=interval."`
	Unit        string `help:"Interval unit for type=interval (day|week|month|year)."`
	Date        string `help:"Due date for type=date (YYYY-MM-DD)."`
	Description string `help:"Optional note shown with the reminder."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	subject, err := ctx.Subject()
	if err != nil {
		return err
	}

	wf := workflow.New(ctx.Store, nil)
	req := &workflow.AddRequest{
		Ticket:  c.Ticket,
		Subject: subject,
		Author:  ctx.Actor,
		Spec: duetime.Spec{
			Type:     duetime.Type(c.Type),
			Interval: c.Interval,
			Unit:     duetime.Unit(c.Unit),
			Date:     c.Date,
		},
		Description: c.Description,
	}

	reminder, err := wf.Add(req)
	if err != nil {
		var verr *duetime.ValidationError
		if errors.As(err, &verr) {
			// User-correctable input, surfaced as a warning; a normalized
			// date is echoed back for correction
			fmt.Printf("Warning: %s\n", verr.Reason)
			if verr.Field == "date" && req.Spec.Date != "" {
				fmt.Printf("Entered date: %s\n", req.Spec.Date)
			}
			return nil
		}
		return err
	}

	fmt.Printf("Reminder has been added. Due %s (#%d on ticket %d).\n",
		utils.FormatDateTime(reminder.Time), reminder.ID, reminder.Ticket)
	return nil
}
