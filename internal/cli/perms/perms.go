// Package perms holds the CLI commands for managing capability grants.
package perms

import (
	"fmt"
	"strings"

	"github.com/the-moog/trac-ticketreminder/internal/cli"
	"github.com/the-moog/trac-ticketreminder/internal/constants"
	"github.com/the-moog/trac-ticketreminder/internal/perm"
)

// knownActions are the grantable capability actions: the two registered by
// this component plus the host-owned ticket actions.
func knownActions() map[string]bool {
	known := map[string]bool{
		constants.CapTicketView:  true,
		constants.CapTicketAdmin: true,
	}
	for _, a := range perm.Actions() {
		known[a] = true
	}
	return known
}

type GrantCmd struct {
	Username string `arg:"" help:"User receiving the grant."`
	Action   string `arg:"" help:"Capability action to grant."`
}

func (c *GrantCmd) Run(ctx *cli.Context) error {
	action := strings.ToUpper(strings.TrimSpace(c.Action))
	if !knownActions()[action] {
		return fmt.Errorf("unknown capability action: %s", c.Action)
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.Store.GrantPermission(c.Username, action); err != nil {
		return err
	}

	fmt.Printf("Granted %s to %s\n", action, c.Username)
	return nil
}

type RevokeCmd struct {
	Username string `arg:"" help:"User losing the grant."`
	Action   string `arg:"" help:"Capability action to revoke."`
}

func (c *RevokeCmd) Run(ctx *cli.Context) error {
	action := strings.ToUpper(strings.TrimSpace(c.Action))

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	if err := ctx.Store.RevokePermission(c.Username, action); err != nil {
		return err
	}

	fmt.Printf("Revoked %s from %s\n", action, c.Username)
	return nil
}

type ListCmd struct {
	Username string `arg:"" help:"User whose grants to list."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	actions, err := ctx.Store.PermissionsFor(c.Username)
	if err != nil {
		return err
	}

	if len(actions) == 0 {
		fmt.Printf("No capabilities granted to %s\n", c.Username)
		return nil
	}

	for _, action := range actions {
		fmt.Println(action)
	}
	return nil
}
