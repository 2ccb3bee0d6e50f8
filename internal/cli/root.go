package cli

import (
	"fmt"

	"github.com/the-moog/trac-ticketreminder/internal/perm"
	"github.com/the-moog/trac-ticketreminder/internal/storage"
)

// Context is passed to every command by kong.
type Context struct {
	Store storage.Provider
	Actor string
}

// Subject resolves the acting user's capability set from the permission
// table.
func (c *Context) Subject() (perm.Set, error) {
	actions, err := c.Store.PermissionsFor(c.Actor)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve capabilities for %q: %w", c.Actor, err)
	}
	return perm.NewSet(actions...), nil
}
