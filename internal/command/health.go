package command

import (
	"context"
	"fmt"
)

// HealthCommand probes the backend and reports reachability.
type HealthCommand struct {
	deps *Dependencies
}

func NewHealthCommand(deps *Dependencies) *HealthCommand {
	return &HealthCommand{deps: deps}
}

func (c *HealthCommand) Name() string {
	return "health"
}

func (c *HealthCommand) Description() string {
	return "Check backend reachability"
}

func (c *HealthCommand) Execute(ctx context.Context, _ string) error {
	reachable := c.deps.Health.CheckNow(ctx)
	status := c.deps.Health.Status()

	if reachable {
		return c.deps.SendMessage("Backend is reachable.")
	}

	msg := "Backend is unreachable."
	if !status.LastOK.IsZero() {
		msg = fmt.Sprintf("Backend is unreachable (last OK %s).", status.LastOK.Format("15:04:05"))
	}
	return c.deps.SendError(msg)
}
