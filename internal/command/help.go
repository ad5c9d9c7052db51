package command

import (
	"context"
	"fmt"
	"strings"
)

type HelpCommand struct {
	deps     *Dependencies
	registry *Registry
}

func NewHelpCommand(deps *Dependencies, registry *Registry) *HelpCommand {
	return &HelpCommand{deps: deps, registry: registry}
}

func (c *HelpCommand) Name() string {
	return "help"
}

func (c *HelpCommand) Description() string {
	return "Show available commands"
}

func (c *HelpCommand) Execute(ctx context.Context, _ string) error {
	var sb strings.Builder
	sb.WriteString("Type a message to chat about the loaded video, or use a command:\n")
	for _, cmd := range c.registry.Commands() {
		fmt.Fprintf(&sb, "/%s - %s\n", cmd.Name(), cmd.Description())
	}
	sb.WriteString("/quit - Exit")
	return c.deps.SendMessage(sb.String())
}
