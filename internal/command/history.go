package command

import (
	"context"
	"fmt"
	"strings"
)

// HistoryCommand lists recently processed videos held in the transcript cache.
type HistoryCommand struct {
	deps *Dependencies
}

func NewHistoryCommand(deps *Dependencies) *HistoryCommand {
	return &HistoryCommand{deps: deps}
}

func (c *HistoryCommand) Name() string {
	return "history"
}

func (c *HistoryCommand) Description() string {
	return "List recently processed videos"
}

func (c *HistoryCommand) Execute(ctx context.Context, _ string) error {
	entries := c.deps.Cache.Entries(ctx)
	if len(entries) == 0 {
		return c.deps.SendMessage("No processed videos yet.")
	}

	var sb strings.Builder
	sb.WriteString("Recent videos:\n")
	for i, entry := range entries {
		fmt.Fprintf(&sb, "%d. %s (%s)\n   %s\n", i+1, entry.VideoName, entry.Date, entry.URL)
	}
	return c.deps.SendMessage(strings.TrimRight(sb.String(), "\n"))
}
