package command

import "context"

// ClearCommand wipes the conversation memory for the current video.
type ClearCommand struct {
	deps *Dependencies
}

func NewClearCommand(deps *Dependencies) *ClearCommand {
	return &ClearCommand{deps: deps}
}

func (c *ClearCommand) Name() string {
	return "clear"
}

func (c *ClearCommand) Description() string {
	return "Clear the conversation memory for the current video"
}

func (c *ClearCommand) Execute(ctx context.Context, _ string) error {
	if c.deps.Chat.VideoName() == "" {
		return c.deps.SendError("No video loaded.")
	}

	c.deps.Chat.Clear(ctx)

	messages := c.deps.Chat.Messages()
	return c.deps.SendMessage(messages[len(messages)-1].Content)
}
