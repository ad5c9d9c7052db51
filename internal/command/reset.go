package command

import "context"

// ResetCommand abandons the current video session.
type ResetCommand struct {
	deps *Dependencies
}

func NewResetCommand(deps *Dependencies) *ResetCommand {
	return &ResetCommand{deps: deps}
}

func (c *ResetCommand) Name() string {
	return "reset"
}

func (c *ResetCommand) Description() string {
	return "Reset the video session back to idle"
}

func (c *ResetCommand) Execute(ctx context.Context, _ string) error {
	c.deps.Machine.Reset()
	c.deps.Chat.SetVideo(ctx, "", "")
	return c.deps.SendMessage("Session reset. Load a video with /load <url>.")
}
