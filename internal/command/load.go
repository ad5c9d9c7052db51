package command

import (
	"context"
	"fmt"

	"github.com/kapu/vidchat-go/internal/validate"
)

// LoadCommand submits a YouTube URL for processing and hands the result to
// the chat store once the session reaches ready.
type LoadCommand struct {
	deps *Dependencies
}

func NewLoadCommand(deps *Dependencies) *LoadCommand {
	return &LoadCommand{deps: deps}
}

func (c *LoadCommand) Name() string {
	return "load"
}

func (c *LoadCommand) Description() string {
	return "Process a YouTube video: /load <url>"
}

func (c *LoadCommand) Execute(ctx context.Context, args string) error {
	if err := validate.YouTubeURL(args); err != nil {
		return c.deps.SendError(err.Error())
	}

	if _, ok := c.deps.Cache.Get(ctx, args); !ok {
		if err := c.deps.SendMessage("Processing video... this can take a few minutes."); err != nil {
			return err
		}
	}

	if err := c.deps.Machine.Submit(ctx, args); err != nil {
		return c.deps.SendError(fmt.Sprintf("Processing failed: %v", err))
	}

	state := c.deps.Machine.State()
	c.deps.Chat.SetVideo(ctx, state.VideoName, state.Transcript)
	c.deps.Chat.Initialize(ctx, state.VideoName)

	messages := c.deps.Chat.Messages()
	if len(messages) > 1 {
		return c.deps.SendMessage(fmt.Sprintf("%q is ready (%d messages restored).", state.VideoName, len(messages)))
	}
	if len(messages) == 1 {
		return c.deps.SendMessage(messages[0].Content)
	}
	return c.deps.SendMessage(fmt.Sprintf("%q is ready.", state.VideoName))
}
