package command

import (
	"context"
	"fmt"
	"strings"
)

// PersonaCommand shows or sets the active reply style for the current video.
type PersonaCommand struct {
	deps *Dependencies
}

func NewPersonaCommand(deps *Dependencies) *PersonaCommand {
	return &PersonaCommand{deps: deps}
}

func (c *PersonaCommand) Name() string {
	return "persona"
}

func (c *PersonaCommand) Description() string {
	return "Show or set the reply persona: /persona [style text]"
}

func (c *PersonaCommand) Execute(ctx context.Context, args string) error {
	if strings.TrimSpace(args) == "" {
		return c.deps.SendMessage(fmt.Sprintf("Active persona: %s", c.deps.Chat.ReplyStyle()))
	}

	c.deps.Chat.SetPersona(ctx, args)
	return c.deps.SendMessage(fmt.Sprintf("Persona set: %s", args))
}

// SaveStyleCommand stores the active persona in the global style library.
type SaveStyleCommand struct {
	deps *Dependencies
}

func NewSaveStyleCommand(deps *Dependencies) *SaveStyleCommand {
	return &SaveStyleCommand{deps: deps}
}

func (c *SaveStyleCommand) Name() string {
	return "savestyle"
}

func (c *SaveStyleCommand) Description() string {
	return "Save the active persona to the style library"
}

func (c *SaveStyleCommand) Execute(ctx context.Context, _ string) error {
	if c.deps.Chat.SavePersonaToLibrary(ctx) {
		return c.deps.SendMessage("Persona saved to library.")
	}
	return c.deps.SendError("Persona not saved: styles must be at least 2 characters, not the default, and not already saved.")
}

// StylesCommand lists the saved persona styles.
type StylesCommand struct {
	deps *Dependencies
}

func NewStylesCommand(deps *Dependencies) *StylesCommand {
	return &StylesCommand{deps: deps}
}

func (c *StylesCommand) Name() string {
	return "styles"
}

func (c *StylesCommand) Description() string {
	return "List saved persona styles"
}

func (c *StylesCommand) Execute(ctx context.Context, _ string) error {
	styles := c.deps.Chat.SavedStyles()
	if len(styles) == 0 {
		return c.deps.SendMessage("No saved styles yet. Use /savestyle to keep the active persona.")
	}

	var sb strings.Builder
	sb.WriteString("Saved styles:\n")
	for i, style := range styles {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, style)
	}
	return c.deps.SendMessage(strings.TrimRight(sb.String(), "\n"))
}

// DelStyleCommand removes a saved style by exact text match.
type DelStyleCommand struct {
	deps *Dependencies
}

func NewDelStyleCommand(deps *Dependencies) *DelStyleCommand {
	return &DelStyleCommand{deps: deps}
}

func (c *DelStyleCommand) Name() string {
	return "delstyle"
}

func (c *DelStyleCommand) Description() string {
	return "Remove a saved style: /delstyle <style text>"
}

func (c *DelStyleCommand) Execute(ctx context.Context, args string) error {
	if strings.TrimSpace(args) == "" {
		return c.deps.SendError("Specify the style text to remove.")
	}

	c.deps.Chat.RemovePersonaFromLibrary(ctx, args)
	return c.deps.SendMessage("Style removed if it was present.")
}
