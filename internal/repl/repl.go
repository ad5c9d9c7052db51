package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/kapu/vidchat-go/internal/chat"
	"github.com/kapu/vidchat-go/internal/command"
	"github.com/kapu/vidchat-go/internal/domain"
	"github.com/kapu/vidchat-go/internal/session"
	"github.com/kapu/vidchat-go/internal/validate"
	"go.uber.org/zap"
)

// REPL reads lines from in and drives the two stores: slash-commands go
// through the registry, everything else is a chat message for the loaded
// video. It is the single caller of Machine.Submit, which satisfies the
// machine's one-submit-in-flight contract.
type REPL struct {
	registry *command.Registry
	machine  *session.Machine
	chat     *chat.Store
	in       io.Reader
	out      io.Writer
	logger   *zap.Logger
}

func New(registry *command.Registry, machine *session.Machine, chatStore *chat.Store, in io.Reader, out io.Writer, logger *zap.Logger) *REPL {
	return &REPL{
		registry: registry,
		machine:  machine,
		chat:     chatStore,
		in:       in,
		out:      out,
		logger:   logger,
	}
}

func (r *REPL) Run(ctx context.Context) error {
	r.println("vidchat - chat with a YouTube video. /help for commands.")

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	r.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			r.prompt()
			continue
		}

		if strings.HasPrefix(line, "/") {
			if r.handleCommand(ctx, line) {
				return nil
			}
		} else {
			r.handleChat(ctx, line)
		}
		r.prompt()
	}

	return scanner.Err()
}

// handleCommand dispatches one slash-command line. Returns true when the
// user asked to quit.
func (r *REPL) handleCommand(ctx context.Context, line string) bool {
	name, args, _ := strings.Cut(strings.TrimPrefix(line, "/"), " ")
	args = strings.TrimSpace(args)

	if name == "quit" || name == "exit" {
		r.println("Bye.")
		return true
	}

	if err := r.registry.Execute(ctx, name, args); err != nil {
		if errors.Is(err, command.ErrUnknownCommand) {
			r.println(fmt.Sprintf("Unknown command /%s. /help lists commands.", name))
			return false
		}
		r.logger.Error("Command failed", zap.String("command", name), zap.Error(err))
		r.println(fmt.Sprintf("Error: %v", err))
	}
	return false
}

func (r *REPL) handleChat(ctx context.Context, line string) {
	if !r.machine.State().IsReady() {
		r.println("No video loaded. Use /load <url> first.")
		return
	}

	if err := validate.ChatMessage(line); err != nil {
		r.println(fmt.Sprintf("Error: %v", err))
		return
	}

	before := len(r.chat.Messages())
	r.chat.Send(ctx, line)

	for _, msg := range r.chat.Messages()[before:] {
		if msg.Role == domain.RoleAssistant {
			r.println(msg.Content)
		}
	}
}

func (r *REPL) println(message string) {
	fmt.Fprintln(r.out, message)
}

func (r *REPL) prompt() {
	fmt.Fprint(r.out, "> ")
}
