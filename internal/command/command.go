package command

import (
	"context"

	"github.com/kapu/vidchat-go/internal/chat"
	"github.com/kapu/vidchat-go/internal/health"
	"github.com/kapu/vidchat-go/internal/session"
	"go.uber.org/zap"
)

// Command is one REPL slash-command. Args is the raw text after the command
// word, already trimmed.
type Command interface {
	Name() string
	Description() string
	Execute(ctx context.Context, args string) error
}

type Dependencies struct {
	Machine     *session.Machine
	Chat        *chat.Store
	Cache       *session.TranscriptCache
	Health      *health.Monitor
	SendMessage func(message string) error
	SendError   func(message string) error
	Logger      *zap.Logger
}
