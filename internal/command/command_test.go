package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kapu/vidchat-go/internal/api"
	"github.com/kapu/vidchat-go/internal/chat"
	"github.com/kapu/vidchat-go/internal/health"
	"github.com/kapu/vidchat-go/internal/session"
	"github.com/kapu/vidchat-go/internal/storage"
	"go.uber.org/zap"
)

type fakeBackend struct {
	processResult *api.ProcessResult
	processErr    error
	processCalls  int
	chatReply     string
	healthy       bool
}

func (f *fakeBackend) ProcessVideo(_ context.Context, _ string) (*api.ProcessResult, error) {
	f.processCalls++
	return f.processResult, f.processErr
}

func (f *fakeBackend) SendChat(_ context.Context, _ api.ChatRequest) (string, error) {
	return f.chatReply, nil
}

func (f *fakeBackend) HealthCheck(_ context.Context) bool {
	return f.healthy
}

type sentLog struct {
	messages []string
	errors   []string
}

func newTestDeps(backend *fakeBackend) (*Dependencies, *sentLog) {
	logger := zap.NewNop()
	mem := storage.NewMemoryStore()
	cache := session.NewTranscriptCache(mem, logger)

	out := &sentLog{}
	deps := &Dependencies{
		Machine: session.NewMachine(cache, backend, logger),
		Chat:    chat.NewStore(context.Background(), mem, backend, logger),
		Cache:   cache,
		Health:  health.NewMonitor(backend, time.Minute, logger),
		SendMessage: func(message string) error {
			out.messages = append(out.messages, message)
			return nil
		},
		SendError: func(message string) error {
			out.errors = append(out.errors, message)
			return nil
		},
		Logger: logger,
	}
	return deps, out
}

func TestLoadCommandRejectsInvalidURL(t *testing.T) {
	backend := &fakeBackend{}
	deps, out := newTestDeps(backend)
	cmd := NewLoadCommand(deps)

	if err := cmd.Execute(context.Background(), "not a url"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(out.errors) != 1 {
		t.Fatalf("expected 1 error message, got %v", out.errors)
	}
	if backend.processCalls != 0 {
		t.Fatal("invalid URL must not reach the backend")
	}
}

func TestLoadCommandProcessesAndAnnounces(t *testing.T) {
	backend := &fakeBackend{processResult: &api.ProcessResult{VideoName: "My Video", Transcript: "a transcript"}}
	deps, out := newTestDeps(backend)
	cmd := NewLoadCommand(deps)

	if err := cmd.Execute(context.Background(), "https://youtu.be/aaaaaaaaaaa"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if backend.processCalls != 1 {
		t.Fatalf("expected 1 backend call, got %d", backend.processCalls)
	}
	if len(out.messages) != 2 {
		t.Fatalf("expected progress plus announcement, got %v", out.messages)
	}
	if !strings.Contains(out.messages[0], "Processing video") {
		t.Fatalf("expected progress message first, got %q", out.messages[0])
	}
	if !strings.Contains(out.messages[1], "has been processed") {
		t.Fatalf("expected readiness announcement, got %q", out.messages[1])
	}
	if deps.Chat.VideoName() != "My Video" {
		t.Fatalf("expected chat bound to the video, got %q", deps.Chat.VideoName())
	}
}

func TestLoadCommandCacheHitSkipsProgress(t *testing.T) {
	backend := &fakeBackend{}
	deps, out := newTestDeps(backend)
	ctx := context.Background()

	if err := deps.Cache.Put(ctx, "https://youtu.be/bbbbbbbbbbb", "Cached Video", "cached"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	cmd := NewLoadCommand(deps)
	if err := cmd.Execute(ctx, "https://youtu.be/bbbbbbbbbbb"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if backend.processCalls != 0 {
		t.Fatal("cache hit must not reach the backend")
	}
	for _, msg := range out.messages {
		if strings.Contains(msg, "Processing video") {
			t.Fatal("cache hit must not print the progress message")
		}
	}
}

func TestClearCommandRequiresVideo(t *testing.T) {
	deps, out := newTestDeps(&fakeBackend{})
	cmd := NewClearCommand(deps)

	if err := cmd.Execute(context.Background(), ""); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(out.errors) != 1 || out.errors[0] != "No video loaded." {
		t.Fatalf("expected no-video error, got %v", out.errors)
	}
}

func TestClearCommandPrintsFreshSystemMessage(t *testing.T) {
	deps, out := newTestDeps(&fakeBackend{chatReply: "ok"})
	ctx := context.Background()

	deps.Chat.SetVideo(ctx, "My Video", "transcript")
	deps.Chat.Initialize(ctx, "My Video")
	deps.Chat.Send(ctx, "a question")

	cmd := NewClearCommand(deps)
	if err := cmd.Execute(ctx, ""); err != nil {
		t.Fatalf("execute failed: %v", err)
	}

	if len(out.messages) != 1 || !strings.Contains(out.messages[0], "Memory cleared") {
		t.Fatalf("expected memory-cleared message, got %v", out.messages)
	}
	if len(deps.Chat.Messages()) != 1 {
		t.Fatalf("expected single message after clear, got %d", len(deps.Chat.Messages()))
	}
}

func TestResetCommand(t *testing.T) {
	backend := &fakeBackend{processResult: &api.ProcessResult{VideoName: "My Video", Transcript: "a transcript"}}
	deps, _ := newTestDeps(backend)
	ctx := context.Background()

	if err := NewLoadCommand(deps).Execute(ctx, "https://youtu.be/ccccccccccc"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := NewResetCommand(deps).Execute(ctx, ""); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if deps.Machine.State().IsReady() {
		t.Fatal("expected machine back to idle")
	}
	if deps.Chat.VideoName() != "" {
		t.Fatalf("expected chat unbound, got %q", deps.Chat.VideoName())
	}
}

func TestPersonaCommandShowAndSet(t *testing.T) {
	deps, out := newTestDeps(&fakeBackend{})
	ctx := context.Background()
	cmd := NewPersonaCommand(deps)

	if err := cmd.Execute(ctx, ""); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(out.messages) != 1 || !strings.Contains(out.messages[0], "Helpful and concise") {
		t.Fatalf("expected active persona shown, got %v", out.messages)
	}

	if err := cmd.Execute(ctx, "Sarcastic pirate"); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if deps.Chat.ReplyStyle() != "Sarcastic pirate" {
		t.Fatalf("expected persona updated, got %q", deps.Chat.ReplyStyle())
	}
}

func TestHistoryCommand(t *testing.T) {
	deps, out := newTestDeps(&fakeBackend{})
	ctx := context.Background()
	cmd := NewHistoryCommand(deps)

	if err := cmd.Execute(ctx, ""); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(out.messages) != 1 || !strings.Contains(out.messages[0], "No processed videos") {
		t.Fatalf("expected empty-history message, got %v", out.messages)
	}

	if err := deps.Cache.Put(ctx, "https://youtu.be/ddddddddddd", "Video D", "t"); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := cmd.Execute(ctx, ""); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !strings.Contains(out.messages[1], "Video D") {
		t.Fatalf("expected cached video listed, got %q", out.messages[1])
	}
}

func TestHealthCommand(t *testing.T) {
	backend := &fakeBackend{healthy: true}
	deps, out := newTestDeps(backend)
	cmd := NewHealthCommand(deps)

	if err := cmd.Execute(context.Background(), ""); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(out.messages) != 1 || out.messages[0] != "Backend is reachable." {
		t.Fatalf("expected reachable message, got %v", out.messages)
	}

	backend.healthy = false
	if err := cmd.Execute(context.Background(), ""); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(out.errors) != 1 || !strings.Contains(out.errors[0], "unreachable") {
		t.Fatalf("expected unreachable error, got %v", out.errors)
	}
}

func TestHelpCommandListsRegistered(t *testing.T) {
	deps, out := newTestDeps(&fakeBackend{})
	registry := NewRegistry()
	registry.Register(NewLoadCommand(deps))
	registry.Register(NewResetCommand(deps))
	help := NewHelpCommand(deps, registry)
	registry.Register(help)

	if err := help.Execute(context.Background(), ""); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if len(out.messages) != 1 {
		t.Fatalf("expected one help message, got %v", out.messages)
	}
	for _, want := range []string{"/load", "/reset", "/help", "/quit - Exit"} {
		if !strings.Contains(out.messages[0], want) {
			t.Fatalf("help output missing %q:\n%s", want, out.messages[0])
		}
	}
}
