package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/kapu/vidchat-go/internal/api"
	"github.com/kapu/vidchat-go/internal/chat"
	"github.com/kapu/vidchat-go/internal/command"
	"github.com/kapu/vidchat-go/internal/config"
	"github.com/kapu/vidchat-go/internal/health"
	"github.com/kapu/vidchat-go/internal/repl"
	"github.com/kapu/vidchat-go/internal/session"
	"github.com/kapu/vidchat-go/internal/storage"
	"github.com/kapu/vidchat-go/internal/validate"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// Container bundles assembled services for constructing the REPL front end.
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Store   storage.Store
	API     *api.Client
	Cache   *session.TranscriptCache
	Machine *session.Machine
	Chat    *chat.Store
	Health  *health.Monitor
}

// Build assembles storage, the backend client, and both stores. Heavy
// initialization happens here so the REPL stays orchestration-only.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}

	if err := validate.BackendURL(cfg.Backend.URL); err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}
	if cfg.Backend.Cookie != "" {
		if err := validate.SessionCookie(cfg.Backend.Cookie); err != nil {
			return nil, fmt.Errorf("invalid session cookie: %w", err)
		}
	}

	store, err := buildStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage backend: %w", err)
	}

	client := api.NewClient(cfg.Backend.URL, cfg.Backend.Cookie, logger)
	cache := session.NewTranscriptCache(store, logger)
	machine := session.NewMachine(cache, client, logger)
	chatStore := chat.NewStore(ctx, store, client, logger)
	monitor := health.NewMonitor(client, cfg.Health.CheckInterval, logger)

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		API:     client,
		Cache:   cache,
		Machine: machine,
		Chat:    chatStore,
		Health:  monitor,
	}

	if err := c.preflight(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return c, nil
}

// preflight pings the storage backend and probes the HTTP backend
// concurrently. Storage must answer; the backend being down is only a
// warning since the user may bring it up later.
func (c *Container) preflight(ctx context.Context) error {
	p := pool.New().WithErrors().WithContext(ctx)

	p.Go(func(ctx context.Context) error {
		if err := c.Store.Ping(ctx); err != nil {
			return fmt.Errorf("storage ping failed: %w", err)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if !c.API.HealthCheck(ctx) {
			c.Logger.Warn("Backend health check failed at startup",
				zap.String("backend_url", c.API.BaseURL()))
		}
		return nil
	})

	return p.Wait()
}

// NewREPL wires the command registry against the given input/output streams.
func (c *Container) NewREPL(in io.Reader, out io.Writer) *repl.REPL {
	sendMessage := func(message string) error {
		_, err := fmt.Fprintln(out, message)
		return err
	}
	sendError := func(message string) error {
		_, err := fmt.Fprintln(out, "Error: "+message)
		return err
	}

	deps := &command.Dependencies{
		Machine:     c.Machine,
		Chat:        c.Chat,
		Cache:       c.Cache,
		Health:      c.Health,
		SendMessage: sendMessage,
		SendError:   sendError,
		Logger:      c.Logger,
	}

	registry := command.NewRegistry()
	registry.Register(command.NewLoadCommand(deps))
	registry.Register(command.NewResetCommand(deps))
	registry.Register(command.NewClearCommand(deps))
	registry.Register(command.NewPersonaCommand(deps))
	registry.Register(command.NewSaveStyleCommand(deps))
	registry.Register(command.NewStylesCommand(deps))
	registry.Register(command.NewDelStyleCommand(deps))
	registry.Register(command.NewHistoryCommand(deps))
	registry.Register(command.NewHealthCommand(deps))
	registry.Register(command.NewHelpCommand(deps, registry))

	return repl.New(registry, c.Machine, c.Chat, in, out, c.Logger)
}

// Close releases the storage backend.
func (c *Container) Close() {
	if err := c.Store.Close(); err != nil {
		c.Logger.Error("Failed to close storage", zap.Error(err))
	}
}

func buildStore(cfg *config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		return storage.NewRedisStore(storage.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
	case config.StorageMemory:
		return storage.NewMemoryStore(), nil
	default:
		return storage.NewSQLiteStore(filepath.Join(cfg.Storage.DataDir, "vidchat.db"), logger)
	}
}
