// Package app wires every coursechat component together and owns their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"

	"coursechat/internal/api"
	"coursechat/internal/auth"
	"coursechat/internal/badgerstore"
	"coursechat/internal/chat"
	"coursechat/internal/config"
	"coursechat/internal/course"
	"coursechat/internal/database"
	"coursechat/internal/events"
	"coursechat/internal/hub"
	"coursechat/internal/notification"
	"coursechat/internal/transcript"
	"coursechat/internal/websocket"
	"coursechat/pkg/interfaces"
)

// Application owns the components and starts and stops them in dependency order:
// database, message log, publisher, registry, services, hub, gateway, HTTP.
type Application struct {
	config     *config.Config
	log        *slog.Logger
	dbManager  *database.Manager
	badger     *badgerstore.MessageStore
	publisher  interfaces.EventPublisher
	registry   *websocket.Registry
	gateway    *chat.Gateway
	fanout     *hub.Hub
	tokens     *auth.TokenService
	httpServer *http.Server

	mu       sync.Mutex
	listener net.Listener
	cancel   context.CancelFunc
}

func NewApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	dbManager, err := database.NewManager(&cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database manager: %w", err)
	}
	app := &Application{config: cfg, log: log, dbManager: dbManager}

	var messages interfaces.MessageStore = dbManager
	if cfg.Storage.Messages == config.StorageBadger {
		app.badger, err = badgerstore.Open(cfg.Storage.BadgerDir, log)
		if err != nil {
			app.closeStores()
			return nil, fmt.Errorf("failed to open badger message store: %w", err)
		}
		messages = app.badger
	}

	app.publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		publisher, err := events.NewNatsPublisher(ctx, cfg.NATS.URL, cfg.NATS.Stream, log)
		if err != nil {
			app.closeStores()
			return nil, err
		}
		app.publisher = publisher
	}

	var generator transcript.Generator = transcript.Disabled{}
	if cfg.Transcript.Endpoint != "" {
		generator = transcript.NewHTTPGenerator(cfg.Transcript.Endpoint, cfg.Transcript.Timeout, log)
	}

	app.tokens, err = auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		app.closeStores()
		return nil, err
	}

	app.registry = websocket.NewRegistry()

	dispatcher, err := notification.NewDispatcher(dbManager, app.registry, app.publisher, log)
	if err != nil {
		app.closeStores()
		return nil, err
	}
	courses, err := course.NewService(dbManager, dbManager, dispatcher, generator, log)
	if err != nil {
		app.closeStores()
		return nil, err
	}

	app.fanout = hub.NewHub(cfg.Chat.FanoutQueueSize, cfg.Chat.FanoutJobTimeout, log)
	app.gateway, err = chat.NewGateway(chat.Dependencies{
		Registry:     app.registry,
		Messages:     messages,
		Participants: courses,
		Notifier:     dispatcher,
		Users:        courses,
		Publisher:    app.publisher,
		Hub:          app.fanout,
	}, chat.NewRateLimiter(cfg.Chat.RateLimit, cfg.Chat.RateWindow), log)
	if err != nil {
		app.closeStores()
		return nil, err
	}

	wsHandler := websocket.NewHandler(app.gateway, websocket.Settings{
		PingInterval: cfg.WebSocket.PingInterval,
		ReadTimeout:  cfg.WebSocket.ReadTimeout,
		WriteTimeout: cfg.WebSocket.WriteTimeout,
		BufferSize:   cfg.WebSocket.BufferSize,
	}, log)

	apiServer := api.NewServer(api.Dependencies{
		Courses:       courses,
		Notifications: dispatcher,
		Messages:      messages,
		Health:        dbManager,
		Stats:         app.registry,
		Realtime:      http.HandlerFunc(wsHandler.HandleWebSocket),
		Tokens:        app.tokens,
	}, log)

	app.httpServer = &http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      apiServer,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	return app, nil
}

// Start begins background processing and serves HTTP. It returns once the
// listener is bound; serving continues until Stop.
func (app *Application) Start(ctx context.Context) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	if err := app.fanout.Start(runCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to start fan-out hub: %w", err)
	}

	listener, err := net.Listen("tcp", app.httpServer.Addr)
	if err != nil {
		cancel()
		_ = app.fanout.Stop()
		return fmt.Errorf("failed to listen on %s: %w", app.httpServer.Addr, err)
	}
	app.listener = listener
	app.cancel = cancel

	go app.gateway.RunCleanup(runCtx, app.config.Chat.RateWindow)
	go func() {
		if err := app.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.log.Error("HTTP server stopped", "err", err)
		}
	}()

	app.log.Info("Coursechat started", "addr", listener.Addr().String(), "messages", app.config.Storage.Messages)
	return nil
}

// Stop shuts down in reverse order. Queued notification jobs finish before the stores close.
func (app *Application) Stop(ctx context.Context) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	var errs []error
	if err := app.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if closed := app.registry.CloseAll(); closed > 0 {
		app.log.Info("Closed realtime connections", "count", closed)
	}
	if app.cancel != nil {
		app.cancel()
	}
	if err := app.fanout.Stop(); err != nil && !errors.Is(err, hub.ErrHubNotRunning) {
		errs = append(errs, fmt.Errorf("hub shutdown: %w", err))
	}
	if err := app.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("publisher shutdown: %w", err))
	}
	if err := app.closeStores(); err != nil {
		errs = append(errs, err)
	}

	app.log.Info("Coursechat stopped")
	return errors.Join(errs...)
}

func (app *Application) closeStores() error {
	var errs []error
	if app.badger != nil {
		if err := app.badger.Close(); err != nil {
			errs = append(errs, fmt.Errorf("badger close: %w", err))
		}
	}
	if app.dbManager != nil {
		if err := app.dbManager.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Addr is the bound listen address once started, the configured one before.
func (app *Application) Addr() string {
	app.mu.Lock()
	defer app.mu.Unlock()
	if app.listener != nil {
		return app.listener.Addr().String()
	}
	return app.httpServer.Addr
}

// Tokens exposes the signer so tooling and tests can mint identities.
func (app *Application) Tokens() *auth.TokenService {
	return app.tokens
}
