package profile

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nfrund/myprofile/internal/middleware"
	"github.com/nfrund/myprofile/internal/module"
	"github.com/nfrund/myprofile/internal/pubsub"
	"github.com/nfrund/myprofile/internal/registry"
)

// Dependencies are the module's settings. Shared services come from the registry.
type Dependencies struct {
	IdleTTL         time.Duration
	MaxPreviewBytes int64
	// DefaultToken is used for requests that carry no token of their own.
	DefaultToken string
	// SaveRateLimit bounds avatar and save posts per client per second.
	SaveRateLimit float64
}

// Module hosts the profile page.
type Module struct {
	module.BaseModule
	deps       Dependencies
	workspaces *Workspaces
	handler    *Handler
	cancel     context.CancelFunc
}

func New(deps Dependencies) *Module {
	if deps.SaveRateLimit <= 0 {
		deps.SaveRateLimit = 5
	}
	if deps.IdleTTL <= 0 {
		deps.IdleTTL = 30 * time.Minute
	}
	return &Module{deps: deps}
}

func (m *Module) Name() string {
	return "profile"
}

// Workspaces exposes the open workspaces, mainly for tests.
func (m *Module) Workspaces() *Workspaces {
	return m.workspaces
}

// Boot wires the handlers, subscribes to profile changes and starts the idle sweeper.
func (m *Module) Boot(ctx context.Context, group *echo.Group, reg *registry.Registry) error {
	client := registry.MustGet(reg, registry.BackendClientKey)
	previews := registry.MustGet(reg, registry.PreviewRegistryKey)
	renderer := registry.MustGet(reg, registry.RendererKey)
	publisher, _ := registry.Get(reg, registry.PublisherKey)
	subscriber, hasSubscriber := registry.Get(reg, registry.SubscriberKey)

	m.workspaces = NewWorkspaces(client, client, previews, publisher, m.deps.IdleTTL)
	m.handler = NewHandler(m.workspaces, previews, renderer, m.deps.MaxPreviewBytes)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	m.cancel = cancel

	if hasSubscriber {
		err := subscriber.Subscribe(runCtx, pubsub.ProfileUpdated.Name(), func(ctx context.Context, msg pubsub.Message) error {
			update, err := pubsub.ProfileUpdated.Decode(msg)
			if err != nil {
				return err
			}
			slog.Debug("Canonical profile changed", "workspace", msg.UserID, "source", update.Source)
			m.workspaces.Refresh(msg.UserID)
			return nil
		})
		if err != nil {
			cancel()
			return fmt.Errorf("profile: subscribe to %s: %w", pubsub.TopicProfileUpdated, err)
		}
	}
	go m.workspaces.Run(runCtx)

	token := middleware.Token(m.deps.DefaultToken)
	limited := middleware.RateLimiter(m.deps.SaveRateLimit, 10)

	group.GET("", m.handler.Get, token)
	group.POST("/edit", m.handler.Edit, token)
	group.POST("/cancel", m.handler.Cancel, token)
	group.POST("/draft", m.handler.Draft, token)
	group.POST("/avatar", m.handler.Avatar, token, limited)
	group.POST("/save", m.handler.Save, token, limited)
	group.POST("/leave", m.handler.Leave)
	group.GET("/preview/:id", m.handler.Preview)

	slog.Info("Profile module booted", "idle_ttl", m.deps.IdleTTL)
	return nil
}

// Shutdown stops the sweeper and tears down every workspace.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.cancel != nil {
		m.cancel()
	}
	if m.workspaces != nil {
		m.workspaces.CloseAll()
	}
	return nil
}
