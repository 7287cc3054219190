package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfrund/myprofile/internal/backend"
	"github.com/nfrund/myprofile/internal/config"
	"github.com/nfrund/myprofile/internal/module"
	"github.com/nfrund/myprofile/internal/modules/profile"
	"github.com/nfrund/myprofile/internal/preview"
	"github.com/nfrund/myprofile/internal/pubsub"
	"github.com/nfrund/myprofile/internal/registry"
	"github.com/nfrund/myprofile/internal/rendering"
	"github.com/nfrund/myprofile/internal/storage"
	"github.com/spf13/afero"
)

// previewBaseURL is where the profile module serves preview bytes.
const previewBaseURL = "/profile/preview"

// Assemble builds the core services, registers them and creates a Server hosting the
// application modules. The returned cleanup closes the event bus and flushes traces.
func Assemble(ctx context.Context, cfg *config.Config) (*Server, func(), error) {
	client, err := backend.New(cfg.GetBackendURL(), cfg.GetBackendTimeout())
	if err != nil {
		return nil, nil, err
	}

	tracer, shutdownTracing, err := pubsub.SetupTracing(ctx, pubsub.TracingConfig{
		Enabled:     cfg.GetTracingEnabled(),
		ServiceName: cfg.GetServiceName(),
		ZipkinURL:   cfg.GetZipkinURL(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("server: tracing: %w", err)
	}

	// Previews only live for an edit session, so memory is the right backing store.
	previews := preview.NewRegistry(storage.NewAferoStore(afero.NewMemMapFs()), previewBaseURL)
	bus := pubsub.NewWatermillBridge(pubsub.WithTracer(tracer))
	renderer := rendering.NewUniversalRenderer()

	reg := registry.New(cfg)
	registry.Set(reg, registry.BackendClientKey, client)
	registry.Set(reg, registry.PreviewRegistryKey, previews)
	registry.Set(reg, registry.RendererKey, rendering.Renderer(renderer))
	registry.Set(reg, registry.PublisherKey, pubsub.Publisher(bus))
	registry.Set(reg, registry.SubscriberKey, pubsub.Subscriber(bus))

	cleanup := func() {
		if err := bus.Close(); err != nil {
			slog.Error("Failed to close event bus", "error", err)
		}
		if err := shutdownTracing(context.WithoutCancel(ctx)); err != nil {
			slog.Error("Failed to flush traces", "error", err)
		}
	}

	s, err := New(Dependencies{
		Config:   cfg,
		Registry: reg,
		Renderer: renderer,
		Modules:  AppModules(cfg),
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	if err := s.Boot(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("server: boot: %w", err)
	}
	return s, cleanup, nil
}

// AppModules is the central list of application modules.
func AppModules(cfg config.Provider) []module.Module {
	return []module.Module{
		profile.New(profile.Dependencies{
			IdleTTL:         cfg.GetWorkspaceIdleTTL(),
			MaxPreviewBytes: cfg.GetPreviewMaxBytes(),
			DefaultToken:    cfg.GetProfileToken(),
			SaveRateLimit:   5,
		}),
	}
}
