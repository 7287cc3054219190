package profile

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nfrund/myprofile/internal/appctx"
	"github.com/nfrund/myprofile/internal/notify"
	"github.com/nfrund/myprofile/internal/profileview"
	"github.com/nfrund/myprofile/internal/pubsub"
)

// Workspace is one browser session's view of the profile page.
type Workspace struct {
	ID    string
	Token string
	Store *appctx.ProfileStore
	VM    *profileview.ViewModel
	Inbox *notify.Inbox

	mu       sync.Mutex
	lastSeen time.Time
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastSeen)
}

// Workspaces owns every open Workspace, keyed by the id kept in the browser session.
type Workspaces struct {
	fetcher   appctx.Fetcher
	updater   profileview.Updater
	previews  profileview.Previews
	publisher pubsub.Publisher
	idleTTL   time.Duration
	logger    *slog.Logger
	now       func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewWorkspaces creates an empty set. A nil publisher disables change events.
func NewWorkspaces(fetcher appctx.Fetcher, updater profileview.Updater, previews profileview.Previews, publisher pubsub.Publisher, idleTTL time.Duration) *Workspaces {
	return &Workspaces{
		fetcher:   fetcher,
		updater:   updater,
		previews:  previews,
		publisher: publisher,
		idleTTL:   idleTTL,
		logger:    slog.Default().With("component", "workspaces"),
		now:       time.Now,
		items:     make(map[string]*Workspace),
	}
}

// Get returns the workspace for id, if it is open.
func (ws *Workspaces) Get(id string) (*Workspace, bool) {
	ws.mu.Lock()
	w, ok := ws.items[id]
	ws.mu.Unlock()
	if ok {
		w.touch(ws.now())
	}
	return w, ok
}

// Open returns the workspace for id, creating it and loading the canonical profile
// when needed. A workspace opened with a different token is replaced.
func (ws *Workspaces) Open(ctx context.Context, id, token string) *Workspace {
	if w, ok := ws.Get(id); ok {
		if w.Token == token {
			return w
		}
		ws.Close(id)
	}

	w := ws.build(id, token)
	if err := w.Store.Load(ctx); err != nil {
		// The page still renders from defaults; a later reload can fill it in.
		ws.logger.Warn("failed to load profile", "workspace", id, "error", err)
	}
	w.VM.Refresh()

	ws.mu.Lock()
	if existing, ok := ws.items[id]; ok && existing.Token == token {
		// A concurrent request opened it first.
		ws.mu.Unlock()
		w.VM.Close()
		return existing
	}
	ws.items[id] = w
	ws.mu.Unlock()

	ws.logger.Debug("workspace opened", "workspace", id)
	return w
}

func (ws *Workspaces) build(id, token string) *Workspace {
	logger := ws.logger.With("workspace", id)
	opts := []appctx.Option{appctx.WithLogger(logger)}
	if ws.publisher != nil {
		opts = append(opts, appctx.WithPublisher(ws.publisher, id))
	}
	store := appctx.New(ws.fetcher, token, opts...)
	inbox := notify.NewInbox()
	return &Workspace{
		ID:       id,
		Token:    token,
		Store:    store,
		VM:       profileview.New(store, ws.updater, ws.previews, notify.Tee{inbox, notify.Log{Logger: logger}}, profileview.WithLogger(logger)),
		Inbox:    inbox,
		lastSeen: ws.now(),
	}
}

// Refresh tells the workspace's view model that its canonical profile changed.
func (ws *Workspaces) Refresh(id string) {
	ws.mu.Lock()
	w, ok := ws.items[id]
	ws.mu.Unlock()
	if ok {
		w.VM.Refresh()
	}
}

// Close tears down the workspace for id, releasing any live preview.
func (ws *Workspaces) Close(id string) {
	ws.mu.Lock()
	w, ok := ws.items[id]
	delete(ws.items, id)
	ws.mu.Unlock()
	if ok {
		w.VM.Close()
		ws.logger.Debug("workspace closed", "workspace", id)
	}
}

// Len returns the number of open workspaces.
func (ws *Workspaces) Len() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.items)
}

// Sweep closes workspaces idle for longer than the idle TTL and returns how many it closed.
func (ws *Workspaces) Sweep() int {
	now := ws.now()
	var idle []*Workspace

	ws.mu.Lock()
	for id, w := range ws.items {
		if w.idleSince(now) > ws.idleTTL {
			idle = append(idle, w)
			delete(ws.items, id)
		}
	}
	ws.mu.Unlock()

	for _, w := range idle {
		w.VM.Close()
	}
	if len(idle) > 0 {
		ws.logger.Info("swept idle workspaces", "count", len(idle))
	}
	return len(idle)
}

// Run sweeps idle workspaces until ctx is canceled.
func (ws *Workspaces) Run(ctx context.Context) {
	interval := ws.idleTTL / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ws.Sweep()
		}
	}
}

// CloseAll tears down every workspace and waits for their background reloads.
func (ws *Workspaces) CloseAll() {
	ws.mu.Lock()
	items := ws.items
	ws.items = make(map[string]*Workspace)
	ws.mu.Unlock()

	for _, w := range items {
		w.VM.Close()
		w.Store.Wait()
	}
}
