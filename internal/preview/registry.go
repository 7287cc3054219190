// Package preview keeps the short-lived previews of avatars a user has picked but
// not yet uploaded. Each preview is a Handle: acquired when a file is selected,
// released exactly once when it is superseded, the edit ends, or the view goes away.
package preview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/nfrund/myprofile/internal/domain"
	"github.com/nfrund/myprofile/internal/storage"
)

const storageRoot = "previews"

// Stats is a snapshot of the handle table.
type Stats struct {
	Acquired int
	Released int
	Live     int
}

// Registry is the process-wide handle table.
type Registry struct {
	store   storage.Store
	baseURL string
	logger  *slog.Logger

	mu       sync.Mutex
	entries  map[string]*Handle
	acquired int
	released int
}

// NewRegistry creates a registry that stores preview bytes in store and hands out
// URLs of the form {baseURL}/{id}.
func NewRegistry(store storage.Store, baseURL string) *Registry {
	return &Registry{
		store:   store,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  slog.Default().With("component", "preview"),
		entries: make(map[string]*Handle),
	}
}

// Acquire stores a copy of file and returns a live handle for it.
func (r *Registry) Acquire(ctx context.Context, file *domain.AvatarFile) (*Handle, error) {
	if file == nil {
		return nil, fmt.Errorf("preview: nil file")
	}
	id := uuid.NewString()
	storagePath := path.Join(storageRoot, id, file.StorageName())
	if _, err := r.store.Save(ctx, storagePath, bytes.NewReader(file.Content)); err != nil {
		return nil, fmt.Errorf("preview: save %s: %w", file.Filename, err)
	}

	h := &Handle{
		id:          id,
		url:         r.baseURL + "/" + id,
		contentType: file.ContentType,
		storagePath: storagePath,
		registry:    r,
	}

	r.mu.Lock()
	r.entries[id] = h
	r.acquired++
	r.mu.Unlock()

	r.logger.Debug("preview acquired", "id", id, "size", file.Size())
	return h, nil
}

// Open streams the bytes of a live preview. Released or unknown ids yield domain.ErrNotFound.
func (r *Registry) Open(ctx context.Context, id string) (io.ReadCloser, string, error) {
	r.mu.Lock()
	h, ok := r.entries[id]
	r.mu.Unlock()
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	rc, err := r.store.Open(ctx, h.storagePath)
	if err != nil {
		return nil, "", fmt.Errorf("preview: open %s: %w", id, err)
	}
	return rc, h.contentType, nil
}

// Stats reports how many handles were acquired and released, and how many are live.
func (r *Registry) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{Acquired: r.acquired, Released: r.released, Live: len(r.entries)}
}

func (r *Registry) release(h *Handle) {
	r.mu.Lock()
	delete(r.entries, h.id)
	r.released++
	r.mu.Unlock()

	if err := r.store.Delete(context.Background(), h.storagePath); err != nil {
		r.logger.Warn("failed to delete preview bytes", "id", h.id, "error", err)
	}
	r.logger.Debug("preview released", "id", h.id)
}

// Handle is one live preview.
type Handle struct {
	id          string
	url         string
	contentType string
	storagePath string
	registry    *Registry
	once        sync.Once
}

// ID returns the handle's identifier.
func (h *Handle) ID() string { return h.id }

// URL returns the address the page can use to display the preview.
func (h *Handle) URL() string { return h.url }

// Release frees the handle. Calls after the first are no-ops.
func (h *Handle) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() { h.registry.release(h) })
}
