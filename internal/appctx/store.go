// Package appctx holds the application-wide profile state shared by every view of
// one signed-in user.
package appctx

import (
	"context"
	"log/slog"
	"sync"

	"github.com/nfrund/myprofile/internal/domain"
	"github.com/nfrund/myprofile/internal/pubsub"
)

// Fetcher loads the authoritative profile from the backend.
type Fetcher interface {
	GetProfile(ctx context.Context, token string) (*domain.UserData, error)
}

// Option configures a ProfileStore.
type Option func(*ProfileStore)

// WithPublisher announces every change of the canonical profile on pub, with key as
// the message's UserID.
func WithPublisher(pub pubsub.Publisher, key string) Option {
	return func(s *ProfileStore) {
		s.publisher = pub
		s.key = key
	}
}

// WithLogger sets the store's logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *ProfileStore) {
		s.logger = l
	}
}

// WithInitial seeds the canonical profile, e.g. from a cached copy.
func WithInitial(u *domain.UserData) Option {
	return func(s *ProfileStore) {
		s.current = u
	}
}

// ProfileStore owns the canonical profile and the credential used to reach the backend.
type ProfileStore struct {
	fetcher   Fetcher
	token     string
	publisher pubsub.Publisher
	key       string
	logger    *slog.Logger

	mu      sync.RWMutex
	current *domain.UserData
	// issued numbers every fetch and merge; applied is the newest one reflected in current.
	issued  uint64
	applied uint64

	wg sync.WaitGroup
}

// New creates a store that authenticates with token.
func New(fetcher Fetcher, token string, opts ...Option) *ProfileStore {
	s := &ProfileStore{
		fetcher: fetcher,
		token:   token,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "profile_store")
	return s
}

// Current returns the canonical profile, or nil before the first load.
func (s *ProfileStore) Current() *domain.UserData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// AuthToken returns the credential attached to backend requests.
func (s *ProfileStore) AuthToken() string {
	return s.token
}

// Merge applies the non-nil fields of patch to the canonical profile. Fetches started
// before the merge can no longer overwrite it.
func (s *ProfileStore) Merge(patch domain.UserData) {
	s.mu.Lock()
	s.issued++
	s.applied = s.issued
	s.current = domain.Merge(s.current, patch)
	s.mu.Unlock()

	s.publish("merge")
}

// Load fetches the profile and waits for the result.
func (s *ProfileStore) Load(ctx context.Context) error {
	seq := s.nextSeq()
	u, err := s.fetcher.GetProfile(ctx, s.token)
	if err != nil {
		return err
	}
	s.apply(seq, u)
	return nil
}

// Reload fetches the profile in the background. The fetch outlives ctx's cancellation
// so that a finished request cannot abort it. Failures are logged and leave the
// current profile in place.
func (s *ProfileStore) Reload(ctx context.Context) {
	seq := s.nextSeq()
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		u, err := s.fetcher.GetProfile(ctx, s.token)
		if err != nil {
			s.logger.Warn("profile reload failed", "error", err)
			return
		}
		s.apply(seq, u)
	}()
}

// Wait blocks until every reload started so far has finished.
func (s *ProfileStore) Wait() {
	s.wg.Wait()
}

func (s *ProfileStore) nextSeq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

func (s *ProfileStore) apply(seq uint64, u *domain.UserData) {
	s.mu.Lock()
	if applied := s.applied; seq < applied {
		s.mu.Unlock()
		s.logger.Debug("dropping stale profile fetch", "seq", seq, "applied", applied)
		return
	}
	s.applied = seq
	s.current = u
	s.mu.Unlock()

	s.publish("reload")
}

func (s *ProfileStore) publish(source string) {
	if s.publisher == nil {
		return
	}
	err := pubsub.Publish(context.Background(), s.publisher, pubsub.ProfileUpdated, s.key, pubsub.ProfileUpdate{Source: source})
	if err != nil {
		s.logger.Error("failed to publish profile update", "error", err)
	}
}
