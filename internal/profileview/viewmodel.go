// Package profileview implements the profile page's view model: a canonical profile
// owned by a Store, an edit draft owned by the view model, and the save round-trip
// that reconciles the two.
package profileview

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/nfrund/myprofile/internal/backend"
	"github.com/nfrund/myprofile/internal/domain"
	"github.com/nfrund/myprofile/internal/preview"
)

// Notification texts used when the backend does not supply its own.
const (
	MsgUpdated       = "Profile updated"
	MsgUpdateFailed  = "Failed to update profile"
	MsgTransportFail = "Update failed"
)

// Store is the application-wide profile state the view model reads and, after a
// confirmed save, optimistically updates.
type Store interface {
	// Current returns the canonical profile, or nil before it has been loaded.
	Current() *domain.UserData
	// Merge shallow-merges the non-nil fields of patch into the canonical profile.
	Merge(patch domain.UserData)
	// AuthToken returns the credential attached to backend requests.
	AuthToken() string
	// Reload refetches the canonical profile in the background.
	Reload(ctx context.Context)
}

// Notifier receives user-visible messages. Calls are fire-and-forget.
type Notifier interface {
	Success(message string)
	Failure(message string)
}

// Updater submits a profile update to the backend.
type Updater interface {
	UpdateProfile(ctx context.Context, token string, sub backend.Submission) (*backend.Result, error)
}

// Previews hands out preview handles for locally selected images.
type Previews interface {
	Acquire(ctx context.Context, file *domain.AvatarFile) (*preview.Handle, error)
}

// State is the view model's mode.
type State int

const (
	Viewing State = iota
	Editing
	// Saving is the part of Editing during which a save request is in flight.
	Saving
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome reports what a call to Save did.
type Outcome int

const (
	// SaveSkipped means no request was sent: not editing, or a save was already in flight.
	SaveSkipped Outcome = iota
	SaveSucceeded
	SaveFailed
)

func (o Outcome) String() string {
	switch o {
	case SaveSkipped:
		return "skipped"
	case SaveSucceeded:
		return "succeeded"
	case SaveFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// avatarSelection couples a pending upload with its preview handle. Both live and
// die together.
type avatarSelection struct {
	file   *domain.AvatarFile
	handle *preview.Handle
}

func (s *avatarSelection) release() {
	if s != nil {
		s.handle.Release()
	}
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithLogger sets the logger used for diagnostic traces.
func WithLogger(l *slog.Logger) Option {
	return func(vm *ViewModel) {
		vm.logger = l
	}
}

// ViewModel is the profile page's state machine. It is safe for concurrent use.
type ViewModel struct {
	store    Store
	updater  Updater
	previews Previews
	notifier Notifier
	logger   *slog.Logger

	mu        sync.Mutex
	state     State
	draft     domain.Profile
	selection *avatarSelection
	closed    bool
}

// New creates a view model in the Viewing state.
func New(store Store, updater Updater, previews Previews, notifier Notifier, opts ...Option) *ViewModel {
	vm := &ViewModel{
		store:    store,
		updater:  updater,
		previews: previews,
		notifier: notifier,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.draft = domain.Normalize(store.Current())
	return vm
}

// State returns the current mode.
func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// Canonical returns the normalized canonical profile.
func (vm *ViewModel) Canonical() domain.Profile {
	return domain.Normalize(vm.store.Current())
}

// Draft returns a copy of the edit draft.
func (vm *ViewModel) Draft() domain.Profile {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.draft
}

// Displayed returns what the page should show: the canonical profile while viewing,
// the draft while editing or saving.
func (vm *ViewModel) Displayed() domain.Profile {
	vm.mu.Lock()
	state, draft := vm.state, vm.draft
	vm.mu.Unlock()
	if state == Viewing {
		return vm.Canonical()
	}
	return draft
}

// HasPendingUpload reports whether an avatar is waiting to be uploaded.
func (vm *ViewModel) HasPendingUpload() bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.selection != nil
}

// StartEdit begins an edit session with a draft taken from the canonical profile.
// Any selection left over from an earlier session is released.
func (vm *ViewModel) StartEdit() error {
	canonical := vm.Canonical()

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed {
		return domain.ErrClosed
	}
	if vm.state == Saving {
		return domain.ErrSaveInFlight
	}
	vm.clearSelectionLocked()
	vm.draft = canonical
	vm.state = Editing
	return nil
}

// CancelEdit abandons the draft and any selected avatar. It is refused while a save
// is in flight, so a late success can never merge a draft the user discarded.
func (vm *ViewModel) CancelEdit() error {
	canonical := vm.Canonical()

	vm.mu.Lock()
	defer vm.mu.Unlock()
	switch {
	case vm.closed:
		return domain.ErrClosed
	case vm.state == Saving:
		return domain.ErrSaveInFlight
	case vm.state == Viewing:
		return nil
	}
	vm.clearSelectionLocked()
	vm.draft = canonical
	vm.state = Viewing
	return nil
}

// Refresh tells the view model the canonical profile changed. The draft follows it
// only while viewing; an edit in progress is never overwritten.
func (vm *ViewModel) Refresh() {
	canonical := vm.Canonical()

	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed || vm.state != Viewing {
		return
	}
	vm.draft = canonical
}

func (vm *ViewModel) SetName(v string) error {
	return vm.edit(func(d *domain.Profile) { d.Name = v })
}

func (vm *ViewModel) SetPhone(v string) error {
	return vm.edit(func(d *domain.Profile) { d.Phone = v })
}

func (vm *ViewModel) SetAddressLine1(v string) error {
	return vm.edit(func(d *domain.Profile) { d.Address.Line1 = v })
}

func (vm *ViewModel) SetAddressLine2(v string) error {
	return vm.edit(func(d *domain.Profile) { d.Address.Line2 = v })
}

func (vm *ViewModel) SetGender(v string) error {
	return vm.edit(func(d *domain.Profile) { d.Gender = v })
}

func (vm *ViewModel) SetDOB(v string) error {
	return vm.edit(func(d *domain.Profile) { d.DOB = v })
}

func (vm *ViewModel) SetAboutPet(v string) error {
	return vm.edit(func(d *domain.Profile) { d.AboutPet = v })
}

func (vm *ViewModel) edit(apply func(d *domain.Profile)) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if err := vm.editableLocked(); err != nil {
		return err
	}
	apply(&vm.draft)
	return nil
}

func (vm *ViewModel) editableLocked() error {
	switch {
	case vm.closed:
		return domain.ErrClosed
	case vm.state == Viewing:
		return domain.ErrNotEditing
	case vm.state == Saving:
		return domain.ErrSaveInFlight
	}
	return nil
}

// SelectAvatar makes file the pending upload and points the draft's image at its
// preview. A nil file is ignored. The previous preview, if any, is released once the
// new one exists.
func (vm *ViewModel) SelectAvatar(ctx context.Context, file *domain.AvatarFile) error {
	if file == nil {
		return nil
	}

	vm.mu.Lock()
	err := vm.editableLocked()
	vm.mu.Unlock()
	if err != nil {
		return err
	}

	handle, err := vm.previews.Acquire(ctx, file)
	if err != nil {
		return err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	// The session may have ended while the preview was being stored.
	if err := vm.editableLocked(); err != nil {
		handle.Release()
		return err
	}
	vm.clearSelectionLocked()
	vm.selection = &avatarSelection{file: file, handle: handle}
	vm.draft.Image = handle.URL()
	return nil
}

// Save submits the draft. At most one save is in flight at a time; calls made while
// one is pending, or outside an edit session, return SaveSkipped without a request.
//
// On success the draft's editable fields are merged into the store, a reload is
// requested, and the view returns to Viewing. On failure the user is notified and
// the draft and pending upload are kept for a retry. The Saving state is always left.
// Canceling ctx does not abort a request already issued; only its values are used.
func (vm *ViewModel) Save(ctx context.Context) Outcome {
	vm.mu.Lock()
	if vm.closed || vm.state != Editing {
		vm.mu.Unlock()
		return SaveSkipped
	}
	vm.state = Saving
	draft := vm.draft
	var image *domain.AvatarFile
	if vm.selection != nil {
		image = vm.selection.file
	}
	vm.mu.Unlock()

	defer func() {
		vm.mu.Lock()
		if vm.state == Saving {
			vm.state = Editing
		}
		vm.mu.Unlock()
	}()

	// Once issued, a save runs to completion even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	res, err := vm.submit(ctx, draft, image)
	if err != nil {
		msg := backend.ServerMessage(err)
		if msg == "" {
			msg = err.Error()
		}
		if msg == "" {
			msg = MsgTransportFail
		}
		vm.logger.Error("profile update request failed", "error", err)
		vm.notifier.Failure(msg)
		return SaveFailed
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = MsgUpdateFailed
		}
		vm.logger.Warn("profile update rejected", "message", res.Message)
		vm.notifier.Failure(msg)
		return SaveFailed
	}

	vm.store.Merge(domain.Patch(draft))
	vm.store.Reload(ctx)
	canonical := vm.Canonical()

	vm.mu.Lock()
	vm.clearSelectionLocked()
	vm.draft = canonical
	vm.state = Viewing
	vm.mu.Unlock()

	msg := res.Message
	if msg == "" {
		msg = MsgUpdated
	}
	vm.notifier.Success(msg)
	return SaveSucceeded
}

func (vm *ViewModel) submit(ctx context.Context, draft domain.Profile, image *domain.AvatarFile) (res *backend.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	res, err = vm.updater.UpdateProfile(ctx, vm.store.AuthToken(), backend.Submission{
		Name:     draft.Name,
		Phone:    draft.Phone,
		Address:  draft.Address,
		Gender:   draft.Gender,
		DOB:      draft.DOB,
		AboutPet: draft.AboutPet,
		Image:    image,
	})
	if err == nil && res == nil {
		err = fmt.Errorf("backend: empty response")
	}
	return res, err
}

// Close tears the view model down, releasing any live preview. Later operations
// return domain.ErrClosed. Close is idempotent.
func (vm *ViewModel) Close() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	if vm.closed {
		return
	}
	vm.clearSelectionLocked()
	vm.closed = true
	vm.state = Viewing
}

func (vm *ViewModel) clearSelectionLocked() {
	vm.selection.release()
	vm.selection = nil
}
