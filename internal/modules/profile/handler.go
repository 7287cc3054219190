package profile

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/myprofile/internal/domain"
	"github.com/nfrund/myprofile/internal/middleware"
	"github.com/nfrund/myprofile/internal/modules/profile/view"
	"github.com/nfrund/myprofile/internal/preview"
	"github.com/nfrund/myprofile/internal/profileview"
	"github.com/nfrund/myprofile/internal/rendering"
	gview "github.com/nfrund/myprofile/internal/view"
	"github.com/nfrund/myprofile/web/layouts"
	cmp "maragu.dev/gomponents"
)

const (
	sessionName     = "profile-session"
	sessionKeyWSID  = "workspace"
	profilePath     = "/profile"
	formMemoryLimit = 1 << 20

	msgEditLost = "Your edit session ended before saving. Please edit and save again."
)

// Handler serves the profile page and its htmx endpoints.
type Handler struct {
	workspaces *Workspaces
	previews   *preview.Registry
	renderer   rendering.Renderer
	validator  *CustomValidator
	maxBytes   int64
}

// NewHandler creates a Handler. Avatars larger than maxBytes are refused.
func NewHandler(workspaces *Workspaces, previews *preview.Registry, renderer rendering.Renderer, maxBytes int64) *Handler {
	return &Handler{
		workspaces: workspaces,
		previews:   previews,
		renderer:   renderer,
		validator:  NewValidator(),
		maxBytes:   maxBytes,
	}
}

// Get renders the profile page.
func (h *Handler) Get(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}

	notes := append(gview.GetFlashData(c).Notifications(), ws.Inbox.Drain()...)
	body := gview.AdaptGomponentToTempl(view.Page(cardData(ws.VM), notes))
	return h.renderer.RenderPage(c, http.StatusOK, layouts.Base("", body))
}

// Edit starts an edit session.
func (h *Handler) Edit(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}
	if err := ws.VM.StartEdit(); err != nil {
		return h.fail(c, err)
	}
	return h.respond(c, ws)
}

// Cancel abandons the edit session.
func (h *Handler) Cancel(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}
	if err := ws.VM.CancelEdit(); err != nil {
		return h.fail(c, err)
	}
	return h.respond(c, ws)
}

// Draft applies field edits. htmx callers get 204; the card is not re-rendered so the
// input being typed in keeps its focus.
func (h *Handler) Draft(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}
	if _, err := h.applyDraft(c, ws.VM, true); err != nil {
		return h.fail(c, err)
	}
	if isHTMX(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return h.respond(c, ws)
}

// Avatar selects a new avatar and shows its preview.
func (h *Handler) Avatar(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}

	fh, _ := c.FormFile("image")
	req := AvatarRequest{Image: fh}
	if err := h.validator.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "an image file is required")
	}
	file, err := h.readAvatar(fh)
	if err != nil {
		return err
	}

	if err := ws.VM.SelectAvatar(c.Request().Context(), file); err != nil {
		if isStateError(err) {
			return h.fail(c, err)
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return h.respond(c, ws)
}

// Save submits the draft. Field values posted along with the request are applied first,
// so a plain form post saves what the user sees.
func (h *Handler) Save(c echo.Context) error {
	ws, err := h.workspace(c)
	if err != nil {
		return err
	}
	edited, err := h.applyDraft(c, ws.VM, false)
	if err != nil {
		return err
	}

	outcome := ws.VM.Save(c.Request().Context())
	if outcome == profileview.SaveSkipped && edited {
		// The edits had nowhere to go, typically because the workspace was swept.
		ws.Inbox.Failure(msgEditLost)
	}
	middleware.FromContext(c.Request().Context()).Info("profile save", "workspace", ws.ID, "outcome", outcome)
	return h.respond(c, ws)
}

// Preview streams the bytes of a live preview.
func (h *Handler) Preview(c echo.Context) error {
	rc, contentType, err := h.previews.Open(c.Request().Context(), c.Param("id"))
	if errors.Is(err, domain.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "preview not found")
	}
	if err != nil {
		return err
	}
	defer rc.Close()

	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	return c.Stream(http.StatusOK, contentType, rc)
}

// Leave tears the workspace down, releasing any preview it holds.
func (h *Handler) Leave(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	if id, ok := sess.Values[sessionKeyWSID].(string); ok {
		h.workspaces.Close(id)
	}
	return c.NoContent(http.StatusNoContent)
}

// workspace resolves the caller's workspace, creating the session id on first visit.
func (h *Handler) workspace(c echo.Context) (*Workspace, error) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil, fmt.Errorf("profile: load session: %w", err)
	}

	id, ok := sess.Values[sessionKeyWSID].(string)
	if !ok || id == "" {
		id = uuid.NewString()
		sess.Values[sessionKeyWSID] = id
		sess.Options = &sessions.Options{Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode}
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return nil, fmt.Errorf("profile: save session: %w", err)
		}
	}

	return h.workspaces.Open(c.Request().Context(), id, middleware.TokenFrom(c)), nil
}

// applyDraft copies posted field values that differ from the draft into it and reports
// whether there were any. With strict unset, edits the view model refuses are ignored
// and left for Save to report.
func (h *Handler) applyDraft(c echo.Context, vm *profileview.ViewModel, strict bool) (bool, error) {
	// Both urlencoded and multipart bodies end up in PostForm.
	if err := c.Request().ParseMultipartForm(formMemoryLimit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return false, echo.NewHTTPError(http.StatusBadRequest, "malformed form").SetInternal(err)
	}
	req := draftRequestFrom(c.Request().PostForm).Without(vm.Draft())
	if req.Empty() {
		return false, nil
	}
	if err := h.validator.Validate(req); err != nil {
		return true, echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}

	edits := []struct {
		value *string
		set   func(string) error
	}{
		{req.Name, vm.SetName},
		{req.Phone, vm.SetPhone},
		{req.Line1, vm.SetAddressLine1},
		{req.Line2, vm.SetAddressLine2},
		{req.Gender, vm.SetGender},
		{req.DOB, vm.SetDOB},
		{req.AboutPet, vm.SetAboutPet},
	}
	for _, e := range edits {
		if e.value == nil {
			continue
		}
		if err := e.set(*e.value); err != nil {
			if !strict && isStateError(err) {
				return true, nil
			}
			return true, err
		}
	}
	return true, nil
}

func (h *Handler) readAvatar(fh *multipart.FileHeader) (*domain.AvatarFile, error) {
	if fh.Size > h.maxBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("image is larger than %d bytes", h.maxBytes))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("profile: open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("profile: read upload: %w", err)
	}
	if int64(len(content)) > h.maxBytes {
		return nil, echo.NewHTTPError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("image is larger than %d bytes", h.maxBytes))
	}

	contentType := fh.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = http.DetectContentType(content)
	}
	return &domain.AvatarFile{
		Filename:    filepath.Base(fh.Filename),
		ContentType: contentType,
		Content:     content,
	}, nil
}

// respond answers a state change. htmx gets the card plus out-of-band toasts; a plain
// form post is redirected back to the page with the notifications as flashes.
func (h *Handler) respond(c echo.Context, ws *Workspace) error {
	notes := ws.Inbox.Drain()
	if !isHTMX(c) {
		gview.SetFlashNotifications(c, notes)
		return c.Redirect(http.StatusSeeOther, profilePath)
	}
	return h.renderer.RenderPage(c, http.StatusOK, cmp.Group{
		view.Card(cardData(ws.VM)),
		view.Toasts(notes, true),
	})
}

func cardData(vm *profileview.ViewModel) view.Data {
	state := vm.State()
	return view.Data{
		Profile: vm.Displayed(),
		Editing: state != profileview.Viewing,
		Saving:  state == profileview.Saving,
	}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

func isStateError(err error) bool {
	return errors.Is(err, domain.ErrNotEditing) ||
		errors.Is(err, domain.ErrSaveInFlight) ||
		errors.Is(err, domain.ErrClosed)
}

// fail answers a refused state change. A plain form post is sent back to the page with
// the reason as a flash; htmx callers get the error status.
func (h *Handler) fail(c echo.Context, err error) error {
	if isStateError(err) && !isHTMX(c) {
		gview.SetFlashError(c, err.Error())
		return c.Redirect(http.StatusSeeOther, profilePath)
	}
	return stateError(err)
}

// stateError maps view model state errors to 409 Conflict.
func stateError(err error) error {
	if isStateError(err) {
		return echo.NewHTTPError(http.StatusConflict, err.Error()).SetInternal(err)
	}
	return err
}
