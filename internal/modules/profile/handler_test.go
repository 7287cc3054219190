package profile

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/myprofile/internal/backend"
	"github.com/nfrund/myprofile/internal/config"
	"github.com/nfrund/myprofile/internal/domain"
	"github.com/nfrund/myprofile/internal/preview"
	"github.com/nfrund/myprofile/internal/pubsub"
	"github.com/nfrund/myprofile/internal/registry"
	"github.com/nfrund/myprofile/internal/rendering"
	"github.com/nfrund/myprofile/internal/storage"
	"github.com/nfrund/myprofile/internal/testutils"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testApp struct {
	e        *echo.Echo
	module   *Module
	backend  *testutils.FakeBackend
	previews *preview.Registry
	cookies  map[string]*http.Cookie
}

func newTestApp(t *testing.T, deps Dependencies) *testApp {
	t.Helper()

	fb := testutils.NewFakeBackend(t, testutils.SampleProfile())

	client, err := backend.New(fb.URL, time.Second)
	require.NoError(t, err)
	previews := preview.NewRegistry(storage.NewAferoStore(afero.NewMemMapFs()), "/profile/preview")
	bus := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bus.Close() })

	reg := registry.New(&config.Config{})
	registry.Set(reg, registry.BackendClientKey, client)
	registry.Set(reg, registry.PreviewRegistryKey, previews)
	registry.Set(reg, registry.RendererKey, rendering.Renderer(rendering.NewUniversalRenderer()))
	registry.Set(reg, registry.PublisherKey, pubsub.Publisher(bus))
	registry.Set(reg, registry.SubscriberKey, pubsub.Subscriber(bus))

	if deps.IdleTTL == 0 {
		deps.IdleTTL = time.Hour
	}
	if deps.MaxPreviewBytes == 0 {
		deps.MaxPreviewBytes = 1 << 20
	}
	if deps.SaveRateLimit == 0 {
		deps.SaveRateLimit = 1000
	}

	e := echo.New()
	e.Use(session.Middleware(sessions.NewCookieStore([]byte("a-very-secret-key-for-testing-!"))))
	m := New(deps)
	require.NoError(t, m.Boot(context.Background(), e.Group("/profile"), reg))
	t.Cleanup(func() { _ = m.Shutdown(context.Background()) })

	return &testApp{e: e, module: m, backend: fb, previews: previews, cookies: map[string]*http.Cookie{}}
}

// do sends a request, carrying cookies between calls like a browser would.
func (a *testApp) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range a.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		a.cookies[c.Name] = c
	}
	return rec
}

func (a *testApp) htmx(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("token", "tok-123")
	return a.do(t, req)
}

func (a *testApp) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("token", "tok-123")
	return a.do(t, req)
}

func (a *testApp) uploadAvatar(t *testing.T, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/profile/avatar", body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	req.Header.Set("HX-Request", "true")
	req.Header.Set("token", "tok-123")
	return a.do(t, req)
}

var previewSrc = regexp.MustCompile(`src="(/profile/preview/[0-9a-f-]+)"`)

func TestProfilePage_RendersCanonical(t *testing.T) {
	app := newTestApp(t, Dependencies{})

	rec := app.get(t, "/profile")

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ada")
	assert.Contains(t, body, "ada@example.com")
	assert.Contains(t, body, "1 Main St")
	assert.Contains(t, body, `hx-post="/profile/edit"`)
	assert.Equal(t, 1, app.module.Workspaces().Len())
}

func TestProfilePage_RequiresToken(t *testing.T) {
	app := newTestApp(t, Dependencies{})

	rec := app.do(t, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfilePage_DefaultToken(t *testing.T) {
	app := newTestApp(t, Dependencies{DefaultToken: "cli-token"})

	rec := app.do(t, httptest.NewRequest(http.MethodGet, "/profile", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProfileFlow_EditAndSave(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.get(t, "/profile")

	rec := app.htmx(t, "/profile/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="name"`)

	rec = app.htmx(t, "/profile/draft", url.Values{"name": {"Ada L."}, "line1": {"2 Side St"}})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = app.htmx(t, "/profile/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Ada L.")
	assert.Contains(t, body, "2 Side St")
	assert.Contains(t, body, "Flat 4", "the untouched address line is kept")
	assert.Contains(t, body, `hx-swap-oob="true"`)
	assert.Contains(t, body, "Profile updated")
	assert.NotContains(t, body, `name="name"`, "back to viewing")

	updates := app.backend.Updates()
	require.Len(t, updates, 1)
	sent := updates[0]
	assert.Equal(t, "tok-123", sent.Token)
	assert.Equal(t, []string{"Ada L."}, sent.Fields["name"])
	assert.JSONEq(t, `{"line1":"2 Side St","line2":"Flat 4"}`, sent.Fields["address"][0])
	assert.NotContains(t, sent.Fields, "email")
}

func TestProfileFlow_SaveFailureKeepsDraft(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.backend.ReplyWith(map[string]any{"success": false, "message": "Validation error"})
	app.get(t, "/profile")
	app.htmx(t, "/profile/edit", nil)

	rec := app.htmx(t, "/profile/save", url.Values{"name": {"Bad"}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Validation error")
	assert.Contains(t, body, `class="toast toast-error"`)
	assert.Contains(t, body, `value="Bad"`, "still editing with the draft")
}

func TestProfileFlow_PlainFormPostRedirectsWithFlash(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.get(t, "/profile")

	req := httptest.NewRequest(http.MethodPost, "/profile/edit", nil)
	req.Header.Set("token", "tok-123")
	rec := app.do(t, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get(echo.HeaderLocation))

	form := url.Values{"name": {"Plain"}, "phone": {"555-0111"}}
	req = httptest.NewRequest(http.MethodPost, "/profile/save", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("token", "tok-123")
	rec = app.do(t, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = app.get(t, "/profile")
	body := rec.Body.String()
	assert.Contains(t, body, "Plain")
	assert.Contains(t, body, "Profile updated")

	// The flash is shown once.
	assert.NotContains(t, app.get(t, "/profile").Body.String(), "Profile updated")
}

func TestProfileFlow_DraftWhileViewingConflicts(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.get(t, "/profile")

	rec := app.htmx(t, "/profile/draft", url.Values{"name": {"X"}})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestProfileFlow_InvalidGender(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.get(t, "/profile")
	app.htmx(t, "/profile/edit", nil)

	rec := app.htmx(t, "/profile/draft", url.Values{"gender": {"Robot"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProfileFlow_AvatarPreviewLifecycle(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.get(t, "/profile")
	app.htmx(t, "/profile/edit", nil)

	rec := app.uploadAvatar(t, "cat.png", []byte("first"))
	require.Equal(t, http.StatusOK, rec.Code)
	first := previewSrc.FindStringSubmatch(rec.Body.String())
	require.Len(t, first, 2)

	rec = app.uploadAvatar(t, "dog.png", []byte("second"))
	require.Equal(t, http.StatusOK, rec.Code)
	second := previewSrc.FindStringSubmatch(rec.Body.String())
	require.Len(t, second, 2)
	assert.NotEqual(t, first[1], second[1])

	assert.Equal(t, http.StatusNotFound, app.get(t, first[1]).Code, "the superseded preview is released")
	got := app.get(t, second[1])
	require.Equal(t, http.StatusOK, got.Code)
	assert.Equal(t, "second", got.Body.String())
	assert.Equal(t, 1, app.previews.Stats().Live)

	app.htmx(t, "/profile/cancel", nil)
	assert.Equal(t, http.StatusNotFound, app.get(t, second[1]).Code)
	assert.Equal(t, 0, app.previews.Stats().Live)
}

func TestProfileFlow_AvatarUploadedOnSave(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.get(t, "/profile")
	app.htmx(t, "/profile/edit", nil)
	app.uploadAvatar(t, "cat.png", []byte("meow"))

	rec := app.htmx(t, "/profile/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	updates := app.backend.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "cat.png", updates[0].ImageName)
	assert.Equal(t, "meow", updates[0].ImageBody)
	assert.Equal(t, 0, app.previews.Stats().Live)
}

func TestProfileFlow_AvatarErrors(t *testing.T) {
	app := newTestApp(t, Dependencies{MaxPreviewBytes: 4})
	app.get(t, "/profile")
	app.htmx(t, "/profile/edit", nil)

	rec := app.uploadAvatar(t, "big.png", []byte("too large"))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = app.htmx(t, "/profile/avatar", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, app.previews.Stats().Acquired)
}

func TestProfileFlow_LeaveReleasesPreview(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.get(t, "/profile")
	app.htmx(t, "/profile/edit", nil)
	app.uploadAvatar(t, "cat.png", []byte("meow"))
	require.Equal(t, 1, app.previews.Stats().Live)

	rec := app.htmx(t, "/profile/leave", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, app.previews.Stats().Live)
	assert.Equal(t, 0, app.module.Workspaces().Len())
}

func TestWorkspaces_SweepIdle(t *testing.T) {
	app := newTestApp(t, Dependencies{IdleTTL: time.Minute})
	app.get(t, "/profile")
	app.htmx(t, "/profile/edit", nil)
	app.uploadAvatar(t, "cat.png", []byte("meow"))

	ws := app.module.Workspaces()
	now := time.Now()
	ws.now = func() time.Time { return now.Add(30 * time.Second) }
	assert.Equal(t, 0, ws.Sweep())

	ws.now = func() time.Time { return now.Add(2 * time.Minute) }
	assert.Equal(t, 1, ws.Sweep())
	assert.Equal(t, 0, ws.Len())
	assert.Equal(t, 0, app.previews.Stats().Live)
}

func TestWorkspaces_RefreshFromBus(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.get(t, "/profile")

	var ws *Workspace
	for _, w := range app.module.Workspaces().items {
		ws = w
	}
	require.NotNil(t, ws)

	app.backend.Set("name", "Changed Elsewhere")
	ws.Store.Reload(context.Background())
	ws.Store.Wait()

	require.Eventually(t, func() bool {
		return ws.VM.Draft().Name == "Changed Elsewhere"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDraftRequestFrom(t *testing.T) {
	req := draftRequestFrom(url.Values{"name": {"Ada"}, "gender": {""}})
	require.NotNil(t, req.Name)
	require.NotNil(t, req.Gender)
	assert.Nil(t, req.Phone)
	assert.False(t, req.Empty())
	assert.True(t, draftRequestFrom(url.Values{"email": {"x"}}).Empty())

	v := NewValidator()
	assert.NoError(t, v.Validate(req))
	bad := "Robot"
	assert.Error(t, v.Validate(DraftRequest{Gender: &bad}))
}

func TestProfileFlow_PlaceholderValuesSurviveUnrelatedEdit(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.backend.Set("gender", "Not Selected")
	app.backend.Set("dob", "Not Selected")
	app.get(t, "/profile")

	rec := app.htmx(t, "/profile/edit", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	card := rec.Body.String()
	assert.Contains(t, card, `<option value="Not Selected" selected>`)
	assert.Contains(t, card, `type="text" name="dob"`)
	assert.Contains(t, card, `value="Not Selected"`)
	assert.Contains(t, card, `hx-params="name"`)

	// A name change posts only the name.
	rec = app.htmx(t, "/profile/draft", url.Values{"name": {"Ada L."}})
	require.Equal(t, http.StatusNoContent, rec.Code)

	// Saving resubmits the whole form as rendered.
	rec = app.htmx(t, "/profile/save", url.Values{
		"name":     {"Ada L."},
		"phone":    {"555-0100"},
		"line1":    {"1 Main St"},
		"line2":    {"Flat 4"},
		"gender":   {"Not Selected"},
		"dob":      {"Not Selected"},
		"aboutPet": {"Loves naps"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Profile updated")

	updates := app.backend.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, []string{"Ada L."}, updates[0].Fields["name"])
	assert.Equal(t, []string{"Not Selected"}, updates[0].Fields["gender"])
	assert.Equal(t, []string{"Not Selected"}, updates[0].Fields["dob"])
}

func TestProfileFlow_SaveAfterSweepReportsLostEdits(t *testing.T) {
	app := newTestApp(t, Dependencies{IdleTTL: time.Minute})
	app.get(t, "/profile")
	app.htmx(t, "/profile/edit", nil)

	ws := app.module.Workspaces()
	later := time.Now().Add(2 * time.Minute)
	ws.now = func() time.Time { return later }
	require.Equal(t, 1, ws.Sweep())

	rec := app.htmx(t, "/profile/save", url.Values{"name": {"Lost"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `class="toast toast-error"`)
	assert.Contains(t, body, msgEditLost)
	assert.Empty(t, app.backend.Updates())

	// Resubmitting unchanged values is not an edit.
	rec = app.htmx(t, "/profile/save", url.Values{"name": {"Ada"}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), msgEditLost)
}

func TestDraftRequest_Without(t *testing.T) {
	name, gender := "Ada", "Not Selected"
	changed := "Ada L."
	draft := domain.Profile{Name: "Ada", Gender: "Not Selected"}

	assert.True(t, DraftRequest{Name: &name, Gender: &gender}.Without(draft).Empty())

	req := DraftRequest{Name: &changed, Gender: &gender}.Without(draft)
	require.NotNil(t, req.Name)
	assert.Equal(t, "Ada L.", *req.Name)
	assert.Nil(t, req.Gender)
}

func TestProfileFlow_PlainPostConflictRedirectsWithFlash(t *testing.T) {
	app := newTestApp(t, Dependencies{})
	app.get(t, "/profile")

	form := url.Values{"name": {"Not editing"}}
	req := httptest.NewRequest(http.MethodPost, "/profile/draft", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("token", "tok-123")
	rec := app.do(t, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/profile", rec.Header().Get(echo.HeaderLocation))

	body := app.get(t, "/profile").Body.String()
	assert.Contains(t, body, `class="toast toast-error"`)
	assert.Contains(t, body, domain.ErrNotEditing.Error())
	assert.NotContains(t, body, "Not editing")
}
