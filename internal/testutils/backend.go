// Package testutils holds helpers shared by tests across packages.
package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
)

// Update is one update-profile request as the fake backend received it.
type Update struct {
	Token     string
	Fields    map[string][]string
	ImageName string
	ImageBody string
}

// FakeBackend is an in-memory user API speaking the real wire format.
type FakeBackend struct {
	URL string

	mu      sync.Mutex
	profile map[string]any
	updates []Update
	reply   map[string]any
	fetches int
}

// NewFakeBackend starts a fake user API holding profile. It is stopped when the test ends.
func NewFakeBackend(t *testing.T, profile map[string]any) *FakeBackend {
	t.Helper()
	b := &FakeBackend{profile: profile}

	e := echo.New()
	e.GET("/api/user/get-profile", b.getProfile)
	e.POST("/api/user/update-profile", b.updateProfile)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	b.URL = srv.URL
	return b
}

// SampleProfile returns a fully populated profile in wire form.
func SampleProfile() map[string]any {
	return map[string]any{
		"name":     "Ada",
		"email":    "ada@example.com",
		"phone":    "555-0100",
		"address":  map[string]any{"line1": "1 Main St", "line2": "Flat 4"},
		"gender":   "Female",
		"dob":      "1990-12-10",
		"pet":      "Biscuit",
		"aboutPet": "Loves naps",
	}
}

// Set changes a field of the stored profile, as if edited elsewhere.
func (b *FakeBackend) Set(key string, value any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profile[key] = value
}

// Get reads a field of the stored profile.
func (b *FakeBackend) Get(key string) any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile[key]
}

// ReplyWith makes every later update answer with reply instead of applying it.
func (b *FakeBackend) ReplyWith(reply map[string]any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.reply = reply
}

// Updates returns the update requests received so far.
func (b *FakeBackend) Updates() []Update {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Update(nil), b.updates...)
}

// Fetches returns how many get-profile requests were served.
func (b *FakeBackend) Fetches() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.fetches
}

func (b *FakeBackend) getProfile(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fetches++
	return c.JSON(http.StatusOK, map[string]any{"success": true, "userData": b.profile})
}

func (b *FakeBackend) updateProfile(c echo.Context) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}
	u := Update{Token: c.Request().Header.Get("token"), Fields: form.Value}
	if files := form.File["image"]; len(files) == 1 {
		f, err := files[0].Open()
		if err != nil {
			return err
		}
		body, _ := io.ReadAll(f)
		f.Close()
		u.ImageName, u.ImageBody = files[0].Filename, string(body)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.updates = append(b.updates, u)
	if b.reply != nil {
		return c.JSON(http.StatusOK, b.reply)
	}

	for _, key := range []string{"name", "phone", "gender", "dob", "aboutPet"} {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			b.profile[key] = v[0]
		}
	}
	if v := form.Value["address"]; len(v) > 0 {
		var address map[string]any
		if err := json.Unmarshal([]byte(v[0]), &address); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "bad address"})
		}
		b.profile["address"] = address
	}
	if u.ImageName != "" {
		b.profile["image"] = "https://cdn.example.com/" + u.ImageName
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Profile updated"})
}
