package view

import (
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/nfrund/myprofile/internal/notify"
)

const (
	flashSessionName = "flash-session"
	flashKeySuccess  = "success"
	flashKeyError    = "error"
)

// FlashData holds the messages to show on the next rendered page.
type FlashData struct {
	Success []string
	Error   []string
}

// Empty reports whether there is nothing to show.
func (f FlashData) Empty() bool {
	return len(f.Success) == 0 && len(f.Error) == 0
}

func addFlash(c echo.Context, key, message string) {
	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(message, key)
}

func saveFlashes(c echo.Context) {
	if sess, err := session.Get(flashSessionName, c); err == nil {
		_ = sess.Save(c.Request(), c.Response())
	}
}

// SetFlashError sets an error flash message.
func SetFlashError(c echo.Context, message string) {
	addFlash(c, flashKeyError, message)
	saveFlashes(c)
}

// SetFlashNotifications carries a batch of notifications across a redirect.
func SetFlashNotifications(c echo.Context, ns []notify.Notification) {
	if len(ns) == 0 {
		return
	}
	for _, n := range ns {
		if n.Kind == notify.KindSuccess {
			addFlash(c, flashKeySuccess, n.Message)
		} else {
			addFlash(c, flashKeyError, n.Message)
		}
	}
	saveFlashes(c)
}

// GetFlashData retrieves and clears flash messages from the session.
func GetFlashData(c echo.Context) FlashData {
	var data FlashData

	sess, err := session.Get(flashSessionName, c)
	if err != nil {
		return data
	}

	// The Flashes() method retrieves and then clears the flashes from the session.
	data.Success = toStrings(sess.Flashes(flashKeySuccess))
	data.Error = toStrings(sess.Flashes(flashKeyError))

	// If we had flashes, save the session to persist the clearing of flashes.
	if !data.Empty() {
		_ = sess.Save(c.Request(), c.Response())
	}
	return data
}

// Notifications returns the flash messages as notifications, successes first.
func (f FlashData) Notifications() []notify.Notification {
	var out []notify.Notification
	for _, m := range f.Success {
		out = append(out, notify.Notification{Kind: notify.KindSuccess, Message: m})
	}
	for _, m := range f.Error {
		out = append(out, notify.Notification{Kind: notify.KindFailure, Message: m})
	}
	return out
}

func toStrings(values []interface{}) []string {
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
