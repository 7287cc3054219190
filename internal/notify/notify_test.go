package notify

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInbox(t *testing.T) {
	inbox := NewInbox()
	inbox.Success("Profile updated")
	inbox.Failure("Validation error")

	got := inbox.Drain()
	assert.Equal(t, []Notification{
		{Kind: KindSuccess, Message: "Profile updated"},
		{Kind: KindFailure, Message: "Validation error"},
	}, got)

	assert.Empty(t, inbox.Drain(), "drain empties the inbox")
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.Success("saved")
	w.Failure("nope")
	assert.Equal(t, "✔ saved\n✖ nope\n", buf.String())
}

func TestTee(t *testing.T) {
	inbox := NewInbox()
	var out bytes.Buffer
	var sink Sink = Tee{inbox, NewWriter(&out)}

	sink.Success("Profile updated")
	sink.Failure("Update failed")

	assert.Len(t, inbox.Drain(), 2)
	assert.Equal(t, "✔ Profile updated\n✖ Update failed\n", out.String())
}

func TestLog(t *testing.T) {
	var buf bytes.Buffer
	l := Log{Logger: slog.New(slog.NewTextHandler(&buf, nil))}

	l.Success("Profile updated")
	l.Failure("Validation error")

	assert.Contains(t, buf.String(), `level=INFO msg=notification kind=success message="Profile updated"`)
	assert.Contains(t, buf.String(), `level=WARN msg=notification kind=error message="Validation error"`)
}
