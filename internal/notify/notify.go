// Package notify holds the sinks that profile notifications are delivered to.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Kind distinguishes success notifications from failures.
type Kind string

const (
	KindSuccess Kind = "success"
	KindFailure Kind = "error"
)

// Notification is one user-visible message.
type Notification struct {
	Kind    Kind
	Message string
}

// Inbox queues notifications until the page that will show them is rendered.
type Inbox struct {
	mu    sync.Mutex
	queue []Notification
}

// NewInbox creates an empty inbox.
func NewInbox() *Inbox {
	return &Inbox{}
}

func (i *Inbox) Success(message string) { i.push(KindSuccess, message) }
func (i *Inbox) Failure(message string) { i.push(KindFailure, message) }

func (i *Inbox) push(kind Kind, message string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.queue = append(i.queue, Notification{Kind: kind, Message: message})
}

// Drain returns the queued notifications in arrival order and empties the inbox.
func (i *Inbox) Drain() []Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.queue
	i.queue = nil
	return out
}

// Writer prints notifications as lines, for terminals.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter creates a Writer printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (n *Writer) Success(message string) { n.printf("✔ %s\n", message) }
func (n *Writer) Failure(message string) { n.printf("✖ %s\n", message) }

func (n *Writer) printf(format, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, format, message)
}

// Log records notifications on a structured logger. Useful as a fallback sink.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Success(message string) {
	l.logger().Info("notification", "kind", KindSuccess, "message", message)
}
func (l Log) Failure(message string) {
	l.logger().Warn("notification", "kind", KindFailure, "message", message)
}

func (l Log) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// Sink receives user-visible messages.
type Sink interface {
	Success(message string)
	Failure(message string)
}

// Tee forwards every notification to each sink in order.
type Tee []Sink

func (t Tee) Success(message string) {
	for _, s := range t {
		s.Success(message)
	}
}

func (t Tee) Failure(message string) {
	for _, s := range t {
		s.Failure(message)
	}
}
