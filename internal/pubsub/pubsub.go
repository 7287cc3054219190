package pubsub

import (
	"context"
)

// TopicProfileUpdated is published whenever a workspace's canonical profile changes,
// either by an optimistic merge or by a completed reload. UserID carries the workspace key.
const TopicProfileUpdated = "profile.canonical.updated"

// ProfileUpdate is the payload of TopicProfileUpdated.
type ProfileUpdate struct {
	// Source is "merge" for an optimistic merge and "reload" for a fetched profile.
	Source string `json:"source"`
}

// ProfileUpdated is the typed event for TopicProfileUpdated.
var ProfileUpdated = NewEvent[ProfileUpdate](TopicProfileUpdated)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to.
	Topic string
	// UserID identifies whose data the message is about.
	UserID string
	// Payload contains the raw message data.
	Payload []byte
	// Metadata can contain arbitrary key-value pairs for context.
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages to the bus.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages from the bus.
type Subscriber interface {
	// Subscribe starts listening to the given topic, processing messages with the handler
	// on a background goroutine until ctx is canceled or the bus is closed.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
