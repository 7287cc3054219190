package pubsub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestWatermillBridge_RoundTrip(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bridge := NewWatermillBridge()
	defer bridge.Close()

	received := make(chan Message, 1)
	err := bridge.Subscribe(ctx, TopicProfileUpdated, func(ctx context.Context, msg Message) error {
		received <- msg
		return nil
	})
	require.NoError(t, err)

	err = bridge.Publish(ctx, Message{
		Topic:    TopicProfileUpdated,
		UserID:   "ws-1",
		Payload:  []byte(`{"source":"reload"}`),
		Metadata: map[string]string{"source": "reload"},
	})
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.Equal(t, TopicProfileUpdated, msg.Topic)
		assert.Equal(t, "ws-1", msg.UserID)
		assert.JSONEq(t, `{"source":"reload"}`, string(msg.Payload))
		assert.Equal(t, "reload", msg.Metadata["source"])
		assert.NotContains(t, msg.Metadata, "user_id")
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered")
	}
}

func TestWatermillBridge_Tracing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	bridge := NewWatermillBridge(WithTracer(tp.Tracer("test")))
	defer bridge.Close()

	// The first delivery fails and is nacked, so the bus redelivers it.
	handled := make(chan struct{})
	var calls int
	require.NoError(t, bridge.Subscribe(ctx, TopicProfileUpdated, func(ctx context.Context, msg Message) error {
		calls++
		if calls == 1 {
			return errors.New("handler failed")
		}
		close(handled)
		return nil
	}))
	require.NoError(t, Publish(ctx, bridge, ProfileUpdated, "ws-1", ProfileUpdate{Source: "merge"}))

	select {
	case <-handled:
	case <-time.After(2 * time.Second):
		t.Fatal("message was not delivered")
	}

	require.Eventually(t, func() bool { return len(recorder.Ended()) == 3 }, 2*time.Second, 10*time.Millisecond)
	statuses := map[string][]codes.Code{}
	for _, span := range recorder.Ended() {
		statuses[span.Name()] = append(statuses[span.Name()], span.Status().Code)
	}
	assert.Equal(t, []codes.Code{codes.Unset}, statuses["pubsub.publish."+TopicProfileUpdated])
	assert.Equal(t, []codes.Code{codes.Error, codes.Unset}, statuses["pubsub.process."+TopicProfileUpdated])
}

func TestSetupTracing_Disabled(t *testing.T) {
	tracer, shutdown, err := SetupTracing(context.Background(), TracingConfig{})
	require.NoError(t, err)

	_, span := tracer.Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoError(t, shutdown(context.Background()))
}

func TestProfileUpdated_Decode(t *testing.T) {
	update, err := ProfileUpdated.Decode(Message{Topic: TopicProfileUpdated, Payload: []byte(`{"source":"reload"}`)})
	require.NoError(t, err)
	assert.Equal(t, "reload", update.Source)

	_, err = ProfileUpdated.Decode(Message{Topic: "other", Payload: []byte(`{}`)})
	assert.Error(t, err)

	_, err = ProfileUpdated.Decode(Message{Topic: TopicProfileUpdated, Payload: []byte(`nope`)})
	assert.Error(t, err)
}
