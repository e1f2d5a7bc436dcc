package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type trackedEvent struct {
	name string
	data map[string]any
}

type mockTracker struct {
	m      sync.RWMutex
	events []trackedEvent
	err    error
	block  chan struct{}
}

func (m *mockTracker) Track(ctx context.Context, name string, data map[string]any) error {
	if m.block != nil {
		select {
		case <-m.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.m.Lock()
	defer m.m.Unlock()
	m.events = append(m.events, trackedEvent{name: name, data: data})
	return m.err
}

func (m *mockTracker) TrackEvent(ctx context.Context, name string, data map[string]any) error {
	return m.Track(ctx, name, data)
}

func (m *mockTracker) tracked() []trackedEvent {
	m.m.RLock()
	defer m.m.RUnlock()
	out := make([]trackedEvent, len(m.events))
	copy(out, m.events)
	return out
}

type mockWriter struct {
	m        sync.RWMutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.m.Lock()
	defer w.m.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *mockWriter) Close() error {
	w.m.Lock()
	defer w.m.Unlock()
	w.closed = true
	return nil
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Track(context.Background(), EventPageView, nil))
}

func TestGatewayTracker_Forwards(t *testing.T) {
	sender := &mockTracker{}
	tr := NewGatewayTracker(sender)

	require.NoError(t, tr.Track(context.Background(), EventLogin, map[string]any{"userId": "u1"}))

	events := sender.tracked()
	require.Len(t, events, 1)
	assert.Equal(t, EventLogin, events[0].name)
	assert.Equal(t, "u1", events[0].data["userId"])
}

func TestKafkaTracker_Message(t *testing.T) {
	w := &mockWriter{}
	tr := NewKafkaTrackerWithWriter(w)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return fixed }

	require.NoError(t, tr.Track(context.Background(), EventAddToCart, map[string]any{"productId": 4, "quantity": 2}))

	require.Len(t, w.messages, 1)
	msg := w.messages[0]
	assert.Equal(t, []byte(EventAddToCart), msg.Key)

	var event Event
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, EventAddToCart, event.EventName)
	assert.Equal(t, float64(4), event.EventData["productId"])
	assert.Equal(t, fixed, event.OccurredAt)
	assert.NotEmpty(t, event.EventID)

	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event_id", msg.Headers[0].Key)
	assert.Equal(t, event.EventID, string(msg.Headers[0].Value))
}

func TestKafkaTracker_NilDataIsEmptyObject(t *testing.T) {
	w := &mockWriter{}
	tr := NewKafkaTrackerWithWriter(w)

	require.NoError(t, tr.Track(context.Background(), EventPageView, nil))
	require.Len(t, w.messages, 1)
	assert.Contains(t, string(w.messages[0].Value), `"eventData":{}`)
}

func TestKafkaTracker_WriteError(t *testing.T) {
	w := &mockWriter{err: errors.New("broker down")}
	tr := NewKafkaTrackerWithWriter(w)

	err := tr.Track(context.Background(), EventOrderPlaced, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	require.NoError(t, tr.Close())
	assert.True(t, w.closed)
}

func TestBestEffort_SwallowsFailures(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	next := &mockTracker{err: errors.New("gateway unavailable")}

	tr := BestEffort(next, logger)
	assert.NoError(t, tr.Track(context.Background(), EventRemoveFromCart, map[string]any{"productId": 1}))
	tr.Wait()

	assert.Len(t, next.tracked(), 1)
	assert.Contains(t, buf.String(), "analytics event dropped")
	assert.Contains(t, buf.String(), "gateway unavailable")
}

func TestBestEffort_DoesNotBlockCaller(t *testing.T) {
	next := &mockTracker{block: make(chan struct{})}
	tr := BestEffort(next, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		_ = tr.Track(context.Background(), EventPageView, nil)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Track blocked on the underlying tracker")
	}

	close(next.block)
	tr.Wait()
	assert.Len(t, next.tracked(), 1)
}

func TestBestEffort_OutlivesCallerContext(t *testing.T) {
	next := &mockTracker{block: make(chan struct{})}
	tr := BestEffort(next, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	_ = tr.Track(ctx, EventOrderPlaced, nil)
	cancel()
	close(next.block)
	tr.Wait()

	assert.Len(t, next.tracked(), 1)
}

func TestBestEffort_TimesOut(t *testing.T) {
	var buf bytes.Buffer
	next := &mockTracker{block: make(chan struct{})}
	tr := BestEffort(next, zerolog.New(&buf).Level(zerolog.DebugLevel)).WithTimeout(20 * time.Millisecond)

	_ = tr.Track(context.Background(), EventLogin, nil)
	tr.Wait()

	assert.Empty(t, next.tracked())
	assert.Contains(t, buf.String(), "deadline exceeded")
}
