package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apicus/roi-engine/common/logger"
)

func TestMemoryQueuePublishSubscribe(t *testing.T) {
	q := NewMemoryQueue(logger.New("error", "json"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan string, 1)
	err := q.Subscribe(ctx, TopicEnrichmentJobs, func(ctx context.Context, key string, value []byte) error {
		received <- key + ":" + string(value)
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, q.Publish(ctx, TopicEnrichmentJobs, "tpl-1", []byte(`{"template_id":"tpl-1"}`)))

	select {
	case got := <-received:
		assert.Equal(t, `tpl-1:{"template_id":"tpl-1"}`, got)
	case <-time.After(2 * time.Second):
		t.Fatal("message never delivered")
	}
}

func TestMemoryQueuePublishBeforeSubscribe(t *testing.T) {
	q := NewMemoryQueue(logger.New("error", "json"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Messages published before the subscriber attaches are buffered
	require.NoError(t, q.Publish(ctx, "jobs", "k1", []byte("v1")))

	received := make(chan []byte, 1)
	require.NoError(t, q.Subscribe(ctx, "jobs", func(ctx context.Context, key string, value []byte) error {
		received <- value
		return nil
	}))

	select {
	case got := <-received:
		assert.Equal(t, []byte("v1"), got)
	case <-time.After(2 * time.Second):
		t.Fatal("buffered message never delivered")
	}
}

func TestMemoryQueueSubscriptionStopsOnCancel(t *testing.T) {
	q := NewMemoryQueue(logger.New("error", "json"))
	ctx, cancel := context.WithCancel(context.Background())

	received := make(chan struct{}, 4)
	require.NoError(t, q.Subscribe(ctx, "jobs", func(ctx context.Context, key string, value []byte) error {
		received <- struct{}{}
		return nil
	}))

	cancel()
	time.Sleep(50 * time.Millisecond)

	// Publish after cancellation: the consumer goroutine has exited
	require.NoError(t, q.Publish(context.Background(), "jobs", "k", []byte("v")))

	select {
	case <-received:
		t.Fatal("handler ran after subscription was cancelled")
	case <-time.After(200 * time.Millisecond):
	}
}
