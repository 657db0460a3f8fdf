package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishNeverBlocks(t *testing.T) {
	pub := NewInMemory(1)
	ctx := context.Background()

	pub.PublishSearchCompleted(ctx, SearchCompleted{Total: 1})
	pub.PublishSearchCompleted(ctx, SearchCompleted{Total: 2}) // buffer full, dropped

	select {
	case evt := <-pub.SubscribeSearchCompleted():
		assert.Equal(t, 1, evt.Total)
	default:
		t.Fatal("expected a buffered event")
	}

	select {
	case <-pub.SubscribeSearchCompleted():
		t.Fatal("overflow event should have been dropped")
	default:
	}
}

func TestSubscribeSeesPublished(t *testing.T) {
	pub := NewInMemory(0) // falls back to the default buffer
	pub.PublishSearchCompleted(context.Background(), SearchCompleted{Total: 7})

	evt := <-pub.SubscribeSearchCompleted()
	require.Equal(t, 7, evt.Total)
}
