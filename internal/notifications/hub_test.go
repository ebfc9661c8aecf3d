package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"photoshare/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func receive(t *testing.T, c *Client) CommentEvent {
	t.Helper()
	select {
	case msg := <-c.Send:
		var evt CommentEvent
		require.NoError(t, json.Unmarshal(msg, &evt))
		return evt
	case <-time.After(testEventuallyTimeout):
		t.Fatal("no message delivered")
		return CommentEvent{}
	}
}

func TestHub_LocalDelivery(t *testing.T) {
	hub := NewHub(nil)
	photoID := models.NewID()
	other := models.NewID()

	watcher, err := hub.Register(photoID, models.NewID(), nil)
	require.NoError(t, err)
	bystander, err := hub.Register(other, models.NewID(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, hub.Subscribers(photoID))

	comment := models.CommentView{ID: models.NewID(), Comment: "Clever girl."}
	require.NoError(t, hub.PublishComment(context.Background(), photoID, comment))

	evt := receive(t, watcher)
	assert.Equal(t, "comment", evt.Type)
	assert.Equal(t, photoID, evt.PhotoID)
	assert.Equal(t, "Clever girl.", evt.Comment.Comment)
	assert.Empty(t, bystander.Send)

	hub.Unregister(watcher)
	hub.Unregister(watcher)
	assert.Equal(t, 0, hub.Subscribers(photoID))

	_, open := <-watcher.Send
	assert.False(t, open, "unregister closes the send channel")
	require.NoError(t, hub.Shutdown(context.Background()))
}

func TestHub_DropsWhenBufferFull(t *testing.T) {
	hub := NewHub(nil)
	photoID := models.NewID()

	c, err := hub.Register(photoID, models.NewID(), nil)
	require.NoError(t, err)

	for i := 0; i < sendBuffer+5; i++ {
		hub.Broadcast(photoID, []byte(`{}`))
	}
	assert.Len(t, c.Send, sendBuffer)
	require.NoError(t, hub.Shutdown(context.Background()))
}

func TestHub_RedisFanOut(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Two hubs on one Redis stand in for two server instances.
	publisher := NewHub(rdb)
	subscriber := NewHub(rdb)
	require.NoError(t, subscriber.Start(ctx))

	photoID := models.NewID()
	c, err := subscriber.Register(photoID, models.NewID(), nil)
	require.NoError(t, err)

	require.NoError(t, publisher.PublishComment(ctx, photoID, models.CommentView{Comment: "from afar"}))

	evt := receive(t, c)
	assert.Equal(t, "from afar", evt.Comment.Comment)
	require.NoError(t, subscriber.Shutdown(ctx))
}

func TestHub_ShutdownLeavesWritesToPump(t *testing.T) {
	hub := NewHub(nil)
	photoID := models.NewID()

	a, err := hub.Register(photoID, models.NewID(), nil)
	require.NoError(t, err)
	b, err := hub.Register(models.NewID(), models.NewID(), nil)
	require.NoError(t, err)

	require.NoError(t, hub.Shutdown(context.Background()))
	assert.Equal(t, 0, hub.Subscribers(photoID))

	for _, c := range []*Client{a, b} {
		_, open := <-c.Send
		assert.False(t, open, "shutdown closes the send channel for the write pump")
	}

	assert.NotPanics(t, func() { hub.Unregister(a) }, "the read pump unregisters after shutdown")
	_, err = hub.Register(photoID, models.NewID(), nil)
	assert.NoError(t, err, "the connection budget is released")
}
