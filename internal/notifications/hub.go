package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"photoshare/internal/middleware"
	"photoshare/internal/models"
	"photoshare/internal/observability"

	"github.com/gofiber/websocket/v2"
	"github.com/redis/go-redis/v9"
)

const (
	maxConnsPerPhoto = 256
	maxTotalConns    = 10000

	channelPrefix  = "photos:"
	channelSuffix  = ":comments"
	channelPattern = channelPrefix + "*" + channelSuffix
)

// CommentEvent is the payload pushed to subscribers.
type CommentEvent struct {
	Type    string             `json:"type"`
	PhotoID string             `json:"photo_id"`
	Comment models.CommentView `json:"comment"`
}

// Hub maps photo ids to their subscribed clients. With a Redis client,
// Publish goes through pub/sub so subscribers on every instance hear it.
type Hub struct {
	mu         sync.RWMutex
	conns      map[string]map[*Client]struct{}
	totalConns int
	rdb        *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		conns: make(map[string]map[*Client]struct{}),
		rdb:   rdb,
	}
}

func channelFor(photoID string) string {
	return channelPrefix + photoID + channelSuffix
}

// Register subscribes conn to photoID.
func (h *Hub) Register(photoID, userID string, conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConns >= maxTotalConns {
		return nil, errors.New("server connection limit reached")
	}
	m, ok := h.conns[photoID]
	if !ok {
		m = make(map[*Client]struct{})
		h.conns[photoID] = m
	}
	if len(m) >= maxConnsPerPhoto {
		return nil, errors.New("photo connection limit reached")
	}

	client := &Client{
		hub:     h,
		Conn:    conn,
		Send:    make(chan []byte, sendBuffer),
		PhotoID: photoID,
		UserID:  userID,
	}
	m[client] = struct{}{}
	h.totalConns++
	observability.ActiveWebSockets.Inc()
	return client, nil
}

// Unregister removes client and closes its send channel. Safe to call twice.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	m, ok := h.conns[client.PhotoID]
	if !ok {
		return
	}
	if _, exists := m[client]; !exists {
		return
	}
	delete(m, client)
	close(client.Send)
	h.totalConns--
	observability.ActiveWebSockets.Dec()
	if len(m) == 0 {
		delete(h.conns, client.PhotoID)
	}
}

// Subscribers returns the number of clients watching photoID.
func (h *Hub) Subscribers(photoID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[photoID])
}

// Broadcast delivers payload to the local subscribers of photoID.
func (h *Hub) Broadcast(photoID string, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.conns[photoID] {
		c.TrySend(payload)
	}
}

// PublishComment announces a new comment on photoID.
func (h *Hub) PublishComment(ctx context.Context, photoID string, comment models.CommentView) error {
	payload, err := json.Marshal(CommentEvent{Type: "comment", PhotoID: photoID, Comment: comment})
	if err != nil {
		return err
	}
	if h.rdb == nil {
		h.Broadcast(photoID, payload)
		return nil
	}
	return h.rdb.Publish(ctx, channelFor(photoID), payload).Err()
}

// Start subscribes to the comment channels and forwards messages to local
// subscribers until ctx ends. Without Redis it returns immediately.
func (h *Hub) Start(ctx context.Context) error {
	if h.rdb == nil {
		return nil
	}
	sub := h.rdb.PSubscribe(ctx, channelPattern)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return err
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				photoID := strings.TrimSuffix(strings.TrimPrefix(msg.Channel, channelPrefix), channelSuffix)
				if !models.IsValidID(photoID) {
					middleware.Logger.Warn("invalid live comment channel", slog.String("channel", msg.Channel))
					continue
				}
				h.Broadcast(photoID, []byte(msg.Payload))
			}
		}
	}()
	return nil
}

// Shutdown drops every subscriber. Closing a client's send channel makes its
// write pump send the close frame, so the connection keeps a single writer.
func (h *Hub) Shutdown(_ context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for photoID, clients := range h.conns {
		for client := range clients {
			close(client.Send)
			observability.ActiveWebSockets.Dec()
		}
		delete(h.conns, photoID)
	}
	h.totalConns = 0
	return nil
}
