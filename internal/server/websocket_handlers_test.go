package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"photoshare/internal/models"
	"photoshare/internal/notifications"
	"photoshare/internal/repository"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveComments_HTTPErrors(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "malcolm")

	resp := env.get(t, "/ws/photos/bad-id", cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid Photo ID", readBody(t, resp))

	resp = env.get(t, "/ws/photos/"+models.NewID(), cookie)
	assert.Equal(t, http.StatusUpgradeRequired, resp.StatusCode)

	resp = env.get(t, "/ws/photos/"+models.NewID(), nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLiveComments_ReceivesNewComment(t *testing.T) {
	env := newTestEnv(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = env.app.Listener(ln) }()

	tokenResp := env.postJSON(t, "/admin/token", `{"login_name":"kenobi","password":"weak"}`, nil)
	require.Equal(t, http.StatusOK, tokenResp.StatusCode)
	var tok struct {
		Token string `json:"token"`
	}
	decodeJSON(t, tokenResp, &tok)

	photos, err := env.store.Photos.ListByOwner(context.Background(), env.ids["jo"])
	require.NoError(t, err)
	require.NotEmpty(t, photos)
	photoID := photos[0].ID

	header := http.Header{}
	header.Set("Authorization", "Bearer "+tok.Token)
	url := "ws://" + ln.Addr().String() + "/ws/photos/" + photoID
	conn, wsResp, err := gorillaws.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	if wsResp != nil && wsResp.Body != nil {
		_ = wsResp.Body.Close()
	}
	t.Cleanup(func() { _ = conn.Close() })

	require.Eventually(t, func() bool {
		return env.srv.hub.Subscribers(photoID) == 1
	}, 2*time.Second, 10*time.Millisecond)

	req, err := http.NewRequest(http.MethodPost, "http://"+ln.Addr().String()+"/commentsOfPhoto/"+photoID,
		strings.NewReader(`{"comment":"Live from Jakku"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok.Token)
	posted, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = posted.Body.Close()
	require.Equal(t, http.StatusOK, posted.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var event notifications.CommentEvent
	require.NoError(t, conn.ReadJSON(&event))
	assert.Equal(t, "comment", event.Type)
	assert.Equal(t, photoID, event.PhotoID)
	assert.Equal(t, "Live from Jakku", event.Comment.Comment)
	require.NotNil(t, event.Comment.User)
	assert.Equal(t, env.ids["rk"], event.Comment.User.ID)
}

// crowdedPhotos lands another user's comment right after every insert, the
// way a concurrent request on the same photo would.
type crowdedPhotos struct {
	repository.PhotoRepository
	otherUserID string
}

func (p crowdedPhotos) AddComment(ctx context.Context, photoID string, comment *models.Comment) error {
	if err := p.PhotoRepository.AddComment(ctx, photoID, comment); err != nil {
		return err
	}
	return p.PhotoRepository.AddComment(ctx, photoID, &models.Comment{
		Comment:  "Game over, man.",
		DateTime: comment.DateTime.Add(time.Second),
		UserID:   p.otherUserID,
	})
}

func TestAddComment_PublishesOwnComment(t *testing.T) {
	env := newTestEnvWithStore(t, testConfig(t), func(s *repository.Store) {
		ripley, err := s.Users.GetByLoginName(context.Background(), "ripley")
		require.NoError(t, err)
		s.Photos = crowdedPhotos{PhotoRepository: s.Photos, otherUserID: ripley.ID}
	})
	cookie := env.login(t, "kenobi")

	photos, err := env.store.Photos.ListByOwner(context.Background(), env.ids["im"])
	require.NoError(t, err)
	require.NotEmpty(t, photos)
	photoID := photos[0].ID

	watcher, err := env.srv.hub.Register(photoID, env.ids["pt"], nil)
	require.NoError(t, err)

	resp := env.postJSON(t, "/commentsOfPhoto/"+photoID, `{"comment":"Hello there."}`, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view models.PhotoView
	decodeJSON(t, resp, &view)
	last := view.Comments[len(view.Comments)-1]
	require.Equal(t, "Game over, man.", last.Comment)

	select {
	case msg := <-watcher.Send:
		var evt notifications.CommentEvent
		require.NoError(t, json.Unmarshal(msg, &evt))
		assert.Equal(t, "Hello there.", evt.Comment.Comment)
		require.NotNil(t, evt.Comment.User)
		assert.Equal(t, env.ids["rk"], evt.Comment.User.ID)
	case <-time.After(time.Second):
		t.Fatal("no live comment delivered")
	}
	assert.Empty(t, watcher.Send, "only the request's own comment is pushed")
}
