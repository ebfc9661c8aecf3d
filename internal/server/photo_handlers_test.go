package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"photoshare/internal/config"
	"photoshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsers(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "ripley")

	resp := env.get(t, "/user/list", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.UserListItem
	decodeJSON(t, resp, &users)
	require.Len(t, users, 6)

	expected := map[string][2]int64{
		"im": {2, 3},
		"er": {2, 1},
		"pt": {1, 2},
		"rk": {2, 1},
		"al": {1, 1},
		"jo": {1, 1},
	}
	byID := make(map[string]models.UserListItem, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	for key, counts := range expected {
		u, ok := byID[env.ids[key]]
		require.True(t, ok, key)
		assert.Equal(t, counts[0], u.PhotoCount, "%s photoCount", key)
		assert.Equal(t, counts[1], u.CommentCount, "%s commentCount", key)
	}
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "malcolm")

	tests := []struct {
		name           string
		id             string
		expectedStatus int
		expectedBody   string
	}{
		{"Malformed id", "not-an-id", http.StatusBadRequest, "Invalid User ID"},
		{"Unknown id", models.NewID(), http.StatusNotFound, "User not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.get(t, "/user/"+tt.id, cookie)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
			assert.Equal(t, tt.expectedBody, readBody(t, resp))
		})
	}

	t.Run("Existing user", func(t *testing.T) {
		resp := env.get(t, "/user/"+env.ids["jo"], cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeJSON(t, resp, &body)
		assert.Equal(t, env.ids["jo"], body["_id"])
		assert.Equal(t, "Ousterhout", body["last_name"])
		assert.Equal(t, "Professor", body["occupation"])
		assert.NotContains(t, body, "password")
	})
}

func TestPhotosOfUser(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "malcolm")

	t.Run("Malformed id", func(t *testing.T) {
		resp := env.get(t, "/photosOfUser/123", cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid User ID", readBody(t, resp))
	})

	t.Run("User without photos", func(t *testing.T) {
		resp := env.get(t, "/photosOfUser/"+models.NewID(), cookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "No photos found for this user", readBody(t, resp))
	})

	t.Run("Comment authors are resolved", func(t *testing.T) {
		resp := env.get(t, "/photosOfUser/"+env.ids["im"], cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var photos []models.PhotoView
		decodeJSON(t, resp, &photos)
		require.Len(t, photos, 2)

		total := 0
		for _, p := range photos {
			assert.Equal(t, env.ids["im"], p.UserID)
			for _, c := range p.Comments {
				total++
				require.NotNil(t, c.User)
				assert.Empty(t, c.UserID)
				assert.NotEmpty(t, c.User.FirstName)
			}
		}
		assert.Equal(t, 3, total)
	})
}

func TestPhotoDetail_UnresolvedAuthor(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "ripley")
	ghost := models.NewID()

	photo := &models.Photo{
		FileName: "ghost.jpg",
		DateTime: time.Now().UTC(),
		UserID:   env.ids["er"],
		Comments: []models.Comment{
			{Comment: "from nobody", DateTime: time.Now().UTC(), UserID: ghost},
			{Comment: "from ripley", DateTime: time.Now().UTC().Add(time.Second), UserID: env.ids["er"]},
		},
	}
	require.NoError(t, env.store.Photos.Create(context.Background(), photo))

	resp := env.get(t, "/photoDetail/"+photo.ID, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view models.PhotoView
	decodeJSON(t, resp, &view)
	require.Len(t, view.Comments, 2)
	assert.Equal(t, ghost, view.Comments[0].UserID)
	assert.Nil(t, view.Comments[0].User)
	require.NotNil(t, view.Comments[1].User)
	assert.Equal(t, "Ellen", view.Comments[1].User.FirstName)
	assert.Empty(t, view.Comments[1].UserID)
}

func TestPhotoDetail_Errors(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "ripley")

	resp := env.get(t, "/photoDetail/xyz", cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid Photo ID", readBody(t, resp))

	resp = env.get(t, "/photoDetail/"+models.NewID(), cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Photo not found", readBody(t, resp))
}

func TestCommentsOfUser(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "took")

	resp := env.get(t, "/commentsOfUser/"+env.ids["pt"], cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.UserComment
	decodeJSON(t, resp, &comments)
	require.Len(t, comments, 2)
	for _, c := range comments {
		assert.NotEmpty(t, c.PhotoID)
		assert.NotEmpty(t, c.Text)
		require.NotNil(t, c.User)
	}

	resp = env.get(t, "/commentsOfUser/bogus", cookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// A freshly registered user has written nothing.
	reg := env.postJSON(t, "/user", `{"login_name":"ash","password":"pw","first_name":"Ash","last_name":"Android"}`, nil)
	require.Equal(t, http.StatusOK, reg.StatusCode)
	var created map[string]string
	decodeJSON(t, reg, &created)

	resp = env.get(t, "/commentsOfUser/"+created["_id"], cookie)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "No comments found for this user", readBody(t, resp))
}

func TestAddComment(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "kenobi")

	photos, err := env.store.Photos.ListByOwner(context.Background(), env.ids["er"])
	require.NoError(t, err)
	require.NotEmpty(t, photos)
	photoID := photos[0].ID
	before := len(photos[0].Comments)

	tests := []struct {
		name           string
		photoID        string
		body           string
		expectedStatus int
	}{
		{"Malformed photo id", "nope", `{"comment":"hi"}`, http.StatusBadRequest},
		{"Blank comment", photoID, `{"comment":"   "}`, http.StatusBadRequest},
		{"Missing photo", models.NewID(), `{"comment":"hi"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := env.postJSON(t, "/commentsOfPhoto/"+tt.photoID, tt.body, cookie)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}

	t.Run("Appends with the session user as author", func(t *testing.T) {
		resp := env.postJSON(t, "/commentsOfPhoto/"+photoID, `{"comment":"  May the Force be with you.  "}`, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var view models.PhotoView
		decodeJSON(t, resp, &view)
		require.Len(t, view.Comments, before+1)
		last := view.Comments[len(view.Comments)-1]
		assert.Equal(t, "May the Force be with you.", last.Comment)
		require.NotNil(t, last.User)
		assert.Equal(t, env.ids["rk"], last.User.ID)
	})
}

func TestAddComment_Disabled(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) { c.FeatureFlags = "comment_posting=off" })
	cookie := env.login(t, "kenobi")

	resp := env.postJSON(t, "/commentsOfPhoto/"+models.NewID(), `{"comment":"hi"}`, cookie)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
