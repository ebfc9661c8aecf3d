package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"photoshare/internal/auth"
	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/repository"
	"photoshare/internal/seed"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-session-secret-0123456789"

type testEnv struct {
	srv   *Server
	app   *fiber.App
	store *repository.Store
	ids   map[string]string
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Port:              "0",
		Env:               "test",
		StoreDriver:       config.StoreSQLite,
		SQLitePath:        "file::memory:",
		SessionSecret:     testSecret,
		SessionTTLMinutes: 60,
		PasswordHashing:   config.PasswordPlain,
		UploadDir:         t.TempDir(),
		UploadMaxMB:       5,
	}
}

// newTestEnv builds a server over an in-memory sqlite store holding the
// fixture dataset. mutate adjusts the config before the server is built.
func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig(t)
	for _, m := range mutate {
		m(cfg)
	}
	return newTestEnvWithStore(t, cfg, nil)
}

// newTestEnvWithStore is newTestEnv with a hook that may swap repositories
// after the fixtures are loaded.
func newTestEnvWithStore(t *testing.T, cfg *config.Config, wrap func(*repository.Store)) *testEnv {
	t.Helper()
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	store := repository.NewGormStore(db)

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHashing)
	require.NoError(t, err)
	res, err := seed.LoadFixtures(context.Background(), store, hasher)
	require.NoError(t, err)
	if wrap != nil {
		wrap(store)
	}

	srv, err := NewServerWithDeps(cfg, store, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	return &testEnv{srv: srv, app: srv.App(), store: store, ids: res.UserIDs}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (e *testEnv) get(t *testing.T, path string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return e.do(t, req)
}

func (e *testEnv) postJSON(t *testing.T, path, body string, cookie *http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	return e.do(t, req)
}

// login signs in and returns the session cookie.
func (e *testEnv) login(t *testing.T, loginName string) *http.Cookie {
	t.Helper()
	resp := e.postJSON(t, "/admin/login", `{"login_name":"`+loginName+`","password":"weak"}`, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatalf("login returned no %s cookie", auth.CookieName)
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}
