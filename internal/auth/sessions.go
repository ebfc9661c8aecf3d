package auth

import (
	"context"
	"strings"
	"time"

	"photoshare/internal/middleware"
	"photoshare/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
)

const (
	// CookieName is the session cookie carried by browser clients.
	CookieName = "photoshare.sid"

	keyUserID    = "user_id"
	keyFirstName = "first_name"
	keyLastName  = "last_name"
)

// Sessions wraps a fiber session store with the login state the API keeps
// per client: the user's id and display name.
type Sessions struct {
	store  *session.Store
	tokens *Tokens
}

// NewSessions builds the session store. A nil storage keeps sessions in memory.
func NewSessions(storage fiber.Storage, ttl time.Duration, secure bool, tokens *Tokens) *Sessions {
	cfg := session.Config{
		Expiration:     ttl,
		KeyLookup:      "cookie:" + CookieName,
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: "Lax",
		KeyGenerator:   uuid.NewString,
	}
	if storage != nil {
		cfg.Storage = storage
	}
	return &Sessions{store: session.New(cfg), tokens: tokens}
}

// Login starts a fresh session for user, discarding any previous session id.
func (s *Sessions) Login(c *fiber.Ctx, user *models.User) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Set(keyUserID, user.ID)
	sess.Set(keyFirstName, user.FirstName)
	sess.Set(keyLastName, user.LastName)
	return sess.Save()
}

// Logout destroys the session. It reports false when no user was logged in.
func (s *Sessions) Logout(c *fiber.Ctx) (bool, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return false, err
	}
	if uid, _ := sess.Get(keyUserID).(string); uid == "" {
		return false, nil
	}
	if err := sess.Destroy(); err != nil {
		return false, err
	}
	return true, nil
}

// Current returns the logged-in user, or nil when the session is anonymous.
func (s *Sessions) Current(c *fiber.Ctx) (*models.UserSummary, error) {
	sess, err := s.store.Get(c)
	if err != nil {
		return nil, err
	}
	uid, _ := sess.Get(keyUserID).(string)
	if uid == "" {
		return nil, nil
	}
	first, _ := sess.Get(keyFirstName).(string)
	last, _ := sess.Get(keyLastName).(string)
	return &models.UserSummary{ID: uid, FirstName: first, LastName: last}, nil
}

// IssueToken signs a bearer token for user.
func (s *Sessions) IssueToken(user *models.User) (string, error) {
	return s.tokens.Issue(user)
}

// authenticatedUserID resolves the caller from the session cookie first and
// then from an Authorization bearer token.
func (s *Sessions) authenticatedUserID(c *fiber.Ctx) string {
	if cur, err := s.Current(c); err == nil && cur != nil {
		return cur.ID
	}
	if s.tokens == nil {
		return ""
	}
	header := c.Get(fiber.HeaderAuthorization)
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	uid, err := s.tokens.Verify(parts[1])
	if err != nil {
		return ""
	}
	return uid
}

// SessionRequired rejects anonymous requests with 401 "Unauthorized".
func (s *Sessions) SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := s.authenticatedUserID(c)
		if uid == "" {
			return models.RespondWithText(c, fiber.StatusUnauthorized, "Unauthorized")
		}

		c.Locals("userID", uid)
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, uid)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// ViewGuard redirects anonymous browsers to loginPath instead of failing.
func (s *Sessions) ViewGuard(loginPath string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s.authenticatedUserID(c) == "" {
			return c.Redirect(loginPath, fiber.StatusFound)
		}
		return c.Next()
	}
}
