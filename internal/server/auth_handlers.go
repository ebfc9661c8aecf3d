package server

import (
	"strings"

	"photoshare/internal/featureflags"
	"photoshare/internal/middleware"
	"photoshare/internal/models"
	"photoshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

type loginRequest struct {
	LoginName string `json:"login_name" form:"login_name"`
	Password  string `json:"password" form:"password"`
}

// authenticate runs the shared part of Login and IssueToken. It writes the
// failure response itself and returns nil user in that case.
func (s *Server) authenticate(c *fiber.Ctx) (*models.User, error) {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		middleware.LoginAttempts.WithLabelValues("rejected").Inc()
		return nil, models.RespondWithText(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := s.userService.Authenticate(c.UserContext(), strings.TrimSpace(req.LoginName), req.Password)
	if err != nil {
		switch models.ErrorCode(err) {
		case models.CodeUnauthorized:
			middleware.LoginAttempts.WithLabelValues("rejected").Inc()
			return nil, models.RespondWithText(c, fiber.StatusBadRequest, "Not found")
		case models.CodeValidation:
			middleware.LoginAttempts.WithLabelValues("rejected").Inc()
			return nil, respondServiceError(c, err, "Failed to log in")
		default:
			middleware.LoginAttempts.WithLabelValues("error").Inc()
			return nil, respondServiceError(c, err, "Failed to log in")
		}
	}
	middleware.LoginAttempts.WithLabelValues("success").Inc()
	return user, nil
}

// Login handles POST /admin/login
// @Summary Log in
// @Description Starts a session for the user whose login name and password match
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{login_name=string,password=string} true "Credentials"
// @Success 200 {object} object{_id=string,first_name=string,last_name=string,login_name=string}
// @Failure 400 {string} string "Not found"
// @Router /admin/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	user, err := s.authenticate(c)
	if user == nil {
		return err
	}

	if err := s.sessions.Login(c, user); err != nil {
		return respondServiceError(c, models.NewInternalError(err), "Failed to log in")
	}

	return c.JSON(fiber.Map{
		"_id":        user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"login_name": user.LoginName,
	})
}

// IssueToken handles POST /admin/token
// @Summary Issue bearer token
// @Description Same credentials as login; returns a signed token instead of a session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{login_name=string,password=string} true "Credentials"
// @Success 200 {object} object{token=string,user=models.UserSummary}
// @Failure 400 {string} string "Not found"
// @Router /admin/token [post]
func (s *Server) IssueToken(c *fiber.Ctx) error {
	user, err := s.authenticate(c)
	if user == nil {
		return err
	}

	token, err := s.sessions.IssueToken(user)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err), "Failed to issue token")
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user.Summary(),
	})
}

// Logout handles POST /admin/logout
// @Summary Log out
// @Tags auth
// @Produce plain
// @Success 200 {string} string "Logout success."
// @Failure 400 {string} string "User is not logged in."
// @Router /admin/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	ok, err := s.sessions.Logout(c)
	if err != nil {
		return respondServiceError(c, models.NewInternalError(err), "Failed to log out")
	}
	if !ok {
		return models.RespondWithText(c, fiber.StatusBadRequest, "User is not logged in.")
	}
	return c.SendString("Logout success.")
}

// Status handles GET /admin/status. Logged-in callers also get their identity.
func (s *Server) Status(c *fiber.Ctx) error {
	resp := fiber.Map{"message": "Server is running"}
	if cur, err := s.sessions.Current(c); err == nil && cur != nil {
		resp["_id"] = cur.ID
		resp["first_name"] = cur.FirstName
		resp["last_name"] = cur.LastName
	}
	return c.JSON(resp)
}

type registerRequest struct {
	LoginName   string `json:"login_name" form:"login_name"`
	Password    string `json:"password" form:"password"`
	FirstName   string `json:"first_name" form:"first_name"`
	LastName    string `json:"last_name" form:"last_name"`
	Location    string `json:"location" form:"location"`
	Description string `json:"description" form:"description"`
	Occupation  string `json:"occupation" form:"occupation"`
}

// Register handles POST /user
// @Summary Register
// @Description Creates an account; the caller still has to log in
// @Tags users
// @Accept json
// @Produce json
// @Param request body registerRequest true "New account"
// @Success 200 {object} object{_id=string,login_name=string}
// @Failure 400 {string} string "login_name already exists"
// @Router /user [post]
func (s *Server) Register(c *fiber.Ctx) error {
	if !s.featureFlags.Enabled(featureflags.Registration, "") {
		return models.RespondWithText(c, fiber.StatusForbidden, "Registration is disabled")
	}

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithText(c, fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		LoginName:   req.LoginName,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Location:    req.Location,
		Description: req.Description,
		Occupation:  req.Occupation,
	})
	if err != nil {
		return respondServiceError(c, err, "Failed to register user")
	}

	return c.JSON(fiber.Map{
		"login_name": user.LoginName,
		"_id":        user.ID,
	})
}

// GetFeatureFlags handles GET /admin/feature-flags
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"flags":      s.featureFlags.Snapshot(currentUserID(c)),
		"configured": s.featureFlags.Raw(),
	})
}
