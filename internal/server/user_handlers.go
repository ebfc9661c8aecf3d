package server

import (
	"github.com/gofiber/fiber/v2"
)

// ListUsers handles GET /user/list
// @Summary List users
// @Description Every user with the number of photos they own and comments on those photos
// @Tags users
// @Produce json
// @Success 200 {array} models.UserListItem
// @Failure 401 {string} string "Unauthorized"
// @Failure 500 {object} models.ErrorResponse
// @Router /user/list [get]
func (s *Server) ListUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch user list")
	}
	return c.JSON(users)
}

// GetUser handles GET /user/:id
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {string} string "Invalid User ID"
// @Failure 404 {string} string "User not found"
// @Router /user/{id} [get]
func (s *Server) GetUser(c *fiber.Ctx) error {
	user, err := s.userService.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch user")
	}
	return c.JSON(user)
}
