package server

import (
	"photoshare/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SchemaTest handles GET /test/:p1. "info" (the default) returns the schema
// version marker and "counts" the size of every collection.
func (s *Server) SchemaTest(c *fiber.Ctx) error {
	param := c.Params("p1")
	if param == "" {
		param = "info"
	}

	switch param {
	case "info":
		info, err := s.schemaService.Info(c.UserContext())
		if err != nil {
			return respondServiceError(c, err, "Server error")
		}
		return c.JSON(info)
	case "counts":
		counts, err := s.schemaService.Counts(c.UserContext())
		if err != nil {
			return respondServiceError(c, err, "Server error")
		}
		return c.JSON(counts)
	default:
		return models.RespondWithText(c, fiber.StatusBadRequest, "Invalid parameter: "+param)
	}
}
