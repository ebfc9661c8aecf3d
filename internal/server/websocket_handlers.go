package server

import (
	"log/slog"

	"photoshare/internal/middleware"
	"photoshare/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// LiveCommentsUpgrade validates the photo before the websocket handshake so
// bad requests get ordinary HTTP errors.
func (s *Server) LiveCommentsUpgrade(c *fiber.Ctx) error {
	photoID := c.Params("photoId")
	if !models.IsValidID(photoID) {
		return models.RespondWithText(c, fiber.StatusBadRequest, "Invalid Photo ID")
	}
	if !websocket.IsWebSocketUpgrade(c) {
		return models.RespondWithText(c, fiber.StatusUpgradeRequired, "Upgrade Required")
	}
	if _, err := s.store.Photos.GetByID(c.UserContext(), photoID); err != nil {
		return respondServiceError(c, err, "Failed to open live comments")
	}
	return c.Next()
}

// LiveCommentsHandler streams comments posted on one photo to the connection.
func (s *Server) LiveCommentsHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		photoID := conn.Params("photoId")
		userID, _ := conn.Locals("userID").(string)

		client, err := s.hub.Register(photoID, userID, conn)
		if err != nil {
			middleware.Logger.Warn("live comments: registration refused",
				slog.String("photo_id", photoID),
				slog.String("user_id", userID),
				slog.String("error", err.Error()),
			)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		// Start write pump in a goroutine
		go client.WritePump()

		// Read pump runs in the main handler goroutine (blocking)
		client.ReadPump()
	})
}
