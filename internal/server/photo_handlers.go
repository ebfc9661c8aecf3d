package server

import (
	"log/slog"

	"photoshare/internal/featureflags"
	"photoshare/internal/middleware"
	"photoshare/internal/models"
	"photoshare/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PhotosOfUser handles GET /photosOfUser/:id
// @Summary Photos of a user
// @Description The user's photos; each comment carries its author's name
// @Tags photos
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.PhotoView
// @Failure 400 {string} string "Invalid User ID"
// @Failure 404 {string} string "No photos found for this user"
// @Router /photosOfUser/{id} [get]
func (s *Server) PhotosOfUser(c *fiber.Ctx) error {
	photos, err := s.photoService.PhotosOfUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch photos")
	}
	return c.JSON(photos)
}

// PhotoDetail handles GET /photoDetail/:photoId
// @Summary Photo detail
// @Tags photos
// @Produce json
// @Param photoId path string true "Photo ID"
// @Success 200 {object} models.PhotoView
// @Failure 400 {string} string "Invalid Photo ID"
// @Failure 404 {string} string "Photo not found"
// @Router /photoDetail/{photoId} [get]
func (s *Server) PhotoDetail(c *fiber.Ctx) error {
	photo, err := s.photoService.PhotoDetail(c.UserContext(), c.Params("photoId"))
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch photo details")
	}
	return c.JSON(photo)
}

// CommentsOfUser handles GET /commentsOfUser/:id
// @Summary Comments on a user's photos
// @Tags photos
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} models.UserComment
// @Failure 400 {string} string "Invalid User ID"
// @Failure 404 {string} string "No comments found for this user"
// @Router /commentsOfUser/{id} [get]
func (s *Server) CommentsOfUser(c *fiber.Ctx) error {
	comments, err := s.photoService.CommentsOfUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondServiceError(c, err, "Failed to fetch comments")
	}
	return c.JSON(comments)
}

// AddComment handles POST /commentsOfPhoto/:photoId
// @Summary Comment on a photo
// @Tags photos
// @Accept json
// @Produce json
// @Param photoId path string true "Photo ID"
// @Param request body object{comment=string} true "Comment"
// @Success 200 {object} models.PhotoView
// @Failure 400 {string} string "Invalid Photo ID"
// @Failure 404 {string} string "Photo not found"
// @Router /commentsOfPhoto/{photoId} [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if !s.featureFlags.Enabled(featureflags.CommentPosting, userID) {
		return models.RespondWithText(c, fiber.StatusForbidden, "Commenting is disabled")
	}

	var req struct {
		Comment string `json:"comment" form:"comment"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithText(c, fiber.StatusBadRequest, "Invalid request body")
	}

	photoID := c.Params("photoId")
	photo, comment, err := s.photoService.AddComment(c.UserContext(), service.AddCommentInput{
		PhotoID: photoID,
		UserID:  userID,
		Text:    req.Comment,
	})
	if err != nil {
		return respondServiceError(c, err, "Failed to add comment")
	}

	if err := s.hub.PublishComment(c.UserContext(), photoID, *comment); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "failed to publish live comment",
			slog.String("photo_id", photoID),
			slog.String("error", err.Error()),
		)
	}

	return c.JSON(photo)
}
