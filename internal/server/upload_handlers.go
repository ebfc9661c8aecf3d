package server

import (
	"photoshare/internal/featureflags"
	"photoshare/internal/middleware"
	"photoshare/internal/models"
	"photoshare/internal/upload"

	"github.com/gofiber/fiber/v2"
)

const uploadField = "image"

// Upload handles POST /upload
// @Summary Upload a file
// @Description Stores the multipart "image" field in the upload directory
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "File"
// @Success 200 {object} object{message=string,file=upload.SavedFile}
// @Failure 400 {string} string "No file uploaded"
// @Router /upload [post]
func (s *Server) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return respondServiceError(c, upload.ErrNoFile, "Failed to upload file")
	}

	saved, err := s.uploads.Save(uploadField, fh)
	if err != nil {
		return respondServiceError(c, err, "Failed to upload file")
	}
	middleware.Uploads.WithLabelValues("file").Inc()

	return c.JSON(fiber.Map{
		"message": "File uploaded successfully!",
		"file":    saved,
	})
}

// NewPhoto handles POST /photos/new
// @Summary Post a photo
// @Description Stores an image with a WebP thumbnail and records it as a photo of the caller
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image"
// @Success 200 {object} models.PhotoView
// @Failure 400 {string} string "Invalid image file"
// @Router /photos/new [post]
func (s *Server) NewPhoto(c *fiber.Ctx) error {
	userID := currentUserID(c)
	if !s.featureFlags.Enabled(featureflags.PhotoUpload, userID) {
		return models.RespondWithText(c, fiber.StatusForbidden, "Photo upload is disabled")
	}

	fh, err := c.FormFile(uploadField)
	if err != nil {
		return respondServiceError(c, upload.ErrNoFile, "Failed to upload photo")
	}

	saved, err := s.uploads.SaveImage(uploadField, fh)
	if err != nil {
		return respondServiceError(c, err, "Failed to upload photo")
	}

	photo, err := s.photoService.CreatePhoto(c.UserContext(), userID, saved.FileName)
	if err != nil {
		return respondServiceError(c, err, "Failed to upload photo")
	}
	middleware.Uploads.WithLabelValues("photo").Inc()

	return c.JSON(photo)
}
