package upload

import (
	"io"
	"mime/multipart"

	"github.com/amirasaad/subtracker/pkg/middleware"
	uploadsvc "github.com/amirasaad/subtracker/pkg/service/upload"
	"github.com/amirasaad/subtracker/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// FilesField is the multipart field carrying the statement files.
const FilesField = "files"

// Routes registers the upload endpoints on an authenticated router.
func Routes(r fiber.Router, uploadSvc *uploadsvc.Service) {
	r.Post("/uploads", CreateUploads(uploadSvc))
	r.Get("/uploads", ListUploads(uploadSvc))
}

// CreateUploads accepts a batch of statement files and queues them for analysis.
// @Summary Upload statements
// @Description Accepts up to 10 PDF or image files; analysis runs in the background
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Statement files"
// @Success 201 {object} BatchResponse
// @Failure 400 {object} common.ProblemDetails
// @Failure 413 {object} common.ProblemDetails
// @Router /uploads [post]
// @Security Bearer
func CreateUploads(uploadSvc *uploadsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		var headers []*multipart.FileHeader
		if form, err := c.MultipartForm(); err == nil {
			headers = form.File[FilesField]
		}
		files := make([]uploadsvc.File, 0, len(headers))
		for _, fh := range headers {
			files = append(files, uploadsvc.File{
				Name: fh.Filename,
				Size: fh.Size,
				Open: func() (io.ReadCloser, error) { return fh.Open() },
			})
		}
		uploads, err := uploadSvc.Upload(c.UserContext(), userID, files)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Upload failed", err)
		}
		return c.Status(fiber.StatusCreated).JSON(BatchResponse{
			Uploads: ToUploadResponses(uploads),
			Message: uploadsvc.SuccessMessage(len(uploads)),
		})
	}
}

// ListUploads returns the caller's uploads, newest first.
// @Summary List uploads
// @Tags uploads
// @Produce json
// @Success 200 {array} UploadResponse
// @Failure 401 {object} common.ProblemDetails
// @Router /uploads [get]
// @Security Bearer
func ListUploads(uploadSvc *uploadsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := middleware.CurrentUserID(c)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Unauthorized", err)
		}
		uploads, err := uploadSvc.List(c.UserContext(), userID)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to list uploads", err)
		}
		return c.JSON(ToUploadResponses(uploads))
	}
}
