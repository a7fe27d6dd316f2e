package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"questionnaire/internal/service"
)

// Multipart field names. questionId is what the questionnaire admin page sends;
// slotId is accepted as a neutral alias.
const (
	formFieldFile       = "file"
	formFieldQuestionID = "questionId"
	formFieldSlotID     = "slotId"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	FilePath string `json:"filePath"`
}

// UploadAudio godoc
// @Summary      Upload the audio clip of a question
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Param        file        formData  file    true   "MP3 audio"
// @Param        questionId  formData  string  false  "Slot identifier (question index)"
// @Param        slotId      formData  string  false  "Alias of questionId"
// @Success      200         {object}  uploadResponse
// @Failure      400         {object}  errorPayload
// @Failure      500         {object}  errorPayload
// @Router       /upload [post]
func UploadAudio(svc service.MediaService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile(formFieldFile)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		slotID := strings.TrimSpace(c.FormValue(formFieldQuestionID))
		if slotID == "" {
			slotID = strings.TrimSpace(c.FormValue(formFieldSlotID))
		}
		if slotID == "" {
			return writeValidationError(c, service.ErrSlotIDRequired)
		}

		f, err := fh.Open()
		if err != nil {
			logFailure(c, "upload_open_failed", err)
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		asset, err := svc.Ingest(c.UserContext(), f, fh.Size, slotID)
		if err != nil {
			if service.IsValidation(err) {
				return writeValidationError(c, err)
			}
			logFailure(c, "upload_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to upload file")
		}
		return c.JSON(uploadResponse{Success: true, FilePath: asset.PublicPath})
	}
}
