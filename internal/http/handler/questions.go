package handler

import (
	"bytes"
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"questionnaire/internal/model"
	"questionnaire/internal/service"
)

// saveQuestionsRequest keeps fields raw so a missing field can be told apart from a wrongly typed one.
type saveQuestionsRequest struct {
	Questions json.RawMessage `json:"questions"`
	AudioURLs json.RawMessage `json:"audioUrls"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// GetQuestions godoc
// @Summary      Get the current question set
// @Tags         questions
// @Produce      json
// @Success      200  {object}  model.Document
// @Failure      500  {object}  errorPayload
// @Router       /questions [get]
func GetQuestions(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := svc.Get(c.UserContext())
		if err != nil {
			logFailure(c, "questions_read_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to read questions")
		}
		return c.JSON(doc)
	}
}

// SaveQuestions godoc
// @Summary      Replace the question set
// @Description  The whole document is replaced; questions[i] pairs with audioUrls[i].
// @Tags         questions
// @Accept       json
// @Produce      json
// @Param        document  body      model.Document  true  "Question set"
// @Success      200       {object}  successResponse
// @Failure      400       {object}  errorPayload
// @Failure      500       {object}  errorPayload
// @Router       /questions [post]
func SaveQuestions(svc service.QuestionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req saveQuestionsRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON object")
		}

		questions, err := decodeStrings(req.Questions)
		if err != nil {
			return writeValidationError(c, service.ErrQuestionsRequired)
		}
		audioURLs, err := decodeStrings(req.AudioURLs)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_AUDIO_URLS", "audioUrls must be an array of strings")
		}

		doc := &model.Document{Questions: questions, AudioURLs: audioURLs}
		if err := svc.Replace(c.UserContext(), doc); err != nil {
			if service.IsValidation(err) {
				return writeValidationError(c, err)
			}
			logFailure(c, "questions_write_failed", err)
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to save questions")
		}
		return c.JSON(successResponse{Success: true})
	}
}

// decodeStrings returns nil for an absent or null field and an error for anything but an array of strings.
func decodeStrings(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
