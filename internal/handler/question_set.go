package handler

import (
	"strings"

	"quizset/internal/domain"
	"quizset/internal/dto"
	"quizset/internal/loader"
	"quizset/internal/service"

	"github.com/gofiber/fiber/v2"
)

// QuestionSetHandler handles question set HTTP requests
type QuestionSetHandler struct {
	service service.QuestionSetService
}

// NewQuestionSetHandler creates a new QuestionSetHandler instance
func NewQuestionSetHandler(service service.QuestionSetService) *QuestionSetHandler {
	return &QuestionSetHandler{service: service}
}

// Register mounts the question set routes on router.
func (h *QuestionSetHandler) Register(router fiber.Router) {
	sets := router.Group("/question-sets")
	sets.Post("/validate", h.Validate)
	sets.Put("/", h.Put)
	sets.Get("/", h.List)
	sets.Get("/:id", h.Get)
	sets.Delete("/:id", h.Delete)
	sets.Post("/:id/check", h.CheckAnswer)
}

// Validate godoc
// @Summary Validate a question set
// @Description Checks the structure and the invariants of a question set without storing it
// @Tags question-sets
// @Accept json,yaml
// @Produce json
// @Success 200 {object} dto.ValidateResponse
// @Failure 400 {object} middleware.ShapeErrorResponse
// @Failure 422 {object} middleware.ValidationErrorResponse
// @Router /question-sets/validate [post]
func (h *QuestionSetHandler) Validate(c *fiber.Ctx) error {
	set, err := decodeBody(c)
	if err != nil {
		return err
	}
	if err := h.service.Validate(set); err != nil {
		return err
	}
	return c.JSON(dto.ValidateResponse{Valid: true, ID: set.ID, QuestionCount: len(set.Questions)})
}

// Put godoc
// @Summary Store a question set
// @Description Validates and stores a question set, replacing any set with the same id
// @Tags question-sets
// @Accept json,yaml
// @Produce json
// @Success 200 {object} dto.QuestionSetResponse
// @Failure 400 {object} middleware.ShapeErrorResponse
// @Failure 422 {object} middleware.ValidationErrorResponse
// @Router /question-sets [put]
func (h *QuestionSetHandler) Put(c *fiber.Ctx) error {
	set, err := decodeBody(c)
	if err != nil {
		return err
	}
	if err := h.service.Register(c.UserContext(), set); err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionSetResponse(set, true))
}

// List godoc
// @Summary List question sets
// @Tags question-sets
// @Produce json
// @Success 200 {object} dto.QuestionSetListResponse
// @Router /question-sets [get]
func (h *QuestionSetHandler) List(c *fiber.Ctx) error {
	ids, err := h.service.ListIDs(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.QuestionSetListResponse{IDs: ids})
}

// Get godoc
// @Summary Get a question set
// @Description Answers and explanations are only included with reveal=true
// @Tags question-sets
// @Produce json
// @Param id path string true "Question set ID"
// @Param reveal query bool false "Include answers"
// @Success 200 {object} dto.QuestionSetResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /question-sets/{id} [get]
func (h *QuestionSetHandler) Get(c *fiber.Ctx) error {
	set, err := h.service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionSetResponse(*set, c.QueryBool("reveal", false)))
}

// Delete godoc
// @Summary Delete a question set
// @Tags question-sets
// @Param id path string true "Question set ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /question-sets/{id} [delete]
func (h *QuestionSetHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CheckAnswer godoc
// @Summary Check an answer
// @Description Grades a submitted option value against the example or a graded question
// @Tags question-sets
// @Accept json
// @Produce json
// @Param id path string true "Question set ID"
// @Param request body dto.CheckAnswerRequest true "Answer details"
// @Success 200 {object} dto.CheckAnswerResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /question-sets/{id}/check [post]
func (h *QuestionSetHandler) CheckAnswer(c *fiber.Ctx) error {
	var req dto.CheckAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be a JSON answer")
	}
	if req.Question == "" {
		return domain.NewInvalidInputError("question is required")
	}

	result, err := h.service.CheckAnswer(c.UserContext(), c.Params("id"), req.Question, req.Value)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// decodeBody accepts JSON by default and YAML when the content type says so.
func decodeBody(c *fiber.Ctx) (domain.QuestionSet, error) {
	format := loader.FormatJSON
	if ct := strings.ToLower(string(c.Request().Header.ContentType())); strings.Contains(ct, "yaml") {
		format = loader.FormatYAML
	}
	return loader.Decode(c.Body(), format)
}
