package handler

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nexio-app/nexio-api/internal/dto"
	"github.com/nexio-app/nexio-api/internal/studio"
	"github.com/nexio-app/nexio-api/internal/utils"
	"github.com/nexio-app/nexio-api/pkg/ai"
)

// StudioHandler exposes the creation-flow helpers: caption generation
// and frame uploads.
type StudioHandler struct {
	generator ai.Generator
	uploader  studio.Uploader
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudioHandler constructs a handler instance. Uploader may be nil
// when no media backend is configured.
func NewStudioHandler(generator ai.Generator, uploader studio.Uploader, validate *validator.Validate, logger zerolog.Logger) *StudioHandler {
	return &StudioHandler{
		generator: generator,
		uploader:  uploader,
		validator: validate,
		logger:    logger.With().Str("component", "studio_handler").Logger(),
	}
}

// Register binds the studio routes.
func (h *StudioHandler) Register(router fiber.Router) {
	router.Post("/captions", h.generateCaption)
	router.Post("/uploads", h.uploadFrame)
}

func (h *StudioHandler) generateCaption(c *fiber.Ctx) error {
	var req dto.CaptionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	caption := h.generator.GenerateCaption(requestContext(c), req.Mood, req.Context)
	return utils.SendSuccess(c, "caption generated", fiber.Map{"caption": caption})
}

func (h *StudioHandler) uploadFrame(c *fiber.Ctx) error {
	if h.uploader == nil {
		return utils.SendError(c, fiber.StatusServiceUnavailable, "media uploads are not configured")
	}

	fileHeader, err := c.FormFile("frame")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "frame file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to read frame file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to read frame file")
	}

	url, err := h.uploader.UploadImage(requestContext(c), fileHeader.Filename, data)
	if err != nil {
		h.logger.Error().Err(err).Msg("frame upload failed")
		return utils.SendError(c, fiber.StatusBadGateway, "failed to upload frame")
	}

	return utils.SendCreated(c, "frame uploaded", fiber.Map{"url": url})
}
