package handler

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/nexio-app/nexio-api/internal/dto"
	"github.com/nexio-app/nexio-api/internal/models"
	"github.com/nexio-app/nexio-api/internal/store"
	"github.com/nexio-app/nexio-api/internal/utils"
)

// FeedHandler exposes the post collection and its mutation actions.
type FeedHandler struct {
	store     *store.Store
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewFeedHandler constructs a handler instance.
func NewFeedHandler(s *store.Store, validate *validator.Validate, logger zerolog.Logger) *FeedHandler {
	return &FeedHandler{
		store:     s,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "feed_handler").Logger(),
	}
}

// Register binds the feed routes.
func (h *FeedHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Post("/", h.create)
	router.Post("/:id/like", h.toggleLike)
	router.Post("/:id/save", h.toggleSave)
}

func (h *FeedHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "posts", h.store.Posts())
}

func (h *FeedHandler) create(c *fiber.Ctx) error {
	var req dto.PostCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	draft := models.PostDraft{
		Type:    models.PostType(req.Type),
		Content: req.Content,
		Caption: strings.TrimSpace(h.sanitizer.Sanitize(req.Caption)),
		Tags:    req.Tags,
	}

	post := h.store.AddPost(requestContext(c), draft)
	return utils.SendCreated(c, "post created", post)
}

func (h *FeedHandler) toggleLike(c *fiber.Ctx) error {
	postID := c.Params("id")
	if postID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "post id required")
	}

	h.store.ToggleLike(requestContext(c), postID)
	return utils.SendSuccess(c, "like toggled", nil)
}

func (h *FeedHandler) toggleSave(c *fiber.Ctx) error {
	postID := c.Params("id")
	if postID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "post id required")
	}

	h.store.ToggleSave(postID)
	return utils.SendSuccess(c, "save toggled", nil)
}
