package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nexio-app/nexio-api/internal/dto"
	"github.com/nexio-app/nexio-api/internal/models"
	"github.com/nexio-app/nexio-api/internal/store"
	"github.com/nexio-app/nexio-api/internal/utils"
)

// ChatHandler exposes the chat list and the local message actions.
type ChatHandler struct {
	store     *store.Store
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewChatHandler constructs a handler instance.
func NewChatHandler(s *store.Store, validate *validator.Validate, logger zerolog.Logger) *ChatHandler {
	return &ChatHandler{
		store:     s,
		validator: validate,
		logger:    logger.With().Str("component", "chat_handler").Logger(),
	}
}

// Register binds the chat routes.
func (h *ChatHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
	router.Get("/:id/messages", h.messages)
	router.Post("/:id/messages", h.send)
	router.Post("/:id/read", h.markRead)
}

func (h *ChatHandler) list(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "chats", h.store.Chats())
}

func (h *ChatHandler) messages(c *fiber.Ctx) error {
	chatID := c.Params("id")
	if chatID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "chat id required")
	}

	return utils.SendSuccess(c, "messages", h.store.Messages(chatID))
}

func (h *ChatHandler) send(c *fiber.Ctx) error {
	chatID := c.Params("id")
	if chatID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "chat id required")
	}

	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	message := h.store.SendMessage(chatID, req.Content, models.MessageType(req.Type))
	return utils.SendCreated(c, "message sent", message)
}

func (h *ChatHandler) markRead(c *fiber.Ctx) error {
	chatID := c.Params("id")
	if chatID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "chat id required")
	}

	h.store.MarkChatRead(chatID)
	return utils.SendSuccess(c, "chat marked read", nil)
}
