package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nexio-app/nexio-api/internal/store"
	"github.com/nexio-app/nexio-api/internal/utils"
)

// NotificationHandler exposes the notification filter query.
type NotificationHandler struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewNotificationHandler constructs a handler instance.
func NewNotificationHandler(s *store.Store, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{
		store:  s,
		logger: logger.With().Str("component", "notification_handler").Logger(),
	}
}

// Register binds the notification routes.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("/", h.list)
}

func (h *NotificationHandler) list(c *fiber.Ctx) error {
	kind := c.Query("filter", store.FilterAll)
	switch kind {
	case store.FilterAll, store.FilterMentions, store.FilterFollows, store.FilterSystem:
	default:
		return utils.SendError(c, fiber.StatusBadRequest, "unknown notification filter")
	}

	return utils.SendSuccess(c, "notifications", h.store.FilterNotifications(kind))
}
