package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nexio-app/nexio-api/internal/store"
	"github.com/nexio-app/nexio-api/internal/utils"
)

// StateHandler exposes the full state surface as one snapshot, the way
// the presentation root consumes it on mount.
type StateHandler struct {
	store  *store.Store
	logger zerolog.Logger
}

// NewStateHandler constructs a handler instance.
func NewStateHandler(s *store.Store, logger zerolog.Logger) *StateHandler {
	return &StateHandler{
		store:  s,
		logger: logger.With().Str("component", "state_handler").Logger(),
	}
}

// Register binds the state route.
func (h *StateHandler) Register(router fiber.Router) {
	router.Get("/", h.snapshot)
}

func (h *StateHandler) snapshot(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "state", h.store.Snapshot())
}
