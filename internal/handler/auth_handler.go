package handler

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/nexio-app/nexio-api/internal/dto"
	"github.com/nexio-app/nexio-api/internal/store"
	"github.com/nexio-app/nexio-api/internal/utils"
)

// AuthHandler exposes the store's login and logout actions.
type AuthHandler struct {
	store     *store.Store
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAuthHandler constructs a handler instance.
func NewAuthHandler(s *store.Store, validate *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		store:     s,
		validator: validate,
		logger:    logger.With().Str("component", "auth_handler").Logger(),
	}
}

// Register binds the auth routes.
func (h *AuthHandler) Register(router fiber.Router) {
	router.Post("/login", h.login)
	router.Post("/logout", h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if ok := h.store.Login(requestContext(c), req.Email, req.Password, req.SignUp); !ok {
		message := h.store.Err()
		if message == "" {
			message = "authentication failed"
		}
		return utils.SendError(c, fiber.StatusUnauthorized, message)
	}

	return utils.SendSuccess(c, "logged in", h.store.CurrentUser())
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	h.store.Logout(requestContext(c))
	return utils.SendSuccess(c, "logged out", nil)
}

func requestContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
