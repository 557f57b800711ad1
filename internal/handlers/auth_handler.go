package handlers

import (
	"github.com/clouddrop/server/internal/apperr"
	"github.com/clouddrop/server/internal/models"
	"github.com/clouddrop/server/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth     *services.AuthService
	validate *validator.Validate
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validator.New()}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func userResponse(user models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID.Hex(),
		"email": user.Email,
		"name":  user.Name,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.New(apperr.BadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperr.New(apperr.BadRequest, "Please provide email, password, and name")
	}

	user, token, err := h.auth.Register(c.UserContext(), req.Email, req.Password, req.Name)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    userResponse(user),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.New(apperr.BadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return apperr.New(apperr.BadRequest, "Please provide email and password")
	}

	user, token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    userResponse(user),
	})
}

// Me returns the authenticated user's profile. The lookup can still
// 404 when the account vanished between token checks.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	user, err := h.auth.GetUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(userResponse(user))
}
