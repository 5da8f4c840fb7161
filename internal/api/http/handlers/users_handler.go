package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/service"
	"github.com/spec-kit/user-service/internal/validation"
	apperrors "github.com/spec-kit/user-service/pkg/util"
)

const msgUserDeleted = "User successfully deleted"

// UsersHandler exposes CRUD endpoints for users.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserListResponse(users))
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return err
	}

	user, err := h.users.CreateUser(c.UserContext(), payload)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Update handles PUT /users/:id. The id is checked before the body is read.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	if !validation.ValidateObjectID(c.Params("id")) {
		return apperrors.NewInvalidID(service.MsgInvalidUserID)
	}

	payload, err := parsePayload(c)
	if err != nil {
		return err
	}

	user, err := h.users.UpdateUser(c.UserContext(), c.Params("id"), payload)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: msgUserDeleted})
}

// DeleteByEmail handles DELETE /users/email/:email.
func (h *UsersHandler) DeleteByEmail(c *fiber.Ctx) error {
	if err := h.users.DeleteUserByEmail(c.UserContext(), c.Params("email")); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: msgUserDeleted})
}

// parsePayload decodes a JSON object body. An empty body yields a nil map so
// validation can report it as missing data.
func parsePayload(c *fiber.Ctx) (map[string]any, error) {
	if len(c.Body()) == 0 {
		return nil, nil
	}
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return nil, fiber.NewError(http.StatusBadRequest, "Invalid JSON payload")
	}
	return payload, nil
}
