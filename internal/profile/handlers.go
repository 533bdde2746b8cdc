package profile

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req Profile
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.UID == "" {
			req.UID, _ = c.Locals("user_id").(string)
		}
		if req.UID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "uid required")
		}
		if !canEdit(c, req.UID) {
			return fiber.NewError(fiber.StatusForbidden, "cannot create another user's profile")
		}
		// The profile role mirrors the account; only admins may set another.
		if caller, _ := c.Locals("user_id").(string); caller != "" {
			if role, _ := c.Locals("role").(string); role != RoleAdmin {
				req.Role = role
			}
		}
		p, err := svc.CreateProfile(c.Context(), req)
		if errors.Is(err, ErrInvalidRole) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	})

	r.Get("/:uid", func(c *fiber.Ctx) error {
		p, err := svc.GetProfile(c.Context(), c.Params("uid"))
		if errors.Is(err, ErrProfileNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})

	r.Put("/:uid", authMiddleware, func(c *fiber.Ctx) error {
		uid := c.Params("uid")
		if !canEdit(c, uid) {
			return fiber.NewError(fiber.StatusForbidden, "cannot edit another user's profile")
		}
		var req Profile
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if role, _ := c.Locals("role").(string); role != RoleAdmin {
			req.Role = ""
		}
		p, err := svc.UpdateProfile(c.Context(), uid, req)
		switch {
		case errors.Is(err, ErrProfileNotFound):
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case errors.Is(err, ErrInvalidRole):
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case err != nil:
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(p)
	})
}

// canEdit allows the owner and admins. Without an authenticated caller in
// locals the check is left to the middleware.
func canEdit(c *fiber.Ctx, uid string) bool {
	caller, _ := c.Locals("user_id").(string)
	if caller == "" {
		return true
	}
	role, _ := c.Locals("role").(string)
	return caller == uid || role == RoleAdmin
}
