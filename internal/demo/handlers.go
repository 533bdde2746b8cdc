package demo

import (
	"errors"

	"backend-erickshaw/internal/auth"
	"backend-erickshaw/internal/shared/geo"

	"github.com/gofiber/fiber/v2"
)

type verifyRequest struct {
	Code string `json:"code"`
}

type progressRequest struct {
	Progress *float64 `json:"progress"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
}

func RegisterRoutes(r fiber.Router, store *Store, authMiddleware fiber.Handler) {
	admin := auth.RequireRole(string(RoleAdmin))
	operator := auth.RequireRole(string(RoleDriver), string(RoleAdmin))

	r.Get("/state", func(c *fiber.Ctx) error {
		return c.JSON(store.Snapshot())
	})

	r.Get("/hotspots", func(c *fiber.Ctx) error {
		return c.JSON(Hotspots())
	})

	r.Get("/pools/:id", func(c *fiber.Ctx) error {
		p, ok := store.Pool(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, ErrPoolNotFound.Error())
		}
		return c.JSON(p)
	})

	r.Get("/trips/:id", func(c *fiber.Ctx) error {
		t, ok := store.Trip(c.Params("id"))
		if !ok {
			return fiber.NewError(fiber.StatusNotFound, ErrTripNotFound.Error())
		}
		return c.JSON(t)
	})

	r.Get("/map/hotspots", func(c *fiber.Ctx) error {
		fc, err := HotspotCollection()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fc)
	})

	r.Get("/map/markers", func(c *fiber.Ctx) error {
		fc, err := store.MarkerCollection()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(fc)
	})

	r.Get("/map/trips/:id", func(c *fiber.Ctx) error {
		f, err := store.TripFeature(c.Params("id"))
		if err != nil {
			return storeError(err)
		}
		return c.JSON(f)
	})

	r.Get("/current-user", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"current_user": store.CurrentUser()})
	})

	r.Put("/current-user", authMiddleware, func(c *fiber.Ctx) error {
		id, _ := c.Locals("user_id").(string)
		role, _ := c.Locals("role").(string)
		if !validRole(Role(role)) {
			return fiber.NewError(fiber.StatusBadRequest, "unknown role")
		}
		user := &CurrentUser{Role: Role(role), ID: id}
		store.SetCurrentUser(user)
		return c.JSON(fiber.Map{"current_user": user})
	})

	r.Delete("/current-user", authMiddleware, func(c *fiber.Ctx) error {
		store.SetCurrentUser(nil)
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Post("/seed", authMiddleware, admin, func(c *fiber.Ctx) error {
		store.SeedDemo()
		return c.JSON(fiber.Map{"demo_step": store.Step()})
	})

	r.Post("/pools", authMiddleware, admin, func(c *fiber.Ctx) error {
		if err := store.CreatePools(); err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"demo_step": store.Step()})
	})

	r.Post("/assign", authMiddleware, admin, func(c *fiber.Ctx) error {
		if err := store.AssignDrivers(); err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"demo_step": store.Step()})
	})

	r.Post("/pools/:id/verify", authMiddleware, operator, func(c *fiber.Ctx) error {
		var req verifyRequest
		if err := c.BodyParser(&req); err != nil || req.Code == "" {
			return fiber.NewError(fiber.StatusBadRequest, "code required")
		}
		poolID := c.Params("id")
		if _, ok := store.Pool(poolID); !ok {
			return fiber.NewError(fiber.StatusNotFound, ErrPoolNotFound.Error())
		}
		if !store.VerifyOtp(poolID, req.Code) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "otp rejected")
		}
		return c.JSON(fiber.Map{"verified": true, "demo_step": store.Step()})
	})

	r.Post("/start", authMiddleware, operator, func(c *fiber.Ctx) error {
		if err := store.StartTrips(); err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"demo_step": store.Step()})
	})

	r.Put("/trips/:id/progress", authMiddleware, operator, func(c *fiber.Ctx) error {
		var req progressRequest
		if err := c.BodyParser(&req); err != nil || req.Progress == nil {
			return fiber.NewError(fiber.StatusBadRequest, "progress required")
		}
		id := c.Params("id")
		if err := store.UpdateTripProgress(id, *req.Progress, geo.Point{Lat: req.Lat, Lng: req.Lng}); err != nil {
			return storeError(err)
		}
		t, _ := store.Trip(id)
		return c.JSON(t)
	})

	r.Post("/complete", authMiddleware, admin, func(c *fiber.Ctx) error {
		if err := store.CompleteTrips(); err != nil {
			return storeError(err)
		}
		return c.JSON(fiber.Map{"demo_step": store.Step()})
	})

	r.Post("/reset", authMiddleware, admin, func(c *fiber.Ctx) error {
		store.ResetDemo()
		return c.JSON(fiber.Map{"demo_step": store.Step()})
	})

	r.Post("/student-only", authMiddleware, admin, func(c *fiber.Ctx) error {
		store.InitStudentOnlyDemo()
		return c.JSON(fiber.Map{"demo_step": store.Step()})
	})
}

func storeError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrTripNotFound), errors.Is(err, ErrPoolNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidProgress), errors.Is(err, ErrInvalidPosition):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

func validRole(r Role) bool {
	return r == RoleStudent || r == RoleDriver || r == RoleAdmin
}
