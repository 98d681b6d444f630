package tracking

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(svc.Status())
	})

	r.Post("/start", func(c *fiber.Ctx) error {
		status, err := svc.Start()
		if errors.Is(err, ErrUnsupported) {
			return fiber.NewError(fiber.StatusNotImplemented, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(status)
	})

	r.Post("/stop", func(c *fiber.Ctx) error {
		return c.JSON(svc.Stop())
	})

	r.Post("/samples", func(c *fiber.Ctx) error {
		var pos Position
		if err := c.BodyParser(&pos); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		result, err := svc.Sample(pos)
		if errors.Is(err, ErrNotTracking) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(result)
	})

	r.Post("/error", func(c *fiber.Ctx) error {
		var req struct {
			Message string `json:"message"`
		}
		if err := c.BodyParser(&req); err != nil || req.Message == "" {
			return fiber.NewError(fiber.StatusBadRequest, "message required")
		}
		return c.JSON(svc.Fail(req.Message))
	})
}
