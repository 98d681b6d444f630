package trip

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(svc.Snapshot())
	})

	r.Put("/inputs", func(c *fiber.Ctx) error {
		var fields map[string]string
		if err := c.BodyParser(&fields); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		state, err := svc.SetInputs(c.Context(), fields)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(state)
	})

	r.Post("/save", func(c *fiber.Ctx) error {
		record, err := svc.Save(c.Context())
		if errors.Is(err, ErrNothingToSave) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(record)
	})
}
