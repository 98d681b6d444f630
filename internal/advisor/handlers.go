package advisor

import (
	"errors"

	"github.com/Helmera83/gig-calc/internal/trip"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Post("/distance", func(c *fiber.Ctx) error {
		var req DistanceRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		state, links, err := svc.EstimateDistance(c.Context(), req)
		if errors.Is(err, ErrMissingLocations) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, trip.ErrStale) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, err.Error())
		}
		if links == nil {
			links = []GroundingLink{}
		}
		return c.JSON(fiber.Map{"state": state, "groundingLinks": links})
	})

	r.Post("/verdict", func(c *fiber.Ctx) error {
		state, err := svc.Verdict(c.Context())
		if errors.Is(err, trip.ErrStale) {
			return fiber.NewError(fiber.StatusConflict, err.Error())
		}
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(state)
	})
}
