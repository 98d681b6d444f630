package prefs

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(svc.Get(c.Context()))
	})

	r.Put("/", func(c *fiber.Ctx) error {
		var req map[string]string
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		for key, value := range req {
			var err error
			switch key {
			case "gasPrice":
				err = svc.SetGasPrice(c.Context(), value)
			case "mpg":
				err = svc.SetMpg(c.Context(), value)
			case "theme":
				err = svc.SetTheme(c.Context(), value)
			case "primaryColor":
				err = svc.SetPrimaryColor(c.Context(), value)
			default:
				return fiber.NewError(fiber.StatusBadRequest, "unknown preference: "+key)
			}
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, err.Error())
			}
		}
		return c.JSON(svc.Get(c.Context()))
	})

	r.Get("/locations", func(c *fiber.Ctx) error {
		locations := svc.RecentLocations(c.Context())
		if locations == nil {
			locations = []string{}
		}
		return c.JSON(locations)
	})

	r.Post("/locations", func(c *fiber.Ctx) error {
		var req struct {
			Location string `json:"location"`
		}
		if err := c.BodyParser(&req); err != nil || req.Location == "" {
			return fiber.NewError(fiber.StatusBadRequest, "location required")
		}
		if err := svc.AddRecentLocation(c.Context(), req.Location); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
