package calc

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(r fiber.Router) {
	r.Post("/", func(c *fiber.Ctx) error {
		var req Inputs
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return c.JSON(fiber.Map{
			"inputs":  req,
			"results": Compute(req),
		})
	})
}
