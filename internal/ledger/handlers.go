package ledger

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/", func(c *fiber.Ctx) error {
		field := SortField(c.Query("sort", string(SortByDate)))
		order := SortOrder(c.Query("order", string(OrderDesc)))
		switch field {
		case SortByDate, SortByEarnings, SortByDistance:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unknown sort field")
		}
		switch order {
		case OrderAsc, OrderDesc:
		default:
			return fiber.NewError(fiber.StatusBadRequest, "unknown sort order")
		}

		view := svc.SortedView(field, order)
		if view == nil {
			view = []TripRecord{}
		}
		return c.JSON(view)
	})

	r.Get("/summary", func(c *fiber.Ctx) error {
		return c.JSON(svc.Aggregate())
	})

	r.Delete("/", func(c *fiber.Ctx) error {
		if err := svc.Clear(c.Context()); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/export", func(c *fiber.Ctx) error {
		csv := svc.ToCSV()
		if csv == "" {
			return c.SendStatus(fiber.StatusNoContent)
		}
		c.Set(fiber.HeaderContentType, "text/csv;charset=utf-8")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename=`+ExportFilename(time.Now()))
		return c.SendString(csv)
	})
}
