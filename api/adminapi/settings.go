package adminapi

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// registerSettings wires the scoped key-value settings surface (ingestion
// toggle, reporting defaults).
func registerSettings(r fiber.Router, kv model.KeyValueStore) {
	if kv == nil {
		return
	}
	g := r.Group("/settings")

	g.Get(
		"/:scope/:key", func(c *fiber.Ctx) error {
			value, err := kv.Get(c.Params("scope"), c.Params("key"))
			if err != nil {
				return errorServer(c, err)
			}
			if value == nil {
				return errorNotFound(c, "setting not set")
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Send(value)
		},
	)

	g.Put(
		"/:scope/:key", func(c *fiber.Ctx) error {
			body := c.Body()
			if !json.Valid(body) {
				return errorBadRequest(c, "value must be valid JSON")
			}
			if err := kv.Set(c.Params("scope"), c.Params("key"), body); err != nil {
				return errorServer(c, err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		},
	)

	g.Delete(
		"/:scope/:key", func(c *fiber.Ctx) error {
			if err := kv.Delete(c.Params("scope"), c.Params("key")); err != nil {
				return errorServer(c, err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		},
	)
}
