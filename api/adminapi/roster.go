package adminapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// registerRoster wires the roster CRUD handlers over an IdentityStore.
func registerRoster(r fiber.Router, store model.IdentityStore) {
	g := r.Group("/roster")

	g.Get(
		"/", func(c *fiber.Ctx) error {
			items, err := store.List()
			if err != nil {
				return errorServer(c, err)
			}
			return c.JSON(items)
		},
	)

	g.Post(
		"/", func(c *fiber.Ctx) error {
			var req model.AddIdentity
			if err := c.BodyParser(&req); err != nil {
				return errorBadRequest(c, "invalid body")
			}
			if req.Name == "" || req.BadgeCode == "" {
				return errorBadRequest(c, "name and badge_code are required")
			}
			item, err := store.Create(req)
			if err != nil {
				var alreadyExistsError model.AlreadyExistsError
				if errors.As(err, &alreadyExistsError) {
					return errorConflict(c, "badge code already registered")
				}
				return errorServer(c, err)
			}
			return c.Status(fiber.StatusCreated).JSON(item)
		},
	)

	g.Get(
		"/:identityID", func(c *fiber.Ctx) error {
			id, err := c.ParamsInt("identityID")
			if err != nil || id < 1 {
				return errorBadRequest(c, "invalid identity id")
			}
			item, err := store.Get(uint(id))
			if err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return errorNotFound(c, "roster entry not found")
				}
				return errorServer(c, err)
			}
			return c.JSON(item)
		},
	)

	g.Put(
		"/:identityID", func(c *fiber.Ctx) error {
			id, err := c.ParamsInt("identityID")
			if err != nil || id < 1 {
				return errorBadRequest(c, "invalid identity id")
			}
			var req model.AddIdentity
			if err := c.BodyParser(&req); err != nil {
				return errorBadRequest(c, "invalid body")
			}
			if req.Name == "" || req.BadgeCode == "" {
				return errorBadRequest(c, "name and badge_code are required")
			}
			item, err := store.Update(uint(id), req)
			if err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return errorNotFound(c, "roster entry not found")
				}
				var alreadyExistsError model.AlreadyExistsError
				if errors.As(err, &alreadyExistsError) {
					return errorConflict(c, "badge code already registered")
				}
				return errorServer(c, err)
			}
			return c.JSON(item)
		},
	)

	g.Delete(
		"/:identityID", func(c *fiber.Ctx) error {
			id, err := c.ParamsInt("identityID")
			if err != nil || id < 1 {
				return errorBadRequest(c, "invalid identity id")
			}
			if err := store.Delete(uint(id)); err != nil {
				var notFoundError model.NotFoundError
				if errors.As(err, &notFoundError) {
					return errorNotFound(c, "roster entry not found")
				}
				return errorServer(c, err)
			}
			return c.SendStatus(fiber.StatusNoContent)
		},
	)
}
