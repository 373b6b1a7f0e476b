package adminapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/Intechlligent1/AttendanceSystem/internal/cache"
	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// ReportExtractor produces the time-windowed attendance rows for one
// calendar month. It is implemented by the root package's report component.
type ReportExtractor interface {
	Extract(month, year int) ([]model.AttendanceRecord, error)
}

// Options controls optional features of the admin API registration.
type Options struct {
	// UsersEnabled controls whether the user management API is mounted.
	UsersEnabled bool
}

// Register mounts all admin API routes under the provided group. All routes
// sit behind the auth middleware: open while no operator accounts exist,
// Basic auth once at least one does.
func Register(
	r fiber.Router, backs model.Backends, reports ReportExtractor, statsCache cache.Cache, opts *Options,
) error {
	if backs.Users == nil {
		return errors.New("adminapi: users backend is required")
	}
	r.Use(authMiddleware(backs.Users))

	registerRoster(r, backs.Roster)
	registerAttendance(r, backs.Ledger, reports)
	registerDashboard(r, backs, statsCache)
	registerSettings(r, backs.KV)
	if opts == nil || opts.UsersEnabled {
		registerUsers(r, backs.Users)
	}
	return nil
}

// JSON error helpers shared by the handlers.

func errorServer(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(
		fiber.Map{"error": "server_error", "error_description": err.Error()},
	)
}

func errorBadRequest(c *fiber.Ctx, description string) error {
	return c.Status(fiber.StatusBadRequest).JSON(
		fiber.Map{"error": "invalid_request", "error_description": description},
	)
}

func errorNotFound(c *fiber.Ctx, description string) error {
	return c.Status(fiber.StatusNotFound).JSON(
		fiber.Map{"error": "not_found", "error_description": description},
	)
}

func errorConflict(c *fiber.Ctx, description string) error {
	return c.Status(fiber.StatusConflict).JSON(
		fiber.Map{"error": "conflict", "error_description": description},
	)
}
