package adminapi

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Intechlligent1/AttendanceSystem/storage/model"
)

// authMiddleware guards the admin API. While no operator accounts exist all
// requests pass; once at least one exists, requests must carry valid HTTP
// Basic credentials. The verdict is made once here, handlers below never
// consult any ambient auth state.
func authMiddleware(users model.UsersStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := users.Count()
		if err != nil {
			return errorServer(c, err)
		}
		if count == 0 {
			return c.Next()
		}
		username, password, ok := basicCredentials(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return errorUnauthorized(c, "missing credentials")
		}
		if _, err = users.Authenticate(username, password); err != nil {
			return errorUnauthorized(c, "invalid credentials")
		}
		return c.Next()
	}
}

func errorUnauthorized(c *fiber.Ctx, description string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Basic realm=attendance-admin")
	return c.Status(fiber.StatusUnauthorized).JSON(
		fiber.Map{"error": "invalid_client", "error_description": description},
	)
}

// basicCredentials decodes an HTTP Basic Authorization header value.
func basicCredentials(header string) (username, password string, ok bool) {
	encoded, found := strings.CutPrefix(header, "Basic ")
	if !found {
		return "", "", false
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", false
	}
	username, password, ok = strings.Cut(string(raw), ":")
	return
}
