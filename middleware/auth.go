package middleware

import (
	"errors"
	"fmt"

	"finoffice/constants"
	"finoffice/logger"
	"finoffice/models/user"
	"finoffice/types"
	"finoffice/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Identity key in request locals. Handlers read it via CurrentUser, never
// through any package-level state.
const localsUserKey = "currentUser"

// RequireAuth resolves the bearer token to a live user record and attaches it
// to the request. Missing, malformed or expired tokens and deleted users all
// answer 401; identity is re-resolved on every request.
func RequireAuth(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := utils.ExtractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Authorization token required",
				Status:  fiber.StatusUnauthorized,
			})
		}

		userID, err := utils.ParseToken(tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Invalid or expired token",
				Status:  fiber.StatusUnauthorized,
			})
		}

		var u user.User
		if err := db.First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Token outlived its user.
				return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
					Message: "Invalid or expired token",
					Status:  fiber.StatusUnauthorized,
				})
			}
			logger.Error("Failed to resolve token user", err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ErrorResponse{
				Message: "Failed to resolve identity",
				Status:  fiber.StatusInternalServerError,
			})
		}
		u.Password = ""

		c.Locals(localsUserKey, &u)
		return c.Next()
	}
}

// RequirePermissions accepts the request iff the resolved identity's role
// grants at least one of the listed permission tokens. Compose after
// RequireAuth.
func RequirePermissions(perms ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := CurrentUser(c)
		if u == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: "Authorization token required",
				Status:  fiber.StatusUnauthorized,
			})
		}
		for _, perm := range perms {
			if constants.HasPermission(u.Role, perm) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(types.ErrorResponse{
			Message: fmt.Sprintf("Access denied for role %s", u.Role),
			Status:  fiber.StatusForbidden,
		})
	}
}

// CurrentUser returns the identity attached by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *user.User {
	u, _ := c.Locals(localsUserKey).(*user.User)
	return u
}
