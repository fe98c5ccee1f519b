package middleware

import (
	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/labstack/echo/v4"
)

// RoleMiddleware restricts a route to callers whose authenticated role
// matches requiredRole. It must be registered after JWTMiddleware and runs
// before the handler, so an unauthorized caller never reaches the handler's
// own validation or triggers side effects.
func RoleMiddleware(requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || role != requiredRole {
				return apperrors.RespondWithError(c, apperrors.NewForbidden(
					apperrors.ErrCodeForbidden,
					"Not authorized to perform this action.",
				))
			}

			return next(c)
		}
	}
}
