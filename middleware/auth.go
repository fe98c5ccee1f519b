package middleware

import (
	"github.com/VisaPro-Team/be-visa-platform/pkg/apperrors"
	"github.com/VisaPro-Team/be-visa-platform/utils"
	"github.com/labstack/echo/v4"
)

// TokenHeader is the request field carrying the session token. The admin
// panel sends it on every authenticated call; it is not a bearer-scheme
// Authorization header.
const TokenHeader = "X-Auth-Token"

// JWTMiddleware verifies the session token and attaches the administrator's
// identity and role to the request context. Any failure (missing, malformed,
// tampered or expired token) short-circuits with 401 before the handler runs.
func JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tokenString := c.Request().Header.Get(TokenHeader)
		if tokenString == "" {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenMissing,
				"No token, authorization denied.",
			))
		}

		claims, err := utils.ParseToken(tokenString)
		if err != nil {
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeTokenInvalid,
				"Token is not valid.",
			))
		}

		c.Set("admin_id", claims.AdminID)
		c.Set("role", claims.Role)

		return next(c)
	}
}

// HasToken reports whether the request carries a valid session token without
// enforcing it. Public blog reads use it to decide draft visibility.
func HasToken(c echo.Context) bool {
	tokenString := c.Request().Header.Get(TokenHeader)
	if tokenString == "" {
		return false
	}
	_, err := utils.ParseToken(tokenString)
	return err == nil
}
