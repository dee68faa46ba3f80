package middleware

import (
	"net/http"

	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type UserRepository interface {
	FindActiveByID(id int64) (*entity.User, error)
}

type AuthMiddlewareConfig struct {
	Verifier *utils.TokenVerifier
	UserRepo UserRepository
	// Optional lets requests without an Authorization header through
	// anonymously. A header that is present must still be valid.
	Optional bool
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Optional && c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return next(c)
			}

			tokenData, err := cfg.Verifier.ParseTokenDataCtx(c)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, apierror.InvalidAuthTokenError)
			}

			user, err := cfg.UserRepo.FindActiveByID(tokenData.UserID)
			if err != nil {
				log.Errorf("failed to resolve user %d: %v", tokenData.UserID, err)
				return c.JSON(http.StatusInternalServerError, apierror.InternalServerError)
			}

			if user == nil {
				// Deactivated or deleted while the token is still valid
				return c.JSON(http.StatusUnauthorized, apierror.UserNotFoundError)
			}

			if user.Suspended {
				return c.JSON(http.StatusForbidden, apierror.NewForbiddenError("Missing access"))
			}

			c.Set(utils.ContextUserKey, user)
			c.Set(utils.ContextTokenKey, tokenData)
			return next(c)
		}
	}
}
