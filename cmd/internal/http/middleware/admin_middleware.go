package middleware

import (
	"net/http"

	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

// StaffPermissions is every bit that unlocks some part of the admin API.
const StaffPermissions = entity.PermissionAdministrator |
	entity.PermissionModerateClaims |
	entity.PermissionModerateReviews |
	entity.PermissionManageFeatured |
	entity.PermissionManageBusinesses

// RequireAnyPermission gates a route group on the user holding at least one
// of 'perms'. The fine grained checks stay in the services.
func RequireAnyPermission(perms entity.Permission) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, apierr := utils.GetUserFromContext(c)
			if apierr != nil {
				return c.JSON(apierr.Code(), apierr)
			}

			if !user.Permissions.HasAny(perms) {
				return c.JSON(http.StatusForbidden, apierror.NewForbiddenError("Staff privileges required"))
			}
			return next(c)
		}
	}
}

// AdminOnly lets any staff member into the admin API.
func AdminOnly() echo.MiddlewareFunc {
	return RequireAnyPermission(StaffPermissions)
}
