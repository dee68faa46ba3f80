package handler

import (
	"net/http"
	"strconv"

	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

func parseID(c echo.Context, name string) (int64, apierror.ErrorResponse) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError(name, "int")
	}
	return id, nil
}

// optionalUser returns the authenticated user on routes that also serve
// anonymous callers.
func optionalUser(c echo.Context) *entity.User {
	user, _ := c.Get(utils.ContextUserKey).(*entity.User)
	return user
}

func writeError(c echo.Context, apierr apierror.ErrorResponse) error {
	return c.JSON(apierr.Code(), apierr)
}

func malformedBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
}
