package handler

import (
	"context"
	"net/http"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type BusinessService interface {
	GetBusiness(ctx context.Context, actor *entity.User, id string) (*contract.BusinessResponse, apierror.ErrorResponse)
	SubmitBusiness(ctx context.Context, actor *entity.User, req *contract.CreateBusinessRequest) (*contract.BusinessResponse, apierror.ErrorResponse)
	CreateBusiness(ctx context.Context, actor *entity.User, req *contract.CreateBusinessRequest) (*contract.BusinessResponse, apierror.ErrorResponse)
	ModerateBusiness(ctx context.Context, actor *entity.User, id string, req *contract.ModerateBusinessRequest) (*contract.BusinessResponse, apierror.ErrorResponse)
	BulkDeleteBusinesses(ctx context.Context, actor *entity.User, req *contract.BulkDeleteRequest) (*contract.BulkDeleteResponse, apierror.ErrorResponse)
}

type DefaultBusinessRoute struct {
	BusinessService BusinessService
}

func NewBusinessDefault(businessService BusinessService) *DefaultBusinessRoute {
	return &DefaultBusinessRoute{BusinessService: businessService}
}

func (b *DefaultBusinessRoute) GetBusiness(c echo.Context) error {
	business, apierr := b.BusinessService.GetBusiness(c.Request().Context(), optionalUser(c), c.Param("id"))
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, business)
}

func (b *DefaultBusinessRoute) SubmitBusiness(c echo.Context) error {
	var req contract.CreateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	// Public submissions never pick their own id
	req.ID = ""
	business, apierr := b.BusinessService.SubmitBusiness(c.Request().Context(), optionalUser(c), &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusCreated, business)
}

func (b *DefaultBusinessRoute) CreateBusiness(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	var req contract.CreateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	business, apierr := b.BusinessService.CreateBusiness(c.Request().Context(), user, &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusCreated, business)
}

func (b *DefaultBusinessRoute) ModerateBusiness(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	var req contract.ModerateBusinessRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	business, apierr := b.BusinessService.ModerateBusiness(c.Request().Context(), user, c.Param("id"), &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, business)
}

func (b *DefaultBusinessRoute) BulkDelete(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	var req contract.BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	summary, apierr := b.BusinessService.BulkDeleteBusinesses(c.Request().Context(), user, &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, summary)
}
