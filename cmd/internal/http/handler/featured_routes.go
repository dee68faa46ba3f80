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

type FeaturedService interface {
	CreateFeaturedRequest(ctx context.Context, actor *entity.User, req *contract.CreateFeaturedRequest) (*contract.FeaturedResponse, apierror.ErrorResponse)
	ListFeaturedRequests(ctx context.Context, actor *entity.User, status string) ([]*contract.FeaturedResponse, apierror.ErrorResponse)
	UpdateFeaturedStatus(ctx context.Context, actor *entity.User, requestID int64, req *contract.UpdateFeaturedStatusRequest) (*contract.FeaturedResponse, apierror.ErrorResponse)
}

type DefaultFeaturedRoute struct {
	FeaturedService FeaturedService
}

func NewFeaturedDefault(featuredService FeaturedService) *DefaultFeaturedRoute {
	return &DefaultFeaturedRoute{FeaturedService: featuredService}
}

func (f *DefaultFeaturedRoute) CreateRequest(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	var req contract.CreateFeaturedRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	created, apierr := f.FeaturedService.CreateFeaturedRequest(c.Request().Context(), user, &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusCreated, created)
}

func (f *DefaultFeaturedRoute) GetRequests(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	requests, apierr := f.FeaturedService.ListFeaturedRequests(c.Request().Context(), user, c.QueryParam("status"))
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"featured_requests": requests})
}

func (f *DefaultFeaturedRoute) UpdateStatus(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	id, apierr := parseID(c, "id")
	if apierr != nil {
		return writeError(c, apierr)
	}

	var req contract.UpdateFeaturedStatusRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	updated, apierr := f.FeaturedService.UpdateFeaturedStatus(c.Request().Context(), user, id, &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, updated)
}
