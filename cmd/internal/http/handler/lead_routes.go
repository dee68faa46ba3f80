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

type LeadService interface {
	CreateLead(ctx context.Context, req *contract.CreateLeadRequest) (*contract.LeadResponse, apierror.ErrorResponse)
	GetLeadsForUser(ctx context.Context, userID int64) ([]*contract.LeadResponse, apierror.ErrorResponse)
	GetLead(ctx context.Context, actor *entity.User, leadID int64) (*contract.LeadResponse, apierror.ErrorResponse)
	UpdateLeadStatus(ctx context.Context, actor *entity.User, leadID int64, req *contract.UpdateLeadStatusRequest) (*contract.LeadResponse, apierror.ErrorResponse)
}

type DefaultLeadRoute struct {
	LeadService LeadService
}

func NewLeadDefault(leadService LeadService) *DefaultLeadRoute {
	return &DefaultLeadRoute{LeadService: leadService}
}

func (l *DefaultLeadRoute) CreateLead(c echo.Context) error {
	var req contract.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	req.BusinessID = c.Param("id")
	lead, apierr := l.LeadService.CreateLead(c.Request().Context(), &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusCreated, lead)
}

func (l *DefaultLeadRoute) GetLeads(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	leads, apierr := l.LeadService.GetLeadsForUser(c.Request().Context(), user.ID)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"leads": leads})
}

func (l *DefaultLeadRoute) GetLead(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	id, apierr := parseID(c, "id")
	if apierr != nil {
		return writeError(c, apierr)
	}

	lead, apierr := l.LeadService.GetLead(c.Request().Context(), user, id)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, lead)
}

func (l *DefaultLeadRoute) UpdateLeadStatus(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	id, apierr := parseID(c, "id")
	if apierr != nil {
		return writeError(c, apierr)
	}

	var req contract.UpdateLeadStatusRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	lead, apierr := l.LeadService.UpdateLeadStatus(c.Request().Context(), user, id, &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, lead)
}
