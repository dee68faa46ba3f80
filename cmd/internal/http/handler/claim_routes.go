package handler

import (
	"context"
	"mime/multipart"
	"net/http"
	"strings"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type ClaimService interface {
	CreateClaim(ctx context.Context, actor *entity.User, req *contract.CreateClaimRequest) (*contract.ClaimResponse, apierror.ErrorResponse)
	GetClaim(ctx context.Context, actor *entity.User, claimID int64) (*contract.ClaimResponse, apierror.ErrorResponse)
	ListClaims(ctx context.Context, actor *entity.User, status string) ([]*contract.ClaimResponse, apierror.ErrorResponse)
	ListUserClaims(ctx context.Context, actor *entity.User) ([]*contract.ClaimResponse, apierror.ErrorResponse)
	UpdateClaimStatus(ctx context.Context, actor *entity.User, claimID int64, req *contract.UpdateClaimStatusRequest) (*contract.ClaimDecisionResponse, apierror.ErrorResponse)
	RevertClaim(ctx context.Context, actor *entity.User, claimID int64, adminMessage string) (*contract.ClaimDecisionResponse, apierror.ErrorResponse)
	AttachEvidence(ctx context.Context, actor *entity.User, claimID int64, fileHeader *multipart.FileHeader) (*contract.ClaimResponse, apierror.ErrorResponse)
}

type DefaultClaimRoute struct {
	ClaimService ClaimService
}

func NewClaimDefault(claimService ClaimService) *DefaultClaimRoute {
	return &DefaultClaimRoute{ClaimService: claimService}
}

func (h *DefaultClaimRoute) CreateClaim(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	var req contract.CreateClaimRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	claim, apierr := h.ClaimService.CreateClaim(c.Request().Context(), user, &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusCreated, claim)
}

func (h *DefaultClaimRoute) GetSelfClaims(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	claims, apierr := h.ClaimService.ListUserClaims(c.Request().Context(), user)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"claims": claims})
}

func (h *DefaultClaimRoute) GetClaims(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	claims, apierr := h.ClaimService.ListClaims(c.Request().Context(), user, c.QueryParam("status"))
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, echo.Map{"claims": claims})
}

func (h *DefaultClaimRoute) GetClaim(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	id, apierr := parseID(c, "id")
	if apierr != nil {
		return writeError(c, apierr)
	}

	claim, apierr := h.ClaimService.GetClaim(c.Request().Context(), user, id)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, claim)
}

func (h *DefaultClaimRoute) UpdateClaimStatus(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	id, apierr := parseID(c, "id")
	if apierr != nil {
		return writeError(c, apierr)
	}

	var req contract.UpdateClaimStatusRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	decision, apierr := h.ClaimService.UpdateClaimStatus(c.Request().Context(), user, id, &req)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, decision)
}

func (h *DefaultClaimRoute) RevertClaim(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	id, apierr := parseID(c, "id")
	if apierr != nil {
		return writeError(c, apierr)
	}

	var req contract.RevertClaimRequest
	if err := c.Bind(&req); err != nil {
		return malformedBody(c)
	}

	decision, apierr := h.ClaimService.RevertClaim(c.Request().Context(), user, id, req.AdminMessage)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, decision)
}

func (h *DefaultClaimRoute) AttachEvidence(c echo.Context) error {
	user, cerr := utils.GetUserFromContext(c)
	if cerr != nil {
		return writeError(c, cerr)
	}

	id, apierr := parseID(c, "id")
	if apierr != nil {
		return writeError(c, apierr)
	}

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if !strings.HasPrefix(contentType, echo.MIMEMultipartForm) {
		return c.JSON(http.StatusUnsupportedMediaType, apierror.InvalidMediaTypeError)
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MissingFileError)
	}

	claim, apierr := h.ClaimService.AttachEvidence(c.Request().Context(), user, id, fileHeader)
	if apierr != nil {
		return writeError(c, apierr)
	}
	return c.JSON(http.StatusOK, claim)
}
