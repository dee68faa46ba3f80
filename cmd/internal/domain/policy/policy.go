package policy

import (
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/utils/apierror"
)

const (
	moderateClaims   = entity.PermissionModerateClaims
	moderateReviews  = entity.PermissionModerateReviews
	manageFeatured   = entity.PermissionManageFeatured
	manageBusinesses = entity.PermissionManageBusinesses
)

func permError(perm entity.Permission) *apierror.APIError {
	return apierror.NewPermissionError(int64(perm))
}

func forbiddenError(msg string) *apierror.APIError {
	return apierror.NewForbiddenError(msg)
}

func requireActor(actor *entity.User) apierror.ErrorResponse {
	if actor == nil {
		return apierror.UnauthorizedError
	}
	if actor.Suspended || !actor.Active {
		return forbiddenError("account is not allowed to perform this action")
	}
	return nil
}
