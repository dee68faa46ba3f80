package service

import (
	"context"
	"strconv"
	"strings"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/domain/policy"
	"bizdirectory/cmd/internal/domain/validation"
	"bizdirectory/cmd/internal/infrastructure/metrics"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

var leadAccessDeniedError = apierror.NewForbiddenError("You do not have access to this lead")

type DefaultLeadService struct {
	Leads      LeadRepository
	Businesses BusinessRepository
	Users      UserRepository
	Notifier   Notifier
}

func NewLeadService(leads LeadRepository, businesses BusinessRepository, users UserRepository, notifier Notifier) *DefaultLeadService {
	return &DefaultLeadService{
		Leads:      leads,
		Businesses: businesses,
		Users:      users,
		Notifier:   notifier,
	}
}

func (l *DefaultLeadService) CreateLead(ctx context.Context, req *contract.CreateLeadRequest) (*contract.LeadResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	res := validation.ValidateLeadData(validation.LeadData{
		BusinessID:  req.BusinessID,
		SenderName:  req.Name,
		SenderEmail: req.Email,
		Message:     req.Message,
	})
	if apierr := apierror.FromResult(res); apierr != nil {
		return nil, apierr
	}

	business, apierr := findListedBusiness(l.Businesses, req.BusinessID)
	if apierr != nil {
		return nil, apierr
	}

	lead := &entity.Lead{
		BusinessID:  business.ID,
		SenderName:  req.Name,
		SenderEmail: strings.ToLower(req.Email),
		SenderPhone: req.Phone,
		Message:     req.Message,
		Status:      entity.LeadNew,
	}

	if err := l.Leads.Create(lead); err != nil {
		log.Errorf("failed to save lead: %v", err)
		return nil, apierror.InternalServerError
	}

	metrics.LeadsCreated.WithLabelValues(strconv.FormatBool(business.IsClaimed())).Inc()
	if l.Notifier != nil && business.IsClaimed() {
		leadCopy, bizCopy := *lead, *business
		go l.Notifier.LeadReceived(context.WithoutCancel(ctx), &leadCopy, &bizCopy)
	}
	return toLeadResponse(lead), nil
}

// CanUserAccessLead fails closed: any lookup error or missing record denies.
func (l *DefaultLeadService) CanUserAccessLead(ctx context.Context, userID, leadID int64) bool {
	_, _, ok := l.resolveAccess(userID, leadID)
	return ok
}

// GetLeadsForUser routes by ownership. Admins read the leads of every
// unclaimed business, everyone else reads the leads of what they own.
func (l *DefaultLeadService) GetLeadsForUser(ctx context.Context, userID int64) ([]*contract.LeadResponse, apierror.ErrorResponse) {
	user, err := l.Users.FindByID(userID)
	if err != nil {
		log.Errorf("failed to fetch user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}

	if user == nil {
		return nil, apierror.UserNotFoundError
	}

	var leads []*entity.Lead
	if user.Role() == entity.RoleAdmin {
		leads, err = l.Leads.FindForUnclaimed()
	} else {
		leads, err = l.Leads.FindForOwner(user.ID)
	}
	if err != nil {
		log.Errorf("failed to fetch leads for user %d: %v", userID, err)
		return nil, apierror.InternalServerError
	}
	return toLeadResponses(leads), nil
}

func (l *DefaultLeadService) GetLead(ctx context.Context, actor *entity.User, leadID int64) (*contract.LeadResponse, apierror.ErrorResponse) {
	if leadID <= 0 {
		return nil, apierror.InvalidIDError
	}

	lead, _, ok := l.resolveAccess(actor.ID, leadID)
	if !ok {
		return nil, leadAccessDeniedError
	}
	return toLeadResponse(lead), nil
}

// UpdateLeadStatus accepts any of the five statuses from any other one.
func (l *DefaultLeadService) UpdateLeadStatus(ctx context.Context, actor *entity.User, leadID int64, req *contract.UpdateLeadStatusRequest) (*contract.LeadResponse, apierror.ErrorResponse) {
	if leadID <= 0 {
		return nil, apierror.InvalidIDError
	}

	utils.Sanitize(req)
	if apierr := apierror.FromResult(validation.ValidateLeadStatus(req.Status)); apierr != nil {
		return nil, apierr
	}

	lead, _, ok := l.resolveAccess(actor.ID, leadID)
	if !ok {
		return nil, leadAccessDeniedError
	}

	status := entity.LeadStatus(req.Status)
	if err := l.Leads.UpdateStatus(lead.ID, status); err != nil {
		log.Errorf("failed to update lead %d: %v", lead.ID, err)
		return nil, apierror.InternalServerError
	}

	lead.Status = status
	lead.UpdatedAt = utils.NowUTC()
	return toLeadResponse(lead), nil
}

// resolveAccess loads the lead, its business and the user, then applies the
// lead access rule. Ownership is read fresh on every call.
func (l *DefaultLeadService) resolveAccess(userID, leadID int64) (*entity.Lead, *entity.Business, bool) {
	lead, err := l.Leads.FindByID(leadID)
	if err != nil || lead == nil {
		if err != nil {
			log.Errorf("failed to fetch lead %d: %v", leadID, err)
		}
		return nil, nil, false
	}

	business, err := l.Businesses.FindByID(lead.BusinessID)
	if err != nil || business == nil {
		return nil, nil, false
	}

	user, err := l.Users.FindByID(userID)
	if err != nil || user == nil {
		return nil, nil, false
	}

	if !policy.CanAccessLead(user.ID, user.Role(), business) {
		return nil, nil, false
	}
	return lead, business, true
}
