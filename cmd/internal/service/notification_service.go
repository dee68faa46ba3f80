package service

import (
	"context"
	"fmt"

	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/domain/events"
	"bizdirectory/cmd/internal/infrastructure/aws/mailer"
	"bizdirectory/cmd/internal/infrastructure/metrics"

	"github.com/labstack/gommon/log"
)

// Notifier receives workflow outcomes after they are persisted. Delivery is
// best effort and never reports back to the caller.
type Notifier interface {
	ClaimDecided(ctx context.Context, claim *entity.OwnershipClaim)
	LeadReceived(ctx context.Context, lead *entity.Lead, business *entity.Business)
	FeaturedDecided(ctx context.Context, req *entity.FeaturedRequest)
}

// NotificationService pushes realtime events over the websocket gateway and
// falls back to email through SES.
type NotificationService struct {
	WS     *WebSocketService
	Mailer mailer.Mailer
	Users  UserRepository
}

func NewNotificationService(ws *WebSocketService, m mailer.Mailer, users UserRepository) *NotificationService {
	return &NotificationService{WS: ws, Mailer: m, Users: users}
}

func (n *NotificationService) ClaimDecided(ctx context.Context, claim *entity.OwnershipClaim) {
	n.push(ctx, claim.UserID, &events.ClaimDecided{ClaimResponse: toClaimResponse(claim)})

	subject := fmt.Sprintf("Your ownership claim was %s", claim.Status)
	body := fmt.Sprintf("Your claim #%d for business %s is now %s.", claim.ID, claim.BusinessID, claim.Status)
	if claim.AdminMessage != "" {
		body += "\n\nModerator note: " + claim.AdminMessage
	}
	n.email(ctx, claim.UserID, subject, body)
}

func (n *NotificationService) LeadReceived(ctx context.Context, lead *entity.Lead, business *entity.Business) {
	if !business.IsClaimed() {
		return
	}

	ownerID := *business.OwnerID
	n.push(ctx, ownerID, &events.LeadReceived{LeadResponse: toLeadResponse(lead)})

	subject := fmt.Sprintf("New inquiry for %s", business.Title)
	body := fmt.Sprintf("%s <%s> wrote:\n\n%s", lead.SenderName, lead.SenderEmail, lead.Message)
	n.email(ctx, ownerID, subject, body)
}

func (n *NotificationService) FeaturedDecided(ctx context.Context, req *entity.FeaturedRequest) {
	n.push(ctx, req.UserID, &events.FeaturedDecided{FeaturedResponse: toFeaturedResponse(req)})

	subject := fmt.Sprintf("Your featured listing request was %s", req.Status)
	n.email(ctx, req.UserID, subject, req.AdminMessage)
}

func (n *NotificationService) push(ctx context.Context, userID int64, evt events.SocketEvent) {
	if n.WS == nil {
		return
	}
	n.WS.Dispatch(ctx, userID, evt)
}

func (n *NotificationService) email(ctx context.Context, userID int64, subject, body string) {
	if n.Mailer == nil || n.Users == nil {
		return
	}

	user, err := n.Users.FindByID(userID)
	if err != nil || user == nil {
		log.Warnf("notification: cannot resolve user %d for email: %v", userID, err)
		metrics.NotificationFailures.WithLabelValues("email").Inc()
		return
	}

	err = n.Mailer.Send(ctx, &mailer.Message{To: user.Email, Subject: subject, Text: body})
	if err != nil {
		log.Warnf("notification: failed to email user %d: %v", userID, err)
		metrics.NotificationFailures.WithLabelValues("email").Inc()
	}
}
