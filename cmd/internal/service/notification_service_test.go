package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/database/repository"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/infrastructure/aws/mailer"
	"bizdirectory/cmd/internal/infrastructure/aws/websocket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	mu    sync.Mutex
	posts map[string][]*contract.OutgoingSocketMessage
	gone  map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{posts: map[string][]*contract.OutgoingSocketMessage{}, gone: map[string]bool{}}
}

func (g *fakeGateway) PostToConnection(_ context.Context, connID string, data interface{}) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.gone[connID] {
		return websocket.ErrConnectionGone
	}
	msg, _ := data.(*contract.OutgoingSocketMessage)
	g.posts[connID] = append(g.posts[connID], msg)
	return nil
}

func (g *fakeGateway) DeleteConnection(context.Context, string) error {
	return nil
}

type fakeMailer struct {
	sent []*mailer.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg *mailer.Message) error {
	m.sent = append(m.sent, msg)
	return m.err
}

func TestNotificationService_ClaimDecided(t *testing.T) {
	env := newTestEnv(t)
	gw := newFakeGateway()
	ws := NewWebSocketService(repository.NewConnectionRepository(env.db), gw)
	require.Nil(t, ws.RegisterConnection(ownerID, "conn-a", 0))
	require.Nil(t, ws.RegisterConnection(ownerID, "conn-b", 0))
	gw.gone["conn-b"] = true

	mail := &fakeMailer{}
	n := NewNotificationService(ws, mail, env.users)

	n.ClaimDecided(context.Background(), &entity.OwnershipClaim{
		ID:           10,
		UserID:       ownerID,
		BusinessID:   "b1",
		Status:       entity.ClaimRejected,
		AdminMessage: "insufficient evidence provided",
	})

	require.Len(t, gw.posts["conn-a"], 1)
	assert.Equal(t, contract.EventClaimDecided, gw.posts["conn-a"][0].Type)

	remaining, err := ws.ConnRepo.FindByUserID(ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"conn-a"}, remaining, "gone connection is pruned")

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "owner@example.com", mail.sent[0].To)
	assert.Contains(t, mail.sent[0].Subject, "rejected")
	assert.Contains(t, mail.sent[0].Text, "insufficient evidence provided")
}

func TestNotificationService_LeadReceivedSkipsUnclaimed(t *testing.T) {
	env := newTestEnv(t)
	mail := &fakeMailer{}
	n := NewNotificationService(nil, mail, env.users)

	lead := &entity.Lead{ID: 1, BusinessID: "b1", SenderName: "Jordan", SenderEmail: "j@example.com", Message: "hi"}
	n.LeadReceived(context.Background(), lead, &entity.Business{ID: "b1", Title: "Cafe"})
	assert.Empty(t, mail.sent)

	n.LeadReceived(context.Background(), lead, &entity.Business{ID: "b1", Title: "Cafe", OwnerID: owned(ownerID)})
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "New inquiry for Cafe", mail.sent[0].Subject)
}

func TestNotificationService_MailFailureIsSwallowed(t *testing.T) {
	env := newTestEnv(t)
	mail := &fakeMailer{err: errors.New("throttled")}
	n := NewNotificationService(nil, mail, env.users)

	assert.NotPanics(t, func() {
		n.FeaturedDecided(context.Background(), &entity.FeaturedRequest{UserID: ownerID, Status: entity.FeaturedApproved})
		n.FeaturedDecided(context.Background(), &entity.FeaturedRequest{UserID: 999, Status: entity.FeaturedApproved})
	})
	assert.Len(t, mail.sent, 1)
}
