package service

import (
	"context"
	"errors"
	"time"

	"bizdirectory/cmd/internal/contract"
	"bizdirectory/cmd/internal/domain/entity"
	"bizdirectory/cmd/internal/domain/events"
	"bizdirectory/cmd/internal/infrastructure/aws/websocket"
	"bizdirectory/cmd/internal/utils"
	"bizdirectory/cmd/internal/utils/apierror"

	"github.com/labstack/gommon/log"
)

type WebSocketService struct {
	ConnRepo ConnectionRepository
	Gateway  websocket.GatewayClient
}

func NewWebSocketService(repo ConnectionRepository, gateway websocket.GatewayClient) *WebSocketService {
	return &WebSocketService{
		ConnRepo: repo,
		Gateway:  gateway,
	}
}

func (s *WebSocketService) RegisterConnection(userID int64, connectionID string, exp int64) apierror.ErrorResponse {
	now := utils.NowUTC()
	conn := &entity.Connection{
		ConnectionID:    connectionID,
		UserID:          userID,
		ExpiresAt:       exp * 1000, // "exp" is stored in seconds, our app uses millis
		LastHeartbeatAt: now,        // Avoid users getting disconnected immediately
		CreatedAt:       now,
	}

	if err := s.ConnRepo.Save(conn); err != nil {
		log.Errorf("failed to save connection: %v", err)
		return apierror.InternalServerError
	}
	return nil
}

func (s *WebSocketService) RemoveConnection(connectionID string) {
	// Not the client's fault if this fails
	_ = s.ConnRepo.Delete(connectionID)
}

func (s *WebSocketService) HandleMessage(ctx context.Context, msg *contract.IncomingSocketMessage, connID string) {
	switch msg.Type {
	case contract.EventPing:
		s.handlePing(ctx, connID)
	}
}

// Dispatch wraps the event in the outgoing envelope and pushes it to every
// connection of the user. One stale connection doesn't block the others.
func (s *WebSocketService) Dispatch(ctx context.Context, userID int64, evt events.SocketEvent) int {
	conns, err := s.ConnRepo.FindByUserID(userID)
	if err != nil {
		log.Errorf("failed to fetch connections for user %d: %v", userID, err)
		return 0
	}

	envelope := &contract.OutgoingSocketMessage{
		Type: evt.GetType(),
		Data: evt,
	}

	delivered := 0
	for _, connID := range conns {
		err := s.Gateway.PostToConnection(ctx, connID, envelope)
		switch {
		case err == nil:
			delivered++
		case errors.Is(err, websocket.ErrConnectionGone):
			log.Debugf("pruning gone connection %s of user %d", connID, userID)
			if derr := s.ConnRepo.Delete(connID); derr != nil {
				log.Errorf("failed to prune connection %s: %v", connID, derr)
			}
		}
	}
	return delivered
}

// Terminate sends a "poison pill" message and then disconnects.
func (s *WebSocketService) Terminate(ctx context.Context, connID string, ck *events.ConnectionKill) {
	_ = s.Gateway.PostToConnection(ctx, connID, &contract.OutgoingSocketMessage{
		Type: ck.GetType(),
		Data: ck,
	})

	go func(cid string) {
		time.Sleep(200 * time.Millisecond)
		_ = s.Gateway.DeleteConnection(context.Background(), cid)
	}(connID)
	_ = s.ConnRepo.Delete(connID)
}

func (s *WebSocketService) handlePing(ctx context.Context, connID string) {
	now := utils.NowUTC()
	err := s.ConnRepo.UpdateHeartbeat(connID, now)
	if err != nil {
		log.Errorf("failed to update heartbeat: %v", err)
		return
	}

	if err = s.Gateway.PostToConnection(ctx, connID, &contract.OutgoingSocketMessage{Type: contract.EventAck}); err != nil {
		log.Errorf("failed to post ack to conn %s: %v", connID, err)
	}
}
