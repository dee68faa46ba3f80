package contract

type EventType string

const (
	EventPing EventType = "ping"

	EventConnectionKill EventType = "CONNECTION_KILL"
	EventSessionExpired EventType = "SESSION_EXPIRED"
	EventAck            EventType = "ACK"

	EventClaimDecided    EventType = "CLAIM_DECIDED"
	EventLeadReceived    EventType = "LEAD_RECEIVED"
	EventFeaturedDecided EventType = "FEATURED_DECIDED"
)

type KillCode int

const (
	KillCodeSessionExpired KillCode = 4001
	KillCodeStaleHeartbeat KillCode = 4002
)

// IncomingSocketMessage is used for messages we receive from the users.
type IncomingSocketMessage struct {
	Type EventType `json:"type"`
}

// OutgoingSocketMessage is what we send to the Client
type OutgoingSocketMessage struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
