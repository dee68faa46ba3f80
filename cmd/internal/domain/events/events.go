package events

import "bizdirectory/cmd/internal/contract"

type SocketEvent interface {
	GetType() contract.EventType
}

type Ack struct{}

func (*Ack) GetType() contract.EventType {
	return contract.EventAck
}

type ConnectionKill struct {
	Code   contract.KillCode `json:"code"`
	Reason *string           `json:"reason,omitempty"`
}

func (e *ConnectionKill) GetType() contract.EventType {
	return contract.EventConnectionKill
}

// ClaimDecided is pushed to the claimant after a moderator acts on a claim.
type ClaimDecided struct {
	*contract.ClaimResponse
}

func (e *ClaimDecided) GetType() contract.EventType {
	return contract.EventClaimDecided
}

// LeadReceived is pushed to the owner of the business the lead was sent to.
type LeadReceived struct {
	*contract.LeadResponse
}

func (e *LeadReceived) GetType() contract.EventType {
	return contract.EventLeadReceived
}

type FeaturedDecided struct {
	*contract.FeaturedResponse
}

func (e *FeaturedDecided) GetType() contract.EventType {
	return contract.EventFeaturedDecided
}
