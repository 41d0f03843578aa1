package events

import (
	"time"

	"github.com/spec-kit/adoption-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAdoptionRequestCreated  EventType = "adoption_request_created"
	EventAdoptionRequestApproved EventType = "adoption_request_approved"
	EventAdoptionRequestRejected EventType = "adoption_request_rejected"
	EventAdoptionOfferPublished  EventType = "adoption_offer_published"
	EventAdoptionOfferClosed     EventType = "adoption_offer_closed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AdoptionRequestPayload accompanies request lifecycle events.
type AdoptionRequestPayload struct {
	RequestID    string                       `json:"request_id"`
	PetID        string                       `json:"pet_id"`
	UserID       string                       `json:"user_id"`
	Status       domain.AdoptionRequestStatus `json:"status"`
	RejectReason *string                      `json:"reject_reason,omitempty"`
}

// AdoptionOfferPayload accompanies offer lifecycle events.
type AdoptionOfferPayload struct {
	OfferID string                     `json:"offer_id"`
	PetID   string                     `json:"pet_id"`
	Title   string                     `json:"title"`
	Status  domain.AdoptionOfferStatus `json:"status"`
}
