package dto

import (
	"time"

	"github.com/spec-kit/adoption-service/internal/domain"
)

// CreateAdoptionRequestRequest payload. UserID is honored on the admin path
// only; the self path takes the id from the token.
type CreateAdoptionRequestRequest struct {
	PetID       string  `json:"pet_id"`
	UserID      string  `json:"user_id"`
	Address     string  `json:"address"`
	Phone       string  `json:"phone"`
	Application string  `json:"application"`
	Status      *string `json:"status"`
}

// UpdateAdoptionRequestRequest payload for partial updates.
type UpdateAdoptionRequestRequest struct {
	PetID       *string `json:"pet_id"`
	UserID      *string `json:"user_id"`
	Address     *string `json:"address"`
	Phone       *string `json:"phone"`
	Application *string `json:"application"`
	Status      *string `json:"status"`
}

// RejectAdoptionRequestRequest payload for the reject action.
type RejectAdoptionRequestRequest struct {
	RejectReason string `json:"reject_reason"`
}

// AdoptionRequestResponse is the wire shape for a request with its
// associations. Missing associations serialize as null, not omitted keys.
type AdoptionRequestResponse struct {
	ID           string                       `json:"id"`
	Address      string                       `json:"address"`
	Phone        string                       `json:"phone"`
	Application  string                       `json:"application"`
	Status       domain.AdoptionRequestStatus `json:"status"`
	RejectReason *string                      `json:"reject_reason"`
	Pet          *PetSummary                  `json:"pet"`
	User         *UserResponse                `json:"user"`
	CreatedAt    time.Time                    `json:"created_at"`
	UpdatedAt    time.Time                    `json:"updated_at"`
}

// AdoptionRequestStatusResponse is the trimmed shape returned by the
// approve and reject actions.
type AdoptionRequestStatusResponse struct {
	ID           string                       `json:"id"`
	Status       domain.AdoptionRequestStatus `json:"status"`
	RejectReason *string                      `json:"reject_reason,omitempty"`
}

// CreateAdoptionOfferRequest payload.
type CreateAdoptionOfferRequest struct {
	PetID    string  `json:"pet_id"`
	Title    string  `json:"title"`
	Headline string  `json:"headline"`
	Status   *string `json:"status"`
}

// UpdateAdoptionOfferRequest payload for partial updates.
type UpdateAdoptionOfferRequest struct {
	PetID    *string `json:"pet_id"`
	Title    *string `json:"title"`
	Headline *string `json:"headline"`
	Status   *string `json:"status"`
}

// AdoptionOfferResponse is the wire shape for an offer with its pet.
type AdoptionOfferResponse struct {
	ID        string                     `json:"id"`
	Title     string                     `json:"title"`
	Headline  string                     `json:"headline"`
	Status    domain.AdoptionOfferStatus `json:"status"`
	Pet       *PetSummary                `json:"pet"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}
