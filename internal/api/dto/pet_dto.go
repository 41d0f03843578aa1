package dto

import (
	"time"

	"github.com/spec-kit/adoption-service/internal/domain"
)

// PetResponse is the wire shape for a pet. Photo carries the stored key,
// PhotoURL the public URL; both are null when no photo is stored.
type PetResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Photo     *string          `json:"photo"`
	PhotoURL  *string          `json:"photo_url"`
	Status    domain.PetStatus `json:"status"`
	Age       *int             `json:"age"`
	Type      *domain.PetType  `json:"type"`
	Breed     *string          `json:"breed"`
	Size      *domain.PetSize  `json:"size"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PetSummary is the nested pet shape embedded in request and offer responses.
type PetSummary struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	PhotoURL *string          `json:"photo_url"`
	Status   domain.PetStatus `json:"status"`
	Age      *int             `json:"age"`
	Type     *domain.PetType  `json:"type"`
	Breed    *string          `json:"breed"`
	Size     *domain.PetSize  `json:"size"`
}
