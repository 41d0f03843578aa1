package domain

import "time"

// PetStatus enumerates lifecycle states for pets.
type PetStatus string

const (
	PetStatusTransit  PetStatus = "transit"
	PetStatusAdopted  PetStatus = "adopted"
	PetStatusDeceased PetStatus = "deceased"
)

// PetType enumerates supported species.
type PetType string

const (
	PetTypeCat PetType = "cat"
	PetTypeDog PetType = "dog"
)

// PetSize enumerates size classes.
type PetSize string

const (
	PetSizeSmall  PetSize = "small"
	PetSizeMedium PetSize = "medium"
	PetSizeLarge  PetSize = "large"
)

// Pet is the aggregate for animals available for adoption.
type Pet struct {
	ID        string
	Name      string
	Photo     *string
	Status    PetStatus
	Age       *int
	Type      *PetType
	Breed     *string
	Size      *PetSize
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidPetStatus reports whether the value belongs to the status enum.
func ValidPetStatus(v string) bool {
	switch PetStatus(v) {
	case PetStatusTransit, PetStatusAdopted, PetStatusDeceased:
		return true
	}
	return false
}

// ValidPetType reports whether the value belongs to the type enum.
func ValidPetType(v string) bool {
	switch PetType(v) {
	case PetTypeCat, PetTypeDog:
		return true
	}
	return false
}

// ValidPetSize reports whether the value belongs to the size enum.
func ValidPetSize(v string) bool {
	switch PetSize(v) {
	case PetSizeSmall, PetSizeMedium, PetSizeLarge:
		return true
	}
	return false
}
