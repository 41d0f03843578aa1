package domain

import "time"

// AdoptionRequestStatus enumerates lifecycle states for adoption requests.
type AdoptionRequestStatus string

const (
	AdoptionRequestStatusPending  AdoptionRequestStatus = "pending"
	AdoptionRequestStatusApproved AdoptionRequestStatus = "approved"
	AdoptionRequestStatusRejected AdoptionRequestStatus = "rejected"
)

// AdoptionRequest records a user applying to adopt a pet. At most one
// pending request may exist per (pet, user) pair.
type AdoptionRequest struct {
	ID           string
	PetID        string
	UserID       string
	Address      string
	Phone        string
	Application  string
	Status       AdoptionRequestStatus
	RejectReason *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidAdoptionRequestStatus reports whether the value belongs to the enum.
func ValidAdoptionRequestStatus(v string) bool {
	switch AdoptionRequestStatus(v) {
	case AdoptionRequestStatusPending, AdoptionRequestStatusApproved, AdoptionRequestStatusRejected:
		return true
	}
	return false
}
