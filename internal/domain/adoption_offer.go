package domain

import "time"

// AdoptionOfferStatus enumerates lifecycle states for adoption offers.
type AdoptionOfferStatus string

const (
	AdoptionOfferStatusDraft     AdoptionOfferStatus = "draft"
	AdoptionOfferStatusPublished AdoptionOfferStatus = "published"
	AdoptionOfferStatusClosed    AdoptionOfferStatus = "closed"
)

// AdoptionOffer advertises a pet for adoption. A pet carries at most one offer.
type AdoptionOffer struct {
	ID        string
	PetID     string
	Title     string
	Headline  string
	Status    AdoptionOfferStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidAdoptionOfferStatus reports whether the value belongs to the enum.
func ValidAdoptionOfferStatus(v string) bool {
	switch AdoptionOfferStatus(v) {
	case AdoptionOfferStatusDraft, AdoptionOfferStatusPublished, AdoptionOfferStatusClosed:
		return true
	}
	return false
}
