package service

import (
	"context"
	"errors"

	"github.com/spec-kit/adoption-service/internal/cache"
	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/events"
	"github.com/spec-kit/adoption-service/internal/repository"
	"github.com/spec-kit/adoption-service/internal/validation"
	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

const (
	msgOfferExists     = "Pet already has an adoption offer"
	msgPetNotInTransit = "Pet must be in transit to create an adoption offer"
)

// AdoptionOfferService coordinates adoption offer workflows.
type AdoptionOfferService struct {
	offers     repository.AdoptionOfferRepository
	pets       repository.PetRepository
	offerCache *cache.OfferCache
	dispatcher events.Dispatcher
}

// NewAdoptionOfferService constructs the service.
func NewAdoptionOfferService(
	offers repository.AdoptionOfferRepository,
	pets repository.PetRepository,
	offerCache *cache.OfferCache,
	dispatcher events.Dispatcher,
) *AdoptionOfferService {
	return &AdoptionOfferService{offers: offers, pets: pets, offerCache: offerCache, dispatcher: dispatcher}
}

// AdoptionOfferCreateInput carries the creation payload.
type AdoptionOfferCreateInput struct {
	PetID    string
	Title    string
	Headline string
	Status   *string
}

// AdoptionOfferUpdateInput carries a partial update; nil fields are left
// unchanged.
type AdoptionOfferUpdateInput struct {
	PetID    *string
	Title    *string
	Headline *string
	Status   *string
}

// AdoptionOfferDetail bundles an offer with its pet for response shaping.
type AdoptionOfferDetail struct {
	Offer domain.AdoptionOffer
	Pet   *domain.Pet
}

// CreateOffer validates the payload and enforces the transit precondition and
// the one-offer-per-pet rule before persisting.
func (s *AdoptionOfferService) CreateOffer(ctx context.Context, input AdoptionOfferCreateInput) (*AdoptionOfferDetail, error) {
	v := validation.New()
	v.Require("pet_id", input.PetID)
	v.Require("title", input.Title)
	v.MaxLen("title", input.Title, 30)
	v.Require("headline", input.Headline)
	v.MaxLen("headline", input.Headline, 120)
	if input.Status != nil {
		v.Enum("status", *input.Status, domain.ValidAdoptionOfferStatus)
	}

	var pet *domain.Pet
	if v.Valid() {
		var err error
		pet, err = s.pets.GetByID(ctx, input.PetID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				v.Add("pet_id", "The selected pet_id is invalid.")
			} else {
				return nil, err
			}
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if pet.Status != domain.PetStatusTransit {
		return nil, apperrors.NewPreconditionFailed(msgPetNotInTransit)
	}

	if _, err := s.offers.GetByPetID(ctx, input.PetID); err == nil {
		return nil, apperrors.NewConflict(msgOfferExists)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	offer := &domain.AdoptionOffer{
		PetID:    input.PetID,
		Title:    input.Title,
		Headline: input.Headline,
		Status:   domain.AdoptionOfferStatusDraft,
	}
	if input.Status != nil {
		offer.Status = domain.AdoptionOfferStatus(*input.Status)
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		if errors.Is(err, repository.ErrOfferExists) {
			return nil, apperrors.NewConflict(msgOfferExists)
		}
		return nil, err
	}

	s.offerCache.Invalidate(ctx)
	if offer.Status == domain.AdoptionOfferStatusPublished {
		s.publishOfferEvent(ctx, events.EventAdoptionOfferPublished, offer)
	}
	return &AdoptionOfferDetail{Offer: *offer, Pet: pet}, nil
}

// UpdateOffer applies a partial update. Re-pointing the offer to a different
// pet re-runs the one-offer-per-pet check.
func (s *AdoptionOfferService) UpdateOffer(ctx context.Context, id string, input AdoptionOfferUpdateInput) (*AdoptionOfferDetail, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Adoption offer")
		}
		return nil, err
	}

	v := validation.New()
	if input.PetID != nil {
		v.Require("pet_id", *input.PetID)
	}
	if input.Title != nil {
		v.Require("title", *input.Title)
		v.MaxLen("title", *input.Title, 30)
	}
	if input.Headline != nil {
		v.Require("headline", *input.Headline)
		v.MaxLen("headline", *input.Headline, 120)
	}
	if input.Status != nil {
		v.Enum("status", *input.Status, domain.ValidAdoptionOfferStatus)
	}
	if v.Valid() && input.PetID != nil {
		if _, err := s.pets.GetByID(ctx, *input.PetID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				v.Add("pet_id", "The selected pet_id is invalid.")
			} else {
				return nil, err
			}
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	prevStatus := offer.Status
	if input.PetID != nil && *input.PetID != offer.PetID {
		if _, err := s.offers.GetByPetID(ctx, *input.PetID); err == nil {
			return nil, apperrors.NewConflict(msgOfferExists)
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		offer.PetID = *input.PetID
	}
	if input.Title != nil {
		offer.Title = *input.Title
	}
	if input.Headline != nil {
		offer.Headline = *input.Headline
	}
	if input.Status != nil {
		offer.Status = domain.AdoptionOfferStatus(*input.Status)
	}

	if err := s.offers.Update(ctx, offer); err != nil {
		if errors.Is(err, repository.ErrOfferExists) {
			return nil, apperrors.NewConflict(msgOfferExists)
		}
		return nil, err
	}

	s.offerCache.Invalidate(ctx)
	if offer.Status != prevStatus {
		switch offer.Status {
		case domain.AdoptionOfferStatusPublished:
			s.publishOfferEvent(ctx, events.EventAdoptionOfferPublished, offer)
		case domain.AdoptionOfferStatusClosed:
			s.publishOfferEvent(ctx, events.EventAdoptionOfferClosed, offer)
		}
	}
	return s.loadDetail(ctx, offer)
}

// Publish sets the offer status to published. Callable from any state and
// idempotent.
func (s *AdoptionOfferService) Publish(ctx context.Context, id string) (*domain.AdoptionOffer, error) {
	return s.transition(ctx, id, domain.AdoptionOfferStatusPublished)
}

// Draft sets the offer status back to draft. Callable from any state and
// idempotent.
func (s *AdoptionOfferService) Draft(ctx context.Context, id string) (*domain.AdoptionOffer, error) {
	return s.transition(ctx, id, domain.AdoptionOfferStatusDraft)
}

func (s *AdoptionOfferService) transition(ctx context.Context, id string, status domain.AdoptionOfferStatus) (*domain.AdoptionOffer, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Adoption offer")
		}
		return nil, err
	}
	if offer.Status == status {
		return offer, nil
	}

	offer.Status = status
	if err := s.offers.Update(ctx, offer); err != nil {
		return nil, err
	}

	s.offerCache.Invalidate(ctx)
	if status == domain.AdoptionOfferStatusPublished {
		s.publishOfferEvent(ctx, events.EventAdoptionOfferPublished, offer)
	}
	return offer, nil
}

// GetOffer fetches an offer with its pet.
func (s *AdoptionOfferService) GetOffer(ctx context.Context, id string) (*AdoptionOfferDetail, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Adoption offer")
		}
		return nil, err
	}
	return s.loadDetail(ctx, offer)
}

// ListOffers returns all offers with their pets.
func (s *AdoptionOfferService) ListOffers(ctx context.Context) ([]AdoptionOfferDetail, error) {
	offers, err := s.offers.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadDetails(ctx, offers)
}

// ListPublishedOffers returns published offers with their pets. The public
// listing is served from the redis cache when warm.
func (s *AdoptionOfferService) ListPublishedOffers(ctx context.Context) ([]AdoptionOfferDetail, error) {
	var cached []AdoptionOfferDetail
	if err := s.offerCache.GetPublished(ctx, &cached); err == nil {
		return cached, nil
	}

	offers, err := s.offers.ListByStatus(ctx, domain.AdoptionOfferStatusPublished)
	if err != nil {
		return nil, err
	}
	details, err := s.loadDetails(ctx, offers)
	if err != nil {
		return nil, err
	}
	_ = s.offerCache.SetPublished(ctx, details)
	return details, nil
}

// DeleteOffer removes an offer.
func (s *AdoptionOfferService) DeleteOffer(ctx context.Context, id string) error {
	if err := s.offers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Adoption offer")
		}
		return err
	}
	s.offerCache.Invalidate(ctx)
	return nil
}

func (s *AdoptionOfferService) loadDetail(ctx context.Context, offer *domain.AdoptionOffer) (*AdoptionOfferDetail, error) {
	detail := AdoptionOfferDetail{Offer: *offer}
	if pet, err := s.pets.GetByID(ctx, offer.PetID); err == nil {
		detail.Pet = pet
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return &detail, nil
}

func (s *AdoptionOfferService) loadDetails(ctx context.Context, offers []domain.AdoptionOffer) ([]AdoptionOfferDetail, error) {
	details := make([]AdoptionOfferDetail, 0, len(offers))
	for i := range offers {
		detail, err := s.loadDetail(ctx, &offers[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *AdoptionOfferService) publishOfferEvent(ctx context.Context, eventType events.EventType, offer *domain.AdoptionOffer) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, eventType, events.AdoptionOfferPayload{
		OfferID: offer.ID,
		PetID:   offer.PetID,
		Title:   offer.Title,
		Status:  offer.Status,
	})
}
