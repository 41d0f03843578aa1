package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/repository"
)

type AdoptionOfferRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.AdoptionOffer
}

// NewAdoptionOfferRepository returns an empty in-memory offer repository.
func NewAdoptionOfferRepository() *AdoptionOfferRepo {
	return &AdoptionOfferRepo{byID: make(map[string]domain.AdoptionOffer)}
}

func (r *AdoptionOfferRepo) Create(_ context.Context, offer *domain.AdoptionOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.byID {
		if existing.PetID == offer.PetID {
			return repository.ErrOfferExists
		}
	}
	offer.ID = uuid.NewString()
	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	r.byID[offer.ID] = *offer
	return nil
}

func (r *AdoptionOfferRepo) Update(_ context.Context, offer *domain.AdoptionOffer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[offer.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.byID {
		if id != offer.ID && existing.PetID == offer.PetID {
			return repository.ErrOfferExists
		}
	}
	offer.UpdatedAt = time.Now()
	r.byID[offer.ID] = *offer
	return nil
}

func (r *AdoptionOfferRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *AdoptionOfferRepo) GetByID(_ context.Context, id string) (*domain.AdoptionOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	offer, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &offer, nil
}

func (r *AdoptionOfferRepo) GetByPetID(_ context.Context, petID string) (*domain.AdoptionOffer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, offer := range r.byID {
		if offer.PetID == petID {
			copy := offer
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *AdoptionOfferRepo) List(_ context.Context) ([]domain.AdoptionOffer, error) {
	return r.listWhere(func(domain.AdoptionOffer) bool { return true }), nil
}

func (r *AdoptionOfferRepo) ListByStatus(_ context.Context, status domain.AdoptionOfferStatus) ([]domain.AdoptionOffer, error) {
	return r.listWhere(func(offer domain.AdoptionOffer) bool {
		return offer.Status == status
	}), nil
}

// RemoveByPet drops the offer referencing the pet. It backs the pet
// repository's cascading delete.
func (r *AdoptionOfferRepo) RemoveByPet(petID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, offer := range r.byID {
		if offer.PetID == petID {
			delete(r.byID, id)
		}
	}
}

func (r *AdoptionOfferRepo) listWhere(match func(domain.AdoptionOffer) bool) []domain.AdoptionOffer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.AdoptionOffer, 0)
	for _, offer := range r.byID {
		if match(offer) {
			out = append(out, offer)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
