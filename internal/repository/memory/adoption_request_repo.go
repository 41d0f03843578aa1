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

type AdoptionRequestRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.AdoptionRequest
}

// NewAdoptionRequestRepository returns an empty in-memory request repository.
func NewAdoptionRequestRepository() *AdoptionRequestRepo {
	return &AdoptionRequestRepo{byID: make(map[string]domain.AdoptionRequest)}
}

func (r *AdoptionRequestRepo) Create(_ context.Context, request *domain.AdoptionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.Status == domain.AdoptionRequestStatusPending {
		for _, existing := range r.byID {
			if existing.PetID == request.PetID && existing.UserID == request.UserID &&
				existing.Status == domain.AdoptionRequestStatusPending {
				return repository.ErrDuplicatePendingRequest
			}
		}
	}
	request.ID = uuid.NewString()
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	r.byID[request.ID] = *request
	return nil
}

func (r *AdoptionRequestRepo) Update(_ context.Context, request *domain.AdoptionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[request.ID]; !ok {
		return repository.ErrNotFound
	}
	if request.Status == domain.AdoptionRequestStatusPending {
		for id, existing := range r.byID {
			if id != request.ID && existing.PetID == request.PetID && existing.UserID == request.UserID &&
				existing.Status == domain.AdoptionRequestStatusPending {
				return repository.ErrDuplicatePendingRequest
			}
		}
	}
	request.UpdatedAt = time.Now()
	r.byID[request.ID] = *request
	return nil
}

func (r *AdoptionRequestRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *AdoptionRequestRepo) GetByID(_ context.Context, id string) (*domain.AdoptionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	request, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &request, nil
}

func (r *AdoptionRequestRepo) List(_ context.Context) ([]domain.AdoptionRequest, error) {
	return r.listWhere(func(domain.AdoptionRequest) bool { return true }), nil
}

func (r *AdoptionRequestRepo) ListByUser(_ context.Context, userID string) ([]domain.AdoptionRequest, error) {
	return r.listWhere(func(request domain.AdoptionRequest) bool {
		return request.UserID == userID
	}), nil
}

func (r *AdoptionRequestRepo) HasPending(_ context.Context, petID, userID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, request := range r.byID {
		if request.PetID == petID && request.UserID == userID &&
			request.Status == domain.AdoptionRequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

// RemoveByPet drops all requests referencing the pet. It backs the pet
// repository's cascading delete.
func (r *AdoptionRequestRepo) RemoveByPet(petID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, request := range r.byID {
		if request.PetID == petID {
			delete(r.byID, id)
		}
	}
}

func (r *AdoptionRequestRepo) listWhere(match func(domain.AdoptionRequest) bool) []domain.AdoptionRequest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.AdoptionRequest, 0)
	for _, request := range r.byID {
		if match(request) {
			out = append(out, request)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
