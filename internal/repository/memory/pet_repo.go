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

// PetDependent removes rows referencing a deleted pet. It stands in for the
// schema's ON DELETE CASCADE.
type PetDependent interface {
	RemoveByPet(petID string)
}

// PetRepo is an in-memory pet repository.
type PetRepo struct {
	mu         sync.RWMutex
	byID       map[string]domain.Pet
	dependents []PetDependent
}

// NewPetRepository returns an empty in-memory pet repository. Dependents are
// cleaned up when a pet is deleted.
func NewPetRepository(dependents ...PetDependent) *PetRepo {
	return &PetRepo{byID: make(map[string]domain.Pet), dependents: dependents}
}

func (r *PetRepo) Create(_ context.Context, pet *domain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pet.ID = uuid.NewString()
	now := time.Now()
	pet.CreatedAt = now
	pet.UpdatedAt = now
	r.byID[pet.ID] = *pet
	return nil
}

func (r *PetRepo) Update(_ context.Context, pet *domain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[pet.ID]; !ok {
		return repository.ErrNotFound
	}
	pet.UpdatedAt = time.Now()
	r.byID[pet.ID] = *pet
	return nil
}

func (r *PetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	if _, ok := r.byID[id]; !ok {
		r.mu.Unlock()
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	r.mu.Unlock()

	for _, dep := range r.dependents {
		dep.RemoveByPet(id)
	}
	return nil
}

func (r *PetRepo) GetByID(_ context.Context, id string) (*domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pet, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &pet, nil
}

func (r *PetRepo) List(_ context.Context) ([]domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Pet, 0, len(r.byID))
	for _, pet := range r.byID {
		out = append(out, pet)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
