package service

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/repository"
	"github.com/spec-kit/adoption-service/internal/storage"
	"github.com/spec-kit/adoption-service/internal/validation"
	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

// PetService coordinates pet CRUD and photo storage.
type PetService struct {
	pets   repository.PetRepository
	photos *storage.PhotoStore
}

// NewPetService constructs the service.
func NewPetService(pets repository.PetRepository, photos *storage.PhotoStore) *PetService {
	return &PetService{pets: pets, photos: photos}
}

// PetCreateInput carries the creation payload. Photo is the uploaded
// multipart file, if any.
type PetCreateInput struct {
	Name   string
	Status *string
	Age    *int
	Type   *string
	Breed  *string
	Size   *string
	Photo  *multipart.FileHeader
}

// PetUpdateInput carries a partial update; nil fields are left unchanged.
// RemovePhoto clears the stored photo without replacing it.
type PetUpdateInput struct {
	Name        *string
	Status      *string
	Age         *int
	Type        *string
	Breed       *string
	Size        *string
	Photo       *multipart.FileHeader
	RemovePhoto bool
}

// CreatePet validates and stores a new pet. Status defaults to transit.
func (s *PetService) CreatePet(ctx context.Context, input PetCreateInput) (*domain.Pet, error) {
	v := validation.New()
	v.Require("name", input.Name)
	v.MaxLen("name", input.Name, 255)
	if input.Status != nil {
		v.Enum("status", *input.Status, domain.ValidPetStatus)
	}
	if input.Type != nil {
		v.Enum("type", *input.Type, domain.ValidPetType)
	}
	if input.Size != nil {
		v.Enum("size", *input.Size, domain.ValidPetSize)
	}
	if input.Photo != nil && !storage.AllowedPhoto(input.Photo) {
		v.Add("photo", "The photo must be a jpg, jpeg or png image no larger than 2MB.")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	pet := &domain.Pet{
		Name:   input.Name,
		Status: domain.PetStatusTransit,
		Age:    input.Age,
		Breed:  input.Breed,
	}
	if input.Status != nil {
		pet.Status = domain.PetStatus(*input.Status)
	}
	if input.Type != nil {
		t := domain.PetType(*input.Type)
		pet.Type = &t
	}
	if input.Size != nil {
		sz := domain.PetSize(*input.Size)
		pet.Size = &sz
	}
	if input.Photo != nil {
		key, err := s.photos.Save(input.Photo)
		if err != nil {
			return nil, err
		}
		pet.Photo = &key
	}

	if err := s.pets.Create(ctx, pet); err != nil {
		if pet.Photo != nil {
			_ = s.photos.Delete(*pet.Photo)
		}
		return nil, err
	}
	return pet, nil
}

// UpdatePet applies a partial update. Status changes only when the payload
// supplies one; a replaced or removed photo releases the stored file.
func (s *PetService) UpdatePet(ctx context.Context, id string, input PetUpdateInput) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Pet")
		}
		return nil, err
	}

	v := validation.New()
	if input.Name != nil {
		v.Require("name", *input.Name)
		v.MaxLen("name", *input.Name, 255)
	}
	if input.Status != nil {
		v.Enum("status", *input.Status, domain.ValidPetStatus)
	}
	if input.Type != nil {
		v.Enum("type", *input.Type, domain.ValidPetType)
	}
	if input.Size != nil {
		v.Enum("size", *input.Size, domain.ValidPetSize)
	}
	if input.Photo != nil && !storage.AllowedPhoto(input.Photo) {
		v.Add("photo", "The photo must be a jpg, jpeg or png image no larger than 2MB.")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.Name != nil {
		pet.Name = *input.Name
	}
	if input.Status != nil {
		pet.Status = domain.PetStatus(*input.Status)
	}
	if input.Age != nil {
		pet.Age = input.Age
	}
	if input.Type != nil {
		t := domain.PetType(*input.Type)
		pet.Type = &t
	}
	if input.Breed != nil {
		pet.Breed = input.Breed
	}
	if input.Size != nil {
		sz := domain.PetSize(*input.Size)
		pet.Size = &sz
	}

	oldPhoto := ""
	if pet.Photo != nil {
		oldPhoto = *pet.Photo
	}
	switch {
	case input.Photo != nil:
		key, err := s.photos.Save(input.Photo)
		if err != nil {
			return nil, err
		}
		pet.Photo = &key
	case input.RemovePhoto:
		pet.Photo = nil
	}

	if err := s.pets.Update(ctx, pet); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Pet")
		}
		return nil, err
	}
	if oldPhoto != "" && (input.Photo != nil || input.RemovePhoto) {
		_ = s.photos.Delete(oldPhoto)
	}
	return pet, nil
}

// GetPet fetches a pet by id.
func (s *PetService) GetPet(ctx context.Context, id string) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Pet")
		}
		return nil, err
	}
	return pet, nil
}

// ListPets returns all pets.
func (s *PetService) ListPets(ctx context.Context) ([]domain.Pet, error) {
	return s.pets.List(ctx)
}

// DeletePet removes the pet and releases its stored photo. Requests and the
// offer referencing the pet are removed by the schema's cascading deletes.
func (s *PetService) DeletePet(ctx context.Context, id string) error {
	pet, err := s.pets.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Pet")
		}
		return err
	}
	if err := s.pets.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Pet")
		}
		return err
	}
	if pet.Photo != nil {
		_ = s.photos.Delete(*pet.Photo)
	}
	return nil
}

// PhotoURL resolves the public URL for a pet's photo, nil when unset.
func (s *PetService) PhotoURL(pet *domain.Pet) *string {
	if pet.Photo == nil {
		return nil
	}
	url := s.photos.URL(*pet.Photo)
	return &url
}
