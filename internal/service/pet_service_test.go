package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/repository"
	"github.com/spec-kit/adoption-service/internal/repository/memory"
	"github.com/spec-kit/adoption-service/internal/storage"
)

func newPetService(t *testing.T) (*PetService, repository.PetRepository) {
	t.Helper()
	photos, err := storage.NewPhotoStore(t.TempDir(), "http://localhost:3000")
	require.NoError(t, err)
	pets := memory.NewPetRepository()
	return NewPetService(pets, photos), pets
}

func TestCreatePetDefaultsToTransit(t *testing.T) {
	svc, _ := newPetService(t)

	pet, err := svc.CreatePet(context.Background(), PetCreateInput{Name: "Rex"})
	require.NoError(t, err)
	assert.Equal(t, domain.PetStatusTransit, pet.Status)
	assert.NotEmpty(t, pet.ID)
	assert.Nil(t, pet.Photo)
}

func TestCreatePetHonorsSuppliedFields(t *testing.T) {
	svc, _ := newPetService(t)

	pet, err := svc.CreatePet(context.Background(), PetCreateInput{
		Name:   "Whiskers",
		Status: strPtr("adopted"),
		Age:    intPtr(3),
		Type:   strPtr("cat"),
		Breed:  strPtr("siamese"),
		Size:   strPtr("small"),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PetStatusAdopted, pet.Status)
	require.NotNil(t, pet.Type)
	assert.Equal(t, domain.PetTypeCat, *pet.Type)
	require.NotNil(t, pet.Size)
	assert.Equal(t, domain.PetSizeSmall, *pet.Size)
	require.NotNil(t, pet.Age)
	assert.Equal(t, 3, *pet.Age)
}

func TestCreatePetValidation(t *testing.T) {
	svc, _ := newPetService(t)

	_, err := svc.CreatePet(context.Background(), PetCreateInput{
		Status: strPtr("lost"),
		Type:   strPtr("bird"),
		Size:   strPtr("huge"),
	})
	domainErr := asDomainError(t, err)
	assert.Equal(t, http.StatusUnprocessableEntity, domainErr.HTTPStatus)
	assert.Contains(t, domainErr.Fields["name"], "The name field is required.")
	assert.Contains(t, domainErr.Fields["status"], "The selected status is invalid.")
	assert.Contains(t, domainErr.Fields["type"], "The selected type is invalid.")
	assert.Contains(t, domainErr.Fields["size"], "The selected size is invalid.")
}

func TestGetPetNotFound(t *testing.T) {
	svc, _ := newPetService(t)

	_, err := svc.GetPet(context.Background(), "missing-id")
	domainErr := asDomainError(t, err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	assert.Equal(t, "Pet not found", domainErr.Message)
}

func TestUpdatePetKeepsStatusWhenNotSupplied(t *testing.T) {
	svc, _ := newPetService(t)
	ctx := context.Background()

	pet, err := svc.CreatePet(ctx, PetCreateInput{Name: "Rex", Status: strPtr("adopted")})
	require.NoError(t, err)

	updated, err := svc.UpdatePet(ctx, pet.ID, PetUpdateInput{Name: strPtr("Rexy")})
	require.NoError(t, err)
	assert.Equal(t, "Rexy", updated.Name)
	assert.Equal(t, domain.PetStatusAdopted, updated.Status)
}

func TestUpdatePetChangesStatusWhenSupplied(t *testing.T) {
	svc, _ := newPetService(t)
	ctx := context.Background()

	pet, err := svc.CreatePet(ctx, PetCreateInput{Name: "Rex"})
	require.NoError(t, err)

	updated, err := svc.UpdatePet(ctx, pet.ID, PetUpdateInput{Status: strPtr("deceased")})
	require.NoError(t, err)
	assert.Equal(t, domain.PetStatusDeceased, updated.Status)
}

func TestUpdatePetNotFound(t *testing.T) {
	svc, _ := newPetService(t)

	_, err := svc.UpdatePet(context.Background(), "missing-id", PetUpdateInput{Name: strPtr("Rex")})
	domainErr := asDomainError(t, err)
	assert.Equal(t, "Pet not found", domainErr.Message)
}

func TestDeletePet(t *testing.T) {
	svc, pets := newPetService(t)
	ctx := context.Background()

	pet, err := svc.CreatePet(ctx, PetCreateInput{Name: "Rex"})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePet(ctx, pet.ID))

	_, err = pets.GetByID(ctx, pet.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = svc.DeletePet(ctx, pet.ID)
	domainErr := asDomainError(t, err)
	assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
}
