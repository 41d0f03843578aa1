package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/repository"
	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func asDomainError(t *testing.T, err error) *apperrors.DomainError {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr
}

func seedUser(t *testing.T, users repository.UserRepository, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "irrelevant",
		Role:         domain.UserRoleUser,
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func seedPet(t *testing.T, pets repository.PetRepository, status domain.PetStatus) *domain.Pet {
	t.Helper()
	pet := &domain.Pet{Name: "Rex", Status: status}
	require.NoError(t, pets.Create(context.Background(), pet))
	return pet
}
