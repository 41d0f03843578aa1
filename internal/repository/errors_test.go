package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateLookup(t *testing.T) {
	invalidUUID := &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}
	assert.ErrorIs(t, translateLookup(invalidUUID), ErrNotFound)
	assert.ErrorIs(t, translateLookup(fmt.Errorf("query: %w", invalidUUID)), ErrNotFound)

	other := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.Equal(t, error(other), translateLookup(other))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateLookup(plain))
	assert.Nil(t, translateLookup(nil))
}

func TestTranslateUnique(t *testing.T) {
	for constraint, want := range map[string]error{
		"users_email_key":                  ErrEmailTaken,
		"adoption_offers_pet_id_key":       ErrOfferExists,
		"adoption_requests_pending_unique": ErrDuplicatePendingRequest,
	} {
		pgErr := &pgconn.PgError{Code: "23505", ConstraintName: constraint}
		assert.ErrorIs(t, translateUnique(pgErr), want, constraint)
	}

	unknownConstraint := &pgconn.PgError{Code: "23505", ConstraintName: "something_else"}
	assert.Equal(t, error(unknownConstraint), translateUnique(unknownConstraint))

	notUnique := &pgconn.PgError{Code: "22P02"}
	assert.Equal(t, error(notUnique), translateUnique(notUnique))
	assert.Nil(t, translateUnique(nil))
}
