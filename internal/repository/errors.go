package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a lookup by id or key misses.
var ErrNotFound = pgx.ErrNoRows

// Uniqueness violations surfaced by inserts and updates. The database
// constraints are the authoritative guard; service-level pre-checks only
// exist to produce friendlier messages ahead of the race.
var (
	ErrEmailTaken              = errors.New("email already registered")
	ErrOfferExists             = errors.New("pet already has an adoption offer")
	ErrDuplicatePendingRequest = errors.New("pending adoption request already exists")
)

// translateLookup maps invalid-text-representation errors (22P02, raised when
// a malformed id fails the uuid cast) onto ErrNotFound. An id that cannot be
// a uuid identifies no row, same as a well-formed id that misses.
func translateLookup(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "22P02" {
		return ErrNotFound
	}
	return err
}

// translateUnique maps postgres unique-violation errors (23505) onto the
// sentinel matching the violated constraint.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch pgErr.ConstraintName {
	case "users_email_key":
		return ErrEmailTaken
	case "adoption_offers_pet_id_key":
		return ErrOfferExists
	case "adoption_requests_pending_unique":
		return ErrDuplicatePendingRequest
	}
	return err
}
