package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/adoption-service/internal/domain"
)

// AdoptionOfferRepository encapsulates adoption offer persistence.
type AdoptionOfferRepository interface {
	Create(ctx context.Context, offer *domain.AdoptionOffer) error
	Update(ctx context.Context, offer *domain.AdoptionOffer) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.AdoptionOffer, error)
	GetByPetID(ctx context.Context, petID string) (*domain.AdoptionOffer, error)
	List(ctx context.Context) ([]domain.AdoptionOffer, error)
	ListByStatus(ctx context.Context, status domain.AdoptionOfferStatus) ([]domain.AdoptionOffer, error)
}

type adoptionOfferRepository struct {
	pool *pgxpool.Pool
}

// NewAdoptionOfferRepository instantiates repository.
func NewAdoptionOfferRepository(pool *pgxpool.Pool) AdoptionOfferRepository {
	return &adoptionOfferRepository{pool: pool}
}

func (r *adoptionOfferRepository) Create(ctx context.Context, offer *domain.AdoptionOffer) error {
	const query = `
        INSERT INTO adoption_offers (pet_id, title, headline, status)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		offer.PetID,
		offer.Title,
		offer.Headline,
		offer.Status,
	).Scan(&offer.ID, &offer.CreatedAt, &offer.UpdatedAt)
	return translateUnique(err)
}

func (r *adoptionOfferRepository) Update(ctx context.Context, offer *domain.AdoptionOffer) error {
	const query = `
        UPDATE adoption_offers SET pet_id=$1, title=$2, headline=$3, status=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		offer.PetID,
		offer.Title,
		offer.Headline,
		offer.Status,
		offer.ID,
	)
	if err != nil {
		return translateLookup(translateUnique(err))
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adoptionOfferRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM adoption_offers WHERE id=$1`, id)
	if err != nil {
		return translateLookup(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adoptionOfferRepository) GetByID(ctx context.Context, id string) (*domain.AdoptionOffer, error) {
	const query = `
        SELECT id, pet_id, title, headline, status, created_at, updated_at
        FROM adoption_offers WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *adoptionOfferRepository) GetByPetID(ctx context.Context, petID string) (*domain.AdoptionOffer, error) {
	const query = `
        SELECT id, pet_id, title, headline, status, created_at, updated_at
        FROM adoption_offers WHERE pet_id=$1`
	return r.fetchSingle(ctx, query, petID)
}

func (r *adoptionOfferRepository) List(ctx context.Context) ([]domain.AdoptionOffer, error) {
	const query = `
        SELECT id, pet_id, title, headline, status, created_at, updated_at
        FROM adoption_offers ORDER BY created_at`
	return r.fetchMany(ctx, query)
}

func (r *adoptionOfferRepository) ListByStatus(ctx context.Context, status domain.AdoptionOfferStatus) ([]domain.AdoptionOffer, error) {
	const query = `
        SELECT id, pet_id, title, headline, status, created_at, updated_at
        FROM adoption_offers WHERE status=$1 ORDER BY created_at`
	return r.fetchMany(ctx, query, status)
}

func (r *adoptionOfferRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.AdoptionOffer, error) {
	var offer domain.AdoptionOffer
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&offer.ID,
		&offer.PetID,
		&offer.Title,
		&offer.Headline,
		&offer.Status,
		&offer.CreatedAt,
		&offer.UpdatedAt,
	); err != nil {
		return nil, translateLookup(err)
	}
	return &offer, nil
}

func (r *adoptionOfferRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.AdoptionOffer, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AdoptionOffer
	for rows.Next() {
		var offer domain.AdoptionOffer
		if err := rows.Scan(
			&offer.ID,
			&offer.PetID,
			&offer.Title,
			&offer.Headline,
			&offer.Status,
			&offer.CreatedAt,
			&offer.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, offer)
	}
	return result, rows.Err()
}
