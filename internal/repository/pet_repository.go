package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/adoption-service/internal/domain"
)

// PetRepository encapsulates pet persistence.
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	Update(ctx context.Context, pet *domain.Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Pet, error)
	List(ctx context.Context) ([]domain.Pet, error)
}

type petRepository struct {
	pool *pgxpool.Pool
}

// NewPetRepository instantiates repository.
func NewPetRepository(pool *pgxpool.Pool) PetRepository {
	return &petRepository{pool: pool}
}

func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	const query = `
        INSERT INTO pets (name, photo, status, age, type, breed, size)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		pet.Name,
		pet.Photo,
		pet.Status,
		pet.Age,
		pet.Type,
		pet.Breed,
		pet.Size,
	).Scan(&pet.ID, &pet.CreatedAt, &pet.UpdatedAt)
}

func (r *petRepository) Update(ctx context.Context, pet *domain.Pet) error {
	const query = `
        UPDATE pets SET name=$1, photo=$2, status=$3, age=$4, type=$5, breed=$6, size=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		pet.Name,
		pet.Photo,
		pet.Status,
		pet.Age,
		pet.Type,
		pet.Breed,
		pet.Size,
		pet.ID,
	)
	if err != nil {
		return translateLookup(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *petRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM pets WHERE id=$1`, id)
	if err != nil {
		return translateLookup(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *petRepository) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	const query = `
        SELECT id, name, photo, status, age, type, breed, size, created_at, updated_at
        FROM pets WHERE id=$1`
	var pet domain.Pet
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&pet.ID,
		&pet.Name,
		&pet.Photo,
		&pet.Status,
		&pet.Age,
		&pet.Type,
		&pet.Breed,
		&pet.Size,
		&pet.CreatedAt,
		&pet.UpdatedAt,
	); err != nil {
		return nil, translateLookup(err)
	}
	return &pet, nil
}

func (r *petRepository) List(ctx context.Context) ([]domain.Pet, error) {
	const query = `
        SELECT id, name, photo, status, age, type, breed, size, created_at, updated_at
        FROM pets ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Pet
	for rows.Next() {
		var pet domain.Pet
		if err := rows.Scan(
			&pet.ID,
			&pet.Name,
			&pet.Photo,
			&pet.Status,
			&pet.Age,
			&pet.Type,
			&pet.Breed,
			&pet.Size,
			&pet.CreatedAt,
			&pet.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, pet)
	}
	return result, rows.Err()
}
