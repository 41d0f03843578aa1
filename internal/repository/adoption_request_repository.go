package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/adoption-service/internal/domain"
)

// AdoptionRequestRepository encapsulates adoption request persistence.
type AdoptionRequestRepository interface {
	Create(ctx context.Context, request *domain.AdoptionRequest) error
	Update(ctx context.Context, request *domain.AdoptionRequest) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.AdoptionRequest, error)
	List(ctx context.Context) ([]domain.AdoptionRequest, error)
	ListByUser(ctx context.Context, userID string) ([]domain.AdoptionRequest, error)
	HasPending(ctx context.Context, petID, userID string) (bool, error)
}

type adoptionRequestRepository struct {
	pool *pgxpool.Pool
}

// NewAdoptionRequestRepository instantiates repository.
func NewAdoptionRequestRepository(pool *pgxpool.Pool) AdoptionRequestRepository {
	return &adoptionRequestRepository{pool: pool}
}

func (r *adoptionRequestRepository) Create(ctx context.Context, request *domain.AdoptionRequest) error {
	const query = `
        INSERT INTO adoption_requests (pet_id, user_id, address, phone, application, status, reject_reason)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query,
		request.PetID,
		request.UserID,
		request.Address,
		request.Phone,
		request.Application,
		request.Status,
		request.RejectReason,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)
	return translateUnique(err)
}

func (r *adoptionRequestRepository) Update(ctx context.Context, request *domain.AdoptionRequest) error {
	const query = `
        UPDATE adoption_requests SET pet_id=$1, user_id=$2, address=$3, phone=$4, application=$5,
            status=$6, reject_reason=$7, updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		request.PetID,
		request.UserID,
		request.Address,
		request.Phone,
		request.Application,
		request.Status,
		request.RejectReason,
		request.ID,
	)
	if err != nil {
		return translateLookup(translateUnique(err))
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adoptionRequestRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM adoption_requests WHERE id=$1`, id)
	if err != nil {
		return translateLookup(err)
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *adoptionRequestRepository) GetByID(ctx context.Context, id string) (*domain.AdoptionRequest, error) {
	const query = `
        SELECT id, pet_id, user_id, address, phone, application, status, reject_reason, created_at, updated_at
        FROM adoption_requests WHERE id=$1`
	var request domain.AdoptionRequest
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&request.ID,
		&request.PetID,
		&request.UserID,
		&request.Address,
		&request.Phone,
		&request.Application,
		&request.Status,
		&request.RejectReason,
		&request.CreatedAt,
		&request.UpdatedAt,
	); err != nil {
		return nil, translateLookup(err)
	}
	return &request, nil
}

func (r *adoptionRequestRepository) List(ctx context.Context) ([]domain.AdoptionRequest, error) {
	const query = `
        SELECT id, pet_id, user_id, address, phone, application, status, reject_reason, created_at, updated_at
        FROM adoption_requests ORDER BY created_at`
	return r.fetchMany(ctx, query)
}

func (r *adoptionRequestRepository) ListByUser(ctx context.Context, userID string) ([]domain.AdoptionRequest, error) {
	const query = `
        SELECT id, pet_id, user_id, address, phone, application, status, reject_reason, created_at, updated_at
        FROM adoption_requests WHERE user_id=$1 ORDER BY created_at`
	return r.fetchMany(ctx, query, userID)
}

func (r *adoptionRequestRepository) HasPending(ctx context.Context, petID, userID string) (bool, error) {
	const query = `
        SELECT EXISTS(SELECT 1 FROM adoption_requests WHERE pet_id=$1 AND user_id=$2 AND status=$3)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, petID, userID, domain.AdoptionRequestStatusPending).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *adoptionRequestRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.AdoptionRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AdoptionRequest
	for rows.Next() {
		var request domain.AdoptionRequest
		if err := rows.Scan(
			&request.ID,
			&request.PetID,
			&request.UserID,
			&request.Address,
			&request.Phone,
			&request.Application,
			&request.Status,
			&request.RejectReason,
			&request.CreatedAt,
			&request.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}
