package service

import (
	"context"
	"errors"

	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/events"
	"github.com/spec-kit/adoption-service/internal/repository"
	"github.com/spec-kit/adoption-service/internal/validation"
	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

const msgDuplicatePendingRequest = "User already has a pending adoption request for this pet"

// AdoptionRequestService coordinates adoption request workflows.
type AdoptionRequestService struct {
	requests   repository.AdoptionRequestRepository
	pets       repository.PetRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAdoptionRequestService constructs the service.
func NewAdoptionRequestService(
	requests repository.AdoptionRequestRepository,
	pets repository.PetRepository,
	users repository.UserRepository,
	dispatcher events.Dispatcher,
) *AdoptionRequestService {
	return &AdoptionRequestService{requests: requests, pets: pets, users: users, dispatcher: dispatcher}
}

// AdoptionRequestCreateInput carries the creation payload. UserID is taken
// from the payload on the admin path and from the token on the self path.
type AdoptionRequestCreateInput struct {
	PetID       string
	UserID      string
	Address     string
	Phone       string
	Application string
	Status      *string
}

// AdoptionRequestUpdateInput carries a partial update; nil fields are left
// unchanged.
type AdoptionRequestUpdateInput struct {
	PetID       *string
	UserID      *string
	Address     *string
	Phone       *string
	Application *string
	Status      *string
}

// AdoptionRequestDetail bundles a request with its loaded associations for
// response shaping.
type AdoptionRequestDetail struct {
	Request domain.AdoptionRequest
	Pet     *domain.Pet
	User    *domain.User
}

// CreateRequest validates the payload, enforces the single-pending-request
// rule, and persists the request. The pre-check yields the friendly conflict;
// the partial unique index backs it authoritatively.
func (s *AdoptionRequestService) CreateRequest(ctx context.Context, input AdoptionRequestCreateInput) (*AdoptionRequestDetail, error) {
	v := validation.New()
	v.Require("pet_id", input.PetID)
	v.Require("user_id", input.UserID)
	v.Require("address", input.Address)
	v.MaxLen("address", input.Address, 255)
	v.Require("phone", input.Phone)
	v.MaxLen("phone", input.Phone, 20)
	v.Require("application", input.Application)
	if input.Status != nil {
		v.Enum("status", *input.Status, domain.ValidAdoptionRequestStatus)
	}

	var pet *domain.Pet
	var user *domain.User
	if v.Valid() {
		var err error
		pet, err = s.pets.GetByID(ctx, input.PetID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				v.Add("pet_id", "The selected pet_id is invalid.")
			} else {
				return nil, err
			}
		}
		user, err = s.users.GetByID(ctx, input.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				v.Add("user_id", "The selected user_id is invalid.")
			} else {
				return nil, err
			}
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	pending, err := s.requests.HasPending(ctx, input.PetID, input.UserID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperrors.NewConflict(msgDuplicatePendingRequest)
	}

	request := &domain.AdoptionRequest{
		PetID:       input.PetID,
		UserID:      input.UserID,
		Address:     input.Address,
		Phone:       input.Phone,
		Application: input.Application,
		Status:      domain.AdoptionRequestStatusPending,
	}
	if input.Status != nil {
		request.Status = domain.AdoptionRequestStatus(*input.Status)
	}

	if err := s.requests.Create(ctx, request); err != nil {
		if errors.Is(err, repository.ErrDuplicatePendingRequest) {
			return nil, apperrors.NewConflict(msgDuplicatePendingRequest)
		}
		return nil, err
	}

	s.publishRequestEvent(ctx, events.EventAdoptionRequestCreated, request)
	return &AdoptionRequestDetail{Request: *request, Pet: pet, User: user}, nil
}

// UpdateRequest applies a partial update with existence checks for any
// re-pointed references.
func (s *AdoptionRequestService) UpdateRequest(ctx context.Context, id string, input AdoptionRequestUpdateInput) (*AdoptionRequestDetail, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Adoption request")
		}
		return nil, err
	}

	v := validation.New()
	if input.PetID != nil {
		v.Require("pet_id", *input.PetID)
	}
	if input.UserID != nil {
		v.Require("user_id", *input.UserID)
	}
	if input.Address != nil {
		v.Require("address", *input.Address)
		v.MaxLen("address", *input.Address, 255)
	}
	if input.Phone != nil {
		v.Require("phone", *input.Phone)
		v.MaxLen("phone", *input.Phone, 20)
	}
	if input.Application != nil {
		v.Require("application", *input.Application)
	}
	if input.Status != nil {
		v.Enum("status", *input.Status, domain.ValidAdoptionRequestStatus)
	}
	if v.Valid() && input.PetID != nil {
		if _, err := s.pets.GetByID(ctx, *input.PetID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				v.Add("pet_id", "The selected pet_id is invalid.")
			} else {
				return nil, err
			}
		}
	}
	if v.Valid() && input.UserID != nil {
		if _, err := s.users.GetByID(ctx, *input.UserID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				v.Add("user_id", "The selected user_id is invalid.")
			} else {
				return nil, err
			}
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if input.PetID != nil {
		request.PetID = *input.PetID
	}
	if input.UserID != nil {
		request.UserID = *input.UserID
	}
	if input.Address != nil {
		request.Address = *input.Address
	}
	if input.Phone != nil {
		request.Phone = *input.Phone
	}
	if input.Application != nil {
		request.Application = *input.Application
	}
	if input.Status != nil {
		request.Status = domain.AdoptionRequestStatus(*input.Status)
	}

	if err := s.requests.Update(ctx, request); err != nil {
		if errors.Is(err, repository.ErrDuplicatePendingRequest) {
			return nil, apperrors.NewConflict(msgDuplicatePendingRequest)
		}
		return nil, err
	}
	return s.loadDetail(ctx, request)
}

// Approve sets the request status to approved. Callable from any state and
// idempotent.
func (s *AdoptionRequestService) Approve(ctx context.Context, id string) (*domain.AdoptionRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Adoption request")
		}
		return nil, err
	}

	request.Status = domain.AdoptionRequestStatusApproved
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}
	s.publishRequestEvent(ctx, events.EventAdoptionRequestApproved, request)
	return request, nil
}

// Reject sets the request status to rejected and stores the reason. The
// reason is required, 1 to 1000 characters.
func (s *AdoptionRequestService) Reject(ctx context.Context, id, rejectReason string) (*domain.AdoptionRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Adoption request")
		}
		return nil, err
	}

	v := validation.New()
	v.Require("reject_reason", rejectReason)
	v.MaxLen("reject_reason", rejectReason, 1000)
	if err := v.Err(); err != nil {
		return nil, err
	}

	request.Status = domain.AdoptionRequestStatusRejected
	request.RejectReason = &rejectReason
	if err := s.requests.Update(ctx, request); err != nil {
		return nil, err
	}
	s.publishRequestEvent(ctx, events.EventAdoptionRequestRejected, request)
	return request, nil
}

// GetRequest fetches a request with its associations.
func (s *AdoptionRequestService) GetRequest(ctx context.Context, id string) (*AdoptionRequestDetail, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFound("Adoption request")
		}
		return nil, err
	}
	return s.loadDetail(ctx, request)
}

// ListRequests returns all requests with associations (admin listing).
func (s *AdoptionRequestService) ListRequests(ctx context.Context) ([]AdoptionRequestDetail, error) {
	requests, err := s.requests.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.loadDetails(ctx, requests)
}

// ListRequestsByUser returns the calling user's requests with associations.
func (s *AdoptionRequestService) ListRequestsByUser(ctx context.Context, userID string) ([]AdoptionRequestDetail, error) {
	requests, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.loadDetails(ctx, requests)
}

// DeleteRequest removes a request.
func (s *AdoptionRequestService) DeleteRequest(ctx context.Context, id string) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NewNotFound("Adoption request")
		}
		return err
	}
	return nil
}

func (s *AdoptionRequestService) loadDetail(ctx context.Context, request *domain.AdoptionRequest) (*AdoptionRequestDetail, error) {
	detail := AdoptionRequestDetail{Request: *request}
	if pet, err := s.pets.GetByID(ctx, request.PetID); err == nil {
		detail.Pet = pet
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if user, err := s.users.GetByID(ctx, request.UserID); err == nil {
		detail.User = user
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return &detail, nil
}

func (s *AdoptionRequestService) loadDetails(ctx context.Context, requests []domain.AdoptionRequest) ([]AdoptionRequestDetail, error) {
	details := make([]AdoptionRequestDetail, 0, len(requests))
	for i := range requests {
		detail, err := s.loadDetail(ctx, &requests[i])
		if err != nil {
			return nil, err
		}
		details = append(details, *detail)
	}
	return details, nil
}

func (s *AdoptionRequestService) publishRequestEvent(ctx context.Context, eventType events.EventType, request *domain.AdoptionRequest) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, eventType, events.AdoptionRequestPayload{
		RequestID:    request.ID,
		PetID:        request.PetID,
		UserID:       request.UserID,
		Status:       request.Status,
		RejectReason: request.RejectReason,
	})
}
