package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-service/internal/api/dto"
	"github.com/spec-kit/adoption-service/internal/auth"
	"github.com/spec-kit/adoption-service/internal/service"
	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

// AdoptionRequestsHandler manages adoption request endpoints.
type AdoptionRequestsHandler struct {
	requests *service.AdoptionRequestService
	pets     *service.PetService
}

// NewAdoptionRequestsHandler constructs handler.
func NewAdoptionRequestsHandler(requestService *service.AdoptionRequestService, petService *service.PetService) *AdoptionRequestsHandler {
	return &AdoptionRequestsHandler{requests: requestService, pets: petService}
}

// ListRequests handles GET /adoption-requests (admin).
func (h *AdoptionRequestsHandler) ListRequests(c *fiber.Ctx) error {
	details, err := h.requests.ListRequests(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption requests retrieved successfully",
		"data":    h.responses(details),
	})
}

// CreateRequest handles POST /adoption-requests (admin; user_id in payload).
func (h *AdoptionRequestsHandler) CreateRequest(c *fiber.Ctx) error {
	var req dto.CreateAdoptionRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{
			"body": {"The request body must be valid JSON."},
		})
	}

	detail, err := h.requests.CreateRequest(c.Context(), service.AdoptionRequestCreateInput{
		PetID:       req.PetID,
		UserID:      req.UserID,
		Address:     req.Address,
		Phone:       req.Phone,
		Application: req.Application,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Adoption request created successfully",
		"data":    adoptionRequestResponse(h.pets, detail),
	})
}

// ListMine handles GET /adoption-requests/mine.
func (h *AdoptionRequestsHandler) ListMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}
	details, err := h.requests.ListRequestsByUser(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption requests retrieved successfully",
		"data":    h.responses(details),
	})
}

// CreateMine handles POST /adoption-requests/mine; the applicant is the
// authenticated user.
func (h *AdoptionRequestsHandler) CreateMine(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("Unauthorized")
	}

	var req dto.CreateAdoptionRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{
			"body": {"The request body must be valid JSON."},
		})
	}

	detail, err := h.requests.CreateRequest(c.Context(), service.AdoptionRequestCreateInput{
		PetID:       req.PetID,
		UserID:      principal.User.ID,
		Address:     req.Address,
		Phone:       req.Phone,
		Application: req.Application,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Adoption request created successfully",
		"data":    adoptionRequestResponse(h.pets, detail),
	})
}

// GetRequest handles GET /adoption-requests/:id.
func (h *AdoptionRequestsHandler) GetRequest(c *fiber.Ctx) error {
	detail, err := h.requests.GetRequest(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption request retrieved successfully",
		"data":    adoptionRequestResponse(h.pets, detail),
	})
}

// UpdateRequest handles PUT /adoption-requests/:id.
func (h *AdoptionRequestsHandler) UpdateRequest(c *fiber.Ctx) error {
	var req dto.UpdateAdoptionRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{
			"body": {"The request body must be valid JSON."},
		})
	}

	detail, err := h.requests.UpdateRequest(c.Context(), c.Params("id"), service.AdoptionRequestUpdateInput{
		PetID:       req.PetID,
		UserID:      req.UserID,
		Address:     req.Address,
		Phone:       req.Phone,
		Application: req.Application,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption request updated successfully",
		"data":    adoptionRequestResponse(h.pets, detail),
	})
}

// DeleteRequest handles DELETE /adoption-requests/:id.
func (h *AdoptionRequestsHandler) DeleteRequest(c *fiber.Ctx) error {
	if err := h.requests.DeleteRequest(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Adoption request deleted successfully"})
}

// Approve handles POST /adoption-requests/:id/approve.
func (h *AdoptionRequestsHandler) Approve(c *fiber.Ctx) error {
	request, err := h.requests.Approve(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption request approved successfully",
		"data": dto.AdoptionRequestStatusResponse{
			ID:     request.ID,
			Status: request.Status,
		},
	})
}

// Reject handles POST /adoption-requests/:id/reject.
func (h *AdoptionRequestsHandler) Reject(c *fiber.Ctx) error {
	var req dto.RejectAdoptionRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{
			"body": {"The request body must be valid JSON."},
		})
	}

	request, err := h.requests.Reject(c.Context(), c.Params("id"), req.RejectReason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption request rejected successfully",
		"data": dto.AdoptionRequestStatusResponse{
			ID:           request.ID,
			Status:       request.Status,
			RejectReason: request.RejectReason,
		},
	})
}

func (h *AdoptionRequestsHandler) responses(details []service.AdoptionRequestDetail) []dto.AdoptionRequestResponse {
	items := make([]dto.AdoptionRequestResponse, 0, len(details))
	for i := range details {
		items = append(items, adoptionRequestResponse(h.pets, &details[i]))
	}
	return items
}
