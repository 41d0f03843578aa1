package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-service/internal/api/dto"
	"github.com/spec-kit/adoption-service/internal/service"
	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

// AdoptionOffersHandler manages adoption offer endpoints.
type AdoptionOffersHandler struct {
	offers *service.AdoptionOfferService
	pets   *service.PetService
}

// NewAdoptionOffersHandler constructs handler.
func NewAdoptionOffersHandler(offerService *service.AdoptionOfferService, petService *service.PetService) *AdoptionOffersHandler {
	return &AdoptionOffersHandler{offers: offerService, pets: petService}
}

// ListOffers handles GET /adoption-offers.
func (h *AdoptionOffersHandler) ListOffers(c *fiber.Ctx) error {
	details, err := h.offers.ListOffers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption offers retrieved successfully",
		"data":    h.responses(details),
	})
}

// ListPublished handles GET /adoption-offers/published (public).
func (h *AdoptionOffersHandler) ListPublished(c *fiber.Ctx) error {
	details, err := h.offers.ListPublishedOffers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Published adoption offers retrieved successfully",
		"data":    h.responses(details),
	})
}

// CreateOffer handles POST /adoption-offers.
func (h *AdoptionOffersHandler) CreateOffer(c *fiber.Ctx) error {
	var req dto.CreateAdoptionOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{
			"body": {"The request body must be valid JSON."},
		})
	}

	detail, err := h.offers.CreateOffer(c.Context(), service.AdoptionOfferCreateInput{
		PetID:    req.PetID,
		Title:    req.Title,
		Headline: req.Headline,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Adoption offer created successfully",
		"data":    adoptionOfferResponse(h.pets, detail),
	})
}

// GetOffer handles GET /adoption-offers/:id.
func (h *AdoptionOffersHandler) GetOffer(c *fiber.Ctx) error {
	detail, err := h.offers.GetOffer(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption offer retrieved successfully",
		"data":    adoptionOfferResponse(h.pets, detail),
	})
}

// UpdateOffer handles PUT /adoption-offers/:id.
func (h *AdoptionOffersHandler) UpdateOffer(c *fiber.Ctx) error {
	var req dto.UpdateAdoptionOfferRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(map[string][]string{
			"body": {"The request body must be valid JSON."},
		})
	}

	detail, err := h.offers.UpdateOffer(c.Context(), c.Params("id"), service.AdoptionOfferUpdateInput{
		PetID:    req.PetID,
		Title:    req.Title,
		Headline: req.Headline,
		Status:   req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption offer updated successfully",
		"data":    adoptionOfferResponse(h.pets, detail),
	})
}

// DeleteOffer handles DELETE /adoption-offers/:id.
func (h *AdoptionOffersHandler) DeleteOffer(c *fiber.Ctx) error {
	if err := h.offers.DeleteOffer(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Adoption offer deleted successfully"})
}

// Publish handles POST /adoption-offers/:id/publish.
func (h *AdoptionOffersHandler) Publish(c *fiber.Ctx) error {
	offer, err := h.offers.Publish(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption offer published successfully",
		"data":    fiber.Map{"id": offer.ID, "status": offer.Status},
	})
}

// Draft handles POST /adoption-offers/:id/draft.
func (h *AdoptionOffersHandler) Draft(c *fiber.Ctx) error {
	offer, err := h.offers.Draft(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Adoption offer moved to draft successfully",
		"data":    fiber.Map{"id": offer.ID, "status": offer.Status},
	})
}

func (h *AdoptionOffersHandler) responses(details []service.AdoptionOfferDetail) []dto.AdoptionOfferResponse {
	items := make([]dto.AdoptionOfferResponse, 0, len(details))
	for i := range details {
		items = append(items, adoptionOfferResponse(h.pets, &details[i]))
	}
	return items
}
