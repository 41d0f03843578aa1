package handlers

import (
	"github.com/spec-kit/adoption-service/internal/api/dto"
	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/service"
)

func userResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func petResponse(pets *service.PetService, pet *domain.Pet) dto.PetResponse {
	return dto.PetResponse{
		ID:        pet.ID,
		Name:      pet.Name,
		Photo:     pet.Photo,
		PhotoURL:  pets.PhotoURL(pet),
		Status:    pet.Status,
		Age:       pet.Age,
		Type:      pet.Type,
		Breed:     pet.Breed,
		Size:      pet.Size,
		CreatedAt: pet.CreatedAt,
		UpdatedAt: pet.UpdatedAt,
	}
}

func petSummary(pets *service.PetService, pet *domain.Pet) *dto.PetSummary {
	if pet == nil {
		return nil
	}
	return &dto.PetSummary{
		ID:       pet.ID,
		Name:     pet.Name,
		PhotoURL: pets.PhotoURL(pet),
		Status:   pet.Status,
		Age:      pet.Age,
		Type:     pet.Type,
		Breed:    pet.Breed,
		Size:     pet.Size,
	}
}

func adoptionRequestResponse(pets *service.PetService, detail *service.AdoptionRequestDetail) dto.AdoptionRequestResponse {
	resp := dto.AdoptionRequestResponse{
		ID:           detail.Request.ID,
		Address:      detail.Request.Address,
		Phone:        detail.Request.Phone,
		Application:  detail.Request.Application,
		Status:       detail.Request.Status,
		RejectReason: detail.Request.RejectReason,
		Pet:          petSummary(pets, detail.Pet),
		CreatedAt:    detail.Request.CreatedAt,
		UpdatedAt:    detail.Request.UpdatedAt,
	}
	if detail.User != nil {
		user := userResponse(detail.User)
		resp.User = &user
	}
	return resp
}

func adoptionOfferResponse(pets *service.PetService, detail *service.AdoptionOfferDetail) dto.AdoptionOfferResponse {
	return dto.AdoptionOfferResponse{
		ID:        detail.Offer.ID,
		Title:     detail.Offer.Title,
		Headline:  detail.Offer.Headline,
		Status:    detail.Offer.Status,
		Pet:       petSummary(pets, detail.Pet),
		CreatedAt: detail.Offer.CreatedAt,
		UpdatedAt: detail.Offer.UpdatedAt,
	}
}
