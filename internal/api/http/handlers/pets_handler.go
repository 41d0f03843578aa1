package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-service/internal/api/dto"
	"github.com/spec-kit/adoption-service/internal/service"
	apperrors "github.com/spec-kit/adoption-service/pkg/util"
)

// PetsHandler manages pet CRUD endpoints.
type PetsHandler struct {
	pets *service.PetService
}

// NewPetsHandler constructs handler.
func NewPetsHandler(petService *service.PetService) *PetsHandler {
	return &PetsHandler{pets: petService}
}

// ListPets handles GET /pets.
func (h *PetsHandler) ListPets(c *fiber.Ctx) error {
	pets, err := h.pets.ListPets(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.PetResponse, 0, len(pets))
	for i := range pets {
		items = append(items, petResponse(h.pets, &pets[i]))
	}
	return c.JSON(fiber.Map{
		"message": "Pets retrieved successfully",
		"data":    items,
	})
}

// CreatePet handles POST /pets. The payload may be JSON or multipart with a
// photo file field.
func (h *PetsHandler) CreatePet(c *fiber.Ctx) error {
	input := service.PetCreateInput{}
	if isMultipart(c) {
		input.Name = c.FormValue("name")
		input.Status = formValue(c, "status")
		input.Type = formValue(c, "type")
		input.Breed = formValue(c, "breed")
		input.Size = formValue(c, "size")
		age, err := formIntValue(c, "age")
		if err != nil {
			return err
		}
		input.Age = age
		if file, err := c.FormFile("photo"); err == nil {
			input.Photo = file
		}
	} else {
		var req struct {
			Name   string  `json:"name"`
			Status *string `json:"status"`
			Age    *int    `json:"age"`
			Type   *string `json:"type"`
			Breed  *string `json:"breed"`
			Size   *string `json:"size"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError(map[string][]string{
				"body": {"The request body must be valid JSON."},
			})
		}
		input.Name = req.Name
		input.Status = req.Status
		input.Age = req.Age
		input.Type = req.Type
		input.Breed = req.Breed
		input.Size = req.Size
	}

	pet, err := h.pets.CreatePet(c.Context(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Pet created successfully",
		"data":    petResponse(h.pets, pet),
	})
}

// GetPet handles GET /pets/:id.
func (h *PetsHandler) GetPet(c *fiber.Ctx) error {
	pet, err := h.pets.GetPet(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Pet retrieved successfully",
		"data":    petResponse(h.pets, pet),
	})
}

// UpdatePet handles PUT /pets/:id with partial semantics.
func (h *PetsHandler) UpdatePet(c *fiber.Ctx) error {
	input := service.PetUpdateInput{}
	if isMultipart(c) {
		input.Name = formValue(c, "name")
		input.Status = formValue(c, "status")
		input.Type = formValue(c, "type")
		input.Breed = formValue(c, "breed")
		input.Size = formValue(c, "size")
		age, err := formIntValue(c, "age")
		if err != nil {
			return err
		}
		input.Age = age
		if file, err := c.FormFile("photo"); err == nil {
			input.Photo = file
		}
	} else {
		var req struct {
			Name        *string `json:"name"`
			Status      *string `json:"status"`
			Age         *int    `json:"age"`
			Type        *string `json:"type"`
			Breed       *string `json:"breed"`
			Size        *string `json:"size"`
			RemovePhoto bool    `json:"remove_photo"`
		}
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError(map[string][]string{
				"body": {"The request body must be valid JSON."},
			})
		}
		input.Name = req.Name
		input.Status = req.Status
		input.Age = req.Age
		input.Type = req.Type
		input.Breed = req.Breed
		input.Size = req.Size
		input.RemovePhoto = req.RemovePhoto
	}

	pet, err := h.pets.UpdatePet(c.Context(), c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Pet updated successfully",
		"data":    petResponse(h.pets, pet),
	})
}

// DeletePet handles DELETE /pets/:id.
func (h *PetsHandler) DeletePet(c *fiber.Ctx) error {
	if err := h.pets.DeletePet(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Pet deleted successfully"})
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm)
}

// formValue distinguishes an absent form field from an empty one so partial
// updates only touch supplied fields.
func formValue(c *fiber.Ctx, key string) *string {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formIntValue(c *fiber.Ctx, key string) (*int, error) {
	raw := formValue(c, key)
	if raw == nil {
		return nil, nil
	}
	parsed, err := strconv.Atoi(*raw)
	if err != nil {
		return nil, apperrors.NewValidationError(map[string][]string{
			key: {"The " + key + " field must be an integer."},
		})
	}
	return &parsed, nil
}
