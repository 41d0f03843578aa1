package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/adoption-service/internal/api/http/handlers"
	"github.com/spec-kit/adoption-service/internal/auth"
	"github.com/spec-kit/adoption-service/internal/cache"
	"github.com/spec-kit/adoption-service/internal/config"
	"github.com/spec-kit/adoption-service/internal/domain"
	"github.com/spec-kit/adoption-service/internal/events"
	"github.com/spec-kit/adoption-service/internal/observability"
	"github.com/spec-kit/adoption-service/internal/persistence"
	"github.com/spec-kit/adoption-service/internal/repository"
	"github.com/spec-kit/adoption-service/internal/repository/memory"
	"github.com/spec-kit/adoption-service/internal/service"
	"github.com/spec-kit/adoption-service/internal/storage"
)

type testEnv struct {
	app   *fiber.App
	users repository.UserRepository
	auth  *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithDenylist(t, auth.NewMemoryDenylist())
}

func newTestEnvWithDenylist(t *testing.T, denylist auth.TokenDenylist) *testEnv {
	t.Helper()

	users := memory.NewUserRepository()
	requests := memory.NewAdoptionRequestRepository()
	offers := memory.NewAdoptionOfferRepository()
	pets := memory.NewPetRepository(requests, offers)

	dispatcher := events.NewInMemoryDispatcher()

	photos, err := storage.NewPhotoStore(t.TempDir(), "http://localhost:3000")
	require.NoError(t, err)

	authService := service.NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 15,
		BcryptCost:            bcrypt.MinCost,
	}, users, denylist)
	petService := service.NewPetService(pets, photos)
	requestService := service.NewAdoptionRequestService(requests, pets, users, dispatcher)
	offerService := service.NewAdoptionOfferService(offers, pets, cache.NewOfferCache(nil), dispatcher)

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("adoption-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Users:          handlers.NewUsersHandler(authService),
		Pets:           handlers.NewPetsHandler(petService),
		Requests:       handlers.NewAdoptionRequestsHandler(requestService, petService),
		Offers:         handlers.NewAdoptionOffersHandler(offerService, petService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users, denylist),
	})

	return &testEnv{app: app, users: users, auth: authService}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp.StatusCode, payload
}

// registerUser creates an account through the API and returns its token.
func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()
	status, body := e.do(t, fiber.MethodPost, "/register", "", fiber.Map{
		"name":     "Test User",
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

// adminToken seeds an admin account directly and mints its token.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	hash, err := auth.HashPassword("password123", bcrypt.MinCost)
	require.NoError(t, err)
	admin := &domain.User{
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		Role:         domain.UserRoleAdmin,
	}
	require.NoError(t, e.users.Create(context.Background(), admin))
	token, _, err := e.auth.TokenManager().GenerateToken(admin.ID, admin.Role)
	require.NoError(t, err)
	return token
}

func (e *testEnv) createPet(t *testing.T, token string) string {
	t.Helper()
	status, body := e.do(t, fiber.MethodPost, "/pets", token, fiber.Map{"name": "Rex"})
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	return data["id"].(string)
}

func TestHealthLive(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alive", body["status"])
}

func TestRegisterLoginAndMe(t *testing.T) {
	env := newTestEnv(t)

	token := env.registerUser(t, "jane@example.com")

	status, body := env.do(t, fiber.MethodPost, "/login", "", fiber.Map{
		"email":    "jane@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["token"])

	status, body = env.do(t, fiber.MethodGet, "/user", token, nil)
	require.Equal(t, http.StatusOK, status)
	data := body["data"].(map[string]any)
	assert.Equal(t, "jane@example.com", data["email"])
	assert.Equal(t, "user", data["role"])
}

func TestRegisterValidationEnvelope(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodPost, "/register", "", fiber.Map{})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "Validation failed", body["message"])

	errs := body["errors"].(map[string]any)
	nameErrs := errs["name"].([]any)
	assert.Contains(t, nameErrs, "The name field is required.")
	assert.NotContains(t, body, "error")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodGet, "/pets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Missing authorization header", body["message"])

	status, body = env.do(t, fiber.MethodGet, "/pets", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body["message"])
}

type downDenylist struct{}

func (downDenylist) Revoke(context.Context, string, time.Time) error {
	return errors.New("redis unreachable")
}

func (downDenylist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis unreachable")
}

func TestAuthSurvivesDenylistOutage(t *testing.T) {
	env := newTestEnvWithDenylist(t, downDenylist{})
	token := env.registerUser(t, "jane@example.com")

	status, body := env.do(t, fiber.MethodGet, "/user", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "jane@example.com", body["data"].(map[string]any)["email"])
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")

	status, _ := env.do(t, fiber.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body := env.do(t, fiber.MethodGet, "/user", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token revoked", body["message"])
}

func TestAdminSurfaceRequiresAdminRole(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.registerUser(t, "jane@example.com")
	adminToken := env.adminToken(t)

	status, body := env.do(t, fiber.MethodGet, "/adoption-requests", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Admin role required", body["message"])

	status, _ = env.do(t, fiber.MethodGet, "/adoption-requests", adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestPetCrudFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")

	status, body := env.do(t, fiber.MethodPost, "/pets", token, fiber.Map{"name": "Rex"})
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	petID := data["id"].(string)
	assert.Equal(t, "transit", data["status"])
	assert.Nil(t, data["photo_url"])

	status, body = env.do(t, fiber.MethodPut, "/pets/"+petID, token, fiber.Map{"name": "Rexy"})
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]any)
	assert.Equal(t, "Rexy", data["name"])
	assert.Equal(t, "transit", data["status"])

	status, body = env.do(t, fiber.MethodGet, "/pets", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 1)

	status, _ = env.do(t, fiber.MethodDelete, "/pets/"+petID, token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, fiber.MethodGet, "/pets/"+petID, token, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Pet not found", body["message"])
}

func TestAdoptionRequestFlow(t *testing.T) {
	env := newTestEnv(t)
	userToken := env.registerUser(t, "jane@example.com")
	adminToken := env.adminToken(t)
	petID := env.createPet(t, userToken)

	payload := fiber.Map{
		"pet_id":      petID,
		"address":     "1 Main Street",
		"phone":       "555-0100",
		"application": "We have a big garden.",
	}

	status, body := env.do(t, fiber.MethodPost, "/adoption-requests/mine", userToken, payload)
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	requestID := data["id"].(string)
	assert.Equal(t, "pending", data["status"])
	require.NotNil(t, data["pet"])
	assert.Equal(t, petID, data["pet"].(map[string]any)["id"])

	status, body = env.do(t, fiber.MethodPost, "/adoption-requests/mine", userToken, payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "User already has a pending adoption request for this pet", body["message"])

	status, body = env.do(t, fiber.MethodGet, "/adoption-requests/mine", userToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"].([]any), 1)

	status, body = env.do(t, fiber.MethodPost, "/adoption-requests/"+requestID+"/approve", adminToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "approved", body["data"].(map[string]any)["status"])

	status, body = env.do(t, fiber.MethodPost, "/adoption-requests/"+requestID+"/reject", adminToken, fiber.Map{})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	errs := body["errors"].(map[string]any)
	assert.Contains(t, errs["reject_reason"].([]any), "The reject_reason field is required.")

	status, body = env.do(t, fiber.MethodPost, "/adoption-requests/"+requestID+"/reject", adminToken, fiber.Map{
		"reject_reason": "Garden too small",
	})
	require.Equal(t, http.StatusOK, status)
	data = body["data"].(map[string]any)
	assert.Equal(t, "rejected", data["status"])
	assert.Equal(t, "Garden too small", data["reject_reason"])
}

func TestAdoptionOfferFlow(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")
	petID := env.createPet(t, token)

	payload := fiber.Map{
		"pet_id":   petID,
		"title":    "Rex needs a home",
		"headline": "Friendly shepherd looking for a family.",
	}

	status, body := env.do(t, fiber.MethodPost, "/adoption-offers", token, payload)
	require.Equal(t, http.StatusCreated, status)
	data := body["data"].(map[string]any)
	offerID := data["id"].(string)
	assert.Equal(t, "draft", data["status"])

	status, body = env.do(t, fiber.MethodPost, "/adoption-offers", token, payload)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "Pet already has an adoption offer", body["message"])

	// Draft offers stay off the public listing.
	status, body = env.do(t, fiber.MethodGet, "/adoption-offers/published", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["data"].([]any))

	status, _ = env.do(t, fiber.MethodPost, "/adoption-offers/"+offerID+"/publish", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = env.do(t, fiber.MethodGet, "/adoption-offers/published", "", nil)
	require.Equal(t, http.StatusOK, status)
	published := body["data"].([]any)
	require.Len(t, published, 1)
	assert.Equal(t, offerID, published[0].(map[string]any)["id"])

	status, body = env.do(t, fiber.MethodPost, "/adoption-offers/"+offerID+"/draft", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "draft", body["data"].(map[string]any)["status"])
}

func TestOfferPreconditions(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")

	status, body := env.do(t, fiber.MethodPost, "/pets", token, fiber.Map{
		"name":   "Whiskers",
		"status": "adopted",
	})
	require.Equal(t, http.StatusCreated, status)
	petID := body["data"].(map[string]any)["id"].(string)

	status, body = env.do(t, fiber.MethodPost, "/adoption-offers", token, fiber.Map{
		"pet_id":   petID,
		"title":    "Whiskers",
		"headline": "A calm companion.",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Pet must be in transit to create an adoption offer", body["message"])
}

func TestNotFoundEnvelope(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerUser(t, "jane@example.com")

	for _, tc := range []struct {
		path    string
		message string
	}{
		{"/pets/%s", "Pet not found"},
		{"/adoption-requests/%s", "Adoption request not found"},
		{"/adoption-offers/%s", "Adoption offer not found"},
	} {
		// Any absent id yields a 404, whether or not it parses as a uuid.
		for _, id := range []string{"11111111-1111-1111-1111-111111111111", "abc"} {
			status, body := env.do(t, fiber.MethodGet, fmt.Sprintf(tc.path, id), token, nil)
			assert.Equal(t, http.StatusNotFound, status)
			assert.Equal(t, tc.message, body["message"])
		}
	}
}
