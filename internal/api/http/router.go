package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/adoption-service/internal/api/http/handlers"
	"github.com/spec-kit/adoption-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Pets           *handlers.PetsHandler
	Requests       *handlers.AdoptionRequestsHandler
	Offers         *handlers.AdoptionOffersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Registration, login, the published-offer
// listing, and health probes are public; everything else requires a bearer
// token, and the admin request surface additionally requires the admin role.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/register", cfg.Users.Register)
	app.Post("/login", cfg.Users.Login)
	app.Get("/adoption-offers/published", cfg.Offers.ListPublished)

	protected := app.Group("", cfg.AuthMiddleware.Handle)

	protected.Post("/logout", cfg.Users.Logout)
	protected.Get("/user", cfg.Users.Me)
	protected.Put("/user", cfg.Users.UpdateMe)
	protected.Delete("/user", cfg.Users.DeleteMe)

	protected.Get("/pets", cfg.Pets.ListPets)
	protected.Post("/pets", cfg.Pets.CreatePet)
	protected.Get("/pets/:id", cfg.Pets.GetPet)
	protected.Put("/pets/:id", cfg.Pets.UpdatePet)
	protected.Delete("/pets/:id", cfg.Pets.DeletePet)

	protected.Get("/adoption-requests/mine", cfg.Requests.ListMine)
	protected.Post("/adoption-requests/mine", cfg.Requests.CreateMine)
	protected.Get("/adoption-requests", auth.RequireAdmin(), cfg.Requests.ListRequests)
	protected.Post("/adoption-requests", auth.RequireAdmin(), cfg.Requests.CreateRequest)
	protected.Get("/adoption-requests/:id", cfg.Requests.GetRequest)
	protected.Put("/adoption-requests/:id", cfg.Requests.UpdateRequest)
	protected.Delete("/adoption-requests/:id", cfg.Requests.DeleteRequest)
	protected.Post("/adoption-requests/:id/approve", cfg.Requests.Approve)
	protected.Post("/adoption-requests/:id/reject", cfg.Requests.Reject)

	protected.Get("/adoption-offers", cfg.Offers.ListOffers)
	protected.Post("/adoption-offers", cfg.Offers.CreateOffer)
	protected.Get("/adoption-offers/:id", cfg.Offers.GetOffer)
	protected.Put("/adoption-offers/:id", cfg.Offers.UpdateOffer)
	protected.Delete("/adoption-offers/:id", cfg.Offers.DeleteOffer)
	protected.Post("/adoption-offers/:id/publish", cfg.Offers.Publish)
	protected.Post("/adoption-offers/:id/draft", cfg.Offers.Draft)
}
