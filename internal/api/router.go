package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rs/zerolog"

	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/api/docs"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/api/handler"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/api/middleware"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/app/service"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/common/security"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/domain/repository"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/platform/config"
	"github.com/dxaginfo/bandmate-rehearsal-planner/internal/realtime"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config *config.Config
	Logger zerolog.Logger
	Tokens *security.TokenManager

	UserRepo repository.UserRepository
	BandRepo repository.BandRepository

	AuthService         *service.AuthService
	UserService         *service.UserService
	BandService         *service.BandService
	RehearsalService    *service.RehearsalService
	VenueService        *service.VenueService
	AvailabilityService *service.AvailabilityService

	Hub *realtime.Hub
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.RequestLogger(d.Logger))
	r.Use(middleware.Recoverer(d.Logger, d.Config.IsDevelopment()))
	r.Use(chiMiddleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.Config.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Verifies any bearer token and puts claims in context; RequireAuth
	// decides whether the request may proceed.
	r.Use(jwtauth.Verifier(d.Tokens.Auth()))

	authenticator := middleware.NewAuthenticator(d.UserRepo)
	guard := middleware.NewBandGuard(d.BandRepo)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/api/docs", docs.Handler())
	r.Get("/ws", realtime.ServeWS(d.Hub, d.Logger))

	r.Route("/api", func(api chi.Router) {
		authHandler := handler.NewAuthHandler(d.AuthService, authenticator)
		api.Route("/auth", authHandler.RegisterRoutes)

		api.Group(func(authed chi.Router) {
			authed.Use(authenticator.RequireAuth)

			userHandler := handler.NewUserHandler(d.UserService)
			authed.Route("/users", userHandler.RegisterRoutes)

			bandHandler := handler.NewBandHandler(d.BandService, guard)
			authed.Route("/bands", bandHandler.RegisterRoutes)

			rehearsalHandler := handler.NewRehearsalHandler(d.RehearsalService, guard)
			authed.Route("/rehearsals", rehearsalHandler.RegisterRoutes)

			venueHandler := handler.NewVenueHandler(d.VenueService)
			authed.Route("/venues", venueHandler.RegisterRoutes)

			availabilityHandler := handler.NewAvailabilityHandler(d.AvailabilityService)
			authed.Route("/availability", availabilityHandler.RegisterRoutes)
		})
	})

	return r
}
