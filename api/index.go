// Package api assembles the HTTP surface: one chi router carrying every
// endpoint, shared middleware and the error envelope.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"team-planner-backend/pkg/config"
	"team-planner-backend/pkg/handlers"
	custommw "team-planner-backend/pkg/middleware"
	"team-planner-backend/pkg/services"
	"team-planner-backend/pkg/utils"
)

// Deps carries the wired services the router exposes.
type Deps struct {
	Identity  *services.IdentityService
	Tasks     *services.TaskService
	Orgs      *services.OrgService
	Schedule  *services.ScheduleService
	Reminders *services.ReminderService
}

// NewRouter builds the application router with all middleware and routes.
func NewRouter(cfg *config.Config, log zerolog.Logger, deps Deps) *chi.Mux {
	router := chi.NewRouter()
	setupMiddleware(router, cfg, log)
	setupRoutes(router, cfg, log, deps)
	return router
}

func setupMiddleware(router *chi.Mux, cfg *config.Config, log zerolog.Logger) {
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(custommw.RequestLogger(log))
	router.Use(custommw.Recovery(cfg, log))

	router.Use(custommw.CORS(cfg))

	router.Use(chimiddleware.Timeout(25 * time.Second))
	router.Use(chimiddleware.Compress(5))

	if cfg.IsDevelopment() {
		router.Use(chimiddleware.Heartbeat("/ping"))
	}
}

func setupRoutes(router *chi.Mux, cfg *config.Config, log zerolog.Logger, deps Deps) {
	authHandler := handlers.NewAuthHandler(cfg, deps.Identity)
	tasksHandler := handlers.NewTasksHandler(deps.Tasks)
	orgsHandler := handlers.NewOrgsHandler(deps.Orgs)
	scheduleHandler := handlers.NewScheduleHandler(deps.Schedule, deps.Orgs)
	notificationsHandler := handlers.NewNotificationsHandler(deps.Reminders)

	jwtService := utils.NewJWTService(cfg.JWTSecret)

	// Health check endpoint
	router.Get("/", authHandler.HealthCheck)

	router.Route("/api", func(r chi.Router) {
		// Public routes (no authentication)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(custommw.Auth(jwtService, log))

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", authHandler.GetProfile)
				r.Put("/profile", authHandler.UpdateProfile)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", tasksHandler.List)           // list, ?date= and ?sort=priority
				r.Post("/", tasksHandler.Create)        // create task
				r.Get("/today", tasksHandler.Today)     // today's summary
				r.Delete("/{id}", tasksHandler.Delete)  // delete task
				r.Post("/{id}/toggle", tasksHandler.ToggleCompleted)
			})

			r.Route("/orgs", func(r chi.Router) {
				r.Get("/", orgsHandler.List)
				r.Post("/", orgsHandler.Create)
				r.Post("/join", orgsHandler.Join)
				r.Get("/members", orgsHandler.Members) // expects ?org_id=
			})

			r.Route("/schedule", func(r chi.Router) {
				r.Get("/", scheduleHandler.Get)
				r.Get("/export", scheduleHandler.Export)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationsHandler.List)
				r.Post("/clear", notificationsHandler.Clear)
			})
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteNotFoundResponse(w, fmt.Sprintf("Route not found: %s %s", r.Method, r.URL.Path))
	})

	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteErrorResponseWithCode(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED",
			fmt.Sprintf("Method %s not allowed for %s", r.Method, r.URL.Path), "")
	})
}
