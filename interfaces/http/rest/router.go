package rest

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"travel-assistant/interfaces/http/rest/handlers"
	"travel-assistant/interfaces/http/rest/middleware"
	"travel-assistant/pkg/common"
	apperrors "travel-assistant/pkg/errors"
	"travel-assistant/pkg/observability"
)

// Router creates and configures the HTTP router
type Router struct {
	travel       *handlers.TravelHandler
	errorHandler *apperrors.ErrorHandler
	metrics      *observability.Metrics
	logger       *zap.Logger
	enableCORS   bool
}

// NewRouter creates a new router instance
func NewRouter(
	travel *handlers.TravelHandler,
	errorHandler *apperrors.ErrorHandler,
	metrics *observability.Metrics,
	logger *zap.Logger,
	enableCORS bool,
) *Router {
	return &Router{
		travel:       travel,
		errorHandler: errorHandler,
		metrics:      metrics,
		logger:       logger,
		enableCORS:   enableCORS,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.RequestContext)
	router.Use(middleware.Logger(rt.logger))
	router.Use(middleware.Metrics(rt.metrics))
	router.Use(rt.errorHandler.Middleware)

	if rt.enableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: splitHeader(common.CORSHeaders["Access-Control-Allow-Methods"]),
			AllowedHeaders: splitHeader(common.CORSHeaders["Access-Control-Allow-Headers"]),
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}

	// Health check
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/ideas", rt.travel.GenerateIdeas)
		r.Post("/availability", rt.travel.CheckAvailability)
		r.Post("/bookings", rt.travel.CreateBooking)
		r.Post("/bookings/questions", rt.travel.AnswerBookingQuestion)
		r.Post("/chat", rt.travel.Chat)
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.Handle(w, r, apperrors.NewNotFoundError("route not found"))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		common.RespondJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	})

	return router
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// readinessCheck handles readiness check requests. Every backing system is
// optional, so a constructed router is always ready.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func splitHeader(value string) []string {
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
