package rest

import (
	"travel-assistant/infrastructure/di"
	"travel-assistant/interfaces/http/rest/handlers"
)

// NewContainerRouter builds the router from a wired container.
func NewContainerRouter(c *di.Container) *Router {
	travel := handlers.NewTravelHandler(
		c.Ideation,
		c.Availability,
		c.Booking,
		c.BookingQA,
		c.Chat,
		c.ErrorHandler,
		c.Logger,
	)
	return NewRouter(travel, c.ErrorHandler, c.Metrics, c.Logger, c.Config.EnableCORS)
}
