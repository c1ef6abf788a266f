package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface and the admin-gated mutations. Every
// state-changing route sits behind the admin middleware so the session check
// runs before any store access.
func setupRoutes(r chi.Router, handlers *routeHandlers, adminOnly func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		// Public surface
		r.Get("/api/projects", handlers.projectHandler.getAllProjects())
		r.Get("/api/hero-projects", handlers.heroHandler.getHeroSlots())
		r.Get("/api/service-categories", handlers.categoryHandler.getServiceCategories())
		r.Get("/api/video/{filename}", handlers.videoHandler.serveVideo())
		r.Post("/api/contact", handlers.contactHandler.createContact())
		r.Post("/api/bookings", handlers.bookingHandler.createBooking())
		r.Post("/api/admin/login", handlers.authHandler.login())

		// Admin-gated routes
		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Post("/api/projects", handlers.projectHandler.createProject())
			r.Put("/api/projects/reorder", handlers.projectHandler.reorderProjects())
			r.Delete("/api/projects/{projectID}", handlers.projectHandler.deleteProject())

			r.Post("/api/hero-projects", handlers.heroHandler.saveHeroSlots())
			r.Delete("/api/hero-projects", handlers.heroHandler.clearHeroSlots())
			r.Post("/api/hero-projects/upload", handlers.heroHandler.uploadHeroAsset())

			r.Put("/api/service-categories", handlers.categoryHandler.setCategoryImages())

			r.Get("/api/contacts", handlers.contactHandler.getAllContacts())
			r.Delete("/api/contacts/{contactID}", handlers.contactHandler.deleteContact())

			r.Get("/api/bookings", handlers.bookingHandler.getAllBookings())
			r.Delete("/api/bookings/{bookingID}", handlers.bookingHandler.deleteBooking())
			r.Delete("/api/bookings", handlers.bookingHandler.bulkDeleteBookings())
		})
	})
}
