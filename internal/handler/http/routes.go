package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MKhiriev/go-tours/models"
)

// Init builds the router. It panics when a route is restricted to an empty
// role set.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// set before any sub-router is mounted so they inherit it
	router.NotFound(h.routeNotFound)
	router.MethodNotAllowed(h.routeNotFound)

	router.Handle("/metrics", h.metrics.Handler())

	// server-rendered views
	router.Group(func(r chi.Router) {
		r.Use(h.isLoggedIn)
		r.Get("/", h.getOverview)
		r.Get("/login", h.getLoginForm)
	})
	router.With(h.protect).Get("/me", h.getAccount)
	router.With(h.protect).Get("/checkout-success", h.checkoutSuccess)

	router.Route("/api", func(r chi.Router) {
		r.Use(h.withRateLimit)

		r.Get("/version", h.getServerVersion)

		r.Route("/v1", func(r chi.Router) {
			r.Route("/users", h.userRoutes)
			r.Route("/tours", h.tourRoutes)
			r.Route("/bookings", h.bookingRoutes)
		})
	})

	return router
}

func (h *Handler) userRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
	r.Post("/forgotPassword", h.forgotPassword)
	r.Patch("/resetPassword/{token}", h.resetPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.protect)

		r.Patch("/updateMyPassword", h.updateMyPassword)
		r.Get("/me", h.getMe)
		r.Patch("/updateMe", h.updateMe)
		r.Delete("/deleteMe", h.deleteMe)

		r.Group(func(r chi.Router) {
			r.Use(h.restrictTo(models.RoleAdmin))

			r.Get("/", h.listUsers)
			r.Post("/", h.createUser)
			r.Get("/{userID}", h.getUser)
			r.Patch("/{userID}", h.updateUser)
			r.Delete("/{userID}", h.deleteUser)
		})
	})
}

func (h *Handler) tourRoutes(r chi.Router) {
	staff := h.restrictTo(models.RoleAdmin, models.RoleLeadGuide)

	r.Get("/", h.listTours)
	r.Get("/{tourID}", h.getTour)
	r.With(h.protect, staff).Post("/", h.createTour)
	r.With(h.protect, staff).Delete("/{tourID}", h.deleteTour)

	r.Get("/{tourID}/reviews", h.listReviews)
	r.With(h.protect, h.restrictTo(models.RoleUser)).Post("/{tourID}/reviews", h.createReview)
}

func (h *Handler) bookingRoutes(r chi.Router) {
	r.With(h.protect).Get("/checkout-session/{tourID}", h.getCheckoutSession)

	r.Group(func(r chi.Router) {
		r.Use(h.protect, h.restrictTo(models.RoleAdmin, models.RoleLeadGuide))

		r.Get("/", h.listBookings)
		r.Post("/", h.createBooking)
		r.Get("/{bookingID}", h.getBooking)
		r.Patch("/{bookingID}", h.updateBooking)
		r.Delete("/{bookingID}", h.deleteBooking)
	})
}
