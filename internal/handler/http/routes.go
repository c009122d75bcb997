// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// userIDPath matches only UUID-shaped ids, so literal paths such as
// /users/signup fall through to the NotFound and MethodNotAllowed handlers.
const userIDPath = "/users/{id:[0-9a-fA-F-]{36}}"

// Init builds the router with all routes and middleware.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	if h.cfg.TrustProxyHeaders {
		router.Use(middleware.RealIP)
	}
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)
	if h.cfg.RequestTimeout > 0 {
		router.Use(middleware.Timeout(h.cfg.RequestTimeout))
	}

	router.Get("/api/version/", h.getServerVersion)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/utils/health-check/", h.healthCheck)

		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/users/signup", h.register)
			r.Post("/login/refresh", h.refresh)
			r.Post("/logout", h.logout)
			r.Post("/reset-password/", h.resetPassword)
		})

		// rate limited routes without authorization
		r.Group(func(r chi.Router) {
			r.Use(h.authLimiter.limit)
			r.Post("/login/access-token", h.login)
			r.Post("/password-recovery/{email}", h.recoverPassword)
		})

		// routes for any active user
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Post("/login/test-token", h.testToken)
			r.Get("/users/me", h.getMe)
			r.Patch("/users/me", h.updateMe)
			r.Patch("/users/me/password", h.updatePassword)
			r.Get(userIDPath, h.getUser)

			// superuser routes
			r.Group(func(r chi.Router) {
				r.Use(h.requireSuperuser)
				r.Get("/users/", h.listUsers)
				r.Post("/users/", h.createUser)
				r.Patch(userIDPath, h.updateUser)
				r.Delete(userIDPath, h.deactivateUser)
			})
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	return router
}
