package httpapi

import (
	"expvar"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, app *App) {
	r.Get("/healthz", healthHandler)
	r.Handle("/debug/vars", expvar.Handler())

	r.Route("/todos", func(r chi.Router) {
		r.Use(RequireUser)
		r.Get("/", app.listTodosHandler)
		r.Post("/", app.createTodoHandler)
		r.Patch("/{todoId}", app.updateTodoHandler)
		r.Delete("/{todoId}", app.deleteTodoHandler)
		r.Post("/{todoId}/attachment", app.generateUploadURLHandler)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Use(RequireUser)
		r.Get("/", app.getProfileHandler)
		r.Put("/", app.setProfileHandler)
		r.Delete("/", app.deleteProfileHandler)
	})
}
