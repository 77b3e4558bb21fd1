package servermanage

import (
	"log/slog"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/server/feed"
	"github.com/go-chi/chi/v5"
)

func PopulateManagementRoutes(r *chi.Router, store docstore.Store, hub *feed.Hub, logger slog.Logger) {
	h := getManageHandler(store, hub, &logger)

	(*r).Post("/login", h.login)
	(*r).Post("/logout", h.logout)
	(*r).Group(func(r chi.Router) {
		r.Use(EnsureLoggedIn)

		r.Get("/session", h.session)
		r.Get("/watch", h.watchFeed)
	})
}
