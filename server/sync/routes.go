package serversync

import (
	"log/slog"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/go-chi/chi/v5"
)

func PopulateSyncRoutes(r *chi.Router, store docstore.Store, logger slog.Logger) {
	syncHandler := syncHandler{
		store:  store,
		logger: &logger,
	}

	(*r).Get("/all", syncHandler.syncAll)
}
