package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"log/slog"

	"github.com/edusuite/edusuite/data"
	"github.com/edusuite/edusuite/data/docstore"
	logginghelpers "github.com/edusuite/edusuite/data/logging-helpers"
	"github.com/edusuite/edusuite/internal/projectpath"
	serveradmin "github.com/edusuite/edusuite/server/admin"
	"github.com/edusuite/edusuite/server/feed"
	serverget "github.com/edusuite/edusuite/server/get"
	servermanage "github.com/edusuite/edusuite/server/manage"
	serversync "github.com/edusuite/edusuite/server/sync"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func Serve() {
	r := chi.NewRouter()
	cors := cors.New(cors.Options{
		// the admin SPA is served from its own origin during development
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum age for preflight requests
	})
	r.Use(cors.Handler)
	r.Use(middleware.Logger)

	logger := newServerLogger()

	dbPool, err := data.NewPool(context.Background())
	if err != nil {
		logger.Error("Fatal cannot connect to main db", "err", err)
		return
	}
	store := docstore.NewPostgresStore(dbPool)
	hub := feed.NewHub(logger)

	r.Route("/get", func(r chi.Router) {
		serverget.PopulateGetRoutes(&r, store, *logger)
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(servermanage.EnsureLoggedIn)
		serveradmin.PopulateAdminRoutes(&r, store, hub, *logger)
	})
	r.Route("/sync", func(r chi.Router) {
		r.Use(servermanage.EnsureLoggedIn)
		serversync.PopulateSyncRoutes(&r, store, *logger)
	})
	r.Route("/manage", func(r chi.Router) {
		servermanage.PopulateManagementRoutes(&r, store, hub, *logger)
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	logger.Info("Running server on", "port", port)
	http.ListenAndServe(fmt.Sprintf(":%s", port), r)
}

// newServerLogger writes human-readable lines to stdout and, when the
// audit file can be opened, json records alongside them.
func newServerLogger() *slog.Logger {
	multi := logginghelpers.NewMultiHandler(slog.NewTextHandler(os.Stdout, nil))

	auditPath := filepath.Join(projectpath.Root, "server.log")
	auditFile, err := os.OpenFile(auditPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		slog.Warn("audit log not available", "path", auditPath, "err", err)
	} else {
		multi.AddHandler(slog.NewJSONHandler(auditFile, nil))
	}
	return slog.New(multi)
}
