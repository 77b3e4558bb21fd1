package serverget

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school/classes"
	"github.com/edusuite/edusuite/school/notices"
	"github.com/edusuite/edusuite/school/slots"
	"github.com/edusuite/edusuite/school/subjects"
	"github.com/edusuite/edusuite/school/timetable"
	"github.com/go-chi/chi/v5"
)

type GetQueriesParam int

const (
	OffsetKey GetQueriesParam = iota
	LimitKey
)

// PopulateGetRoutes mounts the unauthenticated read surface students and
// parents use: class lists, rendered timetables and the notice board.
func PopulateGetRoutes(r *chi.Router, store docstore.Store, logger slog.Logger) {
	registry := slots.NewRegistry(store)
	catalog := subjects.NewCatalog(store)
	getHandler := getHandler{
		classes:    classes.NewService(store),
		subjects:   catalog,
		slots:      registry,
		timetables: timetable.NewService(store, registry, catalog),
		notices:    notices.NewBoard(store),
		logger:     &logger,
	}

	(*r).Use(populatePagination)
	(*r).Get("/classes", getHandler.getClasses)
	(*r).Route("/classes/{classID}", func(r chi.Router) {
		r.Use(getHandler.verifyClass)
		r.Get("/sections", getHandler.getSections)
		r.Get("/subjects", getHandler.getSubjects)
		r.Get("/{sectionID}/timetable", getHandler.getTimetable)
	})
	(*r).Get("/slots", getHandler.getSlots)
	(*r).Get("/notices", getHandler.getNotices)
}

func populatePagination(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		offset := 0
		limit := 200
		queryOffset := r.URL.Query().Get("offset")
		if queryOffset != "" {
			newOffset, err := strconv.Atoi(queryOffset)
			if err != nil || newOffset < 0 {
				http.Error(w, "Invalid query offset param", http.StatusBadRequest)
				return
			}
			offset = newOffset
		}
		queryLimit := r.URL.Query().Get("limit")
		if queryLimit != "" {
			setLimit, err := strconv.Atoi(queryLimit)
			if err != nil || setLimit < 0 {
				http.Error(w, "Invalid query limit param", http.StatusBadRequest)
				return
			}
			limit = setLimit
		}
		ctx = context.WithValue(ctx, OffsetKey, offset)
		ctx = context.WithValue(ctx, LimitKey, limit)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Could not marshal rows", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
