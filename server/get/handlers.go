package serverget

import (
	"net/http"

	"log/slog"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school/classes"
	"github.com/edusuite/edusuite/school/notices"
	"github.com/edusuite/edusuite/school/slots"
	"github.com/edusuite/edusuite/school/subjects"
	"github.com/edusuite/edusuite/school/timetable"
	"github.com/go-chi/chi/v5"
)

type getHandler struct {
	classes    *classes.Service
	subjects   *subjects.Catalog
	slots      *slots.Registry
	timetables *timetable.Service
	notices    *notices.Board
	logger     *slog.Logger
}

func (h *getHandler) getClasses(w http.ResponseWriter, r *http.Request) {
	listed, err := h.classes.ListClasses(r.Context())
	if err != nil {
		h.logger.Error("Could not get class rows", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	writeJSON(w, h.logger, listed)
}

func (h *getHandler) verifyClass(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := h.classes.GetClass(r.Context(), chi.URLParam(r, "classID"))
		if err == docstore.ErrNotFound {
			http.Error(w, http.StatusText(404), 404)
			return
		}
		if err != nil {
			h.logger.Error("Could not verify class", "err", err)
			http.Error(w, http.StatusText(500), 500)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *getHandler) getSections(w http.ResponseWriter, r *http.Request) {
	listed, err := h.classes.ListSectionsForClass(r.Context(), chi.URLParam(r, "classID"))
	if err != nil {
		h.logger.Error("Could not get section rows", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	writeJSON(w, h.logger, listed)
}

func (h *getHandler) getSubjects(w http.ResponseWriter, r *http.Request) {
	listed, err := h.subjects.ListForClass(r.Context(), chi.URLParam(r, "classID"))
	if err != nil {
		h.logger.Error("Could not get subject rows", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	writeJSON(w, h.logger, listed)
}

func (h *getHandler) getSlots(w http.ResponseWriter, r *http.Request) {
	listed, err := h.slots.List(r.Context())
	if err != nil {
		h.logger.Error("Could not get slot rows", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	writeJSON(w, h.logger, listed)
}

// getTimetable renders the weekly grid for one class and section pair the
// way a student would read it, with free periods resolved.
func (h *getHandler) getTimetable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tt, err := h.timetables.Open(ctx, chi.URLParam(r, "classID"), chi.URLParam(r, "sectionID"))
	if err != nil {
		h.logger.Error("Could not open timetable", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	rows, err := h.timetables.Render(ctx, tt)
	if err != nil {
		h.logger.Error("Could not render timetable", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	writeJSON(w, h.logger, rows)
}

func (h *getHandler) getNotices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	listed, err := h.notices.List(ctx)
	if err != nil {
		h.logger.Error("Could not get notice rows", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}

	offset := ctx.Value(OffsetKey).(int)
	limit := ctx.Value(LimitKey).(int)
	if offset > len(listed) {
		offset = len(listed)
	}
	end := offset + limit
	if end > len(listed) {
		end = len(listed)
	}
	writeJSON(w, h.logger, listed[offset:end])
}
