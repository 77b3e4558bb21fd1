package serveradmin

import (
	"net/http"

	"github.com/edusuite/edusuite/data/docstore"
	"golang.org/x/sync/errgroup"
)

type dashboardCounts struct {
	Students   int `json:"students"`
	Teachers   int `json:"teachers"`
	Staff      int `json:"staff"`
	Classes    int `json:"classes"`
	Sections   int `json:"sections"`
	Subjects   int `json:"subjects"`
	Slots      int `json:"slots"`
	Timetables int `json:"timetables"`
	Notices    int `json:"notices"`
	Exams      int `json:"exams"`
}

// getDashboard fans the collection counts out concurrently; one slow
// collection should not serialize the whole overview.
func (h *adminHandler) getDashboard(w http.ResponseWriter, r *http.Request) {
	g, ctx := errgroup.WithContext(r.Context())
	var counts dashboardCounts

	count := func(collection string, dst *int) func() error {
		return func() error {
			docs, err := h.store.ListAll(ctx, collection)
			if err != nil {
				return err
			}
			*dst = len(docs)
			return nil
		}
	}

	g.Go(count(docstore.CollectionStudents, &counts.Students))
	g.Go(count(docstore.CollectionStaff, &counts.Staff))
	g.Go(count(docstore.CollectionClasses, &counts.Classes))
	g.Go(count(docstore.CollectionSections, &counts.Sections))
	g.Go(count(docstore.CollectionSubjects, &counts.Subjects))
	g.Go(count(docstore.CollectionSlots, &counts.Slots))
	g.Go(count(docstore.CollectionTimeTables, &counts.Timetables))
	g.Go(count(docstore.CollectionNotices, &counts.Notices))
	g.Go(count(docstore.CollectionExams, &counts.Exams))
	g.Go(func() error {
		teachers, err := h.staff.ListTeachers(ctx)
		if err != nil {
			return err
		}
		counts.Teachers = len(teachers)
		return nil
	})

	if err := g.Wait(); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, counts)
}
