package serveradmin

import (
	"net/http"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school/slots"
	"github.com/edusuite/edusuite/school/subjects"
	"github.com/edusuite/edusuite/school/timetable"
	"github.com/go-chi/chi/v5"
)

type createSlotRequest struct {
	Name        string `json:"name" validate:"required"`
	StartTime   string `json:"startTime" validate:"required"`
	EndTime     string `json:"endTime" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Description string `json:"description"`
}

func (h *adminHandler) listSlots(w http.ResponseWriter, r *http.Request) {
	listed, err := h.slots.List(r.Context())
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) createSlot(w http.ResponseWriter, r *http.Request) {
	var req createSlotRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	slot, err := h.slots.Create(r.Context(), slots.CreateParams{
		Name:        req.Name,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Type:        slots.SlotType(req.Type),
		Description: req.Description,
	})
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionSlots, slot.SlotID, "created")
	h.respondJSON(w, r, http.StatusCreated, slot)
}

func (h *adminHandler) deleteSlot(w http.ResponseWriter, r *http.Request) {
	slotID := chi.URLParam(r, "slotID")
	if err := h.slots.Delete(r.Context(), slotID); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionSlots, slotID, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "slot deleted"})
}

type createClassRequest struct {
	Name string `json:"name" validate:"required"`
}

func (h *adminHandler) listClasses(w http.ResponseWriter, r *http.Request) {
	listed, err := h.classes.ListClasses(r.Context())
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) createClass(w http.ResponseWriter, r *http.Request) {
	var req createClassRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	class, err := h.classes.CreateClass(r.Context(), req.Name)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionClasses, class.ClassID, "created")
	h.respondJSON(w, r, http.StatusCreated, class)
}

func (h *adminHandler) deleteClass(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")
	if err := h.classes.DeleteClass(r.Context(), classID); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionClasses, classID, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "class deleted"})
}

func (h *adminHandler) verifyClass(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := h.classes.GetClass(r.Context(), chi.URLParam(r, "classID"))
		if err == docstore.ErrNotFound {
			http.Error(w, http.StatusText(404), 404)
			return
		}
		if err != nil {
			http.Error(w, http.StatusText(500), 500)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type createSectionRequest struct {
	ClassID string `json:"classId" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

func (h *adminHandler) listSections(w http.ResponseWriter, r *http.Request) {
	listed, err := h.classes.ListSections(r.Context())
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) listSectionsForClass(w http.ResponseWriter, r *http.Request) {
	listed, err := h.classes.ListSectionsForClass(r.Context(), chi.URLParam(r, "classID"))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) createSection(w http.ResponseWriter, r *http.Request) {
	var req createSectionRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	section, err := h.classes.CreateSection(r.Context(), req.ClassID, req.Name)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionSections, section.SectionID, "created")
	h.respondJSON(w, r, http.StatusCreated, section)
}

func (h *adminHandler) deleteSection(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "sectionID")
	if err := h.classes.DeleteSection(r.Context(), sectionID); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionSections, sectionID, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "section deleted"})
}

type createSubjectRequest struct {
	ClassID string `json:"classId" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type"`
}

func (h *adminHandler) listSubjects(w http.ResponseWriter, r *http.Request) {
	listed, err := h.subjects.List(r.Context())
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) listSubjectsForClass(w http.ResponseWriter, r *http.Request) {
	listed, err := h.subjects.ListForClass(r.Context(), chi.URLParam(r, "classID"))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) createSubject(w http.ResponseWriter, r *http.Request) {
	var req createSubjectRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	subject, err := h.subjects.Create(r.Context(), req.ClassID, req.Name, subjects.SubjectType(req.Type))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionSubjects, subject.SubjectCode, "created")
	h.respondJSON(w, r, http.StatusCreated, subject)
}

func (h *adminHandler) deleteSubject(w http.ResponseWriter, r *http.Request) {
	subjectCode := chi.URLParam(r, "subjectCode")
	if err := h.subjects.Delete(r.Context(), subjectCode); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionSubjects, subjectCode, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "subject deleted"})
}

type createTimetableRequest struct {
	ClassID     string             `json:"classId" validate:"required"`
	SectionID   string             `json:"sectionId" validate:"required"`
	ClassName   string             `json:"className"`
	SectionName string             `json:"sectionName"`
	Schedule    timetable.Schedule `json:"schedule"`
}

type saveTimetableRequest struct {
	Schedule timetable.Schedule `json:"schedule" validate:"required"`
}

func (h *adminHandler) listTimetables(w http.ResponseWriter, r *http.Request) {
	listed, err := h.timetables.List(r.Context())
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) openTimetable(w http.ResponseWriter, r *http.Request) {
	tt, err := h.timetables.Open(r.Context(), chi.URLParam(r, "classID"), chi.URLParam(r, "sectionID"))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, tt)
}

func (h *adminHandler) renderTimetable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tt, err := h.timetables.Open(ctx, chi.URLParam(r, "classID"), chi.URLParam(r, "sectionID"))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	rows, err := h.timetables.Render(ctx, tt)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, rows)
}

func (h *adminHandler) createTimetable(w http.ResponseWriter, r *http.Request) {
	var req createTimetableRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	ctx := r.Context()

	tt := timetable.Timetable{
		ClassID:     req.ClassID,
		SectionID:   req.SectionID,
		ClassName:   req.ClassName,
		SectionName: req.SectionName,
	}
	// run every submitted cell through Assign so slot and subject
	// references are checked before the document is written
	for day, assignments := range req.Schedule {
		for slotID, subjectID := range assignments {
			if err := h.timetables.Assign(ctx, &tt, day, slotID, subjectID); err != nil {
				h.notifyError(w, r, err)
				return
			}
		}
	}

	created, err := h.timetables.Create(ctx, tt)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(ctx, docstore.CollectionTimeTables, created.ClassID+"_"+created.SectionID, "created")
	h.respondJSON(w, r, http.StatusCreated, created)
}

func (h *adminHandler) saveTimetable(w http.ResponseWriter, r *http.Request) {
	var req saveTimetableRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	classID := chi.URLParam(r, "classID")
	sectionID := chi.URLParam(r, "sectionID")

	updated, err := h.timetables.Save(r.Context(), classID, sectionID, req.Schedule)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionTimeTables, classID+"_"+sectionID, "updated")
	h.respondJSON(w, r, http.StatusOK, updated)
}

func (h *adminHandler) deleteTimetable(w http.ResponseWriter, r *http.Request) {
	classID := chi.URLParam(r, "classID")
	sectionID := chi.URLParam(r, "sectionID")
	if err := h.timetables.Delete(r.Context(), classID, sectionID); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionTimeTables, classID+"_"+sectionID, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "timetable deleted"})
}
