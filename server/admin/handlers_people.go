package serveradmin

import (
	"encoding/json"
	"net/http"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school/notices"
	"github.com/edusuite/edusuite/school/people"
	"github.com/go-chi/chi/v5"
)

func (h *adminHandler) listStudents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		listed []people.Student
		err    error
	)
	switch {
	case r.URL.Query().Get("classId") != "":
		listed, err = h.students.ListForClass(ctx, r.URL.Query().Get("classId"))
	case r.URL.Query().Get("search") != "":
		listed, err = h.students.Search(ctx, r.URL.Query().Get("search"))
	default:
		listed, err = h.students.List(ctx)
	}
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) admitStudent(w http.ResponseWriter, r *http.Request) {
	var student people.Student
	if err := json.NewDecoder(r.Body).Decode(&student); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, apiMessage{Status: "error", Message: "invalid request body"})
		return
	}
	admitted, err := h.students.Admit(r.Context(), student)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionStudents, admitted.AdmissionNumber, "created")
	h.respondJSON(w, r, http.StatusCreated, admitted)
}

func (h *adminHandler) getStudent(w http.ResponseWriter, r *http.Request) {
	student, err := h.students.Get(r.Context(), chi.URLParam(r, "admissionNumber"))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, student)
}

func (h *adminHandler) updateStudent(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, apiMessage{Status: "error", Message: "invalid request body"})
		return
	}
	admissionNumber := chi.URLParam(r, "admissionNumber")
	updated, err := h.students.Update(r.Context(), admissionNumber, fields)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionStudents, admissionNumber, "updated")
	h.respondJSON(w, r, http.StatusOK, updated)
}

func (h *adminHandler) deleteStudent(w http.ResponseWriter, r *http.Request) {
	admissionNumber := chi.URLParam(r, "admissionNumber")
	if err := h.students.Delete(r.Context(), admissionNumber); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionStudents, admissionNumber, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "student deleted"})
}

func (h *adminHandler) listStaff(w http.ResponseWriter, r *http.Request) {
	listed, err := h.staff.List(r.Context())
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) addStaff(w http.ResponseWriter, r *http.Request) {
	var member people.StaffMember
	if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, apiMessage{Status: "error", Message: "invalid request body"})
		return
	}
	added, err := h.staff.Add(r.Context(), member)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionStaff, added.ID, "created")
	h.respondJSON(w, r, http.StatusCreated, added)
}

func (h *adminHandler) getStaff(w http.ResponseWriter, r *http.Request) {
	member, err := h.staff.Get(r.Context(), chi.URLParam(r, "staffID"))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, member)
}

func (h *adminHandler) updateStaff(w http.ResponseWriter, r *http.Request) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, apiMessage{Status: "error", Message: "invalid request body"})
		return
	}
	staffID := chi.URLParam(r, "staffID")
	updated, err := h.staff.Update(r.Context(), staffID, fields)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionStaff, staffID, "updated")
	h.respondJSON(w, r, http.StatusOK, updated)
}

func (h *adminHandler) deleteStaff(w http.ResponseWriter, r *http.Request) {
	staffID := chi.URLParam(r, "staffID")
	if err := h.staff.Delete(r.Context(), staffID); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionStaff, staffID, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "staff member deleted"})
}

func (h *adminHandler) listTeachers(w http.ResponseWriter, r *http.Request) {
	listed, err := h.staff.ListTeachers(r.Context())
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

type postNoticeRequest struct {
	Title    string `json:"title" validate:"required"`
	Details  string `json:"details" validate:"required"`
	PostedBy string `json:"postedBy"`
	Date     string `json:"date" validate:"required"`
}

func (h *adminHandler) listNotices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	title := r.URL.Query().Get("title")
	date := r.URL.Query().Get("date")

	var (
		listed []notices.Notice
		err    error
	)
	if title != "" || date != "" {
		listed, err = h.notices.Search(ctx, title, date)
	} else {
		listed, err = h.notices.List(ctx)
	}
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) postNotice(w http.ResponseWriter, r *http.Request) {
	var req postNoticeRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	posted, err := h.notices.Post(r.Context(), notices.Notice{
		Title:    req.Title,
		Details:  req.Details,
		PostedBy: req.PostedBy,
		Date:     req.Date,
	})
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionNotices, posted.ID, "created")
	h.respondJSON(w, r, http.StatusCreated, posted)
}

func (h *adminHandler) deleteNotice(w http.ResponseWriter, r *http.Request) {
	noticeID := chi.URLParam(r, "noticeID")
	if err := h.notices.Delete(r.Context(), noticeID); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionNotices, noticeID, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "notice deleted"})
}
