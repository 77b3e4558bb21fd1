package serveradmin

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school"
	"github.com/go-playground/validator/v10"
)

type apiMessage struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func (h *adminHandler) respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "could not marshal response", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// notifyError maps domain errors onto status codes. Validation problems
// are conflicts or bad requests with the human-readable message; anything
// else is a logged 500 so store failures never leak details.
func (h *adminHandler) notifyError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, school.ErrOverlapConflict),
		errors.Is(err, school.ErrDuplicateSlot),
		errors.Is(err, school.ErrDuplicateTimetable),
		errors.Is(err, school.ErrDuplicateRecord):
		status = http.StatusConflict
	case errors.Is(err, school.ErrInvalidRange),
		errors.Is(err, school.ErrInvalidInput),
		errors.Is(err, school.ErrMissingRequiredField),
		errors.Is(err, school.ErrUnknownDay),
		errors.Is(err, school.ErrUnknownSlot),
		errors.Is(err, school.ErrSubjectNotInClass):
		status = http.StatusBadRequest
	case errors.Is(err, docstore.ErrNotFound):
		status = http.StatusNotFound
	}

	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "request failed", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	h.respondJSON(w, r, status, apiMessage{Status: "error", Message: err.Error()})
}

func (h *adminHandler) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, apiMessage{Status: "error", Message: "invalid request body"})
		return false
	}
	if err := h.validate.Struct(v); err != nil {
		h.notifyError(w, r, err)
		return false
	}
	return true
}
