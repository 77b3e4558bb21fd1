package serveradmin

import (
	"encoding/json"
	"net/http"

	"github.com/edusuite/edusuite/data/docstore"
	"github.com/edusuite/edusuite/school/exams"
	"github.com/edusuite/edusuite/school/finance"
	"github.com/go-chi/chi/v5"
)

type savePayrollRequest struct {
	Entries []finance.PayrollEntry `json:"employees" validate:"required,min=1"`
}

type payrollListResponse struct {
	Payrolls []finance.Payroll      `json:"payrolls"`
	Summary  finance.PayrollSummary `json:"summary"`
}

func (h *adminHandler) listPayrolls(w http.ResponseWriter, r *http.Request) {
	listed, err := h.payrolls.List(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	var entries []finance.PayrollEntry
	for _, p := range listed {
		entries = append(entries, p.Entries...)
	}
	h.respondJSON(w, r, http.StatusOK, payrollListResponse{
		Payrolls: listed,
		Summary:  finance.Summarize(entries),
	})
}

func (h *adminHandler) savePayroll(w http.ResponseWriter, r *http.Request) {
	var req savePayrollRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	saved, err := h.payrolls.Save(r.Context(), req.Entries)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionPayrolls, saved.ID, "created")
	h.respondJSON(w, r, http.StatusCreated, saved)
}

type feeListResponse struct {
	Records []finance.FeeRecord       `json:"records"`
	Summary finance.FeeSummary        `json:"summary"`
	ByClass []finance.ClassFeeSummary `json:"byClass"`
}

func (h *adminHandler) listFees(w http.ResponseWriter, r *http.Request) {
	listed, err := h.fees.List(r.Context(), r.URL.Query().Get("classId"), r.URL.Query().Get("search"))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, feeListResponse{
		Records: listed,
		Summary: finance.SummarizeFees(listed),
		ByClass: finance.SummarizeByClass(listed),
	})
}

func (h *adminHandler) upsertFee(w http.ResponseWriter, r *http.Request) {
	var record finance.FeeRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, apiMessage{Status: "error", Message: "invalid request body"})
		return
	}
	saved, err := h.fees.Upsert(r.Context(), record)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionFees, saved.AdmissionNumber, "updated")
	h.respondJSON(w, r, http.StatusOK, saved)
}

func (h *adminHandler) deleteFee(w http.ResponseWriter, r *http.Request) {
	admissionNumber := chi.URLParam(r, "admissionNumber")
	if err := h.fees.Delete(r.Context(), admissionNumber); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionFees, admissionNumber, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "fee record deleted"})
}

type expenseListResponse struct {
	Expenses []finance.Expense      `json:"expenses"`
	Summary  finance.ExpenseSummary `json:"summary"`
}

func (h *adminHandler) listExpenses(w http.ResponseWriter, r *http.Request) {
	listed, err := h.expenses.List(r.Context(), r.URL.Query().Get("month"))
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, expenseListResponse{
		Expenses: listed,
		Summary:  finance.SummarizeExpenses(listed),
	})
}

func (h *adminHandler) addExpense(w http.ResponseWriter, r *http.Request) {
	var expense finance.Expense
	if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, apiMessage{Status: "error", Message: "invalid request body"})
		return
	}
	added, err := h.expenses.Add(r.Context(), expense)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionExpenses, added.ID, "created")
	h.respondJSON(w, r, http.StatusCreated, added)
}

func (h *adminHandler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	expenseID := chi.URLParam(r, "expenseID")
	if err := h.expenses.Delete(r.Context(), expenseID); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionExpenses, expenseID, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "expense deleted"})
}

func (h *adminHandler) listExams(w http.ResponseWriter, r *http.Request) {
	listed, err := h.exams.ListExams(r.Context())
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) createExam(w http.ResponseWriter, r *http.Request) {
	var exam exams.Exam
	if err := json.NewDecoder(r.Body).Decode(&exam); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, apiMessage{Status: "error", Message: "invalid request body"})
		return
	}
	created, err := h.exams.CreateExam(r.Context(), exam)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionExams, created.ID, "created")
	h.respondJSON(w, r, http.StatusCreated, created)
}

func (h *adminHandler) deleteExam(w http.ResponseWriter, r *http.Request) {
	examID := chi.URLParam(r, "examID")
	if err := h.exams.DeleteExam(r.Context(), examID); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionExams, examID, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "exam deleted"})
}

func (h *adminHandler) listResults(w http.ResponseWriter, r *http.Request) {
	listed, err := h.exams.ListResults(r.Context())
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.respondJSON(w, r, http.StatusOK, listed)
}

func (h *adminHandler) addResult(w http.ResponseWriter, r *http.Request) {
	var result exams.Result
	if err := json.NewDecoder(r.Body).Decode(&result); err != nil {
		h.respondJSON(w, r, http.StatusBadRequest, apiMessage{Status: "error", Message: "invalid request body"})
		return
	}
	added, err := h.exams.AddResult(r.Context(), result)
	if err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionExamResults, added.ID, "created")
	h.respondJSON(w, r, http.StatusCreated, added)
}

func (h *adminHandler) deleteResult(w http.ResponseWriter, r *http.Request) {
	resultID := chi.URLParam(r, "resultID")
	if err := h.exams.DeleteResult(r.Context(), resultID); err != nil {
		h.notifyError(w, r, err)
		return
	}
	h.hub.Publish(r.Context(), docstore.CollectionExamResults, resultID, "deleted")
	h.respondJSON(w, r, http.StatusOK, apiMessage{Status: "ok", Message: "result deleted"})
}
