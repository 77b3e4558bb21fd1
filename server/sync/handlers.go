package serversync

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"log/slog"

	"github.com/edusuite/edusuite/data/docstore"
)

var DEFAULT_MAX_RECORDS = 500
var LIMIT_MAX_RECORDS = 10_000

// exportable collections in a stable order; auth records never leave the
// server through this endpoint
var exportCollections = []string{
	docstore.CollectionStudents,
	docstore.CollectionStaff,
	docstore.CollectionClasses,
	docstore.CollectionSections,
	docstore.CollectionSubjects,
	docstore.CollectionSlots,
	docstore.CollectionTimeTables,
	docstore.CollectionNotices,
	docstore.CollectionPayrolls,
	docstore.CollectionFees,
	docstore.CollectionExpenses,
	docstore.CollectionExams,
	docstore.CollectionExamResults,
}

type syncHandler struct {
	store  docstore.Store
	logger *slog.Logger
}

type exportResult struct {
	Collections map[string][]docstore.Document `json:"collections"`
	Truncated   bool                           `json:"truncated"`
}

// syncAll dumps the requested collections so offline clients can mirror
// the data set. The record cap bounds the response, not each collection,
// so a truncated export tells the client to page with ?collections=.
func (h *syncHandler) syncAll(w http.ResponseWriter, r *http.Request) {
	requested := exportCollections
	if names := r.URL.Query().Get("collections"); names != "" {
		requested = []string{}
		for _, name := range strings.Split(names, ",") {
			name = strings.TrimSpace(name)
			if !isExportable(name) {
				http.Error(w, fmt.Sprintf("Unknown collection: %s", name), http.StatusBadRequest)
				return
			}
			requested = append(requested, name)
		}
	}

	maxRecordsCount := DEFAULT_MAX_RECORDS
	if inputMaxRecords := r.URL.Query().Get("maxRecordsCount"); inputMaxRecords != "" {
		var err error
		maxRecordsCount, err = strconv.Atoi(inputMaxRecords)
		if err != nil || maxRecordsCount <= 0 {
			http.Error(w, fmt.Sprintf("Could not parse records count: %s", inputMaxRecords), http.StatusBadRequest)
			return
		}
	}
	maxRecordsCount = min(maxRecordsCount, LIMIT_MAX_RECORDS)

	ctx := r.Context()
	result := exportResult{Collections: map[string][]docstore.Document{}}
	remaining := maxRecordsCount
	for _, collection := range requested {
		docs, err := h.store.ListAll(ctx, collection)
		if err != nil {
			h.logger.Error("Could not get export rows", "collection", collection, "err", err)
			http.Error(w, http.StatusText(500), 500)
			return
		}
		if len(docs) > remaining {
			docs = docs[:remaining]
			result.Truncated = true
		}
		result.Collections[collection] = docs
		remaining -= len(docs)
		if remaining == 0 {
			break
		}
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		h.logger.Error("Could not marshal export", "err", err)
		http.Error(w, http.StatusText(500), 500)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(resultJson)
}

func isExportable(name string) bool {
	for _, collection := range exportCollections {
		if collection == name {
			return true
		}
	}
	return false
}
