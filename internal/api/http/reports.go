package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gradeflow/gradeflow/internal/gradestore"
)

// GET /reports
func ListReportsHandler(store gradestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summaries, err := store.ListReports(r.Context())
		if err != nil {
			http.Error(w, "list reports: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(summaries)
	}
}

// GET /reports/{studentID}
func GetReportHandler(store gradestore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idStr := strings.TrimSpace(chi.URLParam(r, "studentID"))
		id, err := strconv.Atoi(idStr)
		if err != nil {
			http.Error(w, "bad student id", http.StatusBadRequest)
			return
		}
		rep, err := store.GetReport(r.Context(), id)
		if err != nil {
			if errors.Is(err, gradestore.ErrNotFound) {
				http.Error(w, "report not found", http.StatusNotFound)
				return
			}
			http.Error(w, "get report: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(rep)
	}
}
