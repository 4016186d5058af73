package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/complyscan/complyscan/internal/catalog"
	"github.com/complyscan/complyscan/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type auditRequest struct {
	Documents []auditDocument `json:"documents"`
}

type auditDocument struct {
	Path          string               `json:"path"`
	DocType       catalog.DocumentType `json:"doc_type"`
	InvoiceAmount *float64             `json:"invoice_amount"`
}

func (s *Server) handleAuditSubmit(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Documents) == 0 {
		jsonError(w, "at least one document is required", http.StatusBadRequest)
		return
	}

	var results []map[string]any
	for _, doc := range req.Documents {
		if doc.Path == "" {
			results = append(results, map[string]any{
				"error": "path is required",
			})
			continue
		}

		job := pipeline.NewJob(doc.Path, doc.DocType, doc.InvoiceAmount)
		if err := s.orchestrator.Submit(job); err != nil {
			results = append(results, map[string]any{
				"path":  doc.Path,
				"error": err.Error(),
			})
			continue
		}

		// A worker may already be mutating the job; read through the
		// snapshot.
		results = append(results, map[string]any{
			"path":     doc.Path,
			"job_id":   job.ID,
			"status":   job.Snapshot().Status,
			"poll_url": fmt.Sprintf("/api/audit/%s", job.ID),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"jobs": results})
}

func (s *Server) handleAuditStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(job.Snapshot())
}
