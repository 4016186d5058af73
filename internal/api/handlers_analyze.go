package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/complyscan/complyscan/internal/catalog"
	"github.com/complyscan/complyscan/internal/docsource"
)

// analyzeRequest is the shared body for the analyze endpoints. DocType
// and InvoiceAmount are only consulted by the operations that need
// them.
type analyzeRequest struct {
	Path          string               `json:"path"`
	DocType       catalog.DocumentType `json:"doc_type"`
	InvoiceAmount *float64             `json:"invoice_amount"`
}

func decodeAnalyzeRequest(w http.ResponseWriter, r *http.Request) (analyzeRequest, bool) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return req, false
	}
	if req.Path == "" {
		jsonError(w, "path is required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// writeResult maps operation outcomes to responses: open failures are
// the client's problem (422), anything else after a successful decode
// is ours (500).
func writeResult(w http.ResponseWriter, v any, err error) {
	if err != nil {
		var oe *docsource.OpenError
		if errors.As(err, &oe) {
			jsonError(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	res, err := s.analyzer.FindSections(req.Path, req.DocType)
	writeResult(w, res, err)
}

func (s *Server) handleStatements(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	res, err := s.analyzer.ExtractStatements(req.Path)
	writeResult(w, res, err)
}

func (s *Server) handleMath(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	res, err := s.analyzer.ValidateMath(req.Path)
	writeResult(w, res, err)
}

func (s *Server) handleSignatures(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	res, err := s.analyzer.CheckSignatures(req.Path, req.DocType, req.InvoiceAmount)
	writeResult(w, res, err)
}

func (s *Server) handleRedFlags(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	res, err := s.analyzer.DetectRedFlags(req.Path)
	writeResult(w, res, err)
}

func (s *Server) handleComparative(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeAnalyzeRequest(w, r)
	if !ok {
		return
	}
	res, err := s.analyzer.ComparativePeriods(req.Path)
	writeResult(w, res, err)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
