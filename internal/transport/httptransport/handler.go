package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/statutecheck/statutecheck/internal/app"
	"github.com/statutecheck/statutecheck/internal/report"
	"github.com/statutecheck/statutecheck/internal/statute"
	"github.com/statutecheck/statutecheck/internal/transport/verifydto"
)

type Handler struct {
	svc app.VerifyService
}

func NewHandler(svc app.VerifyService) *Handler {
	return &Handler{svc: svc}
}

// Verify runs the full check suite. The format query parameter selects
// the body: json (default), sarif, or markdown.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	statutes, ok := h.decodeStatutes(w, r)
	if !ok {
		return
	}

	result, err := h.svc.Verify(r.Context(), statutes)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "verify failed", "details": err.Error()})
		return
	}

	switch r.URL.Query().Get("format") {
	case "sarif":
		w.Header().Set("Content-Type", "application/sarif+json")
		_ = report.WriteSARIF(w, result)
	case "markdown":
		w.Header().Set("Content-Type", "text/markdown")
		_ = report.WriteMarkdown(w, result)
	default:
		w.Header().Set("Content-Type", "application/json")
		_ = report.WriteJSON(w, result)
	}
}

func (h *Handler) Complexity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var in verifydto.ComplexityRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()})
		return
	}

	s, err := in.Statute.ToStatute()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid statute", "details": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, h.svc.AnalyzeComplexity(s))
}

func (h *Handler) Conflicts(w http.ResponseWriter, r *http.Request) {
	statutes, ok := h.decodeStatutes(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"conflicts": h.svc.DetectConflicts(statutes)})
}

func (h *Handler) Graph(w http.ResponseWriter, r *http.Request) {
	statutes, ok := h.decodeStatutes(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.svc.GraphMetrics(statutes))
}

func (h *Handler) decodeStatutes(w http.ResponseWriter, r *http.Request) ([]statute.Statute, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	var in verifydto.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json", "details": err.Error()})
		return nil, false
	}

	statutes, err := in.ToStatutes()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid statutes", "details": err.Error()})
		return nil, false
	}
	return statutes, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
