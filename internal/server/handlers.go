package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sozercan/algowhisperer/api/models"
	"github.com/sozercan/algowhisperer/apimodels"
	"github.com/sozercan/algowhisperer/internal/analyzer"
	"github.com/sozercan/algowhisperer/internal/llm"
	"github.com/sozercan/algowhisperer/internal/platform"
	"github.com/sozercan/algowhisperer/internal/prompt"
)

// maxBodyBytes bounds request bodies; they only ever carry a URL and two
// short strings.
const maxBodyBytes = 64 << 10

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	slog.Debug("Received analysis request", "url", req.URL, "action", req.Action, "language", req.Language)

	action, err := prompt.NewAction(req.Action, req.Language)
	if err != nil {
		field := "action"
		if k, kerr := prompt.ParseKind(req.Action); kerr == nil && k == prompt.KindSolve {
			field = "language"
		}
		writeError(w, http.StatusBadRequest, analyzer.NewValidationError(field, err).Error())
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req.URL, action, llm.WithModel(req.Options.Model))
	if err != nil {
		var ve *analyzer.ValidationError
		if errors.As(err, &ve) {
			writeError(w, http.StatusBadRequest, ve.Error())
			return
		}
		// The analyzer already logged the cause.
		writeError(w, http.StatusBadGateway, analyzer.GenericFailureMessage)
		return
	}

	slog.Debug("Analysis request completed successfully", "id", result.ID, "sources", len(result.Sources))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req models.ClassifyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	c := platform.Evaluate(req.URL)
	writeJSON(w, http.StatusOK, apimodels.ClassifyResponse{
		URL:      c.Input,
		Status:   string(c.Status),
		Valid:    c.Valid(),
		Platform: string(c.Platform),
	})
}

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]prompt.Language{"languages": prompt.Languages})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apimodels.ErrorResponse{Error: msg})
}
