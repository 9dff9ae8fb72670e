package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/taxflow/internal/analysis"
	"github.com/cleared-dev/taxflow/internal/config"
	"github.com/cleared-dev/taxflow/internal/ledger"
	"github.com/cleared-dev/taxflow/internal/report"
	"github.com/cleared-dev/taxflow/internal/tax"
)

// uploadError carries the HTTP status for a rejected upload.
type uploadError struct {
	status int
	msg    string
}

func (e *uploadError) Error() string { return e.msg }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze accepts a multipart upload and returns the analysis as JSON.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	_, res, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, res.View())
}

// handleReport accepts the same upload as handleAnalyze and returns a PDF.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	cfg, res, ok := s.analyzeUpload(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	id, err := report.WritePDF(&buf, res, report.OptionsFromConfig(cfg))
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to render report")
		s.writeError(w, http.StatusInternalServerError, "rendering report failed")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="taxflow-report-%s.pdf"`, id))
	w.Header().Set("X-Report-ID", id)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Error().Err(err).Msg("Failed to write report")
	}
}

// analyzeUpload parses the form and runs the analysis. On failure it has already
// written the error response and returns ok=false.
func (s *Server) analyzeUpload(w http.ResponseWriter, r *http.Request) (*config.Config, *analysis.Result, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes)

	file, req, err := s.parseUpload(r)
	if err != nil {
		var ue *uploadError
		if errors.As(err, &ue) {
			s.writeError(w, ue.status, ue.msg)
		} else {
			s.writeError(w, http.StatusBadRequest, err.Error())
		}
		return nil, nil, false
	}
	defer file.Close()

	cfg, res, err := analysis.Analyze(file, req, s.log)
	if err != nil {
		s.log.Warn().Err(err).Msg("Rejected ledger")
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, nil, false
	}
	return cfg, res, true
}

func (s *Server) parseUpload(r *http.Request) (multipart.File, analysis.Request, error) {
	req := analysis.Request{ConfigPath: s.cfg.ConfigPath, Load: s.cfg.Load}

	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) || strings.Contains(err.Error(), "request body too large") {
			return nil, req, &uploadError{http.StatusRequestEntityTooLarge, fmt.Sprintf("upload exceeds %d bytes", MaxUploadBytes)}
		}
		return nil, req, &uploadError{http.StatusBadRequest, "expected multipart form: " + err.Error()}
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, req, &uploadError{http.StatusBadRequest, "missing file field"}
	}

	req.Format = strings.TrimSpace(r.FormValue("format"))
	if req.Format == "" {
		req.Format = ledger.FormatFromPath(header.Filename)
	}
	if sheet := r.FormValue("sheet"); sheet != "" {
		req.Load.Sheet = sheet
	}

	if raw := strings.TrimSpace(r.FormValue("taxable_ratio")); raw != "" {
		ratio, err := decimal.NewFromString(raw)
		if err == nil {
			err = tax.ValidateRatio(ratio)
		}
		if err != nil {
			file.Close()
			return nil, req, &uploadError{http.StatusBadRequest, fmt.Sprintf("taxable_ratio %q: %v", raw, err)}
		}
		req.Ratio = &ratio
	}
	return file, req, nil
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeError writes an error response
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{
		"error": message,
	})
}
