package api

import (
	"context"
	_ "embed"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/fmuoria/resumeparser/internal/analyzer"
	"github.com/fmuoria/resumeparser/internal/ingestion"
	"github.com/fmuoria/resumeparser/internal/models"
)

// RequestIDHeader carries the per-request id in both directions
const RequestIDHeader = "X-Request-ID"

//go:embed static/index.html
var indexHTML []byte

// Server handles HTTP requests
type Server struct {
	analyzer  *analyzer.Analyzer
	files     *ingestion.FileHandler
	maxUpload int64
}

// NewServer creates a new API server
func NewServer(a *analyzer.Analyzer, files *ingestion.FileHandler, maxUploadBytes int64) *Server {
	return &Server{
		analyzer:  a,
		files:     files,
		maxUpload: maxUploadBytes,
	}
}

// Router returns the HTTP router
func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /parse", s.handleParse)
	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api", s.handleInfo)
	mux.HandleFunc("GET /{$}", s.handleIndex)

	return s.requestIDMiddleware(s.loggingMiddleware(mux))
}

// handleIndex serves the upload page
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(indexHTML)
}

// handleInfo provides API information
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Resume Parser",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"GET /":       "Upload page",
			"POST /parse": "Parse a resume (multipart: resume, optional job or job_text)",
			"GET /report": "Get the most recent analysis",
			"GET /health": "Health check",
		},
	})
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// handleParse stages the uploads, analyzes them and removes them again
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, http.StatusRequestEntityTooLarge, "upload exceeds the configured size limit")
			return
		}
		s.respondError(w, http.StatusBadRequest, "failed to parse form: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	resume, resumeHeader, err := r.FormFile("resume")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "resume file is required")
		return
	}
	defer resume.Close()

	resumeText, err := s.extractUpload(resume, resumeHeader)
	if err != nil {
		s.respondAnalysisError(w, errors.Wrap(err, "failed to read resume"))
		return
	}

	jobText := r.FormValue("job_text")
	job, jobHeader, err := r.FormFile("job")
	switch {
	case err == nil:
		defer job.Close()
		jobText, err = s.extractUpload(job, jobHeader)
		if err != nil {
			s.respondAnalysisError(w, errors.Wrap(err, "failed to read job description"))
			return
		}
	case !errors.Is(err, http.ErrMissingFile):
		s.respondError(w, http.StatusBadRequest, "failed to read job upload: "+err.Error())
		return
	}

	name := filepath.Base(resumeHeader.Filename)
	src := models.Source{File: name, Format: ingestion.Format(name)}
	report, err := s.analyzer.AnalyzeText(r.Context(), src, resumeText, jobText)
	if err != nil {
		s.respondAnalysisError(w, errors.Wrap(err, "analysis failed"))
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

// extractUpload saves one uploaded file, extracts its text and removes it
func (s *Server) extractUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	path, err := s.files.SaveUploadedFile(header.Filename, file)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := s.files.Remove(path); err != nil {
			log.WithError(err).Warn("Failed to remove staged upload")
		}
	}()

	text, err := ingestion.ExtractText(path)
	if err != nil {
		return "", err
	}
	if text == "" {
		log.WithField("file", header.Filename).Warn("No text extracted from upload")
	}
	return text, nil
}

// handleReport returns the most recent analysis
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.analyzer.GetReport()
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, report)
}

// statusFor maps pipeline errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, ingestion.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ingestion.ErrUnreadable):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) respondAnalysisError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	entry := log.WithError(err).WithField("request_id", w.Header().Get(RequestIDHeader))
	if status >= http.StatusInternalServerError {
		entry.Error("Parse request failed")
	} else {
		entry.Info("Parse request rejected")
	}
	s.respondError(w, status, err.Error())
}

// respondJSON sends a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.WithError(err).Error("Failed to encode JSON response")
	}
}

// respondError sends an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// requestIDMiddleware reuses the caller's X-Request-ID or assigns a new one
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(RequestIDHeader, id)
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"request_id": r.Header.Get(RequestIDHeader),
			"method":     r.Method,
			"path":       r.URL.Path,
			"remote":     r.RemoteAddr,
			"status":     rec.status,
			"duration":   time.Since(start).String(),
		}).Info("HTTP request")
	})
}
