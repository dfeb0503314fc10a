package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmuoria/resumeparser/internal/analyzer"
	"github.com/fmuoria/resumeparser/internal/ingestion"
	"github.com/fmuoria/resumeparser/internal/models"
	"github.com/fmuoria/resumeparser/internal/vocab"
)

type upload struct {
	field, name, content string
}

func newTestServer(t *testing.T, maxUpload int64) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	return NewServer(analyzer.New(vocab.Default()), ingestion.NewFileHandler(dir), maxUpload), dir
}

func multipartRequest(t *testing.T, files []upload, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		w, err := mw.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/parse", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestHandleParse(t *testing.T) {
	s, dir := newTestServer(t, 1<<20)
	router := s.Router()

	req := multipartRequest(t,
		[]upload{
			{"resume", "jane.txt", "Jane Doe\njane@example.com\nSkills\nSQL, Excel"},
			{"job", "job.txt", "SQL, Excel and Tableau required"},
		}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "jane.txt", report.Profile.Source.File)
	assert.Equal(t, "txt", report.Profile.Source.Format)
	assert.Equal(t, []string{"jane@example.com"}, report.Profile.Contact.Emails)
	require.NotNil(t, report.Match)
	assert.Equal(t, []string{"tableau"}, report.Match.Missing)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "staged uploads should be removed")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var last models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &last))
	assert.Equal(t, report, last)
}

func TestHandleParse_JobText(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)

	req := multipartRequest(t,
		[]upload{{"resume", "jane.md", "Jane Doe\nPython"}},
		map[string]string{"job_text": "Python and SQL"})
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var report models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.NotNil(t, report.Match)
	assert.Equal(t, 50.0, report.Match.ScorePercent)
}

func TestHandleParse_NoJob(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, multipartRequest(t, []upload{{"resume", "jane.txt", "Jane Doe"}}, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"match":null`)
}

func TestHandleParse_Errors(t *testing.T) {
	tests := []struct {
		name       string
		files      []upload
		wantStatus int
		wantError  string
	}{
		{
			name:       "Missing resume",
			files:      []upload{{"job", "job.txt", "SQL"}},
			wantStatus: http.StatusBadRequest,
			wantError:  "resume file is required",
		},
		{
			name:       "Legacy doc",
			files:      []upload{{"resume", "old.doc", "binary"}},
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  ".doc not supported",
		},
		{
			name:       "Unsupported type",
			files:      []upload{{"resume", "photo.png", "png"}},
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  "unsupported file type",
		},
		{
			name:       "Unreadable pdf",
			files:      []upload{{"resume", "broken.pdf", "not really a pdf"}},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "failed to read resume",
		},
		{
			name: "Unsupported job",
			files: []upload{
				{"resume", "jane.txt", "Jane Doe"},
				{"job", "job.rtf", "{\\rtf1}"},
			},
			wantStatus: http.StatusUnsupportedMediaType,
			wantError:  "failed to read job description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestServer(t, 1<<20)
			rec := httptest.NewRecorder()
			s.Router().ServeHTTP(rec, multipartRequest(t, tt.files, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body["error"], tt.wantError)
		})
	}
}

func TestHandleParse_NotMultipart(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/parse", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleParse_TooLarge(t *testing.T) {
	s, _ := newTestServer(t, 512)

	big := bytes.Repeat([]byte("a"), 4096)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, multipartRequest(t, []upload{{"resume", "big.txt", string(big)}}, nil))

	assert.Contains(t, []int{http.StatusRequestEntityTooLarge, http.StatusBadRequest}, rec.Code)
}

func TestHandleReport_Empty(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)

	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/report", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStaticRoutes(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)
	router := s.Router()

	tests := []struct {
		path       string
		wantStatus int
		wantType   string
		wantBody   string
	}{
		{"/", http.StatusOK, "text/html; charset=utf-8", "Resume Parser"},
		{"/health", http.StatusOK, "application/json", "healthy"},
		{"/api", http.StatusOK, "application/json", "POST /parse"},
		{"/missing", http.StatusNotFound, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
			}
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestRequestIDMiddleware_ReusesCallerID(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", ingestion.ErrLegacyDoc), http.StatusUnsupportedMediaType},
		{fmt.Errorf("wrap: %w", ingestion.ErrUnreadable), http.StatusUnprocessableEntity},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
