package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dgallion1/cvserve/internal/cv"
	"github.com/dgallion1/cvserve/internal/extract"
)

type statusResponse struct {
	Status          string `json:"status"`
	CVLoaded        bool   `json:"cv_loaded"`
	EmailConfigured bool   `json:"email_configured"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{
		Status:          "running",
		CVLoaded:        s.parser.Loaded(),
		EmailConfigured: s.sender.IsConfigured(),
	})
}

func (s *Server) handleUploadCV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !extract.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	// The extractors work on paths, so spool the upload to a temp file that
	// keeps the original extension.
	tmp, err := os.CreateTemp("", "cvserve-upload-*"+strings.ToLower(filepath.Ext(filename)))
	if err != nil {
		jsonError(w, "failed to store upload", http.StatusInternalServerError)
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	written, err := io.Copy(tmp, io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		tmp.Close()
		jsonError(w, "failed to store upload", http.StatusInternalServerError)
		return
	}
	tmp.Close()
	if written > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	if !s.parser.Load(tmpPath) {
		jsonError(w, "Failed to parse CV file", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":  "CV uploaded and parsed successfully",
		"filename": filename,
	})
}

type chatRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	if !s.parser.Loaded() {
		jsonError(w, "No CV loaded. Please upload a CV first.", http.StatusBadRequest)
		return
	}

	start := time.Now()
	answer := s.parser.AnswerQuestion(req.Question)
	s.stats.Record(time.Since(start).Milliseconds())

	writeJSON(w, http.StatusOK, answer)
}

type emailRequest struct {
	Recipient string `json:"recipient"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

type emailResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if _, err := mail.ParseAddress(req.Recipient); err != nil {
		jsonError(w, "invalid recipient address", http.StatusBadRequest)
		return
	}

	success, message := s.sender.Send(r.Context(), req.Recipient, req.Subject, req.Body)
	writeJSON(w, http.StatusOK, emailResponse{Success: success, Message: message})
}

func (s *Server) handleCVInfo(w http.ResponseWriter, r *http.Request) {
	summary, err := s.parser.GetSummary()
	if err != nil {
		if errors.Is(err, cv.ErrNotLoaded) {
			jsonError(w, "No CV loaded", http.StatusBadRequest)
			return
		}
		jsonError(w, "failed to summarize CV", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleEmailStatus(w http.ResponseWriter, r *http.Request) {
	configured, message := s.sender.TestConnection()
	writeJSON(w, http.StatusOK, map[string]any{
		"configured": configured,
		"message":    message,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.stats.Snapshot())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}
