package server

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"readright/internal/analyze"
	"readright/internal/ingest"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ReadRight backend running"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeTextRequest struct {
	Text string `json:"text"`
}

// handleAnalyze accepts either a multipart document upload (field "file")
// or a JSON body with pre-extracted text.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		s.analyzeUpload(w, r)
		return
	}

	var req analyzeTextRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, analyze.Document(req.Text, s.cfg.Analyze))
}

func (s *Server) analyzeUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
		return
	}
	defer file.Close()

	// The PDF reader needs a file on disk, so spool the upload to a
	// temp path carrying the original extension.
	ext := strings.ToLower(filepath.Ext(header.Filename))
	tmp, err := os.CreateTemp("", "readright-*"+ext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "spool upload: "+err.Error())
		return
	}
	defer os.Remove(tmp.Name())
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		writeError(w, http.StatusInternalServerError, "spool upload: "+err.Error())
		return
	}
	tmp.Close()

	doc, err := ingest.ParseFile(tmp.Name())
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "extract text: "+err.Error())
		return
	}
	if err := ingest.CheckTextLayer(doc.Text, s.cfg.MinDocumentChars); err != nil {
		if errors.Is(err, ingest.ErrLikelyScanned) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, analyze.Document(doc.Text, s.cfg.Analyze))
}

type rewriteRequest struct {
	Sentence string `json:"sentence"`
}

// handleRewrite answers 200 with an outcome either way; clients check the
// ok flag rather than the status code.
func (s *Server) handleRewrite(w http.ResponseWriter, r *http.Request) {
	var req rewriteRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Sentence) == "" {
		writeError(w, http.StatusBadRequest, "sentence is required")
		return
	}

	if s.cache != nil {
		if cached, ok, err := s.cache.Get(req.Sentence, s.cfg.RewriteModel); err == nil && ok {
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "text": cached, "cached": true})
			return
		}
	}

	outcome := s.rewriter.Rewrite(r.Context(), req.Sentence)
	if outcome.OK && s.cache != nil {
		if err := s.cache.Put(req.Sentence, s.cfg.RewriteModel, outcome.Text); err != nil {
			// Cache trouble must not fail the request.
			writeJSON(w, http.StatusOK, outcome)
			return
		}
	}
	writeJSON(w, http.StatusOK, outcome)
}
