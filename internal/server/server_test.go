package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"readright/internal/analyze"
	"readright/internal/rewrite"
	"readright/internal/store"
)

type fakeGenerator struct {
	out   string
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	f.calls++
	return f.out, nil
}

func newTestServer(t *testing.T, gen rewrite.Generator, cache *store.Cache) *Server {
	t.Helper()
	cfg := Config{
		Addr:             ":0",
		MinDocumentChars: 0,
		RewriteModel:     "test-model",
		Analyze:          analyze.DefaultConfig(),
	}
	return New(cfg, rewrite.New(gen, time.Second), cache)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
}

func TestRootStatus(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ReadRight") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodOptions, "/analyze", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing permissive CORS header")
	}
}

func TestAnalyzeJSONText(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	body, _ := json.Marshal(map[string]string{
		"text": "The tenant shall indemnify the landlord against all claims. The cat sat on the mat.",
	})
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		GradeLevel       float64 `json:"grade_level"`
		TotalSentences   int     `json:"total_sentences"`
		TopRiskSentences []struct {
			Sentence string `json:"sentence"`
			Score    int    `json:"score"`
		} `json:"top_risk_sentences"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if resp.TotalSentences != 2 {
		t.Errorf("total_sentences = %d, want 2", resp.TotalSentences)
	}
	if len(resp.TopRiskSentences) != 1 {
		t.Fatalf("expected 1 top risk sentence, got %d", len(resp.TopRiskSentences))
	}
	if resp.TopRiskSentences[0].Score != 4 {
		t.Errorf("score = %d, want 4 (shall + indemnify)", resp.TopRiskSentences[0].Score)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	body, _ := json.Marshal(map[string]string{"text": "   "})
	req := httptest.NewRequest(http.MethodPost, "/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("empty text must analyze to a zero result, got %d", w.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if resp["grade_level"].(float64) != 0 {
		t.Errorf("grade_level = %v, want 0", resp["grade_level"])
	}
}

func TestAnalyzeUploadTxt(t *testing.T) {
	srv := newTestServer(t, nil, nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "lease.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write([]byte("The tenant shall pay a penalty of 50 dollars if rent is late.\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "top_risk_sentences") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestAnalyzeUploadScannedRejected(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	srv.cfg.MinDocumentChars = 500

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "scan.txt")
	fw.Write([]byte("short"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for scanned-looking upload, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRewriteWithoutCredential(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	body, _ := json.Marshal(map[string]string{"sentence": "The tenant shall vacate forthwith."})
	req := httptest.NewRequest(http.MethodPost, "/rewrite", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("failure outcomes still answer 200, got %d", w.Code)
	}
	var outcome rewrite.Outcome
	if err := json.Unmarshal(w.Body.Bytes(), &outcome); err != nil {
		t.Fatalf("json decode: %v", err)
	}
	if outcome.OK {
		t.Fatal("expected failure outcome without credential")
	}
	if !strings.Contains(outcome.Reason, "not configured") {
		t.Errorf("reason = %q", outcome.Reason)
	}
}

func TestRewriteUsesCache(t *testing.T) {
	cache, err := store.Open(filepath.Join(t.TempDir(), "rewrites.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	defer cache.Close()

	gen := &fakeGenerator{out: "You must move out immediately."}
	srv := newTestServer(t, gen, cache)

	post := func() rewrite.Outcome {
		body, _ := json.Marshal(map[string]string{"sentence": "The tenant shall vacate forthwith."})
		req := httptest.NewRequest(http.MethodPost, "/rewrite", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var outcome rewrite.Outcome
		if err := json.Unmarshal(w.Body.Bytes(), &outcome); err != nil {
			t.Fatalf("json decode: %v", err)
		}
		return outcome
	}

	first := post()
	if !first.OK || first.Text != "You must move out immediately." {
		t.Fatalf("first outcome: %+v", first)
	}
	second := post()
	if !second.OK || second.Text != first.Text {
		t.Fatalf("second outcome: %+v", second)
	}
	if gen.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", gen.calls)
	}
}

func TestRewriteMissingSentence(t *testing.T) {
	srv := newTestServer(t, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/rewrite", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
