package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/foxxcyber/notes-bridge/internal/config"
	"github.com/foxxcyber/notes-bridge/internal/handlers"
	"github.com/foxxcyber/notes-bridge/internal/services"
)

type upstreams struct {
	ocr, provider, cleaner *httptest.Server
	ocrCalls, cleanCalls   atomic.Int32
}

func newUpstreams(t *testing.T, ocrBody, cleanBody string) *upstreams {
	t.Helper()
	u := &upstreams{}
	u.ocr = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.ocrCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, ocrBody)
	}))
	u.cleaner = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.cleanCalls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, cleanBody)
	}))
	u.provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"ParsedResults":[{"ParsedText":" Page one "},{"ParsedText":"Page two\n"}]}`)
	}))
	t.Cleanup(func() {
		u.ocr.Close()
		u.cleaner.Close()
		u.provider.Close()
	})
	return u
}

func newTestApp(t *testing.T, u *upstreams) (*fiber.App, *config.Config) {
	t.Helper()
	cfg := &config.Config{
		Port:             "0",
		AllowedOrigins:   "*",
		MaxUploadMB:      5,
		Environment:      "test",
		OCRURL:           u.ocr.URL,
		LangflowURL:      u.cleaner.URL,
		OCRProviderURL:   u.provider.URL,
		OCRAPIKey:        "key",
		OCRLanguage:      "eng",
		OCREngine:        "2",
		OCRBackend:       config.BackendRemote,
		OCRTimeout:       5 * time.Second,
		PipelineTimeout:  5 * time.Second,
		CleanFields:      []string{"output", "result", "text", "message"},
		CleanNestedField: "text",
	}
	pipeline := services.NewPipeline(
		services.NewOCRBridgeClient(cfg.OCRURL, cfg.PipelineTimeout),
		services.NewCleaner(cfg.LangflowURL, cfg.CleanFields, cfg.CleanNestedField, cfg.PipelineTimeout),
	)
	h := handlers.New(cfg, services.NewOCRSpaceClient(cfg), pipeline)
	return New(cfg, h), cfg
}

func fileRequest(t *testing.T, path string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "notes.pdf")
	if err != nil {
		t.Fatalf("CreateFormFile() error = %v", err)
	}
	part.Write(content)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func emptyFormRequest(t *testing.T, path string) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("note", "no file here")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, []byte) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, body
}

func TestUploadHandwrittenCleansText(t *testing.T) {
	u := newUpstreams(t, `{"text":"messy ocr"}`, `{"output":"clean text"}`)
	app, _ := newTestApp(t, u)

	status, body := do(t, app, fileRequest(t, "/upload-handwritten", []byte("%PDF")))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}

	var got map[string]any
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("bad json: %v", err)
	}
	if got["success"] != true || got["text"] != "clean text" || got["raw_ocr"] != "messy ocr" {
		t.Fatalf("unexpected response: %s", body)
	}
}

func TestUploadFallsBackToRawOCR(t *testing.T) {
	u := newUpstreams(t, `{"text":"messy ocr"}`, `{"foo":"bar"}`)
	app, _ := newTestApp(t, u)

	status, body := do(t, app, fileRequest(t, "/upload-handwritten", []byte("%PDF")))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if !strings.Contains(string(body), `"text":"messy ocr"`) {
		t.Fatalf("expected fallback to raw OCR text: %s", body)
	}
}

func TestUploadWithoutFile(t *testing.T) {
	u := newUpstreams(t, `{"text":"messy ocr"}`, `{"output":"clean text"}`)
	app, _ := newTestApp(t, u)

	for _, path := range []string{"/upload-handwritten", "/upload-textbook", "/ocr"} {
		status, body := do(t, app, emptyFormRequest(t, path))
		if status != fiber.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", path, status)
		}
		if string(body) != `{"error":"No file provided"}` {
			t.Fatalf("%s: unexpected body: %s", path, body)
		}
	}

	if n := u.ocrCalls.Load() + u.cleanCalls.Load(); n != 0 {
		t.Fatalf("expected zero upstream calls, got %d", n)
	}
}

func TestAliasMatchesPrimary(t *testing.T) {
	u := newUpstreams(t, `{"text":"messy ocr"}`, `{"result":{"text":"nested clean"}}`)
	app, _ := newTestApp(t, u)

	_, primary := do(t, app, fileRequest(t, "/upload-handwritten", []byte("%PDF same")))
	_, alias := do(t, app, fileRequest(t, "/upload-textbook", []byte("%PDF same")))
	if !bytes.Equal(primary, alias) {
		t.Fatalf("alias differs from primary:\n%s\n%s", primary, alias)
	}
}

func TestUploadUpstreamFailure(t *testing.T) {
	u := newUpstreams(t, `not json`, `{"output":"clean"}`)
	app, _ := newTestApp(t, u)

	status, body := do(t, app, fileRequest(t, "/upload-handwritten", []byte("%PDF")))
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil || got["error"] == "" {
		t.Fatalf("expected error envelope, got %s", body)
	}
	if u.cleanCalls.Load() != 0 {
		t.Fatalf("cleaner must not be called after OCR failure")
	}
}

func TestUploadCleanerTimeout(t *testing.T) {
	u := newUpstreams(t, `{"text":"messy ocr"}`, `{"output":"clean"}`)
	release := make(chan struct{})
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer slow.Close()
	defer close(release)

	cfg := &config.Config{
		AllowedOrigins:   "*",
		MaxUploadMB:      5,
		OCRBackend:       config.BackendRemote,
		CleanFields:      []string{"output"},
		CleanNestedField: "text",
	}
	pipeline := services.NewPipeline(
		services.NewOCRBridgeClient(u.ocr.URL, time.Second),
		services.NewCleaner(slow.URL, cfg.CleanFields, cfg.CleanNestedField, 50*time.Millisecond),
	)
	app := New(cfg, handlers.New(cfg, nil, pipeline))

	status, body := do(t, app, fileRequest(t, "/upload-handwritten", []byte("%PDF")))
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d: %s", status, body)
	}
	var got map[string]string
	if err := json.Unmarshal(body, &got); err != nil || got["error"] == "" {
		t.Fatalf("expected error envelope, got %s", body)
	}
}

func TestOCRJoinsPages(t *testing.T) {
	u := newUpstreams(t, `{}`, `{}`)
	app, _ := newTestApp(t, u)

	status, body := do(t, app, fileRequest(t, "/ocr", []byte("%PDF")))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if string(body) != `{"text":"Page one \nPage two"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestOCRProviderFailureIsGeneric(t *testing.T) {
	u := newUpstreams(t, `{}`, `{}`)
	app, cfg := newTestApp(t, u)
	cfg.OCRProviderURL = ""
	// rebuild with an unconfigured provider
	h := handlers.New(cfg, services.NewOCRSpaceClient(cfg), services.NewPipeline(nil, nil))
	app = New(cfg, h)

	status, body := do(t, app, fileRequest(t, "/ocr", []byte("%PDF")))
	if status != fiber.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if string(body) != `{"error":"Internal Server Error"}` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestHealthReportsUpstreams(t *testing.T) {
	u := newUpstreams(t, `{}`, `{}`)
	app, cfg := newTestApp(t, u)
	cfg.OCRURL = "http://ocr.invalid:9/extract"
	cfg.LangflowURL = "http://langflow.invalid/api/v1/webhook/abc"

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	want := `{"status":"healthy","ocr_service":"http://ocr.invalid:9/extract","langflow_webhook":"http://langflow.invalid/api/v1/webhook/abc"}`
	if string(body) != want {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	u := newUpstreams(t, `{}`, `{}`)
	app, _ := newTestApp(t, u)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test() error = %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("unexpected CORS header: %q", got)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	u := newUpstreams(t, `{}`, `{}`)
	app, _ := newTestApp(t, u)

	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if status != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(string(body), "go_goroutines") {
		t.Fatalf("expected prometheus exposition, got %.200s", body)
	}
}
