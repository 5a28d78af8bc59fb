package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pyrite-dev/pyrite/internal/diagnostic"
)

func postCheck(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/check", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCheckReportsIllegalAliasCall(t *testing.T) {
	handler := NewHandler(nil)

	body := `{"filename": "sample.py", "source": "from typing import Union\nT = Union[int, float]\nT(3)\n"}`
	rec := postCheck(t, handler, body)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp CheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.ErrorCount != 1 || len(resp.Diagnostics) != 1 {
		t.Fatalf("response = %+v, want exactly one error", resp)
	}
	d := resp.Diagnostics[0]
	if d.Code != diagnostic.CodeIllegalAliasCall {
		t.Errorf("code = %q, want %q", d.Code, diagnostic.CodeIllegalAliasCall)
	}
	if d.Span.Start.Line != 3 {
		t.Errorf("line = %d, want 3", d.Span.Start.Line)
	}
}

func TestCheckCleanSource(t *testing.T) {
	handler := NewHandler(nil)

	rec := postCheck(t, handler, `{"source": "I = int\nI(3)\n"}`)

	var resp CheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.ErrorCount != 0 || len(resp.Diagnostics) != 0 {
		t.Errorf("response = %+v, want no diagnostics", resp)
	}
	if resp.Filename != "<input>" {
		t.Errorf("filename = %q, want default <input>", resp.Filename)
	}
}

func TestCheckRejectsBadJSON(t *testing.T) {
	handler := NewHandler(nil)

	rec := postCheck(t, handler, "{broken")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCheckRejectsGet(t *testing.T) {
	handler := NewHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	handler := NewHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHTTP3ServerLifecycle(t *testing.T) {
	tlsCfg, err := SelfSignedTLSConfig()
	if err != nil {
		t.Fatal(err)
	}

	srv := NewHTTP3Server("127.0.0.1:0", tlsCfg, NewHandler(nil))
	addr, err := srv.Start()
	if err != nil {
		t.Fatalf("failed to start HTTP/3 server: %v", err)
	}
	defer srv.Stop()

	client := HTTP3Client(InsecureClientTLS(), 5*time.Second)
	defer ShutdownHTTP3(client)

	resp, err := client.Get("https://" + addr + "/healthz")
	if err != nil {
		t.Fatalf("healthz over HTTP/3: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(body)) != "ok" {
		t.Errorf("body = %q, want ok", body)
	}

	if err := srv.Stop(); err != nil {
		t.Errorf("stop: %v", err)
	}
}

func TestSelfSignedTLSConfig(t *testing.T) {
	cfg, err := SelfSignedTLSConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Certificates) != 1 {
		t.Fatalf("got %d certificates, want 1", len(cfg.Certificates))
	}
}
