package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ledgerbot/internal/commands"
	"ledgerbot/internal/core"
	"ledgerbot/internal/report"
	"ledgerbot/internal/sheets/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	rows := [][]string{
		append([]string(nil), core.Headers...),
		{"alice", "2000", "Salary", "Salary", "Income", "2024-03-01 09:00:00"},
		{"alice", "10", "Lunch", "Food", "Expense", "2024-03-02 12:30:00"},
	}
	store := memory.NewWithRows(rows)
	now := func() time.Time { return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC) }
	handler := commands.NewHandler(store, report.New(store, now), now, nil)

	srv := NewServer(Config{Addr: ":0", RequestsPerMinute: 1000}, handler)
	t.Cleanup(func() { srv.limiter.Stop() })
	return srv
}

func postCommand(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/command", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["status"] != "ok" {
		t.Fatalf("body = %q err = %v", rec.Body.String(), err)
	}
}

func TestCommandEndpoint(t *testing.T) {
	srv := newTestServer(t)
	rec := postCommand(t, srv, `{"user":"alice","command":"balance","args":{"period":"month"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body = %s", rec.Code, rec.Body.String())
	}
	var resp commandResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(resp.Text, "Balance Summary for this month") {
		t.Fatalf("text = %q", resp.Text)
	}
}

func TestCommandEndpointValidation(t *testing.T) {
	srv := newTestServer(t)

	if rec := postCommand(t, srv, `{"command":"balance"}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("missing user: status = %d", rec.Code)
	}
	if rec := postCommand(t, srv, `not json`); rec.Code != http.StatusBadRequest {
		t.Fatalf("bad json: status = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/command", nil)
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /command: status = %d", rec.Code)
	}
}

func TestCommandEndpointRateLimited(t *testing.T) {
	srv := newTestServer(t)
	srv.limiter.Stop()
	// Replace the handler chain with a tight limit for the test.
	tight := NewServer(Config{Addr: ":0", RequestsPerMinute: 1}, srv.handler)
	t.Cleanup(func() { tight.limiter.Stop() })

	body := `{"user":"alice","command":"help"}`
	if rec := postCommand(t, tight, body); rec.Code != http.StatusOK {
		t.Fatalf("first request: status = %d", rec.Code)
	}
	if rec := postCommand(t, tight, body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: status = %d, want 429", rec.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	if got := clientIP(req); got != "10.0.0.1" {
		t.Fatalf("clientIP = %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Fatalf("clientIP with XFF = %q", got)
	}
}
