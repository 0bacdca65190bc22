package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"aircheck/internal/core"
)

func testServer(t *testing.T, authToken string, shows []core.Show) *Server {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	planner := core.NewPlanner(logger, loc)
	server, err := NewServer("127.0.0.1:0", authToken, shows, planner, logger, loc)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return server
}

func postPreview(t *testing.T, server *Server, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/schedule/preview", strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return rec, payload
}

func TestSchedulePreview(t *testing.T) {
	server := testServer(t, "", nil)

	// Saturday noon Eastern; weekday evening show resolves to Monday.
	rec, payload := postPreview(t, server,
		`{"pattern": "0 18 * * 1-5", "now": "2026-01-10T12:00:00-05:00"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["valid"] != true || payload["resolvable"] != true {
		t.Fatalf("unexpected payload %v", payload)
	}
	if payload["description"] != "Weekdays at 6:00 PM" {
		t.Fatalf("unexpected description %v", payload["description"])
	}
	next, err := time.Parse(time.RFC3339, payload["next_at"].(string))
	if err != nil {
		t.Fatalf("parse next_at: %v", err)
	}
	loc, _ := time.LoadLocation("America/New_York")
	want := time.Date(2026, 1, 12, 18, 0, 0, 0, loc)
	if !next.Equal(want) {
		t.Fatalf("expected %v, got %v", want, next)
	}
}

func TestSchedulePreviewUnresolvable(t *testing.T) {
	server := testServer(t, "", nil)

	rec, payload := postPreview(t, server, `{"pattern": "* * * * 1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["valid"] != true || payload["resolvable"] != false {
		t.Fatalf("unexpected payload %v", payload)
	}
	if payload["description"] != "Complex schedule" {
		t.Fatalf("unexpected description %v", payload["description"])
	}
	if _, present := payload["next_at"]; present {
		t.Fatal("unresolvable preview must omit next_at")
	}
}

func TestSchedulePreviewParseFailure(t *testing.T) {
	server := testServer(t, "", nil)

	rec, payload := postPreview(t, server, `{"pattern": "not a schedule"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if payload["valid"] != false {
		t.Fatalf("expected valid=false, got %v", payload)
	}
	// Pass-through policy: the raw pattern is still the display text.
	if payload["description"] != "not a schedule" {
		t.Fatalf("unexpected description %v", payload["description"])
	}
}

func TestSchedulePreviewValidation(t *testing.T) {
	server := testServer(t, "", nil)

	rec, _ := postPreview(t, server, `{"pattern": ""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty pattern, got %d", rec.Code)
	}

	rec, _ = postPreview(t, server, `{"pattern": "0 6 * * *", "tz": "Mars/Olympus"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown timezone, got %d", rec.Code)
	}
}

func TestLineupEndpoint(t *testing.T) {
	server := testServer(t, "", []core.Show{
		{Name: "Morning Jazz", Pattern: "06:00:00 on Monday, Wednesday, Friday"},
		{Name: "Mystery Hour", Pattern: "not a schedule"},
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/lineup?now=2026-01-06T09:00:00-05:00", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload lineupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Airings) != 2 {
		t.Fatalf("expected 2 airings, got %d", len(payload.Airings))
	}
	if payload.Airings[0].Show != "Morning Jazz" || payload.Airings[0].When != "Tomorrow" {
		t.Fatalf("unexpected first airing %+v", payload.Airings[0])
	}
	if payload.Airings[1].AirsAt != "" {
		t.Fatalf("expected no air time for unparseable show, got %+v", payload.Airings[1])
	}
}

func TestAuthMiddleware(t *testing.T) {
	server := testServer(t, "secret", nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/lineup", nil)
	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/lineup", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}

	// Health stays open.
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec = httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for health, got %d", rec.Code)
	}
}
