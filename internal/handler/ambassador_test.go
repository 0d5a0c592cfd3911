package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amba-app/amba/internal/database"
	"github.com/amba-app/amba/internal/model"
	"github.com/amba-app/amba/internal/store"
	"github.com/amba-app/amba/internal/websocket"
)

func setupAmbassadorHandler(t *testing.T) *AmbassadorHandler {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	hub := websocket.NewHub(slog.Default())
	return NewAmbassadorHandler(store.NewAmbassadorStore(db), hub, slog.Default())
}

func TestAmbassadorCreateHandler(t *testing.T) {
	h := setupAmbassadorHandler(t)

	body := `{"name": "Ayşe", "username": "ayse", "pin": "1234", "avatar": "https://example.com/a.jpg"}`
	req := httptest.NewRequest("POST", "/api/admin/ambassadors", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var got model.Ambassador
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Username != "ayse" {
		t.Errorf("username = %q, want %q", got.Username, "ayse")
	}
	if got.Avatar != "https://example.com/a.jpg" {
		t.Errorf("avatar = %q", got.Avatar)
	}
}

func TestAmbassadorCreateHandlerDuplicate(t *testing.T) {
	h := setupAmbassadorHandler(t)

	for i, want := range []int{http.StatusCreated, http.StatusConflict} {
		body := `{"name": "Ayşe", "username": "AYSE", "pin": "1234"}`
		if i == 0 {
			body = `{"name": "Ayşe", "username": "ayse", "pin": "1234"}`
		}
		req := httptest.NewRequest("POST", "/api/admin/ambassadors", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Create(rec, req)
		if rec.Code != want {
			t.Fatalf("call %d status = %d, want %d", i+1, rec.Code, want)
		}
	}
}

func TestAmbassadorCreateHandlerMissingFields(t *testing.T) {
	h := setupAmbassadorHandler(t)

	body := `{"name": "Ayşe", "username": "", "pin": "1234"}`
	req := httptest.NewRequest("POST", "/api/admin/ambassadors", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestAmbassadorDeleteHandlerNotFound(t *testing.T) {
	h := setupAmbassadorHandler(t)

	req := httptest.NewRequest("DELETE", "/api/admin/ambassadors/9999", nil)
	req.SetPathValue("id", "9999")
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestNormalizeAvatar(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/a.jpg", "https://example.com/a.jpg"},
		{"http://example.com/a.jpg", "http://example.com/a.jpg"},
		{"data:image/png;base64,AAAA", "data:image/png;base64,AAAA"},
		{"  https://example.com/a.jpg  ", "https://example.com/a.jpg"},
		{"ftp://example.com/a.jpg", ""},
		{"not-a-url", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeAvatar(tt.in); got != tt.want {
			t.Errorf("normalizeAvatar(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
