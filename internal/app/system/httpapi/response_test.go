package httpapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/rolehub/internal/app/system/httpapi"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.WriteJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusCreated)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want application/json", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["id"] != "abc" {
		t.Errorf("id: got %q, want %q", body["id"], "abc")
	}
}

func TestWriteNotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	httpapi.WriteNotFound(rec, "role type not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNotFound)
	}
	var body httpapi.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body.Error != "not_found" || body.Message != "role type not found" {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"x","bogus":1}`))
	var dst struct {
		Name string `json:"name"`
	}
	if err := httpapi.DecodeJSON(req, &dst); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestDecodeJSON_RejectsOversizedBody(t *testing.T) {
	big := `{"name":"` + strings.Repeat("a", httpapi.MaxBodyBytes) + `"}`
	req := httptest.NewRequest("POST", "/", strings.NewReader(big))
	var dst struct {
		Name string `json:"name"`
	}
	if err := httpapi.DecodeJSON(req, &dst); err == nil {
		t.Error("expected error for oversized body")
	}
}
