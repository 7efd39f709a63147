package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	_ "github.com/amzorders/importer/internal/datasets" // Register all datasets
)

func newTestServer() *Server {
	// Handlers under test never reach the database.
	return NewServer(nil, 1024, time.Minute)
}

func TestHandleListDatasets(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/datasets", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var datasets []DatasetResponse
	if err := json.NewDecoder(rec.Body).Decode(&datasets); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(datasets) != 7 {
		t.Fatalf("len(datasets) = %d, want 7", len(datasets))
	}
	if datasets[0].Key != "retail_orders" {
		t.Errorf("first dataset = %s, want retail_orders (sequence order)", datasets[0].Key)
	}
	for _, d := range datasets {
		if d.Label == "" || len(d.FilePatterns) == 0 {
			t.Errorf("dataset %s has incomplete metadata: %+v", d.Key, d)
		}
	}
}

func TestHandleImport_UnknownDataset(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/import/nope", strings.NewReader("a,b\n1,2\n"))
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}

	var resp ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Error, "nope") {
		t.Errorf("error should name the dataset: %q", resp.Error)
	}
}

func TestHandleImport_EmptyBody(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/import/retail_orders", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRequestTimeout(t *testing.T) {
	s := NewServer(nil, 1024, 50*time.Millisecond)
	s.Router().Get("/stall", func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	req := httptest.NewRequest(http.MethodGet, "/stall", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusGatewayTimeout)
	}
}

func TestHandleReset_RequiresConfirm(t *testing.T) {
	s := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/api/reset", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
