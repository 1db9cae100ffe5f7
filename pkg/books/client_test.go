package books

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookgpt-be/internal/pkg/logger"
)

func testLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewZapLogger(t.TempDir()+"/app.log", false)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			t.Errorf("missing q parameter")
		}
		if r.URL.Query().Get("projection") != "lite" {
			t.Errorf("projection = %q, want lite", r.URL.Query().Get("projection"))
		}
		w.Write([]byte(`{
			"items": [
				{"id": "vol1", "volumeInfo": {"title": "Dune", "authors": ["Frank Herbert"]}},
				{"id": "vol2", "volumeInfo": {"title": "Dune Messiah", "authors": ["Frank Herbert"]}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL, testLogger(t))

	results := client.Search(context.Background(), "dune frank herbert", 5)
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	if results[0].ID != "vol1" || results[0].Title != "Dune" {
		t.Errorf("first result = %+v", results[0])
	}
}

func TestSearchWithoutAPIKey(t *testing.T) {
	client := NewClient("", testLogger(t))

	results := client.Search(context.Background(), "dune", 5)
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestSearchServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL, testLogger(t))

	results := client.Search(context.Background(), "dune", 5)
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestSearchCachesResults(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"items": [{"id": "vol1", "volumeInfo": {"title": "Dune"}}]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL, testLogger(t))

	client.Search(context.Background(), "dune", 5)
	client.Search(context.Background(), "dune", 5)
	if calls != 1 {
		t.Errorf("upstream calls = %d, want 1", calls)
	}
}

func TestGetVolume(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/volumes/vol1") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{
			"id": "vol1",
			"volumeInfo": {
				"title": "Dune",
				"authors": ["Frank Herbert"],
				"description": "Desert planet epic.",
				"categories": ["Fiction"],
				"industryIdentifiers": [
					{"type": "ISBN_10", "identifier": "0441013597"},
					{"type": "ISBN_13", "identifier": "9780441013593"}
				],
				"imageLinks": {"smallThumbnail": "http://img/small.jpg"}
			}
		}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL, testLogger(t))

	detail := client.GetVolume(context.Background(), "vol1")
	if detail == nil {
		t.Fatal("detail = nil, want volume")
	}
	if detail.ISBN13 != "9780441013593" {
		t.Errorf("ISBN13 = %q, want the ISBN_13 identifier", detail.ISBN13)
	}
	if detail.Thumbnail != "http://img/small.jpg" {
		t.Errorf("Thumbnail = %q, want smallThumbnail fallback", detail.Thumbnail)
	}
	if detail.Description != "Desert planet epic." {
		t.Errorf("Description = %q", detail.Description)
	}
}

func TestGetVolumeNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClientWithBaseURL("test-key", server.URL, testLogger(t))

	if detail := client.GetVolume(context.Background(), "missing"); detail != nil {
		t.Errorf("detail = %+v, want nil", detail)
	}
}

func TestGetVolumeEmptyID(t *testing.T) {
	client := NewClient("test-key", testLogger(t))

	if detail := client.GetVolume(context.Background(), ""); detail != nil {
		t.Errorf("detail = %+v, want nil", detail)
	}
}
