package tequila

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farescan-service/internal/domain/repository"
	"farescan-service/internal/testutil"
)

func testParams() repository.SearchParams {
	return repository.SearchParams{
		NightsInDestFrom: 2,
		NightsInDestTo:   3,
		Limit:            1000,
		Currency:         "EUR",
	}
}

func TestSearchBuildsRequest(t *testing.T) {
	var gotPath string
	var gotQuery map[string]string
	var gotAPIKey string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"search_id": "s-1", "_results": 1, "data": [{"id": "i-1", "route": []}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testutil.Logger(t))
	rangeStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd := time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC)

	snapshot, err := client.Search(context.Background(), "BUD", rangeStart, rangeEnd, testParams())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if gotPath != "/v2/search" {
		t.Fatalf("path: got %q", gotPath)
	}
	if gotAPIKey != "secret" {
		t.Fatalf("apikey header: got %q", gotAPIKey)
	}
	want := map[string]string{
		"fly_from":           "BUD",
		"date_from":          "01/09/2026",
		"date_to":            "30/09/2026",
		"nights_in_dst_from": "2",
		"nights_in_dst_to":   "3",
		"limit":              "1000",
		"curr":               "EUR",
	}
	for key, value := range want {
		if gotQuery[key] != value {
			t.Fatalf("query %s: got %q, want %q", key, gotQuery[key], value)
		}
	}

	if snapshot.SearchID != "s-1" || snapshot.Results != 1 || len(snapshot.Data) != 1 {
		t.Fatalf("snapshot not decoded: %+v", snapshot)
	}
	if client.StatusCode() != http.StatusOK {
		t.Fatalf("status: got %d", client.StatusCode())
	}
	if client.SearchURL() == "" {
		t.Fatalf("search URL not recorded")
	}
}

func TestSearchUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error": "upstream sad"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret", testutil.Logger(t))
	_, err := client.Search(context.Background(), "BUD", time.Now(), time.Now().AddDate(0, 1, 0), testParams())
	if err == nil {
		t.Fatalf("expected error on 502")
	}
	if client.StatusCode() != http.StatusBadGateway {
		t.Fatalf("status after failure: got %d", client.StatusCode())
	}
}

func TestSearchConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections

	client := NewClient(server.URL, "secret", testutil.Logger(t))
	_, err := client.Search(context.Background(), "BUD", time.Now(), time.Now().AddDate(0, 1, 0), testParams())
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if client.StatusCode() != 0 {
		t.Fatalf("status after transport failure: got %d", client.StatusCode())
	}
}
