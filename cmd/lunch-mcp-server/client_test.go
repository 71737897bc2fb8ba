package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRecommend_PostsDate(t *testing.T) {
	var gotPath, gotDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		gotDate = body["date"]
		w.Write([]byte(`{"success":true,"recommendation":{"restaurant":{"name":"Soba","genre":"Noodles"},"selected_by":"auto","note":"few options left","session_id":"session-1"}}`))
	}))
	defer srv.Close()

	rec, err := NewLunchAPIClient(srv.URL+"/").Recommend(context.Background(), "2025-01-15", false)
	if err != nil {
		t.Fatalf("recommend: %v", err)
	}
	if gotPath != "/api/lunch" || gotDate != "2025-01-15" {
		t.Fatalf("unexpected request path=%s date=%s", gotPath, gotDate)
	}
	text := formatRecommendation(rec)
	for _, want := range []string{"Soba", "Noodles", "few options left", "session-1"} {
		if !strings.Contains(text, want) {
			t.Errorf("formatted recommendation missing %q:\n%s", want, text)
		}
	}
}

func TestDo_ReportsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"no active order session"}`))
	}))
	defer srv.Close()

	_, err := NewLunchAPIClient(srv.URL).CollectOrders(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no active order session") {
		t.Fatalf("want API error message, got %v", err)
	}
}

func TestFormatSession(t *testing.T) {
	s := apiSession{
		ID:         "session-1",
		Restaurant: apiRestaurant{Name: "Curry House"},
		Orders:     []apiOrder{{UserName: "Aki", MenuItem: "Katsu curry", Quantity: 2, Notes: "spicy"}},
	}
	text := formatSession(s, true)
	if !strings.Contains(text, "Intake open") || !strings.Contains(text, "• Aki: Katsu curry x2 (spicy)") {
		t.Fatalf("unexpected session text:\n%s", text)
	}
	if !strings.Contains(formatSession(apiSession{}, false), "No orders yet") {
		t.Fatalf("empty session should say so")
	}
}
