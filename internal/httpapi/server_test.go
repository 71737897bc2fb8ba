package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"lunch-bot/internal/calendar"
	"lunch-bot/internal/candidates"
	"lunch-bot/internal/history"
	"lunch-bot/internal/lunch"
	"lunch-bot/internal/orders"
	"lunch-bot/internal/selection"
	"lunch-bot/internal/storage"
)

// Wednesday 2025-01-15 09:00 UTC
var testNow = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

type fixture struct {
	srv      *httptest.Server
	hist     *history.Store
	orders   *orders.Manager
	provider *candidates.Provider
}

func newFixture(t *testing.T, settings candidates.Settings) *fixture {
	t.Helper()
	clock := func() time.Time { return testNow }
	cal := calendar.New(time.UTC)
	hist := history.NewStore(cal, history.WithClock(clock))
	engine := selection.NewEngine(hist, selection.WithClock(clock), selection.WithRand(func() float64 { return 0 }))
	om := orders.NewManager(cal, orders.WithClock(clock))
	provider := candidates.NewProvider(candidates.NewStaticSource(candidates.DefaultRegion), settings)
	recorder, err := storage.NewFileRecorder(filepath.Join(t.TempDir(), "events.jsonl"))
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	svc := lunch.NewService(provider, engine, hist, om, nil,
		lunch.WithClock(clock), lunch.WithRand(func() float64 { return 0 }), lunch.WithRecorder(recorder))

	srv := httptest.NewServer(New(svc, hist, om, provider, cal).Handler())
	t.Cleanup(srv.Close)
	return &fixture{srv: srv, hist: hist, orders: om, provider: provider}
}

func defaultSettings() candidates.Settings {
	return candidates.Settings{UseDefaultData: true}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req, err := http.NewRequest(method, f.srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	out := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func TestLunch_RecommendsAndOpensSession(t *testing.T) {
	f := newFixture(t, defaultSettings())
	code, body := f.do(t, http.MethodPost, "/api/lunch", nil)
	if code != http.StatusOK || body["success"] != true {
		t.Fatalf("unexpected response %d: %v", code, body)
	}
	if f.hist.Len() != 1 {
		t.Fatalf("want 1 history record, got %d", f.hist.Len())
	}
	if _, ok := f.orders.ActiveSession(); !ok {
		t.Fatalf("recommendation should open an order session")
	}
}

func TestLunch_DateAndBadDate(t *testing.T) {
	f := newFixture(t, defaultSettings())
	code, _ := f.do(t, http.MethodPost, "/api/lunch", map[string]string{"date": "2025-01-14"})
	if code != http.StatusOK {
		t.Fatalf("want 200, got %d", code)
	}
	recs := f.hist.All()
	if len(recs) != 1 || recs[0].SelectedAt.Day() != 14 {
		t.Fatalf("selection should be recorded at the requested date: %+v", recs)
	}
	if len(f.orders.All()) != 0 {
		t.Fatalf("backdated selection must not open an order session")
	}

	if code, _ := f.do(t, http.MethodPost, "/api/lunch", map[string]string{"date": "14/01/2025"}); code != http.StatusBadRequest {
		t.Fatalf("want 400 for malformed date, got %d", code)
	}
}

func TestLunch_NoCandidates(t *testing.T) {
	f := newFixture(t, candidates.Settings{})
	code, body := f.do(t, http.MethodPost, "/api/lunch/manual", nil)
	if code != http.StatusServiceUnavailable || body["success"] != false {
		t.Fatalf("want 503, got %d: %v", code, body)
	}
}

func TestHistory_ListAndClear(t *testing.T) {
	f := newFixture(t, defaultSettings())
	f.hist.Append("Soba", history.SelectedManual, testNow)

	code, body := f.do(t, http.MethodGet, "/api/history", nil)
	if code != http.StatusOK || body["total_records"].(float64) != 1 {
		t.Fatalf("unexpected history response %d: %v", code, body)
	}
	stats := body["stats"].(map[string]interface{})
	last7 := stats["last_7_days"].(map[string]interface{})
	if last7["Soba"].(float64) != 1 {
		t.Fatalf("stats missing selection: %v", stats)
	}

	f.do(t, http.MethodDelete, "/api/history", nil)
	if f.hist.Len() != 0 {
		t.Fatalf("history not cleared")
	}
}

func TestSelectionAnalysis(t *testing.T) {
	f := newFixture(t, defaultSettings())
	code, body := f.do(t, http.MethodPost, "/api/selection-analysis", map[string]string{"action": "addTestHistory"})
	if code != http.StatusOK || body["added"].(float64) != 3 {
		t.Fatalf("want 3 seeded days (Mon..Wed), got %d: %v", code, body)
	}

	code, body = f.do(t, http.MethodGet, "/api/selection-analysis?date=2025-01-15", nil)
	if code != http.StatusOK {
		t.Fatalf("analysis: %d", code)
	}
	a := body["analysis"].(map[string]interface{})
	if a["target_date"] != "2025-01-15" || len(a["same_week_selections"].([]interface{})) == 0 {
		t.Fatalf("unexpected analysis: %v", a)
	}

	if code, _ := f.do(t, http.MethodPost, "/api/selection-analysis", map[string]string{"action": "nope"}); code != http.StatusBadRequest {
		t.Fatalf("want 400 for unknown action, got %d", code)
	}
}

func TestOrders_Lifecycle(t *testing.T) {
	f := newFixture(t, defaultSettings())

	code, body := f.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"action":     "createSession",
		"restaurant": map[string]string{"name": "Curry House"},
	})
	if code != http.StatusOK {
		t.Fatalf("create: %d %v", code, body)
	}
	sessionID := body["session"].(map[string]interface{})["id"].(string)

	code, body = f.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"action": "addOrder", "session_id": sessionID,
		"user_id": "u1", "user_name": "Aki", "menu_item": "Katsu curry", "quantity": 2,
	})
	if code != http.StatusOK {
		t.Fatalf("add order: %d %v", code, body)
	}
	orderID := body["order"].(map[string]interface{})["id"].(string)

	code, body = f.do(t, http.MethodGet, "/api/orders", nil)
	if code != http.StatusOK || body["intake_open"] != true || body["active_session"] == nil {
		t.Fatalf("unexpected orders view: %v", body)
	}

	if code, _ := f.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"action": "removeOrder", "session_id": sessionID, "order_id": orderID,
	}); code != http.StatusOK {
		t.Fatalf("remove: %d", code)
	}
	if code, _ := f.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"action": "removeOrder", "session_id": sessionID, "order_id": orderID,
	}); code != http.StatusNotFound {
		t.Fatalf("second remove should be 404, got %d", code)
	}

	if code, _ := f.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"action": "closeSession", "session_id": sessionID,
	}); code != http.StatusOK {
		t.Fatalf("close: %d", code)
	}
	code, _ = f.do(t, http.MethodPost, "/api/orders", map[string]interface{}{
		"action": "addOrder", "session_id": sessionID, "user_id": "u1", "menu_item": "Katsu curry",
	})
	if code != http.StatusConflict {
		t.Fatalf("order on closed session should be 409, got %d", code)
	}

	f.do(t, http.MethodDelete, "/api/orders", nil)
	if len(f.orders.All()) != 0 {
		t.Fatalf("sessions not cleared")
	}
}

func TestOrders_Errors(t *testing.T) {
	f := newFixture(t, defaultSettings())
	cases := []struct {
		body map[string]interface{}
		want int
	}{
		{map[string]interface{}{"action": "createSession"}, http.StatusBadRequest},
		{map[string]interface{}{"action": "closeSession"}, http.StatusBadRequest},
		{map[string]interface{}{"action": "closeSession", "session_id": "missing"}, http.StatusNotFound},
		{map[string]interface{}{"action": "addOrder", "session_id": "missing", "user_id": "u1", "menu_item": "x"}, http.StatusNotFound},
		{map[string]interface{}{"action": "bogus"}, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if code, _ := f.do(t, http.MethodPost, "/api/orders", tc.body); code != tc.want {
			t.Errorf("%v: want %d, got %d", tc.body, tc.want, code)
		}
	}
}

func TestCollectOrders(t *testing.T) {
	f := newFixture(t, defaultSettings())
	if code, _ := f.do(t, http.MethodPost, "/api/collect-orders", nil); code != http.StatusNotFound {
		t.Fatalf("collect without session should be 404, got %d", code)
	}

	if code, _ := f.do(t, http.MethodPost, "/api/orders", map[string]string{"action": "addTestData"}); code != http.StatusOK {
		t.Fatalf("seed demo orders: %d", code)
	}
	code, body := f.do(t, http.MethodPost, "/api/collect-orders", nil)
	if code != http.StatusOK {
		t.Fatalf("collect: %d %v", code, body)
	}
	if s, _ := body["summary"].(string); s == "" {
		t.Fatalf("summary missing: %v", body)
	}
	if _, ok := f.orders.ActiveSession(); ok {
		t.Fatalf("session should be closed")
	}
}

func TestWeekday(t *testing.T) {
	f := newFixture(t, defaultSettings())
	code, body := f.do(t, http.MethodGet, "/api/weekday", nil)
	if code != http.StatusOK || body["is_current_weekday"] != true || body["current_date"] != "2025-01-15" {
		t.Fatalf("unexpected weekday probe: %v", body)
	}
	days := body["week_days"].([]interface{})
	if len(days) != weekdayProbeDays {
		t.Fatalf("want %d days, got %d", weekdayProbeDays, len(days))
	}
	sat := days[3].(map[string]interface{})
	if sat["date"] != "2025-01-18" || sat["is_weekday"] != false {
		t.Fatalf("Saturday should not be a business day: %v", sat)
	}
}

func TestRestaurants(t *testing.T) {
	f := newFixture(t, defaultSettings())
	code, body := f.do(t, http.MethodGet, "/api/restaurants", nil)
	if code != http.StatusOK || body["count"].(float64) == 0 {
		t.Fatalf("unexpected list: %d %v", code, body)
	}
	if names := body["names"].([]interface{}); len(names) != int(body["count"].(float64)) {
		t.Fatalf("names and count disagree: %v", body)
	}

	newOne := map[string]string{"name": "Neighbourhood Ramen", "genre": "Ramen"}
	if code, _ := f.do(t, http.MethodPost, "/api/restaurants", newOne); code != http.StatusCreated {
		t.Fatalf("add: want 201, got %d", code)
	}
	if code, _ := f.do(t, http.MethodPost, "/api/restaurants", newOne); code != http.StatusConflict {
		t.Fatalf("duplicate: want 409, got %d", code)
	}
	if code, _ := f.do(t, http.MethodPost, "/api/restaurants", map[string]string{"name": "No Genre"}); code != http.StatusBadRequest {
		t.Fatalf("invalid: want 400, got %d", code)
	}
}

func TestRestaurantConfig(t *testing.T) {
	f := newFixture(t, defaultSettings())
	code, body := f.do(t, http.MethodPost, "/api/restaurant-config", map[string]interface{}{
		"use_default_data": false,
		"region":           "Fukui",
	})
	if code != http.StatusOK {
		t.Fatalf("update: %d", code)
	}
	settings := body["settings"].(map[string]interface{})
	if settings["use_default_data"] != false || settings["region"] != "fukui" {
		t.Fatalf("settings not applied: %v", settings)
	}
	if body["sheets_configured"] != false {
		t.Fatalf("sheets should not be configured")
	}
	found := false
	for _, r := range body["available_regions"].([]interface{}) {
		if r == "fukui" {
			found = true
		}
	}
	if !found {
		t.Fatalf("fukui missing from available regions: %v", body["available_regions"])
	}
	if got := f.provider.Settings(); got.UseDefaultData {
		t.Fatalf("provider settings not updated: %+v", got)
	}
}

func TestEvents(t *testing.T) {
	f := newFixture(t, defaultSettings())
	code, body := f.do(t, http.MethodGet, "/api/events", nil)
	if code != http.StatusOK || body["count"].(float64) != 0 {
		t.Fatalf("want empty event log, got %d %v", code, body)
	}

	f.do(t, http.MethodPost, "/api/lunch", nil)
	f.do(t, http.MethodPost, "/api/collect-orders", nil)

	_, body = f.do(t, http.MethodGet, "/api/events", nil)
	events := body["events"].([]interface{})
	if len(events) != 2 {
		t.Fatalf("want 2 events, got %v", body)
	}
	if first := events[0].(map[string]interface{}); first["kind"] != string(storage.EventSelection) {
		t.Fatalf("unexpected first event: %v", first)
	}
}
