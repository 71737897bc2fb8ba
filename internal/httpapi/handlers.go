package httpapi

import (
	"net/http"
	"strings"
	"time"

	"lunch-bot/internal/analytics"
	"lunch-bot/internal/candidates"
	"lunch-bot/internal/orders"
	"lunch-bot/internal/restaurant"
)

const (
	historyPageSize  = 20
	sessionsPageSize = 10
	weekdayProbeDays = 7
)

type lunchRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, empty means now
}

type ordersRequest struct {
	Action     string                 `json:"action"`
	Restaurant *restaurant.Restaurant `json:"restaurant,omitempty"`
	SessionID  string                 `json:"session_id,omitempty"`
	OrderID    string                 `json:"order_id,omitempty"`
	UserID     string                 `json:"user_id,omitempty"`
	UserName   string                 `json:"user_name,omitempty"`
	MenuItem   string                 `json:"menu_item,omitempty"`
	Quantity   int                    `json:"quantity,omitempty"`
	Notes      string                 `json:"notes,omitempty"`
}

type weekday struct {
	Date        string `json:"date"`
	DayName     string `json:"day_name"`
	IsWeekday   bool   `json:"is_weekday"`
	HolidayName string `json:"holiday_name,omitempty"`
}

func (s *Server) handleLunch(w http.ResponseWriter, r *http.Request) {
	var req lunchRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	target, err := s.parseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	rec, err := s.svc.Recommend(r.Context(), target)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"recommendation": rec,
		"time":           s.svc.Now().UTC(),
	})
}

func (s *Server) handleManual(w http.ResponseWriter, r *http.Request) {
	rec, err := s.svc.PickManual(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"recommendation": rec,
		"time":           s.svc.Now().UTC(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, _ *http.Request) {
	all := s.history.All()
	latest := all
	if len(latest) > historyPageSize {
		latest = latest[:historyPageSize]
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":       true,
		"history":       latest,
		"stats":         analytics.Stats(s.history),
		"total_records": len(all),
	})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, _ *http.Request) {
	s.history.Clear()
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "history cleared"})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	target, err := s.parseDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if target.IsZero() {
		target = s.svc.Now()
	}
	a := analytics.Analyze(s.history, target, s.cal.Location())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"analysis": a,
		"report":   a.GenerateReportSummary(),
	})
}

func (s *Server) handleAnalysisAction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action string `json:"action"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Action != "addTestHistory" {
		writeError(w, http.StatusBadRequest, "invalid action")
		return
	}
	added, err := s.svc.SeedWeekHistory(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "added": added})
}

func (s *Server) handleOrders(w http.ResponseWriter, _ *http.Request) {
	all := s.orders.All()
	latest := all
	if len(latest) > sessionsPageSize {
		latest = latest[:sessionsPageSize]
	}
	resp := map[string]interface{}{
		"success":        true,
		"active_session": nil,
		"sessions":       latest,
		"intake_open":    s.orders.IsIntakeOpen(s.svc.Now()),
		"total_sessions": len(all),
	}
	if active, ok := s.orders.ActiveSession(); ok {
		resp["active_session"] = active
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOrdersAction(w http.ResponseWriter, r *http.Request) {
	var req ordersRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	switch req.Action {
	case "createSession":
		if req.Restaurant == nil || strings.TrimSpace(req.Restaurant.Name) == "" {
			writeError(w, http.StatusBadRequest, "restaurant is required")
			return
		}
		sess := s.orders.CreateSession(req.Restaurant.Normalize())
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "session": sess})

	case "closeSession":
		if req.SessionID == "" {
			writeError(w, http.StatusBadRequest, "session_id is required")
			return
		}
		sess, err := s.orders.CloseSession(req.SessionID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "session": sess})

	case "addOrder":
		if req.SessionID == "" || req.UserID == "" || strings.TrimSpace(req.MenuItem) == "" {
			writeError(w, http.StatusBadRequest, "session_id, user_id and menu_item are required")
			return
		}
		o, err := s.orders.AddOrder(req.SessionID, orders.OrderRequest{
			UserID:   req.UserID,
			UserName: req.UserName,
			MenuItem: strings.TrimSpace(req.MenuItem),
			Quantity: req.Quantity,
			Notes:    req.Notes,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "order": o})

	case "removeOrder":
		if !s.orders.RemoveOrder(req.SessionID, req.OrderID) {
			writeError(w, http.StatusNotFound, "order not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})

	case "addTestData":
		sess, err := s.svc.SeedDemoOrders()
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "session": sess})

	default:
		writeError(w, http.StatusBadRequest, "invalid action")
	}
}

func (s *Server) handleClearOrders(w http.ResponseWriter, _ *http.Request) {
	s.orders.Clear()
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "message": "order sessions cleared"})
}

func (s *Server) handleCollect(w http.ResponseWriter, r *http.Request) {
	sess, err := s.svc.CollectOrders(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"session": sess,
		"summary": sess.Summary,
	})
}

func (s *Server) handleWeekday(w http.ResponseWriter, _ *http.Request) {
	now := s.svc.Now().In(s.cal.Location())
	days := make([]weekday, 0, weekdayProbeDays)
	for i := 0; i < weekdayProbeDays; i++ {
		d := now.AddDate(0, 0, i)
		name, _ := s.cal.HolidayName(d)
		days = append(days, weekday{
			Date:        s.cal.DateKey(d),
			DayName:     d.Weekday().String(),
			IsWeekday:   s.cal.IsBusinessDay(d),
			HolidayName: name,
		})
	}
	holiday, _ := s.cal.HolidayName(now)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":            true,
		"current_time":       now,
		"current_date":       s.cal.DateKey(now),
		"is_current_weekday": s.cal.IsBusinessDay(now),
		"holiday_name":       holiday,
		"next_weekday":       s.cal.DateKey(s.cal.NextBusinessDay(now)),
		"week_days":          days,
	})
}

func (s *Server) handleRestaurants(w http.ResponseWriter, r *http.Request) {
	static := s.provider.Static()
	list, err := static.Fetch(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"region":      static.Region(),
		"restaurants": list,
		"names":       restaurant.Names(list),
		"count":       len(list),
	})
}

func (s *Server) handleAddRestaurant(w http.ResponseWriter, r *http.Request) {
	var req restaurant.Restaurant
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := s.provider.Static().Add(req); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"success": true, "restaurant": req.Normalize()})
}

func (s *Server) handleRestaurantConfig(w http.ResponseWriter, _ *http.Request) {
	s.writeConfig(w, s.provider.Settings())
}

func (s *Server) handleUpdateRestaurantConfig(w http.ResponseWriter, r *http.Request) {
	var u candidates.SettingsUpdate
	if err := decodeBody(r, &u); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	s.writeConfig(w, s.provider.UpdateSettings(u))
}

func (s *Server) writeConfig(w http.ResponseWriter, settings candidates.Settings) {
	static := s.provider.Static()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"settings":          settings,
		"sheets_configured": s.provider.SheetsConfigured(),
		"default_count":     len(static.Defaults()),
		"regions":           static.RegionSizes(),
		"available_regions": static.Regions(),
	})
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	events, err := s.svc.Events()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"events":  events,
		"count":   len(events),
	})
}

// parseDate reads YYYY-MM-DD in the business time zone. Empty input gives
// the zero time.
func (s *Server) parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", v, s.cal.Location())
}
