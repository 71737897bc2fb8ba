package orders

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"lunch-bot/internal/restaurant"
)

// DefaultCutoffHour is the local hour at which order intake stops.
const DefaultCutoffHour = 11

var (
	ErrSessionNotFound = errors.New("order session not found")
	ErrSessionInactive = errors.New("order session is closed")
)

// BusinessCalendar is the calendar predicate the manager depends on.
type BusinessCalendar interface {
	IsBusinessDay(t time.Time) bool
	Location() *time.Location
}

// Order is one line item. Within a session (UserID, MenuItem) is unique.
type Order struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	MenuItem  string    `json:"menu_item"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	ChannelID string    `json:"channel_id,omitempty"`
}

// OrderRequest carries the caller's input for AddOrder.
type OrderRequest struct {
	UserID    string
	UserName  string
	MenuItem  string
	Quantity  int // values below 1 count as 1
	Notes     string
	ChannelID string
}

// MenuMessage is a menu posting seen while a session was open.
type MenuMessage struct {
	UserID     string    `json:"user_id"`
	UserName   string    `json:"user_name"`
	Text       string    `json:"text"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Session collects orders for one restaurant on one calendar date.
// Active -> Closed is the only transition.
type Session struct {
	ID         string                `json:"id"`
	Date       time.Time             `json:"date"`
	Restaurant restaurant.Restaurant `json:"restaurant"`
	IsActive   bool                  `json:"is_active"`
	Orders     []Order               `json:"orders"`
	CreatedAt  time.Time             `json:"created_at"`
	ClosedAt   *time.Time            `json:"closed_at,omitempty"`
	Summary    string                `json:"summary,omitempty"`
}

func (s Session) clone() Session {
	s.Orders = append([]Order(nil), s.Orders...)
	if s.ClosedAt != nil {
		t := *s.ClosedAt
		s.ClosedAt = &t
	}
	return s
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithCutoffHour(h int) Option {
	return func(m *Manager) {
		if h > 0 && h <= 24 {
			m.cutoffHour = h
		}
	}
}

func WithIDGenerator(gen func() string) Option {
	return func(m *Manager) { m.newID = gen }
}

// Manager owns every order session. All state sits behind one lock and
// callers only ever receive copies.
type Manager struct {
	mu         sync.RWMutex
	cal        BusinessCalendar
	now        func() time.Time
	newID      func() string
	cutoffHour int
	sessions   []*Session // creation order
	menus      map[string][]MenuMessage
}

func NewManager(cal BusinessCalendar, opts ...Option) *Manager {
	m := &Manager{
		cal:        cal,
		now:        time.Now,
		newID:      uuid.NewString,
		cutoffHour: DefaultCutoffHour,
		menus:      make(map[string][]MenuMessage),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) dateKey(t time.Time) string {
	return t.In(m.cal.Location()).Format("2006-01-02")
}

// CreateSession opens a new active session for today. It does not check for
// an existing active session; use HasActiveSession to guard double creation.
func (m *Manager) CreateSession(r restaurant.Restaurant) Session {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.create(r, now).clone()
}

// OpenSession makes r today's active session. An active session that already
// has orders is kept and returned with created=false; an empty one is closed
// and replaced. The check and the swap happen under one lock.
func (m *Manager) OpenSession(r restaurant.Restaurant) (s Session, created bool) {
	now := m.now()
	today := m.dateKey(now)

	m.mu.Lock()
	defer m.mu.Unlock()
	if active := m.activeOn(today); active != nil {
		if len(active.Orders) > 0 {
			return active.clone(), false
		}
		active.IsActive = false
		closedAt := now
		active.ClosedAt = &closedAt
		active.Summary = GenerateSummary(*active, m.cal.Location())
	}
	return m.create(r, now).clone(), true
}

// create appends a new active session. Callers hold m.mu.
func (m *Manager) create(r restaurant.Restaurant, now time.Time) *Session {
	s := &Session{
		ID:         "session-" + m.newID(),
		Date:       now,
		Restaurant: r,
		IsActive:   true,
		Orders:     []Order{},
		CreatedAt:  now,
	}
	m.sessions = append(m.sessions, s)
	m.menus[s.ID] = nil
	return s
}

// ActiveSession returns the first active session dated today.
func (m *Manager) ActiveSession() (Session, bool) {
	today := m.dateKey(m.now())

	m.mu.RLock()
	defer m.mu.RUnlock()
	if s := m.activeOn(today); s != nil {
		return s.clone(), true
	}
	return Session{}, false
}

// HasActiveSession reports whether an active session exists for date.
func (m *Manager) HasActiveSession(date time.Time) bool {
	key := m.dateKey(date)

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.activeOn(key) != nil
}

func (m *Manager) activeOn(key string) *Session {
	for _, s := range m.sessions {
		if s.IsActive && m.dateKey(s.Date) == key {
			return s
		}
	}
	return nil
}

func (m *Manager) find(id string) *Session {
	for _, s := range m.sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Session looks a session up by ID.
func (m *Manager) Session(id string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s := m.find(id); s != nil {
		return s.clone(), true
	}
	return Session{}, false
}

// AddOrder adds an order or, when the user already ordered the same item,
// merges into it: quantity grows, timestamp refreshes, notes are replaced
// only when new notes are given.
func (m *Manager) AddOrder(sessionID string, req OrderRequest) (Order, error) {
	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.find(sessionID)
	if s == nil {
		return Order{}, ErrSessionNotFound
	}
	if !s.IsActive {
		return Order{}, ErrSessionInactive
	}

	for i := range s.Orders {
		o := &s.Orders[i]
		if o.UserID == req.UserID && o.MenuItem == req.MenuItem {
			o.Quantity += qty
			o.Timestamp = now
			if req.Notes != "" {
				o.Notes = req.Notes
			}
			return *o, nil
		}
	}

	o := Order{
		ID:        "order-" + m.newID(),
		UserID:    req.UserID,
		UserName:  req.UserName,
		MenuItem:  req.MenuItem,
		Quantity:  qty,
		Notes:     req.Notes,
		Timestamp: now,
		ChannelID: req.ChannelID,
	}
	s.Orders = append(s.Orders, o)
	return o, nil
}

// RemoveOrder deletes an order. Missing session or order yields false.
func (m *Manager) RemoveOrder(sessionID, orderID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.find(sessionID)
	if s == nil {
		return false
	}
	for i, o := range s.Orders {
		if o.ID == orderID {
			s.Orders = append(s.Orders[:i], s.Orders[i+1:]...)
			return true
		}
	}
	return false
}

// CloseSession deactivates the session and stores its summary. Closing an
// already closed session is accepted and recomputes the summary.
func (m *Manager) CloseSession(id string) (Session, error) {
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.find(id)
	if s == nil {
		return Session{}, ErrSessionNotFound
	}
	s.IsActive = false
	s.ClosedAt = &now
	s.Summary = GenerateSummary(*s, m.cal.Location())
	return s.clone(), nil
}

// IsIntakeOpen reports whether new orders should be accepted at now:
// a business day before the cutoff hour. AddOrder does not enforce it.
func (m *Manager) IsIntakeOpen(now time.Time) bool {
	local := now.In(m.cal.Location())
	return m.cal.IsBusinessDay(local) && local.Hour() < m.cutoffHour
}

// AddMenuMessage records a menu posting for a session.
func (m *Manager) AddMenuMessage(sessionID string, msg MenuMessage) bool {
	if msg.RecordedAt.IsZero() {
		msg.RecordedAt = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.find(sessionID) == nil {
		return false
	}
	m.menus[sessionID] = append(m.menus[sessionID], msg)
	return true
}

// TodayMenuMessages returns menu postings of today's active session.
func (m *Manager) TodayMenuMessages() []MenuMessage {
	today := m.dateKey(m.now())

	m.mu.RLock()
	defer m.mu.RUnlock()
	s := m.activeOn(today)
	if s == nil {
		return nil
	}
	return append([]MenuMessage(nil), m.menus[s.ID]...)
}

// All returns copies of every session, newest first.
func (m *Manager) All() []Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Session, 0, len(m.sessions))
	for i := len(m.sessions) - 1; i >= 0; i-- {
		out = append(out, m.sessions[i].clone())
	}
	return out
}

func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = nil
	m.menus = make(map[string][]MenuMessage)
}

func (m *Manager) Location() *time.Location { return m.cal.Location() }

// GenerateSummary renders s in the manager's location.
func (m *Manager) GenerateSummary(s Session) string {
	return GenerateSummary(s, m.cal.Location())
}
