// Package session holds the per-user conversation state. Sessions live
// for the lifetime of the process and are created lazily on first
// interaction.
package session

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"grooviabot/catalog"
)

// Quality is the user's preferred audio rendition.
type Quality string

const (
	QualityLow    Quality = "low"
	QualityMedium Quality = "medium"
	QualityHigh   Quality = "high"
)

// State is the explicit conversation state. Transitions:
// Idle -> AwaitingQuery on a search menu selection,
// Idle -> Browsing on a successful search,
// AwaitingQuery persists across searches until a new menu selection.
type State int

const (
	StateIdle State = iota
	StateAwaitingQuery
	StateBrowsing
)

const maxHistory = 20

type HistoryEntry struct {
	Kind catalog.Kind
	ID   string
	Name string
	At   time.Time
}

// Item is one entry of the most recently fetched result page.
type Item struct {
	Kind catalog.Kind
	ID   string
	Name string
}

type Session struct {
	UserID int64

	mu          sync.Mutex
	quality     Quality
	state       State
	pendingKind catalog.Kind
	searchKind  catalog.Kind
	query       string
	page        int
	results     []Item
	history     []HistoryEntry
}

// View is a point-in-time copy of a session, safe to read without
// holding the session lock.
type View struct {
	UserID      int64
	Quality     Quality
	State       State
	PendingKind catalog.Kind
	SearchKind  catalog.Kind
	Query       string
	Page        int
	Results     []Item
	History     []HistoryEntry
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	results := make([]Item, len(s.results))
	copy(results, s.results)
	history := make([]HistoryEntry, len(s.history))
	copy(history, s.history)
	return View{
		UserID:      s.UserID,
		Quality:     s.quality,
		State:       s.state,
		PendingKind: s.pendingKind,
		SearchKind:  s.searchKind,
		Query:       s.query,
		Page:        s.page,
		Results:     results,
		History:     history,
	}
}

func (s *Session) Quality() Quality {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quality
}

func (s *Session) SetQuality(q Quality) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quality = q
}

// AwaitQuery marks the session as waiting for free text to use as a
// query of the given kind. Only the next AwaitQuery replaces the mode.
func (s *Session) AwaitQuery(kind catalog.Kind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateAwaitingQuery
	s.pendingKind = kind
}

// SetBrowsing overwrites kind, query, page and the result page in one
// step so a later page turn always sees a consistent quadruple. A
// pending query mode set by a menu selection survives searches.
func (s *Session) SetBrowsing(kind catalog.Kind, query string, page int, results []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateAwaitingQuery {
		s.state = StateBrowsing
	}
	s.searchKind = kind
	s.query = query
	s.page = page
	s.results = results
}

// AddHistory prepends an entry, evicting the oldest past the cap.
func (s *Session) AddHistory(entry HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append([]HistoryEntry{entry}, s.history...)
	if len(s.history) > maxHistory {
		s.history = s.history[:maxHistory]
	}
}

// Store maps user ids to their session, creating lazily.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{
		sessions: make(map[int64]*Session),
	}
}

func (st *Store) Get(userID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if sess, ok := st.sessions[userID]; ok {
		return sess
	}

	log.Tracef("creating session for user %d", userID)
	sess := &Session{
		UserID:  userID,
		quality: QualityHigh,
		state:   StateIdle,
	}
	st.sessions[userID] = sess
	return sess
}
