package session

import (
	"context"
	"sync"
	"time"

	"github.com/alimgiray/ghdash/internal/models"
)

// Mode is the kind of result currently displayed
type Mode string

const (
	ModeNone   Mode = "none"
	ModeSingle Mode = "single"
	ModeBattle Mode = "battle"
)

// SearchState is the lifecycle of the search form
type SearchState string

const (
	SearchIdle    SearchState = "idle"
	SearchLoading SearchState = "loading"
	SearchLoaded  SearchState = "loaded"
	SearchErrored SearchState = "errored"
)

// Surface is a part of the view that shows one entity at a time
type Surface string

const (
	SurfaceResults Surface = "results"
	SurfaceDetail  Surface = "detail"
)

// Ticket identifies one view of a surface. A ticket stops being current as soon
// as a newer view of the same surface begins.
type Ticket struct {
	Surface    Surface
	Key        string
	generation uint64
}

type activeView struct {
	key        string
	generation uint64
	cancel     context.CancelFunc
}

// Session holds the view state of one browser session
type Session struct {
	ID string

	mu          sync.Mutex
	lastSeen    time.Time
	mode        Mode
	search      SearchState
	searchError string
	profile     *models.Profile
	battle      *models.BattleResult
	generation  uint64
	views       map[Surface]*activeView
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:       id,
		lastSeen: now,
		mode:     ModeNone,
		search:   SearchIdle,
		views:    make(map[Surface]*activeView),
	}
}

// BeginView starts a new view of surface and cancels the previous one.
// A new results view also ends the detail view opened for the previous results.
// The returned context is cancelled when a newer view begins or done is called.
func (s *Session) BeginView(parent context.Context, surface Surface, key string) (ctx context.Context, ticket Ticket, done func()) {
	ctx, cancel := context.WithCancel(parent)

	s.mu.Lock()
	if previous, ok := s.views[surface]; ok {
		previous.cancel()
	}
	if surface == SurfaceResults {
		if detail, ok := s.views[SurfaceDetail]; ok {
			detail.cancel()
			delete(s.views, SurfaceDetail)
		}
	}
	s.generation++
	view := &activeView{key: key, generation: s.generation, cancel: cancel}
	s.views[surface] = view
	s.mu.Unlock()

	ticket = Ticket{Surface: surface, Key: key, generation: view.generation}
	return ctx, ticket, cancel
}

// IsCurrent reports whether ticket still identifies the active view of its surface
func (s *Session) IsCurrent(ticket Ticket) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isCurrentLocked(ticket)
}

func (s *Session) isCurrentLocked(ticket Ticket) bool {
	view, ok := s.views[ticket.Surface]
	return ok && view.generation == ticket.generation && view.key == ticket.Key
}

// ActiveKey returns the key of the active view of surface
func (s *Session) ActiveKey(surface Surface) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if view, ok := s.views[surface]; ok {
		return view.key
	}
	return ""
}

// StartSearch moves the search form to loading
func (s *Session) StartSearch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = SearchLoading
	s.searchError = ""
}

// CompleteProfile stores a primary query result and switches to single mode.
// It returns false and changes nothing when ticket is stale.
func (s *Session) CompleteProfile(ticket Ticket, profile *models.Profile) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrentLocked(ticket) {
		return false
	}
	s.profile = profile
	s.mode = ModeSingle
	s.search = SearchLoaded
	s.searchError = ""
	return true
}

// CompleteBattle stores a comparison result and switches to battle mode.
// It returns false and changes nothing when ticket is stale.
func (s *Session) CompleteBattle(ticket Ticket, battle *models.BattleResult) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrentLocked(ticket) {
		return false
	}
	s.battle = battle
	s.mode = ModeBattle
	s.search = SearchLoaded
	s.searchError = ""
	return true
}

// FailSearch records a query error; the failed mode's result is discarded.
// It returns false and changes nothing when ticket is stale.
func (s *Session) FailSearch(ticket Ticket, mode Mode, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isCurrentLocked(ticket) {
		return false
	}
	switch mode {
	case ModeSingle:
		s.profile = nil
	case ModeBattle:
		s.battle = nil
	}
	s.mode = ModeNone
	s.search = SearchErrored
	s.searchError = err.Error()
	return true
}

// Profile returns the displayed primary result set, or nil outside single mode
func (s *Session) Profile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeSingle {
		return nil
	}
	return s.profile
}

// LastProfile returns the most recent primary result set regardless of mode
func (s *Session) LastProfile() *models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Battle returns the displayed comparison, or nil outside battle mode
func (s *Session) Battle() *models.BattleResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != ModeBattle {
		return nil
	}
	return s.battle
}

// Mode returns the displayed mode
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Search returns the search form state and the last error message
func (s *Session) Search() (SearchState, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search, s.searchError
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince(deadline time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(deadline)
}

// close cancels every in-flight view
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for surface, view := range s.views {
		view.cancel()
		delete(s.views, surface)
	}
}
