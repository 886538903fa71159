// Package session keeps short-lived, server-side flash messages keyed by a
// browser cookie.
//
// Types:
//   - Session: pending flash messages for one browser.
//   - SessionManager: all live sessions, looked up by cookie.
//
// A message added while handling one request is shown once on the next page
// the browser renders (typically after a redirect) and then discarded.
// Sessions untouched for longer than the cleanup age are purged by the
// server's background loop.
package session

import (
	"net/http"
	"sync"
	"time"

	"contosocrafts/internal/utils"
)

// CookieName is the cookie carrying the session id.
const CookieName = "contosocrafts_session"

type Session struct {
	ID        string
	Flashes   []string
	TouchedAt time.Time
	Mutex     sync.Mutex
}

type SessionManager struct {
	Sessions map[string]*Session
	Mutex    sync.RWMutex

	now func() time.Time
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		Sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

func (sm *SessionManager) CreateSession() *Session {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()

	session := &Session{
		ID:        utils.GenerateUUID(),
		Flashes:   []string{},
		TouchedAt: sm.now(),
	}
	sm.Sessions[session.ID] = session
	return session
}

func (sm *SessionManager) GetSession(id string) (*Session, bool) {
	sm.Mutex.RLock()
	defer sm.Mutex.RUnlock()
	session, exists := sm.Sessions[id]
	return session, exists
}

func (sm *SessionManager) DeleteSession(id string) {
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	delete(sm.Sessions, id)
}

// AddFlash queues msg for the browser behind r, starting a session and
// setting its cookie when needed.
func (sm *SessionManager) AddFlash(w http.ResponseWriter, r *http.Request, msg string) {
	session := sm.lookup(r)
	if session == nil {
		session = sm.CreateSession()
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    session.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	session.add(msg, sm.now())
}

// PopFlashes returns the pending messages for r and drops the drained
// session. It never creates one.
func (sm *SessionManager) PopFlashes(r *http.Request) []string {
	session := sm.lookup(r)
	if session == nil {
		return nil
	}
	flashes := session.pop()
	sm.DeleteSession(session.ID)
	return flashes
}

func (sm *SessionManager) lookup(r *http.Request) *Session {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	session, ok := sm.GetSession(cookie.Value)
	if !ok {
		return nil
	}
	return session
}

// Cleanup removes sessions untouched for longer than maxAge and reports how
// many were removed.
func (sm *SessionManager) Cleanup(maxAge time.Duration) int {
	now := sm.now()
	sm.Mutex.Lock()
	defer sm.Mutex.Unlock()
	removed := 0
	for id, session := range sm.Sessions {
		session.Mutex.Lock()
		stale := now.Sub(session.TouchedAt) > maxAge
		session.Mutex.Unlock()
		if stale {
			delete(sm.Sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Session) add(msg string, at time.Time) {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	s.Flashes = append(s.Flashes, msg)
	s.TouchedAt = at
}

func (s *Session) pop() []string {
	s.Mutex.Lock()
	defer s.Mutex.Unlock()
	flashes := s.Flashes
	s.Flashes = []string{}
	return flashes
}
