package session

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"
)

func TestFlashRoundTrip(t *testing.T) {
	sm := NewSessionManager()

	rec := httptest.NewRecorder()
	sm.AddFlash(rec, httptest.NewRequest(http.MethodPost, "/Product/Update", nil), "Could not update. The product was already deleted.")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected session cookie, got %v", cookies)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	got := sm.PopFlashes(next)
	if !reflect.DeepEqual(got, []string{"Could not update. The product was already deleted."}) {
		t.Fatalf("unexpected flashes %v", got)
	}
	if again := sm.PopFlashes(next); len(again) != 0 {
		t.Fatalf("flashes should be shown once, got %v", again)
	}
}

func TestAddFlashReusesSession(t *testing.T) {
	sm := NewSessionManager()
	first := httptest.NewRecorder()
	sm.AddFlash(first, httptest.NewRequest(http.MethodGet, "/", nil), "one")
	cookie := first.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	second := httptest.NewRecorder()
	sm.AddFlash(second, req, "two")

	if len(second.Result().Cookies()) != 0 {
		t.Fatal("existing session should not get a new cookie")
	}
	if got := sm.PopFlashes(req); !reflect.DeepEqual(got, []string{"one", "two"}) {
		t.Fatalf("unexpected flashes %v", got)
	}
}

func TestPopFlashesWithoutSession(t *testing.T) {
	sm := NewSessionManager()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "unknown"})

	if got := sm.PopFlashes(req); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
	if len(sm.Sessions) != 0 {
		t.Fatal("reading flashes must not create sessions")
	}
}

func TestCleanupRemovesStaleSessions(t *testing.T) {
	sm := NewSessionManager()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	sm.now = func() time.Time { return start }
	stale := sm.CreateSession()

	sm.now = func() time.Time { return start.Add(4 * time.Minute) }
	fresh := sm.CreateSession()

	sm.now = func() time.Time { return start.Add(6 * time.Minute) }
	if removed := sm.Cleanup(5 * time.Minute); removed != 1 {
		t.Fatalf("expected 1 removal, got %d", removed)
	}
	if _, ok := sm.GetSession(stale.ID); ok {
		t.Error("stale session should be gone")
	}
	if _, ok := sm.GetSession(fresh.ID); !ok {
		t.Error("fresh session should remain")
	}
}

func TestPopFlashesDropsDrainedSession(t *testing.T) {
	sm := NewSessionManager()
	rec := httptest.NewRecorder()
	sm.AddFlash(rec, httptest.NewRequest(http.MethodGet, "/", nil), "one")
	cookie := rec.Result().Cookies()[0]

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	sm.PopFlashes(req)

	if _, ok := sm.GetSession(cookie.Value); ok {
		t.Fatal("drained session should be removed")
	}

	// A stale cookie gets a fresh session on the next flash.
	next := httptest.NewRecorder()
	sm.AddFlash(next, req, "two")
	cookies := next.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value == cookie.Value {
		t.Fatalf("expected a new session cookie, got %v", cookies)
	}
	if len(sm.Sessions) != 1 {
		t.Fatalf("expected one live session, got %d", len(sm.Sessions))
	}
}
