package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"donelist/models"
	"donelist/utils"
)

func newAuthFixture(t *testing.T) *utils.SessionStore {
	t.Helper()

	m, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(m.Close)

	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sessions := utils.NewSessionStore(client)
	err = sessions.StoreSession(context.Background(), models.Session{
		SessionToken: "tok-1",
		UserID:       "user-1",
	}, time.Hour)
	if err != nil {
		t.Fatalf("store session: %v", err)
	}
	return sessions
}

func runSessionAuth(sessions *utils.SessionStore, prepare func(*http.Request)) (*httptest.ResponseRecorder, string) {
	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	if prepare != nil {
		prepare(req)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	var seenUserID string
	handler := SessionAuth(sessions)(func(c echo.Context) error {
		seenUserID = currentUserID(c)
		return c.NoContent(http.StatusOK)
	})
	_ = handler(c)
	return rec, seenUserID
}

func TestSessionAuthMissingToken(t *testing.T) {
	rec, _ := runSessionAuth(newAuthFixture(t), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if code := errorCode(t, rec); code != "UNAUTHORIZED" {
		t.Errorf("error code = %q, want UNAUTHORIZED", code)
	}
}

func TestSessionAuthUnknownToken(t *testing.T) {
	rec, _ := runSessionAuth(newAuthFixture(t), func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "forged"})
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestSessionAuthCookie(t *testing.T) {
	rec, userID := runSessionAuth(newAuthFixture(t), func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: "tok-1"})
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if userID != "user-1" {
		t.Errorf("resolved user = %q, want user-1", userID)
	}
}

func TestSessionAuthBearerHeader(t *testing.T) {
	rec, userID := runSessionAuth(newAuthFixture(t), func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer tok-1")
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if userID != "user-1" {
		t.Errorf("resolved user = %q, want user-1", userID)
	}
}
