package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/at-ishikawa/palabra/internal/drill"
	"github.com/at-ishikawa/palabra/internal/lesson"
)

const sessionCookieName = "palabra_session"

type sessionContextKey struct{}

// withSession loads the session named by the cookie, or starts a new one on
// the main dictionary.
func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var session *drill.Session
		if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
			session, err = s.sessions.Get(r.Context(), cookie.Value)
			if err != nil && !errors.Is(err, drill.ErrSessionNotFound) {
				s.logger.Error("failed to load a session", "error", err)
				respondWithError(w, http.StatusInternalServerError, "Session could not be loaded")
				return
			}
		}
		if session == nil {
			session = drill.NewSession(lesson.DefaultLessonID)
		}

		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    session.ID,
			Path:     "/",
			MaxAge:   int((time.Duration(s.cfg.SessionTTLMinutes) * time.Minute).Seconds()),
			HttpOnly: true,
			Secure:   s.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionContextKey{}, session)))
	})
}

func sessionFrom(ctx context.Context) *drill.Session {
	session, _ := ctx.Value(sessionContextKey{}).(*drill.Session)
	return session
}

func (s *Server) saveSession(ctx context.Context, session *drill.Session) error {
	if err := s.sessions.Save(ctx, session); err != nil {
		s.logger.Error("failed to save a session", "session", session.ID, "error", err)
		return err
	}
	return nil
}
