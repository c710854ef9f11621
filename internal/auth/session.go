package auth

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

const (
	sessionName   = "mda_session"
	sessionUserID = "user_id"
)

// SessionStore keeps the signed-in user id in a signed cookie.
type SessionStore struct {
	store *sessions.CookieStore
}

func NewSessionStore(secret string, secure bool, maxAgeSeconds int) *SessionStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &SessionStore{store: store}
}

func (s *SessionStore) Save(w http.ResponseWriter, r *http.Request, userID uuid.UUID) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Values[sessionUserID] = userID.String()

	return sess.Save(r, w)
}

// UserID returns the user id carried by the request's session cookie, if any.
func (s *SessionStore) UserID(r *http.Request) (uuid.UUID, bool) {
	sess, err := s.store.Get(r, sessionName)
	if err != nil || sess.IsNew {
		return uuid.Nil, false
	}

	raw, ok := sess.Values[sessionUserID].(string)
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

func (s *SessionStore) Clear(w http.ResponseWriter, r *http.Request) error {
	sess, _ := s.store.Get(r, sessionName)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}

	return sess.Save(r, w)
}
