package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore(t *testing.T) {
	store := NewSessionStore("0123456789abcdef0123456789abcdef", false, 3600)
	userID := uuid.New()

	rec := httptest.NewRecorder()
	require.NoError(t, store.Save(rec, httptest.NewRequest(http.MethodPost, "/login", nil), userID))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(cookies[0])

	got, ok := store.UserID(req)
	require.True(t, ok)
	assert.Equal(t, userID, got)

	clearRec := httptest.NewRecorder()
	require.NoError(t, store.Clear(clearRec, req))

	cleared := clearRec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Negative(t, cleared[0].MaxAge)
}

func TestSessionStore_NoCookie(t *testing.T) {
	store := NewSessionStore("0123456789abcdef0123456789abcdef", false, 3600)

	_, ok := store.UserID(httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.False(t, ok)
}
