package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/mda/internal/apperr"
	"github.com/MrJamesThe3rd/mda/internal/http/respond"
)

func TestError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{"NotFound", apperr.New(apperr.KindNotFound, "plan not found"), http.StatusNotFound, "NOT_FOUND", "plan not found"},
		{"WrappedConflict", fmt.Errorf("commit: %w", apperr.New(apperr.KindConflict, "taken")), http.StatusConflict, "CONFLICT", "taken"},
		{"Forbidden", apperr.New(apperr.KindForbidden, "forbidden"), http.StatusForbidden, "FORBIDDEN", "forbidden"},
		{"Internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL", "internal error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "Valid", body: `{"email":"awa@example.com","password":"secret1"}`},
		{name: "ShortPassword", body: `{"email":"awa@example.com","password":"abc"}`, wantErr: "Password must be at least 6"},
		{name: "LongPassword", body: `{"email":"awa@example.com","password":"` + strings.Repeat("a", 73) + `"}`, wantErr: "Password must be at most 72"},
		{name: "BadEmail", body: `{"email":"awa","password":"secret1"}`, wantErr: "Email must be a valid email"},
		{name: "Malformed", body: `{`, wantErr: "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst registerRequest

			err := respond.Decode(req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, apperr.KindInvalid, apperr.KindOf(err))
		})
	}
}
