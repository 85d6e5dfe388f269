package discord

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuildHasAdmin(t *testing.T) {
	tests := []struct {
		name        string
		permissions int64
		want        bool
	}{
		{
			name:        "administrator bit set",
			permissions: PermissionAdministrator,
			want:        true,
		},
		{
			name:        "administrator among other bits",
			permissions: PermissionAdministrator | 1024 | 2048,
			want:        true,
		},
		{
			name:        "other bits only",
			permissions: 1024,
			want:        false,
		},
		{
			name:        "no permissions",
			permissions: 0,
			want:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Guild{Permissions: tt.permissions}
			assert.Equal(t, tt.want, g.HasAdmin())
		})
	}
}

func TestGuildRoleLabel(t *testing.T) {
	assert.Equal(t, "Owner", Guild{Owner: true}.RoleLabel())
	assert.Equal(t, "Administrator", Guild{Owner: false}.RoleLabel())
}

func TestAPIErrorMessage(t *testing.T) {
	withStatus := &APIError{Op: "user_guilds", StatusCode: 429, Err: errors.New("rate limited")}
	assert.Contains(t, withStatus.Error(), "user_guilds")
	assert.Contains(t, withStatus.Error(), "429")

	transport := &APIError{Op: "current_user", Err: errors.New("connection refused")}
	assert.Contains(t, transport.Error(), "connection refused")
	assert.NotContains(t, transport.Error(), "status")
}

func TestAPIErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &APIError{Op: "current_user", Err: inner}
	assert.ErrorIs(t, err, inner)
}

func TestIsUnauthorized(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "401 api error",
			err:  &APIError{Op: "user_guilds", StatusCode: 401, Err: errors.New("invalid token")},
			want: true,
		},
		{
			name: "wrapped 401",
			err:  fmt.Errorf("loading guilds: %w", &APIError{Op: "user_guilds", StatusCode: 401, Err: errors.New("invalid token")}),
			want: true,
		},
		{
			name: "other status",
			err:  &APIError{Op: "user_guilds", StatusCode: 500, Err: errors.New("server error")},
			want: false,
		},
		{
			name: "transport error",
			err:  &APIError{Op: "user_guilds", Err: errors.New("timeout")},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("401"),
			want: false,
		},
		{
			name: "nil",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUnauthorized(tt.err))
		})
	}
}
