// Package api talks to the parley account service. It exposes a narrow
// Client interface so the rest of the client can be tested against fakes.
package api

import (
	"context"
	"encoding/json"

	"github.com/parley-chat/parley/internal/client/models"
)

// Client defines the account-service operations the client application needs.
type Client interface {
	Close() error
	// CurrentUser fetches the authenticated user's profile.
	CurrentUser(ctx context.Context) (*models.User, error)
	// UpdateUser applies a partial profile update and returns the canonical
	// user the server persisted.
	UpdateUser(ctx context.Context, patch UserPatch) (*models.User, error)
	// AvatarUploadURL asks the server for a presigned PUT URL for the given
	// file name, plus the public URL the avatar will be served from.
	AvatarUploadURL(ctx context.Context, filename string) (uploadURL string, publicURL string, err error)
}

// TokenSource supplies the bearer token attached to API requests. How the
// token is obtained (login flow, refresh) is outside this package.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource holding a fixed token string.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// UserPatch is a partial profile update. Nil pointer fields are omitted
// from the request entirely. AvatarClear sends an explicit null avatar,
// which the server interprets as "remove the avatar".
type UserPatch struct {
	Username             *string
	Email                *string
	Avatar               *string
	AvatarClear          bool
	Password             *string
	PasswordConfirmation *string
}

// Empty reports whether the patch carries no changes at all.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Avatar == nil &&
		!p.AvatarClear && p.Password == nil && p.PasswordConfirmation == nil
}

// MarshalJSON emits only the fields present in the patch. A cleared avatar
// is encoded as a literal null, distinct from an absent key.
func (p UserPatch) MarshalJSON() ([]byte, error) {
	body := make(map[string]any)
	if p.Username != nil {
		body["username"] = *p.Username
	}
	if p.Email != nil {
		body["email"] = *p.Email
	}
	switch {
	case p.AvatarClear:
		body["avatar"] = nil
	case p.Avatar != nil:
		body["avatar"] = *p.Avatar
	}
	if p.Password != nil {
		body["password"] = *p.Password
	}
	if p.PasswordConfirmation != nil {
		body["password_confirmation"] = *p.PasswordConfirmation
	}
	return json.Marshal(body)
}
