package profile

import (
	"strings"

	"github.com/parley-chat/parley/internal/client/api"
	"github.com/parley-chat/parley/internal/client/models"
)

// buildPatch diffs the draft against the last-known user and returns the
// minimal set of fields worth sending.
//
// Comparison rules: username and avatar compare as trimmed strings (an
// absent avatar counts as empty); email compares case-insensitively after
// trimming. Username and email are sent only when they differ and are
// non-empty. An avatar trimmed to empty while previously set is sent as an
// explicit clear. The password pair is sent whenever at least one of the
// two fields is non-empty; the caller validates that they match first.
func buildPatch(f Form, last *models.User) api.UserPatch {
	var prev models.User
	if last != nil {
		prev = *last
	}

	var p api.UserPatch

	if username := strings.TrimSpace(f.Username); username != "" && username != strings.TrimSpace(prev.Username) {
		p.Username = &username
	}

	if email := strings.TrimSpace(f.Email); email != "" && !strings.EqualFold(email, strings.TrimSpace(prev.Email)) {
		p.Email = &email
	}

	avatar := strings.TrimSpace(f.Avatar)
	prevAvatar := strings.TrimSpace(prev.Avatar)
	if avatar != prevAvatar {
		if avatar == "" {
			p.AvatarClear = true
		} else {
			p.Avatar = &avatar
		}
	}

	if f.Password != "" || f.PasswordConfirm != "" {
		password := f.Password
		confirmation := f.PasswordConfirm
		p.Password = &password
		p.PasswordConfirmation = &confirmation
	}

	return p
}
