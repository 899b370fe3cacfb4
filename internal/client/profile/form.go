package profile

import (
	"github.com/parley-chat/parley/internal/client/models"
)

// Field identifies one editable form field.
type Field string

const (
	FieldUsername        Field = "username"
	FieldEmail           Field = "email"
	FieldAvatar          Field = "avatar"
	FieldPassword        Field = "password"
	FieldPasswordConfirm Field = "password_confirmation"
)

// Form is the working draft of the editable profile fields. It is seeded
// from the cached user exactly once per login and afterwards owned by local
// edits; background cache updates never overwrite it.
type Form struct {
	Username        string
	Email           string
	Avatar          string
	Password        string
	PasswordConfirm string
}

// seededForm builds a fresh draft from a known user. Password fields start
// empty; they never carry server state.
func seededForm(u *models.User) Form {
	return Form{
		Username: u.Username,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}

// State names the controller's lifecycle phase.
type State int

const (
	// StateLoading covers both "fetch in flight" and "logged out".
	StateLoading State = iota
	// StateReady means the form is seeded and editable.
	StateReady
	// StateSubmitting means an update is in flight.
	StateSubmitting
	// StateLoadError means the initial fetch failed. Terminal for the
	// attempt; recovery is a new controller activation.
	StateLoadError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateLoadError:
		return "load-error"
	default:
		return "unknown"
	}
}

// Snapshot is the read-only view handed to the rendering surface.
type Snapshot struct {
	State        State
	Form         Form
	FieldErrors  map[Field]string
	GeneralError string
	Status       string
}
