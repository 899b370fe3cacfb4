// Package profile keeps the account-settings form coherent with the session
// cache and the account service across three independent asynchronous event
// sources: the initial fetch, cache-change notifications, and user-initiated
// submission.
package profile

import (
	"context"
	"errors"
	"sync"

	"github.com/parley-chat/parley/internal/client/api"
	"github.com/parley-chat/parley/internal/client/models"
	"github.com/parley-chat/parley/internal/client/session"
	"github.com/parley-chat/parley/internal/common"
	"github.com/parley-chat/parley/internal/logging"
)

// User-facing status and error texts.
const (
	msgLoadFailed       = "failed to load profile"
	msgPasswordMismatch = "passwords do not match"
	msgNothingToUpdate  = "nothing to update"
	msgProfileUpdated   = "profile updated"
	msgUpdateFailed     = "something went wrong, try again later"
)

// Navigator is the collaborator that moves the user to another surface.
// The controller calls it exactly when the session is invalidated.
type Navigator interface {
	NavigateTo(path string)
}

// Controller orchestrates loading, editing and submitting the current
// user's profile. It reads and writes identity state exclusively through
// the session cache: a successful fetch or update is written to the cache,
// and the resulting subscription callback is the single code path that
// seeds the form, so fetch-originated and externally-originated cache
// updates behave identically.
type Controller struct {
	cache *session.Cache
	api   api.Client
	nav   Navigator
	log   logging.Logger

	mu          sync.Mutex
	active      bool
	initialized bool
	state       State
	form        Form
	fieldErrs   map[Field]string
	generalErr  string
	status      string
	lastUser    *models.User
	unsubscribe func()
}

// NewController wires a controller to its collaborators. log may be nil.
func NewController(cache *session.Cache, client api.Client, nav Navigator, log logging.Logger) *Controller {
	if log == nil {
		log = logging.Nop()
	}
	return &Controller{
		cache:     cache,
		api:       client,
		nav:       nav,
		log:       log,
		state:     StateLoading,
		fieldErrs: make(map[Field]string),
	}
}

// Activate subscribes to the session cache and, when the cache holds no
// user yet, starts the initial fetch. The subscription replay runs before
// Activate returns, so a warm cache yields StateReady immediately with no
// network call.
//
// The returned channel closes once activation settles: immediately when no
// fetch was needed, otherwise after the fetch completion has been handled.
func (c *Controller) Activate(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	if c.active {
		c.mu.Unlock()
		close(done)
		return done
	}
	c.active = true
	c.state = StateLoading
	c.mu.Unlock()

	unsubscribe := c.cache.Subscribe(c.onCacheChange)

	c.mu.Lock()
	c.unsubscribe = unsubscribe
	seeded := c.initialized
	c.mu.Unlock()

	if seeded {
		close(done)
		return done
	}

	go func() {
		defer close(done)
		c.fetch(ctx)
	}()
	return done
}

// Deactivate detaches the controller from the cache. In-flight fetch or
// submit completions detect the dead instance and no-op; the underlying
// calls themselves are not aborted.
func (c *Controller) Deactivate() {
	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}
	c.active = false
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

// SetField records a local edit. Editing a field discards that field's
// pending error message.
func (c *Controller) SetField(f Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}

	switch f {
	case FieldUsername:
		c.form.Username = value
	case FieldEmail:
		c.form.Email = value
	case FieldAvatar:
		c.form.Avatar = value
	case FieldPassword:
		c.form.Password = value
	case FieldPasswordConfirm:
		c.form.PasswordConfirm = value
	default:
		return
	}
	delete(c.fieldErrs, f)
}

// Snapshot returns a point-in-time copy of the controller's visible state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := make(map[Field]string, len(c.fieldErrs))
	for k, v := range c.fieldErrs {
		errs[k] = v
	}
	return Snapshot{
		State:        c.state,
		Form:         c.form,
		FieldErrors:  errs,
		GeneralError: c.generalErr,
		Status:       c.status,
	}
}

// Submit validates the draft, computes the minimal change-set and, when it
// is non-empty, sends it to the account service. The returned channel
// closes once the attempt settles; attempts resolved locally (mismatched
// passwords, nothing to update) settle before Submit returns.
//
// Whatever the outcome, both password fields are empty once the attempt
// settles.
func (c *Controller) Submit(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	if !c.active || c.state != StateReady {
		c.mu.Unlock()
		close(done)
		return done
	}

	c.status = ""
	c.generalErr = ""
	c.fieldErrs = make(map[Field]string)

	if (c.form.Password != "" || c.form.PasswordConfirm != "") &&
		c.form.Password != c.form.PasswordConfirm {
		c.fieldErrs[FieldPasswordConfirm] = msgPasswordMismatch
		c.clearPasswords()
		c.mu.Unlock()
		close(done)
		return done
	}

	patch := buildPatch(c.form, c.lastUser)
	if patch.Empty() {
		c.status = msgNothingToUpdate
		c.clearPasswords()
		c.mu.Unlock()
		close(done)
		return done
	}

	c.state = StateSubmitting
	c.mu.Unlock()

	go func() {
		defer close(done)
		c.submit(ctx, patch)
	}()
	return done
}

// fetch loads the profile when the cache was empty at activation. Success
// goes through cache.Set; the subscription callback performs the actual
// transition to StateReady.
func (c *Controller) fetch(ctx context.Context) {
	u, err := c.api.CurrentUser(ctx)

	c.mu.Lock()
	if !c.active {
		c.mu.Unlock()
		return
	}

	if err != nil {
		if errors.Is(err, api.ErrUnauthorized) {
			c.mu.Unlock()
			c.sessionExpired(ctx)
			return
		}
		c.log.Error(ctx, "profile fetch failed", "err", err)
		c.state = StateLoadError
		c.generalErr = msgLoadFailed
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	c.cache.Set(*u)
}

// submit handles one update round-trip.
func (c *Controller) submit(ctx context.Context, patch api.UserPatch) {
	u, err := c.api.UpdateUser(ctx, patch)

	c.mu.Lock()
	if !c.active || !c.initialized {
		// Deactivated or logged out while the call was in flight.
		c.mu.Unlock()
		return
	}

	c.clearPasswords()
	c.state = StateReady

	switch {
	case err == nil:
		c.status = msgProfileUpdated
		// Reseed the form from the canonical server response through the
		// one seeding path: the cache notification.
		c.initialized = false
		c.mu.Unlock()
		c.cache.Set(*u)
		return

	case errors.Is(err, api.ErrUnauthorized):
		c.mu.Unlock()
		c.sessionExpired(ctx)
		return
	}

	var verr *api.ValidationError
	if errors.As(err, &verr) {
		c.fieldErrs, c.generalErr = mapServerErrors(verr)
	} else {
		c.log.Error(ctx, "profile update failed", "err", err)
		c.generalErr = msgUpdateFailed
	}
	c.mu.Unlock()
}

// onCacheChange is the subscription callback and the only place the form is
// ever seeded from identity state.
func (c *Controller) onCacheChange(u *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.active {
		return
	}

	if u == nil {
		// Logged out: drop everything so a later login reseeds cleanly.
		c.initialized = false
		c.lastUser = nil
		c.form = Form{}
		c.fieldErrs = make(map[Field]string)
		c.generalErr = ""
		c.status = ""
		c.state = StateLoading
		return
	}

	c.lastUser = u
	if c.initialized {
		// The draft is locally sovereign; a cache update from elsewhere
		// only refreshes the diff baseline.
		return
	}

	c.form = seededForm(u)
	c.initialized = true
	c.fieldErrs = make(map[Field]string)
	c.generalErr = ""
	c.state = StateReady
}

// sessionExpired destroys the shared identity and redirects to login. Every
// other cache subscriber observes the logout through the same notification.
func (c *Controller) sessionExpired(ctx context.Context) {
	c.log.Warn(ctx, "session rejected by server, logging out")
	c.cache.Clear()
	c.nav.NavigateTo(common.LoginPath)
}

// clearPasswords wipes both password fields. Callers hold c.mu.
func (c *Controller) clearPasswords() {
	c.form.Password = ""
	c.form.PasswordConfirm = ""
}
