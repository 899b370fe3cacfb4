// Package cli is the interactive account-settings surface of the parley
// client. It renders controller state as text and forwards edits and
// submissions; all profile logic lives in the profile package.
package cli

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/parley-chat/parley/internal/client/api"
	"github.com/parley-chat/parley/internal/client/config"
	"github.com/parley-chat/parley/internal/client/profile"
	"github.com/parley-chat/parley/internal/client/session"
	"github.com/parley-chat/parley/internal/logging"
)

type App struct {
	config *config.Config
	cache  *session.Cache
	api    api.Client
	ctrl   *profile.Controller
	log    logging.Logger

	// sessionGone flips when the controller reports an invalidated
	// session; the REPL exits on its next iteration.
	sessionGone atomic.Bool
}

func NewApp(c *config.Config) (*App, error) {
	log := logging.NewTextLogger(os.Stderr, slog.LevelWarn)

	apiClient := api.NewHTTPClient(c.ServerBaseURL, api.StaticToken(c.APIToken), c.RequestTimeout, log)
	cache := session.New()

	a := &App{
		config: c,
		cache:  cache,
		api:    apiClient,
		log:    log,
	}
	a.ctrl = profile.NewController(cache, apiClient, a, log)
	return a, nil
}

// NavigateTo implements profile.Navigator. The CLI has no login surface to
// route to, so it reports the redirect and winds the session down.
func (a *App) NavigateTo(path string) {
	a.sessionGone.Store(true)
	printlnFn("Session expired, please sign in again (" + path + ")")
}

func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	printlnFn("Welcome to parley account settings (type 'help' for commands)")

	<-a.ctrl.Activate(ctx)
	defer a.ctrl.Deactivate()

	a.show(ctx)
	a.repl(ctx)
}
