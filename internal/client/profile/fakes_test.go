package profile

import (
	"context"
	"sync"

	"github.com/parley-chat/parley/internal/client/api"
	"github.com/parley-chat/parley/internal/client/models"
)

// fakeAPI implements api.Client for controller tests. Returns and recorded
// arguments are guarded because completions run on controller goroutines.
type fakeAPI struct {
	mu sync.Mutex

	CurrentUserRet *models.User
	CurrentUserErr error
	// CurrentUserGate, when non-nil, blocks CurrentUser until closed.
	CurrentUserGate chan struct{}

	UpdateRet *models.User
	UpdateErr error

	UploadURLRet string
	PublicURLRet string
	UploadURLErr error

	CurrentUserCalls int
	UpdateCalls      int

	LastPatch    api.UserPatch
	LastFilename string
}

func (f *fakeAPI) Close() error { return nil }

func (f *fakeAPI) CurrentUser(ctx context.Context) (*models.User, error) {
	f.mu.Lock()
	f.CurrentUserCalls++
	gate := f.CurrentUserGate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CurrentUserErr != nil {
		return nil, f.CurrentUserErr
	}
	u := *f.CurrentUserRet
	return &u, nil
}

func (f *fakeAPI) UpdateUser(ctx context.Context, patch api.UserPatch) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	f.LastPatch = patch
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	u := *f.UpdateRet
	return &u, nil
}

func (f *fakeAPI) AvatarUploadURL(ctx context.Context, filename string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastFilename = filename
	return f.UploadURLRet, f.PublicURLRet, f.UploadURLErr
}

func (f *fakeAPI) currentCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.CurrentUserCalls
}

func (f *fakeAPI) updateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.UpdateCalls
}

func (f *fakeAPI) lastPatch() api.UserPatch {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.LastPatch
}

// fakeNav records navigation requests.
type fakeNav struct {
	mu    sync.Mutex
	Paths []string
}

func (n *fakeNav) NavigateTo(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Paths = append(n.Paths, path)
}

func (n *fakeNav) paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.Paths...)
}
