package memory

import (
	"sync"
	"time"

	"hcp-interaction-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// WorkspaceRepository holds the live record/conversation pair per client.
// Workspaces of idle clients expire; each client (tab) gets an independent
// workspace.
type WorkspaceRepository struct {
	cache *cache.Cache

	// phaseMu serializes phase transitions so two concurrent send triggers
	// cannot both win the IDLE slot.
	phaseMu sync.Mutex
}

func NewWorkspaceRepository() *WorkspaceRepository {
	// Idle workspaces expire after 4 hours, purged every 10 minutes.
	c := cache.New(4*time.Hour, 10*time.Minute)
	return &WorkspaceRepository{cache: c}
}

// GetOrCreate returns the client's workspace, creating a fresh one seeded
// with the greeting when none exists. The second return reports whether the
// workspace was just created.
func (r *WorkspaceRepository) GetOrCreate(clientId, greeting string) (*store.Workspace, bool) {
	if x, found := r.cache.Get(clientId); found {
		return x.(*store.Workspace), false
	}

	r.phaseMu.Lock()
	defer r.phaseMu.Unlock()
	// Re-check under the lock so concurrent first requests share one workspace.
	if x, found := r.cache.Get(clientId); found {
		return x.(*store.Workspace), false
	}
	ws := store.NewWorkspace(clientId, greeting)
	r.cache.Set(clientId, ws, cache.DefaultExpiration)
	return ws, true
}

func (r *WorkspaceRepository) Get(clientId string) (*store.Workspace, bool) {
	if x, found := r.cache.Get(clientId); found {
		return x.(*store.Workspace), true
	}
	return nil, false
}

// Touch refreshes the expiry of a live workspace.
func (r *WorkspaceRepository) Touch(ws *store.Workspace) {
	r.cache.Set(ws.ClientId, ws, cache.DefaultExpiration)
}

func (r *WorkspaceRepository) Delete(clientId string) {
	r.cache.Delete(clientId)
}

// Transition atomically moves the workspace phase from one state to
// another. It returns false, leaving the phase untouched, when the
// workspace is not in the expected state. Overlapping send triggers are
// refused through this check.
func (r *WorkspaceRepository) Transition(ws *store.Workspace, from, to string) bool {
	r.phaseMu.Lock()
	defer r.phaseMu.Unlock()
	if ws.Phase != from {
		return false
	}
	ws.Phase = to
	return true
}

// SetPhase records cycle progress unconditionally. Entry into a cycle must
// go through Transition; SetPhase is for the steps after the guard.
func (r *WorkspaceRepository) SetPhase(ws *store.Workspace, phase string) {
	r.phaseMu.Lock()
	defer r.phaseMu.Unlock()
	ws.Phase = phase
}

// Phase reads the workspace phase under the same lock Transition and
// SetPhase write it. Every reader must use this, never ws.Phase directly,
// or a snapshot taken mid-cycle races with the phase reset.
func (r *WorkspaceRepository) Phase(ws *store.Workspace) string {
	r.phaseMu.Lock()
	defer r.phaseMu.Unlock()
	return ws.Phase
}
