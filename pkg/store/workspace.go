package store

import "sync"

// Send-cycle phases. A workspace accepts a new cycle only while idle;
// overlapping triggers are refused, not queued.
const (
	PhaseIdle       = "IDLE"
	PhaseSending    = "SENDING"
	PhaseMerging    = "MERGING"
	PhaseSubmitting = "SUBMITTING"
)

// Workspace pairs the canonical record with its conversation for one
// client (one browser tab). Two clients logging concurrently get fully
// independent workspaces. All mutation goes through the orchestrating
// service while the workspace lock is held.
type Workspace struct {
	ClientId     string        `json:"clientId"`
	Phase        string        `json:"phase"`
	Record       *Record       `json:"record"`
	Conversation *Conversation `json:"conversation"`

	mu sync.Mutex
}

func NewWorkspace(clientId, greeting string) *Workspace {
	return &Workspace{
		ClientId:     clientId,
		Phase:        PhaseIdle,
		Record:       NewRecord(),
		Conversation: NewConversation(greeting),
	}
}

func (w *Workspace) Lock()   { w.mu.Lock() }
func (w *Workspace) Unlock() { w.mu.Unlock() }
