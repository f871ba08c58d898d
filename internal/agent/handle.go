package agent

import (
	"context"
	"sync/atomic"
)

// Asker answers a user's free-form question. Satisfied by *Pipeline.
type Asker interface {
	Answer(ctx context.Context, userID, question string) (string, error)
}

type box struct{ asker Asker }

// Handle is the process-wide pipeline slot. Reload swaps the value
// atomically instead of mutating the pipeline in place, so in-flight
// requests finish against the handle they started with.
type Handle struct {
	v atomic.Value // box
}

// Load returns the current pipeline, or false when none is installed.
func (h *Handle) Load() (Asker, bool) {
	b, ok := h.v.Load().(box)
	if !ok || b.asker == nil {
		return nil, false
	}
	return b.asker, true
}

// Swap installs a new pipeline for subsequent requests.
func (h *Handle) Swap(a Asker) {
	h.v.Store(box{asker: a})
}
