package tokenxml

import (
	"sync"

	"github.com/SlightlyCircuitous/update-token-xml/pkg/cockatrice"
	"github.com/SlightlyCircuitous/update-token-xml/pkg/tokens"
)

// Hook function types for sync events
type (
	// TokenAddedHook is called when an entry is synthesized for an unknown token
	TokenAddedHook func(entry *cockatrice.Card)

	// ReprintHook is called when a record matched existing entries
	ReprintHook func(rec tokens.Record, matches int)
)

// Hooks registers callbacks invoked while Update runs.
type Hooks interface {
	OnTokenAdded(TokenAddedHook)
	OnReprint(ReprintHook)
}

// hooks manages event callbacks for sync outcomes
type hooks struct {
	mu           sync.RWMutex
	onTokenAdded []TokenAddedHook
	onReprint    []ReprintHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnTokenAdded registers a callback for synthesized entries
func (h *hooks) OnTokenAdded(fn TokenAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onTokenAdded = append(h.onTokenAdded, fn)
}

// OnReprint registers a callback for reprinted tokens
func (h *hooks) OnReprint(fn ReprintHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onReprint = append(h.onReprint, fn)
}

// trigger dispatches one outcome to the registered hooks
func (h *hooks) trigger(o tokens.Outcome) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if o.IsReprint() {
		for _, hook := range h.onReprint {
			hook(o.Record, o.Matches)
		}
		return
	}
	for _, hook := range h.onTokenAdded {
		hook(o.Created)
	}
}

// OnTokenAdded registers a callback for synthesized entries
func (c *client) OnTokenAdded(fn TokenAddedHook) {
	c.hooks.OnTokenAdded(fn)
}

// OnReprint registers a callback for reprinted tokens
func (c *client) OnReprint(fn ReprintHook) {
	c.hooks.OnReprint(fn)
}
