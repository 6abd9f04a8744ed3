package engine

import (
	"sync"
	"sync/atomic"

	"github.com/PredicateSystems/secureclaw/internal/core"
)

// PolicyManager owns the current policy document. Readers load the
// current engine through an atomic pointer and keep evaluating against
// that snapshot even while a swap happens; Swap only serializes
// writers. The manager never holds a nil engine: it is constructed with
// an initial document and every swap installs a complete replacement.
type PolicyManager struct {
	currentEngine atomic.Pointer[Engine]
	mu            sync.Mutex
}

// NewManager creates a PolicyManager with the given initial document.
func NewManager(initial *core.PolicyDocument) *PolicyManager {
	m := &PolicyManager{}
	m.currentEngine.Store(New(initial))
	return m
}

// GetEngine returns the engine over the current document snapshot.
func (m *PolicyManager) GetEngine() *Engine {
	return m.currentEngine.Load()
}

// Current returns the current document snapshot.
func (m *PolicyManager) Current() *core.PolicyDocument {
	return m.currentEngine.Load().Document()
}

// Swap atomically replaces the current document. Callers must pass a
// validated document; the manager does not re-validate. In-flight
// evaluations complete against the snapshot they started with.
func (m *PolicyManager) Swap(doc *core.PolicyDocument) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.currentEngine.Store(New(doc))
}
