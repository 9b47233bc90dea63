package sqlite

import (
	"fmt"
	"sync"

	"ripasso/internal/ports"
)

// Factory builds in-memory engines, empty or from a serialized image.
// Acquire it through Runtime rather than constructing it directly.
type Factory struct{}

// Ensure Factory implements EngineFactory
var _ ports.EngineFactory = (*Factory)(nil)

// New constructs an empty engine.
func (Factory) New() (ports.Engine, error) {
	return newEngine()
}

// Open constructs an engine from a previously serialized byte image.
func (Factory) Open(image []byte) (ports.Engine, error) {
	e, err := newEngine()
	if err != nil {
		return nil, err
	}
	if err := e.conn.Deserialize(image, "main"); err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to import database image: %w", err)
	}
	return e, nil
}

var runtime = sync.OnceValue(func() ports.EngineFactory {
	return &Factory{}
})

// Runtime returns the process-wide engine factory. It is initialized at
// most once; concurrent first callers coalesce onto the same
// initialization.
func Runtime() ports.EngineFactory {
	return runtime()
}
