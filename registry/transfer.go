package registry

import (
	"context"

	"github.com/amonks/tasknest/analytics"
	"github.com/amonks/tasknest/storage"
)

// Export returns the current state as an indented document.
func (r *Registry) Export() ([]byte, error) {
	r.state.Analytics = analytics.Compute(r.AllTodos(), r.now())
	return storage.SerializeIndent(r.state)
}

// Import replaces the whole state with a document and saves it. A malformed
// document is rejected and the current state is kept.
func (r *Registry) Import(ctx context.Context, data []byte) error {
	state, err := storage.Decode(data, r.now())
	if err != nil {
		return err
	}
	r.state = state
	return r.Save(ctx)
}
