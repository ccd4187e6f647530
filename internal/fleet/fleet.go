package fleet

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// Fleet owns the entity graph. Every read and write goes through a Fleet
// method, which holds one lock for the whole graph: capacity, uniqueness
// and symmetry span several entities, so they are checked and committed
// under the same lock.
type Fleet struct {
	mu  sync.Mutex
	g   *graph
	log *slog.Logger
}

// Option configures a Fleet.
type Option func(*Fleet)

// WithLogger sets the logger used for committed and rejected operations.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fleet) {
		if l != nil {
			f.log = l
		}
	}
}

// New creates an empty Fleet.
func New(opts ...Option) *Fleet {
	f := &Fleet{
		g:   newGraph(),
		log: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// reject logs a refused operation and returns err unchanged.
func (f *Fleet) reject(op string, err error) error {
	kind := "other"
	switch {
	case errors.Is(err, types.ErrValidation):
		kind = "validation"
	case errors.Is(err, types.ErrConflict):
		kind = "conflict"
	case errors.Is(err, types.ErrCapacity):
		kind = "capacity"
	case errors.Is(err, types.ErrNotFound):
		kind = "not_found"
	}
	f.log.Info(op+".rejected", "kind", kind, "error", err.Error())
	return err
}

// RegisterOwner adds owner to the registered-owner set. Registering an
// existing owner is a no-op.
func (f *Fleet) RegisterOwner(owner string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := types.RequireNonEmpty(owner); err != nil {
		return f.reject("owner.register", fmt.Errorf("owner: %w", err))
	}
	f.g.owners[owner] = struct{}{}
	f.log.Debug("owner.registered", "owner", owner)
	return nil
}

// DeregisterOwner removes owner from the registered-owner set. It fails
// with ErrOwnerHasCargo while any live cargo belongs to owner. Removing an
// unknown owner is a no-op.
func (f *Fleet) DeregisterOwner(owner string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, c := range f.g.cargo.all() {
		if c.Owner == owner {
			return f.reject("owner.deregister", fmt.Errorf("owner %q: %w", owner, types.ErrOwnerHasCargo))
		}
	}
	delete(f.g.owners, owner)
	f.log.Debug("owner.deregistered", "owner", owner)
	return nil
}

// IsRegisteredOwner reports whether owner is in the registered-owner set.
func (f *Fleet) IsRegisteredOwner(owner string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.g.owners[owner]
	return ok
}

// Owners returns the registered owners in sorted order.
func (f *Fleet) Owners() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.g.sortedOwners()
}

func (g *graph) sortedOwners() []string {
	out := make([]string, 0, len(g.owners))
	for o := range g.owners {
		out = append(out, o)
	}
	slices.Sort(out)
	return out
}

func (g *graph) checkOwner(owner string) error {
	if err := types.RequireNonEmpty(owner); err != nil {
		return err
	}
	if _, ok := g.owners[owner]; !ok {
		return types.ErrUnregisteredOwner
	}
	return nil
}
