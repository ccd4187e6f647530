package fleet

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

// extent is the set of live instances of one entity type, keyed by handle.
// Iteration follows registration order so views and exports are stable.
type extent[T any] struct {
	order []string
	items map[string]*T
}

func newExtent[T any]() *extent[T] {
	return &extent[T]{items: make(map[string]*T)}
}

// register adds item under id. Registering the same id again is a no-op.
func (e *extent[T]) register(id string, item *T) {
	if _, ok := e.items[id]; ok {
		return
	}
	e.items[id] = item
	e.order = append(e.order, id)
}

func (e *extent[T]) get(id string) (*T, bool) {
	item, ok := e.items[id]
	return item, ok
}

// retire removes id from the extent. Retiring an unknown id is a no-op.
func (e *extent[T]) retire(id string) {
	if _, ok := e.items[id]; !ok {
		return
	}
	delete(e.items, id)
	e.order = removeID(e.order, id)
}

// all returns the live instances in registration order.
func (e *extent[T]) all() []*T {
	out := make([]*T, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.items[id])
	}
	return out
}

func (e *extent[T]) len() int { return len(e.order) }

// graph is the arena holding every extent and the registered-owner set.
// It is not safe for concurrent use; Fleet serializes access to it.
type graph struct {
	owners    map[string]struct{}
	galaxies  *extent[types.Galaxy]
	ships     *extent[types.Ship]
	cargo     *extent[types.Cargo]
	crew      *extent[types.CrewMember]
	contracts *extent[types.Contract]
}

func newGraph() *graph {
	return &graph{
		owners:    make(map[string]struct{}),
		galaxies:  newExtent[types.Galaxy](),
		ships:     newExtent[types.Ship](),
		cargo:     newExtent[types.Cargo](),
		crew:      newExtent[types.CrewMember](),
		contracts: newExtent[types.Contract](),
	}
}

func (g *graph) galaxy(id string) (*types.Galaxy, error) {
	if id == "" {
		return nil, fmt.Errorf("galaxy: %w", types.ErrMissingReference)
	}
	v, ok := g.galaxies.get(id)
	if !ok {
		return nil, fmt.Errorf("galaxy %s: %w", id, types.ErrNotFound)
	}
	return v, nil
}

func (g *graph) ship(id string) (*types.Ship, error) {
	if id == "" {
		return nil, fmt.Errorf("ship: %w", types.ErrMissingReference)
	}
	v, ok := g.ships.get(id)
	if !ok {
		return nil, fmt.Errorf("ship %s: %w", id, types.ErrNotFound)
	}
	return v, nil
}

func (g *graph) cargoItem(id string) (*types.Cargo, error) {
	if id == "" {
		return nil, fmt.Errorf("cargo: %w", types.ErrMissingReference)
	}
	v, ok := g.cargo.get(id)
	if !ok {
		return nil, fmt.Errorf("cargo %s: %w", id, types.ErrNotFound)
	}
	return v, nil
}

func (g *graph) crewMember(id string) (*types.CrewMember, error) {
	if id == "" {
		return nil, fmt.Errorf("crew member: %w", types.ErrMissingReference)
	}
	v, ok := g.crew.get(id)
	if !ok {
		return nil, fmt.Errorf("crew member %s: %w", id, types.ErrNotFound)
	}
	return v, nil
}

func (g *graph) contract(id string) (*types.Contract, error) {
	if id == "" {
		return nil, fmt.Errorf("contract: %w", types.ErrMissingReference)
	}
	v, ok := g.contracts.get(id)
	if !ok {
		return nil, fmt.Errorf("contract %s: %w", id, types.ErrNotFound)
	}
	return v, nil
}

// optionalGalaxy resolves id, treating the empty handle as "no galaxy".
func (g *graph) optionalGalaxy(id string) (*types.Galaxy, error) {
	if id == "" {
		return nil, nil
	}
	return g.galaxy(id)
}

// optionalShip resolves id, treating the empty handle as "no ship".
func (g *graph) optionalShip(id string) (*types.Ship, error) {
	if id == "" {
		return nil, nil
	}
	return g.ship(id)
}

// generateUUID generates a new UUID v7 for entity handles.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

func containsID(ids []string, id string) bool {
	return slices.Contains(ids, id)
}

// addID appends id unless it is already present.
func addID(ids []string, id string) []string {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

// removeID drops id, keeping the order of the rest.
func removeID(ids []string, id string) []string {
	i := slices.Index(ids, id)
	if i < 0 {
		return ids
	}
	return slices.Delete(ids, i, i+1)
}

func dedupeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = addID(out, v)
	}
	return out
}
