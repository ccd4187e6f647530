// Package fleet owns the freighter entity graph: galaxies, ships, cargo,
// crew members, contracts and the registered-owner set.
//
// Entities live in per-type extents keyed by UUID v7 handles. Relations are
// handle lists kept on both sides, and every operation that changes a
// relation updates both sides under the Fleet lock. Operations validate
// before they mutate, with one documented exception: SetCargoShip leaves
// the current ship before checking the new one.
//
// Callers receive copies. Changing a returned value has no effect on the
// graph.
package fleet
