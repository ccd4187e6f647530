// Package types defines the freighter entity types (galaxies, ships, cargo,
// crew members and contracts), their mode and kind tags, the primitive
// validation rules, and the error kinds every domain operation returns.
//
// Values of these types are copies. The graph itself lives in
// internal/fleet, which is the only place relations are changed.
package types
