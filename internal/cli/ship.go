package cli

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freighter/internal/fleet"
	"github.com/mesh-intelligence/freighter/pkg/types"
)

func newShipCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "ship",
		Short: "Manage ships and their cargo",
	}
	c.AddCommand(
		newShipAddCmd(a),
		newShipSetCmd(a),
		newShipListCmd(a),
		newShipShowCmd(a),
		newShipMoveCmd(a),
		newShipLoadCmd(a),
		newShipUnloadCmd(a),
		newShipRouteCmd(a),
		newShipUnloadUnreachableCmd(a),
		newShipCanGoCmd(a),
	)
	return c
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func newShipAddCmd(a *app) *cobra.Command {
	var (
		capacity int
		shield   int
		aiType   string
		foods    string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a ship with an AI (--ai) or organic life support (--food)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := types.ShipParams{Name: args[0], MaxCargoMass: capacity, Type: types.ShipNoProtection}
			if cmd.Flags().Changed("shield") {
				p.Type = types.ShipShielded
				p.SolarFlareShieldStrength = &shield
			}
			return a.update(cmd, func(s *session) error {
				var (
					ship types.Ship
					err  error
				)
				if cmd.Flags().Changed("food") {
					ship, err = s.fleet.CreateOrganicSupportShip(p, splitList(foods))
				} else {
					ship, err = s.fleet.CreateNoLifeSupportShip(p, aiType)
				}
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(ship, "created ship %s", ship.ShipID)
			})
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 0, "maximum cargo mass")
	cmd.Flags().IntVar(&shield, "shield", 0, "solar flare shield strength (makes the ship shielded)")
	cmd.Flags().StringVar(&aiType, "ai", "", "AI type of a ship without life support")
	cmd.Flags().StringVar(&foods, "food", "", "comma-separated food types of an organic support ship")
	cmd.MarkFlagsMutuallyExclusive("ai", "food")
	cmd.MarkFlagsOneRequired("ai", "food")
	_ = cmd.MarkFlagRequired("capacity")
	return cmd
}

func newShipSetCmd(a *app) *cobra.Command {
	var (
		name, aiType, foods string
		capacity, shield    int
	)
	cmd := &cobra.Command{
		Use:   "set <ship>",
		Short: "Change ship attributes",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.update(cmd, func(s *session) error {
				changed := cmd.Flags().Changed
				var steps []func() error
				if changed("name") {
					steps = append(steps, func() error { return s.fleet.SetShipName(id, name) })
				}
				if changed("capacity") {
					steps = append(steps, func() error { return s.fleet.SetShipCapacity(id, capacity) })
				}
				if changed("shield") {
					steps = append(steps, func() error { return s.fleet.SetShieldStrength(id, shield) })
				}
				if changed("ai") {
					steps = append(steps, func() error { return s.fleet.SetShipAIType(id, aiType) })
				}
				if changed("food") {
					steps = append(steps, func() error { return s.fleet.SetShipFoodTypes(id, splitList(foods)) })
				}
				if len(steps) == 0 {
					return usageError{errors.New("nothing to change")}
				}
				if err := runSteps(steps); err != nil {
					return err
				}
				ship, err := s.fleet.Ship(id)
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(ship, "updated ship %s", ship.ShipID)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "new maximum cargo mass")
	cmd.Flags().IntVar(&shield, "shield", 0, "new shield strength")
	cmd.Flags().StringVar(&aiType, "ai", "", "new AI type")
	cmd.Flags().StringVar(&foods, "food", "", "new comma-separated food types")
	return cmd
}

func newShipListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ships",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(s *session) error {
				ships := s.fleet.Ships()
				return a.printer(cmd.OutOrStdout()).table(ships, shipHeaders, shipRows(ships))
			})
		},
	}
}

func newShipShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <ship>",
		Short: "Show a ship and the cargo aboard by destination",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				ship, err := s.fleet.Ship(args[0])
				if err != nil {
					return err
				}
				mass, err := s.fleet.CurrentCargoMass(ship.ShipID)
				if err != nil {
					return err
				}
				groups, err := s.fleet.CargoGroupedByDestination(ship.ShipID)
				if err != nil {
					return err
				}
				p := a.printer(cmd.OutOrStdout())
				if p.jsonMode {
					return p.json(map[string]any{"ship": ship, "loaded": mass, "cargo_by_destination": groups})
				}
				if err := p.table(nil, shipHeaders, shipRows([]types.Ship{ship})); err != nil {
					return err
				}
				var rows [][]string
				for _, dest := range slices.Sorted(maps.Keys(groups)) {
					for _, c := range groups[dest] {
						rows = append(rows, []string{orDash(dest), c.CargoID, c.Name, strconv.Itoa(c.Mass)})
					}
				}
				if err := p.result(nil, "loaded %d of %d", mass, ship.MaxCargoMass); err != nil {
					return err
				}
				return p.table(nil, []string{"DESTINATION", "CARGO", "NAME", "MASS"}, rows)
			})
		},
	}
}

func newShipMoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move <ship> <galaxy|none>",
		Short: "Place a ship in a galaxy, or take it out with none",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session) error {
				gid, err := galaxyRef(s.fleet, args[1])
				if err != nil {
					return err
				}
				if err := s.fleet.SetShipGalaxy(args[0], gid); err != nil {
					return err
				}
				ship, err := s.fleet.Ship(args[0])
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(ship, "ship %s is in %s", ship.ShipID, orDash(ship.GalaxyID))
			})
		},
	}
}

func newShipLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load <ship> <cargo>...",
		Short: "Load cargo aboard a ship",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return usageError{errors.New("requires a ship and at least one cargo")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session) error {
				for _, cid := range args[1:] {
					if err := s.fleet.AddCargoToShip(args[0], cid); err != nil {
						return err
					}
				}
				mass, err := s.fleet.CurrentCargoMass(args[0])
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(
					map[string]any{"ship_id": args[0], "loaded": args[1:], "mass": mass},
					"loaded %d cargo, %d aboard by mass", len(args)-1, mass)
			})
		},
	}
}

func newShipUnloadCmd(a *app) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "unload <ship> [cargo]...",
		Short: "Unload the named cargo, or all cargo bound for --to",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageError{errors.New("requires a ship")}
			}
			if (len(args) > 1) == cmd.Flags().Changed("to") {
				return usageError{errors.New("name cargo or give --to, not both")}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session) error {
				unloaded := args[1:]
				if cmd.Flags().Changed("to") {
					gid, err := galaxyRef(s.fleet, to)
					if err != nil {
						return err
					}
					if unloaded, err = s.fleet.UnloadCargoGoingTo(args[0], gid); err != nil {
						return err
					}
				} else {
					for _, cid := range unloaded {
						if err := s.fleet.RemoveCargoFromShip(args[0], cid); err != nil {
							return err
						}
					}
				}
				return a.printer(cmd.OutOrStdout()).result(
					map[string]any{"ship_id": args[0], "unloaded": unloaded},
					"unloaded %d cargo", len(unloaded))
			})
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "unload everything bound for this galaxy (none: cargo without destination)")
	return cmd
}

func newShipRouteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "route <ship>",
		Short: "Summarize cargo aboard by destination and reachability",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				plan, err := s.fleet.RoutePlan(args[0])
				if err != nil {
					return err
				}
				return printRoute(a.printer(cmd.OutOrStdout()), plan)
			})
		},
	}
}

func printRoute(p printer, plan fleet.RoutePlan) error {
	if p.jsonMode {
		return p.json(plan)
	}
	rows := make([][]string, 0, len(plan.Destinations))
	for _, d := range plan.Destinations {
		reach := "yes"
		if !d.Reachable {
			reach = "no"
		}
		rows = append(rows, []string{d.Code, d.Name, reach, strconv.Itoa(d.Count), strconv.Itoa(d.Mass)})
	}
	if err := p.result(nil, "ship %s: %d of %d loaded, %d without destination, %d unreachable",
		plan.ShipID, plan.Loaded, plan.Capacity, plan.Undestined, len(plan.Unreachable())); err != nil {
		return err
	}
	return p.table(nil, []string{"CODE", "GALAXY", "REACHABLE", "CARGO", "MASS"}, rows)
}

func newShipUnloadUnreachableCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unload-unreachable <ship>",
		Short: "Unload cargo bound for galaxies the ship cannot enter",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session) error {
				unloaded, err := s.fleet.UnloadAllUnreachableCargo(args[0])
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(
					map[string]any{"ship_id": args[0], "unloaded": unloaded},
					"unloaded %d cargo", len(unloaded))
			})
		},
	}
}

func newShipCanGoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "can-go <ship> <galaxy>",
		Short: "Report whether a ship may enter a galaxy",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				gid, err := galaxyRef(s.fleet, args[1])
				if err != nil {
					return err
				}
				ok, err := s.fleet.CanGoToGalaxy(args[0], gid)
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(map[string]bool{"can_go": ok}, "%t", ok)
			})
		},
	}
}
