package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

func newCargoCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "cargo",
		Short: "Manage cargo",
	}
	c.AddCommand(
		newCargoAddCmd(a),
		newCargoSetCmd(a),
		newCargoListCmd(a),
		newCargoRetireCmd(a),
	)
	return c
}

func newCargoAddCmd(a *app) *cobra.Command {
	var (
		mass      int
		owner, to string
	)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create cargo for a registered owner",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session) error {
				c, err := s.fleet.CreateCargo(args[0], mass, owner)
				if err != nil {
					return err
				}
				if to != "" {
					gid, err := galaxyRef(s.fleet, to)
					if err != nil {
						return err
					}
					if err := s.fleet.SetCargoDestination(c.CargoID, gid); err != nil {
						return err
					}
					if c, err = s.fleet.Cargo(c.CargoID); err != nil {
						return err
					}
				}
				return a.printer(cmd.OutOrStdout()).result(c, "created cargo %s", c.CargoID)
			})
		},
	}
	cmd.Flags().IntVar(&mass, "mass", 0, "mass of the cargo")
	cmd.Flags().StringVar(&owner, "owner", "", "registered owner")
	cmd.Flags().StringVar(&to, "to", "", "destination galaxy (code or id)")
	_ = cmd.MarkFlagRequired("mass")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newCargoSetCmd(a *app) *cobra.Command {
	var (
		name, owner, to, ship string
		mass                  int
	)
	cmd := &cobra.Command{
		Use:   "set <cargo>",
		Short: "Change cargo attributes, destination (--to) or ship (--ship)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.update(cmd, func(s *session) error {
				changed := cmd.Flags().Changed
				var steps []func() error
				if changed("name") {
					steps = append(steps, func() error { return s.fleet.SetCargoName(id, name) })
				}
				if changed("mass") {
					steps = append(steps, func() error { return s.fleet.SetCargoMass(id, mass) })
				}
				if changed("owner") {
					steps = append(steps, func() error { return s.fleet.SetCargoOwner(id, owner) })
				}
				if changed("to") {
					steps = append(steps, func() error {
						gid, err := galaxyRef(s.fleet, to)
						if err != nil {
							return err
						}
						return s.fleet.SetCargoDestination(id, gid)
					})
				}
				if changed("ship") {
					sid := ship
					if sid == noneRef {
						sid = ""
					}
					steps = append(steps, func() error { return s.fleet.SetCargoShip(id, sid) })
				}
				if len(steps) == 0 {
					return usageError{errors.New("nothing to change")}
				}
				if err := runSteps(steps); err != nil {
					return err
				}
				c, err := s.fleet.Cargo(id)
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(c, "updated cargo %s", c.CargoID)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().IntVar(&mass, "mass", 0, "new mass")
	cmd.Flags().StringVar(&owner, "owner", "", "new registered owner")
	cmd.Flags().StringVar(&to, "to", "", "destination galaxy, or none")
	cmd.Flags().StringVar(&ship, "ship", "", "ship to carry the cargo, or none")
	return cmd
}

func newCargoListCmd(a *app) *cobra.Command {
	var owner string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cargo, optionally for one owner",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(s *session) error {
				var (
					cs  []types.Cargo
					err error
				)
				if owner != "" {
					if cs, err = s.store.CargoByOwner(owner); err != nil {
						return systemError{err}
					}
				} else {
					cs = s.fleet.AllCargo()
				}
				return a.printer(cmd.OutOrStdout()).table(cs, cargoHeaders, cargoRows(cs))
			})
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "only cargo of this owner")
	return cmd
}

func newCargoRetireCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "retire <cargo>",
		Short: "Unlink cargo from its ship and destination and delete it",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session) error {
				if err := s.fleet.RetireCargo(args[0]); err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(map[string]string{"cargo_id": args[0]}, "retired cargo %s", args[0])
			})
		},
	}
}
