package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

func newCrewCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "crew",
		Short: "Manage crew members",
	}
	c.AddCommand(
		newCrewAddCmd(a),
		newCrewSetCmd(a),
		newCrewListCmd(a),
		newCrewCanJoinCmd(a),
	)
	return c
}

func newCrewAddCmd(a *app) *cobra.Command {
	var serial, model, name, food string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a mechanical (--serial, --model) or organic (--name, --food) crew member",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.update(cmd, func(s *session) error {
				var (
					c   types.CrewMember
					err error
				)
				if cmd.Flags().Changed("name") {
					c, err = s.fleet.CreateOrganicCrewMember(name, food)
				} else {
					c, err = s.fleet.CreateMechanicalCrewMember(serial, model)
				}
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(c, "created crew member %s", c.CrewID)
			})
		},
	}
	cmd.Flags().StringVar(&serial, "serial", "", "serial number of a mechanical crew member")
	cmd.Flags().StringVar(&model, "model", "", "model number of a mechanical crew member")
	cmd.Flags().StringVar(&name, "name", "", "name of an organic crew member")
	cmd.Flags().StringVar(&food, "food", "", "acceptable food type of an organic crew member")
	cmd.MarkFlagsRequiredTogether("serial", "model")
	cmd.MarkFlagsRequiredTogether("name", "food")
	cmd.MarkFlagsMutuallyExclusive("serial", "name")
	cmd.MarkFlagsOneRequired("serial", "name")
	return cmd
}

func newCrewSetCmd(a *app) *cobra.Command {
	var serial, model, name, food string
	cmd := &cobra.Command{
		Use:   "set <crew>",
		Short: "Change crew member attributes",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.update(cmd, func(s *session) error {
				changed := cmd.Flags().Changed
				var steps []func() error
				if changed("name") {
					steps = append(steps, func() error { return s.fleet.SetCrewName(id, name) })
				}
				if changed("food") {
					steps = append(steps, func() error { return s.fleet.SetCrewFoodType(id, food) })
				}
				if changed("serial") {
					steps = append(steps, func() error { return s.fleet.SetSerialNumber(id, serial) })
				}
				if changed("model") {
					steps = append(steps, func() error { return s.fleet.SetModelNumber(id, model) })
				}
				if len(steps) == 0 {
					return usageError{errors.New("nothing to change")}
				}
				if err := runSteps(steps); err != nil {
					return err
				}
				c, err := s.fleet.CrewMember(id)
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(c, "updated crew member %s", c.CrewID)
			})
		},
	}
	cmd.Flags().StringVar(&serial, "serial", "", "new serial number")
	cmd.Flags().StringVar(&model, "model", "", "new model number")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&food, "food", "", "new acceptable food type")
	return cmd
}

func newCrewListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List crew members",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(s *session) error {
				cs := s.fleet.CrewMembers()
				return a.printer(cmd.OutOrStdout()).table(cs, crewHeaders, crewRows(cs))
			})
		},
	}
}

func newCrewCanJoinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "can-join <crew> <ship>",
		Short: "Report whether a crew member can live aboard a ship",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				ok, err := s.fleet.CanJoin(args[0], args[1])
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(map[string]bool{"can_join": ok}, "%t", ok)
			})
		},
	}
}
