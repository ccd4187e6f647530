package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newContractCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "contract",
		Short: "Manage employment contracts between ships and crew",
	}
	c.AddCommand(
		newContractAddCmd(a),
		newContractSetCmd(a),
		newContractDissolveCmd(a),
		newContractListCmd(a),
	)
	return c
}

func newContractAddCmd(a *app) *cobra.Command {
	var (
		role   string
		salary float64
	)
	cmd := &cobra.Command{
		Use:   "add <ship> <crew>",
		Short: "Employ a crew member on a ship",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pay *float64
			if cmd.Flags().Changed("salary") {
				pay = &salary
			}
			return a.update(cmd, func(s *session) error {
				c, err := s.fleet.CreateContract(role, pay, args[0], args[1])
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(c, "created contract %s", c.ContractID)
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "role aboard the ship")
	cmd.Flags().Float64Var(&salary, "salary", 0, "salary (organic crew only)")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func newContractSetCmd(a *app) *cobra.Command {
	var (
		role        string
		salary      float64
		clearSalary bool
	)
	cmd := &cobra.Command{
		Use:   "set <contract>",
		Short: "Change a contract's role or salary",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			return a.update(cmd, func(s *session) error {
				changed := cmd.Flags().Changed
				var steps []func() error
				if changed("role") {
					steps = append(steps, func() error { return s.fleet.SetContractRole(id, role) })
				}
				if changed("salary") {
					steps = append(steps, func() error { return s.fleet.SetContractSalary(id, &salary) })
				}
				if clearSalary {
					steps = append(steps, func() error { return s.fleet.SetContractSalary(id, nil) })
				}
				if len(steps) == 0 {
					return usageError{errors.New("nothing to change")}
				}
				if err := runSteps(steps); err != nil {
					return err
				}
				c, err := s.fleet.Contract(id)
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(c, "updated contract %s", c.ContractID)
			})
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "new role")
	cmd.Flags().Float64Var(&salary, "salary", 0, "new salary")
	cmd.Flags().BoolVar(&clearSalary, "no-salary", false, "remove the salary")
	cmd.MarkFlagsMutuallyExclusive("salary", "no-salary")
	return cmd
}

func newContractDissolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dissolve <contract>",
		Short: "End a contract on both sides",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session) error {
				c, err := s.fleet.Contract(args[0])
				if err != nil {
					return err
				}
				if err := s.fleet.RemoveShipContract(c.ShipID, c.ContractID); err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(c, "dissolved contract %s", c.ContractID)
			})
		},
	}
}

func newContractListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List contracts",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(s *session) error {
				cs := s.fleet.Contracts()
				return a.printer(cmd.OutOrStdout()).table(cs, contractHeaders, contractRows(cs))
			})
		},
	}
}
