package cli

import (
	"github.com/spf13/cobra"
)

func newOwnerCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "owner",
		Short: "Manage registered cargo owners",
	}
	c.AddCommand(
		&cobra.Command{
			Use:   "add <owner>",
			Short: "Register an owner",
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.update(cmd, func(s *session) error {
					if err := s.fleet.RegisterOwner(args[0]); err != nil {
						return err
					}
					return a.printer(cmd.OutOrStdout()).result(map[string]string{"owner": args[0]}, "registered owner %s", args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "remove <owner>",
			Short: "Deregister an owner that has no cargo",
			Args:  exactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.update(cmd, func(s *session) error {
					if err := s.fleet.DeregisterOwner(args[0]); err != nil {
						return err
					}
					return a.printer(cmd.OutOrStdout()).result(map[string]string{"owner": args[0]}, "deregistered owner %s", args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List registered owners",
			Args:  exactArgs(0),
			RunE: func(cmd *cobra.Command, _ []string) error {
				return a.view(cmd, func(s *session) error {
					owners := s.fleet.Owners()
					rows := make([][]string, 0, len(owners))
					for _, o := range owners {
						rows = append(rows, []string{o})
					}
					return a.printer(cmd.OutOrStdout()).table(owners, []string{"OWNER"}, rows)
				})
			},
		},
	)
	return c
}
