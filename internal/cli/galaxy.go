package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

const dateLayout = "2006-01-02"

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, usageError{fmt.Errorf("invalid date %q (want YYYY-MM-DD or RFC 3339)", s)}
	}
	return t, nil
}

// modeFlags select and describe a galaxy mode.
type modeFlags struct {
	since     string
	dangerous bool
	atWar     bool
	flare     int
}

func (m *modeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&m.since, "since", "", "peaceful since this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&m.dangerous, "dangerous", false, "make the galaxy dangerous")
	cmd.Flags().BoolVar(&m.atWar, "at-war", false, "dangerous galaxy is at war")
	cmd.Flags().IntVar(&m.flare, "flare", 0, "solar flare strength of a dangerous galaxy")
	cmd.MarkFlagsMutuallyExclusive("since", "dangerous")
	cmd.MarkFlagsOneRequired("since", "dangerous")
}

func newGalaxyCmd(a *app) *cobra.Command {
	c := &cobra.Command{
		Use:   "galaxy",
		Short: "Manage galaxies",
	}
	c.AddCommand(
		newGalaxyAddCmd(a),
		newGalaxyConvertCmd(a),
		newGalaxySetCmd(a),
		newGalaxyListCmd(a),
		newGalaxyCargoCmd(a),
	)
	return c
}

// checkCode refuses codes that collide with the "none" reference.
func checkCode(code string) error {
	if code == noneRef {
		return usageError{fmt.Errorf("galaxy code %q is reserved", noneRef)}
	}
	return nil
}

func newGalaxyAddCmd(a *app) *cobra.Command {
	var mode modeFlags
	cmd := &cobra.Command{
		Use:   "add <name> <code>",
		Short: "Create a peaceful (--since) or dangerous (--dangerous) galaxy",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkCode(args[1]); err != nil {
				return err
			}
			return a.update(cmd, func(s *session) error {
				var (
					g   types.Galaxy
					err error
				)
				if mode.dangerous {
					g, err = s.fleet.CreateDangerousGalaxy(args[0], args[1], mode.atWar, mode.flare)
				} else {
					since, perr := parseDate(mode.since)
					if perr != nil {
						return perr
					}
					g, err = s.fleet.CreatePeacefulGalaxy(args[0], args[1], since)
				}
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(g, "created galaxy %s (%s)", g.GalaxyID, g.Code)
			})
		},
	}
	mode.register(cmd)
	return cmd
}

func newGalaxyConvertCmd(a *app) *cobra.Command {
	var mode modeFlags
	cmd := &cobra.Command{
		Use:   "convert <galaxy>",
		Short: "Switch a galaxy between peaceful and dangerous",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session) error {
				id, err := galaxyRef(s.fleet, args[0])
				if err != nil {
					return err
				}
				if mode.dangerous {
					err = s.fleet.ConvertToDangerous(id, mode.atWar, mode.flare)
				} else {
					since, perr := parseDate(mode.since)
					if perr != nil {
						return perr
					}
					err = s.fleet.ConvertToPeaceful(id, since)
				}
				if err != nil {
					return err
				}
				g, err := s.fleet.Galaxy(id)
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(g, "galaxy %s is now %s", g.Code, g.Type)
			})
		},
	}
	mode.register(cmd)
	return cmd
}

func newGalaxySetCmd(a *app) *cobra.Command {
	var (
		name, code, since string
		atWar             bool
		flare             int
	)
	cmd := &cobra.Command{
		Use:   "set <galaxy>",
		Short: "Change galaxy attributes",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.update(cmd, func(s *session) error {
				id, err := galaxyRef(s.fleet, args[0])
				if err != nil {
					return err
				}
				changed := cmd.Flags().Changed
				var steps []func() error
				if changed("name") {
					steps = append(steps, func() error { return s.fleet.SetGalaxyName(id, name) })
				}
				if changed("code") {
					if err := checkCode(code); err != nil {
						return err
					}
					steps = append(steps, func() error { return s.fleet.SetGalaxyCode(id, code) })
				}
				if changed("since") {
					t, err := parseDate(since)
					if err != nil {
						return err
					}
					steps = append(steps, func() error { return s.fleet.SetPeacefulSince(id, t) })
				}
				if changed("at-war") {
					steps = append(steps, func() error { return s.fleet.SetAtWar(id, atWar) })
				}
				if changed("flare") {
					steps = append(steps, func() error { return s.fleet.SetSolarFlareStrength(id, flare) })
				}
				if len(steps) == 0 {
					return usageError{errors.New("nothing to change")}
				}
				if err := runSteps(steps); err != nil {
					return err
				}
				g, err := s.fleet.Galaxy(id)
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).result(g, "updated galaxy %s", g.Code)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&code, "code", "", "new code")
	cmd.Flags().StringVar(&since, "since", "", "peaceful since this date")
	cmd.Flags().BoolVar(&atWar, "at-war", false, "whether a dangerous galaxy is at war")
	cmd.Flags().IntVar(&flare, "flare", 0, "solar flare strength of a dangerous galaxy")
	return cmd
}

func newGalaxyListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List galaxies",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(s *session) error {
				gs := s.fleet.Galaxies()
				return a.printer(cmd.OutOrStdout()).table(gs, galaxyHeaders, galaxyRows(gs))
			})
		},
	}
}

func newGalaxyCargoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cargo <galaxy>",
		Short: "List cargo bound for a galaxy, lightest first",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.view(cmd, func(s *session) error {
				id, err := galaxyRef(s.fleet, args[0])
				if err != nil {
					return err
				}
				cs, err := s.fleet.CargoSortedByMass(id)
				if err != nil {
					return err
				}
				return a.printer(cmd.OutOrStdout()).table(cs, cargoHeaders, cargoRows(cs))
			})
		},
	}
}

// runSteps applies setters in order and stops at the first failure. A failed
// command is not saved, so earlier steps are discarded with it.
func runSteps(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
