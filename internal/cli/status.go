package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/freighter/internal/logger"
	"github.com/mesh-intelligence/freighter/pkg/types"
)

type statusReport struct {
	DataDir string         `json:"data_dir"`
	LogFile string         `json:"log_file"`
	Counts  map[string]int `json:"counts"`
}

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show stored record counts and check the graph",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.view(cmd, func(s *session) error {
				counts, err := s.store.Counts()
				if err != nil {
					return systemError{err}
				}
				if err := s.fleet.CheckInvariants(); err != nil {
					return systemError{err}
				}
				report := statusReport{DataDir: s.store.DataDir(), LogFile: logger.Path(), Counts: counts}
				p := a.printer(cmd.OutOrStdout())
				if p.jsonMode {
					return p.json(report)
				}

				if _, err := fmt.Fprintf(p.w, "data: %s\nlog:  %s\n", report.DataDir, report.LogFile); err != nil {
					return err
				}
				rows := make([][]string, 0, len(types.StandardTableNames))
				for _, name := range types.StandardTableNames {
					rows = append(rows, []string{name, strconv.Itoa(counts[name])})
				}
				return p.table(report, []string{"TABLE", "ROWS"}, rows)
			})
		},
	}
}
