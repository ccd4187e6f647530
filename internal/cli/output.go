package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mesh-intelligence/freighter/pkg/types"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// printer writes command results as JSON or as text tables.
type printer struct {
	w        io.Writer
	jsonMode bool
}

func (a *app) printer(w io.Writer) printer {
	return printer{w: w, jsonMode: a.flags.jsonMode}
}

// result prints v as JSON, or msg in text mode.
func (p printer) result(v any, msg string, args ...any) error {
	if p.jsonMode {
		return p.json(v)
	}
	_, err := fmt.Fprintf(p.w, msg+"\n", args...)
	return err
}

func (p printer) json(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// table prints v as JSON, or the rows as a text table.
func (p printer) table(v any, headers []string, rows [][]string) error {
	if p.jsonMode {
		return p.json(v)
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(p.w, "(none)")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle()
		})
	_, err := fmt.Fprintln(p.w, t.Render())
	return err
}

func galaxyRows(gs []types.Galaxy) [][]string {
	rows := make([][]string, 0, len(gs))
	for _, g := range gs {
		rows = append(rows, []string{g.GalaxyID, g.Code, g.Name, g.Type, galaxyMode(g)})
	}
	return rows
}

func galaxyMode(g types.Galaxy) string {
	if since, err := g.Peaceful(); err == nil {
		return "since " + since.Format(dateLayout)
	}
	atWar, _ := g.War()
	flare, _ := g.FlareStrength()
	state := "at peace"
	if atWar {
		state = "at war"
	}
	return fmt.Sprintf("%s, flare %d", state, flare)
}

func shipRows(ss []types.Ship) [][]string {
	rows := make([][]string, 0, len(ss))
	for _, s := range ss {
		shield := "-"
		if n, err := s.ShieldStrength(); err == nil {
			shield = strconv.Itoa(n)
		}
		support := s.AIType
		if s.Kind == types.ShipKindOrganicSupport {
			support = strings.Join(s.FoodTypes, ",")
		}
		rows = append(rows, []string{
			s.ShipID, s.Name, s.Kind, strconv.Itoa(s.MaxCargoMass), shield, support,
			orDash(s.GalaxyID), strconv.Itoa(len(s.CargoIDs)),
		})
	}
	return rows
}

func cargoRows(cs []types.Cargo) [][]string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		rows = append(rows, []string{
			c.CargoID, c.Name, strconv.Itoa(c.Mass), c.Owner, orDash(c.DestinationID), orDash(c.ShipID),
		})
	}
	return rows
}

func crewRows(cs []types.CrewMember) [][]string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		ident, detail := c.SerialNumber, c.ModelNumber
		if c.Kind == types.CrewOrganic {
			ident, detail = c.Name, c.AcceptableFoodType
		}
		rows = append(rows, []string{c.CrewID, c.Kind, ident, detail, strconv.Itoa(len(c.ContractIDs))})
	}
	return rows
}

func contractRows(cs []types.Contract) [][]string {
	rows := make([][]string, 0, len(cs))
	for _, c := range cs {
		salary := "-"
		if c.Salary != nil {
			salary = strconv.FormatFloat(*c.Salary, 'f', 2, 64)
		}
		rows = append(rows, []string{c.ContractID, c.Role, salary, c.ShipID, c.CrewMemberID})
	}
	return rows
}

var (
	galaxyHeaders   = []string{"ID", "CODE", "NAME", "TYPE", "MODE"}
	shipHeaders     = []string{"ID", "NAME", "KIND", "CAPACITY", "SHIELD", "SUPPORT", "GALAXY", "CARGO"}
	cargoHeaders    = []string{"ID", "NAME", "MASS", "OWNER", "DESTINATION", "SHIP"}
	crewHeaders     = []string{"ID", "KIND", "NAME/SERIAL", "FOOD/MODEL", "CONTRACTS"}
	contractHeaders = []string{"ID", "ROLE", "SALARY", "SHIP", "CREW"}
)

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
