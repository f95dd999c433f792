// Package tui provides a terminal UI for playing an expedition locally,
// driving the game engine directly without the REST server.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hexfield/expedition/game/engine"
	"github.com/hexfield/expedition/game/hexmap"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E3A1"))

	statusFailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F38BA8"))

	playerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true)

	terrainStyles = map[hexmap.Terrain]lipgloss.Style{
		hexmap.Home:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true),
		hexmap.Plain:    lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
		hexmap.Forest:   lipgloss.NewStyle().Foreground(lipgloss.Color("#40A02B")),
		hexmap.Mountain: lipgloss.NewStyle().Foreground(lipgloss.Color("#9399B2")),
		hexmap.Water:    lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA")),
		hexmap.FarPlain: lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF")),
	}
)

// moveKeys lays the six hex directions onto the left hand:
// w/e above, a/d beside, z/x below.
var moveKeys = map[string]hexmap.Direction{
	"w": hexmap.North,
	"e": hexmap.NorthEast,
	"d": hexmap.SouthEast,
	"x": hexmap.South,
	"z": hexmap.SouthWest,
	"a": hexmap.NorthWest,
}

type clearStatusMsg struct{ seq int }

type model struct {
	eng    *engine.GameEngine
	world  *hexmap.Map
	status string
	failed bool

	// statusSeq guards against a stale tick clearing a newer status.
	statusSeq int
	width     int
	height    int
}

// NewModel builds the TUI model around a running engine.
func NewModel(eng *engine.GameEngine) model {
	return model{
		eng:    eng,
		world:  eng.World(),
		status: eng.GetConfig().Messages.Welcome,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.failed = false
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "g":
			return m.applyResult(m.eng.Gather())

		case "h":
			return m.applyResult(m.eng.HomeAction())

		case "r":
			return m.applyResult(m.eng.RestoreAP())

		case "R":
			state := m.eng.Reset()
			return m.setStatus(state.Message, false)

		default:
			if dir, ok := moveKeys[msg.String()]; ok {
				return m.applyResult(m.eng.Move(dir))
			}
		}
	}

	return m, nil
}

// applyResult surfaces an action outcome as a transient status line.
func (m model) applyResult(result *engine.ActionResult) (tea.Model, tea.Cmd) {
	return m.setStatus(result.Message, !result.Success)
}

func (m model) setStatus(message string, failed bool) (tea.Model, tea.Cmd) {
	m.status = message
	m.failed = failed
	m.statusSeq++

	seq := m.statusSeq
	return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func (m model) View() string {
	mapView := m.renderMap()
	sideView := m.renderSide()

	main := lipgloss.JoinHorizontal(lipgloss.Top, mapView, sideView)

	status := ""
	if m.status != "" {
		if m.failed {
			status = statusFailStyle.Render(m.status)
		} else {
			status = statusOKStyle.Render(m.status)
		}
	}

	help := helpStyle.Render("w/e/a/d/z/x move  g gather  h home action  r rest  R reset  q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.eng.GetConfig().Name),
		"",
		main,
		"",
		status,
		help,
	) + "\n"
}

// renderMap draws the hex grid with the pointy-top axial layout: each
// tile sits at column 2q+r, and odd offsets give the hex stagger.
func (m model) renderMap() string {
	coords := m.world.Coordinates()
	if len(coords) == 0 {
		return ""
	}

	minR, maxR := coords[0].R, coords[0].R
	minX, maxX := 2*coords[0].Q+coords[0].R, 2*coords[0].Q+coords[0].R
	for _, c := range coords {
		x := 2*c.Q + c.R
		if c.R < minR {
			minR = c.R
		}
		if c.R > maxR {
			maxR = c.R
		}
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
	}

	pos := m.eng.GetPosition()

	var b strings.Builder
	for r := minR; r <= maxR; r++ {
		row := make([]string, maxX-minX+1)
		for i := range row {
			row[i] = " "
		}
		for _, c := range coords {
			if c.R != r {
				continue
			}
			x := 2*c.Q + c.R - minX
			tile := m.world.TileAt(c)
			if c == pos {
				row[x] = playerStyle.Render("@")
			} else {
				row[x] = terrainStyles[tile.Terrain].Render(tile.Terrain.Glyph())
			}
		}
		b.WriteString(strings.Join(row, ""))
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) renderSide() string {
	state := m.eng.Snapshot()

	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("EXPEDITION"))
	fmt.Fprintf(&b, "Position: (%d,%d)\n", state.Position.Q, state.Position.R)
	fmt.Fprintf(&b, "AP: %d/%d\n", state.ActionPoints, state.MaxAP)
	fmt.Fprintf(&b, "Actions: %d\n\n", state.TotalActions)

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("PACK"))
	if len(state.Inventory) == 0 {
		b.WriteString("(empty)\n")
	} else {
		resources := make([]string, 0, len(state.Inventory))
		for res := range state.Inventory {
			resources = append(resources, string(res))
		}
		sort.Strings(resources)
		for _, res := range resources {
			fmt.Fprintf(&b, "%-6s %d\n", res, state.Inventory[hexmap.Resource(res)])
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s\n", titleStyle.Render("HERE"))
	tile := m.world.TileAt(state.Position)
	fmt.Fprintf(&b, "%s\n", tile.Terrain)
	if m.eng.CanGather() {
		b.WriteString("g: gather (2 AP)\n")
	}
	if m.eng.CanHomeAction() {
		b.WriteString("h: home action (2 AP)\n")
	}

	moves := m.eng.PossibleMoves()
	if len(moves) > 0 {
		names := make([]string, len(moves))
		for i, d := range moves {
			names[i] = string(d)
		}
		fmt.Fprintf(&b, "exits: %s\n", strings.Join(names, " "))
	}

	return panelStyle.Render(b.String())
}

// Run starts the TUI over the given engine and blocks until quit.
func Run(eng *engine.GameEngine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
