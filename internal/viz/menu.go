package viz

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/sticksim/internal/config"
	"github.com/san-kum/sticksim/internal/models"
)

var sceneInfo = map[string]string{
	"rope":   "anchored rope, drag it",
	"chain":  "free swinging chain",
	"cloth":  "pinned grid",
	"bridge": "sagging span",
	"box":    "braced square",
	"empty":  "blank slate",
}

type menuEntry struct {
	scene, preset string
}

func (e menuEntry) label() string {
	if e.preset == "" {
		return e.scene
	}
	return e.scene + "/" + e.preset
}

type menu struct {
	entries []menuEntry
	cursor  int
	err     error
	live    *Model
}

// NewMenu lists every scene with its presets.
func NewMenu() *menu {
	entries := make([]menuEntry, 0)
	scenes := models.List()
	sort.Strings(scenes)
	for _, scene := range scenes {
		presets := config.ListPresets(scene)
		if len(presets) == 0 {
			entries = append(entries, menuEntry{scene: scene})
			continue
		}
		for _, p := range presets {
			entries = append(entries, menuEntry{scene: scene, preset: p})
		}
	}
	return &menu{entries: entries}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.live != nil {
		next, cmd := m.live.Update(msg)
		live := next.(Model)
		m.live = &live
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter":
		return m.start()
	}
	return m, nil
}

func (m menu) start() (tea.Model, tea.Cmd) {
	e := m.entries[m.cursor]
	cfg := config.DefaultConfig()
	cfg.Scene = e.scene
	if p := config.GetPreset(e.scene, e.preset); p != nil {
		cfg = p
	}

	scene, err := cfg.GetScene()
	if err != nil {
		m.err = err
		return m, nil
	}
	s, err := models.Build(scene, cfg.GetParams(scene))
	if err != nil {
		m.err = err
		return m, nil
	}

	live := NewModel(s, e.label(), cfg.Dt)
	m.live = &live
	return m, live.Init()
}

func (m menu) View() string {
	if m.live != nil {
		return m.live.View()
	}

	var b strings.Builder
	h := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	b.WriteString("\n\n    " + h.Render("STICKSIM") + "\n    " + sub.Render("verlet sticks and points") + "\n    " + sub.Render("─────────────────────────") + "\n\n")

	sel := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	arrow := lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	off := lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	for i, e := range m.entries {
		name := fmt.Sprintf("%-16s", e.label())
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", arrow.Render("▸"), sel.Render(name), desc.Render(sceneInfo[e.scene])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", off.Render(name), off.Render(sceneInfo[e.scene])))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")).Render(m.err.Error()) + "\n")
	}

	key := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	b.WriteString("\n    " + key.Render("j/k") + off.Render(" navigate  ") + key.Render("enter") + off.Render(" select  ") + key.Render("q") + off.Render(" quit") + "\n")
	return b.String()
}

func RunMenu() error {
	_, err := tea.NewProgram(NewMenu(), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
