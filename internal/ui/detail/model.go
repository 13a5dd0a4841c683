package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/techtrack/internal/crossref"
	"github.com/nhle/techtrack/internal/keys"
	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/store"
	"github.com/nhle/techtrack/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// ChangedMsg signals the parent that the technology was mutated and the
// list projection should be recomputed.
type ChangedMsg struct {
	Notice string
}

// Model is the technology detail view component.
type Model struct {
	tech      *model.Technology
	viewport  viewport.Model
	notes     textarea.Model
	editNotes bool
	store     *store.Store
	keys      *keys.KeyMap
	width     int
	height    int
}

// New creates a new detail view model.
func New(s *store.Store, keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	ta := textarea.New()
	ta.Placeholder = "Learning notes..."
	ta.SetWidth(width - 8)
	ta.SetHeight(8)

	return Model{
		viewport: vp,
		notes:    ta,
		store:    s,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetTech updates the technology being displayed and re-renders.
func (m *Model) SetTech(tech model.Technology) {
	m.tech = &tech
	m.editNotes = false
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.editNotes {
		return m.updateNotesEditor(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case msg.String() == "n":
			if m.tech == nil {
				return m, nil
			}
			m.editNotes = true
			m.notes.SetValue(m.tech.Notes)
			return m, m.notes.Focus()

		case key.Matches(msg, m.keys.CycleStatus):
			if m.tech == nil {
				return m, nil
			}
			next, err := m.store.CycleStatus(context.Background(), m.tech.ID)
			if err != nil {
				return m, nil
			}
			if tech, ok := m.store.Get(m.tech.ID); ok {
				m.SetTech(tech)
			}
			return m, func() tea.Msg {
				return ChangedMsg{Notice: fmt.Sprintf("status → %s", next)}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// updateNotesEditor handles input while the notes textarea is focused.
func (m Model) updateNotesEditor(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.editNotes = false
			m.notes.Blur()
			return m, nil

		case "ctrl+s":
			m.editNotes = false
			m.notes.Blur()
			if m.tech == nil {
				return m, nil
			}
			if err := m.store.UpdateNotes(
				context.Background(), m.tech.ID, m.notes.Value(),
			); err != nil {
				return m, nil
			}
			if tech, ok := m.store.Get(m.tech.ID); ok {
				m.SetTech(tech)
			}
			return m, func() tea.Msg {
				return ChangedMsg{Notice: "notes saved"}
			}
		}
	}

	var cmd tea.Cmd
	m.notes, cmd = m.notes.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.tech == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No technology selected")
	}

	if m.editNotes {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite).
			Render("Notes — " + m.tech.Title)
		hint := theme.HelpStyle.Render("ctrl+s save · esc cancel")
		return lipgloss.NewStyle().Padding(1, 2).Render(
			lipgloss.JoinVertical(lipgloss.Left, header, "", m.notes.View(), "", hint),
		)
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.tech == nil {
		return ""
	}

	tech := m.tech
	var sections []string

	// Title
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(tech.Title))

	// Badges line: status + category + difficulty
	statusBadge := theme.StatusStyle(tech.Status).Render(string(tech.Status))
	categoryBadge := theme.CategoryStyle(tech.Category).Render(tech.Category)
	difficultyBadge := theme.DifficultyStyle(tech.Difficulty).Render(
		difficultyName(tech.Difficulty),
	)

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top, statusBadge, "  ", categoryBadge, "  ", difficultyBadge,
	)
	sections = append(sections, badgeLine)
	sections = append(sections, "")

	// Metadata table
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	if tech.EstimatedHours > 0 {
		sections = append(sections, fmt.Sprintf(
			"%s  %s",
			metaStyle.Render("Estimated:"),
			valStyle.Render(fmt.Sprintf("%dh", tech.EstimatedHours)),
		))
	}
	if tech.LastUpdated != nil {
		sections = append(sections, fmt.Sprintf(
			"%s    %s",
			metaStyle.Render("Updated:"),
			valStyle.Render(tech.LastUpdated.Format("2006-01-02 15:04")),
		))
	}
	if tech.ImportedAt != nil {
		sections = append(sections, fmt.Sprintf(
			"%s   %s",
			metaStyle.Render("Imported:"),
			valStyle.Render(tech.ImportedAt.Format("2006-01-02 15:04")),
		))
	}

	// Separator
	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	// Description
	descHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections = append(sections, descHeaderStyle.Render("Description"))

	description := tech.Description
	if description == "" {
		description = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No description")
	}
	sections = append(sections, description)

	// Resources
	if len(tech.Resources) > 0 {
		sections = append(sections, "")
		sections = append(sections, descHeaderStyle.Render("Resources"))
		linkStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue)
		for _, r := range tech.Resources {
			sections = append(sections, "  • "+linkStyle.Render(r))
		}
	}

	// Notes
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")
	sections = append(sections, descHeaderStyle.Render("Notes"))

	notes := tech.Notes
	if strings.TrimSpace(notes) == "" {
		notes = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No notes yet — press n to add some")
	}
	sections = append(sections, notes)

	// URLs pasted into notes that are not tracked as resources yet.
	if links := crossref.NewLinks(tech.Notes, tech.Resources); len(links) > 0 {
		sections = append(sections, "")
		sections = append(sections, descHeaderStyle.Render("Links in notes"))
		linkStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue)
		for _, link := range links {
			sections = append(sections, "  • "+linkStyle.Render(link))
		}
	}

	sections = append(sections, "")
	sections = append(sections, theme.HelpStyle.Render(
		"n edit notes · s cycle status · esc back",
	))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	m.notes.SetWidth(width - 8)
}

// difficultyName returns a human-readable name for the difficulty.
func difficultyName(d model.Difficulty) string {
	switch d {
	case model.DifficultyBeginner:
		return "Beginner"
	case model.DifficultyIntermediate:
		return "Intermediate"
	case model.DifficultyAdvanced:
		return "Advanced"
	default:
		return "Unrated"
	}
}
