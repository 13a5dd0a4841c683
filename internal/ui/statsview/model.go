package statsview

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/techtrack/internal/keys"
	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/store"
	"github.com/nhle/techtrack/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// barWidth is the character width of the progress bar.
const barWidth = 40

// Model is the statistics view component.
type Model struct {
	viewport viewport.Model
	store    *store.Store
	keys     *keys.KeyMap
	width    int
	height   int
}

// New creates a new statistics view model.
func New(s *store.Store, keys *keys.KeyMap, width, height int) Model {
	vp := viewport.New(width, height-2)
	return Model{
		viewport: vp,
		store:    s,
		keys:     keys,
		width:    width,
		height:   height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Refresh recomputes the statistics content.
func (m *Model) Refresh() {
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// Update handles messages for the statistics view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Back) {
			return m, func() tea.Msg { return BackMsg{} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the statistics view.
func (m Model) View() string {
	return m.viewport.View()
}

// renderContent builds the statistics content string.
func (m Model) renderContent() string {
	total := m.store.Len()
	progress := m.store.Progress()
	counts := m.store.CountsByStatus()
	categories := m.store.CategoryStats()

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

	var sections []string

	sections = append(sections, headerStyle.Render("Learning Progress"))
	sections = append(sections, fmt.Sprintf(
		"%s %s",
		renderBar(progress),
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%d%%", progress)),
	))
	sections = append(sections, metaStyle.Render(
		fmt.Sprintf("%d technologies tracked", total),
	))
	sections = append(sections, "")

	sections = append(sections, headerStyle.Render("By Status"))
	for _, status := range model.AllStatuses {
		badge := theme.StatusStyle(status).Render(string(status))
		sections = append(sections, fmt.Sprintf("%s  %d", badge, counts[status]))
	}
	sections = append(sections, "")

	if len(categories) > 0 {
		sections = append(sections, headerStyle.Render("By Category"))

		names := make([]string, 0, len(categories))
		for name := range categories {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			cs := categories[name]
			badge := theme.CategoryStyle(name).Render(name)
			sections = append(sections, fmt.Sprintf(
				"%s  %d/%d completed, %d in progress",
				badge, cs.Completed, cs.Total, cs.InProgress,
			))
		}
	}

	sections = append(sections, "")
	sections = append(sections, theme.HelpStyle.Render("esc back"))

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderBar draws a fixed-width text progress bar for a percentage.
func renderBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := barWidth * percent / 100
	return theme.ProgressFilledStyle.Render(strings.Repeat("█", filled)) +
		theme.ProgressEmptyStyle.Render(strings.Repeat("░", barWidth-filled))
}

// SetSize updates the statistics view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
