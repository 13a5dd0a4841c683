package techlist

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/techtrack/internal/keys"
	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/store"
	"github.com/nhle/techtrack/internal/theme"
)

// TechsLoadedMsg is sent when the visible projection has been recomputed.
type TechsLoadedMsg struct {
	Techs []model.Technology
}

// SelectedTechMsg is sent when a user selects a technology to view details.
type SelectedTechMsg struct {
	TechID int64
}

// NoticeMsg asks the parent to flash a transient status-bar notice.
type NoticeMsg struct {
	Text string
}

// Model is the main technology list view component.
type Model struct {
	list        list.Model
	store       *store.Store
	keys        *keys.KeyMap
	projection  store.Projection
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new technology list model.
func New(s *store.Store, k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Technologies"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search technologies..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  k,
		projection: store.Projection{
			Status: store.FilterAll,
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial projection.
func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Update handles messages for the technology list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TechsLoadedMsg:
		items := make([]list.Item, len(msg.Techs))
		for i, tech := range msg.Techs {
			items[i] = TechItem{Tech: tech}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	// Delegate to list model for other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.projection.Query = m.searchInput.Value()
		return m, m.Reload()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.projection.Query = ""
		return m, m.Reload()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(TechItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTechMsg{TechID: item.Tech.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.CycleFilter):
		m.projection.Status = m.projection.Status.Next()
		return m, tea.Batch(m.Reload(), notice(
			fmt.Sprintf("filter: %s", m.projection.Status),
		))

	case key.Matches(msg, m.keys.CycleStatus):
		item, ok := m.list.SelectedItem().(TechItem)
		if !ok {
			return m, nil
		}
		next, err := m.store.CycleStatus(context.Background(), item.Tech.ID)
		if err != nil {
			return m, notice(err.Error())
		}
		return m, tea.Batch(m.Reload(), notice(
			fmt.Sprintf("%s → %s", item.Tech.Title, next),
		))

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(TechItem)
		if !ok {
			return m, nil
		}
		if err := m.store.Remove(context.Background(), item.Tech.ID); err != nil {
			return m, notice(err.Error())
		}
		return m, tea.Batch(m.Reload(), notice(
			fmt.Sprintf("deleted %s", item.Tech.Title),
		))

	case key.Matches(msg, m.keys.CompleteAll):
		m.store.MarkAllCompleted(context.Background())
		return m, tea.Batch(m.Reload(), notice("all technologies completed"))

	case key.Matches(msg, m.keys.ResetAll):
		m.store.ResetAllStatuses(context.Background())
		return m, tea.Batch(m.Reload(), notice("all statuses reset"))
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the technology list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when nothing matches.
func (m Model) renderEmptyState() string {
	filtered := m.projection.Query != "" ||
		(m.projection.Status != "" && m.projection.Status != store.FilterAll)

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if filtered {
		return style.Render("No matching technologies.\nPress esc to clear the search, f to change the filter.")
	}

	return style.Render(
		"No technologies tracked yet.\n\n" +
			"Press a to add one, or g to search GitHub.",
	)
}

// Reload returns a tea.Cmd that recomputes the visible projection.
func (m Model) Reload() tea.Cmd {
	s := m.store
	projection := m.projection
	return func() tea.Msg {
		return TechsLoadedMsg{Techs: projection.Apply(s.Snapshot())}
	}
}

// Filter returns the current status filter, for the status bar.
func (m Model) Filter() store.StatusFilter {
	if m.projection.Status == "" {
		return store.FilterAll
	}
	return m.projection.Status
}

// Query returns the current search query, for the status bar.
func (m Model) Query() string { return m.projection.Query }

// Searching reports whether the search input currently has focus, so
// the parent can suppress global key handling.
func (m Model) Searching() bool { return m.searchMode }

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}

func notice(text string) tea.Cmd {
	return func() tea.Msg {
		return NoticeMsg{Text: text}
	}
}
