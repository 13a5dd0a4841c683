package searchview

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/nhle/techtrack/internal/enrich"
	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/source"
	"github.com/nhle/techtrack/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// AddCandidateMsg asks the parent to add a found candidate to the tracker.
type AddCandidateMsg struct {
	Tech model.Technology
}

// candidateItem wraps a candidate technology for the results list.
type candidateItem struct {
	tech model.Technology
}

func (i candidateItem) FilterValue() string { return i.tech.Title }

// candidateDelegate renders one candidate result line.
type candidateDelegate struct{}

func (d candidateDelegate) Height() int                             { return 2 }
func (d candidateDelegate) Spacing() int                            { return 0 }
func (d candidateDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d candidateDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ci, ok := item.(candidateItem)
	if !ok {
		return
	}

	tech := ci.tech
	categoryBadge := theme.CategoryStyle(tech.Category).Render(tech.Category)
	difficultyBadge := theme.DifficultyStyle(tech.Difficulty).Render(string(tech.Difficulty))

	title := fmt.Sprintf("%s %s %s", tech.Title, categoryBadge, difficultyBadge)
	description := tech.Description
	if len(description) > 80 {
		description = description[:77] + "..."
	}
	description = lipgloss.NewStyle().Foreground(theme.ColorGray).Render(description)

	block := lipgloss.JoinVertical(lipgloss.Left, title, description)
	if index == m.Index() {
		block = theme.SelectedItemStyle.Render(block)
	} else {
		block = theme.ListItemStyle.Render(block)
	}
	fmt.Fprint(w, block)
}

// Model is the GitHub candidate search view.
type Model struct {
	input    textinput.Model
	results  list.Model
	spinner  spinner.Model
	service  *enrich.Service
	token    uuid.UUID
	query    string
	loading  bool
	fallback bool
	total    int
	errText  string
	width    int
	height   int
}

// New creates a new search view backed by the enrichment service.
func New(service *enrich.Service, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "search GitHub for a technology..."
	ti.Prompt = "g> "
	ti.Width = width - 6

	l := list.New([]list.Item{}, candidateDelegate{}, width, height-6)
	l.Title = "Candidates"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.ColorBlue)

	return Model{
		input:   ti,
		results: l,
		spinner: sp,
		service: service,
		width:   width,
		height:  height,
	}
}

// Start focuses the query input for a fresh search.
func (m *Model) Start() tea.Cmd {
	m.input.Reset()
	m.results.SetItems(nil)
	m.loading = false
	m.fallback = false
	m.errText = ""
	m.query = ""
	return m.input.Focus()
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the search view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case enrich.SearchResultMsg:
		if msg.Token != m.token {
			return m, nil
		}
		m.loading = false
		m.fallback = msg.Fallback
		m.total = msg.Total
		m.errText = ""
		if msg.Err != nil && !msg.Fallback {
			m.errText = msg.Err.Error()
		}
		items := make([]list.Item, len(msg.Results))
		for i, tech := range msg.Results {
			items[i] = candidateItem{tech: tech}
		}
		cmd := m.results.SetItems(items)
		return m, cmd

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.handleInputKeys(msg)
		}
		return m.handleResultKeys(msg)
	}

	return m, nil
}

// handleInputKeys processes keys while the query input is focused.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.service.CancelSearch()
		return m, func() tea.Msg { return BackMsg{} }

	case "enter":
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			return m, nil
		}
		m.input.Blur()
		m.query = query
		m.loading = true
		m.errText = ""

		token, searchCmd := m.service.Search(query, source.FetchOptions{Page: 1})
		m.token = token
		return m, tea.Batch(searchCmd, m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleResultKeys processes keys while browsing results.
func (m Model) handleResultKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.service.CancelSearch()
		return m, func() tea.Msg { return BackMsg{} }

	case "/":
		m.results.SetItems(nil)
		return m, m.input.Focus()

	case "enter":
		item, ok := m.results.SelectedItem().(candidateItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return AddCandidateMsg{Tech: item.tech}
		}
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

// View renders the search view.
func (m Model) View() string {
	var sections []string

	inputBar := lipgloss.NewStyle().
		Foreground(theme.ColorWhite).
		Padding(0, 1).
		Render(m.input.View())
	sections = append(sections, inputBar)

	switch {
	case m.loading:
		sections = append(sections, lipgloss.NewStyle().
			Padding(1, 2).
			Render(m.spinner.View()+" searching GitHub for "+m.query+"..."))

	case m.errText != "":
		sections = append(sections, lipgloss.NewStyle().
			Padding(1, 2).
			Foreground(theme.ColorRed).
			Render("Search failed: "+m.errText))

	case len(m.results.Items()) > 0:
		if m.fallback {
			sections = append(sections, lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(theme.ColorYellow).
				Render("GitHub unreachable — showing a generic suggestion"))
		} else {
			sections = append(sections, lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(theme.ColorGray).
				Render(fmt.Sprintf("%d repositories matched", m.total)))
		}
		sections = append(sections, m.results.View())
		sections = append(sections, theme.HelpStyle.Render(
			" enter add · / new search · esc back",
		))

	case m.query != "":
		sections = append(sections, lipgloss.NewStyle().
			Padding(1, 2).
			Foreground(theme.ColorGray).
			Render("No candidates found for "+m.query))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetSize updates the search view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
	m.results.SetSize(width, height-6)
}
