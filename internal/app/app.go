// Package app wires the views, the store, and the enrichment service
// into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/techtrack/internal/enrich"
	"github.com/nhle/techtrack/internal/keys"
	"github.com/nhle/techtrack/internal/store"
	"github.com/nhle/techtrack/internal/ui"
	"github.com/nhle/techtrack/internal/ui/command"
	"github.com/nhle/techtrack/internal/ui/detail"
	helpview "github.com/nhle/techtrack/internal/ui/help"
	"github.com/nhle/techtrack/internal/ui/searchview"
	"github.com/nhle/techtrack/internal/ui/statsview"
	"github.com/nhle/techtrack/internal/ui/techform"
	"github.com/nhle/techtrack/internal/ui/techlist"
	"github.com/nhle/techtrack/internal/ui/transfer"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewForm
	ViewStats
	ViewSearch
	ViewTransfer
	ViewHelp
	ViewCommand
)

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the store.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	store        *store.Store
	enrich       *enrich.Service
	keys         *keys.KeyMap
	techList     techlist.Model
	detail       detail.Model
	formView     techform.Model
	statsView    statsview.Model
	searchView   searchview.Model
	transferView transfer.Model
	helpView     helpview.Model
	commandView  command.Model
	quote        string
	notice       string
	ready        bool
}

// New creates a new root application model.
func New(s *store.Store, enrichService *enrich.Service) Model {
	k := keys.DefaultKeyMap()

	return Model{
		currentView:  ViewList,
		store:        s,
		enrich:       enrichService,
		keys:         k,
		techList:     techlist.New(s, k, 80, 24),
		detail:       detail.New(s, k, 80, 24),
		formView:     techform.New(s.HasTitle, 80, 24),
		statsView:    statsview.New(s, k, 80, 24),
		searchView:   searchview.New(enrichService, 80, 24),
		transferView: transfer.New(s, 80, 24),
		helpView:     helpview.New(k, 80, 24),
		commandView:  command.New(80, 24),
	}
}

// Init loads the initial list and kicks off the daily quote fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.techList.Init(),
		m.enrich.DailyQuote(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight() - 1 // quote line
		m.techList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.formView.SetSize(contentWidth, contentHeight)
		m.statsView.SetSize(contentWidth, contentHeight)
		m.searchView.SetSize(contentWidth, contentHeight)
		m.transferView.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case enrich.QuoteMsg:
		m.quote = fmt.Sprintf("“%s” — %s", msg.Quote.Text, msg.Quote.Author)
		return m, nil

	case enrich.SearchResultMsg:
		var cmd tea.Cmd
		m.searchView, cmd = m.searchView.Update(msg)
		return m, cmd

	case techlist.NoticeMsg:
		m.notice = msg.Text
		return m, nil

	case techlist.SelectedTechMsg:
		tech, ok := m.store.Get(msg.TechID)
		if !ok {
			return m, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetTech(tech)
		return m, nil

	case techform.TechSubmittedMsg:
		m.currentView = ViewList
		added, err := m.store.Add(context.Background(), msg.Draft)
		if err != nil {
			m.notice = err.Error()
			return m, m.techList.Reload()
		}
		m.notice = fmt.Sprintf("added %s", added.Title)
		return m, m.techList.Reload()

	case techform.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case detail.BackMsg:
		m.currentView = ViewList
		return m, m.techList.Reload()

	case detail.ChangedMsg:
		m.notice = msg.Notice
		return m, m.techList.Reload()

	case statsview.BackMsg:
		m.currentView = ViewList
		return m, nil

	case searchview.BackMsg:
		m.currentView = ViewList
		return m, m.techList.Reload()

	case searchview.AddCandidateMsg:
		added, err := m.store.Add(context.Background(), msg.Tech)
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.notice = fmt.Sprintf("added %s", added.Title)
		return m, nil

	case transfer.DoneMsg:
		m.currentView = ViewList
		m.notice = msg.Notice
		return m, m.techList.Reload()

	case transfer.CancelMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		// A pending notice is consumed by the next key press.
		if m.currentView == ViewList {
			m.notice = ""
		}
		if model, cmd, handled := m.handleGlobalKeys(msg); handled {
			return model, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleGlobalKeys processes keys that switch views. They apply only
// where text input does not have focus.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit, true
	}

	// Every other global key belongs to the list view, and not while
	// the search input is capturing text.
	if m.currentView != ViewList && m.currentView != ViewHelp {
		return m, nil, false
	}
	if m.currentView == ViewList && m.techList.Searching() {
		return m, nil, false
	}

	switch msg.String() {
	case "q":
		if m.currentView == ViewList {
			return m, tea.Quit, true
		}

	case "?":
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return m, nil, true
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case ":":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus(), true
		}

	case "a":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewForm
			return m, m.formView.Start(), true
		}

	case "t":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewStats
			m.statsView.Refresh()
			return m, nil, true
		}

	case "g":
		if m.currentView == ViewList && m.enrich.SearchEnabled() {
			m.previousView = m.currentView
			m.currentView = ViewSearch
			return m, m.searchView.Start(), true
		}

	case "i":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewTransfer
			return m, m.transferView.StartImport(), true
		}

	case "e":
		if m.currentView == ViewList {
			m.previousView = m.currentView
			m.currentView = ViewTransfer
			return m, m.transferView.StartExport(), true
		}
	}

	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.techList, cmd = m.techList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewStats:
		m.statsView, cmd = m.statsView.Update(msg)
	case ViewSearch:
		m.searchView, cmd = m.searchView.Update(msg)
	case ViewTransfer:
		m.transferView, cmd = m.transferView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(cmd string) (tea.Model, tea.Cmd) {
	switch cmd {
	case "quit", "q":
		return m, tea.Quit
	case "add", "new":
		m.currentView = ViewForm
		return m, m.formView.Start()
	case "stats", "statistics":
		m.currentView = ViewStats
		m.statsView.Refresh()
		return m, nil
	case "search", "github":
		if !m.enrich.SearchEnabled() {
			m.notice = "GitHub search is disabled in the config"
			return m, nil
		}
		m.currentView = ViewSearch
		return m, m.searchView.Start()
	case "import":
		m.currentView = ViewTransfer
		return m, m.transferView.StartImport()
	case "export":
		m.currentView = ViewTransfer
		return m, m.transferView.StartExport()
	case "complete all":
		m.store.MarkAllCompleted(context.Background())
		m.notice = "all technologies completed"
		return m, m.techList.Reload()
	case "reset all", "reset":
		m.store.ResetAllStatuses(context.Background())
		m.notice = "all statuses reset"
		return m, m.techList.Reload()
	case "clear":
		m.store.RemoveAll(context.Background())
		m.notice = "collection cleared"
		return m, m.techList.Reload()
	default:
		m.notice = fmt.Sprintf("unknown command: %s", cmd)
		return m, nil
	}
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("TechTrack", m.progressSummary())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine())

	if m.quote != "" {
		return m.layout.RenderWithFrame(
			header,
			m.layout.RenderQuote(m.quote)+"\n"+content,
			statusBar,
		)
	}
	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.techList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewForm:
		return m.formView.View()
	case ViewStats:
		return m.statsView.View()
	case ViewSearch:
		return m.searchView.View()
	case ViewTransfer:
		return m.transferView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// progressSummary returns the header's right-hand completion summary.
func (m Model) progressSummary() string {
	return fmt.Sprintf("%d%% complete · %d tracked", m.store.Progress(), m.store.Len())
}

// statusLine returns the status bar content: a transient notice when
// one is pending, otherwise key hints for the active view.
func (m Model) statusLine() string {
	if m.notice != "" && m.currentView == ViewList {
		return m.notice
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewDetail:
		return "n notes | s status | j/k scroll | esc back"
	case ViewForm:
		return "enter next | shift+tab previous | esc cancel"
	case ViewStats:
		return "j/k scroll | esc back"
	case ViewSearch:
		return "enter search/add | / new search | esc back"
	case ViewTransfer:
		return "enter submit | esc cancel"
	case ViewCommand:
		return "enter execute | esc back"
	default:
		hints := "q quit | ? help | a add | / search | f filter | s status | t stats"
		if filter := m.techList.Filter(); filter != store.FilterAll {
			hints = fmt.Sprintf("filter: %s | %s", filter, hints)
		}
		return hints
	}
}
