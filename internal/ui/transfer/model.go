// Package transfer implements the import/export flow: prompting for a
// file path, validating import files, and confirming duplicate-heavy
// imports before anything touches the collection.
package transfer

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/techtrack/internal/exchange"
	"github.com/nhle/techtrack/internal/store"
	"github.com/nhle/techtrack/internal/theme"
)

// DoneMsg signals the parent that the flow finished. Changed is true
// when the collection was modified.
type DoneMsg struct {
	Notice  string
	Changed bool
}

// CancelMsg signals the parent that the user abandoned the flow.
type CancelMsg struct{}

type stage int

const (
	stageIdle stage = iota
	stageExportPath
	stageImportPath
	stageConfirmDuplicates
)

// formBindings holds form field values on the heap so that huh's
// Value() pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	path    string
	proceed bool
}

// Model drives the import/export forms.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	stage  stage
	store  *store.Store
	plan   *exchange.ImportPlan
	width  int
	height int
}

// New creates a new transfer model over the given store.
func New(s *store.Store, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		store:  s,
		width:  width,
		height: height,
	}
}

// StartExport begins the export flow with a dated default filename.
func (m *Model) StartExport() tea.Cmd {
	m.stage = stageExportPath
	m.plan = nil
	m.fb.path = fmt.Sprintf(
		"techtrack-export-%s.json", time.Now().Format("2006-01-02"),
	)
	m.form = m.pathForm("Export to", "destination file path")
	return m.form.Init()
}

// StartImport begins the import flow.
func (m *Model) StartImport() tea.Cmd {
	m.stage = stageImportPath
	m.plan = nil
	m.fb.path = ""
	m.form = m.pathForm("Import from", "path to an export file")
	return m.form.Init()
}

// Update handles messages for the transfer flow.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateAborted {
		m.stage = stageIdle
		return m, func() tea.Msg { return CancelMsg{} }
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.stage {
	case stageExportPath:
		return m.runExport()
	case stageImportPath:
		return m.validateImport()
	case stageConfirmDuplicates:
		if !m.fb.proceed {
			m.stage = stageIdle
			return m, func() tea.Msg { return CancelMsg{} }
		}
		return m.applyImport()
	}
	return m, cmd
}

// runExport writes the collection to the chosen path.
func (m Model) runExport() (Model, tea.Cmd) {
	m.stage = stageIdle
	path := strings.TrimSpace(m.fb.path)

	doc := exchange.NewExport(m.store.Snapshot(), time.Now())
	if err := doc.WriteFile(path); err != nil {
		return m, done(fmt.Sprintf("export failed: %v", err), false)
	}
	return m, done(fmt.Sprintf(
		"exported %d technologies to %s", doc.Statistics.Total, path,
	), false)
}

// validateImport parses and validates the chosen file, asking for
// confirmation when duplicates would be skipped.
func (m Model) validateImport() (Model, tea.Cmd) {
	path := strings.TrimSpace(m.fb.path)

	plan, err := exchange.ReadFile(path, m.store.Titles())
	if err != nil {
		m.stage = stageIdle
		return m, done(err.Error(), false)
	}
	m.plan = plan

	if plan.Duplicates > 0 {
		m.stage = stageConfirmDuplicates
		m.fb.proceed = false
		m.form = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf(
					"%d of %d technologies already exist and will be skipped. Continue?",
					plan.Duplicates, len(plan.Technologies),
				)).
				Affirmative("Import").
				Negative("Cancel").
				Value(&m.fb.proceed),
		)).WithWidth(m.formWidth())
		return m, m.form.Init()
	}

	return m.applyImport()
}

// applyImport inserts the validated records; the store skips duplicates.
func (m Model) applyImport() (Model, tea.Cmd) {
	m.stage = stageIdle
	if m.plan == nil {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	added := m.store.AddMany(context.Background(), m.plan.Records(time.Now()))
	skipped := len(m.plan.Technologies) - len(added)

	notice := fmt.Sprintf("imported %d technologies", len(added))
	if skipped > 0 {
		notice = fmt.Sprintf("%s, skipped %d duplicates", notice, skipped)
	}
	return m, done(notice, len(added) > 0)
}

// View renders the active form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "Import"
	if m.stage == stageExportPath {
		titleText = "Export"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) pathForm(title, placeholder string) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Placeholder(placeholder).
			Value(&m.fb.path).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("a file path is required")
				}
				return nil
			}),
	)).WithWidth(m.formWidth())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func done(notice string, changed bool) tea.Cmd {
	return func() tea.Msg {
		return DoneMsg{Notice: notice, Changed: changed}
	}
}
