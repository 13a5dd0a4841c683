package techform

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/theme"
)

// maxTitleLength bounds technology titles, matching the import rules.
const maxTitleLength = 50

// TechSubmittedMsg is dispatched when a new technology is submitted via
// the form. The draft has no ID; the store assigns one.
type TechSubmittedMsg struct {
	Draft model.Technology
}

// CancelMsg is dispatched when the user cancels the form.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title          string
	description    string
	category       string
	difficulty     string
	estimatedHours string
	resources      string
}

// Model is the Bubble Tea model for the add-technology form.
type Model struct {
	form *huh.Form
	fb   *formBindings

	// titleTaken reports whether a title is already in the collection,
	// compared case-insensitively.
	titleTaken func(title string) bool

	width  int
	height int
}

// New creates a new technology form model. titleTaken is consulted
// during validation so duplicates are rejected before submission.
func New(titleTaken func(string) bool, width, height int) Model {
	return Model{
		fb:         &formBindings{},
		titleTaken: titleTaken,
		width:      width,
		height:     height,
	}
}

// Start initializes the form for a fresh entry.
func (m *Model) Start() tea.Cmd {
	m.fb.title = ""
	m.fb.description = ""
	m.fb.category = model.CategoryFrontend
	m.fb.difficulty = string(model.DifficultyBeginner)
	m.fb.estimatedHours = ""
	m.fb.resources = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the technology form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the technology form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("New Technology") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	categoryOpts := make([]huh.Option[string], len(model.Categories))
	for i, c := range model.Categories {
		categoryOpts[i] = huh.NewOption(c, c)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What do you want to learn?").
			Value(&m.fb.title).
			Validate(m.validateTitle),
		huh.NewText().
			Title("Description").
			Placeholder("What is it, why learn it?").
			Value(&m.fb.description),
		huh.NewSelect[string]().
			Title("Category").
			Options(categoryOpts...).
			Value(&m.fb.category),
		huh.NewSelect[string]().
			Title("Difficulty").
			Options(
				huh.NewOption("Beginner", string(model.DifficultyBeginner)),
				huh.NewOption("Intermediate", string(model.DifficultyIntermediate)),
				huh.NewOption("Advanced", string(model.DifficultyAdvanced)),
			).
			Value(&m.fb.difficulty),
		huh.NewInput().
			Title("Estimated Hours").
			Placeholder("e.g. 25 (optional)").
			Value(&m.fb.estimatedHours).
			Validate(validateOptionalHours),
		huh.NewText().
			Title("Resources").
			Placeholder("One URL per line (optional)").
			Value(&m.fb.resources),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) validateTitle(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Title is required")
	}
	if len(s) > maxTitleLength {
		return fmt.Errorf("Title must be at most %d characters", maxTitleLength)
	}
	if m.titleTaken != nil && m.titleTaken(s) {
		return fmt.Errorf("A technology with this title already exists")
	}
	return nil
}

func (m Model) handleSubmit() tea.Cmd {
	draft := model.Technology{
		Title:       strings.TrimSpace(m.fb.title),
		Description: strings.TrimSpace(m.fb.description),
		Category:    m.fb.category,
		Status:      model.StatusNotStarted,
		Difficulty:  model.Difficulty(m.fb.difficulty),
	}

	if hours := strings.TrimSpace(m.fb.estimatedHours); hours != "" {
		if n, err := strconv.Atoi(hours); err == nil {
			draft.EstimatedHours = n
		}
	}

	for _, line := range strings.Split(m.fb.resources, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			draft.Resources = append(draft.Resources, line)
		}
	}

	return func() tea.Msg { return TechSubmittedMsg{Draft: draft} }
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

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateOptionalHours(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("Estimated hours must be a non-negative number")
	}
	return nil
}
