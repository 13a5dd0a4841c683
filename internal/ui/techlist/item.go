package techlist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/theme"
)

// TechItem wraps a model.Technology so it can be used in a bubbles/list.
type TechItem struct {
	Tech model.Technology
}

// FilterValue returns the string used for fuzzy filtering.
func (i TechItem) FilterValue() string { return i.Tech.Title }

// Title returns the technology title for the list.
func (i TechItem) Title() string { return i.Tech.Title }

// Description returns a short summary line for the list.
func (i TechItem) Description() string {
	parts := []string{
		i.Tech.Category,
		string(i.Tech.Status),
	}
	if i.Tech.LastUpdated != nil {
		parts = append(parts, relativeTime(*i.Tech.LastUpdated))
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering list items.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ti, ok := item.(TechItem)
	if !ok {
		return
	}

	tech := ti.Tech
	isSelected := index == m.Index()

	prefix := statusGlyph(tech.Status)

	statusBadge := theme.StatusStyle(tech.Status).Render(string(tech.Status))
	categoryBadge := theme.CategoryStyle(tech.Category).Render(tech.Category)
	difficultyBadge := theme.DifficultyStyle(tech.Difficulty).Render(
		difficultyLabel(tech.Difficulty),
	)

	notesMark := ""
	if strings.TrimSpace(tech.Notes) != "" {
		notesMark = lipgloss.NewStyle().
			Foreground(theme.ColorMagenta).
			Render(" ✎")
	}

	timeStr := ""
	if tech.LastUpdated != nil {
		timeStr = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render("  " + relativeTime(*tech.LastUpdated))
	}

	line := fmt.Sprintf(
		"%s %s %s %s %s%s%s",
		prefix, statusBadge, categoryBadge, difficultyBadge,
		tech.Title, notesMark, timeStr,
	)

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// statusGlyph returns the leading marker for a learning status.
func statusGlyph(status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return "✓"
	case model.StatusInProgress:
		return "◐"
	default:
		return "○"
	}
}

// difficultyLabel returns a short label for the given difficulty.
func difficultyLabel(d model.Difficulty) string {
	switch d {
	case model.DifficultyBeginner:
		return "D1"
	case model.DifficultyIntermediate:
		return "D2"
	case model.DifficultyAdvanced:
		return "D3"
	default:
		return "D?"
	}
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	case d < 24*time.Hour:
		hrs := int(d.Hours())
		if hrs == 1 {
			return "1h ago"
		}
		return fmt.Sprintf("%dh ago", hrs)
	case d < 7*24*time.Hour:
		days := int(d.Hours() / 24)
		if days == 1 {
			return "1d ago"
		}
		return fmt.Sprintf("%dd ago", days)
	default:
		weeks := int(d.Hours() / 24 / 7)
		if weeks == 1 {
			return "1w ago"
		}
		return fmt.Sprintf("%dw ago", weeks)
	}
}
