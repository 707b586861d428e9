// Package tui implements the interactive review flow for ambiguous lines.
// Each ambiguous line is shown with its competing scansions; accepting a
// candidate appends it to the override table so future runs resolve the
// line without prompting.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kmantas/sedes/internal/hexameter"
	"github.com/kmantas/sedes/internal/model"
	"github.com/kmantas/sedes/internal/sedes"
)

// ReviewItem is one ambiguous line awaiting a decision.
type ReviewItem struct {
	Work       string
	Location   string
	Text       string
	Candidates [][]sedes.WordSedes
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5FAFD7")).MarginBottom(1)
	locationStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	lineStyle      = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4")).Bold(true)
	candidateStyle = lipgloss.NewStyle().PaddingLeft(2)
	acceptedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D")).MarginTop(1)
)

// Model holds the review TUI state.
type Model struct {
	items     []ReviewItem
	knownPath string
	keymap    KeyMap
	help      help.Model
	item      int
	candidate int
	decided   map[int]bool
	accepted  int
	status    string
	err       error
	quitting  bool
}

// NewModel creates a review model over items. Accepted candidates are
// appended to the override table at knownPath.
func NewModel(items []ReviewItem, knownPath string) Model {
	return Model{
		items:     items,
		knownPath: knownPath,
		keymap:    DefaultKeyMap(),
		help:      help.New(),
		decided:   make(map[int]bool),
	}
}

// Accepted returns how many candidates were written to the override table.
func (m Model) Accepted() int { return m.accepted }

// Err returns the first write failure, if any.
func (m Model) Err() error { return m.err }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keymap.Up):
			if m.candidate > 0 {
				m.candidate--
			}
		case key.Matches(msg, m.keymap.Down):
			if item := m.current(); item != nil && m.candidate < len(item.Candidates)-1 {
				m.candidate++
			}
		case key.Matches(msg, m.keymap.Prev):
			if m.item > 0 {
				m.item--
				m.candidate = 0
			}
		case key.Matches(msg, m.keymap.Next):
			if m.item < len(m.items)-1 {
				m.item++
				m.candidate = 0
			}
		case key.Matches(msg, m.keymap.Skip):
			return m.advance(), nil
		case key.Matches(msg, m.keymap.Accept):
			return m.accept()
		}
	}
	return m, nil
}

func (m Model) current() *ReviewItem {
	if m.item < 0 || m.item >= len(m.items) {
		return nil
	}
	return &m.items[m.item]
}

func (m Model) advance() Model {
	if m.item < len(m.items)-1 {
		m.item++
		m.candidate = 0
	}
	return m
}

func (m Model) accept() (tea.Model, tea.Cmd) {
	item := m.current()
	if item == nil || m.decided[m.item] {
		return m, nil
	}
	words := make([]hexameter.KnownWord, len(item.Candidates[m.candidate]))
	for i, w := range item.Candidates[m.candidate] {
		words[i] = hexameter.KnownWord{Word: w.Word, Shape: rawShape(w.Shape)}
	}
	if err := hexameter.AppendKnown(m.knownPath, item.Text, words); err != nil {
		m.err = err
		m.status = fmt.Sprintf("write failed: %v", err)
		return m, nil
	}
	m.decided[m.item] = true
	m.accepted++
	m.status = fmt.Sprintf("accepted %s %s", item.Work, item.Location)

	next := m.advance()
	if next.accepted == len(next.items) {
		next.quitting = true
		return next, tea.Quit
	}
	return next, nil
}

// rawShape converts the display notation back to the "+"/"-" form the
// override table stores.
func rawShape(shape string) string {
	var b strings.Builder
	for _, r := range shape {
		switch r {
		case '–':
			b.WriteRune('+')
		case '⏑':
			b.WriteRune('-')
		}
	}
	return b.String()
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	item := m.current()
	if item == nil {
		return titleStyle.Render("Review") + "\nNo ambiguous lines to review.\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Review  %d/%d", m.item+1, len(m.items))))
	b.WriteString("\n")
	b.WriteString(locationStyle.Render(fmt.Sprintf("%s %s", item.Work, item.Location)))
	b.WriteString("\n")
	b.WriteString(lineStyle.Render(item.Text))
	b.WriteString("\n")

	for i, candidate := range item.Candidates {
		parts := make([]string, 0, len(candidate))
		for _, w := range candidate {
			parts = append(parts, fmt.Sprintf("%s %s@%s", w.Word, w.Shape, model.FormatSedes(w.Sedes)))
		}
		row := strings.Join(parts, "  ")
		switch {
		case m.decided[m.item] && i == m.candidate:
			b.WriteString(candidateStyle.Render(acceptedStyle.Render("✓ " + row)))
		case i == m.candidate:
			b.WriteString(candidateStyle.Render(selectedStyle.Render("> " + row)))
		default:
			b.WriteString(candidateStyle.Render("  " + row))
		}
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

// Run starts the review flow and blocks until it finishes. It returns how
// many candidates were accepted.
func Run(items []ReviewItem, knownPath string) (int, error) {
	program := tea.NewProgram(NewModel(items, knownPath))
	final, err := program.Run()
	if err != nil {
		return 0, fmt.Errorf("review session failed: %w", err)
	}
	m, ok := final.(Model)
	if !ok {
		return 0, fmt.Errorf("review session returned unexpected model %T", final)
	}
	if m.Err() != nil {
		return m.Accepted(), m.Err()
	}
	return m.Accepted(), nil
}
