// Package tui provides interactive terminal UI components using BubbleTea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mhersch/toolbelt/internal/bookmark"
)

// BookmarkPickerAction represents the outcome of the picker interaction.
type BookmarkPickerAction int

const (
	// BookmarkPickerActionNone means no selection was made (user quit).
	BookmarkPickerActionNone BookmarkPickerAction = iota
	// BookmarkPickerActionSelect means the user chose a bookmark.
	BookmarkPickerActionSelect
)

// BookmarkPickerResult contains the result of the picker interaction.
type BookmarkPickerResult struct {
	Action   BookmarkPickerAction
	Selected bookmark.Bookmark
}

// bookmarkPickerKeyMap defines the key bindings for the picker.
type bookmarkPickerKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

func defaultBookmarkPickerKeyMap() bookmarkPickerKeyMap {
	return bookmarkPickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "go"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Styles for the bookmark picker TUI.
var bookmarkPickerStyles = struct {
	Title    lipgloss.Style
	Help     lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Target   lipgloss.Style
	Dangling lipgloss.Style
}{
	Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6")).Padding(0, 1),
	Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Item:     lipgloss.NewStyle().Padding(0, 2),
	Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 2),
	Target:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	Dangling: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
}

// BookmarkPickerModel is the BubbleTea model for bookmark selection.
type BookmarkPickerModel struct {
	marks    []bookmark.Bookmark
	cursor   int
	keys     bookmarkPickerKeyMap
	result   BookmarkPickerResult
	width    int
	quitting bool
}

// NewBookmarkPickerModel creates a picker over the given bookmarks.
func NewBookmarkPickerModel(marks []bookmark.Bookmark) BookmarkPickerModel {
	return BookmarkPickerModel{
		marks: marks,
		keys:  defaultBookmarkPickerKeyMap(),
	}
}

// Init implements tea.Model.
func (m BookmarkPickerModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m BookmarkPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.marks)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Select):
			if len(m.marks) > 0 {
				m.result = BookmarkPickerResult{
					Action:   BookmarkPickerActionSelect,
					Selected: m.marks[m.cursor],
				}
				m.quitting = true
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m BookmarkPickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(bookmarkPickerStyles.Title.Render("Jump to bookmark"))
	b.WriteString("\n\n")

	if len(m.marks) == 0 {
		b.WriteString(bookmarkPickerStyles.Item.Render("no bookmarks yet"))
		b.WriteString("\n")
	}

	for i, mark := range m.marks {
		label := fmt.Sprintf("%s  %s", mark.Name, bookmarkPickerStyles.Target.Render(mark.Target))
		if mark.Dangling {
			label = fmt.Sprintf("%s  %s", mark.Name, bookmarkPickerStyles.Dangling.Render(mark.Target+" (dangling)"))
		}
		if i == m.cursor {
			b.WriteString(bookmarkPickerStyles.Selected.Render(label))
		} else {
			b.WriteString(bookmarkPickerStyles.Item.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(bookmarkPickerStyles.Help.Render("↑/k up • ↓/j down • enter go • q quit"))
	b.WriteString("\n")
	return b.String()
}

// Result returns the picker outcome after the program has finished.
func (m BookmarkPickerModel) Result() BookmarkPickerResult {
	return m.result
}

// RunBookmarkPicker runs the picker and returns the user's choice. The UI is
// drawn on stderr so the selected path can be captured from stdout by the
// shell wrapper.
func RunBookmarkPicker(marks []bookmark.Bookmark, opts ...tea.ProgramOption) (BookmarkPickerResult, error) {
	p := tea.NewProgram(NewBookmarkPickerModel(marks), opts...)
	final, err := p.Run()
	if err != nil {
		return BookmarkPickerResult{}, fmt.Errorf("running bookmark picker: %w", err)
	}
	model, ok := final.(BookmarkPickerModel)
	if !ok {
		return BookmarkPickerResult{}, fmt.Errorf("unexpected model type %T", final)
	}
	return model.Result(), nil
}
