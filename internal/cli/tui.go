package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	qerrors "github.com/desvart/qsnap/pkg/errors"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SheetListModel - Interactive workbook sheet selection
// =============================================================================

// SheetListModel is the bubbletea model for picking a workbook sheet.
type SheetListModel struct {
	Workbook string
	Sheets   []string
	Cursor   int
	Offset   int
	Height   int
	Selected string
}

// NewSheetListModel creates a sheet picker for the sheets of a workbook.
func NewSheetListModel(workbook string, sheets []string) SheetListModel {
	return SheetListModel{Workbook: workbook, Sheets: sheets, Height: 10}
}

func (m SheetListModel) Init() tea.Cmd {
	return nil
}

func (m SheetListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Sheets)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Sheets) > 0 {
				m.Selected = m.Sheets[m.Cursor]
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 3)
	}
	return m, nil
}

func (m SheetListModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select Sheet"))
	b.WriteString(" " + listDimStyle.Render(m.Workbook))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Sheets))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, fmt.Sprint(i + 1), m.Sheets[i]})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Sheet").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			if col == 1 {
				return listDimStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Sheets))))
	return b.String()
}

// pickSheet lets the user choose one of several sheets. It returns an
// INVALID_INPUT error when the picker is closed without a selection.
func pickSheet(workbook string, sheets []string) (string, error) {
	final, err := tea.NewProgram(NewSheetListModel(workbook, sheets)).Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(SheetListModel)
	if !ok || m.Selected == "" {
		return "", qerrors.New(qerrors.ErrCodeInvalidInput, "no sheet selected")
	}
	return m.Selected, nil
}
