package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

var (
	cellStyle   = lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Border(lipgloss.NormalBorder())
	cursorStyle = cellStyle.BorderForeground(lipgloss.Color("11"))
	winnerStyle = lipgloss.NewStyle().Background(lipgloss.Color("2")).Foreground(lipgloss.Color("0")).Bold(true)
	markStyles  = map[domain.Cell]lipgloss.Style{
		domain.X: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		domain.O: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	statusStyle   = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	infoStyle     = lipgloss.NewStyle().MarginLeft(4)
)

// View renders the board, the status line and the move list.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	v := m.game.View()

	info := []string{statusStyle.Render(v.Status)}
	if m.notice != "" {
		info = append(info, noticeStyle.Render(m.notice))
	}
	info = append(info, "", renderMoves(v.Moves))

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		renderBoard(v, m.cursor),
		infoStyle.Render(strings.Join(info, "\n")),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Tic-Tac-Toe"),
		body,
		"",
		m.help.View(m.keys),
	)
}

// renderBoard draws the 3x3 grid, marking the cursor and the winning line.
func renderBoard(v domain.View, cursor int) string {
	rows := make([]string, 0, 3)
	for r := 0; r < 3; r++ {
		cells := make([]string, 0, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			mark := v.Board[i].String()
			if mark == "" {
				mark = " "
			}
			if st, ok := markStyles[v.Board[i]]; ok {
				mark = st.Render(mark)
			}
			if v.Winners[i] {
				mark = winnerStyle.Render(" " + v.Board[i].String() + " ")
			}

			style := cellStyle
			if i == cursor && !v.Over {
				style = cursorStyle
			}
			cells = append(cells, style.Render(mark))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderMoves lists every recorded step with the current one highlighted.
func renderMoves(moves []domain.Move) string {
	var sb strings.Builder
	for i, mv := range moves {
		if i > 0 {
			sb.WriteRune('\n')
		}
		line := mv.Label
		if mv.Coordinates != "" {
			line += " " + mv.Coordinates
		}
		if mv.Current {
			sb.WriteString(selectedStyle.Render("> " + line))
		} else {
			sb.WriteString("  " + line)
		}
	}
	return sb.String()
}
