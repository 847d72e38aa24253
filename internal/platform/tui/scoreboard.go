package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// Leaderboard layout constants
const (
	sidebarWidth       = 32 // Width of the leaderboard sidebar including border
	minWidthForSidebar = 72 // Minimum terminal width to show the sidebar
	leaderboardSize    = 10 // Entries shown in the sidebar
	footerHeight       = 1  // Help line below the board
)

var (
	sidebarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Width(sidebarWidth-2).
			Padding(0, 1)
	sidebarTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// newLeaderboardTable creates an unfocused table for the session leaderboard.
func newLeaderboardTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Score", Width: 7},
		{Title: "Lvl", Width: 3},
		{Title: "Lines", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(leaderboardSize+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// leaderboardRows converts score entries to table rows, ranked in order.
func leaderboardRows(entries []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", e.Score),
			fmt.Sprintf("%d", e.Level),
			fmt.Sprintf("%d", e.Lines),
		}
	}
	return rows
}

// setLeaderboard fills the table and moves the cursor to the entry with
// the given ID, or to the top when it did not make the list.
func setLeaderboard(t *table.Model, entries []storage.ScoreEntry, highlight int64) {
	t.SetRows(leaderboardRows(entries))
	t.GotoTop()
	for i, e := range entries {
		if e.ID == highlight {
			t.SetCursor(i)
			break
		}
	}
}

// renderSidebar renders the leaderboard panel. lastRank is shown below the
// table once a game has been ranked.
func renderSidebar(t table.Model, entries []storage.ScoreEntry, lastRank int) string {
	var b strings.Builder
	b.WriteString(sidebarTitleStyle.Render("SESSION BEST"))
	b.WriteString("\n\n")

	if len(entries) == 0 {
		b.WriteString(emptyStyle.Render("No games finished yet."))
	} else {
		b.WriteString(t.View())
	}

	if lastRank > 0 {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Last game ranked #%d", lastRank))
	}

	return sidebarStyle.Render(b.String())
}
