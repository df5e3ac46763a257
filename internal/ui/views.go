package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/akarlsen/githist/internal/diff"
	"github.com/akarlsen/githist/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("white"))

	hashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	authorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	dateStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	currentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true)
	deletedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (m Model) View() string {
	switch m.state.ViewMode {
	case BranchSelector:
		return m.renderBranchSelector()
	case AuthorFilter:
		return m.renderAuthorFilter()
	}

	listWidth := m.width * 2 / 5
	if listWidth < 30 {
		listWidth = 30
	}
	detailWidth := m.width - listWidth - 4
	if detailWidth < 20 {
		detailWidth = 20
	}

	body := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderCommitList(listWidth),
		m.renderDetails(detailWidth),
	)

	sections := []string{body}
	if m.state.SearchArmed {
		sections = append(sections, "search: "+m.searchInput.View())
	}
	sections = append(sections, m.renderStatusLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderCommitList(width int) string {
	title := titleStyle.Render(fmt.Sprintf("Commits (%s)", m.state.CurrentBranch))

	if len(m.state.Commits) == 0 {
		empty := emptyStyle.Render("No commits found in the repository.")
		return borderStyle.Width(width).Render(title + "\n\n" + empty)
	}

	visible := m.visibleRows()
	start := 0
	if m.state.SelectedIndex >= visible {
		start = m.state.SelectedIndex - visible + 1
	}
	end := start + visible
	if end > len(m.state.Commits) {
		end = len(m.state.Commits)
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	for i := start; i < end; i++ {
		c := m.state.Commits[i]
		line := fmt.Sprintf("%s %s %s",
			hashStyle.Render(c.ShortHash()),
			truncate(c.Summary(), width-28),
			dateStyle.Render(humanize.Time(c.When)),
		)
		if i == m.state.SelectedIndex {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return borderStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderDetails(width int) string {
	title := titleStyle.Render("Details")

	commit := m.state.SelectedCommit()
	if commit == nil {
		empty := emptyStyle.Render("No commit selected.")
		return borderStyle.Width(width).Render(title + "\n\n" + empty)
	}

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString("Hash:   " + hashStyle.Render(commit.Hash) + "\n")
	b.WriteString("Author: " + authorStyle.Render(commit.Author) + "\n")
	b.WriteString("Date:   " + dateStyle.Render(commit.Date) + "\n\n")
	b.WriteString(strings.TrimRight(commit.Message, "\n") + "\n\n")
	b.WriteString(renderFileTable(commit))

	return borderStyle.Width(width).Render(strings.TrimRight(b.String(), "\n"))
}

// renderFileTable summarizes the commit's diff into the per-file change
// table. The summary is recomputed on each render, never stored.
func renderFileTable(commit *models.Commit) string {
	if !commit.HasDiff {
		return emptyStyle.Render("No diff available")
	}

	changes := diff.Summarize(commit.Diff)
	if len(changes) == 0 {
		return emptyStyle.Render("No files changed")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d file(s) changed", len(changes))) + "\n")
	for _, ch := range changes {
		path := ch.Path
		if ch.OldPath != "" {
			path = ch.OldPath + " → " + path
		}
		b.WriteString(fmt.Sprintf("%-2s %s (%s, %s)\n",
			statusStyleFor(ch.Kind).Render(ch.Kind.Status()),
			path,
			addedStyle.Render(fmt.Sprintf("+%d", ch.Insertions)),
			deletedStyle.Render(fmt.Sprintf("-%d", ch.Deletions)),
		))
	}
	return b.String()
}

func statusStyleFor(kind models.ChangeKind) lipgloss.Style {
	switch kind {
	case models.Added:
		return addedStyle
	case models.Deleted:
		return deletedStyle
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("white")).Bold(true)
	}
}

func (m Model) renderBranchSelector() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Select Branch") + "\n")
	b.WriteString(helpStyle.Render("↑/↓ navigate • enter select • esc cancel") + "\n\n")

	if len(m.state.Branches) == 0 {
		b.WriteString(emptyStyle.Render("No branches found."))
	}

	for i, branch := range m.state.Branches {
		name := branch
		if branch == m.state.CurrentBranch {
			name = currentStyle.Render(branch)
		}
		if i == m.state.BranchSelectorIndex {
			b.WriteString(selectedStyle.Render("▸ "+name) + "\n")
		} else {
			b.WriteString("  " + name + "\n")
		}
	}

	out := borderStyle.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.JoinVertical(lipgloss.Left, out, m.renderStatusLine())
}

func (m Model) renderAuthorFilter() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Author Filter") + "\n")
	b.WriteString(helpStyle.Render("filtering not implemented yet • a/esc to close") + "\n\n")

	if len(m.authors) == 0 {
		b.WriteString(emptyStyle.Render("No authors found."))
	}
	for _, a := range m.authors {
		b.WriteString("  " + authorStyle.Render(a) + "\n")
	}

	return borderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderStatusLine() string {
	if m.statusErr != "" {
		return errorStyle.Render("error: " + m.statusErr)
	}
	keys := []string{
		"j/k: navigate",
		"b: branches",
		"a: authors",
		"/: search",
		"r: refresh",
		"q: quit",
	}
	return helpStyle.Render(strings.Join(keys, " • "))
}

func (m Model) visibleRows() int {
	rows := m.height - 6
	if rows < 1 {
		rows = 10
	}
	return rows
}

func truncate(s string, max int) string {
	if max < 4 || len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
