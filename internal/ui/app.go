package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/akarlsen/githist/internal/cache"
	"github.com/akarlsen/githist/internal/models"
)

// tickInterval paces redraws so relative timestamps stay current.
const tickInterval = time.Second

// Source is the repository collaborator the browser reads from.
type Source interface {
	Path() string
	Branches() ([]string, error)
	Commits(branch string) ([]models.Commit, error)
	Authors() ([]string, error)
}

type errMsg struct {
	err error
}

type branchCommitsMsg struct {
	branch  string
	commits []models.Commit
}

type refreshedMsg struct {
	branches []string
	commits  []models.Commit
	authors  []string
}

type tickMsg time.Time

// Model drives the interactive browser. All navigable state lives on
// BrowseState; the model adds the collaborators and input plumbing.
type Model struct {
	state   BrowseState
	source  Source
	cache   *cache.Cache
	log     logrus.FieldLogger
	authors []string

	searchInput textinput.Model
	statusErr   string
	width       int
	height      int
}

// NewModel builds the browser around data already fetched at startup.
func NewModel(source Source, c *cache.Cache, log logrus.FieldLogger, state BrowseState, authors []string) Model {
	ti := textinput.New()
	ti.Placeholder = "search commits..."
	ti.CharLimit = 100
	ti.Width = 40

	return Model{
		state:       state,
		source:      source,
		cache:       c,
		log:         log,
		authors:     authors,
		searchInput: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// fetchBranch loads a branch's history through the cache, off the
// render path. A hit never touches the repository.
func (m Model) fetchBranch(branch string) tea.Cmd {
	return func() tea.Msg {
		if commits, ok := m.cache.Commits(branch); ok {
			return branchCommitsMsg{branch: branch, commits: commits}
		}
		commits, err := m.source.Commits(branch)
		if err != nil {
			return errMsg{err}
		}
		m.cache.SetCommits(branch, commits)
		return branchCommitsMsg{branch: branch, commits: commits}
	}
}

// refresh drops every cached result and re-reads the repository.
func (m Model) refresh() tea.Cmd {
	branch := m.state.CurrentBranch
	return func() tea.Msg {
		m.cache.Clear()

		branches, err := m.source.Branches()
		if err != nil {
			return errMsg{err}
		}
		m.cache.SetBranches(m.source.Path(), branches)

		commits, err := m.source.Commits(branch)
		if err != nil {
			return errMsg{err}
		}
		m.cache.SetCommits(branch, commits)

		authors, err := m.source.Authors()
		if err != nil {
			return errMsg{err}
		}
		m.cache.SetAuthors(m.source.Path(), authors)

		return refreshedMsg{branches: branches, commits: commits, authors: authors}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case branchCommitsMsg:
		m.state.ApplyBranch(msg.branch, msg.commits)
		m.statusErr = ""

	case refreshedMsg:
		m.state.Branches = msg.branches
		m.state.Commits = msg.commits
		if len(msg.commits) == 0 {
			m.state.SelectedIndex = 0
		} else {
			m.state.MoveSelection(0)
		}
		m.authors = msg.authors
		m.statusErr = ""

	case errMsg:
		// The state machine stays in its previous configuration; only
		// the status line changes.
		m.statusErr = msg.err.Error()
		m.log.WithError(msg.err).Error("repository query failed")

	case tickMsg:
		return m, tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.state.SearchArmed {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "a":
		m.state.ToggleAuthorFilter()

	case "b":
		if m.state.ViewMode == BranchSelector {
			m.state.CancelOverlay()
		} else {
			m.state.EnterBranchSelector()
		}

	case "/":
		m.state.StartSearch()
		m.searchInput.SetValue(m.state.SearchQuery)
		m.searchInput.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.state.ViewMode == BranchSelector {
			m.state.MoveBranchSelector(-1)
		} else {
			m.state.MoveSelection(-1)
		}

	case "down", "j":
		if m.state.ViewMode == BranchSelector {
			m.state.MoveBranchSelector(1)
		} else {
			m.state.MoveSelection(1)
		}

	case "enter":
		if branch, ok := m.state.ConfirmBranchSelection(); ok {
			return m, m.fetchBranch(branch)
		}

	case "esc":
		m.state.CancelOverlay()

	case "r":
		return m, m.refresh()
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.state.SearchQuery = m.searchInput.Value()
		m.state.SearchArmed = false
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.state.SearchArmed = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}
