package ui

import "github.com/akarlsen/githist/internal/models"

// ViewMode selects which screen the browser shows. Exactly one mode is
// active at a time; the overlays replace the two-pane layout entirely.
type ViewMode int

const (
	CommitList ViewMode = iota
	BranchSelector
	AuthorFilter
)

// BrowseState is the complete navigable state of the browser. Every
// mutation goes through a named transition so the state machine can be
// exercised without a terminal. Transitions are total: out-of-range
// input is clamped, never wrapped, and never fails.
type BrowseState struct {
	Commits             []models.Commit
	SelectedIndex       int
	CurrentBranch       string
	Branches            []string
	ViewMode            ViewMode
	BranchSelectorIndex int
	SearchQuery         string
	SearchArmed         bool
}

// MoveSelection moves the commit cursor by delta, clamped to the list.
// A no-op when there are no commits.
func (s *BrowseState) MoveSelection(delta int) {
	if len(s.Commits) == 0 {
		return
	}
	s.SelectedIndex = clamp(s.SelectedIndex+delta, 0, len(s.Commits)-1)
}

// MoveBranchSelector moves the branch cursor by delta with the same
// clamping rule.
func (s *BrowseState) MoveBranchSelector(delta int) {
	if len(s.Branches) == 0 {
		return
	}
	s.BranchSelectorIndex = clamp(s.BranchSelectorIndex+delta, 0, len(s.Branches)-1)
}

// EnterBranchSelector opens the branch overlay with its cursor on the
// current branch, or at the top if that branch no longer exists.
func (s *BrowseState) EnterBranchSelector() {
	s.ViewMode = BranchSelector
	s.BranchSelectorIndex = 0
	for i, b := range s.Branches {
		if b == s.CurrentBranch {
			s.BranchSelectorIndex = i
			break
		}
	}
}

// ConfirmBranchSelection returns the branch under the cursor, if the
// selector is active and the cursor is in bounds. The caller re-fetches
// that branch's history and applies it with ApplyBranch on success; on
// failure the state is left untouched, still in the selector.
func (s *BrowseState) ConfirmBranchSelection() (string, bool) {
	if s.ViewMode != BranchSelector {
		return "", false
	}
	if s.BranchSelectorIndex < 0 || s.BranchSelectorIndex >= len(s.Branches) {
		return "", false
	}
	return s.Branches[s.BranchSelectorIndex], true
}

// ApplyBranch installs a freshly fetched commit list for the chosen
// branch and returns to the commit list view.
func (s *BrowseState) ApplyBranch(branch string, commits []models.Commit) {
	s.CurrentBranch = branch
	s.Commits = commits
	s.SelectedIndex = 0
	s.ViewMode = CommitList
}

// CancelOverlay dismisses whichever overlay is active.
func (s *BrowseState) CancelOverlay() {
	s.ViewMode = CommitList
}

// ToggleAuthorFilter flips between the author-filter overlay and the
// commit list. The filter itself is a placeholder.
func (s *BrowseState) ToggleAuthorFilter() {
	if s.ViewMode == AuthorFilter {
		s.ViewMode = CommitList
	} else {
		s.ViewMode = AuthorFilter
	}
}

// StartSearch arms search input capture without changing the view.
func (s *BrowseState) StartSearch() {
	s.SearchArmed = true
}

// SelectedCommit returns the focused commit, nil when the list is empty.
func (s *BrowseState) SelectedCommit() *models.Commit {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Commits) {
		return nil
	}
	return &s.Commits[s.SelectedIndex]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
