package ui

import (
	"strings"
	"testing"

	"github.com/akarlsen/githist/internal/models"
)

func TestRenderFileTableDistinguishesMissingDiff(t *testing.T) {
	rootCommit := &models.Commit{Hash: "abc", HasDiff: false}
	if got := renderFileTable(rootCommit); !strings.Contains(got, "No diff available") {
		t.Fatalf("expected missing-diff message, got %q", got)
	}

	emptyDiff := &models.Commit{Hash: "abc", HasDiff: true, Diff: ""}
	if got := renderFileTable(emptyDiff); !strings.Contains(got, "No files changed") {
		t.Fatalf("expected no-files message, got %q", got)
	}
}

func TestRenderFileTableRows(t *testing.T) {
	commit := &models.Commit{
		Hash:    "abc",
		HasDiff: true,
		Diff: strings.Join([]string{
			"diff --git a/pkg/old.go b/pkg/new.go",
			"similarity index 80%",
			"rename from pkg/old.go",
			"rename to pkg/new.go",
			"@@ -1 +1 @@",
			"-x",
			"+y",
		}, "\n"),
	}

	got := renderFileTable(commit)
	if !strings.Contains(got, "pkg/old.go → pkg/new.go") {
		t.Fatalf("expected rename arrow, got %q", got)
	}
	if !strings.Contains(got, "+1") || !strings.Contains(got, "-1") {
		t.Fatalf("expected counts, got %q", got)
	}
}

func TestViewRendersEmptyState(t *testing.T) {
	m, _ := newTestModel()
	m.state.Commits = nil
	m.state.SelectedIndex = 0

	view := m.View()
	if !strings.Contains(view, "No commits found") {
		t.Fatalf("expected empty-state indicator, got:\n%s", view)
	}
	if !strings.Contains(view, "No commit selected") {
		t.Fatalf("expected empty details pane, got:\n%s", view)
	}
}

func TestViewShowsBranchLabelAndSelection(t *testing.T) {
	m, _ := newTestModel()
	view := m.View()

	if !strings.Contains(view, "Commits (main)") {
		t.Fatalf("expected branch label, got:\n%s", view)
	}
	if !strings.Contains(view, "▸") {
		t.Fatalf("expected selection marker, got:\n%s", view)
	}
}

func TestBranchSelectorOverlayReplacesLayout(t *testing.T) {
	m, _ := newTestModel()
	m.state.EnterBranchSelector()

	view := m.View()
	if !strings.Contains(view, "Select Branch") {
		t.Fatalf("expected selector overlay, got:\n%s", view)
	}
	if strings.Contains(view, "Commits (main)") {
		t.Fatalf("overlay should replace the two-pane layout, got:\n%s", view)
	}
}

func TestAuthorFilterOverlayListsAuthors(t *testing.T) {
	m, _ := newTestModel()
	m.state.ToggleAuthorFilter()

	view := m.View()
	if !strings.Contains(view, "Author Filter") {
		t.Fatalf("expected author overlay, got:\n%s", view)
	}
	if !strings.Contains(view, "Ann <ann@example.com>") {
		t.Fatalf("expected author list, got:\n%s", view)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 40); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	if got := truncate("a very long commit subject line", 10); got != "a very ..." {
		t.Fatalf("unexpected %q", got)
	}
}
