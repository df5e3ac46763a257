package git

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newFixtureRepo builds a repository with two commits on master by
// author Ann, then a third commit on a dev branch by Bob.
func newFixtureRepo(t *testing.T) (string, *Repository) {
	t.Helper()
	dir := t.TempDir()

	raw, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to init fixture repo: %v", err)
	}
	wt, err := raw.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}

	commit := func(name, email, file, content, msg string, when time.Time) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", file, err)
		}
		if _, err := wt.Add(file); err != nil {
			t.Fatalf("failed to stage %s: %v", file, err)
		}
		_, err := wt.Commit(msg, &gogit.CommitOptions{
			Author: &object.Signature{Name: name, Email: email, When: when},
		})
		if err != nil {
			t.Fatalf("failed to commit %q: %v", msg, err)
		}
	}

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	commit("Ann", "ann@example.com", "readme.txt", "hello\n", "initial", base)
	commit("Ann", "ann@example.com", "readme.txt", "hello\nworld\n", "expand readme", base.Add(time.Hour))

	err = wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("dev"),
		Create: true,
	})
	if err != nil {
		t.Fatalf("failed to create dev branch: %v", err)
	}
	commit("Bob", "bob@example.com", "feature.txt", "wip\n", "start feature", base.Add(2*time.Hour))

	repo, err := Open(dir, testLogger())
	if err != nil {
		t.Fatalf("failed to open fixture repo: %v", err)
	}
	return dir, repo
}

func TestOpenRejectsNonRepository(t *testing.T) {
	if _, err := Open(t.TempDir(), testLogger()); err == nil {
		t.Fatal("expected an error opening a plain directory")
	}
}

func TestBranches(t *testing.T) {
	_, repo := newFixtureRepo(t)

	branches, err := repo.Branches()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := make(map[string]bool, len(branches))
	for _, b := range branches {
		found[b] = true
	}
	if !found["master"] || !found["dev"] {
		t.Fatalf("expected master and dev, got %v", branches)
	}
}

func TestBranchExists(t *testing.T) {
	_, repo := newFixtureRepo(t)

	if !repo.BranchExists("master") {
		t.Fatal("expected master to exist")
	}
	if repo.BranchExists("release") {
		t.Fatal("did not expect release to exist")
	}
}

func TestCommitsMostRecentFirst(t *testing.T) {
	_, repo := newFixtureRepo(t)

	commits, err := repo.Commits("master")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected two commits on master, got %d", len(commits))
	}

	if got := commits[0].Summary(); got != "expand readme" {
		t.Fatalf("expected newest commit first, got %q", got)
	}
	if got := commits[1].Summary(); got != "initial" {
		t.Fatalf("expected root commit last, got %q", got)
	}
	if commits[0].Author != "Ann <ann@example.com>" {
		t.Fatalf("unexpected author %q", commits[0].Author)
	}
}

func TestCommitsCarryFirstParentDiff(t *testing.T) {
	_, repo := newFixtureRepo(t)

	commits, err := repo.Commits("master")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	newest, root := commits[0], commits[1]
	if !newest.HasDiff {
		t.Fatal("expected a diff on the non-root commit")
	}
	if !strings.Contains(newest.Diff, "diff --git") || !strings.Contains(newest.Diff, "+world") {
		t.Fatalf("unexpected diff text:\n%s", newest.Diff)
	}
	if root.HasDiff || root.Diff != "" {
		t.Fatal("expected no diff on the root commit")
	}
}

func TestCommitsUnknownBranch(t *testing.T) {
	_, repo := newFixtureRepo(t)

	_, err := repo.Commits("release")
	if !errors.Is(err, ErrUnknownBranch) {
		t.Fatalf("expected ErrUnknownBranch, got %v", err)
	}
}

func TestAuthorsDeduplicated(t *testing.T) {
	_, repo := newFixtureRepo(t)

	// HEAD is dev after the fixture checkout: Bob's commit then Ann's two.
	authors, err := repo.Authors()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(authors) != 2 {
		t.Fatalf("expected two distinct authors, got %v", authors)
	}
	if authors[0] != "Bob <bob@example.com>" || authors[1] != "Ann <ann@example.com>" {
		t.Fatalf("unexpected author order: %v", authors)
	}
}
