// Package git wraps go-git behind the few queries the browser needs:
// branch names, commit history and author lists.
package git

import (
	"errors"
	"fmt"
	"io"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/sirupsen/logrus"

	"github.com/akarlsen/githist/internal/models"
)

const dateFormat = "2006-01-02 15:04:05"

// ErrUnknownBranch reports a branch lookup that found nothing.
var ErrUnknownBranch = errors.New("unknown branch")

// Repository is the read-only view of a local git repository.
type Repository struct {
	path string
	repo *gogit.Repository
	log  logrus.FieldLogger
}

// Open opens an existing repository at path.
func Open(path string, log logrus.FieldLogger) (*Repository, error) {
	repo, err := gogit.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", path, err)
	}
	return &Repository{path: path, repo: repo, log: log}, nil
}

// Path returns the filesystem path the repository was opened from.
func (r *Repository) Path() string {
	return r.path
}

// Branches returns the local branch names in iteration order.
func (r *Repository) Branches() ([]string, error) {
	iter, err := r.repo.Branches()
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer iter.Close()

	var names []string
	for {
		ref, err := iter.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate branches: %w", err)
		}
		names = append(names, ref.Name().Short())
	}
	return names, nil
}

// BranchExists reports whether a local branch with the given name exists.
func (r *Repository) BranchExists(name string) bool {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

// Commits walks the branch history from its tip, most recent first. Each
// commit carries the unified-diff text against its first parent; root
// commits have none.
func (r *Repository) Commits(branch string) ([]models.Commit, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBranch, branch)
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read history of %s: %w", branch, err)
	}
	defer iter.Close()

	var commits []models.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		commit := models.Commit{
			Hash:    c.Hash.String(),
			Message: c.Message,
			Author:  fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email),
			Date:    c.Author.When.Local().Format(dateFormat),
			When:    c.Author.When,
		}

		if c.NumParents() > 0 {
			diff, err := firstParentDiff(c)
			if err != nil {
				// An unreadable patch degrades to an empty summary table.
				r.log.WithField("commit", commit.Hash).
					WithError(err).Warn("failed to compute patch")
			} else {
				commit.Diff = diff
				commit.HasDiff = true
			}
		}

		commits = append(commits, commit)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history of %s: %w", branch, err)
	}

	r.log.WithFields(logrus.Fields{"branch": branch, "commits": len(commits)}).
		Debug("loaded commit history")
	return commits, nil
}

func firstParentDiff(c *object.Commit) (string, error) {
	parent, err := c.Parent(0)
	if err != nil {
		return "", err
	}
	patch, err := parent.Patch(c)
	if err != nil {
		return "", err
	}
	return patch.String(), nil
}

// Authors returns the distinct author display strings reachable from
// HEAD, in first-seen order.
func (r *Repository) Authors() ([]string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	iter, err := r.repo.Log(&gogit.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer iter.Close()

	seen := make(map[string]struct{})
	var authors []string
	err = iter.ForEach(func(c *object.Commit) error {
		display := fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email)
		if _, ok := seen[display]; !ok {
			seen[display] = struct{}{}
			authors = append(authors, display)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect authors: %w", err)
	}
	return authors, nil
}
