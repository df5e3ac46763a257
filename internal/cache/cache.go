// Package cache memoizes expensive repository queries for a bounded
// time. Entries expire lazily on read; nothing is swept in the
// background and stale entries are only overwritten by the next store.
package cache

import (
	"time"

	"github.com/akarlsen/githist/internal/models"
)

// DefaultTTL is how long a cached query result stays valid.
const DefaultTTL = 5 * time.Minute

type entry[T any] struct {
	data      T
	timestamp time.Time
}

// Cache holds three independent keyspaces: commit lists by branch name,
// author lists by repository path, and branch-name lists by repository
// path. All three share one TTL. There is no capacity bound.
type Cache struct {
	commits  map[string]entry[[]models.Commit]
	authors  map[string]entry[[]string]
	branches map[string]entry[[]string]
	ttl      time.Duration
	now      func() time.Time
}

// New returns an empty cache with the given TTL; ttl <= 0 selects
// DefaultTTL.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		commits:  make(map[string]entry[[]models.Commit]),
		authors:  make(map[string]entry[[]string]),
		branches: make(map[string]entry[[]string]),
		ttl:      ttl,
		now:      time.Now,
	}
}

func get[T any](c *Cache, m map[string]entry[T], key string) (T, bool) {
	var zero T
	e, ok := m[key]
	if !ok {
		return zero, false
	}
	if c.now().Sub(e.timestamp) >= c.ttl {
		// Expired entries stay in place; the next store overwrites them.
		return zero, false
	}
	return e.data, true
}

// Commits returns the cached commit list for a branch, if still fresh.
func (c *Cache) Commits(branch string) ([]models.Commit, bool) {
	return get(c, c.commits, branch)
}

// SetCommits stores a branch's commit list with a fresh timestamp.
func (c *Cache) SetCommits(branch string, commits []models.Commit) {
	c.commits[branch] = entry[[]models.Commit]{data: commits, timestamp: c.now()}
}

// Authors returns the cached author list for a repository path.
func (c *Cache) Authors(repoPath string) ([]string, bool) {
	return get(c, c.authors, repoPath)
}

// SetAuthors stores a repository's author list.
func (c *Cache) SetAuthors(repoPath string, authors []string) {
	c.authors[repoPath] = entry[[]string]{data: authors, timestamp: c.now()}
}

// Branches returns the cached branch names for a repository path.
func (c *Cache) Branches(repoPath string) ([]string, bool) {
	return get(c, c.branches, repoPath)
}

// SetBranches stores a repository's branch names.
func (c *Cache) SetBranches(repoPath string, branches []string) {
	c.branches[repoPath] = entry[[]string]{data: branches, timestamp: c.now()}
}

// Clear empties all three keyspaces.
func (c *Cache) Clear() {
	clear(c.commits)
	clear(c.authors)
	clear(c.branches)
}
