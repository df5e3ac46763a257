package models

import "time"

// Commit is one entry in a branch's history as shown in the browser.
// Diff holds the full unified-diff text against the first parent; it is
// empty for root commits, which HasDiff distinguishes from an empty patch.
type Commit struct {
	Hash    string
	Message string
	Author  string
	Date    string
	When    time.Time
	Diff    string
	HasDiff bool
}

// ShortHash returns the abbreviated hash used in the commit list.
func (c Commit) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	for i := 0; i < len(c.Message); i++ {
		if c.Message[i] == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}
