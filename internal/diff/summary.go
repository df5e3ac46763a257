// Package diff turns pre-computed unified-diff text into a per-file
// change summary. It never computes diffs itself; the patch text comes
// from the repository layer.
package diff

import (
	"strconv"
	"strings"

	"github.com/akarlsen/githist/internal/models"
)

// lineKind is the classification of a single patch line.
type lineKind int

const (
	lineOther lineKind = iota
	lineFileHeader
	lineSimilarity
	lineRenameFrom
	lineRenameTo
	lineNewFileMode
	lineDeletedFileMode
	lineFileMarker
	lineHunkHeader
	lineAddition
	lineDeletion
)

// parser state within one file section.
type parseState int

const (
	stateIdle parseState = iota
	stateFileHeader
	stateHunk
)

// accumulator collects what is known about the file section currently
// being scanned, until the next "diff --git" line flushes it.
type accumulator struct {
	oldPath    string
	newPath    string
	insertions int
	deletions  int
	renamed    bool
	similarity int
	changed    bool
	newFile    bool
	delFile    bool
	active     bool
}

// Summarize parses unified-diff text into an ordered list of per-file
// changes. It is pure and total: malformed sections are dropped rather
// than reported, and unrecognized lines are ignored.
func Summarize(diffText string) []models.FileChange {
	var (
		changes []models.FileChange
		acc     accumulator
		state   = stateIdle
	)

	flush := func() {
		if ch, ok := acc.flush(); ok {
			changes = append(changes, ch)
		}
		acc = accumulator{}
	}

	for line := range strings.Lines(diffText) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		kind, payload := classifyLine(line, state)
		switch kind {
		case lineFileHeader:
			flush()
			acc.active = true
			acc.oldPath, acc.newPath = parseHeaderPaths(payload)
			state = stateFileHeader

		case lineSimilarity:
			if n, err := strconv.Atoi(payload); err == nil {
				acc.similarity = n
			}

		case lineRenameFrom:
			acc.renamed = true
			if acc.oldPath == "" {
				acc.oldPath = payload
			}

		case lineRenameTo:
			acc.renamed = true
			if acc.newPath == "" {
				acc.newPath = payload
			}

		case lineNewFileMode:
			acc.newFile = true

		case lineDeletedFileMode:
			acc.delFile = true

		case lineFileMarker:
			acc.changed = true

		case lineHunkHeader:
			acc.changed = true
			state = stateHunk

		case lineAddition:
			acc.insertions++

		case lineDeletion:
			acc.deletions++
		}
	}

	flush()
	return changes
}

// classifyLine tags one patch line. Addition and deletion tags are only
// produced while inside a hunk; the same prefixes mean nothing in the
// section header.
func classifyLine(line string, state parseState) (lineKind, string) {
	if rest, ok := strings.CutPrefix(line, "diff --git "); ok {
		return lineFileHeader, rest
	}

	if state == stateHunk {
		switch {
		case strings.HasPrefix(line, "@@"):
			return lineHunkHeader, ""
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			return lineFileMarker, ""
		case strings.HasPrefix(line, "+"):
			return lineAddition, ""
		case strings.HasPrefix(line, "-"):
			return lineDeletion, ""
		}
		return lineOther, ""
	}

	switch {
	case strings.HasPrefix(line, "similarity index "):
		pct := strings.TrimPrefix(line, "similarity index ")
		return lineSimilarity, strings.TrimSuffix(pct, "%")
	case strings.HasPrefix(line, "rename from "):
		return lineRenameFrom, strings.TrimPrefix(line, "rename from ")
	case strings.HasPrefix(line, "rename to "):
		return lineRenameTo, strings.TrimPrefix(line, "rename to ")
	case strings.HasPrefix(line, "new file mode "):
		return lineNewFileMode, ""
	case strings.HasPrefix(line, "deleted file mode "):
		return lineDeletedFileMode, ""
	case strings.HasPrefix(line, "--- "), strings.HasPrefix(line, "+++ "):
		return lineFileMarker, ""
	case strings.HasPrefix(line, "@@"):
		return lineHunkHeader, ""
	}
	return lineOther, ""
}

// parseHeaderPaths splits the "a/<old> b/<new>" remainder of a
// "diff --git" line. Paths with spaces or escapes come quoted.
func parseHeaderPaths(rest string) (oldPath, newPath string) {
	tokens := headerTokens(strings.TrimSpace(rest))
	if len(tokens) < 2 {
		return "", ""
	}
	return trimPathPrefix(tokens[0], "a/"), trimPathPrefix(tokens[len(tokens)-1], "b/")
}

func trimPathPrefix(token, prefix string) string {
	if token == "/dev/null" {
		return ""
	}
	return strings.TrimPrefix(token, prefix)
}

func headerTokens(s string) []string {
	var tokens []string
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			break
		}
		if s[0] == '"' {
			var buf strings.Builder
			escaped := false
			i := 1
			for i < len(s) {
				ch := s[i]
				if escaped {
					buf.WriteByte(ch)
					escaped = false
					i++
					continue
				}
				if ch == '\\' {
					escaped = true
					i++
					continue
				}
				if ch == '"' {
					i++
					break
				}
				buf.WriteByte(ch)
				i++
			}
			tokens = append(tokens, buf.String())
			s = s[i:]
			continue
		}
		j := 0
		for j < len(s) && s[j] != ' ' && s[j] != '\t' {
			j++
		}
		tokens = append(tokens, s[:j])
		s = s[j:]
	}
	return tokens
}

// flush classifies the accumulated section. Sections without a resolved
// new path are unparseable and dropped.
func (a *accumulator) flush() (models.FileChange, bool) {
	if !a.active || a.newPath == "" {
		return models.FileChange{}, false
	}

	ch := models.FileChange{
		Path:       a.newPath,
		Insertions: a.insertions,
		Deletions:  a.deletions,
	}

	switch {
	case a.renamed && a.similarity == 100:
		ch.Kind = models.Renamed
		ch.OldPath = a.oldPath
	case a.renamed:
		ch.Kind = models.RenamedModified
		ch.OldPath = a.oldPath
	case a.newFile:
		ch.Kind = models.Added
	case a.delFile:
		ch.Kind = models.Deleted
	case a.insertions > 0 || a.deletions > 0 || a.changed:
		ch.Kind = models.Modified
	default:
		ch.Kind = models.Unchanged
	}

	return ch, true
}
