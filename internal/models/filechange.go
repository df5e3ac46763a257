package models

// ChangeKind classifies how a commit touched a file.
type ChangeKind int

const (
	Unchanged ChangeKind = iota
	Added
	Deleted
	Modified
	Renamed
	RenamedModified
)

// Status returns the short marker shown in the file-change table.
func (k ChangeKind) Status() string {
	switch k {
	case Added:
		return "A"
	case Deleted:
		return "D"
	case Modified:
		return "M"
	case Renamed:
		return "R"
	case RenamedModified:
		return "RM"
	default:
		return "="
	}
}

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Deleted:
		return "deleted"
	case Modified:
		return "modified"
	case Renamed:
		return "renamed"
	case RenamedModified:
		return "renamed+modified"
	default:
		return "unchanged"
	}
}

// FileChange is one row of the per-commit change summary, derived from
// the commit's unified-diff text. OldPath is set only for renames.
type FileChange struct {
	Path       string
	OldPath    string
	Insertions int
	Deletions  int
	Kind       ChangeKind
}
