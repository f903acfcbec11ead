package model

// ActionKind identifies the mutation an action requests.
type ActionKind string

// The fixed action vocabulary. Unknown kinds are preserved verbatim by the
// parser so the evaluator and executor can report them as disallowed.
const (
	KindWrite      ActionKind = "write"
	KindAppend     ActionKind = "append"
	KindDeleteFile ActionKind = "delete_file"
	KindMove       ActionKind = "move"
	KindMakeDir    ActionKind = "make_dir"
)

// Known reports whether k is part of the fixed action vocabulary.
func (k ActionKind) Known() bool {
	switch k {
	case KindWrite, KindAppend, KindDeleteFile, KindMove, KindMakeDir:
		return true
	}
	return false
}

// String returns the kind as a plain string.
func (k ActionKind) String() string {
	return string(k)
}

// Action is one requested workspace mutation, parsed from a single plan line.
// Args are positional and their meaning depends on Kind. Raw keeps the
// original source line for audit display and keyword scanning.
// An Action is immutable after parsing.
type Action struct {
	Kind ActionKind `json:"kind"`
	Args []string   `json:"args"`
	Raw  string     `json:"raw"`
}
