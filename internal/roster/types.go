package roster

// Kind distinguishes the two roster tables.
type Kind string

const (
	KindStudent Kind = "student"
	KindTutor   Kind = "tutor"
)

// Entry is one known person. Name is stored normalized (see Normalize);
// ID is the lowercased, trimmed unique identifier from the source table.
type Entry struct {
	Name string
	ID   string
	Kind Kind
}

// Roster is an immutable set of entries. It is built once per load and
// replaced wholesale on reload; a nil *Roster behaves like an empty one.
type Roster struct {
	entries []Entry
}

// New builds a roster from pre-normalized entries. Used by tests and the
// loader.
func New(entries []Entry) *Roster {
	return &Roster{entries: entries}
}

// Len returns the number of entries.
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Entries returns a copy of the entry list.
func (r *Roster) Entries() []Entry {
	if r == nil {
		return nil
	}
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
