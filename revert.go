package superime

// RevertEntryType distinguishes whether the logged action created state or
// updated existing state.
type RevertEntryType uint16

const (
	// CreateEntry records that the action created a learning entry.
	CreateEntry RevertEntryType = iota
	// UpdateEntry records that the action updated a learning entry.
	UpdateEntry
)

// RevertEntry is one record of the append-only revert log: enough
// information for a learning subsystem to undo the side effect of a commit.
// The model stores entries verbatim and never interprets them.
//
// ID names the owning subsystem (the user history learner uses 1); Key is
// that subsystem's private undo payload. Uniqueness of IDs is a convention
// between subsystems, not enforced here.
type RevertEntry struct {
	Type      RevertEntryType
	ID        uint16
	Timestamp uint32
	Key       string
}
