package chat

import "regexp"

// messageIDPattern matches the bracketed numeric id keybase prints at the
// start of each message line, e.g. "[412] alice: hi"
var messageIDPattern = regexp.MustCompile(`^\[(\d+)\]`)

// ParseMessageID extracts the message identifier from a display line. Lines
// that don't start with a bracketed integer (system notices, continuation
// lines) have no identifier; that's not an error.
func ParseMessageID(line string) (string, bool) {
	m := messageIDPattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Merger deduplicates message lines for one chat session. It owns the set of
// message ids already displayed; a new Merger is created whenever the active
// conversation changes, so ids are tracked per session only and never
// persisted. The same merge path is used for the initial bulk load and for
// every poll batch.
type Merger struct {
	seen map[string]struct{}
}

// NewMerger creates an empty merger
func NewMerger() *Merger {
	return &Merger{seen: make(map[string]struct{})}
}

// Merge takes a batch of fetched lines in arrival order and returns the lines
// to append to the display, preserving that order. Lines whose id was already
// seen are dropped; lines without an id always pass through.
func (m *Merger) Merge(lines []string) []string {
	var appended []string
	for _, line := range lines {
		id, ok := ParseMessageID(line)
		if ok {
			if _, dup := m.seen[id]; dup {
				continue
			}
			m.seen[id] = struct{}{}
		}
		appended = append(appended, line)
	}
	return appended
}

// Seen reports whether the given message id has already been displayed
func (m *Merger) Seen(id string) bool {
	_, ok := m.seen[id]
	return ok
}

// Len returns the number of tracked message ids
func (m *Merger) Len() int {
	return len(m.seen)
}
