package links

// Pair is a completed link gesture awaiting style and colour confirmation.
type Pair struct {
	From string
	To   string
}

// Pending is the linking-mode anchor. The zero value means no anchor.
type Pending struct {
	anchor string
}

// Anchor returns the current anchor id and whether one is set.
func (p Pending) Anchor() (string, bool) {
	return p.anchor, p.anchor != ""
}

// Active reports whether linking mode is on.
func (p Pending) Active() bool {
	return p.anchor != ""
}

// Is reports whether id is the current anchor.
func (p Pending) Is(id string) bool {
	return p.anchor != "" && p.anchor == id
}

// Toggle applies one linking gesture on id.
//
// With no anchor, id becomes the anchor. Repeating the gesture on the
// anchor cancels linking mode. A gesture on any other id completes the
// pair, which is returned, and clears the anchor.
func (p Pending) Toggle(id string) (Pending, *Pair) {
	switch {
	case p.anchor == "":
		return Pending{anchor: id}, nil
	case p.anchor == id:
		return Pending{}, nil
	default:
		return Pending{}, &Pair{From: p.anchor, To: id}
	}
}
