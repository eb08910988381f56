package controller

// InputSnapshot is the input for one tick. Held fields reflect the key state
// for the whole tick; JumpPressed is true only on the tick the jump key went
// down.
type InputSnapshot struct {
	Left  bool
	Right bool
	Up    bool
	Jump  bool
	Dash  bool
	Reset bool

	JumpPressed bool
}

// WithEdges fills JumpPressed from the previous tick's held jump key. Hosts
// that only see held state use it to derive the press edge.
func (in InputSnapshot) WithEdges(prev InputSnapshot) InputSnapshot {
	in.JumpPressed = in.Jump && !prev.Jump
	return in
}
