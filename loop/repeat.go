package loop

// KeyRepeat turns a held key into repeated intents: one on the initial
// press, then one every Rate seconds once the key has been held for longer
// than Delay. Frontends that only see key-down transitions drive it with
// pressed and down; terminals that repeat keys themselves do not need it.
type KeyRepeat struct {
	Delay float64
	Rate  float64

	held float64
}

// Update advances the repeat timer by dt seconds and reports whether the
// intent should fire this frame.
func (r *KeyRepeat) Update(pressed, down bool, dt float64) bool {
	switch {
	case pressed:
		r.held = 0
		return true
	case down:
		r.held += dt
		if r.held > r.Delay {
			r.held -= r.Rate
			return true
		}
		return false
	default:
		r.held = 0
		return false
	}
}

// DefaultRepeats returns the auto-shift settings for the intents that
// repeat while held.
func DefaultRepeats() map[Intent]*KeyRepeat {
	return map[Intent]*KeyRepeat{
		MoveLeft:  {Delay: 0.2, Rate: 0.05},
		MoveRight: {Delay: 0.2, Rate: 0.05},
		SoftDrop:  {Delay: 0.05, Rate: 0.05},
	}
}
