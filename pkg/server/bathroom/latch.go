package bathroom

type LatchState int

const (
	LatchDisarmed LatchState = iota
	LatchArmed
)

func (s LatchState) String() string {
	switch s {
	case LatchDisarmed:
		return "disarmed"
	case LatchArmed:
		return "armed"
	}

	return "unknown"
}

// AlertLatch gates a single future notification. The zero value is disarmed.
// It is not safe for concurrent use; Service serializes access.
type AlertLatch struct {
	state LatchState
}

func (l *AlertLatch) State() LatchState {
	return l.state
}

func (l *AlertLatch) Armed() bool {
	return l.state == LatchArmed
}

// Arm moves the latch to armed and reports whether it was disarmed before.
func (l *AlertLatch) Arm() bool {
	if l.state == LatchArmed {
		return false
	}

	l.state = LatchArmed
	return true
}

// Disarm moves the latch to disarmed and reports whether it was armed before.
func (l *AlertLatch) Disarm() bool {
	if l.state == LatchDisarmed {
		return false
	}

	l.state = LatchDisarmed
	return true
}
