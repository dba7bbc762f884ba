package domain

// Phase is one of the three ordered journal phases of a day.
type Phase string

const (
	PhaseMorning Phase = "morning"
	PhaseMidday  Phase = "midday"
	PhaseEvening Phase = "evening"
)

// ParsePhase returns the matching Phase and whether s is valid.
func ParsePhase(s string) (Phase, bool) {
	switch Phase(s) {
	case PhaseMorning, PhaseMidday, PhaseEvening:
		return Phase(s), true
	}
	return "", false
}

// PhaseStatus is the derived state of a phase.
type PhaseStatus string

const (
	PhaseLocked   PhaseStatus = "locked"
	PhaseActive   PhaseStatus = "active"
	PhaseComplete PhaseStatus = "complete"
)

// PhaseGates holds the wall-clock unlock hours (0-23, local time).
type PhaseGates struct {
	MiddayUnlockHour  int
	EveningUnlockHour int
}

// PhaseFlags holds the persisted per-phase completion flags. They are the
// only persisted phase state; everything else is derived.
type PhaseFlags struct {
	Morning bool
	Midday  bool
	Evening bool
}

// PhaseStates is the derived status of all three phases.
type PhaseStates struct {
	Morning PhaseStatus `json:"morning"`
	Midday  PhaseStatus `json:"midday"`
	Evening PhaseStatus `json:"evening"`
}

// For returns the status of a single phase.
func (s PhaseStates) For(p Phase) PhaseStatus {
	switch p {
	case PhaseMidday:
		return s.Midday
	case PhaseEvening:
		return s.Evening
	default:
		return s.Morning
	}
}

// TrackPhases derives phase states from completion flags and the local
// wall-clock hour. Morning starts active. Midday unlocks once morning is
// complete and the hour has reached the midday gate; evening likewise gates
// on midday. A set completion flag always wins: reopening is the caller
// clearing the flag, which is allowed at any time.
func TrackPhases(flags PhaseFlags, hour int, gates PhaseGates) PhaseStates {
	states := PhaseStates{
		Morning: PhaseActive,
		Midday:  PhaseLocked,
		Evening: PhaseLocked,
	}

	if flags.Morning {
		states.Morning = PhaseComplete
		if hour >= gates.MiddayUnlockHour {
			states.Midday = PhaseActive
		}
	}

	if flags.Midday {
		states.Midday = PhaseComplete
		if hour >= gates.EveningUnlockHour {
			states.Evening = PhaseActive
		}
	}

	if flags.Evening {
		states.Evening = PhaseComplete
	}

	return states
}
