package onboarding

// Stage is the user's position in the guided setup
type Stage string

const (
	StageNotStarted Stage = "not_started"
	StageModalShown Stage = "modal_shown"
	StageInProgress Stage = "in_progress"
	StageCompleted  Stage = "completed"
	StageSkipped    Stage = "skipped"
)

var transitions = map[Stage]map[Stage]bool{
	StageNotStarted: {StageModalShown: true, StageInProgress: true, StageSkipped: true},
	StageModalShown: {StageInProgress: true, StageSkipped: true},
	StageInProgress: {StageCompleted: true, StageSkipped: true},
	StageSkipped:    {StageInProgress: true},
	StageCompleted:  {},
}

// IsValid returns true for known stages
func (s Stage) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the state machine allows moving to next
func (s Stage) CanTransitionTo(next Stage) bool {
	return transitions[s][next]
}

// IsTerminal reports whether no further transition is possible
func (s Stage) IsTerminal() bool {
	return len(transitions[s]) == 0
}
