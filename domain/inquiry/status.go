package inquiry

import "fmt"

// Status is the lifecycle state of an inquiry.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusRejected   Status = "rejected"
)

// transitions is the explicit transition table. The workflow is deliberately
// unordered: staff may move an inquiry from any state to any other, including
// reopening a completed one.
var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCompleted, StatusRejected},
	StatusInProgress: {StatusPending, StatusCompleted, StatusRejected},
	StatusCompleted:  {StatusPending, StatusInProgress, StatusRejected},
	StatusRejected:   {StatusPending, StatusInProgress, StatusCompleted},
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("invalid inquiry status %q", raw)
	}
	return s, nil
}

// Valid reports whether s is one of the four known states.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether a transition from s to next is allowed.
// Re-asserting the current state is treated as a no-op transition and is
// allowed.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}
