package model

import "fmt"

// Action is a lifecycle operation applied to a post.
type Action string

const (
	ActionSchedule   Action = "schedule"
	ActionUnschedule Action = "unschedule"
	ActionPublish    Action = "publish"
	ActionArchive    Action = "archive"
	ActionRestore    Action = "restore"
)

// ConflictError indicates an illegal state transition. Transport layers map
// this to a 400 response with the reason as the message.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

// transitions is the full lifecycle table: for each action, the set of states
// it is legal from and the state it produces.
var transitions = map[Action]struct {
	from map[Status]bool
	to   Status
}{
	ActionSchedule:   {from: map[Status]bool{StatusDraft: true, StatusScheduled: true}, to: StatusScheduled},
	ActionUnschedule: {from: map[Status]bool{StatusScheduled: true}, to: StatusDraft},
	ActionPublish:    {from: map[Status]bool{StatusDraft: true, StatusScheduled: true}, to: StatusPublished},
	ActionArchive:    {from: map[Status]bool{StatusDraft: true, StatusScheduled: true, StatusPublished: true}, to: StatusArchived},
	ActionRestore:    {from: map[Status]bool{StatusArchived: true}, to: StatusDraft},
}

// Transition returns the next status for applying action to a post in the
// current status, or a *ConflictError when the transition is illegal. All
// lifecycle handlers share this table instead of inlining their own checks.
func Transition(current Status, action Action) (Status, error) {
	t, ok := transitions[action]
	if !ok {
		return "", fmt.Errorf("unknown action %q", action)
	}
	if !t.from[current] {
		return "", &ConflictError{Reason: conflictReason(current, action)}
	}
	return t.to, nil
}

// conflictReason builds the human-readable reason for an illegal transition.
func conflictReason(current Status, action Action) string {
	switch {
	case action == ActionArchive && current == StatusArchived:
		return "already archived"
	case action == ActionRestore:
		return "not archived"
	case action == ActionPublish && current == StatusPublished:
		return "already published"
	case action == ActionPublish && current == StatusArchived:
		return "cannot publish an archived post"
	case action == ActionSchedule:
		return fmt.Sprintf("cannot schedule a %s post", current)
	case action == ActionUnschedule:
		return "not scheduled"
	default:
		return fmt.Sprintf("cannot %s a %s post", action, current)
	}
}
