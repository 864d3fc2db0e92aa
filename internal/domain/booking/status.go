package booking

import (
	"strings"

	"github.com/Thushyanthini0507/artzyra-server/internal/platform/domain"
)

// Status represents the canonical lifecycle state of a booking.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusDeclined   Status = "declined"
)

// legacySynonyms folds free-form status values from older records onto the
// canonical enum. Canonical tokens are fixpoints; everything here is a legacy
// spelling observed in production data.
var legacySynonyms = map[string]Status{
	"pending approval": StatusPending,
	"accepted":         StatusConfirmed,
	"in progress":      StatusConfirmed,
	"active":           StatusConfirmed,
	"approved":         StatusConfirmed,
	"done":             StatusCompleted,
	"finished":         StatusCompleted,
	"canceled":         StatusCancelled,
	"rejected":         StatusDeclined,
	"failed":           StatusDeclined,
}

// Canonicalize maps a raw status string onto the canonical enum.
// The second return value is false for unrecognized values, which pass
// through unchanged so callers can flag them for operator attention.
func Canonicalize(raw string) (Status, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusReview,
		StatusCompleted, StatusCancelled, StatusDeclined:
		return Status(s), true
	}
	if canonical, ok := legacySynonyms[s]; ok {
		return canonical, true
	}
	return Status(raw), false
}

// StoredSpellings returns every raw value a status may appear under in the
// database: the canonical token plus its legacy synonyms. Repositories use it
// so status filters match old rows that were never rewritten.
func StoredSpellings(s Status) []string {
	spellings := []string{string(s)}
	for raw, canonical := range legacySynonyms {
		if canonical == s {
			spellings = append(spellings, raw)
		}
	}
	return spellings
}

// IsValid returns true if the status is one of the seven canonical states.
func (s Status) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal returns true if no actor can move the booking out of this status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusDeclined
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Actor identifies who is requesting a transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorArtist   Actor = "artist"
	ActorAdmin    Actor = "admin"
)

// Action is a transition request on a booking.
type Action string

const (
	ActionAccept         Action = "accept"
	ActionDecline        Action = "decline"
	ActionStart          Action = "start"
	ActionDeliver        Action = "deliver"
	ActionApprove        Action = "approve"
	ActionRequestChanges Action = "request_changes"
	ActionComplete       Action = "complete"
	ActionCancel         Action = "cancel"
)

// transitions is the declarative state machine: for each source status, the
// actions each actor may take and the status they lead to. Anything absent is
// an InvalidTransition. Admin overrides beyond this table go through
// ForceStatus, which is deliberately kept out of the table.
var transitions = map[Status]map[Actor]map[Action]Status{
	StatusPending: {
		ActorCustomer: {
			ActionCancel: StatusCancelled,
		},
		ActorArtist: {
			ActionAccept:  StatusConfirmed,
			ActionDecline: StatusDeclined,
		},
		ActorAdmin: {
			ActionAccept:  StatusConfirmed,
			ActionDecline: StatusDeclined,
		},
	},
	StatusConfirmed: {
		ActorCustomer: {
			ActionCancel: StatusCancelled,
		},
		ActorArtist: {
			ActionStart: StatusInProgress,
		},
	},
	StatusInProgress: {
		ActorCustomer: {
			ActionCancel: StatusCancelled,
		},
		ActorArtist: {
			ActionDeliver:  StatusReview,
			ActionComplete: StatusCompleted,
		},
		ActorAdmin: {
			ActionDecline: StatusDeclined,
		},
	},
	StatusReview: {
		ActorCustomer: {
			ActionApprove:        StatusCompleted,
			ActionRequestChanges: StatusInProgress,
			ActionCancel:         StatusCancelled,
		},
	},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusDeclined:  {},
}

// Transition resolves a (current, actor, action) triple against the table.
// It returns the target status, or InvalidTransition without any side effect.
func Transition(current Status, actor Actor, action Action) (Status, error) {
	byActor, ok := transitions[current]
	if !ok {
		return "", domain.NewInvalidTransitionError(string(current), string(action))
	}
	byAction, ok := byActor[actor]
	if !ok {
		return "", domain.NewInvalidTransitionError(string(current), string(action))
	}
	target, ok := byAction[action]
	if !ok {
		return "", domain.NewInvalidTransitionError(string(current), string(action))
	}
	return target, nil
}
