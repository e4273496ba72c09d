// Package domain defines the business logic for the activities service.
package domain

import "errors"

var (
	// ErrActivityNotFound is returned when an activity cannot be located by name.
	ErrActivityNotFound = errors.New("activity not found")
	// ErrAlreadySignedUp indicates the participant already holds an enrollment in the activity.
	ErrAlreadySignedUp = errors.New("student is already signed up")
	// ErrNotSignedUp indicates the participant holds no enrollment in the activity.
	ErrNotSignedUp = errors.New("student is not signed up for this activity")
)

// Activity is a school extracurricular offering.
type Activity struct {
	ID              int64
	Name            string
	Description     string
	Schedule        string
	MaxParticipants int
	Participants    []Participant
}

// Participant is a student identified by email.
type Participant struct {
	Email string
}
