package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a booking request.
type RequestStatus string

const (
	StatusNew      RequestStatus = "new"
	StatusInReview RequestStatus = "in_review"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// validTransitions defines the allowed state machine transitions.
// Resolving a request still in "new" auto-advances through review in a
// single step; terminal states absorb everything as a no-op.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusNew:      {StatusInReview, StatusAccepted, StatusRejected},
	StatusInReview: {StatusAccepted, StatusRejected},
}

var ErrRequestNotFound = errors.New("booking request not found")
var ErrInvalidOutcome = errors.New("invalid request status")
var ErrDuplicateRequest = errors.New("request already submitted")

// CanTransitionTo reports whether a transition from s to next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is permitted from s.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// ParseRequestStatus validates a caller-supplied status value.
func ParseRequestStatus(raw string) (RequestStatus, error) {
	switch RequestStatus(raw) {
	case StatusInReview, StatusAccepted, StatusRejected:
		return RequestStatus(raw), nil
	default:
		return "", ErrInvalidOutcome
	}
}

// BookingRequest is a client's request to join a tour.
type BookingRequest struct {
	ID        string        `json:"id"`
	TourID    string        `json:"tour_id"`
	ClientID  string        `json:"client_id"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
