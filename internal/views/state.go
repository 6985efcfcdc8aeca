// Package views loads the data behind each page of the front end and renders it.
// Every loader returns a State in one of four statuses; nothing is cached between
// loads, so a page shows whatever the last request returned.
package views

import "github.com/isdelr/auction-lab/internal/client"

// Status is the render state of a view.
type Status string

const (
	StatusLoading   Status = "loading"
	StatusError     Status = "error"
	StatusEmpty     Status = "empty"
	StatusPopulated Status = "populated"
)

// State is the result of loading a view.
type State[T any] struct {
	Status Status
	// Err is the message surfaced by the API client, unmodified.
	Err string
	// Code is the upstream HTTP status behind Err, or 0.
	Code int
	Data T
}

// Loading returns the initial state of a view.
func Loading[T any]() State[T] {
	return State[T]{Status: StatusLoading}
}

// Failed returns an error state carrying err's message.
func Failed[T any](err error) State[T] {
	return State[T]{Status: StatusError, Err: err.Error(), Code: client.StatusCode(err)}
}

func settle[T any](data T, err error, empty bool) State[T] {
	if err != nil {
		return Failed[T](err)
	}
	if empty {
		return State[T]{Status: StatusEmpty, Data: data}
	}
	return State[T]{Status: StatusPopulated, Data: data}
}

func settleList[T any](items []T, err error) State[[]T] {
	return settle(items, err, len(items) == 0)
}

// IsError and the other predicates are for templates.
func (s State[T]) IsError() bool     { return s.Status == StatusError }
func (s State[T]) IsEmpty() bool     { return s.Status == StatusEmpty }
func (s State[T]) IsLoading() bool   { return s.Status == StatusLoading }
func (s State[T]) IsPopulated() bool { return s.Status == StatusPopulated }
