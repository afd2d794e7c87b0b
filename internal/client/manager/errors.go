// Package manager owns the client-side collection and card lists and the
// card dialog state machine.
package manager

import "errors"

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrContentRequired     = errors.New("content is required")
	ErrExplanationRequired = errors.New("explanation is required")
	ErrNoCollection        = errors.New("no collection selected")

	// ErrDialogOpen is returned when opening a dialog while another one is open.
	ErrDialogOpen = errors.New("another dialog is already open")
	// ErrNoDialog is returned for dialog actions with no suitable dialog open.
	ErrNoDialog = errors.New("no dialog is open")
	// ErrDialogBusy is returned while a generation or submit is in flight.
	ErrDialogBusy = errors.New("dialog is busy")
	// ErrStaleResponse is returned when a response arrives after the dialog
	// or selection it was meant for has changed. The response is dropped.
	ErrStaleResponse = errors.New("response arrived after the view changed")
	// ErrRecommendUnavailable is returned when the collection is too small to
	// ask for a next word.
	ErrRecommendUnavailable = errors.New("add a few more cards before asking for a recommendation")
)
