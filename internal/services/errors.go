package services

import "errors"

// Client-side checks. Each is returned before any request is sent.
var (
	ErrInvalidBid              = errors.New("please enter a valid bid amount")
	ErrBidTooLow               = errors.New("bid must be higher than the current bid")
	ErrInvalidStartingPrice    = errors.New("starting price must be greater than 0")
	ErrEndTimeInPast           = errors.New("end time must be in the future")
	ErrShippingAddressRequired = errors.New("shipping address is required")
	ErrTrackingNumberRequired  = errors.New("tracking number is required")
	ErrDisputeReasonRequired   = errors.New("please describe the issue")
)
