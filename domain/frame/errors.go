package frame

import "errors"

var (
	// ErrMalformedBuffer is returned when a pixel buffer's length does not
	// match its declared width, height, and channel count
	ErrMalformedBuffer = errors.New("pixel buffer does not match declared dimensions")

	// ErrUnknownStrategy is returned when a scoring strategy name is not registered
	ErrUnknownStrategy = errors.New("unknown scoring strategy")

	// ErrUnknownChannel is returned when a dominant channel name is not red, green, or blue
	ErrUnknownChannel = errors.New("unknown dominant channel")
)
