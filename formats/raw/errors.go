package raw

import "errors"

var (
	ErrInvalidSampleRate = errors.New("raw input needs a positive sample rate")
	ErrInvalidChannels   = errors.New("raw input needs a positive channel count")
)
