package flac

import "errors"

var (
	// ErrNotFlacFile indicates the stream does not start with a FLAC signature
	ErrNotFlacFile = errors.New("not a FLAC file")

	// ErrUnsupportedLayout indicates stream info the encoder cannot take
	ErrUnsupportedLayout = errors.New("unsupported FLAC layout")
)
