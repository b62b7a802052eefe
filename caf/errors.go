// SPDX-License-Identifier: EPL-2.0

package caf

import "errors"

var (
	ErrNotSeekable  = errors.New("caf: output must be seekable to patch the data chunk size")
	ErrClosed       = errors.New("caf: writer is closed")
	ErrFrameCount   = errors.New("caf: invalid frame count for packet")
	ErrWindowSize   = errors.New("caf: window size must be positive")
	ErrInvalidFile  = errors.New("caf: invalid caff header")
	ErrMissingChunk = errors.New("caf: required chunk missing")
)
