// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize      = errors.New("dst size must be multiple of channels")
	ErrUnknownFormat       = errors.New("no decoder registered for format")
	ErrUnsupportedBitDepth = errors.New("bit depth must be between 1 and 32")
	ErrInvalidChannels     = errors.New("channel count must be positive")
	ErrInvalidFrameLength  = errors.New("frame length must be positive")
)
