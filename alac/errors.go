// SPDX-License-Identifier: EPL-2.0

package alac

import "errors"

var (
	// ErrConfig is returned by New for any rejected Config.
	ErrConfig = errors.New("alac: invalid configuration")

	// ErrUnsupportedChannels indicates a channel count other than 1 or 2.
	ErrUnsupportedChannels = errors.New("channel count must be 1 or 2")

	// ErrUnsupportedBitDepth indicates a bit depth outside 4-32.
	ErrUnsupportedBitDepth = errors.New("bit depth must be between 4 and 32")

	// ErrInvalidFrameLength indicates a zero frame length.
	ErrInvalidFrameLength = errors.New("frame length must be positive")
)
