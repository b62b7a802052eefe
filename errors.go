// SPDX-License-Identifier: EPL-2.0

package alacenc

import "errors"

var (
	ErrInvalidSampleRate  = errors.New("sample rate must be positive")
	ErrInvalidFrameLength = errors.New("frame length must be positive")
	ErrNilSource          = errors.New("source is nil")
)
