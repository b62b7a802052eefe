// SPDX-License-Identifier: EPL-2.0

package alac

import (
	"fmt"
	"math"
)

const (
	MinBitDepth = 4
	MaxBitDepth = 32

	MinChannels = 1
	MaxChannels = 2

	// DefaultFrameLength is the frame length Apple's encoder uses.
	DefaultFrameLength = 4096
)

// Config describes the stream an Encoder produces. It cannot change after
// the Encoder is created.
type Config struct {
	FrameLength uint32 // samples per channel in a full packet
	SampleRate  uint32 // Hz
	Channels    uint8  // 1 (mono) or 2 (stereo)
	BitDepth    uint8  // 4 to 32
}

// DefaultConfig returns 16-bit stereo at 44.1kHz with 4096-frame packets.
func DefaultConfig() Config {
	return Config{
		FrameLength: DefaultFrameLength,
		SampleRate:  44100,
		Channels:    2,
		BitDepth:    16,
	}
}

// SampleSize is the number of bytes needed to hold one sample.
func (c Config) SampleSize() int {
	return (int(c.BitDepth) + 7) / 8
}

// Validate reports why c cannot be encoded, if it cannot.
func (c Config) Validate() error {
	if c.BitDepth < MinBitDepth || c.BitDepth > MaxBitDepth {
		return fmt.Errorf("%w: %w: %d", ErrConfig, ErrUnsupportedBitDepth, c.BitDepth)
	}
	if c.Channels < MinChannels || c.Channels > MaxChannels {
		return fmt.Errorf("%w: %w: %d", ErrConfig, ErrUnsupportedChannels, c.Channels)
	}
	if c.FrameLength == 0 {
		return fmt.Errorf("%w: %w", ErrConfig, ErrInvalidFrameLength)
	}
	// packet sizes travel as 32-bit fields in the cookie and in CAF
	if bytes := (maxPacketBits(c) + 7) / 8; bytes > math.MaxUint32 {
		return fmt.Errorf("%w: %w: %d frames need %d byte packets", ErrConfig, ErrInvalidFrameLength, c.FrameLength, bytes)
	}
	return nil
}
