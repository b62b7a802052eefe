// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer reduces the channel count of a source by averaging.
//
// Mixing to mono averages every channel. Mixing to stereo sends even
// channels (0, 2, 4...) to the left and odd channels to the right, which
// keeps the front pair of common surround layouts on the correct side.
type ChannelMixer struct {
	src      Source
	channels int
	in       *frameBuffer
}

// NewChannelMixer mixes src down to channels. A target equal to or larger
// than the source channel count passes samples through unchanged.
func NewChannelMixer(src Source, channels int) (*ChannelMixer, error) {
	if channels < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	return &ChannelMixer{
		src:      src,
		channels: min(channels, src.Channels()),
		in:       newFrameBuffer(src, 4096),
	}, nil
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }
func (m *ChannelMixer) BitDepth() int   { return m.src.BitDepth() }

func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMixer) ReadSamples(dst []int32) (int, error) {
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	inChannels := m.src.Channels()
	if inChannels == m.channels {
		return m.src.ReadSamples(dst)
	}

	// leftovers of a partial source frame stay buffered for the next call
	m.in.grow(len(dst) / m.channels)
	if err := m.in.fill(); err != nil {
		return 0, err
	}
	in := m.in.take(len(dst) / m.channels)
	frames := len(in) / inChannels

	switch m.channels {
	case 1:
		for f := range frames {
			var sum int64
			for _, s := range in[f*inChannels : (f+1)*inChannels] {
				sum += int64(s)
			}
			dst[f] = int32(sum / int64(inChannels))
		}
	default:
		left := int64((inChannels + 1) / 2)
		right := int64(inChannels / 2)
		for f := range frames {
			var l, r int64
			for c, s := range in[f*inChannels : (f+1)*inChannels] {
				if c%2 == 0 {
					l += int64(s)
				} else {
					r += int64(s)
				}
			}
			dst[2*f] = int32(l / left)
			dst[2*f+1] = int32(r / right)
		}
	}

	return frames * m.channels, nil
}
