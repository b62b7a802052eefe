// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates integer PCM for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate  int
	channels    int
	bitDepth    int
	totalFrames int // Total frames to generate
	generated   int // Frames generated so far
	maxRead     int // Upper bound on frames returned per call, 0 for none
	closed      bool
	waveform    func(frame int, channel int) int32
}

// NewMockSource creates a new mock audio source.
// totalFrames is the number of frames (samples per channel) to generate.
// waveform generates the sample value for a frame index and channel.
func NewMockSource(sampleRate, channels, bitDepth, totalFrames int, waveform func(frame int, channel int) int32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		bitDepth:    bitDepth,
		totalFrames: totalFrames,
		waveform:    waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, bitDepth, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, bitDepth, totalFrames, func(int, int) int32 {
		return 0
	})
}

// NewSineSource creates a mock source with a sine wave at half of full scale.
func NewSineSource(sampleRate, channels, bitDepth, totalFrames int, frequency float64) *MockSource {
	amplitude := float64(int64(1)<<(bitDepth-1)-1) / 2
	return NewMockSource(sampleRate, channels, bitDepth, totalFrames, func(frame int, channel int) int32 {
		t := float64(frame) / float64(sampleRate)
		return int32(math.Round(amplitude * math.Sin(2*math.Pi*frequency*t)))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, bitDepth, totalFrames int, value int32) *MockSource {
	return NewMockSource(sampleRate, channels, bitDepth, totalFrames, func(int, int) int32 {
		return value
	})
}

// NewCounterSource creates a mock source whose samples encode their frame
// index and channel: frame*channels + channel, wrapped to bitDepth.
func NewCounterSource(sampleRate, channels, bitDepth, totalFrames int) *MockSource {
	span := int64(1) << (bitDepth - 1)
	return NewMockSource(sampleRate, channels, bitDepth, totalFrames, func(frame int, channel int) int32 {
		return int32(int64(frame*channels+channel) % span)
	})
}

// SetMaxRead limits how many frames a single ReadSamples call returns.
func (m *MockSource) SetMaxRead(frames int) *MockSource {
	m.maxRead = frames
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BitDepth() int   { return m.bitDepth }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset resets the generated frame counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

// Sample returns what the source produces for a frame and channel.
func (m *MockSource) Sample(frame, channel int) int32 {
	return m.waveform(frame, channel)
}

func (m *MockSource) ReadSamples(dst []int32) (int, error) {
	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	// Calculate how many frames we can write
	framesToWrite := min(len(dst)/m.channels, m.totalFrames-m.generated)
	if m.maxRead > 0 {
		framesToWrite = min(framesToWrite, m.maxRead)
	}

	// Generate samples
	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalFrames {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}
