// SPDX-License-Identifier: EPL-2.0

package alactest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/alacenc/alac"
	"github.com/ik5/alacenc/internal/alactest"
)

func encode(t *testing.T, cfg alac.Config, numFrames uint32, samples [][]int32) (cookie, packet []byte) {
	t.Helper()

	enc, err := alac.New(cfg)
	require.NoError(t, err)

	cookie = make([]byte, alac.CookieSize())
	more, n := enc.Cookie(cookie)
	require.False(t, more)
	require.Equal(t, len(cookie), n)

	packet = make([]byte, enc.MaxPacketSize())
	more, n = enc.Packet(packet, numFrames, samples)
	require.False(t, more)
	return cookie, packet[:n]
}

func TestDecodePacket(t *testing.T) {
	t.Parallel()

	cfg := alac.Config{FrameLength: 4, SampleRate: 48000, Channels: 2, BitDepth: 20}
	samples := [][]int32{{-524288, -1, 0, 524287}, {1, 2, 3, 4}}

	cookie, packet := encode(t, cfg, 4, samples)

	c, err := alactest.ParseCookie(cookie)
	require.NoError(t, err)
	assert.Equal(t, alactest.Cookie{
		FrameLength:   4,
		BitDepth:      20,
		PB:            40,
		MB:            10,
		KB:            14,
		Channels:      2,
		MaxRun:        255,
		MaxFrameBytes: alac.MaxPacketSize(cfg),
		AvgBitRate:    48000 * 2 * 20,
		SampleRate:    48000,
	}, c)

	got, err := alactest.DecodePacket(packet, 4, 20)
	require.NoError(t, err)
	assert.Equal(t, samples, got)
}

func TestDecodePacket_Partial(t *testing.T) {
	t.Parallel()

	cfg := alac.Config{FrameLength: 8, SampleRate: 8000, Channels: 1, BitDepth: 8}
	_, packet := encode(t, cfg, 3, [][]int32{{-128, 0, 127}})

	got, err := alactest.DecodePacket(packet, 8, 8)
	require.NoError(t, err)
	assert.Equal(t, [][]int32{{-128, 0, 127}}, got)
}

func TestDecodePacket_Malformed(t *testing.T) {
	t.Parallel()

	cfg := alac.Config{FrameLength: 2, SampleRate: 8000, Channels: 1, BitDepth: 16}
	_, packet := encode(t, cfg, 2, [][]int32{{1, 2}})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", packet[:len(packet)-2]},
		{"trailing byte", append(append([]byte{}, packet...), 0)},
		{"cpe element", []byte{0x20, 0, 0, 0}},
		{"no escape", []byte{0x00, 0x00, 0x00, 0x00, 0xe0}},
	}

	for _, tt := range tests {
		_, err := alactest.DecodePacket(tt.data, 2, 16)
		assert.ErrorIs(t, err, alactest.ErrPacket, tt.name)
	}

	_, err := alactest.ParseCookie(make([]byte, 23))
	assert.ErrorIs(t, err, alactest.ErrCookie)
}
