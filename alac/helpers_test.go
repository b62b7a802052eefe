// SPDX-License-Identifier: EPL-2.0

package alac

import (
	"bytes"
	"testing"

	"github.com/icza/bitio"
	"github.com/stretchr/testify/require"
)

// drainCookie emits one full cookie using windows of the given size.
func drainCookie(t testing.TB, enc *Encoder, window int) []byte {
	t.Helper()

	var out []byte
	buf := make([]byte, window)
	for range 10_000 {
		more, n := enc.Cookie(buf)
		require.LessOrEqual(t, n, window)
		out = append(out, buf[:n]...)
		if !more {
			return out
		}
	}
	t.Fatal("cookie never completed")
	return nil
}

// drainPacket emits one full packet using windows of the given size.
func drainPacket(t testing.TB, enc *Encoder, window int, numFrames uint32, samples [][]int32) []byte {
	t.Helper()

	var out []byte
	buf := make([]byte, window)
	limit := int(enc.MaxPacketSize())*2 + 16
	for range limit {
		more, n := enc.Packet(buf, numFrames, samples)
		require.LessOrEqual(t, n, window)
		out = append(out, buf[:n]...)
		if !more {
			return out
		}
	}
	t.Fatal("packet never completed")
	return nil
}

type decodedElement struct {
	tag     uint64
	partial bool
	escape  bool
	frames  uint32
	samples []int32
}

// decodePacket parses a packet made of escape-coded SCE elements and
// checks the reserved fields along the way.
func decodePacket(t testing.TB, cfg Config, data []byte) []decodedElement {
	t.Helper()

	r := bitio.NewReader(bytes.NewReader(data))
	read := func(n uint8) uint64 {
		v, err := r.ReadBits(n)
		require.NoError(t, err)
		return v
	}

	var elems []decodedElement
	for {
		id := read(3)
		if id == elemEND {
			break
		}
		require.Equal(t, uint64(elemSCE), id, "element id")

		el := decodedElement{tag: read(4), frames: cfg.FrameLength}
		require.Zero(t, read(12), "unused header bits")
		el.partial = read(1) == 1
		require.Zero(t, read(2), "bytes shifted")
		el.escape = read(1) == 1
		if el.partial {
			el.frames = uint32(read(32))
		}

		shift := 32 - uint(cfg.BitDepth)
		el.samples = make([]int32, el.frames)
		for i := range el.samples {
			raw := uint32(read(cfg.BitDepth))
			el.samples[i] = int32(raw<<shift) >> shift
		}
		elems = append(elems, el)
		require.LessOrEqual(t, len(elems), int(cfg.Channels))
	}

	skipped, err := r.Align()
	require.NoError(t, err)
	require.Less(t, skipped, uint8(8))

	_, err = r.ReadBits(1)
	require.Error(t, err, "trailing data after packet")

	return elems
}

// pattern fills numFrames samples per channel that cover the full signed
// range of depth bits.
func pattern(channels int, numFrames uint32, depth uint8) [][]int32 {
	lo := -(int64(1) << (depth - 1))
	hi := int64(1)<<(depth-1) - 1
	span := hi - lo + 1

	out := make([][]int32, channels)
	for c := range out {
		out[c] = make([]int32, numFrames)
		for i := range out[c] {
			v := (int64(i)*7919 + int64(c)*104729) % span
			out[c][i] = int32(lo + v)
		}
	}
	return out
}

func mustNew(t testing.TB, cfg Config) *Encoder {
	t.Helper()

	enc, err := New(cfg)
	require.NoError(t, err)
	return enc
}
