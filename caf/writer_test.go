// SPDX-License-Identifier: EPL-2.0

package caf

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/alacenc/alac"
	"github.com/ik5/alacenc/internal/alactest"
	"github.com/ik5/alacenc/internal/audiotest"
)

func newEncoder(t *testing.T, frameLength uint32, channels, depth uint8) *alac.Encoder {
	t.Helper()

	enc, err := alac.New(alac.Config{
		FrameLength: frameLength,
		SampleRate:  44100,
		Channels:    channels,
		BitDepth:    depth,
	})
	require.NoError(t, err)
	return enc
}

func quietConfig(framing Framing, window int) Config {
	logger, _ := test.NewNullLogger()
	return Config{Framing: framing, WindowSize: window, Logger: logger}
}

// block returns frames counter samples per channel in a buffer of
// frameLength, with junk after frames to catch missing padding.
func block(channels, frameLength, frames, offset int) [][]int32 {
	out := make([][]int32, channels)
	for c := range out {
		out[c] = make([]int32, frameLength)
		for i := range out[c] {
			if i < frames {
				out[c][i] = int32((offset+i)*channels+c) - 50
			} else {
				out[c][i] = 0x5a5a
			}
		}
	}
	return out
}

// writeStream encodes totalFrames frames and returns the file bytes.
func writeStream(t *testing.T, enc *alac.Encoder, cfg Config, totalFrames int) []byte {
	t.Helper()

	ws := &audiotest.WriteSeeker{}
	w, err := NewWriter(ws, enc, cfg)
	require.NoError(t, err)

	fl := int(enc.Config().FrameLength)
	ch := int(enc.Config().Channels)
	for off := 0; off < totalFrames; off += fl {
		n := min(fl, totalFrames-off)
		require.NoError(t, w.WritePacket(n, block(ch, fl, n, off)))
	}
	require.NoError(t, w.Close())

	return ws.Bytes()
}

func TestWriter_ConstantFraming(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t, 16, 2, 16)
	data := writeStream(t, enc, quietConfig(ConstantFraming, 7), 37)

	f, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, FileHeader{FileType: NewFourByteStr("caff"), FileVersion: 1}, f.Header)
	assert.Equal(t, AudioFormat{
		SampleRate:        44100,
		FormatID:          NewFourByteStr("alac"),
		BytesPerPacket:    71,
		FramesPerPacket:   16,
		ChannelsPerPacket: 2,
		BitsPerChannel:    16,
	}, f.Format)
	assert.Equal(t, uint32(channelLayoutTagStereo), f.Layout.ChannelLayoutTag)
	assert.Equal(t, PacketTableHeader{NumberValidFrames: 37, RemainderFrames: 11}, f.PacketTable)
	assert.Empty(t, f.PacketSizes)

	cookie, err := alactest.ParseCookie(f.Cookie)
	require.NoError(t, err)
	assert.Equal(t, uint32(16), cookie.FrameLength)
	assert.Equal(t, uint8(2), cookie.Channels)
	assert.Equal(t, uint32(44100), cookie.SampleRate)

	packets, err := f.Packets()
	require.NoError(t, err)
	require.Len(t, packets, 3)

	for p, pkt := range packets {
		chans, err := alactest.DecodePacket(pkt, 16, 16)
		require.NoError(t, err, "packet %d", p)
		require.Len(t, chans, 2)

		want := block(2, 16, min(16, 37-p*16), p*16)
		for c := range chans {
			for i := range chans[c] {
				if p == 2 && i >= 5 {
					assert.Zero(t, chans[c][i], "padding %d/%d", c, i)
					continue
				}
				assert.Equal(t, want[c][i], chans[c][i], "packet %d channel %d frame %d", p, c, i)
			}
		}
	}
}

func TestWriter_VariableFraming(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t, 16, 2, 16)
	data := writeStream(t, enc, quietConfig(VariableFraming, 1), 37)

	f, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Zero(t, f.Format.BytesPerPacket)
	assert.Equal(t, PacketTableHeader{NumberPackets: 3, NumberValidFrames: 37}, f.PacketTable)
	// 2*(23+32+16*5)+3 bits for the short packet
	assert.Equal(t, []uint64{71, 71, 35}, f.PacketSizes)

	packets, err := f.Packets()
	require.NoError(t, err)
	require.Len(t, packets, 3)

	chans, err := alactest.DecodePacket(packets[2], 16, 16)
	require.NoError(t, err)
	require.Len(t, chans[0], 5)
	assert.Equal(t, block(2, 5, 5, 32), chans)
}

func TestWriter_ExactMultiple(t *testing.T) {
	t.Parallel()

	for _, framing := range []Framing{ConstantFraming, VariableFraming} {
		enc := newEncoder(t, 16, 1, 24)
		data := writeStream(t, enc, quietConfig(framing, DefaultWindowSize), 32)

		f, err := Parse(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, int64(32), f.PacketTable.NumberValidFrames, framing.String())
		assert.Zero(t, f.PacketTable.RemainderFrames, framing.String())
		assert.Equal(t, uint32(channelLayoutTagMono), f.Layout.ChannelLayoutTag)

		packets, err := f.Packets()
		require.NoError(t, err)
		assert.Len(t, packets, 2, framing.String())
	}
}

func TestWriter_Empty(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t, 4096, 2, 16)
	data := writeStream(t, enc, quietConfig(ConstantFraming, 64), 0)

	f, err := Parse(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, f.Data)
	assert.Equal(t, PacketTableHeader{}, f.PacketTable)
	assert.Len(t, f.Cookie, 24)
}

func TestWriter_Layout(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t, 16, 2, 16)
	data := writeStream(t, enc, quietConfig(ConstantFraming, 3), 16)

	header := 4 + 2 + 2
	desc := 12 + audioFormatSize
	chanChunk := 12 + channelLayoutSize
	kuki := 12 + 24
	dataStart := header + desc + chanChunk + kuki

	assert.Equal(t, "caff", string(data[:4]))
	assert.Equal(t, "desc", string(data[header:header+4]))
	assert.Equal(t, "chan", string(data[header+desc:header+desc+4]))
	assert.Equal(t, "kuki", string(data[header+desc+chanChunk:header+desc+chanChunk+4]))
	assert.Equal(t, "data", string(data[dataStart:dataStart+4]))

	size := int64(binary.BigEndian.Uint64(data[dataStart+4:]))
	assert.Equal(t, int64(4+71), size, "data chunk size includes the edit count")

	pakt := dataStart + 12 + int(size)
	assert.Equal(t, "pakt", string(data[pakt:pakt+4]))
	assert.Equal(t, uint64(24), binary.BigEndian.Uint64(data[pakt+4:]))
	assert.Len(t, data, pakt+12+24)
}

func TestWriter_Errors(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t, 16, 2, 16)

	_, err := NewWriter(&audiotest.WriteSeeker{}, enc, Config{})
	assert.ErrorIs(t, err, ErrWindowSize)

	_, err = NewWriter(&audiotest.WriteSeeker{FailSeek: true}, enc, quietConfig(ConstantFraming, 8))
	assert.ErrorIs(t, err, ErrNotSeekable)

	w, err := NewWriter(&audiotest.WriteSeeker{}, newEncoder(t, 16, 2, 16), quietConfig(VariableFraming, 8))
	require.NoError(t, err)

	assert.ErrorIs(t, w.WritePacket(0, block(2, 16, 0, 0)), ErrFrameCount)
	assert.ErrorIs(t, w.WritePacket(17, block(2, 17, 17, 0)), ErrFrameCount)

	require.NoError(t, w.WritePacket(3, block(2, 16, 3, 0)))
	assert.ErrorIs(t, w.WritePacket(16, block(2, 16, 16, 3)), ErrFrameCount, "nothing may follow a short packet")

	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Close(), ErrClosed)
	assert.ErrorIs(t, w.WritePacket(16, block(2, 16, 16, 0)), ErrClosed)
}

func TestWriter_Stats(t *testing.T) {
	t.Parallel()

	w, err := NewWriter(&audiotest.WriteSeeker{}, newEncoder(t, 16, 2, 16), quietConfig(ConstantFraming, 4096))
	require.NoError(t, err)

	require.NoError(t, w.WritePacket(16, block(2, 16, 16, 0)))
	require.NoError(t, w.WritePacket(9, block(2, 16, 9, 16)))

	assert.Equal(t, int64(2), w.Packets())
	assert.Equal(t, int64(25), w.ValidFrames())
	assert.Equal(t, int64(142), w.DataBytes())
	assert.Equal(t, uint32(7), w.Remainder())
}

func TestWriter_Logging(t *testing.T) {
	t.Parallel()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	cfg := Config{Framing: VariableFraming, WindowSize: 64, Logger: logger}
	w, err := NewWriter(&audiotest.WriteSeeker{}, newEncoder(t, 16, 2, 16), cfg)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, "wrote caf header", entries[0].Message)
	assert.Equal(t, "variable", entries[0].Data["framing"])
	assert.Equal(t, "finished caf file", entries[1].Message)
	assert.Equal(t, int64(0), entries[1].Data["packets"])
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	_, err := Parse(bytes.NewReader([]byte("RIFF\x00\x01\x00\x00")))
	assert.ErrorIs(t, err, ErrInvalidFile)

	_, err = Parse(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrInvalidFile)

	// header only
	_, err = Parse(bytes.NewReader([]byte("caff\x00\x01\x00\x00")))
	assert.ErrorIs(t, err, ErrMissingChunk)
}

func TestParse_SkipsUnknownChunks(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t, 16, 1, 16)
	data := writeStream(t, enc, quietConfig(ConstantFraming, 4096), 16)

	// splice a free chunk in after the file header
	var spliced bytes.Buffer
	spliced.Write(data[:8])
	require.NoError(t, writeChunk(&spliced, NewFourByteStr("free"), 5, nil))
	spliced.Write([]byte{1, 2, 3, 4, 5})
	spliced.Write(data[8:])

	f, err := Parse(&spliced)
	require.NoError(t, err)
	packets, err := f.Packets()
	require.NoError(t, err)
	assert.Len(t, packets, 1)
}

func TestParse_RejectsOverlongPacketSize(t *testing.T) {
	t.Parallel()

	enc := newEncoder(t, 16, 1, 16)
	data := writeStream(t, enc, quietConfig(ConstantFraming, 4096), 16)

	// a packet table whose only entry never terminates
	hdr := PacketTableHeader{NumberPackets: 1, NumberValidFrames: 16}
	body := bytes.Repeat([]byte{0xff}, 11)

	var corrupt bytes.Buffer
	corrupt.Write(data)
	require.NoError(t, writeChunk(&corrupt, ChunkPacketTable, int64(binary.Size(hdr)+len(body)), hdr))
	corrupt.Write(body)

	_, err := Parse(&corrupt)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFile)
	assert.Contains(t, err.Error(), "reading pakt chunk")
}

func TestDecodeInt_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []byte
	}{
		{"ten continuation bytes", bytes.Repeat([]byte{0x80}, 10)},
		{"all bits set", bytes.Repeat([]byte{0xff}, 12)},
		{"wider than 64 bits", []byte{0x83, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := decodeInt(bufioReader(tt.in))
			assert.ErrorIs(t, err, ErrInvalidFile)
		})
	}

	_, err := decodeInt(bufioReader([]byte{0x81}))
	assert.Error(t, err, "truncated")
}

func TestEncodeInt(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{71, []byte{0x47}},
		{127, []byte{0x7f}},
		{128, []byte{0x81, 0x00}},
		{16391, []byte{0x81, 0x80, 0x07}},
		{1<<63 | 1, []byte{0x81, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		require.NoError(t, encodeInt(&buf, tt.v))
		assert.Equal(t, tt.want, buf.Bytes(), "encodeInt(%d)", tt.v)
		assert.Equal(t, int64(len(tt.want)), intSize(tt.v), "intSize(%d)", tt.v)

		got, err := decodeInt(bufioReader(buf.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, tt.v, got)
	}
}

func TestFourByteString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pakt", ChunkPacketTable.String())
	assert.Panics(t, func() { NewFourByteStr("toolong") })
}

func bufioReader(b []byte) *bufio.Reader { return bufio.NewReader(bytes.NewReader(b)) }
