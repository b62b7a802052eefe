// SPDX-License-Identifier: EPL-2.0

package caf

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// FourByteString is a CAF four character code.
type FourByteString [4]byte

func NewFourByteStr(str string) FourByteString {
	if len(str) != 4 {
		panic("FourByteString must be 4 bytes")
	}
	var res FourByteString
	copy(res[:], str)
	return res
}

func (f FourByteString) String() string { return string(f[:]) }

var (
	fileType = NewFourByteStr("caff")

	ChunkAudioDescription = NewFourByteStr("desc")
	ChunkChannelLayout    = NewFourByteStr("chan")
	ChunkMagicCookie      = NewFourByteStr("kuki")
	ChunkAudioData        = NewFourByteStr("data")
	ChunkPacketTable      = NewFourByteStr("pakt")

	formatALAC = NewFourByteStr("alac")
)

const (
	fileVersion = 1

	// sizes of the fixed chunk bodies
	audioFormatSize       = 32
	channelLayoutSize     = 12
	packetTableHeaderSize = 24
	editCountSize         = 4

	channelLayoutTagMono   = 100<<16 | 1
	channelLayoutTagStereo = 101<<16 | 2
)

type FileHeader struct {
	FileType    FourByteString
	FileVersion uint16
	FileFlags   uint16
}

type ChunkHeader struct {
	ChunkType FourByteString
	ChunkSize int64
}

// AudioFormat is the body of the desc chunk.
type AudioFormat struct {
	SampleRate        float64
	FormatID          FourByteString
	FormatFlags       uint32
	BytesPerPacket    uint32
	FramesPerPacket   uint32
	ChannelsPerPacket uint32
	BitsPerChannel    uint32
}

// ChannelLayout is the body of a chan chunk without channel descriptions.
type ChannelLayout struct {
	ChannelLayoutTag          uint32
	ChannelBitmap             uint32
	NumberChannelDescriptions uint32
}

type PacketTableHeader struct {
	NumberPackets     int64
	NumberValidFrames int64
	PrimingFrames     int32
	RemainderFrames   int32
}

// layoutTag returns the layout tag for a channel count, 0 when none fits.
func layoutTag(channels int) uint32 {
	switch channels {
	case 1:
		return channelLayoutTagMono
	case 2:
		return channelLayoutTagStereo
	default:
		return 0
	}
}

func writeChunk(w io.Writer, typ FourByteString, size int64, body any) error {
	if err := binary.Write(w, binary.BigEndian, ChunkHeader{ChunkType: typ, ChunkSize: size}); err != nil {
		return err
	}
	if body == nil {
		return nil
	}
	return binary.Write(w, binary.BigEndian, body)
}

// encodeInt writes v as a CAF variable length integer: seven bits per
// byte, most significant group first, high bit set on all but the last.
func encodeInt(w io.Writer, v uint64) error {
	var buf [10]byte
	i := len(buf) - 1
	buf[i] = byte(v & 0x7f)
	for v >>= 7; v != 0; v >>= 7 {
		i--
		buf[i] = byte(v&0x7f) | 0x80
	}
	_, err := w.Write(buf[i:])
	return err
}

// intSize is the number of bytes encodeInt writes for v.
func intSize(v uint64) int64 {
	n := int64(1)
	for v >>= 7; v != 0; v >>= 7 {
		n++
	}
	return n
}

// decodeInt reads a value written by encodeInt. Encodings longer than ten
// bytes or wider than 64 bits are rejected with ErrInvalidFile.
func decodeInt(r *bufio.Reader) (uint64, error) {
	var res uint64
	for range 10 {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if res>>57 != 0 {
			return 0, fmt.Errorf("%w: variable length integer overflows 64 bits", ErrInvalidFile)
		}
		res = res<<7 | uint64(b&0x7f)
		if b&0x80 == 0 {
			return res, nil
		}
	}
	return 0, fmt.Errorf("%w: variable length integer longer than 10 bytes", ErrInvalidFile)
}
