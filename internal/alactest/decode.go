// SPDX-License-Identifier: EPL-2.0

// Package alactest decodes escape-coded ALAC packets and magic cookies so
// tests can check what the encoder produced.
package alactest

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/icza/bitio"
)

const (
	elemSCE = 0
	elemEND = 7
)

var (
	ErrCookie = errors.New("alactest: malformed magic cookie")
	ErrPacket = errors.New("alactest: malformed packet")
)

// Cookie holds the ALACSpecificConfig fields.
type Cookie struct {
	FrameLength       uint32
	CompatibleVersion uint8
	BitDepth          uint8
	PB, MB, KB        uint8
	Channels          uint8
	MaxRun            uint16
	MaxFrameBytes     uint32
	AvgBitRate        uint32
	SampleRate        uint32
}

func ParseCookie(data []byte) (Cookie, error) {
	var c Cookie
	if len(data) != 24 {
		return c, fmt.Errorf("%w: %d bytes", ErrCookie, len(data))
	}
	if err := binary.Read(bytes.NewReader(data), binary.BigEndian, &c); err != nil {
		return c, fmt.Errorf("%w: %w", ErrCookie, err)
	}
	return c, nil
}

// DecodePacket parses a packet of verbatim SCE elements into per-channel
// samples. frameLength is the count used by elements without an explicit
// size, depth the sample width.
func DecodePacket(data []byte, frameLength uint32, depth uint8) ([][]int32, error) {
	r := bitio.NewReader(bytes.NewReader(data))
	shift := 32 - uint(depth)

	var channels [][]int32
	for {
		id, err := r.ReadBits(3)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrPacket, err)
		}
		if id == elemEND {
			break
		}
		if id != elemSCE {
			return nil, fmt.Errorf("%w: element %d", ErrPacket, id)
		}

		tag := r.TryReadBits(4)
		unused := r.TryReadBits(12)
		partial := r.TryReadBits(1)
		shifted := r.TryReadBits(2)
		escape := r.TryReadBits(1)
		if r.TryError != nil {
			return nil, fmt.Errorf("%w: %w", ErrPacket, r.TryError)
		}
		if int(tag) != len(channels) || unused != 0 || shifted != 0 || escape != 1 {
			return nil, fmt.Errorf("%w: bad element header", ErrPacket)
		}

		frames := frameLength
		if partial == 1 {
			frames = uint32(r.TryReadBits(32))
		}

		samples := make([]int32, frames)
		for i := range samples {
			raw := uint32(r.TryReadBits(depth))
			samples[i] = int32(raw<<shift) >> shift
		}
		if r.TryError != nil {
			return nil, fmt.Errorf("%w: %w", ErrPacket, r.TryError)
		}
		channels = append(channels, samples)
	}

	if _, err := r.Align(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPacket, err)
	}
	if _, err := r.ReadBits(1); err == nil {
		return nil, fmt.Errorf("%w: trailing data", ErrPacket)
	}
	return channels, nil
}
