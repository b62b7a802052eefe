// SPDX-License-Identifier: EPL-2.0

package caf

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// File is the parsed content of an ALAC CAF file.
type File struct {
	Header      FileHeader
	Format      AudioFormat
	Layout      ChannelLayout
	Cookie      []byte
	Data        []byte
	PacketTable PacketTableHeader
	// PacketSizes lists the packet table entries, empty for constant
	// framing.
	PacketSizes []uint64
}

// Packets splits Data into packets, using either the constant packet size
// or the packet table.
func (f *File) Packets() ([][]byte, error) {
	var sizes []uint64
	if f.Format.BytesPerPacket > 0 {
		per := uint64(f.Format.BytesPerPacket)
		if uint64(len(f.Data))%per != 0 {
			return nil, fmt.Errorf("%w: data is not a multiple of %d bytes", ErrInvalidFile, per)
		}
		for range uint64(len(f.Data)) / per {
			sizes = append(sizes, per)
		}
	} else {
		sizes = f.PacketSizes
	}

	out := make([][]byte, 0, len(sizes))
	rest := f.Data
	for _, s := range sizes {
		if uint64(len(rest)) < s {
			return nil, fmt.Errorf("%w: packet table exceeds data", ErrInvalidFile)
		}
		out = append(out, rest[:s])
		rest = rest[s:]
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: %d bytes after last packet", ErrInvalidFile, len(rest))
	}
	return out, nil
}

// Parse reads a CAF file. Unknown chunks are skipped.
func Parse(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)
	f := &File{}

	if err := binary.Read(br, binary.BigEndian, &f.Header); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	if f.Header.FileType != fileType {
		return nil, ErrInvalidFile
	}

	var seen struct{ desc, kuki, data bool }
	for {
		var h ChunkHeader
		if err := binary.Read(br, binary.BigEndian, &h); errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("reading chunk header: %w", err)
		}

		switch h.ChunkType {
		case ChunkAudioDescription:
			if err := binary.Read(br, binary.BigEndian, &f.Format); err != nil {
				return nil, fmt.Errorf("reading desc chunk: %w", err)
			}
			seen.desc = true
		case ChunkChannelLayout:
			if err := readLayout(br, h.ChunkSize, &f.Layout); err != nil {
				return nil, fmt.Errorf("reading chan chunk: %w", err)
			}
		case ChunkMagicCookie:
			f.Cookie = make([]byte, h.ChunkSize)
			if _, err := io.ReadFull(br, f.Cookie); err != nil {
				return nil, fmt.Errorf("reading kuki chunk: %w", err)
			}
			seen.kuki = true
		case ChunkAudioData:
			data, err := readData(br, h.ChunkSize)
			if err != nil {
				return nil, fmt.Errorf("reading data chunk: %w", err)
			}
			f.Data = data
			seen.data = true
		case ChunkPacketTable:
			if err := readPacketTable(br, f); err != nil {
				return nil, fmt.Errorf("reading pakt chunk: %w", err)
			}
		default:
			logrus.WithField("chunk", h.ChunkType.String()).Debug("skipping unknown caf chunk")
			if _, err := br.Discard(int(h.ChunkSize)); err != nil {
				return nil, fmt.Errorf("skipping %s chunk: %w", h.ChunkType, err)
			}
		}
	}

	if !seen.desc || !seen.kuki || !seen.data {
		return nil, ErrMissingChunk
	}
	return f, nil
}

func readLayout(br *bufio.Reader, size int64, l *ChannelLayout) error {
	if err := binary.Read(br, binary.BigEndian, l); err != nil {
		return err
	}
	// channel descriptions are not kept
	_, err := br.Discard(int(size - channelLayoutSize))
	return err
}

func readData(br *bufio.Reader, size int64) ([]byte, error) {
	var editCount uint32
	if err := binary.Read(br, binary.BigEndian, &editCount); err != nil {
		return nil, err
	}
	if size == -1 {
		// data runs to the end of the file
		return io.ReadAll(br)
	}

	data := make([]byte, size-editCountSize)
	if _, err := io.ReadFull(br, data); err != nil {
		return nil, err
	}
	return data, nil
}

func readPacketTable(br *bufio.Reader, f *File) error {
	if err := binary.Read(br, binary.BigEndian, &f.PacketTable); err != nil {
		return err
	}
	for range f.PacketTable.NumberPackets {
		v, err := decodeInt(br)
		if err != nil {
			return err
		}
		f.PacketSizes = append(f.PacketSizes, v)
	}
	return nil
}
