// SPDX-License-Identifier: EPL-2.0

package caf

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ik5/alacenc/alac"
)

// Framing selects how the final, short block of a stream is stored.
type Framing int

const (
	// ConstantFraming pads every packet to the frame length. All packets
	// have the same size and the padding is trimmed through the packet
	// table's remainder field.
	ConstantFraming Framing = iota
	// VariableFraming writes the final packet with only the frames it
	// holds and lists every packet size in the packet table.
	VariableFraming
)

func (f Framing) String() string {
	switch f {
	case ConstantFraming:
		return "constant"
	case VariableFraming:
		return "variable"
	default:
		return fmt.Sprintf("Framing(%d)", int(f))
	}
}

const DefaultWindowSize = 4096

type Config struct {
	Framing Framing
	// WindowSize is the scratch buffer the encoder writes through.
	WindowSize int
	// Logger receives chunk level diagnostics. nil uses the logrus
	// standard logger.
	Logger logrus.FieldLogger
}

func DefaultConfig() Config {
	return Config{
		Framing:    ConstantFraming,
		WindowSize: DefaultWindowSize,
	}
}

// Writer streams ALAC packets into a CAF file.
//
// The data chunk size is unknown until the last packet, so the output has
// to be seekable: Close rewinds to patch it and appends the packet table.
type Writer struct {
	w   io.WriteSeeker
	enc *alac.Encoder
	cfg Config
	log logrus.FieldLogger

	window []byte
	pad    [][]int32

	dataSizeAt  int64 // offset of the data chunk size field
	dataBytes   int64
	packets     int64
	validFrames int64
	lastFrames  uint32
	sizes       []uint64
	short       bool // a short block was written, nothing may follow
	closed      bool
}

// NewWriter writes the file header, desc, chan, kuki and the data chunk
// header. Packets follow through WritePacket.
func NewWriter(w io.WriteSeeker, enc *alac.Encoder, cfg Config) (*Writer, error) {
	if w == nil {
		return nil, ErrNotSeekable
	}
	if cfg.WindowSize < 1 {
		return nil, fmt.Errorf("%w: %d", ErrWindowSize, cfg.WindowSize)
	}

	log := cfg.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	acfg := enc.Config()
	pad := make([][]int32, acfg.Channels)
	for c := range pad {
		pad[c] = make([]int32, acfg.FrameLength)
	}

	cw := &Writer{
		w:      w,
		enc:    enc,
		cfg:    cfg,
		log:    log.WithField("framing", cfg.Framing.String()),
		window: make([]byte, cfg.WindowSize),
		pad:    pad,
	}

	if err := cw.writeHeader(); err != nil {
		return nil, err
	}
	return cw, nil
}

func (cw *Writer) writeHeader() error {
	acfg := cw.enc.Config()

	var bytesPerPacket uint32
	if cw.cfg.Framing == ConstantFraming {
		bytesPerPacket = cw.enc.PacketSize()
	}

	header := FileHeader{FileType: fileType, FileVersion: fileVersion}
	if err := binary.Write(cw.w, binary.BigEndian, header); err != nil {
		return fmt.Errorf("writing file header: %w", err)
	}

	desc := AudioFormat{
		SampleRate:        float64(acfg.SampleRate),
		FormatID:          formatALAC,
		BytesPerPacket:    bytesPerPacket,
		FramesPerPacket:   acfg.FrameLength,
		ChannelsPerPacket: uint32(acfg.Channels),
		BitsPerChannel:    uint32(acfg.BitDepth),
	}
	if err := writeChunk(cw.w, ChunkAudioDescription, audioFormatSize, desc); err != nil {
		return fmt.Errorf("writing desc chunk: %w", err)
	}

	layout := ChannelLayout{ChannelLayoutTag: layoutTag(int(acfg.Channels))}
	if err := writeChunk(cw.w, ChunkChannelLayout, channelLayoutSize, layout); err != nil {
		return fmt.Errorf("writing chan chunk: %w", err)
	}

	if err := writeChunk(cw.w, ChunkMagicCookie, int64(alac.CookieSize()), nil); err != nil {
		return fmt.Errorf("writing kuki chunk: %w", err)
	}
	if _, err := cw.drain(cw.enc.Cookie); err != nil {
		return fmt.Errorf("writing kuki chunk: %w", err)
	}

	// the size is patched by Close
	if err := writeChunk(cw.w, ChunkAudioData, -1, nil); err != nil {
		return fmt.Errorf("writing data chunk: %w", err)
	}
	end, err := cw.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotSeekable, err)
	}
	cw.dataSizeAt = end - 8

	if err := binary.Write(cw.w, binary.BigEndian, uint32(0)); err != nil {
		return fmt.Errorf("writing edit count: %w", err)
	}

	cw.log.WithFields(logrus.Fields{
		"sample_rate":      acfg.SampleRate,
		"channels":         acfg.Channels,
		"bit_depth":        acfg.BitDepth,
		"frame_length":     acfg.FrameLength,
		"bytes_per_packet": bytesPerPacket,
	}).Debug("wrote caf header")

	return nil
}

// drain runs one resumable encoder operation through the window until it
// reports completion, writing every filled part.
func (cw *Writer) drain(step func([]byte) (bool, int)) (int64, error) {
	var total int64
	for {
		more, n := step(cw.window)
		if n > 0 {
			if _, err := cw.w.Write(cw.window[:n]); err != nil {
				return total, err
			}
			total += int64(n)
		}
		if !more {
			return total, nil
		}
	}
}

// WritePacket encodes frames frames of block, one slice per channel, as a
// single packet. Only the last packet of a stream may hold fewer than
// FrameLength frames.
func (cw *Writer) WritePacket(frames int, block [][]int32) error {
	if cw.closed {
		return ErrClosed
	}

	frameLength := int(cw.enc.Config().FrameLength)
	if frames < 1 || frames > frameLength || cw.short {
		return fmt.Errorf("%w: %d", ErrFrameCount, frames)
	}

	samples := block
	encoded := uint32(frames)
	if frames < frameLength {
		cw.short = true
		if cw.cfg.Framing == ConstantFraming {
			for c := range cw.pad {
				copy(cw.pad[c], block[c][:frames])
				clear(cw.pad[c][frames:])
			}
			samples = cw.pad
			encoded = uint32(frameLength)
		}
	}

	n, err := cw.drain(func(dst []byte) (bool, int) {
		return cw.enc.Packet(dst, encoded, samples)
	})
	if err != nil {
		return fmt.Errorf("writing packet %d: %w", cw.packets, err)
	}

	cw.dataBytes += n
	cw.packets++
	cw.validFrames += int64(frames)
	cw.lastFrames = uint32(frames)
	if cw.cfg.Framing == VariableFraming {
		cw.sizes = append(cw.sizes, uint64(n))
	}

	cw.log.WithFields(logrus.Fields{
		"packet": cw.packets - 1,
		"frames": frames,
		"bytes":  n,
	}).Trace("wrote packet")

	return nil
}

// Remainder is the number of padding frames in the final packet.
func (cw *Writer) Remainder() uint32 {
	if cw.cfg.Framing != ConstantFraming || cw.packets == 0 {
		return 0
	}
	return cw.enc.Config().FrameLength - cw.lastFrames
}

func (cw *Writer) Packets() int64     { return cw.packets }
func (cw *Writer) ValidFrames() int64 { return cw.validFrames }
func (cw *Writer) DataBytes() int64   { return cw.dataBytes }

// Close appends the packet table and patches the data chunk size. It does
// not close the underlying writer.
func (cw *Writer) Close() error {
	if cw.closed {
		return ErrClosed
	}
	cw.closed = true

	table := PacketTableHeader{
		NumberValidFrames: cw.validFrames,
		RemainderFrames:   int32(cw.Remainder()),
	}
	size := int64(packetTableHeaderSize)
	if cw.cfg.Framing == VariableFraming {
		table.NumberPackets = cw.packets
		for _, s := range cw.sizes {
			size += intSize(s)
		}
	}

	if err := writeChunk(cw.w, ChunkPacketTable, size, table); err != nil {
		return fmt.Errorf("writing pakt chunk: %w", err)
	}
	for _, s := range cw.sizes {
		if err := encodeInt(cw.w, s); err != nil {
			return fmt.Errorf("writing pakt chunk: %w", err)
		}
	}

	end, err := cw.w.Seek(0, io.SeekCurrent)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotSeekable, err)
	}
	if _, err := cw.w.Seek(cw.dataSizeAt, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", ErrNotSeekable, err)
	}
	if err := binary.Write(cw.w, binary.BigEndian, cw.dataBytes+editCountSize); err != nil {
		return fmt.Errorf("patching data chunk size: %w", err)
	}
	if _, err := cw.w.Seek(end, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %w", ErrNotSeekable, err)
	}

	cw.log.WithFields(logrus.Fields{
		"packets":      cw.packets,
		"valid_frames": cw.validFrames,
		"remainder":    table.RemainderFrames,
		"data_bytes":   cw.dataBytes,
	}).Debug("finished caf file")

	return nil
}
