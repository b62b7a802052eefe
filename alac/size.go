// SPDX-License-Identifier: EPL-2.0

package alac

const (
	cookieSize = 24

	// Channel element header: chanmap(3) + tag(4) + header bits(12) +
	// sample count flag(1) + extra bits(2) + escape(1).
	channelHeaderBits = 23

	endTagBits       = 3
	explicitSizeBits = 32
)

// CookieSize returns the size of the magic cookie in bytes.
func CookieSize() uint32 {
	return cookieSize
}

func packetBits(cfg Config) uint64 {
	bits := uint64(channelHeaderBits) + uint64(cfg.BitDepth)*uint64(cfg.FrameLength)
	bits *= uint64(cfg.Channels)
	return bits + endTagBits
}

// maxPacketBits is the bit count behind MaxPacketSize.
func maxPacketBits(cfg Config) uint64 {
	bits := packetBits(cfg)
	short := bits - uint64(cfg.BitDepth) - uint64(cfg.Channels) + explicitSizeBits

	return max(bits, short)
}

// bitsToBytes rounds up. Validate guarantees the result fits a uint32.
func bitsToBytes(bits uint64) uint32 {
	return uint32((bits + 7) / 8)
}

// PacketSize returns the size in bytes of a packet holding cfg.FrameLength
// frames.
func PacketSize(cfg Config) uint32 {
	return bitsToBytes(packetBits(cfg))
}

// MaxPacketSize returns the bound written to the cookie's max frame bytes
// field. It assumes the worst case is a final packet one frame short, which
// carries the 32-bit explicit size. This is an approximation kept for
// compatibility with existing streams, not an exact worst case.
func MaxPacketSize(cfg Config) uint32 {
	return bitsToBytes(maxPacketBits(cfg))
}
