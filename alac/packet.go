// SPDX-License-Identifier: EPL-2.0

package alac

type packetState uint8

const (
	packetStart packetState = iota
	packetChannel
	packetEnd
	packetFlush
)

// elemEND terminates the element list of a packet.
const elemEND = 7

type packetProgress struct {
	state   packetState
	channel uint8
}

// Packet writes one ALAC packet into dst.
//
// samples holds one slice per channel, each at least numFrames long.
// numFrames must be Config.FrameLength except for the final packet of a
// stream, which may be shorter. Packet returns true while more calls are
// needed and the number of bytes written. The caller must pass the same
// numFrames and samples until Packet returns false.
func (e *Encoder) Packet(dst []byte, numFrames uint32, samples [][]int32) (bool, int) {
	e.bw.attach(dst)
	more := true

	for !e.bw.full() && more {
		e.bw.flush()

		switch e.pkt.state {
		case packetStart:
			e.pkt.state = packetChannel
			e.pkt.channel = 0
			e.ch.state = channelStart
		case packetChannel:
			if !e.encodeChannel(numFrames, samples[e.pkt.channel]) {
				e.pkt.channel++
				if e.pkt.channel == e.cfg.Channels {
					e.pkt.state = packetEnd
				}
			}
		case packetEnd:
			if e.bw.add(endTagBits, elemEND) {
				e.bw.align()
				e.pkt.state = packetFlush
			}
		case packetFlush:
			// the padding byte may still be queued
			if e.bw.bits == 0 {
				e.pkt.state = packetStart
				more = false
			}
		}
	}

	return more, e.bw.detach()
}
