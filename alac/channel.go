// SPDX-License-Identifier: EPL-2.0

package alac

type channelState uint8

const (
	channelStart channelState = iota
	channelChanMap
	channelTag
	channelHeader
	channelSampleCount
	channelExtraBits
	channelEscape
	channelSize
	channelData
)

// elemSCE is the single channel element id; every channel, stereo
// included, is written as its own SCE.
const elemSCE = 0

type channelProgress struct {
	state channelState
	frame uint32
}

// encodeChannel writes the current channel's element into the attached
// window. It returns false once the last sample is queued.
func (e *Encoder) encodeChannel(numFrames uint32, samples []int32) bool {
	ch := &e.ch
	partial := numFrames != e.cfg.FrameLength

	for !e.bw.full() {
		e.bw.flush()

		switch ch.state {
		case channelStart:
			ch.frame = 0
			ch.state = channelChanMap
		case channelChanMap:
			if e.bw.add(3, elemSCE) {
				ch.state = channelTag
			}
		case channelTag:
			if e.bw.add(4, uint64(e.pkt.channel)) {
				ch.state = channelHeader
			}
		case channelHeader:
			if e.bw.add(12, 0) {
				ch.state = channelSampleCount
			}
		case channelSampleCount:
			if e.bw.add(1, boolBit(partial)) {
				ch.state = channelExtraBits
			}
		case channelExtraBits:
			if e.bw.add(2, 0) {
				ch.state = channelEscape
			}
		case channelEscape:
			if e.bw.add(1, 1) {
				ch.state = channelData
				if partial {
					ch.state = channelSize
				}
			}
		case channelSize:
			if e.bw.add(explicitSizeBits, uint64(numFrames)) {
				ch.state = channelData
			}
		case channelData:
			if ch.frame == numFrames {
				ch.state = channelStart
				return false
			}
			if e.bw.add(e.cfg.BitDepth, uint64(uint32(samples[ch.frame]))) {
				ch.frame++
				if ch.frame == numFrames {
					ch.state = channelStart
					return false
				}
			}
		}
	}

	return true
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
