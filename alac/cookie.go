// SPDX-License-Identifier: EPL-2.0

package alac

type cookieState uint8

const (
	cookieStart cookieState = iota
	cookieFrameLength
	cookieCompatibleVersion
	cookieBitDepth
	cookieTuningPB
	cookieTuningMB
	cookieTuningKB
	cookieChannels
	cookieMaxRun
	cookieMaxFrameBytes
	cookieAvgBitRate
	cookieSampleRate
	cookieEnd
)

// Fixed ALACSpecificConfig values. The rice tuning parameters are Apple's
// defaults; a verbatim stream never uses them.
const (
	compatibleVersion = 0
	tuningPB          = 40
	tuningMB          = 10
	tuningKB          = 14
	maxRun            = 255
)

// Cookie writes the 24-byte magic cookie (ALACSpecificConfig) into dst.
//
// It returns true while more calls are needed and the number of bytes
// written. An empty dst is a size query: nothing is written and the result
// is (true, CookieSize()).
func (e *Encoder) Cookie(dst []byte) (bool, int) {
	if len(dst) == 0 {
		return true, cookieSize
	}

	e.bw.attach(dst)
	more := true

	for !e.bw.full() && more {
		e.bw.flush()

		switch e.cookie {
		case cookieStart:
			e.bw.reset()
			e.cookie = cookieFrameLength
		case cookieFrameLength:
			e.cookieField(32, uint64(e.cfg.FrameLength))
		case cookieCompatibleVersion:
			e.cookieField(8, compatibleVersion)
		case cookieBitDepth:
			e.cookieField(8, uint64(e.cfg.BitDepth))
		case cookieTuningPB:
			e.cookieField(8, tuningPB)
		case cookieTuningMB:
			e.cookieField(8, tuningMB)
		case cookieTuningKB:
			e.cookieField(8, tuningKB)
		case cookieChannels:
			e.cookieField(8, uint64(e.cfg.Channels))
		case cookieMaxRun:
			e.cookieField(16, maxRun)
		case cookieMaxFrameBytes:
			e.cookieField(32, uint64(e.MaxPacketSize()))
		case cookieAvgBitRate:
			e.cookieField(32, uint64(e.avgBitRate()))
		case cookieSampleRate:
			e.cookieField(32, uint64(e.cfg.SampleRate))
		case cookieEnd:
			// everything queued has to reach the caller first
			if e.bw.bits == 0 {
				e.cookie = cookieStart
				more = false
			}
		}
	}

	return more, e.bw.detach()
}

// cookieField queues one field and moves to the next state once it fits.
func (e *Encoder) cookieField(bits uint8, v uint64) {
	if e.bw.add(bits, v) {
		e.cookie++
	}
}

// avgBitRate wraps at 32 bits like the cookie field it fills.
func (e *Encoder) avgBitRate() uint32 {
	return e.cfg.SampleRate * uint32(e.cfg.Channels) * uint32(e.cfg.BitDepth)
}
