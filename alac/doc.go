// SPDX-License-Identifier: EPL-2.0

// Package alac writes Apple Lossless (ALAC) magic cookies and packets
// without compressing anything.
//
// Every channel of every packet is stored in escape mode: a short element
// header followed by the samples verbatim, BitDepth bits each. The result
// is a valid ALAC stream that any decoder can play, at roughly the size of
// the raw PCM.
//
// # Incremental Output
//
// The Encoder never allocates output. Each call receives a byte window,
// fills as much of it as it can and reports whether the current unit
// (cookie or packet) needs more calls:
//
//	enc, _ := alac.New(alac.DefaultConfig())
//	buf := make([]byte, 512)
//	for {
//	    more, n := enc.Cookie(buf)
//	    out.Write(buf[:n])
//	    if !more {
//	        break
//	    }
//	}
//
// Windows may be as small as one byte. Pending bits are kept inside the
// Encoder between calls, so any sequence of window sizes produces the same
// bytes as a single large window.
//
// # Packets
//
// Packet takes one slice of samples per channel. Samples are right-justified
// two's complement values; bits above BitDepth are discarded. The number of
// frames must equal Config.FrameLength for every packet except, optionally,
// the last one:
//
//	samples := [][]int32{left, right}
//	for {
//	    more, n := enc.Packet(buf, uint32(len(left)), samples)
//	    out.Write(buf[:n])
//	    if !more {
//	        break
//	    }
//	}
//
// The arguments must stay the same until Packet reports completion.
//
// # Sizes
//
// PacketSize returns the exact size of a full packet and MaxPacketSize an
// upper bound that also covers a short final packet. Both depend only on
// the Config. CookieSize is always 24.
//
// An Encoder is not safe for concurrent use.
package alac
