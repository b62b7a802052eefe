// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"io"
)

var errNegativeOffset = errors.New("audiotest: negative offset")

// WriteSeeker is an in-memory io.WriteSeeker. Writing past the end grows
// the buffer, seeking past it and writing leaves a zero gap.
type WriteSeeker struct {
	buf []byte
	pos int64

	// FailSeek makes every Seek fail, for sinks like pipes.
	FailSeek bool
}

func (ws *WriteSeeker) Write(p []byte) (int, error) {
	end := ws.pos + int64(len(p))
	if end > int64(len(ws.buf)) {
		grown := make([]byte, end)
		copy(grown, ws.buf)
		ws.buf = grown
	}
	copy(ws.buf[ws.pos:], p)
	ws.pos = end
	return len(p), nil
}

func (ws *WriteSeeker) Seek(offset int64, whence int) (int64, error) {
	if ws.FailSeek {
		return 0, errors.New("audiotest: illegal seek")
	}

	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = ws.pos + offset
	case io.SeekEnd:
		abs = int64(len(ws.buf)) + offset
	default:
		return 0, errors.New("audiotest: invalid whence")
	}
	if abs < 0 {
		return 0, errNegativeOffset
	}
	ws.pos = abs
	return abs, nil
}

// Bytes returns everything written so far.
func (ws *WriteSeeker) Bytes() []byte { return ws.buf }
