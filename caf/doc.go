// SPDX-License-Identifier: EPL-2.0

/*
Package caf writes ALAC packets into Core Audio Format files.

A file is laid out as

	caff header
	desc  stream description
	chan  channel layout (mono or stereo tag)
	kuki  ALAC magic cookie
	data  edit count followed by the packets
	pakt  packet table

The data chunk is written with an unknown size and patched by Close, so
the destination must implement io.WriteSeeker.

# Framing

With ConstantFraming every packet carries FrameLength frames. The last
block is zero padded and the packet table records how many frames to
drop at the end:

	w, err := caf.NewWriter(out, enc, caf.DefaultConfig())
	if err != nil {
		return err
	}
	for {
		n, err := frames.ReadBlock()
		if n > 0 {
			if err := w.WritePacket(n, frames.Block()); err != nil {
				return err
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}
	return w.Close()

VariableFraming writes the final packet at its real length instead and
stores every packet size in the packet table.

Parse reads a file back, which is mostly useful in tests.
*/
package caf
