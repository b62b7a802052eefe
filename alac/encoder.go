// SPDX-License-Identifier: EPL-2.0

package alac

// Encoder holds the configuration of one stream together with the
// progress of whatever cookie or packet is being written.
type Encoder struct {
	cfg Config
	bw  bitWriter

	cookie cookieState
	ch     channelProgress
	pkt    packetProgress
}

// New returns an Encoder for cfg, or an error wrapping ErrConfig.
func New(cfg Config) (*Encoder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Encoder{cfg: cfg}, nil
}

func (e *Encoder) Config() Config { return e.cfg }

// PacketSize returns the size in bytes of a full packet.
func (e *Encoder) PacketSize() uint32 { return PacketSize(e.cfg) }

// MaxPacketSize returns the largest packet size the cookie advertises.
func (e *Encoder) MaxPacketSize() uint32 { return MaxPacketSize(e.cfg) }

// Reset abandons any partially written cookie or packet and discards
// pending bits.
func (e *Encoder) Reset() {
	e.bw.reset()
	e.cookie = cookieStart
	e.ch = channelProgress{}
	e.pkt = packetProgress{}
}
