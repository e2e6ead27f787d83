package channel

import (
	"github.com/sarchlab/momos/idgen"
	"github.com/sarchlab/momos/naming"
	"github.com/sarchlab/momos/timing"
)

// LinkBuilder can build links.
type LinkBuilder struct {
	clock    timing.TimeTeller
	capacity int
}

// WithClock sets the time source that stamps messages.
func (b LinkBuilder) WithClock(clock timing.TimeTeller) LinkBuilder {
	b.clock = clock
	return b
}

// WithCapacity bounds both channels of the link.
func (b LinkBuilder) WithCapacity(capacity int) LinkBuilder {
	b.capacity = capacity
	return b
}

// Build creates a link. The channels are named <name>.TX and <name>.RX and
// share one message ID sequence.
func (b LinkBuilder) Build(name string) *Link {
	naming.NameMustBeValid(name)

	clock := b.clock
	if clock == nil {
		clock = timing.NewWallClock()
	}

	cb := Builder{}.
		WithCapacity(b.capacity).
		WithIDGenerator(idgen.NewSequential())

	return &Link{
		NamedBase: naming.MakeNamedBase(name),
		clock:     clock,
		tx:        cb.Build(name + ".TX"),
		rx:        cb.Build(name + ".RX"),
	}
}

// A Link simulates one hardware interface. The code under test transmits
// into TX and receives from RX; the test provides stimulus into RX and
// collects output from TX.
type Link struct {
	naming.NamedBase

	clock timing.TimeTeller
	tx    *Channel
	rx    *Channel
}

// TX returns the channel written by the code under test.
func (l *Link) TX() *Channel {
	return l.tx
}

// RX returns the channel read by the code under test.
func (l *Link) RX() *Channel {
	return l.rx
}

// Transmit is called by the code under test to send data. It returns the
// timestamp of the transmission.
func (l *Link) Transmit(data []byte) uint64 {
	now := l.clock.Now()
	l.tx.Push(data, uint32(len(data)), now)

	return now
}

// Receive is called by the code under test to poll for data. It returns false
// if nothing has been provided.
func (l *Link) Receive(buf []byte) (length uint32, timestamp uint64, ok bool) {
	return l.rx.PopInto(buf)
}

// Provide queues data for the code under test, stamped with the current time.
func (l *Link) Provide(data []byte) Message {
	return l.rx.Push(data, uint32(len(data)), l.clock.Now())
}

// ProvideAt queues data for the code under test with an explicit timestamp.
func (l *Link) ProvideAt(data []byte, timestamp uint64) Message {
	return l.rx.Push(data, uint32(len(data)), timestamp)
}

// Collect returns the oldest message transmitted by the code under test.
func (l *Link) Collect() (Message, bool) {
	return l.tx.Pop()
}

// CollectAll drains everything transmitted by the code under test, oldest
// first.
func (l *Link) CollectAll() []Message {
	var msgs []Message
	for {
		msg, ok := l.tx.Pop()
		if !ok {
			return msgs
		}

		msgs = append(msgs, msg)
	}
}

// Capture runs an encoder that transmits over the link and takes back the
// frame it sent, so the frame can be replayed as stimulus. It returns false
// if the encoder did not transmit.
func (l *Link) Capture(encode func()) (Message, bool) {
	before := l.tx.Size()

	encode()

	if l.tx.Size() <= before {
		return Message{}, false
	}

	return l.tx.PopLast()
}

// Reset clears both directions of the link.
func (l *Link) Reset() {
	l.tx.Clear()
	l.rx.Clear()
}
