// Package channel simulates a hardware transmit/receive interface with
// ordered, timestamped message queues.
package channel

import (
	"log"

	"github.com/sarchlab/momos/hooking"
	"github.com/sarchlab/momos/idgen"
	"github.com/sarchlab/momos/naming"
)

// HookPosPush marks when a message is pushed into the channel.
var HookPosPush = &hooking.HookPos{Name: "Channel Push"}

// HookPosPop marks when a message is popped from the channel.
var HookPosPop = &hooking.HookPos{Name: "Channel Pop"}

// HookPosClear marks when the channel is cleared. The item is the number of
// messages dropped.
var HookPosClear = &hooking.HookPos{Name: "Channel Clear"}

// Builder can build channels.
type Builder struct {
	capacity    int
	idGenerator idgen.Generator
}

// WithCapacity bounds the channel. Zero, the default, means unbounded.
func (b Builder) WithCapacity(capacity int) Builder {
	b.capacity = capacity
	return b
}

// WithIDGenerator sets the generator of message IDs.
func (b Builder) WithIDGenerator(g idgen.Generator) Builder {
	b.idGenerator = g
	return b
}

// Build builds a new Channel.
func (b Builder) Build(name string) *Channel {
	naming.NameMustBeValid(name)

	if b.capacity < 0 {
		log.Panic("channel capacity must not be negative")
	}

	g := b.idGenerator
	if g == nil {
		g = idgen.NewSequential()
	}

	return &Channel{
		NamedBase:   naming.MakeNamedBase(name),
		capacity:    b.capacity,
		idGenerator: g,
	}
}

// A Channel is a FIFO queue of messages. It stands for one direction of a
// simulated link. Producers push, consumers pop; nothing blocks.
type Channel struct {
	naming.NamedBase
	hooking.HookableBase

	capacity    int
	idGenerator idgen.Generator
	messages    []Message
}

// Capacity returns the bound of the channel, or 0 if unbounded.
func (c *Channel) Capacity() int {
	return c.capacity
}

// CanPush tells if another message fits.
func (c *Channel) CanPush() bool {
	return c.capacity == 0 || len(c.messages) < c.capacity
}

// Push copies the first length bytes of data into a new message at the tail
// of the channel.
func (c *Channel) Push(data []byte, length uint32, timestamp uint64) Message {
	if int(length) > len(data) {
		log.Panicf("channel %s: length %d exceeds data size %d",
			c.Name(), length, len(data))
	}

	if !c.CanPush() {
		log.Panicf("channel %s: overflow", c.Name())
	}

	payload := make([]byte, length)
	copy(payload, data[:length])

	msg := Message{
		ID:        c.idGenerator.Generate(),
		Payload:   payload,
		Length:    length,
		Timestamp: timestamp,
	}
	c.messages = append(c.messages, msg)

	c.notify(HookPosPush, msg.clone())

	return msg.clone()
}

// Pop removes the head message and returns a copy. It returns false if the
// channel is empty.
func (c *Channel) Pop() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}

	msg := c.messages[0]
	c.messages[0] = Message{}
	c.messages = c.messages[1:]

	c.notify(HookPosPop, msg.clone())

	return msg, true
}

// PopInto removes the head message and copies its payload into buf. It
// returns false and leaves buf untouched if the channel is empty. buf must
// be large enough for the payload.
func (c *Channel) PopInto(buf []byte) (length uint32, timestamp uint64, ok bool) {
	head, ok := c.Peek()
	if !ok {
		return 0, 0, false
	}

	if len(buf) < int(head.Length) {
		log.Panicf("channel %s: buffer of %d bytes cannot hold %d bytes",
			c.Name(), len(buf), head.Length)
	}

	msg, _ := c.Pop()
	msg.CopyTo(buf)

	return msg.Length, msg.Timestamp, true
}

// PopLast removes the tail message, the one pushed most recently.
func (c *Channel) PopLast() (Message, bool) {
	n := len(c.messages)
	if n == 0 {
		return Message{}, false
	}

	msg := c.messages[n-1]
	c.messages = c.messages[:n-1]

	c.notify(HookPosPop, msg.clone())

	return msg, true
}

// Peek returns a copy of the head message without removing it.
func (c *Channel) Peek() (Message, bool) {
	if len(c.messages) == 0 {
		return Message{}, false
	}

	return c.messages[0].clone(), true
}

// Available tells if the channel holds any message.
func (c *Channel) Available() bool {
	return len(c.messages) > 0
}

// Size returns the number of queued messages.
func (c *Channel) Size() int {
	return len(c.messages)
}

// Clear drops all queued messages.
func (c *Channel) Clear() {
	dropped := len(c.messages)
	c.messages = nil

	c.notify(HookPosClear, dropped)
}

func (c *Channel) notify(pos *hooking.HookPos, item interface{}) {
	if c.NumHooks() == 0 {
		return
	}

	c.InvokeHook(hooking.HookCtx{
		Domain: c,
		Pos:    pos,
		Item:   item,
	})
}
