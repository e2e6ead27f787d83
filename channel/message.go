package channel

// A Message is one frame on a simulated channel.
type Message struct {
	ID        string
	Payload   []byte
	Length    uint32
	Timestamp uint64
}

// CopyTo copies the payload into dst and returns the number of bytes
// copied.
func (m Message) CopyTo(dst []byte) int {
	return copy(dst, m.Payload[:m.Length])
}

func (m Message) clone() Message {
	payload := make([]byte, len(m.Payload))
	copy(payload, m.Payload)
	m.Payload = payload

	return m
}
