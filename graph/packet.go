package graph

// Packet is a value travelling on a stream together with its timestamp. The
// value is owned by the producer; consumers must not retain it past the step
// that delivered it.
type Packet struct {
	Value     interface{}
	Timestamp Timestamp
}

// MakePacket wraps v at timestamp ts.
func MakePacket(v interface{}, ts Timestamp) Packet {
	return Packet{Value: v, Timestamp: ts}
}

// IsEmpty reports whether the packet carries no value.
func (p Packet) IsEmpty() bool {
	return p.Value == nil
}

// Step is one invocation of a node: the input timestamp and the packets
// arriving on each tag at that timestamp. Tags without a packet are absent.
type Step struct {
	Timestamp Timestamp
	Inputs    map[string]Packet
}

// NewStep builds a Step carrying a single packet on tag.
func NewStep(ts Timestamp, tag string, v interface{}) Step {
	return Step{
		Timestamp: ts,
		Inputs:    map[string]Packet{tag: MakePacket(v, ts)},
	}
}
