package graph

import (
	log "github.com/sirupsen/logrus"
)

// Node is a unit of work driven by the host. The host calls Contract once
// while wiring, then Open, then Process once per input timestamp, then Close.
// Calls are never concurrent for a single node.
type Node interface {
	// Contract declares the inputs the node needs. It fails with ErrSetup
	// if a required tag is not connected.
	Contract(c *Contract) error

	Open(ctx *Context) error
	Process(ctx *Context) error

	// Close releases everything Open acquired. It is called exactly once
	// after a successful Open, whether or not processing failed.
	Close(ctx *Context) error
}

// Context is what a node sees during one callback.
type Context struct {
	name      string
	timestamp Timestamp
	inputs    map[string]Packet
	log       *log.Entry
}

// NewContext builds a context for the node called name. Hosts create one per
// callback; tests may build them directly.
func NewContext(name string, ts Timestamp, inputs map[string]Packet) *Context {
	return &Context{
		name:      name,
		timestamp: ts,
		inputs:    inputs,
		log:       log.WithField("node", name),
	}
}

// Name is the node's name in the graph.
func (c *Context) Name() string {
	return c.name
}

// InputTimestamp is the timestamp of the current step. During Open and Close
// it is Unstarted and Done respectively.
func (c *Context) InputTimestamp() Timestamp {
	return c.timestamp
}

// Input returns the packet on tag, which is empty if nothing arrived.
func (c *Context) Input(tag string) Packet {
	return c.inputs[tag]
}

// Log returns a logger tagged with the node name.
func (c *Context) Log() *log.Entry {
	return c.log
}
