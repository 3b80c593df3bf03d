package graph

import (
	"fmt"
	"reflect"
	"sort"
)

// Contract describes the inputs a node consumes. The host fills in the tags
// that are connected; the node declares the value type it expects on each tag
// it uses.
type Contract struct {
	connected map[string]bool
	types     map[string]reflect.Type
}

// NewContract creates a contract for a node whose inputs are connected on the
// given tags.
func NewContract(tags ...string) *Contract {
	c := &Contract{
		connected: make(map[string]bool),
		types:     make(map[string]reflect.Type),
	}
	for _, t := range tags {
		c.connected[t] = true
	}
	return c
}

// HasInput reports whether tag is connected.
func (c *Contract) HasInput(tag string) bool {
	return c.connected[tag]
}

// SetInput declares that packets on tag hold values of the same type as
// sample. Pass a typed nil pointer, e.g. (*frame.ImageFrame)(nil).
func (c *Contract) SetInput(tag string, sample interface{}) {
	c.types[tag] = reflect.TypeOf(sample)
}

// InputType returns the declared type for tag, or nil if undeclared.
func (c *Contract) InputType(tag string) reflect.Type {
	return c.types[tag]
}

// Tags returns the connected tags in sorted order.
func (c *Contract) Tags() []string {
	tags := make([]string, 0, len(c.connected))
	for t := range c.connected {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Check verifies that every packet in s has the type declared for its tag and
// that it arrives on a connected tag.
func (c *Contract) Check(s Step) error {
	for tag, p := range s.Inputs {
		if !c.connected[tag] {
			return fmt.Errorf("%w: packet on unconnected tag %q", ErrTypeMismatch, tag)
		}
		want := c.types[tag]
		if want == nil || p.IsEmpty() {
			continue
		}
		if got := reflect.TypeOf(p.Value); got != want {
			return fmt.Errorf("%w: tag %q expects %v, got %v", ErrTypeMismatch, tag, want, got)
		}
	}
	return nil
}
