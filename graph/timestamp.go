package graph

import (
	"math"
	"strconv"
)

// Timestamp is a packet time in microseconds. The extreme values of the range
// are reserved for sentinels that mark positions outside of the data stream.
type Timestamp int64

const (
	Unset     Timestamp = math.MinInt64
	Unstarted Timestamp = math.MinInt64 + 1
	// PreStream is delivered once, before any data, carrying stream-level
	// setup such as a video header.
	PreStream Timestamp = math.MinInt64 + 2
	Min       Timestamp = math.MinInt64 + 3
	Max       Timestamp = math.MaxInt64 - 2
	// PostStream is delivered once, after all data.
	PostStream Timestamp = math.MaxInt64 - 1
	Done       Timestamp = math.MaxInt64
)

var sentinelNames = map[Timestamp]string{
	Unset:      "Unset",
	Unstarted:  "Unstarted",
	PreStream:  "PreStream",
	Min:        "Min",
	Max:        "Max",
	PostStream: "PostStream",
	Done:       "Done",
}

// IsSpecial reports whether t is one of the sentinels rather than a data time.
func (t Timestamp) IsSpecial() bool {
	_, ok := sentinelNames[t]
	return ok
}

// IsAllowedInStream reports whether a packet may carry t. Data times in
// [Min, Max] and the PreStream and PostStream markers qualify.
func (t Timestamp) IsAllowedInStream() bool {
	return (t >= Min && t <= Max) || t == PreStream || t == PostStream
}

func (t Timestamp) String() string {
	if name, ok := sentinelNames[t]; ok {
		return "Timestamp::" + name
	}
	return strconv.FormatInt(int64(t), 10)
}

// Microseconds converts a duration expressed in microseconds to a Timestamp.
func Microseconds(us int64) Timestamp {
	return Timestamp(us)
}
