package quorumtest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/quorum"
)

var conditionCounter uint64

// NewCondition returns a mocked condition, unique per call.
func NewCondition() quorum.Condition {
	n := atomic.AddUint64(&conditionCounter, 1)
	data := make([]byte, 8)
	binary.BigEndian.PutUint64(data, n)
	return quorum.NewCondition("test", "mock", data)
}

// NewAddress returns the address of a mocked condition, unique per
// call.
func NewAddress() quorum.Address {
	return NewCondition().Address()
}
