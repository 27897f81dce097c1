package idgen

import (
	"hash/fnv"
	"sync/atomic"
	"time"
)

const (
	timestampBits = 41
	hashBits      = 10
	sequenceBits  = 12

	hashShift      = sequenceBits
	timestampShift = hashBits + sequenceBits

	sequenceMask  = (1 << sequenceBits) - 1
	hashMask      = (1 << hashBits) - 1
	timestampMask = (1 << timestampBits) - 1

	// epoch base: 2024-01-01 00:00:00 UTC in milliseconds
	epochMillis = int64(1704067200000)
)

// Generator produces message IDs from a snowflake variant: 41 bits of
// timestamp, 10 bits of phone hash, 12 bits of sequence. The phone hash
// spreads IDs of concurrent dispatches; the sequence disambiguates bursts
// within a millisecond.
type Generator struct {
	sequence int64 // accessed atomically
}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateID builds an ID for a dispatch attempt. at is the scheduled
// send time; zero means now.
func (g *Generator) GenerateID(phone string, at time.Time) int64 {
	var timestamp int64
	if at.IsZero() {
		timestamp = time.Now().UnixMilli() - epochMillis
	} else {
		timestamp = at.UnixMilli() - epochMillis
	}

	h := fnv.New32a()
	_, _ = h.Write([]byte(phone))
	hashValue := int64(h.Sum32()) & hashMask

	sequence := (atomic.AddInt64(&g.sequence, 1) - 1) & sequenceMask

	return (timestamp&timestampMask)<<timestampShift |
		hashValue<<hashShift |
		sequence
}

// ExtractTimestamp recovers the embedded send time from an ID.
func ExtractTimestamp(id int64) time.Time {
	timestamp := (id >> timestampShift) & timestampMask
	return time.UnixMilli(timestamp + epochMillis)
}
