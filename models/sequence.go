// models/sequence.go
package models

// SequenceCounter stores the last issued value for a named monotonic
// counter. Counters are created lazily on first allocation and never
// deleted; the only mutation is an atomic increment-and-return at the
// storage layer.
type SequenceCounter struct {
	Key   string `bson:"_id" json:"key"`
	Value int64  `bson:"value" json:"value"`
}
