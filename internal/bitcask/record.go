package bitcask

import (
	"encoding/json"

	"github.com/ignitedb/ignite/pkg/errors"
)

// Record is the on-disk representation of one logical entry in a
// segment: a tagged union of Set{key,value} and Remove{key}. Exactly
// one of the two fields is populated; the JSON tag that is present on
// the line identifies the record's kind, mirroring the wire protocol's
// tagged-union shape (see internal/protocol) so both the log format and
// the network format share one encoding convention.
type Record struct {
	Set    *SetRecord    `json:"Set,omitempty"`
	Remove *RemoveRecord `json:"Remove,omitempty"`
}

// SetRecord carries a key/value pair written by set.
type SetRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// RemoveRecord carries the key written by remove.
type RemoveRecord struct {
	Key string `json:"key"`
}

// NewSetRecord builds a Record tagged as Set.
func NewSetRecord(key, value string) Record {
	return Record{Set: &SetRecord{Key: key, Value: value}}
}

// NewRemoveRecord builds a Record tagged as Remove.
func NewRemoveRecord(key string) Record {
	return Record{Remove: &RemoveRecord{Key: key}}
}

// encode serialises the record as a single newline-terminated JSON line.
func (r Record) encode() ([]byte, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return nil, errors.NewSerialisationError(err, "failed to encode record")
	}
	payload = append(payload, '\n')
	return payload, nil
}

// decodeRecord parses a single log line (without its trailing newline)
// into a Record.
func decodeRecord(line []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(line, &rec); err != nil {
		return Record{}, errors.NewSerialisationError(err, "failed to decode record")
	}
	if rec.Set == nil && rec.Remove == nil {
		return Record{}, errors.NewCorruptionError(nil, "record line is neither Set nor Remove")
	}
	return rec, nil
}
