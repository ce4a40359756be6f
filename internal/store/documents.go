package store

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/talent-hub/internal/types"
)

// The SQL backends keep every collection in one documents table keyed by
// (collection, doc_key), mirroring the key/value layout of the query service.

func encodeCandidate(c types.Candidate) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode candidate: %w", err)
	}
	return string(payload), nil
}

// decodeDocument keeps numbers as json.Number so 64-bit IDs survive the round trip.
func decodeDocument(raw []byte) (Record, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()

	var record Record
	if err := decoder.Decode(&record); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	return record, nil
}

func encodeRecord(record Record) (string, error) {
	payload, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	return string(payload), nil
}
