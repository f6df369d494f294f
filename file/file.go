package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	sent "github.com/revelaction/relbatch/sentence"
)

const (
	DataDir  = "./dataset/tacred/json/"
	VocabDir = "./dataset/vocab/"
)

// ReadPartition reads a partition JSON array from the given path and
// validates every record.
func ReadPartition(path string) (sent.Partition, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("IO error: %w", err)
	}

	return DecodePartition(f)
}

// DecodePartition unmarshals a JSON array of records and validates each of
// them. The returned SchemaError carries the index of the first bad record.
func DecodePartition(data []byte) (sent.Partition, error) {
	var p sent.Partition
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("JSON decoding error: %w", err)
	}

	for i, r := range p {
		if err := r.Validate(); err != nil {
			var se *sent.SchemaError
			if errors.As(err, &se) {
				se.Index = i
			}
			return nil, err
		}
	}

	return p, nil
}
