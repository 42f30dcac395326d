package core

import (
	"encoding/json"
	"io"
)

// MarshalRecords pretty-prints records as JSON for humans or pipelines.
func MarshalRecords(w io.Writer, recs []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

// UnmarshalRecords decodes records JSON, useful for ingestion tests.
func UnmarshalRecords(r io.Reader) ([]Record, error) {
	var recs []Record
	if err := json.NewDecoder(r).Decode(&recs); err != nil {
		return nil, err
	}
	return recs, nil
}
