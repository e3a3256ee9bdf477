package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// knownFields are the json keys owned by Record; everything else found in
// a unit is preserved in Record.Extra.
var knownFields = []string{
	"transaction_id",
	"external_id",
	"amount",
	"status",
	"method",
	"created_at",
	"updated_at",
	"approved_at",
	"pix_payload",
	"customer",
}

// EncodeRecord serializes a record to one self-contained unit. String
// fields survive byte-for-byte (no HTML escaping) and unknown fields
// captured at decode time are re-emitted.
func EncodeRecord(r *Record) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil record", ErrMalformedRecord)
	}
	if r.TransactionID == "" && r.ExternalID == "" {
		return nil, fmt.Errorf("%w: record carries neither identifier", ErrMalformedRecord)
	}

	type plain Record
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode((*plain)(r)); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	unit := bytes.TrimRight(buf.Bytes(), "\n")
	if len(r.Extra) == 0 {
		return unit, nil
	}

	// Merge preserved unknown fields back in. Known fields win.
	var m map[string]json.RawMessage
	if err := json.Unmarshal(unit, &m); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	for k, v := range r.Extra {
		if _, ok := m[k]; !ok {
			m[k] = v
		}
	}
	buf.Reset()
	if err := enc.Encode(m); err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// DecodeRecord parses one unit. It never panics on truncated or garbled
// input; failures are reported as ErrMalformedRecord.
func DecodeRecord(unit []byte) (*Record, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(unit, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	type plain Record
	var r plain
	if err := json.Unmarshal(unit, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	for _, k := range knownFields {
		delete(m, k)
	}
	if len(m) > 0 {
		r.Extra = m
	}

	rec := Record(r)
	return &rec, nil
}
