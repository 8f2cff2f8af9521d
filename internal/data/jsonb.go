package data

import (
	"encoding/json"
	"fmt"
)

// marshalJSONB encodes a value for a JSONB column. Nil slices are stored as
// empty arrays so column defaults and Go zero values agree.
func marshalJSONB(v any) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal jsonb: %w", err)
	}
	if string(b) == "null" {
		return []byte("[]"), nil
	}
	return b, nil
}

// unmarshalJSONB decodes a JSONB column into dst, tolerating empty input.
func unmarshalJSONB(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("unmarshal jsonb: %w", err)
	}
	return nil
}
