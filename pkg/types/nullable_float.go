package types

import (
	"bytes"
	"encoding/json"
)

// NullFloat is a float64 that may be absent. Absent values marshal to JSON
// null so dashboard consumers can render N/A instead of a misleading zero.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// FloatFrom returns a present NullFloat.
func FloatFrom(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// Ptr returns nil for absent values, otherwise a pointer to the value.
func (n NullFloat) Ptr() *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

// MarshalJSON implements json.Marshaler.
func (n NullFloat) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Float64)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullFloat) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		n.Valid = false
		n.Float64 = 0
		return nil
	}
	var parsed float64
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	n.Float64 = parsed
	n.Valid = true
	return nil
}
