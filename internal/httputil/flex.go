package httputil

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// FlexString tracks presence and accepts non-string JSON scalars, mirroring
// the API's historical tolerance for numeric and boolean titles:
//   - Present=false: field absent from JSON (don't change on update)
//   - Present=true, Valid=false: value could not be coerced to a string
//   - Present=true, Valid=true: Value holds the (possibly coerced) string
type FlexString struct {
	Present bool
	Valid   bool
	Value   string
}

// UnmarshalJSON implements json.Unmarshaler.
// When this method is called, the field was present in the JSON.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	f.Present = true

	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		f.Valid = true
		f.Value = s
		return nil
	}

	// Numbers and booleans stringify; arrays and objects do not.
	if len(data) > 0 && (data[0] == '{' || data[0] == '[') {
		return nil
	}
	f.Valid = true
	f.Value = string(data)
	return nil
}

// FlexInt64 tracks presence and accepts integers given as numeric strings:
//   - Present=false: field absent from JSON
//   - Present=true, Null=true: field is JSON null
//   - Present=true, Valid=false: value is not parseable as an integer
//   - Present=true, Valid=true: Value holds the integer
type FlexInt64 struct {
	Present bool
	Null    bool
	Valid   bool
	Value   int64
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexInt64) UnmarshalJSON(data []byte) error {
	f.Present = true

	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		f.Null = true
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		// Numeric string form
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil
		}
		f.Valid = true
		f.Value = n
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	f.Valid = true
	f.Value = n
	return nil
}
