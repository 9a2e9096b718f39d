package utils

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexID is a document id that accepts either a JSON number or a numeric string.
type FlexID uint

func (f *FlexID) UnmarshalJSON(data []byte) error {
	var n uint
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexID(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return f.UnmarshalText([]byte(s))
	}

	return fmt.Errorf("FlexID: expected number or string")
}

// UnmarshalText lets form decoding fill a FlexID from a field value.
func (f *FlexID) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("FlexID: invalid id %q: %w", s, err)
	}
	*f = FlexID(v)
	return nil
}

func (f FlexID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uint(f))
}

func (f FlexID) Uint() uint {
	return uint(f)
}

// ParseID converts a path parameter into a document id, rejecting malformed
// input with a validation error before the store is queried.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, Validation("Invalid id")
	}
	return uint(id), nil
}

// ParseStoreID converts a path parameter into a document id. Malformed input
// surfaces as a server error, the way a store driver would reject it.
func ParseStoreID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, Server("Internal Server Error", fmt.Errorf("invalid id %q: %w", raw, err))
	}
	return uint(id), nil
}

// FlexString is a text field that also accepts a JSON number, which is
// stored in its decimal form.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(strings.TrimSpace(s))
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("FlexString: expected string or number")
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string {
	return string(f)
}
