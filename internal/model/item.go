package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ItemID identifies an item within a report.
// Input files may use either JSON numbers or strings for identifiers,
// so ItemID accepts both and keeps the textual form.
type ItemID string

// UnmarshalJSON decodes an identifier given as a JSON string or number.
func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ItemID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ItemID(n.String())
	return nil
}

// String returns the identifier as written in reports.
func (id ItemID) String() string {
	return string(id)
}

// Item is a single entry listed in a report.
type Item struct {
	// ID is the item identifier, rendered verbatim in the ID column.
	ID ItemID `json:"id" yaml:"id"`

	// Name is the display name of the item.
	Name string `json:"name" yaml:"name"`

	// Value is the numeric amount used for visibility filtering and totals.
	Value float64 `json:"value" yaml:"value"`

	// Priority is the annotation added during processing for privileged users.
	// It is nil on input and stays nil for non-privileged users.
	Priority *bool `json:"priority,omitempty" yaml:"priority,omitempty"`
}

// WithPriority returns a copy of the item with the priority annotation set.
// The receiver is left untouched.
func (i Item) WithPriority(priority bool) Item {
	p := priority
	i.Priority = &p
	return i
}

// HasPriority reports whether the priority annotation is present.
func (i Item) HasPriority() bool {
	return i.Priority != nil
}

// IsPriority reports whether the item is annotated as priority.
// Items without the annotation are never priority.
func (i Item) IsPriority() bool {
	return i.Priority != nil && *i.Priority
}

// FormatNumber renders a value using the shortest decimal representation,
// so 1500 prints as "1500" and 12.5 as "12.5". Magnitudes of 1e21 and above
// or below 1e-6 switch to exponent form ("1e+21", "1.5e-7"), and infinities
// print as "Infinity".
func FormatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}

	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) || math.IsNaN(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// Go pads the exponent to two digits ("1e-07"); reports use "1e-7".
	mantissa, exp, _ := strings.Cut(strconv.FormatFloat(v, 'e', -1, 64), "e")
	return mantissa + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0")
}
