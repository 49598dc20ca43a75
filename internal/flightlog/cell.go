package flightlog

import (
	"fmt"
	"strings"
	"time"
)

// Cell provides type-safe access to a raw flight log value.
// CSV rows carry strings while the Google Sheets API returns []interface{};
// both are wrapped here so the mapping code never touches interface{} directly.
type Cell struct {
	raw interface{}
}

// NewCell creates a Cell from a raw value
func NewCell(raw interface{}) Cell {
	return Cell{raw: raw}
}

// StringCells wraps a CSV record
func StringCells(record []string) []Cell {
	cells := make([]Cell, len(record))
	for i, v := range record {
		cells[i] = NewCell(v)
	}
	return cells
}

// String returns the cell value as a trimmed string
func (c Cell) String() string {
	if c.raw == nil {
		return ""
	}
	if s, ok := c.raw.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", c.raw))
}

// Bool returns true for boolean true or the string "true" in any case
func (c Cell) Bool() bool {
	if b, ok := c.raw.(bool); ok {
		return b
	}
	return strings.EqualFold(c.String(), "true")
}

// Time returns the parsed timestamp, or nil when empty or unparseable
func (c Cell) Time() *time.Time {
	if t, ok := c.raw.(time.Time); ok {
		if t.IsZero() {
			return nil
		}
		return &t
	}
	t, ok := ParseTimestamp(c.String())
	if !ok {
		return nil
	}
	return &t
}

// IsEmpty returns true if the cell contains nil or an empty string
func (c Cell) IsEmpty() bool {
	return c.String() == ""
}
