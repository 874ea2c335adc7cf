package model

import "fmt"

// Record is one row fetched from a remote table. Attributes are opaque
// beyond the specific keys read by the assembler.
type Record map[string]interface{}

// String returns the attribute as a string, rendering non-string scalars
// the way the upstream source would display them. Missing keys yield "".
func (r Record) String(key string) string {
	v, ok := r[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		// JSON numbers decode as float64; ids and phone numbers are integral
		if s == float64(int64(s)) {
			return fmt.Sprintf("%d", int64(s))
		}
		return fmt.Sprintf("%v", s)
	default:
		return fmt.Sprintf("%v", s)
	}
}

// ID returns the record's numeric id, if present.
func (r Record) ID() (int64, bool) {
	v, ok := r["id"]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// Table is an ordered collection of records.
type Table []Record

// IndexByID maps record ids to their position within the table.
// Duplicate ids keep the last occurrence; records without an id are skipped.
func (t Table) IndexByID() map[int64]int {
	index := make(map[int64]int, len(t))
	for pos, record := range t {
		if id, ok := record.ID(); ok {
			index[id] = pos
		}
	}
	return index
}

// Tables holds the named collections fetched for one request.
type Tables map[string]Table
