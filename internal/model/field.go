package model

import (
	"github.com/reqscribe/requisition-api/pkg/errors"
)

// FieldSpec links a symbolic field name to a concrete widget on the
// requisition form. Xref is the widget identifier; OnState is the value
// written when a checkbox-like field is selected.
type FieldSpec struct {
	Xref    string `json:"field_xref"`
	OnState string `json:"on_state"`
}

// FieldConfig is the field-name to FieldSpec mapping loaded once at
// startup and read-only afterwards.
type FieldConfig struct {
	Fields map[string]FieldSpec `json:"fields"`
}

// Spec resolves a symbolic field name. A name missing from the config is
// a configuration gap, surfaced as a processing failure.
func (c *FieldConfig) Spec(name string) (FieldSpec, error) {
	spec, ok := c.Fields[name]
	if !ok {
		return FieldSpec{}, errors.Processing("field "+name+" missing from field config", nil)
	}
	return spec, nil
}

// FieldMap maps widget identifiers to the values to write into them.
type FieldMap map[string]string

// Merge copies other into m, overwriting existing keys (last write wins).
func (m FieldMap) Merge(other FieldMap) {
	for k, v := range other {
		m[k] = v
	}
}
