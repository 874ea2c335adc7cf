package classifier

import (
	"fmt"

	"github.com/reqscribe/requisition-api/internal/model"
)

// MaxOverflowSlots is the number of generic "other test" lines on the form.
const MaxOverflowSlots = 11

// Overflow assigns unclassified lines to the form's other-test slots in
// arrival order. Once the slots run out, further lines are dropped; the
// form simply has nowhere to put them.
type Overflow struct {
	cfg  *model.FieldConfig
	used int
}

func NewOverflow(cfg *model.FieldConfig) *Overflow {
	return &Overflow{cfg: cfg}
}

// Assign places line into the next free slot and returns the fragment to
// merge. A nil fragment with a nil error means the slots are exhausted.
func (o *Overflow) Assign(line string) (model.FieldMap, error) {
	if o.used >= MaxOverflowSlots {
		return nil, nil
	}
	o.used++

	spec, err := o.cfg.Spec(fmt.Sprintf("other_tests%d", o.used))
	if err != nil {
		return nil, err
	}
	return model.FieldMap{spec.Xref: line}, nil
}

// Used reports how many slots have been consumed.
func (o *Overflow) Used() int {
	return o.used
}
