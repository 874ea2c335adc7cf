package model

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// GenerateRequest is the inbound payload for requisition generation.
// Ids are accepted as JSON numbers or numeric strings and coerced before
// validation against the preloaded id sets.
type GenerateRequest struct {
	PatientID interface{} `json:"patient_id" binding:"required"`
	DoctorID  interface{} `json:"doctor_id" binding:"required"`
	Inputs    []string    `json:"inputs"`
}

// CoerceID converts a bound JSON value into an integer id.
func CoerceID(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		if n != float64(int64(n)) {
			return 0, fmt.Errorf("id %v is not an integer", n)
		}
		return int64(n), nil
	case string:
		id, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("id %q is not an integer", n)
		}
		return id, nil
	case json.Number:
		id, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("id %q is not an integer", n.String())
		}
		return id, nil
	default:
		return 0, fmt.Errorf("id %v is not an integer", v)
	}
}

// ValidIDs holds the preloaded sets of known patient and doctor ids.
type ValidIDs struct {
	Patients []int64 `json:"patients"`
	Doctors  []int64 `json:"doctors"`
}

// IDSet supports membership tests over a loaded id list.
type IDSet map[int64]struct{}

func NewIDSet(ids []int64) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s IDSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}
