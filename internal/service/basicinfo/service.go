// Package basicinfo joins doctor, patient, and patient-health records
// into the fixed set of requisition form fields that do not depend on
// any transcript line.
package basicinfo

import (
	"fmt"

	"github.com/reqscribe/requisition-api/internal/model"
	"github.com/reqscribe/requisition-api/internal/normalize"
	"github.com/reqscribe/requisition-api/internal/repository/tablesource"
	"github.com/reqscribe/requisition-api/pkg/errors"
)

type Service struct {
	cfg *model.FieldConfig
}

func NewService(cfg *model.FieldConfig) *Service {
	return &Service{cfg: cfg}
}

// Assemble produces the basic-info FieldMap for the given ids. It never
// returns a partial map: any missing id or shape mismatch fails the call.
//
// The pathology row is selected by the patient's position in the
// registration table, not by id. The upstream source only guarantees that
// the two tables are stored in matching order.
func (s *Service) Assemble(tables model.Tables, doctorID, patientID int64) (model.FieldMap, error) {
	doctors, ok := tables[tablesource.TableDoctors]
	if !ok {
		return nil, errors.Processing("doctors table missing from fetched tables", nil)
	}
	patients, ok := tables[tablesource.TablePatients]
	if !ok {
		return nil, errors.Processing("patients table missing from fetched tables", nil)
	}
	pathology, ok := tables[tablesource.TablePathology]
	if !ok {
		return nil, errors.Processing("pathology table missing from fetched tables", nil)
	}

	doctorPos, ok := doctors.IndexByID()[doctorID]
	if !ok {
		return nil, errors.Lookup(fmt.Sprintf("doctor %d in %s", doctorID, tablesource.TableDoctors), nil)
	}
	patientPos, ok := patients.IndexByID()[patientID]
	if !ok {
		return nil, errors.Lookup(fmt.Sprintf("patient %d in %s", patientID, tablesource.TablePatients), nil)
	}
	if patientPos >= len(pathology) {
		return nil, errors.Processing(
			fmt.Sprintf("pathology table has no row at position %d for patient %d", patientPos, patientID), nil)
	}

	doctor := doctors[doctorPos]
	patient := patients[patientPos]
	health := pathology[patientPos]

	dob := normalize.ParseDOB(patient.String("date_of_birth"))

	info := model.FieldMap{}
	fields := map[string]string{
		"doctor_full_name": doctor.String("Fname") + " " + doctor.String("Mname") + " " + doctor.String("Lname"),
		"doctor_phone":     doctor.String("MobileNumber"),
		"doctor_full_address": doctor.String("Location2") + " " + doctor.String("Location1") + ", " +
			doctor.String("City") + ", " + normalize.ProvinceAbbrev(doctor.String("Province")) + ", " +
			doctor.String("PostalCode"),
		"doctor_license_number": doctor.String("Medical_LICENSE_Number"),
		"patient_health_no":     patient.String("HCardNumber"),
		"patient_birth_year":    dob.Year,
		"patient_birth_month":   dob.Month,
		"patient_birth_day":     dob.Day,
		"patient_province":      normalize.ProvinceAbbrev(patient.String("Province")),
		"patient_prnumber":      patient.String("PRNumber"),
		"patient_phone":         patient.String("MobileNumber"),
		"patient_health_info":   health.String("pathology"),
		"patient_last_name":     patient.String("LName"),
		"patient_first_name":    patient.String("FName"),
		"patient_middle_name":   patient.String("MName"),
		"patient_sex":           normalize.SexCode(patient.String("Gender")),
		"patient_full_address": patient.String("Location") + " " + patient.String("Address") + ", " +
			patient.String("City") + ", " + normalize.ProvinceAbbrev(patient.String("Province")) + ", " +
			patient.String("PostalCode"),
	}

	for name, value := range fields {
		spec, err := s.cfg.Spec(name)
		if err != nil {
			return nil, err
		}
		info[spec.Xref] = value
	}
	return info, nil
}
