package basicinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqscribe/requisition-api/internal/model"
	"github.com/reqscribe/requisition-api/internal/repository/tablesource"
	"github.com/reqscribe/requisition-api/pkg/errors"
)

var basicFieldNames = []string{
	"doctor_full_name", "doctor_phone", "doctor_full_address",
	"doctor_license_number", "patient_health_no", "patient_birth_year",
	"patient_birth_month", "patient_birth_day", "patient_province",
	"patient_prnumber", "patient_phone", "patient_health_info",
	"patient_last_name", "patient_first_name", "patient_middle_name",
	"patient_sex", "patient_full_address",
}

func testConfig() *model.FieldConfig {
	cfg := &model.FieldConfig{Fields: map[string]model.FieldSpec{}}
	for _, name := range basicFieldNames {
		cfg.Fields[name] = model.FieldSpec{Xref: "f_" + name}
	}
	return cfg
}

func testTables() model.Tables {
	return model.Tables{
		tablesource.TableDoctors: {
			{
				"id": float64(3), "Fname": "Gregory", "Mname": "", "Lname": "House",
				"MobileNumber": "555-0100", "Location2": "Unit 2", "Location1": "221 Baker St",
				"City": "Toronto", "Province": "Ontario", "PostalCode": "M5V 1A1",
				"Medical_LICENSE_Number": "ML-99887",
			},
		},
		tablesource.TablePatients: {
			{
				"id": float64(7), "FName": "Lisa", "MName": "Anne", "LName": "Cuddy",
				"HCardNumber": "1234567890", "date_of_birth": "2023-04-06T00:00:00.00Z",
				"Province": "Quebec", "PRNumber": "PR-12", "MobileNumber": "555-0199",
				"Gender": "Female", "Location": "Apt 9", "Address": "10 Main St",
				"City": "Montreal", "PostalCode": "H2X 1Y4",
			},
		},
		tablesource.TablePathology: {
			{"id": float64(7), "pathology": "chronic fatigue"},
		},
	}
}

func TestAssemble(t *testing.T) {
	svc := NewService(testConfig())

	info, err := svc.Assemble(testTables(), 3, 7)
	require.NoError(t, err)

	// empty middle name still gets both joining spaces
	assert.Equal(t, "Gregory  House", info["f_doctor_full_name"])
	assert.Equal(t, "555-0100", info["f_doctor_phone"])
	assert.Equal(t, "Unit 2 221 Baker St, Toronto, ON, M5V 1A1", info["f_doctor_full_address"])
	assert.Equal(t, "ML-99887", info["f_doctor_license_number"])
	assert.Equal(t, "1234567890", info["f_patient_health_no"])
	assert.Equal(t, "2023", info["f_patient_birth_year"])
	assert.Equal(t, "4", info["f_patient_birth_month"])
	assert.Equal(t, "6", info["f_patient_birth_day"])
	assert.Equal(t, "QC", info["f_patient_province"])
	assert.Equal(t, "PR-12", info["f_patient_prnumber"])
	assert.Equal(t, "555-0199", info["f_patient_phone"])
	assert.Equal(t, "chronic fatigue", info["f_patient_health_info"])
	assert.Equal(t, "Cuddy", info["f_patient_last_name"])
	assert.Equal(t, "F", info["f_patient_sex"])
	assert.Equal(t, "Apt 9 10 Main St, Montreal, QC, H2X 1Y4", info["f_patient_full_address"])
	assert.Len(t, info, len(basicFieldNames))
}

func TestAssembleSentinels(t *testing.T) {
	tables := testTables()
	patient := tables[tablesource.TablePatients][0]
	patient["date_of_birth"] = "not-a-date"
	patient["Province"] = "Atlantis"
	patient["Gender"] = "Unknown"

	info, err := NewService(testConfig()).Assemble(tables, 3, 7)
	require.NoError(t, err, "degraded values must not block assembly")

	assert.Equal(t, "0000", info["f_patient_birth_year"])
	assert.Equal(t, "00", info["f_patient_birth_month"])
	assert.Equal(t, "NA", info["f_patient_province"])
	assert.Equal(t, "Off", info["f_patient_sex"])
}

func TestAssembleUnknownIDs(t *testing.T) {
	svc := NewService(testConfig())

	_, err := svc.Assemble(testTables(), 99, 7)
	require.Error(t, err)
	assert.Equal(t, errors.KindLookup, errors.KindOf(err))

	_, err = svc.Assemble(testTables(), 3, 99)
	require.Error(t, err)
	assert.Equal(t, errors.KindLookup, errors.KindOf(err))
}

func TestAssemblePathologyRowMissing(t *testing.T) {
	tables := testTables()
	tables[tablesource.TablePathology] = model.Table{}

	_, err := NewService(testConfig()).Assemble(tables, 3, 7)
	require.Error(t, err)
	assert.Equal(t, errors.KindProcessing, errors.KindOf(err))
}

func TestAssembleMissingTable(t *testing.T) {
	tables := testTables()
	delete(tables, tablesource.TableDoctors)

	_, err := NewService(testConfig()).Assemble(tables, 3, 7)
	require.Error(t, err)
	assert.Equal(t, errors.KindProcessing, errors.KindOf(err))
}

func TestAssembleMissingFieldConfig(t *testing.T) {
	cfg := testConfig()
	delete(cfg.Fields, "patient_sex")

	_, err := NewService(cfg).Assemble(testTables(), 3, 7)
	require.Error(t, err)
	assert.Equal(t, errors.KindProcessing, errors.KindOf(err))
}
