package requisition

import (
	"context"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reqscribe/requisition-api/internal/model"
	"github.com/reqscribe/requisition-api/internal/repository/tablesource"
	"github.com/reqscribe/requisition-api/internal/service/basicinfo"
	"github.com/reqscribe/requisition-api/internal/service/classifier"
	"github.com/reqscribe/requisition-api/pkg/errors"
	"github.com/reqscribe/requisition-api/pkg/metrics"
)

type fakeFetcher struct {
	tables model.Tables
	err    error
}

func (f *fakeFetcher) FetchTables(_ context.Context, _ []string) (model.Tables, error) {
	return f.tables, f.err
}

type fakeFiller struct {
	got model.FieldMap
	err error
}

func (f *fakeFiller) Fill(fields model.FieldMap) (string, error) {
	f.got = fields
	if f.err != nil {
		return "", f.err
	}
	return "out/requisition_form_filled_1.pdf", nil
}

func testConfig() *model.FieldConfig {
	cfg := &model.FieldConfig{Fields: map[string]model.FieldSpec{}}
	names := []string{
		"doctor_full_name", "doctor_phone", "doctor_full_address",
		"doctor_license_number", "patient_health_no", "patient_birth_year",
		"patient_birth_month", "patient_birth_day", "patient_province",
		"patient_prnumber", "patient_phone", "patient_health_info",
		"patient_last_name", "patient_first_name", "patient_middle_name",
		"patient_sex", "patient_full_address",
		"glucose", "glucose_test_random", "glucose_test_fasting", "cbc",
	}
	for _, name := range names {
		cfg.Fields[name] = model.FieldSpec{Xref: "f_" + name, OnState: "On"}
	}
	for i := 1; i <= classifier.MaxOverflowSlots; i++ {
		name := fmt.Sprintf("other_tests%d", i)
		cfg.Fields[name] = model.FieldSpec{Xref: "f_" + name}
	}
	return cfg
}

func testTables() model.Tables {
	return model.Tables{
		tablesource.TableDoctors: {
			{"id": float64(3), "Fname": "Gregory", "Mname": "B", "Lname": "House",
				"MobileNumber": "555-0100", "Province": "Ontario"},
		},
		tablesource.TablePatients: {
			{"id": float64(7), "FName": "Lisa", "MName": "", "LName": "Cuddy",
				"MobileNumber": "555-0199", "Province": "ON", "Gender": "Female",
				"date_of_birth": "1998-12-25T00:00:00.00Z"},
		},
		tablesource.TablePathology: {
			{"id": float64(7), "pathology": "none noted"},
		},
	}
}

func newTestService(fetcher TableFetcher, filler FormFiller) *Service {
	cfg := testConfig()
	return NewService(
		fetcher,
		[]string{tablesource.TableDoctors, tablesource.TablePatients, tablesource.TablePathology},
		basicinfo.NewService(cfg),
		classifier.New(cfg),
		filler,
		cfg,
		metrics.New(prometheus.NewRegistry()),
	)
}

func TestGenerate(t *testing.T) {
	filler := &fakeFiller{}
	svc := newTestService(&fakeFetcher{tables: testTables()}, filler)

	path, err := svc.Generate(context.Background(), 3, 7, []string{
		"random glucose test",
		"cbc",
		"completely unknown panel",
	})
	require.NoError(t, err)
	assert.Equal(t, "out/requisition_form_filled_1.pdf", path)

	// basic info and classified entries land in one map
	assert.Equal(t, "Gregory B House", filler.got["f_doctor_full_name"])
	assert.Equal(t, "On", filler.got["f_glucose"])
	assert.Equal(t, "On", filler.got["f_glucose_test_random"])
	assert.Equal(t, "On", filler.got["f_cbc"])
	assert.Equal(t, "completely unknown panel", filler.got["f_other_tests1"])
}

func TestGenerateOverflowDropsAfterElevenLines(t *testing.T) {
	filler := &fakeFiller{}
	svc := newTestService(&fakeFetcher{tables: testTables()}, filler)

	lines := make([]string, 12)
	for i := range lines {
		lines[i] = fmt.Sprintf("unknown panel %d", i+1)
	}

	_, err := svc.Generate(context.Background(), 3, 7, lines)
	require.NoError(t, err, "overflow exhaustion must not fail the request")

	for i := 1; i <= classifier.MaxOverflowSlots; i++ {
		assert.Equal(t, fmt.Sprintf("unknown panel %d", i),
			filler.got[fmt.Sprintf("f_other_tests%d", i)], "slot %d keeps arrival order", i)
	}
	for xref, value := range filler.got {
		assert.NotEqual(t, "unknown panel 12", value, "dropped line leaked into %s", xref)
	}
}

func TestGenerateFetchFailureAborts(t *testing.T) {
	filler := &fakeFiller{}
	svc := newTestService(&fakeFetcher{err: errors.Transport("source unreachable", nil)}, filler)

	_, err := svc.Generate(context.Background(), 3, 7, []string{"cbc"})
	require.Error(t, err)
	assert.Equal(t, errors.KindTransport, errors.KindOf(err))
	assert.Nil(t, filler.got, "no document may be produced after a fetch failure")
}

func TestGenerateLookupFailure(t *testing.T) {
	svc := newTestService(&fakeFetcher{tables: testTables()}, &fakeFiller{})

	_, err := svc.Generate(context.Background(), 42, 7, nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindLookup, errors.KindOf(err))
}

func TestGenerateFillerFailure(t *testing.T) {
	filler := &fakeFiller{err: errors.Processing("pdf save failed", nil)}
	svc := newTestService(&fakeFetcher{tables: testTables()}, filler)

	_, err := svc.Generate(context.Background(), 3, 7, nil)
	require.Error(t, err)
	assert.Equal(t, errors.KindProcessing, errors.KindOf(err))
}
