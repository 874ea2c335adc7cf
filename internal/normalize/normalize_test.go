package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvinceAbbrevFullNames(t *testing.T) {
	tests := map[string]string{
		"Alberta":                   "AB",
		"British Columbia":          "BC",
		"Manitoba":                  "MB",
		"New Brunswick":             "NB",
		"Newfoundland and Labrador": "NL",
		"Nova Scotia":               "NS",
		"Northwest Territories":     "NT",
		"Nunavut":                   "NU",
		"Ontario":                   "ON",
		"Prince Edward Island":      "PE",
		"Quebec":                    "QC",
		"Saskatchewan":              "SK",
		"Yukon":                     "YK",
	}

	for name, code := range tests {
		assert.Equal(t, code, ProvinceAbbrev(name), name)
	}
}

func TestProvinceAbbrevPassThrough(t *testing.T) {
	assert.Equal(t, "ON", ProvinceAbbrev("ON"))
	assert.Equal(t, "XX", ProvinceAbbrev("XX"))
}

func TestProvinceAbbrevUnknown(t *testing.T) {
	assert.Equal(t, "NA", ProvinceAbbrev("Texas"))
	assert.Equal(t, "NA", ProvinceAbbrev(""))
}

func TestParseDOB(t *testing.T) {
	dob := ParseDOB("2023-04-06T00:00:00.00Z")
	assert.Equal(t, DOB{Year: "2023", Month: "4", Day: "6"}, dob)

	dob = ParseDOB("1998-12-25T00:00:00.5Z")
	assert.Equal(t, DOB{Year: "1998", Month: "12", Day: "25"}, dob)

	dob = ParseDOB("1998-12-25T00:00:00.000000Z")
	assert.Equal(t, DOB{Year: "1998", Month: "12", Day: "25"}, dob)
}

func TestParseDOBSentinel(t *testing.T) {
	sentinel := DOB{Year: "0000", Month: "00", Day: "00"}

	assert.Equal(t, sentinel, ParseDOB(""))
	assert.Equal(t, sentinel, ParseDOB("not-a-date"))
	assert.Equal(t, sentinel, ParseDOB("2023-13-45T99:00:00.00Z"))
	// fractional seconds are mandatory and the zone must be a literal Z
	assert.Equal(t, sentinel, ParseDOB("2023-04-06T00:00:00Z"))
	assert.Equal(t, sentinel, ParseDOB("2023-04-06T00:00:00.00+00:00"))
	assert.Equal(t, sentinel, ParseDOB("2023-04-06T00:00:00.0000000Z"))
}

func TestSexCode(t *testing.T) {
	assert.Equal(t, "M", SexCode("Male"))
	assert.Equal(t, "F", SexCode("Female"))
	assert.Equal(t, "Off", SexCode("Other"))
	assert.Equal(t, "Off", SexCode(""))
}
