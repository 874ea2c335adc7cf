// Package normalize converts raw record attributes into the display
// strings the requisition form expects.
package normalize

import (
	"strconv"
	"time"
)

var provinceCodes = map[string]string{
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

// ProvinceAbbrev returns the two-letter code for a province name.
// Two-letter input passes through unchanged; unrecognized names map to "NA".
func ProvinceAbbrev(province string) string {
	if len(province) == 2 {
		return province
	}
	if code, ok := provinceCodes[province]; ok {
		return code
	}
	return "NA"
}

// DOB holds the birth date split into unpadded decimal strings.
type DOB struct {
	Year  string
	Month string
	Day   string
}

// dobSentinel stands in for missing or unparsable birth dates; a bad date
// must not block form generation.
var dobSentinel = DOB{Year: "0000", Month: "00", Day: "00"}

// dobLayouts accept a fractional second of one to six digits and a
// literal Z only; anything looser is a sentinel case.
var dobLayouts = []string{
	"2006-01-02T15:04:05.0Z",
	"2006-01-02T15:04:05.00Z",
	"2006-01-02T15:04:05.000Z",
	"2006-01-02T15:04:05.0000Z",
	"2006-01-02T15:04:05.00000Z",
	"2006-01-02T15:04:05.000000Z",
}

// ParseDOB parses a source timestamp like "2023-04-06T00:00:00.00Z".
func ParseDOB(date string) DOB {
	for _, layout := range dobLayouts {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		return DOB{
			Year:  strconv.Itoa(t.Year()),
			Month: strconv.Itoa(int(t.Month())),
			Day:   strconv.Itoa(t.Day()),
		}
	}
	return dobSentinel
}

// SexCode maps the stored gender string to the form's sex checkbox value.
// "Off" is the unset sentinel, not an error.
func SexCode(sex string) string {
	switch sex {
	case "Male":
		return "M"
	case "Female":
		return "F"
	default:
		return "Off"
	}
}
