package classifier

import (
	"strings"

	"github.com/reqscribe/requisition-api/internal/model"
)

type predicate func(line string) bool

func kw(word string) predicate {
	return func(line string) bool { return strings.Contains(line, word) }
}

func and(preds ...predicate) predicate {
	return func(line string) bool {
		for _, p := range preds {
			if !p(line) {
				return false
			}
		}
		return true
	}
}

func or(preds ...predicate) predicate {
	return func(line string) bool {
		for _, p := range preds {
			if p(line) {
				return true
			}
		}
		return false
	}
}

func not(p predicate) predicate {
	return func(line string) bool { return !p(line) }
}

type emitFunc func(line string, cfg *model.FieldConfig, basic model.FieldMap) (model.FieldMap, error)

// check emits the on-state for each named checkbox field.
func check(names ...string) emitFunc {
	return func(_ string, cfg *model.FieldConfig, _ model.FieldMap) (model.FieldMap, error) {
		fields := model.FieldMap{}
		for _, name := range names {
			spec, err := cfg.Spec(name)
			if err != nil {
				return nil, err
			}
			fields[spec.Xref] = spec.OnState
		}
		return fields, nil
	}
}

// buildRules returns the classification chain. Order is significant:
// several rules exclude keywords so that overlapping vocabulary falls
// through to a later, more specific rule (creatinine vs. albumin vs. the
// albumin/creatinine ratio; bilirubin vs. neonatal; vaginal vs. rectal).
func buildRules() []Rule {
	return []Rule{
		{
			Name:  "glucose",
			Match: kw("glucose"),
			Emit: func(line string, cfg *model.FieldConfig, _ model.FieldMap) (model.FieldMap, error) {
				fields := model.FieldMap{}
				glucose, err := cfg.Spec("glucose")
				if err != nil {
					return nil, err
				}
				fields[glucose.Xref] = glucose.OnState

				random, err := cfg.Spec("glucose_test_random")
				if err != nil {
					return nil, err
				}
				if strings.Contains(line, "random") {
					fields[random.Xref] = random.OnState
				} else if strings.Contains(line, "fasting") {
					fasting, err := cfg.Spec("glucose_test_fasting")
					if err != nil {
						return nil, err
					}
					// the fasting checkbox shares the random checkbox's export value
					fields[fasting.Xref] = random.OnState
				}
				return fields, nil
			},
		},
		{
			Name:  "hba1c",
			Match: kw("hba1c"),
			Emit:  check("hba1c"),
		},
		{
			Name:  "creatinine",
			Match: and(kw("creatinine"), not(kw("albumin"))),
			Emit:  check("creatinine"),
		},
		{
			Name:  "uric_acid",
			Match: kw("uric"),
			Emit:  check("uric_acid"),
		},
		{
			Name:  "sodium",
			Match: kw("sodium"),
			Emit:  check("sodium"),
		},
		{
			Name:  "potassium",
			Match: kw("potassium"),
			Emit:  check("potassium"),
		},
		{
			Name:  "alt",
			Match: kw("alt"),
			Emit:  check("alt"),
		},
		{
			Name:  "alk_phosphatase",
			Match: kw("phosphatase"),
			Emit:  check("alk_phosphatase"),
		},
		{
			Name:  "bilirubin",
			Match: and(kw("bilirubin"), not(kw("neonatal"))),
			Emit:  check("bilirubin"),
		},
		{
			Name:  "albumin",
			Match: and(kw("albumin"), not(kw("creatinine"))),
			Emit:  check("albumin"),
		},
		{
			Name:  "lipid_assessment",
			Match: kw("lipid assessment"),
			Emit:  check("lipid_assessment"),
		},
		{
			// reachable because the creatinine and albumin rules above
			// exclude the combined case
			Name: "albumin_creatinine_ratio",
			Match: or(
				and(kw("albumin"), kw("creatinine")),
				and(kw("albumin"), kw("ratio")),
				and(kw("creatinine"), kw("ratio")),
			),
			Emit: check("albumin_creatinine_ratio"),
		},
		{
			Name:  "urinalysis",
			Match: kw("urinalysis"),
			Emit:  check("urinalysis"),
		},
		{
			Name:  "neonatal_bilirubin",
			Match: kw("neonatal"),
			Emit: func(_ string, cfg *model.FieldConfig, basic model.FieldMap) (model.FieldMap, error) {
				fields, err := check("neonatal_bilirubin")("", cfg, nil)
				if err != nil {
					return nil, err
				}
				// contact numbers repeat on the neonatal section of the form
				copies := map[string]string{
					"neonatal_doctor_phone":  "doctor_phone",
					"neonatal_patient_phone": "patient_phone",
				}
				for dst, src := range copies {
					dstSpec, err := cfg.Spec(dst)
					if err != nil {
						return nil, err
					}
					srcSpec, err := cfg.Spec(src)
					if err != nil {
						return nil, err
					}
					fields[dstSpec.Xref] = basic[srcSpec.Xref]
				}
				return fields, nil
			},
		},
		{
			Name:  "therapeutic_drug",
			Match: kw("therapeutic"),
			Emit:  check("therapeutic_drug"),
		},
		{
			Name:  "cbc",
			Match: kw("cbc"),
			Emit:  check("cbc"),
		},
		{
			Name:  "prothrombin_time",
			Match: kw("prothrombin"),
			Emit:  check("prothrombin_time"),
		},
		{
			Name:  "pregnancy_urine",
			Match: kw("pregnancy"),
			Emit:  check("pregnancy_urine"),
		},
		{
			Name:  "mononucleosis_screen",
			Match: kw("mononucleosis"),
			Emit:  check("mononucleosis_screen"),
		},
		{
			Name:  "rubella",
			Match: kw("rubella"),
			Emit:  check("rubella"),
		},
		{
			// any two of prenatal/antibody/screen select the prenatal panel;
			// tested before the repeat rule so that plain "repeat prenatal
			// antibodies" phrasing keeps this precedence
			Name: "prenatal",
			Match: or(
				and(kw("prenatal"), kw("antibody")),
				and(kw("prenatal"), kw("screen")),
				and(kw("antibody"), kw("screen")),
			),
			Emit: check("prenatal"),
		},
		{
			Name:  "repeat_prenatal_antibodies",
			Match: and(kw("prenatal"), kw("repeat")),
			Emit:  check("repeat_prenatal_antibodies"),
		},
		{
			Name:  "cervical",
			Match: kw("cervical"),
			Emit:  check("cervical"),
		},
		{
			Name:  "vaginal",
			Match: kw("vaginal"),
			Emit: func(line string, cfg *model.FieldConfig, _ model.FieldMap) (model.FieldMap, error) {
				if or(kw("rectal"), kw("group"), kw("strep"))(line) {
					return check("vaginal_rectal")("", cfg, nil)
				}
				return check("vaginal")("", cfg, nil)
			},
		},
		{
			Name:  "rectal",
			Match: kw("rectal"),
			Emit:  check("vaginal_rectal"),
		},
		{
			Name:  "chlamydia",
			Match: kw("chlamydia"),
			Emit:  check("chlamydia"),
		},
		{
			Name:  "gc",
			Match: kw("gc"),
			Emit:  check("gc"),
		},
		{
			Name:  "sputum",
			Match: kw("sputum"),
			Emit:  check("sputum"),
		},
		{
			Name:  "throat",
			Match: kw("throat"),
			Emit:  check("throat"),
		},
		{
			Name:  "wound",
			Match: kw("wound"),
			Emit: func(line string, cfg *model.FieldConfig, _ model.FieldMap) (model.FieldMap, error) {
				fields, err := check("wound")("", cfg, nil)
				if err != nil {
					return nil, err
				}
				specify, err := cfg.Spec("specify_wound")
				if err != nil {
					return nil, err
				}
				fields[specify.Xref] = woundDetail(line)
				return fields, nil
			},
		},
		{
			Name: "urine",
			Match: and(kw("urine"),
				not(kw("albumin")), not(kw("creatinine")), not(kw("ratio")), not(kw("pregnancy"))),
			Emit: check("urine"),
		},
		{
			Name:  "stool_culture",
			Match: kw("culture"),
			Emit:  check("stool_culture"),
		},
		{
			Name: "stool_ova_parasites",
			Match: or(
				and(kw("stool"), kw("ova")),
				and(kw("stool"), kw("parasites")),
			),
			Emit: check("stool_ova_parasites"),
		},
		{
			Name:  "other_swabs",
			Match: kw("swabs"),
			Emit:  check("other_swabs"),
		},
		{
			Name:  "viral_hep_acute",
			Match: kw("acute"),
			Emit:  check("viral_hep_acute"),
		},
		{
			Name:  "viral_hep_chronic",
			Match: kw("chronic"),
			Emit:  check("viral_hep_chronic"),
		},
		{
			Name:  "viral_hep_immune",
			Match: or(kw("status"), kw("exposure")),
			Emit: func(line string, cfg *model.FieldConfig, _ model.FieldMap) (model.FieldMap, error) {
				fields, err := check("viral_hep_immune")("", cfg, nil)
				if err != nil {
					return nil, err
				}
				var letter string
				switch {
				case strings.Contains(line, "hepatitis a"):
					letter = "viral_hep_immune_a"
				case strings.Contains(line, "hepatitis b"):
					letter = "viral_hep_immune_b"
				case strings.Contains(line, "hepatitis c"):
					letter = "viral_hep_immune_c"
				}
				if letter != "" {
					extra, err := check(letter)("", cfg, nil)
					if err != nil {
						return nil, err
					}
					fields.Merge(extra)
				}
				return fields, nil
			},
		},
		{
			Name:  "total_psa",
			Match: kw("total"),
			Emit:  check("total_psa"),
		},
		{
			Name:  "free_psa",
			Match: kw("free"),
			Emit:  check("free_psa"),
		},
		{
			// no shared base field: a vitamin D mention without an insurance
			// qualifier emits nothing and falls through to overflow
			Name:  "vitamin_d",
			Match: or(kw("vitamin"), kw("hydroxy")),
			Emit: func(line string, cfg *model.FieldConfig, _ model.FieldMap) (model.FieldMap, error) {
				if strings.Contains(line, "uninsured") {
					return check("uninsured_vitd")("", cfg, nil)
				}
				if strings.Contains(line, "insured") {
					return check("insured_vitd")("", cfg, nil)
				}
				return model.FieldMap{}, nil
			},
		},
	}
}

// woundDetail joins everything around the word "wound" into the specify
// text, collapsing the split points to single spaces.
func woundDetail(line string) string {
	parts := strings.Split(line, "wound")
	detail := make([]string, 0, len(parts))
	for _, part := range parts {
		detail = append(detail, strings.TrimSpace(part))
	}
	return strings.TrimSpace(strings.Join(detail, " "))
}
