// Package classifier maps free-text test mentions to requisition form
// fields through an ordered, first-match-wins rule chain.
package classifier

import (
	"strings"

	"github.com/reqscribe/requisition-api/internal/model"
)

// Rule tests one lowercased transcript line and, on success, emits the
// field assignments for it. Rules are evaluated in declaration order and
// the first match wins; ordering is load-bearing because the test
// vocabulary overlaps (see rules.go).
type Rule struct {
	Name  string
	Match func(line string) bool
	Emit  func(line string, cfg *model.FieldConfig, basic model.FieldMap) (model.FieldMap, error)
}

type Classifier struct {
	cfg   *model.FieldConfig
	rules []Rule
}

func New(cfg *model.FieldConfig) *Classifier {
	return &Classifier{cfg: cfg, rules: buildRules()}
}

// Rules exposes the chain for rule-by-rule testing.
func (c *Classifier) Rules() []Rule {
	return c.rules
}

// Classify matches one transcript line against the rule chain. It returns
// the emitted field fragment and the name of the matching rule. A nil or
// empty fragment means the line is unclassified and belongs in overflow.
// basic supplies already-assembled basic info for rules that copy values
// from it.
func (c *Classifier) Classify(line string, basic model.FieldMap) (model.FieldMap, string, error) {
	line = strings.ToLower(strings.TrimSpace(line))

	for _, rule := range c.rules {
		if !rule.Match(line) {
			continue
		}
		fields, err := rule.Emit(line, c.cfg, basic)
		if err != nil {
			return nil, "", err
		}
		return fields, rule.Name, nil
	}
	return nil, "", nil
}
