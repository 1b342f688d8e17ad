package mapper

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"hcp-interaction-be/pkg/store"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}(:\d{2})?$`)
)

// Rejection reports a single assistant field that could not be mapped onto
// the canonical record. Rejections never abort a merge; the field is simply
// left out.
type Rejection struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

type fieldRule struct {
	sourceKey   string
	targetField string
	validate    func(value any) error
	coerce      func(value any) any
}

// FieldMapper translates assistant-vendor field names into canonical record
// fields using a closed, table-driven rule set. New assistant fields are
// added by table entry, not by code change.
type FieldMapper struct {
	rules map[string]fieldRule
}

func NewFieldMapper() *FieldMapper {
	coerceString := func(v any) any { return fmt.Sprint(v) }
	keepSequence := func(v any) any { return v }

	rules := []fieldRule{
		{sourceKey: "hcp_name", targetField: store.FieldHcpName, coerce: coerceString},
		{sourceKey: "interaction_type", targetField: store.FieldInteractionType, coerce: coerceString},
		{sourceKey: "interaction_date", targetField: store.FieldDate, validate: validateDate, coerce: coerceString},
		{sourceKey: "interaction_time", targetField: store.FieldTime, validate: validateTime, coerce: coerceString},
		{sourceKey: "key_topics", targetField: store.FieldTopicsDiscussed, coerce: coerceString},
		{sourceKey: "discussed_products", targetField: store.FieldProductsDiscussed, validate: validateSequence, coerce: keepSequence},
		{sourceKey: "materials_shared", targetField: store.FieldMaterialsShared, validate: validateSequence, coerce: keepSequence},
		{sourceKey: "samples_distributed", targetField: store.FieldSamplesDistributed, validate: validateSequence, coerce: keepSequence},
		{sourceKey: "next_steps", targetField: store.FieldFollowUpActions, coerce: coerceString},
	}

	byKey := make(map[string]fieldRule, len(rules))
	for _, r := range rules {
		byKey[r.sourceKey] = r
	}
	return &FieldMapper{rules: byKey}
}

// Map validates and renames raw assistant fields into canonical updates
// ready for a record merge. Nil values are always dropped so an existing
// value is never overwritten with nothing. Keys without a table entry pass
// through unchanged only when the record already has a field of that exact
// name; otherwise they are dropped and reported. Map is pure: it mutates
// neither its arguments nor the record.
func (m *FieldMapper) Map(raw map[string]any, rec *store.Record) (map[string]any, []Rejection) {
	validated := make(map[string]any, len(raw))
	var rejected []Rejection

	for key, value := range raw {
		if value == nil {
			continue
		}

		rule, ok := m.rules[key]
		if !ok {
			if rec != nil && rec.HasField(key) {
				validated[key] = value
			} else {
				rejected = append(rejected, Rejection{Key: key, Reason: "unmapped assistant field"})
			}
			continue
		}

		if rule.validate != nil {
			if err := rule.validate(value); err != nil {
				rejected = append(rejected, Rejection{Key: key, Reason: err.Error()})
				continue
			}
		}
		validated[rule.targetField] = rule.coerce(value)
	}

	return validated, rejected
}

// validateDate rejects anything that is not a real YYYY-MM-DD calendar
// date, including the assistant's literal "yyyy-mm-dd" placeholder. The
// calendar check catches values like 2024-13-40 that the shape regex alone
// would let through.
func validateDate(value any) error {
	s, ok := value.(string)
	if !ok || !dateRe.MatchString(s) || strings.EqualFold(s, "yyyy-mm-dd") {
		return fmt.Errorf("invalid date format")
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format")
	}
	return nil
}

func validateTime(value any) error {
	s, ok := value.(string)
	if !ok || !timeRe.MatchString(s) {
		return fmt.Errorf("invalid time format")
	}
	layout := "15:04"
	if len(s) == len("15:04:05") {
		layout = "15:04:05"
	}
	if _, err := time.Parse(layout, s); err != nil {
		return fmt.Errorf("invalid time format")
	}
	return nil
}

func validateSequence(value any) error {
	switch value.(type) {
	case []any, []string, []store.RecordItem:
		return nil
	}
	return fmt.Errorf("expected a list value")
}
