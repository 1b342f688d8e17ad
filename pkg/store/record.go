package store

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Canonical field names of the interaction record. Assistant-specific key
// names are translated to these by the field mapper before they reach the
// record.
const (
	FieldHcpName               = "hcpName"
	FieldInteractionType       = "interactionType"
	FieldDate                  = "date"
	FieldTime                  = "time"
	FieldAttendees             = "attendees"
	FieldTopicsDiscussed       = "topicsDiscussed"
	FieldSentiment             = "sentiment"
	FieldOutcomes              = "outcomes"
	FieldFollowUpActions       = "followUpActions"
	FieldChatSessionId         = "chatSessionId"
	FieldMaterialsShared       = "materialsShared"
	FieldSamplesDistributed    = "samplesDistributed"
	FieldProductsDiscussed     = "productsDiscussed"
	FieldMaterialsSharedSearch = "materialsSharedSearch"
)

const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// RecordItem is one entry of materialsShared/samplesDistributed. The id is
// generated at the moment the item enters the record and is never reused.
type RecordItem struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}

// Record is the canonical representation of one logged HCP interaction,
// accumulated across form edits and assistant turns.
type Record struct {
	// CurrentLogId holds the persisted-record identifier; nil until the
	// first successful submission.
	CurrentLogId *string `json:"currentLogId"`

	HcpName         string `json:"hcpName"`
	InteractionType string `json:"interactionType"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Attendees       string `json:"attendees"`
	TopicsDiscussed string `json:"topicsDiscussed"`
	Sentiment       string `json:"sentiment"`
	Outcomes        string `json:"outcomes"`
	FollowUpActions string `json:"followUpActions"`
	ChatSessionId   string `json:"chatSessionId"`

	MaterialsShared    []RecordItem `json:"materialsShared"`
	SamplesDistributed []RecordItem `json:"samplesDistributed"`
	ProductsDiscussed  []string     `json:"productsDiscussed"`

	// MaterialsSharedSearch stages the next material name. It is never part
	// of the persisted payload.
	MaterialsSharedSearch string `json:"materialsSharedSearch"`
}

func NewRecord() *Record {
	return &Record{
		MaterialsShared:    []RecordItem{},
		SamplesDistributed: []RecordItem{},
		ProductsDiscussed:  []string{},
	}
}

// HasField reports whether name is a recognized record field. The field
// mapper uses this to decide pass-through eligibility for unmapped keys.
func (r *Record) HasField(name string) bool {
	switch name {
	case FieldHcpName, FieldInteractionType, FieldDate, FieldTime,
		FieldAttendees, FieldTopicsDiscussed, FieldSentiment, FieldOutcomes,
		FieldFollowUpActions, FieldChatSessionId, FieldMaterialsShared,
		FieldSamplesDistributed, FieldProductsDiscussed, FieldMaterialsSharedSearch:
		return true
	}
	return false
}

// SetField assigns a single scalar field. Unrecognized names are a silent
// no-op, not an error.
func (r *Record) SetField(name, value string) {
	switch name {
	case FieldHcpName:
		r.HcpName = value
	case FieldInteractionType:
		r.InteractionType = value
	case FieldDate:
		r.Date = value
	case FieldTime:
		r.Time = value
	case FieldAttendees:
		r.Attendees = value
	case FieldTopicsDiscussed:
		r.TopicsDiscussed = value
	case FieldSentiment:
		r.Sentiment = value
	case FieldOutcomes:
		r.Outcomes = value
	case FieldFollowUpActions:
		r.FollowUpActions = value
	case FieldChatSessionId:
		r.ChatSessionId = value
	case FieldMaterialsSharedSearch:
		r.MaterialsSharedSearch = value
	}
}

// MergeFields applies a mapping of already-validated updates. The two item
// collections append normalized entries, productsDiscussed is replaced as a
// plain string list, scalars are plain assignments. Unrecognized keys are
// ignored. Re-applying the same scalar updates is idempotent; collection
// merges are not.
func (r *Record) MergeFields(updates map[string]any) {
	for name, value := range updates {
		if value == nil {
			continue
		}
		switch name {
		case FieldMaterialsShared:
			r.MaterialsShared = append(r.MaterialsShared, NormalizeItems(value)...)
		case FieldSamplesDistributed:
			r.SamplesDistributed = append(r.SamplesDistributed, NormalizeItems(value)...)
		case FieldProductsDiscussed:
			r.ProductsDiscussed = toStringSlice(value)
		default:
			if r.HasField(name) {
				r.SetField(name, fmt.Sprint(value))
			}
		}
	}
}

// AddMaterial appends a manually entered material and clears the staging
// search text. Empty or whitespace-only names are a silent no-op.
func (r *Record) AddMaterial(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.MaterialsShared = append(r.MaterialsShared, RecordItem{Id: uuid.NewString(), Name: name})
	r.MaterialsSharedSearch = ""
}

// AddSample appends a manually entered sample. Empty names are a no-op.
func (r *Record) AddSample(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	r.SamplesDistributed = append(r.SamplesDistributed, RecordItem{Id: uuid.NewString(), Name: name})
}

// Reset restores every field, including the persisted-record identifier, to
// its initial default.
func (r *Record) Reset() {
	*r = *NewRecord()
}

// IsEmpty reports whether no field of the record holds data. Fields start
// empty (no prefilled type/date/time) so an untouched record is empty and
// the empty-submit guard can trigger.
func (r *Record) IsEmpty() bool {
	scalars := []string{
		r.HcpName, r.InteractionType, r.Date, r.Time, r.Attendees,
		r.TopicsDiscussed, r.Sentiment, r.Outcomes, r.FollowUpActions,
		r.MaterialsSharedSearch,
	}
	for _, s := range scalars {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return len(r.MaterialsShared) == 0 &&
		len(r.SamplesDistributed) == 0 &&
		len(r.ProductsDiscussed) == 0
}

// Clone returns a deep copy. Used by the submission assembler so assembly
// never mutates the live record.
func (r *Record) Clone() *Record {
	c := *r
	c.MaterialsShared = append([]RecordItem{}, r.MaterialsShared...)
	c.SamplesDistributed = append([]RecordItem{}, r.SamplesDistributed...)
	c.ProductsDiscussed = append([]string{}, r.ProductsDiscussed...)
	if r.CurrentLogId != nil {
		id := *r.CurrentLogId
		c.CurrentLogId = &id
	}
	return &c
}

// NormalizeItems converts a raw sequence into record items. Plain strings
// are wrapped with a freshly generated id; maps and RecordItems keep their
// name (existing ids are preserved). Elements with an empty name are
// dropped, preserving the non-empty-name invariant.
func NormalizeItems(value any) []RecordItem {
	items := []RecordItem{}
	appendNamed := func(id, name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if id == "" {
			id = uuid.NewString()
		}
		items = append(items, RecordItem{Id: id, Name: name})
	}

	switch v := value.(type) {
	case []RecordItem:
		for _, it := range v {
			appendNamed(it.Id, it.Name)
		}
	case []string:
		for _, s := range v {
			appendNamed("", s)
		}
	case []any:
		for _, el := range v {
			switch e := el.(type) {
			case string:
				appendNamed("", e)
			case RecordItem:
				appendNamed(e.Id, e.Name)
			case map[string]any:
				id, _ := e["id"].(string)
				name, _ := e["name"].(string)
				appendNamed(id, name)
			default:
				appendNamed("", fmt.Sprint(el))
			}
		}
	}
	return items
}

func toStringSlice(value any) []string {
	switch v := value.(type) {
	case []string:
		return append([]string{}, v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, el := range v {
			out = append(out, fmt.Sprint(el))
		}
		return out
	}
	return []string{}
}
