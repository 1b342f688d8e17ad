package reconcile

import (
	"strings"

	"hcp-interaction-be/internal/dto"
	"hcp-interaction-be/internal/mapper"
	"hcp-interaction-be/pkg/store"
)

// Assemble builds the final normalized payload for one submission from the
// current record, the session id active for this cycle, and optionally the
// extraction of the turn that just completed. It never mutates its inputs,
// so it is safe to call speculatively.
//
// When extraction is non-nil it is re-applied through the field mapper onto
// a copy of the record. Collection fields from the extraction REPLACE the
// copy's collections (with freshly generated ids) instead of appending;
// callers that already merged the extraction into the record this cycle
// must pass nil to keep manually added items. This makes Assemble
// idempotent and rules out double-applied arrays.
func Assemble(rec *store.Record, sessionId string, extraction map[string]any, fm *mapper.FieldMapper) *dto.LogStructuredRequest {
	work := rec.Clone()

	if extraction != nil {
		validated, _ := fm.Map(extraction, work)
		for name, value := range validated {
			switch name {
			case store.FieldMaterialsShared:
				work.MaterialsShared = store.NormalizeItems(value)
			case store.FieldSamplesDistributed:
				work.SamplesDistributed = store.NormalizeItems(value)
			default:
				work.MergeFields(map[string]any{name: value})
			}
		}
	}

	return &dto.LogStructuredRequest{
		Id:                 work.CurrentLogId,
		HcpName:            nullIfBlank(work.HcpName),
		InteractionType:    nullIfBlank(work.InteractionType),
		Date:               nullIfBlank(work.Date),
		Time:               nullIfBlank(work.Time),
		Attendees:          nullIfBlank(work.Attendees),
		TopicsDiscussed:    nullIfBlank(work.TopicsDiscussed),
		Sentiment:          nullIfBlank(work.Sentiment),
		Outcomes:           nullIfBlank(work.Outcomes),
		FollowUpActions:    nullIfBlank(work.FollowUpActions),
		MaterialsShared:    namedOnly(work.MaterialsShared),
		SamplesDistributed: namedOnly(work.SamplesDistributed),
		ProductsDiscussed:  append([]string{}, work.ProductsDiscussed...),
		ChatSessionId:      sessionId,
	}
}

func nullIfBlank(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// namedOnly filters out entries with an empty name; the result is always a
// non-nil array.
func namedOnly(items []store.RecordItem) []store.RecordItem {
	out := []store.RecordItem{}
	for _, it := range items {
		if strings.TrimSpace(it.Name) != "" {
			out = append(out, it)
		}
	}
	return out
}
