package mapper

import (
	"testing"

	"hcp-interaction-be/pkg/store"
)

func TestFieldMapperMap(t *testing.T) {
	tests := []struct {
		name          string
		raw           map[string]any
		wantValidated map[string]any
		wantRejected  int
	}{
		{
			name: "known keys renamed",
			raw: map[string]any{
				"hcp_name":         "Dr. Smith",
				"interaction_type": "Meeting",
				"key_topics":       "efficacy data",
				"next_steps":       "send follow-up email",
			},
			wantValidated: map[string]any{
				"hcpName":         "Dr. Smith",
				"interactionType": "Meeting",
				"topicsDiscussed": "efficacy data",
				"followUpActions": "send follow-up email",
			},
		},
		{
			name:          "valid date passes",
			raw:           map[string]any{"interaction_date": "2026-08-28"},
			wantValidated: map[string]any{"date": "2026-08-28"},
		},
		{
			name:         "placeholder date rejected",
			raw:          map[string]any{"interaction_date": "yyyy-mm-dd"},
			wantRejected: 1,
		},
		{
			name:         "shape-valid but impossible date rejected",
			raw:          map[string]any{"interaction_date": "2024-13-40"},
			wantRejected: 1,
		},
		{
			name:         "malformed date rejected",
			raw:          map[string]any{"interaction_date": "28/08/2026"},
			wantRejected: 1,
		},
		{
			name:          "time with seconds passes",
			raw:           map[string]any{"interaction_time": "14:30:15"},
			wantValidated: map[string]any{"time": "14:30:15"},
		},
		{
			name:         "out of range time rejected",
			raw:          map[string]any{"interaction_time": "25:99"},
			wantRejected: 1,
		},
		{
			name:          "list fields kept as sequences",
			raw:           map[string]any{"discussed_products": []any{"CardioPlus"}},
			wantValidated: map[string]any{"productsDiscussed": []any{"CardioPlus"}},
		},
		{
			name:         "scalar where list expected rejected",
			raw:          map[string]any{"materials_shared": "brochure"},
			wantRejected: 1,
		},
		{
			name:          "nil values dropped silently",
			raw:           map[string]any{"hcp_name": nil, "sentiment": "Positive"},
			wantValidated: map[string]any{"sentiment": "Positive"},
		},
		{
			name:          "unmapped key passes through when record has the field",
			raw:           map[string]any{"outcomes": "agreed to trial"},
			wantValidated: map[string]any{"outcomes": "agreed to trial"},
		},
		{
			name:         "unknown key rejected",
			raw:          map[string]any{"favorite_color": "blue"},
			wantRejected: 1,
		},
	}

	fm := NewFieldMapper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := store.NewRecord()
			validated, rejected := fm.Map(tt.raw, rec)

			if len(rejected) != tt.wantRejected {
				t.Fatalf("rejected = %v, want %d entries", rejected, tt.wantRejected)
			}
			if len(validated) != len(tt.wantValidated) {
				t.Fatalf("validated = %v, want %v", validated, tt.wantValidated)
			}
			for k, want := range tt.wantValidated {
				got, ok := validated[k]
				if !ok {
					t.Errorf("missing key %q in validated output", k)
					continue
				}
				switch wantV := want.(type) {
				case []any:
					gotSeq, ok := got.([]any)
					if !ok || len(gotSeq) != len(wantV) {
						t.Errorf("key %q = %v, want %v", k, got, want)
					}
				default:
					if got != want {
						t.Errorf("key %q = %v, want %v", k, got, want)
					}
				}
			}
		})
	}
}

func TestFieldMapperDoesNotMutateRecord(t *testing.T) {
	fm := NewFieldMapper()
	rec := store.NewRecord()
	rec.HcpName = "Dr. Jones"

	fm.Map(map[string]any{"hcp_name": "Dr. Smith"}, rec)

	if rec.HcpName != "Dr. Jones" {
		t.Errorf("Map mutated the record: HcpName = %q", rec.HcpName)
	}
}
