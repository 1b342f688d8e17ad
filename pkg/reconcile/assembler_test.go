package reconcile

import (
	"reflect"
	"testing"

	"hcp-interaction-be/internal/mapper"
	"hcp-interaction-be/pkg/store"
)

func TestAssembleFalsyToNull(t *testing.T) {
	rec := store.NewRecord()
	rec.HcpName = "Dr. Smith"
	rec.Sentiment = "   "

	payload := Assemble(rec, "sess-1", nil, mapper.NewFieldMapper())

	if payload.HcpName == nil || *payload.HcpName != "Dr. Smith" {
		t.Errorf("HcpName = %v", payload.HcpName)
	}
	if payload.Sentiment != nil {
		t.Error("blank sentiment should assemble to null")
	}
	if payload.InteractionType != nil || payload.Date != nil {
		t.Error("untouched scalars should be null")
	}
	if payload.MaterialsShared == nil || payload.SamplesDistributed == nil || payload.ProductsDiscussed == nil {
		t.Error("collections must be non-nil arrays")
	}
	if payload.ChatSessionId != "sess-1" {
		t.Errorf("ChatSessionId = %q", payload.ChatSessionId)
	}
	if payload.Id != nil {
		t.Error("Id should be null before first submission")
	}
}

func TestAssembleCarriesLogIdAndFiltersUnnamed(t *testing.T) {
	rec := store.NewRecord()
	logId := "log-7"
	rec.CurrentLogId = &logId
	rec.MaterialsShared = []store.RecordItem{
		{Id: "1", Name: "brochure"},
		{Id: "2", Name: "   "},
	}

	payload := Assemble(rec, "sess-1", nil, mapper.NewFieldMapper())

	if payload.Id == nil || *payload.Id != "log-7" {
		t.Errorf("Id = %v", payload.Id)
	}
	if len(payload.MaterialsShared) != 1 || payload.MaterialsShared[0].Name != "brochure" {
		t.Errorf("MaterialsShared = %+v", payload.MaterialsShared)
	}
}

func TestAssembleExtractionReplacesCollections(t *testing.T) {
	rec := store.NewRecord()
	rec.AddMaterial("old brochure")
	rec.HcpName = "Dr. Jones"

	extraction := map[string]any{
		"hcp_name":         "Dr. Smith",
		"materials_shared": []any{"new deck"},
	}
	payload := Assemble(rec, "sess-1", extraction, mapper.NewFieldMapper())

	if *payload.HcpName != "Dr. Smith" {
		t.Errorf("HcpName = %q", *payload.HcpName)
	}
	if len(payload.MaterialsShared) != 1 || payload.MaterialsShared[0].Name != "new deck" {
		t.Errorf("extraction did not replace materials: %+v", payload.MaterialsShared)
	}

	// The live record stays untouched
	if rec.HcpName != "Dr. Jones" || len(rec.MaterialsShared) != 1 {
		t.Error("Assemble mutated the record")
	}
}

func TestAssembleIsRepeatable(t *testing.T) {
	rec := store.NewRecord()
	rec.HcpName = "Dr. Smith"
	rec.AddSample("starter pack")

	first := Assemble(rec, "sess-1", nil, mapper.NewFieldMapper())
	second := Assemble(rec, "sess-1", nil, mapper.NewFieldMapper())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeat assembly differs:\n%+v\n%+v", first, second)
	}
}
