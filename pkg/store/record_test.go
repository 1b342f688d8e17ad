package store

import (
	"testing"
)

func TestMergeFieldsAppendsCollections(t *testing.T) {
	rec := NewRecord()
	rec.AddMaterial("brochure")

	rec.MergeFields(map[string]any{
		"materialsShared": []any{"slide deck"},
	})

	if len(rec.MaterialsShared) != 2 {
		t.Fatalf("MaterialsShared length = %d, want 2", len(rec.MaterialsShared))
	}
	if rec.MaterialsShared[0].Name != "brochure" || rec.MaterialsShared[1].Name != "slide deck" {
		t.Errorf("unexpected materials: %+v", rec.MaterialsShared)
	}
	if rec.MaterialsShared[1].Id == "" {
		t.Error("merged item did not get a fresh id")
	}
}

func TestMergeFieldsReplacesProducts(t *testing.T) {
	rec := NewRecord()
	rec.ProductsDiscussed = []string{"OldProduct"}

	rec.MergeFields(map[string]any{
		"productsDiscussed": []any{"CardioPlus", "NeuroCalm"},
	})

	if len(rec.ProductsDiscussed) != 2 {
		t.Fatalf("ProductsDiscussed = %v, want 2 entries", rec.ProductsDiscussed)
	}
	if rec.ProductsDiscussed[0] != "CardioPlus" {
		t.Errorf("ProductsDiscussed[0] = %q", rec.ProductsDiscussed[0])
	}
}

func TestMergeFieldsSkipsNilAndScalarAssignment(t *testing.T) {
	rec := NewRecord()
	rec.HcpName = "Dr. Jones"

	rec.MergeFields(map[string]any{
		"hcpName":   nil,
		"sentiment": "Positive",
	})

	if rec.HcpName != "Dr. Jones" {
		t.Errorf("nil update overwrote HcpName: %q", rec.HcpName)
	}
	if rec.Sentiment != "Positive" {
		t.Errorf("Sentiment = %q, want Positive", rec.Sentiment)
	}
}

func TestAddMaterialClearsSearch(t *testing.T) {
	rec := NewRecord()
	rec.MaterialsSharedSearch = "  brochure  "

	rec.AddMaterial(rec.MaterialsSharedSearch)

	if len(rec.MaterialsShared) != 1 || rec.MaterialsShared[0].Name != "brochure" {
		t.Fatalf("materials = %+v", rec.MaterialsShared)
	}
	if rec.MaterialsSharedSearch != "" {
		t.Error("search text not cleared after add")
	}

	rec.AddMaterial("   ")
	if len(rec.MaterialsShared) != 1 {
		t.Error("blank material was added")
	}
}

func TestIsEmpty(t *testing.T) {
	rec := NewRecord()
	if !rec.IsEmpty() {
		t.Fatal("fresh record should be empty")
	}

	rec.MaterialsSharedSearch = "pending"
	if rec.IsEmpty() {
		t.Error("staged search text should count as data")
	}

	rec.Reset()
	rec.AddSample("starter pack")
	if rec.IsEmpty() {
		t.Error("record with a sample should not be empty")
	}

	rec.Reset()
	if !rec.IsEmpty() {
		t.Error("reset record should be empty")
	}
}

func TestResetClearsLogId(t *testing.T) {
	rec := NewRecord()
	id := "some-log-id"
	rec.CurrentLogId = &id
	rec.HcpName = "Dr. Smith"

	rec.Reset()

	if rec.CurrentLogId != nil {
		t.Error("Reset kept CurrentLogId")
	}
	if rec.HcpName != "" {
		t.Error("Reset kept HcpName")
	}
	if rec.MaterialsShared == nil || rec.ProductsDiscussed == nil {
		t.Error("Reset left collections nil")
	}
}

func TestCloneIsDeep(t *testing.T) {
	rec := NewRecord()
	rec.AddMaterial("brochure")
	id := "log-1"
	rec.CurrentLogId = &id

	clone := rec.Clone()
	clone.MaterialsShared[0].Name = "changed"
	*clone.CurrentLogId = "log-2"

	if rec.MaterialsShared[0].Name != "brochure" {
		t.Error("clone shares the materials slice")
	}
	if *rec.CurrentLogId != "log-1" {
		t.Error("clone shares the CurrentLogId pointer")
	}
}

func TestNormalizeItems(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		wantNames []string
	}{
		{"string slice", []string{"a", "b"}, []string{"a", "b"}},
		{"any slice of strings", []any{"a", ""}, []string{"a"}},
		{"any slice of maps", []any{map[string]any{"name": "x"}}, []string{"x"}},
		{"item slice", []RecordItem{{Id: "1", Name: "y"}}, []string{"y"}},
		{"scalar", "not-a-list", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := NormalizeItems(tt.value)
			if len(items) != len(tt.wantNames) {
				t.Fatalf("items = %+v, want names %v", items, tt.wantNames)
			}
			for i, want := range tt.wantNames {
				if items[i].Name != want {
					t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, want)
				}
				if items[i].Id == "" {
					t.Errorf("items[%d] missing generated id", i)
				}
			}
		})
	}
}
