package feed

import "testing"

func TestFlatAdapterParse(t *testing.T) {
	body := []byte(`[
		{"name": "Carrot", "quantity": 18, "category": "Seeds"},
		{"name": "Watering Can", "quantity": 0, "category": "Gears"}
	]`)

	records, err := FlatAdapter{}.Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Name != "Carrot" || records[0].Quantity != 18 || records[0].Category != "Seeds" {
		t.Errorf("records[0] = %+v", records[0])
	}
	if records[1].Quantity != 0 {
		t.Errorf("zero quantity not preserved: %+v", records[1])
	}
}

func TestFlatAdapterRejectsMalformedRecords(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"not an array", `{"name": "Carrot"}`},
		{"missing name", `[{"quantity": 1, "category": "Seeds"}]`},
		{"empty name", `[{"name": "", "quantity": 1, "category": "Seeds"}]`},
		{"missing quantity", `[{"name": "Carrot", "category": "Seeds"}]`},
		{"negative quantity", `[{"name": "Carrot", "quantity": -1, "category": "Seeds"}]`},
		{"missing category", `[{"name": "Carrot", "quantity": 1}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := (FlatAdapter{}).Parse([]byte(tt.body)); err == nil {
				t.Error("Parse accepted malformed body")
			}
		})
	}
}

func TestGroupedAdapterParse(t *testing.T) {
	body := []byte(`{"categories": [
		{"name": "Seeds", "items": [
			{"name": "Carrot", "quantity": 18},
			{"name": "Tomato", "quantity": 2}
		]},
		{"name": "Eggs", "items": [
			{"name": "Common Egg", "quantity": 4}
		]}
	]}`)

	records, err := GroupedAdapter{}.Parse(body)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want 3", len(records))
	}
	if records[0].Category != "Seeds" || records[2].Category != "Eggs" {
		t.Errorf("group names not applied as categories: %+v", records)
	}
}

func TestGroupedAdapterRejectsMissingCategories(t *testing.T) {
	if _, err := (GroupedAdapter{}).Parse([]byte(`{}`)); err == nil {
		t.Error("Parse accepted body without categories")
	}
	if _, err := (GroupedAdapter{}).Parse([]byte(`{"categories": [{"items": []}]}`)); err == nil {
		t.Error("Parse accepted group without a name")
	}
}
