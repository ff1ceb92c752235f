package models

import "testing"

func TestParseScopeOfWork(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"normal", `["Design","Fabrication"]`, []string{"Design", "Fabrication"}},
		{"empty array", `[]`, nil},
		{"null", `null`, nil},
		{"malformed", `{not json`, nil},
		{"empty payload", ``, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseScopeOfWork([]byte(tt.raw))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestAssemblyPartTonnageTotal(t *testing.T) {
	p := AssemblyPart{NetWeightTotal: 4000}
	if got := p.TonnageTotal(); got != 4.0 {
		t.Fatalf("expected 4 tons, got %v", got)
	}
}

func TestAssemblyPartEffectiveQuantity(t *testing.T) {
	tests := []struct {
		quantity int
		want     int
	}{
		{4, 4},
		{0, 1},
		{-2, 1},
	}
	for _, tt := range tests {
		p := AssemblyPart{Quantity: tt.quantity}
		if got := p.EffectiveQuantity(); got != tt.want {
			t.Fatalf("quantity %d: expected %d, got %d", tt.quantity, tt.want, got)
		}
	}
}

func TestIsValidProcessType(t *testing.T) {
	for _, pt := range ProcessTypes {
		if !IsValidProcessType(pt) {
			t.Fatalf("%s should be valid", pt)
		}
	}
	if IsValidProcessType("Polishing") {
		t.Fatal("Polishing should not be valid")
	}
	if IsValidProcessType("welding") {
		t.Fatal("process types are case sensitive")
	}
}

func TestProcessProgressPercentage(t *testing.T) {
	if got := (ProcessProgress{Completed: 2, Total: 4}).Percentage(); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := (ProcessProgress{}).Percentage(); got != 0 {
		t.Fatalf("zero total should give 0, got %v", got)
	}
}

func TestBuildingProductionProgress(t *testing.T) {
	b := BuildingProduction{TotalTonnage: 10, CompletedTonnage: 2.5}
	if got := b.ProductionProgress(); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
	if got := (BuildingProduction{}).ProductionProgress(); got != 0 {
		t.Fatalf("empty building should give 0, got %v", got)
	}
	if got := b.ProcessPercentage("Welding"); got != 0 {
		t.Fatalf("missing process bucket should give 0, got %v", got)
	}
}
