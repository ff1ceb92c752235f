package rollup

import (
	"testing"

	"github.com/refedo/OTS-sub004/models"
)

func TestStageInScope_EmptyScopeIncludesEverything(t *testing.T) {
	for _, code := range []string{
		models.StageDesignSubmitted,
		models.StageProductionStarted,
		models.StageErectionStarted,
		"SOME_FUTURE_STAGE",
	} {
		if !StageInScope(code, nil) {
			t.Fatalf("%s should be in scope with empty scope of work", code)
		}
		if !StageInScope(code, []string{}) {
			t.Fatalf("%s should be in scope with zero-length scope of work", code)
		}
	}
}

func TestStageInScope_PolicyTable(t *testing.T) {
	cases := []struct {
		code    string
		scope   []string
		inScope bool
	}{
		{models.StageErectionStarted, []string{"Erection"}, true},
		{models.StageDesignSubmitted, []string{"Erection"}, false},
		{models.StageDesignSubmitted, []string{"Engineering"}, true},
		{models.StageDesignApproved, []string{"Design"}, true},
		{models.StageShopSubmitted, []string{"Shop Drawing"}, true},
		{models.StageShopSubmitted, []string{"Design"}, false},
		{models.StageProductionStarted, []string{"Fabrication"}, true},
		{models.StageProductionStarted, []string{"Production"}, true},
		{models.StageProductionStarted, []string{"Delivery"}, false},
		{models.StageCoatingStarted, []string{"Fabrication"}, true},
		{models.StageDispatchingStarted, []string{"Delivery"}, true},
		{models.StageDispatchingStarted, []string{"Fabrication"}, true},
		{models.StageDispatchingStarted, []string{"Erection"}, false},
		{models.StageArchApproved, []string{"Architectural"}, true},
		{models.StageArchApproved, []string{"Design"}, false},
		// Unknown codes default to in scope even under a restriction.
		{"SOME_FUTURE_STAGE", []string{"Erection"}, true},
	}
	for _, tc := range cases {
		if got := StageInScope(tc.code, tc.scope); got != tc.inScope {
			t.Fatalf("StageInScope(%s, %v) expected %v, got %v", tc.code, tc.scope, tc.inScope, got)
		}
	}
}

func TestStageInScope_CaseAndWhitespaceTolerant(t *testing.T) {
	if !StageInScope(models.StageErectionStarted, []string{"  erection "}) {
		t.Fatalf("scope matching should tolerate case and padding")
	}
}

func TestDisplayStages_FiltersTerminalAndProjectLevelCodes(t *testing.T) {
	catalog := []models.OperationStageConfig{
		{StageCode: models.StageContractSigned, StageName: "Contract Signed", OrderIndex: 1},
		{StageCode: models.StageDownPaymentReceived, StageName: "Down Payment Received", OrderIndex: 2},
		{StageCode: models.StageDesignSubmitted, StageName: "Design Submitted", OrderIndex: 3},
		{StageCode: models.StageProcurementStarted, StageName: "Procurement Started", OrderIndex: 4},
		{StageCode: models.StageProductionStarted, StageName: "Production Started", OrderIndex: 5},
		{StageCode: "PRODUCTION_COMPLETED", StageName: "Production Completed", OrderIndex: 6},
		{StageCode: models.StageErectionStarted, StageName: "Erection Started", OrderIndex: 7},
	}

	got := DisplayStages(catalog)
	want := []string{models.StageDesignSubmitted, models.StageProductionStarted, models.StageErectionStarted}
	if len(got) != len(want) {
		t.Fatalf("expected %d display stages, got %d: %+v", len(want), len(got), got)
	}
	for i, cfg := range got {
		if cfg.StageCode != want[i] {
			t.Fatalf("display stage %d expected %s, got %s", i, want[i], cfg.StageCode)
		}
	}
}
