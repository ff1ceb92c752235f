package rollup

import (
	"math"
	"testing"

	"github.com/refedo/OTS-sub004/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateProduction_PartWithoutLogsContributesNothing(t *testing.T) {
	parts := []models.AssemblyPart{
		{ID: 1, Quantity: 4, NetWeightTotal: 4000},
		{ID: 2, Quantity: 2, NetWeightTotal: 2000, Logs: []models.ProductionLog{
			{PartID: 2, ProcessType: models.ProcessWelding, ProcessedQty: 2, RemainingQty: 0},
		}},
	}

	prod := AggregateProduction(3, parts)

	// The log-less part is excluded from the building total, not just from
	// the process buckets.
	if !almostEqual(prod.TotalTonnage, 2.0) {
		t.Fatalf("total tonnage expected 2.0, got %v", prod.TotalTonnage)
	}
	welding := prod.ByProcess[models.ProcessWelding]
	if !almostEqual(welding.Completed, 2.0) || !almostEqual(welding.Total, 2.0) {
		t.Fatalf("welding expected {2.0 2.0}, got %+v", welding)
	}
	for _, pt := range models.ProcessTypes {
		if pt == models.ProcessWelding {
			continue
		}
		pp := prod.ByProcess[pt]
		if !almostEqual(pp.Completed, 0) {
			t.Fatalf("%s completed expected 0, got %v", pt, pp.Completed)
		}
		if !almostEqual(pp.Total, 2.0) {
			t.Fatalf("%s total expected building tonnage 2.0, got %v", pt, pp.Total)
		}
	}
}

func TestAggregateProduction_FractionalCredit(t *testing.T) {
	// 4 pieces at 1 ton each, 2 welded: half the tonnage is credited.
	parts := []models.AssemblyPart{
		{ID: 1, Quantity: 4, NetWeightTotal: 4000, Logs: []models.ProductionLog{
			{PartID: 1, ProcessType: models.ProcessWelding, ProcessedQty: 2, RemainingQty: 2},
		}},
	}

	prod := AggregateProduction(1, parts)
	welding := prod.ByProcess[models.ProcessWelding]
	if !almostEqual(welding.Completed, 2.0) {
		t.Fatalf("welding completed expected 2.0, got %v", welding.Completed)
	}
	if !almostEqual(welding.Percentage(), 50.0) {
		t.Fatalf("welding percentage expected 50, got %v", welding.Percentage())
	}
}

func TestAggregateProduction_ZeroRemainingOverridesRatio(t *testing.T) {
	// A later zero-remaining log supersedes the earlier partial log.
	parts := []models.AssemblyPart{
		{ID: 1, Quantity: 4, NetWeightTotal: 4000, Logs: []models.ProductionLog{
			{PartID: 1, ProcessType: models.ProcessWelding, ProcessedQty: 2, RemainingQty: 2},
			{PartID: 1, ProcessType: models.ProcessWelding, ProcessedQty: 4, RemainingQty: 0},
		}},
	}

	prod := AggregateProduction(1, parts)
	welding := prod.ByProcess[models.ProcessWelding]
	if !almostEqual(welding.Completed, 4.0) {
		t.Fatalf("welding completed expected full 4.0, got %v", welding.Completed)
	}
}

func TestAggregateProduction_ZeroQuantityDoesNotDivide(t *testing.T) {
	parts := []models.AssemblyPart{
		{ID: 1, Quantity: 0, NetWeightTotal: 1000, Logs: []models.ProductionLog{
			{PartID: 1, ProcessType: models.ProcessFitUp, ProcessedQty: 1, RemainingQty: 3},
		}},
	}

	prod := AggregateProduction(1, parts)
	fitup := prod.ByProcess[models.ProcessFitUp]
	if math.IsNaN(fitup.Completed) || math.IsInf(fitup.Completed, 0) {
		t.Fatalf("fit-up completed is not finite: %v", fitup.Completed)
	}
	// Quantity defaults to 1, so one processed piece is full credit.
	if !almostEqual(fitup.Completed, 1.0) {
		t.Fatalf("fit-up completed expected 1.0, got %v", fitup.Completed)
	}
}

func TestAggregateProduction_LastLogDecidesOverallCompletion(t *testing.T) {
	// The last log is a partial dispatch, so the part counts fractionally
	// even though an earlier welding log completed it for welding.
	parts := []models.AssemblyPart{
		{ID: 1, Quantity: 4, NetWeightTotal: 4000, Logs: []models.ProductionLog{
			{PartID: 1, ProcessType: models.ProcessWelding, ProcessedQty: 4, RemainingQty: 0},
			{PartID: 1, ProcessType: models.ProcessDispatch, ProcessedQty: 1, RemainingQty: 3},
		}},
	}

	prod := AggregateProduction(1, parts)
	if prod.CompletedParts != 0 {
		t.Fatalf("completed parts expected 0, got %d", prod.CompletedParts)
	}
	if !almostEqual(prod.CompletedTonnage, 1.0) {
		t.Fatalf("completed tonnage expected 1.0, got %v", prod.CompletedTonnage)
	}

	// Flip the log order: a final zero-remaining log completes the part.
	parts[0].Logs = []models.ProductionLog{
		{PartID: 1, ProcessType: models.ProcessDispatch, ProcessedQty: 1, RemainingQty: 3},
		{PartID: 1, ProcessType: models.ProcessWelding, ProcessedQty: 4, RemainingQty: 0},
	}
	prod = AggregateProduction(1, parts)
	if prod.CompletedParts != 1 {
		t.Fatalf("completed parts expected 1, got %d", prod.CompletedParts)
	}
	if !almostEqual(prod.CompletedTonnage, 4.0) {
		t.Fatalf("completed tonnage expected 4.0, got %v", prod.CompletedTonnage)
	}
}

func TestAggregateProduction_EmptyBuilding(t *testing.T) {
	prod := AggregateProduction(9, nil)
	if prod.TotalTonnage != 0 || prod.CompletedTonnage != 0 {
		t.Fatalf("empty building should carry zero tonnage, got %+v", prod)
	}
	if len(prod.ByProcess) != len(models.ProcessTypes) {
		t.Fatalf("process map should still have %d buckets, got %d", len(models.ProcessTypes), len(prod.ByProcess))
	}
	if !almostEqual(prod.ProductionProgress(), 0) {
		t.Fatalf("production progress of empty building expected 0, got %v", prod.ProductionProgress())
	}
}
