package rollup

import (
	"testing"

	"github.com/refedo/OTS-sub004/models"
)

func TestComposeBuilding_CountsAndProgress(t *testing.T) {
	b := models.Building{ID: 3, Designation: "B-01", Name: "Main Hall"}
	stages := []models.StageStatus{
		{StageCode: "A", Status: models.StageStatusCompleted},
		{StageCode: "B", Status: models.StageStatusCompleted},
		{StageCode: "C", Status: models.StageStatusPending},
		{StageCode: "D", Status: models.StageStatusNotStarted},
	}
	prod := models.BuildingProduction{TotalTonnage: 100, CompletedTonnage: 40, ByProcess: newProcessMap()}

	roll := ComposeBuilding(b, stages, prod)
	if roll.CompletedCount != 2 || roll.PendingCount != 1 || roll.NotStartedCount != 1 {
		t.Fatalf("counts wrong: %+v", roll)
	}
	if !almostEqual(roll.Progress, 50) {
		t.Fatalf("progress expected 50, got %v", roll.Progress)
	}
	if !almostEqual(roll.ProductionProgress, 40) {
		t.Fatalf("production progress expected 40, got %v", roll.ProductionProgress)
	}
	if !almostEqual(roll.TotalTonnage, 100) || !almostEqual(roll.CompletedTonnage, 40) {
		t.Fatalf("tonnage not carried: %+v", roll)
	}
}

func TestComposeBuilding_OutOfScopeDilutesProgress(t *testing.T) {
	b := models.Building{ID: 3}
	stages := []models.StageStatus{
		{StageCode: "A", Status: models.StageStatusCompleted},
		{StageCode: "B", Status: models.StageStatusOutOfScope},
	}

	roll := ComposeBuilding(b, stages, models.BuildingProduction{ByProcess: newProcessMap()})
	// Out-of-scope stages count in the denominator but in none of the
	// status buckets.
	if roll.CompletedCount != 1 || roll.PendingCount != 0 || roll.NotStartedCount != 0 {
		t.Fatalf("counts wrong: %+v", roll)
	}
	if !almostEqual(roll.Progress, 50) {
		t.Fatalf("progress expected 50 over 2 displayed stages, got %v", roll.Progress)
	}
}

func TestComposeBuilding_NoStages(t *testing.T) {
	roll := ComposeBuilding(models.Building{ID: 3}, nil, models.BuildingProduction{ByProcess: newProcessMap()})
	if !almostEqual(roll.Progress, 0) {
		t.Fatalf("progress with no stages expected 0, got %v", roll.Progress)
	}
}

func TestComposeProject_BuildingsStandAlone(t *testing.T) {
	p := models.Project{ID: 1, ProjectNumber: "P-2024-017", Name: "Riyadh Warehouse Complex", Status: "Active"}
	buildings := []models.BuildingRollup{
		{ID: 3, Progress: 50},
		{ID: 4, Progress: 10},
	}

	roll := ComposeProject(p, buildings)
	if roll.ID != 1 || roll.ProjectNumber != "P-2024-017" || roll.Status != "Active" {
		t.Fatalf("project fields not carried: %+v", roll)
	}
	if len(roll.Buildings) != 2 {
		t.Fatalf("expected 2 buildings, got %d", len(roll.Buildings))
	}

	// A project with no buildings still serializes with an empty list.
	empty := ComposeProject(p, nil)
	if empty.Buildings == nil {
		t.Fatalf("buildings should be an empty slice, not nil")
	}
}
