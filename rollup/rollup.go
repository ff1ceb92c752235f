// Package rollup computes the hierarchical completion model for projects
// and their buildings: raw per-part production logs, explicit operation
// events, and document submissions are reconciled into per-stage statuses
// and tonnage-weighted progress percentages.
//
// The engine is a pure computation over an in-memory snapshot. The caller
// fetches the snapshot (see storage.LoadRollupSnapshot), the engine never
// touches the database and holds no state between calls.
package rollup

import (
	"log"

	"github.com/refedo/OTS-sub004/models"
)

// Snapshot is the read-only input the engine works from. All slices are
// expected in storage order (ascending primary key); production logs inside
// each part must be in creation order, the last one being authoritative for
// the part's current state.
type Snapshot struct {
	Projects     []models.Project
	StageConfigs []models.OperationStageConfig
	Buildings    []models.Building
	Events       []models.OperationEvent
	Submissions  []models.DocumentSubmission
	// PartsByBuilding holds each building's assembly parts with their logs.
	PartsByBuilding map[int][]models.AssemblyPart
}

// BuildProjectRollups resolves every project in the snapshot into its
// rollup. A failure inside one building's production aggregation is
// contained: the building keeps its event- and document-derived stage
// statuses and simply shows no tonnage progress.
func BuildProjectRollups(snap Snapshot) []models.ProjectRollup {
	stages := DisplayStages(snap.StageConfigs)

	buildingsByProject := make(map[int][]models.Building)
	for _, b := range snap.Buildings {
		buildingsByProject[b.ProjectID] = append(buildingsByProject[b.ProjectID], b)
	}

	out := make([]models.ProjectRollup, 0, len(snap.Projects))
	for _, project := range snap.Projects {
		var rollups []models.BuildingRollup
		for _, building := range buildingsByProject[project.ID] {
			rollups = append(rollups, buildBuildingRollup(project, building, stages, snap))
		}
		out = append(out, ComposeProject(project, rollups))
	}
	return out
}

func buildBuildingRollup(project models.Project, building models.Building, stages []models.OperationStageConfig, snap Snapshot) models.BuildingRollup {
	ev := StageEvidence{
		Events:      eventsForBuilding(snap.Events, project.ID, building.ID),
		Submissions: submissionsForBuilding(snap.Submissions, project.ID, building.ID),
		Production:  safeAggregateProduction(building.ID, snap.PartsByBuilding[building.ID]),
	}

	resolved := make([]models.StageStatus, 0, len(stages))
	for _, cfg := range stages {
		inScope := StageInScope(cfg.StageCode, project.ScopeOfWork)
		resolved = append(resolved, ResolveStage(cfg, inScope, ev))
	}

	return ComposeBuilding(building, resolved, ev.Production)
}

// safeAggregateProduction contains a panic from one building's log data so
// the rest of the batch still comes back. The failed building reads as
// having no production data at all.
func safeAggregateProduction(buildingID int, parts []models.AssemblyPart) (prod models.BuildingProduction) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("production aggregation failed for building %d, skipping tonnage: %v", buildingID, r)
			prod = models.BuildingProduction{BuildingID: buildingID, ByProcess: newProcessMap()}
		}
	}()
	return AggregateProduction(buildingID, parts)
}

// eventsForBuilding keeps a project's events that target this building or
// carry no building at all (project-wide milestones apply to every building).
func eventsForBuilding(events []models.OperationEvent, projectID, buildingID int) []models.OperationEvent {
	var out []models.OperationEvent
	for _, e := range events {
		if e.ProjectID != projectID {
			continue
		}
		if e.BuildingID != nil && *e.BuildingID != buildingID {
			continue
		}
		out = append(out, e)
	}
	return out
}

func submissionsForBuilding(subs []models.DocumentSubmission, projectID, buildingID int) []models.DocumentSubmission {
	var out []models.DocumentSubmission
	for _, s := range subs {
		if s.ProjectID != projectID {
			continue
		}
		if s.BuildingID != nil && *s.BuildingID != buildingID {
			continue
		}
		out = append(out, s)
	}
	return out
}
