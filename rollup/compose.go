package rollup

import (
	"github.com/refedo/OTS-sub004/models"
)

// ComposeBuilding folds a building's resolved stage list and production
// picture into its rollup entry. Progress counts completed stages over the
// whole displayed list, so out-of-scope stages drag the ratio down without
// being counted as completed, pending, or not started.
func ComposeBuilding(b models.Building, stages []models.StageStatus, prod models.BuildingProduction) models.BuildingRollup {
	roll := models.BuildingRollup{
		ID:                 b.ID,
		Designation:        b.Designation,
		Name:               b.Name,
		Stages:             stages,
		ProductionProgress: prod.ProductionProgress(),
		TotalTonnage:       prod.TotalTonnage,
		CompletedTonnage:   prod.CompletedTonnage,
	}
	for _, st := range stages {
		switch st.Status {
		case models.StageStatusCompleted:
			roll.CompletedCount++
		case models.StageStatusPending:
			roll.PendingCount++
		case models.StageStatusNotStarted:
			roll.NotStartedCount++
		}
	}
	if len(stages) > 0 {
		roll.Progress = float64(roll.CompletedCount) / float64(len(stages)) * 100
	}
	return roll
}

// ComposeProject assembles a project's rollup from its building rollups.
// Buildings stand alone: nothing is fused numerically across them.
func ComposeProject(p models.Project, buildings []models.BuildingRollup) models.ProjectRollup {
	if buildings == nil {
		buildings = []models.BuildingRollup{}
	}
	return models.ProjectRollup{
		ID:              p.ID,
		ProjectNumber:   p.ProjectNumber,
		Name:            p.Name,
		Status:          p.Status,
		ContractDate:    p.ContractDate,
		DownPaymentDate: p.DownPaymentDate,
		Buildings:       buildings,
	}
}
