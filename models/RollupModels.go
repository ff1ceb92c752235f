package models

import "time"

// Stage status values produced by the rollup engine.
const (
	StageStatusCompleted  = "completed"
	StageStatusPending    = "pending"
	StageStatusNotStarted = "not_started"
	StageStatusOutOfScope = "out_of_scope"
)

// ProcessProgress is the completed/total tonnage pair for one process type.
type ProcessProgress struct {
	Completed float64 `json:"completed" example:"2.0"`
	Total     float64 `json:"total" example:"4.0"`
}

// Percentage returns completed/total as a percentage, 0 when total is 0.
func (p ProcessProgress) Percentage() float64 {
	if p.Total == 0 {
		return 0
	}
	return p.Completed / p.Total * 100
}

// BuildingProduction is the per-building production picture derived from raw
// production logs: the per-process-type tonnage map plus the overall
// completion numbers from the last-log-wins resolver.
type BuildingProduction struct {
	BuildingID       int                        `json:"building_id" example:"3"`
	TotalTonnage     float64                    `json:"total_tonnage" example:"120.5"`
	CompletedTonnage float64                    `json:"completed_tonnage" example:"80.2"`
	CompletedParts   int                        `json:"completed_parts" example:"42"`
	TotalParts       int                        `json:"total_parts" example:"60"`
	ByProcess        map[string]ProcessProgress `json:"by_process"`
}

// ProductionProgress is overall completed tonnage over total, as a percentage.
func (b BuildingProduction) ProductionProgress() float64 {
	if b.TotalTonnage == 0 {
		return 0
	}
	return b.CompletedTonnage / b.TotalTonnage * 100
}

// ProcessPercentage returns the completion percentage for one process type,
// 0 if the building has no entry for it.
func (b BuildingProduction) ProcessPercentage(processType string) float64 {
	pp, ok := b.ByProcess[processType]
	if !ok {
		return 0
	}
	return pp.Percentage()
}

// StageStatus is the resolved status of one stage for one building.
type StageStatus struct {
	StageCode          string     `json:"stage_code" example:"PRODUCTION_STARTED"`
	StageName          string     `json:"stage_name" example:"Production"`
	Status             string     `json:"status" example:"pending"`
	EventDate          *time.Time `json:"event_date,omitempty" example:"2024-02-10T00:00:00Z"`
	ProgressPercentage *float64   `json:"progress_percentage,omitempty" example:"40.0"`
	ClientCode         string     `json:"client_code,omitempty" example:"A"`
	ClientResponse     string     `json:"client_response,omitempty" example:"Approved as noted"`
}

// BuildingRollup aggregates per-stage statuses for one building.
type BuildingRollup struct {
	ID                 int           `json:"id" example:"3"`
	Designation        string        `json:"designation" example:"B-01"`
	Name               string        `json:"name" example:"Main Production Hall"`
	Stages             []StageStatus `json:"stages"`
	CompletedCount     int           `json:"completed_count" example:"2"`
	PendingCount       int           `json:"pending_count" example:"1"`
	NotStartedCount    int           `json:"not_started_count" example:"4"`
	Progress           float64       `json:"progress" example:"28.57"`
	ProductionProgress float64       `json:"production_progress" example:"66.5"`
	TotalTonnage       float64       `json:"total_tonnage" example:"120.5"`
	CompletedTonnage   float64       `json:"completed_tonnage" example:"80.2"`
}

// ProjectRollup is the project-level rollup response entry.
type ProjectRollup struct {
	ID              int              `json:"id" example:"1"`
	ProjectNumber   string           `json:"project_number" example:"P-2024-017"`
	Name            string           `json:"name" example:"Riyadh Warehouse Complex"`
	Status          string           `json:"status" example:"Active"`
	ContractDate    *time.Time       `json:"contract_date,omitempty" example:"2024-01-10T00:00:00Z"`
	DownPaymentDate *time.Time       `json:"down_payment_date,omitempty" example:"2024-01-25T00:00:00Z"`
	Buildings       []BuildingRollup `json:"buildings"`
}
