package models

import "time"

// Process types tracked per assembly part. These are the only values the
// production_log.process_type column accepts.
const (
	ProcessPreparation   = "Preparation"
	ProcessFitUp         = "Fit-up"
	ProcessWelding       = "Welding"
	ProcessVisualization = "Visualization"
	ProcessSandblasting  = "Sandblasting"
	ProcessPainting      = "Painting"
	ProcessGalvanization = "Galvanization"
	ProcessDispatch      = "Dispatch"
)

// ProcessTypes lists all tracked process types in shop-floor order.
var ProcessTypes = []string{
	ProcessPreparation,
	ProcessFitUp,
	ProcessWelding,
	ProcessVisualization,
	ProcessSandblasting,
	ProcessPainting,
	ProcessGalvanization,
	ProcessDispatch,
}

// IsValidProcessType reports whether pt is one of the tracked process types.
func IsValidProcessType(pt string) bool {
	for _, p := range ProcessTypes {
		if p == pt {
			return true
		}
	}
	return false
}

type AssemblyPart struct {
	ID             int             `json:"id" example:"10"`
	BuildingID     int             `json:"building_id" example:"3"`
	PartMark       string          `json:"part_mark" example:"CL-102"`
	Description    string          `json:"description,omitempty" example:"Column HEB300"`
	Quantity       int             `json:"quantity" example:"4"`
	NetWeightTotal float64         `json:"net_weight_total" example:"4000"` // kilograms, all pieces
	CreatedBy      string          `json:"created_by" example:"admin"`
	CreatedAt      time.Time       `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt      time.Time       `json:"updated_at" example:"2024-01-15T10:30:00Z"`
	Logs           []ProductionLog `json:"logs,omitempty"`
}

// TonnageTotal converts the part's net weight from kilograms to tons.
func (p AssemblyPart) TonnageTotal() float64 {
	return p.NetWeightTotal / 1000.0
}

// EffectiveQuantity guards ratio math against zero or missing quantity.
func (p AssemblyPart) EffectiveQuantity() int {
	if p.Quantity <= 0 {
		return 1
	}
	return p.Quantity
}

// ProductionLog is an append-only record of one process-type application to
// a part. remaining_qty == 0 means the part is fully processed for that
// process type as of this log.
type ProductionLog struct {
	ID           int       `json:"id" example:"55"`
	PartID       int       `json:"part_id" example:"10"`
	ProcessType  string    `json:"process_type" example:"Welding"`
	ProcessedQty int       `json:"processed_qty" example:"2"`
	RemainingQty int       `json:"remaining_qty" example:"2"`
	LogDate      time.Time `json:"log_date" example:"2024-02-01T00:00:00Z"`
	CreatedBy    string    `json:"created_by" example:"foreman"`
	CreatedAt    time.Time `json:"created_at" example:"2024-02-01T14:00:00Z"`
}
