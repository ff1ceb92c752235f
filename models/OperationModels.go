package models

import "time"

// Stage codes recorded in operation events and the stage config catalog.
const (
	StageContractSigned      = "CONTRACT_SIGNED"
	StageDownPaymentReceived = "DOWN_PAYMENT_RECEIVED"
	StageDesignSubmitted     = "DESIGN_SUBMITTED"
	StageDesignApproved      = "DESIGN_APPROVED"
	StageShopSubmitted       = "SHOP_SUBMITTED"
	StageShopApproved        = "SHOP_APPROVED"
	StageArchApproved        = "ARCH_APPROVED"
	StageProcurementStarted  = "PROCUREMENT_STARTED"
	StageProductionStarted   = "PRODUCTION_STARTED"
	StageCoatingStarted      = "COATING_STARTED"
	StageDispatchingStarted  = "DISPATCHING_STARTED"
	StageErectionStarted     = "ERECTION_STARTED"
)

// Document types that carry design-stage evidence.
const (
	DocStructuralDesignPackage = "Structural Design Package"
	DocStructuralDesign        = "Structural Design"
)

// OperationEvent is an explicit, human-recorded milestone for a project and
// optionally one of its buildings, distinct from log-derived progress.
type OperationEvent struct {
	ID         int       `json:"id" example:"7"`
	ProjectID  int       `json:"project_id" example:"1"`
	BuildingID *int      `json:"building_id,omitempty" example:"3"`
	Stage      string    `json:"stage" example:"PRODUCTION_STARTED"`
	EventDate  time.Time `json:"event_date" example:"2024-02-10T00:00:00Z"`
	Status     string    `json:"status" example:"Completed"`
	Remarks    string    `json:"remarks,omitempty" example:""`
	CreatedBy  string    `json:"created_by" example:"admin"`
	CreatedAt  time.Time `json:"created_at" example:"2024-02-10T09:00:00Z"`
}

type DocumentSubmission struct {
	ID             int        `json:"id" example:"12"`
	ProjectID      int        `json:"project_id" example:"1"`
	BuildingID     *int       `json:"building_id,omitempty" example:"3"`
	DocumentType   string     `json:"document_type" example:"Structural Design Package"`
	SubmissionDate *time.Time `json:"submission_date,omitempty" example:"2024-01-20T00:00:00Z"`
	ApprovalDate   *time.Time `json:"approval_date,omitempty" example:"2024-01-28T00:00:00Z"`
	Status         string     `json:"status" example:"Approved"`
	ClientCode     string     `json:"client_code,omitempty" example:"A"`
	ClientResponse string     `json:"client_response,omitempty" example:"Approved as noted"`
	CreatedBy      string     `json:"created_by" example:"engineering"`
	CreatedAt      time.Time  `json:"created_at" example:"2024-01-20T11:00:00Z"`
}

// OperationStageConfig is one row of the globally ordered stage catalog.
type OperationStageConfig struct {
	ID         int    `json:"id" example:"4"`
	StageCode  string `json:"stage_code" example:"PRODUCTION_STARTED"`
	StageName  string `json:"stage_name" example:"Production Started"`
	OrderIndex int    `json:"order_index" example:"5"`
}
