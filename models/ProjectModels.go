package models

import (
	"encoding/json"
	"time"
)

type Project struct {
	ID              int        `json:"id" example:"1"`
	ProjectNumber   string     `json:"project_number" example:"P-2024-017"`
	Name            string     `json:"name" example:"Riyadh Warehouse Complex"`
	Status          string     `json:"status" example:"Active"`
	ClientName      string     `json:"client_name,omitempty" example:"Al-Mutlaq Holding"`
	ContractDate    *time.Time `json:"contract_date,omitempty" example:"2024-01-10T00:00:00Z"`
	DownPaymentDate *time.Time `json:"down_payment_date,omitempty" example:"2024-01-25T00:00:00Z"`
	ScopeOfWork     []string   `json:"scope_of_work" example:"Design,Fabrication,Erection"`
	CreatedBy       string     `json:"created_by" example:"admin"`
	CreatedAt       time.Time  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt       time.Time  `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}

// ParseScopeOfWork decodes the scope_of_work JSON column. Malformed or
// empty payloads decode to nil, which downstream treats as "no restriction".
func ParseScopeOfWork(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var phases []string
	if err := json.Unmarshal(raw, &phases); err != nil {
		return nil
	}
	return phases
}

type Building struct {
	ID          int       `json:"id" example:"3"`
	ProjectID   int       `json:"project_id" example:"1"`
	Designation string    `json:"designation" example:"B-01"`
	Name        string    `json:"name" example:"Main Production Hall"`
	CreatedBy   string    `json:"created_by" example:"admin"`
	CreatedAt   time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
}
