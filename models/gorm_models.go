package models

import (
	"time"

	"gorm.io/gorm"
)

// GORM-backed models for the planning and finance subsystems.

// ObjectiveGorm represents the objectives table with GORM tags
type ObjectiveGorm struct {
	ID          uint           `gorm:"primaryKey;column:id" json:"id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	OwnerID     int            `gorm:"column:owner_id;not null" json:"owner_id"`
	Quarter     string         `gorm:"column:quarter;not null" json:"quarter"`
	Year        int            `gorm:"column:year;not null" json:"year"`
	Status      string         `gorm:"column:status;default:'active'" json:"status"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	KeyResults  []KeyResultGorm `gorm:"foreignKey:ObjectiveID" json:"key_results,omitempty"`
}

// TableName specifies the table name for ObjectiveGorm
func (ObjectiveGorm) TableName() string {
	return "objectives"
}

// KeyResultGorm represents the key_results table with GORM tags
type KeyResultGorm struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	ObjectiveID  uint      `gorm:"column:objective_id;not null" json:"objective_id"`
	Title        string    `gorm:"column:title;not null" json:"title"`
	TargetValue  float64   `gorm:"column:target_value;not null" json:"target_value"`
	CurrentValue float64   `gorm:"column:current_value;default:0" json:"current_value"`
	Unit         string    `gorm:"column:unit" json:"unit"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for KeyResultGorm
func (KeyResultGorm) TableName() string {
	return "key_results"
}

// KPIRecordGorm represents the kpi_records table with GORM tags
type KPIRecordGorm struct {
	ID          uint      `gorm:"primaryKey;column:id" json:"id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Department  string    `gorm:"column:department;not null" json:"department"`
	Period      string    `gorm:"column:period;not null" json:"period"`
	TargetValue float64   `gorm:"column:target_value;not null" json:"target_value"`
	ActualValue float64   `gorm:"column:actual_value;default:0" json:"actual_value"`
	Unit        string    `gorm:"column:unit" json:"unit"`
	ProjectID   *int      `gorm:"column:project_id" json:"project_id,omitempty"`
	CreatedBy   string    `gorm:"column:created_by;not null" json:"created_by"`
	CreatedAt   time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for KPIRecordGorm
func (KPIRecordGorm) TableName() string {
	return "kpi_records"
}

// AccountMappingGorm represents the account_mappings table with GORM tags.
// Maps internal cost categories to the ledger account codes of the
// accounting system.
type AccountMappingGorm struct {
	ID           uint      `gorm:"primaryKey;column:id" json:"id"`
	CostCategory string    `gorm:"column:cost_category;uniqueIndex;not null" json:"cost_category"`
	AccountCode  string    `gorm:"column:account_code;not null" json:"account_code"`
	AccountName  string    `gorm:"column:account_name;not null" json:"account_name"`
	Direction    string    `gorm:"column:direction;default:'debit'" json:"direction"`
	Active       bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt    time.Time `gorm:"column:created_at;not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

// TableName specifies the table name for AccountMappingGorm
func (AccountMappingGorm) TableName() string {
	return "account_mappings"
}
