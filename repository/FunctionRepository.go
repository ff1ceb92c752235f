package repository

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/refedo/OTS-sub004/models"
)

// GenerateProjectNumber produces the next project number in the form
// P-YYYY-NNN, with NNN counting up within the current year.
func GenerateProjectNumber(db *sql.DB) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("P-%d-", year)

	var last sql.NullString
	err := db.QueryRow(`
		SELECT MAX(project_number) FROM project WHERE project_number LIKE $1`,
		prefix+"%").Scan(&last)
	if err != nil {
		return "", fmt.Errorf("failed to fetch last project number: %w", err)
	}

	next := 1
	if last.Valid {
		var seq int
		if _, err := fmt.Sscanf(strings.TrimPrefix(last.String, prefix), "%d", &seq); err == nil {
			next = seq + 1
		}
	}
	return fmt.Sprintf("%s%03d", prefix, next), nil
}

// GeneratePartMark builds a part mark like "PM/B-01/0001" from the building
// designation and a sequence number.
func GeneratePartMark(prefix string, designation string, sequenceNumber int) string {
	formattedPrefix := strings.ToUpper(strings.TrimSpace(prefix))
	if formattedPrefix == "" {
		formattedPrefix = "PM"
	}
	return fmt.Sprintf("%s/%s/%04d", formattedPrefix, designation, sequenceNumber)
}

// NextPartSequence returns the next part mark sequence for a building.
func NextPartSequence(db *sql.DB, buildingID int) (int, error) {
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM assembly_part WHERE building_id = $1`, buildingID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count parts for building %d: %w", buildingID, err)
	}
	return count + 1, nil
}

// NextStageOrderIndex returns the order index a new stage config should take
// to land at the end of the pipeline.
func NextStageOrderIndex(db *sql.DB) (int, error) {
	var max sql.NullInt64
	if err := db.QueryRow(`SELECT MAX(order_index) FROM operation_stage_config`).Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to fetch max order index: %w", err)
	}
	if max.Valid {
		return int(max.Int64) + 1, nil
	}
	return 1, nil
}

// FetchProjectByID loads one project row with its decoded scope of work.
func FetchProjectByID(db *sql.DB, projectID int) (*models.Project, error) {
	var p models.Project
	var scopeRaw []byte
	err := db.QueryRow(`
		SELECT id, project_number, name, status, COALESCE(client_name, ''),
		       contract_date, down_payment_date, COALESCE(scope_of_work, 'null'::jsonb),
		       COALESCE(created_by, ''), created_at, updated_at
		FROM project WHERE id = $1`, projectID).Scan(
		&p.ID, &p.ProjectNumber, &p.Name, &p.Status, &p.ClientName,
		&p.ContractDate, &p.DownPaymentDate, &scopeRaw,
		&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch project %d: %w", projectID, err)
	}
	p.ScopeOfWork = models.ParseScopeOfWork(scopeRaw)
	return &p, nil
}

// FetchBuildingByID loads one building row.
func FetchBuildingByID(db *sql.DB, buildingID int) (*models.Building, error) {
	var b models.Building
	err := db.QueryRow(`
		SELECT id, project_id, designation, name, COALESCE(created_by, ''), created_at, updated_at
		FROM building WHERE id = $1`, buildingID).Scan(
		&b.ID, &b.ProjectID, &b.Designation, &b.Name, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch building %d: %w", buildingID, err)
	}
	return &b, nil
}
