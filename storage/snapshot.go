package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/rollup"
)

// LoadRollupSnapshot fetches everything the rollup engine needs in one pass:
// active/draft projects, the ordered stage catalog, buildings, operation
// events, design document submissions, and assembly parts with their
// production logs. Log order inside a part is ascending id, which is the
// engine's "last log wins" order.
func LoadRollupSnapshot(ctx context.Context, db *sql.DB) (rollup.Snapshot, error) {
	snap := rollup.Snapshot{PartsByBuilding: make(map[int][]models.AssemblyPart)}

	projectRows, err := db.QueryContext(ctx, `
		SELECT id, project_number, name, status, contract_date, down_payment_date, COALESCE(scope_of_work, 'null'::jsonb)
		FROM project
		WHERE status IN ('Active', 'Draft')
		ORDER BY id`)
	if err != nil {
		return snap, fmt.Errorf("failed to fetch projects: %w", err)
	}
	defer projectRows.Close()

	var projectIDs []int
	for projectRows.Next() {
		var p models.Project
		var scopeRaw []byte
		if err := projectRows.Scan(&p.ID, &p.ProjectNumber, &p.Name, &p.Status, &p.ContractDate, &p.DownPaymentDate, &scopeRaw); err != nil {
			return snap, fmt.Errorf("failed to scan project: %w", err)
		}
		p.ScopeOfWork = models.ParseScopeOfWork(scopeRaw)
		snap.Projects = append(snap.Projects, p)
		projectIDs = append(projectIDs, p.ID)
	}
	if err := projectRows.Err(); err != nil {
		return snap, fmt.Errorf("failed reading projects: %w", err)
	}
	if len(projectIDs) == 0 {
		return snap, nil
	}

	// Contract signing and down payment are project-level milestones; the
	// engine never sees them.
	cfgRows, err := db.QueryContext(ctx, `
		SELECT id, stage_code, stage_name, order_index
		FROM operation_stage_config
		WHERE stage_code NOT IN ($1, $2)
		ORDER BY order_index`,
		models.StageContractSigned, models.StageDownPaymentReceived)
	if err != nil {
		return snap, fmt.Errorf("failed to fetch stage configs: %w", err)
	}
	defer cfgRows.Close()
	for cfgRows.Next() {
		var cfg models.OperationStageConfig
		if err := cfgRows.Scan(&cfg.ID, &cfg.StageCode, &cfg.StageName, &cfg.OrderIndex); err != nil {
			return snap, fmt.Errorf("failed to scan stage config: %w", err)
		}
		snap.StageConfigs = append(snap.StageConfigs, cfg)
	}
	if err := cfgRows.Err(); err != nil {
		return snap, fmt.Errorf("failed reading stage configs: %w", err)
	}

	buildingRows, err := db.QueryContext(ctx, `
		SELECT id, project_id, designation, name
		FROM building
		WHERE project_id = ANY($1)
		ORDER BY id`, pq.Array(projectIDs))
	if err != nil {
		return snap, fmt.Errorf("failed to fetch buildings: %w", err)
	}
	defer buildingRows.Close()

	var buildingIDs []int
	for buildingRows.Next() {
		var b models.Building
		if err := buildingRows.Scan(&b.ID, &b.ProjectID, &b.Designation, &b.Name); err != nil {
			return snap, fmt.Errorf("failed to scan building: %w", err)
		}
		snap.Buildings = append(snap.Buildings, b)
		buildingIDs = append(buildingIDs, b.ID)
	}
	if err := buildingRows.Err(); err != nil {
		return snap, fmt.Errorf("failed reading buildings: %w", err)
	}

	eventRows, err := db.QueryContext(ctx, `
		SELECT id, project_id, building_id, stage, event_date, status
		FROM operation_event
		WHERE project_id = ANY($1)
		ORDER BY id`, pq.Array(projectIDs))
	if err != nil {
		return snap, fmt.Errorf("failed to fetch operation events: %w", err)
	}
	defer eventRows.Close()
	for eventRows.Next() {
		var e models.OperationEvent
		var buildingID sql.NullInt64
		if err := eventRows.Scan(&e.ID, &e.ProjectID, &buildingID, &e.Stage, &e.EventDate, &e.Status); err != nil {
			return snap, fmt.Errorf("failed to scan operation event: %w", err)
		}
		if buildingID.Valid {
			id := int(buildingID.Int64)
			e.BuildingID = &id
		}
		snap.Events = append(snap.Events, e)
	}
	if err := eventRows.Err(); err != nil {
		return snap, fmt.Errorf("failed reading operation events: %w", err)
	}

	subRows, err := db.QueryContext(ctx, `
		SELECT id, project_id, building_id, document_type, submission_date, approval_date, status,
		       COALESCE(client_code, ''), COALESCE(client_response, '')
		FROM document_submission
		WHERE project_id = ANY($1) AND document_type IN ($2, $3)
		ORDER BY id`,
		pq.Array(projectIDs), models.DocStructuralDesignPackage, models.DocStructuralDesign)
	if err != nil {
		return snap, fmt.Errorf("failed to fetch document submissions: %w", err)
	}
	defer subRows.Close()
	for subRows.Next() {
		var s models.DocumentSubmission
		var buildingID sql.NullInt64
		if err := subRows.Scan(&s.ID, &s.ProjectID, &buildingID, &s.DocumentType, &s.SubmissionDate, &s.ApprovalDate, &s.Status, &s.ClientCode, &s.ClientResponse); err != nil {
			return snap, fmt.Errorf("failed to scan document submission: %w", err)
		}
		if buildingID.Valid {
			id := int(buildingID.Int64)
			s.BuildingID = &id
		}
		snap.Submissions = append(snap.Submissions, s)
	}
	if err := subRows.Err(); err != nil {
		return snap, fmt.Errorf("failed reading document submissions: %w", err)
	}

	if len(buildingIDs) == 0 {
		return snap, nil
	}
	parts, err := LoadPartsWithLogs(ctx, db, buildingIDs)
	if err != nil {
		return snap, err
	}
	for _, part := range parts {
		snap.PartsByBuilding[part.BuildingID] = append(snap.PartsByBuilding[part.BuildingID], part)
	}

	return snap, nil
}

// LoadPartsWithLogs fetches the assembly parts of the given buildings with
// their production logs attached in creation (id) order.
func LoadPartsWithLogs(ctx context.Context, db *sql.DB, buildingIDs []int) ([]models.AssemblyPart, error) {
	partRows, err := db.QueryContext(ctx, `
		SELECT id, building_id, part_mark, COALESCE(description, ''), quantity, net_weight_total
		FROM assembly_part
		WHERE building_id = ANY($1)
		ORDER BY id`, pq.Array(buildingIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assembly parts: %w", err)
	}
	defer partRows.Close()

	var parts []models.AssemblyPart
	index := make(map[int]int)
	var partIDs []int
	for partRows.Next() {
		var p models.AssemblyPart
		if err := partRows.Scan(&p.ID, &p.BuildingID, &p.PartMark, &p.Description, &p.Quantity, &p.NetWeightTotal); err != nil {
			return nil, fmt.Errorf("failed to scan assembly part: %w", err)
		}
		index[p.ID] = len(parts)
		parts = append(parts, p)
		partIDs = append(partIDs, p.ID)
	}
	if err := partRows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading assembly parts: %w", err)
	}
	if len(partIDs) == 0 {
		return parts, nil
	}

	logRows, err := db.QueryContext(ctx, `
		SELECT id, part_id, process_type, processed_qty, remaining_qty, log_date, created_at
		FROM production_log
		WHERE part_id = ANY($1)
		ORDER BY id`, pq.Array(partIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch production logs: %w", err)
	}
	defer logRows.Close()
	for logRows.Next() {
		var lg models.ProductionLog
		if err := logRows.Scan(&lg.ID, &lg.PartID, &lg.ProcessType, &lg.ProcessedQty, &lg.RemainingQty, &lg.LogDate, &lg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan production log: %w", err)
		}
		if i, ok := index[lg.PartID]; ok {
			parts[i].Logs = append(parts[i].Logs, lg)
		}
	}
	if err := logRows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading production logs: %w", err)
	}

	return parts, nil
}
