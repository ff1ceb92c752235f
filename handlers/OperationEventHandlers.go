package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
)

// CreateOperationEvent godoc
// @Summary      Record an operation event
// @Description  Records a milestone for a project; building_id scopes it to
// @Description  one building, otherwise it applies project-wide
// @Tags         operations
// @Accept       json
// @Produce      json
// @Param        body  body      models.OperationEvent  true  "Event"
// @Success      201   {object}  models.OperationEvent
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/operation-events [post]
func CreateOperationEvent(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var e models.OperationEvent
		if err := c.ShouldBindJSON(&e); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if e.ProjectID == 0 || e.Stage == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id and stage are required"})
			return
		}

		// The stage must exist in the catalog.
		var exists bool
		if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM operation_stage_config WHERE stage_code = $1)`, e.Stage).Scan(&exists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !exists {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown stage code: " + e.Stage})
			return
		}

		if e.BuildingID != nil {
			var belongs bool
			if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM building WHERE id = $1 AND project_id = $2)`,
				*e.BuildingID, e.ProjectID).Scan(&belongs); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if !belongs {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Building does not belong to the project"})
				return
			}
		}

		if e.EventDate.IsZero() {
			e.EventDate = time.Now()
		}
		if e.Status == "" {
			e.Status = "Completed"
		}

		session, userName := sessionStamp(db, c)
		e.CreatedBy = userName

		query := `
			INSERT INTO operation_event (project_id, building_id, stage, event_date, status, remarks, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			RETURNING id, created_at`
		err := db.QueryRow(query, e.ProjectID, e.BuildingID, e.Stage, e.EventDate, e.Status, e.Remarks, e.CreatedBy).
			Scan(&e.ID, &e.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Operations",
			EventName:    "Post",
			Description:  "Recorded event " + e.Stage,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
			ProjectID:    e.ProjectID,
		})

		c.JSON(http.StatusCreated, e)
	}
}

// GetOperationEvents godoc
// @Summary      List operation events of a project
// @Tags         operations
// @Param        project_id   query  int  true   "Project ID"
// @Param        building_id  query  int  false  "Building filter"
// @Success      200  {array}  models.OperationEvent
// @Router       /api/operation-events [get]
func GetOperationEvents(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.Atoi(c.Query("project_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
			return
		}

		query := `
			SELECT id, project_id, building_id, stage, event_date, status, COALESCE(remarks, ''), COALESCE(created_by, ''), created_at
			FROM operation_event WHERE project_id = $1`
		args := []interface{}{projectID}
		if buildingID := c.Query("building_id"); buildingID != "" {
			bid, err := strconv.Atoi(buildingID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building_id"})
				return
			}
			// Project-wide events apply to every building, so include them.
			query += ` AND (building_id = $2 OR building_id IS NULL)`
			args = append(args, bid)
		}
		query += ` ORDER BY event_date, id`

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		events := []models.OperationEvent{}
		for rows.Next() {
			var e models.OperationEvent
			var buildingID sql.NullInt64
			if err := rows.Scan(&e.ID, &e.ProjectID, &buildingID, &e.Stage, &e.EventDate, &e.Status,
				&e.Remarks, &e.CreatedBy, &e.CreatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if buildingID.Valid {
				id := int(buildingID.Int64)
				e.BuildingID = &id
			}
			events = append(events, e)
		}

		c.JSON(http.StatusOK, events)
	}
}

// DeleteOperationEvent godoc
// @Summary      Delete an operation event
// @Tags         operations
// @Param        id   path      int  true  "Event ID"
// @Success      200  {object}  models.MessageResponse
// @Router       /api/operation-events/{id} [delete]
func DeleteOperationEvent(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`DELETE FROM operation_event WHERE id=$1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
	}
}
