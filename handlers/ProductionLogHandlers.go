package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
)

// CreateProductionLog godoc
// @Summary      Record a production log
// @Description  Appends one process-type entry for a part. Logs are append-only;
// @Description  corrections are made by recording a newer log.
// @Tags         production
// @Accept       json
// @Produce      json
// @Param        body  body      models.ProductionLog  true  "Log entry"
// @Success      201   {object}  models.ProductionLog
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/production-logs [post]
func CreateProductionLog(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lg models.ProductionLog
		if err := c.ShouldBindJSON(&lg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if !models.IsValidProcessType(lg.ProcessType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid process type: " + lg.ProcessType})
			return
		}
		if lg.ProcessedQty < 0 || lg.RemainingQty < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantities cannot be negative"})
			return
		}
		if lg.LogDate.IsZero() {
			lg.LogDate = time.Now()
		}

		var buildingID, projectID int
		var partMark string
		err := db.QueryRow(`
			SELECT p.building_id, b.project_id, p.part_mark
			FROM assembly_part p JOIN building b ON p.building_id = b.id
			WHERE p.id = $1`, lg.PartID).Scan(&buildingID, &projectID, &partMark)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		session, userName := sessionStamp(db, c)
		lg.CreatedBy = userName

		query := `
			INSERT INTO production_log (part_id, process_type, processed_qty, remaining_qty, log_date, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW())
			RETURNING id, created_at`
		err = db.QueryRow(query, lg.PartID, lg.ProcessType, lg.ProcessedQty, lg.RemainingQty, lg.LogDate, lg.CreatedBy).
			Scan(&lg.ID, &lg.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Production",
			EventName:    "Post",
			Description:  "Logged " + lg.ProcessType + " for part " + partMark,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
			ProjectID:    projectID,
		})

		c.JSON(http.StatusCreated, lg)
	}
}

// GetProductionLogs godoc
// @Summary      List production logs of a part
// @Description  Returns logs in creation order, oldest first
// @Tags         production
// @Param        part_id       query  int     true   "Part ID"
// @Param        process_type  query  string  false  "Process type filter"
// @Success      200  {array}  models.ProductionLog
// @Router       /api/production-logs [get]
func GetProductionLogs(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		partID, err := strconv.Atoi(c.Query("part_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "part_id is required"})
			return
		}

		query := `
			SELECT id, part_id, process_type, processed_qty, remaining_qty, log_date, COALESCE(created_by, ''), created_at
			FROM production_log WHERE part_id = $1`
		args := []interface{}{partID}
		if pt := c.Query("process_type"); pt != "" {
			if !models.IsValidProcessType(pt) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid process type: " + pt})
				return
			}
			query += ` AND process_type = $2`
			args = append(args, pt)
		}
		query += ` ORDER BY id`

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		logs := []models.ProductionLog{}
		for rows.Next() {
			var lg models.ProductionLog
			if err := rows.Scan(&lg.ID, &lg.PartID, &lg.ProcessType, &lg.ProcessedQty, &lg.RemainingQty,
				&lg.LogDate, &lg.CreatedBy, &lg.CreatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			logs = append(logs, lg)
		}

		c.JSON(http.StatusOK, logs)
	}
}

// GetProcessTypes godoc
// @Summary      List tracked process types
// @Tags         production
// @Success      200  {array}  string
// @Router       /api/process-types [get]
func GetProcessTypes() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ProcessTypes)
	}
}
