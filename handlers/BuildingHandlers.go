package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
)

// CreateBuilding godoc
// @Summary      Create building
// @Tags         buildings
// @Accept       json
// @Produce      json
// @Param        body  body      models.Building  true  "Building"
// @Success      201   {object}  models.Building
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/buildings [post]
func CreateBuilding(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var b models.Building
		if err := c.ShouldBindJSON(&b); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if b.ProjectID == 0 || b.Designation == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id and designation are required"})
			return
		}

		var exists bool
		if err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM project WHERE id = $1)`, b.ProjectID).Scan(&exists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}

		session, userName := sessionStamp(db, c)
		b.CreatedBy = userName

		query := `
			INSERT INTO building (project_id, designation, name, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, NOW(), NOW())
			RETURNING id, created_at, updated_at`
		err := db.QueryRow(query, b.ProjectID, b.Designation, b.Name, b.CreatedBy).
			Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Buildings",
			EventName:    "Post",
			Description:  "Created building " + b.Designation,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
			ProjectID:    b.ProjectID,
		})

		c.JSON(http.StatusCreated, b)
	}
}

// GetBuildings godoc
// @Summary      List buildings
// @Tags         buildings
// @Param        project_id  query  int  false  "Project filter"
// @Success      200  {array}  models.Building
// @Router       /api/buildings [get]
func GetBuildings(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := `
			SELECT id, project_id, designation, name, COALESCE(created_by, ''), created_at, updated_at
			FROM building`
		args := []interface{}{}
		if projectID := c.Query("project_id"); projectID != "" {
			pid, err := strconv.Atoi(projectID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project_id"})
				return
			}
			query += ` WHERE project_id = $1`
			args = append(args, pid)
		}
		query += ` ORDER BY id`

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		buildings := []models.Building{}
		for rows.Next() {
			var b models.Building
			if err := rows.Scan(&b.ID, &b.ProjectID, &b.Designation, &b.Name, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			buildings = append(buildings, b)
		}

		c.JSON(http.StatusOK, buildings)
	}
}

// GetBuildingByID godoc
// @Summary      Get building by ID
// @Tags         buildings
// @Param        id   path      int  true  "Building ID"
// @Success      200  {object}  models.Building
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/buildings/{id} [get]
func GetBuildingByID(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var b models.Building
		err := db.QueryRow(`
			SELECT id, project_id, designation, name, COALESCE(created_by, ''), created_at, updated_at
			FROM building WHERE id=$1`, id).
			Scan(&b.ID, &b.ProjectID, &b.Designation, &b.Name, &b.CreatedBy, &b.CreatedAt, &b.UpdatedAt)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, b)
	}
}

// UpdateBuilding godoc
// @Summary      Update building
// @Tags         buildings
// @Param        id    path      int              true  "Building ID"
// @Param        body  body      models.Building  true  "Building"
// @Success      200   {object}  models.Building
// @Router       /api/buildings/{id} [put]
func UpdateBuilding(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var b models.Building
		if err := c.ShouldBindJSON(&b); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := db.Exec(`UPDATE building SET designation=$1, name=$2, updated_at=NOW() WHERE id=$3`,
			b.Designation, b.Name, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
			return
		}

		intID, err := strconv.Atoi(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building ID"})
			return
		}
		b.ID = intID

		session, userName := sessionStamp(db, c)
		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Buildings",
			EventName:    "Put",
			Description:  "Updated building " + b.Designation,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
			ProjectID:    b.ProjectID,
		})

		c.JSON(http.StatusOK, b)
	}
}

// DeleteBuilding godoc
// @Summary      Delete building
// @Tags         buildings
// @Param        id   path      int  true  "Building ID"
// @Success      200  {object}  models.MessageResponse
// @Router       /api/buildings/{id} [delete]
func DeleteBuilding(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`DELETE FROM building WHERE id=$1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
			return
		}

		session, userName := sessionStamp(db, c)
		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Buildings",
			EventName:    "Delete",
			Description:  "Deleted building " + id,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
		})

		c.JSON(http.StatusOK, gin.H{"message": "Building deleted successfully"})
	}
}
