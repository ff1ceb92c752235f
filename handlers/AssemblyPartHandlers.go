package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/repository"
	"github.com/refedo/OTS-sub004/storage"
	"github.com/refedo/OTS-sub004/utils"
)

// CreateAssemblyPart godoc
// @Summary      Create assembly part
// @Description  Creates a part; the part mark is generated when omitted
// @Tags         parts
// @Accept       json
// @Produce      json
// @Param        body  body      models.AssemblyPart  true  "Part"
// @Success      201   {object}  models.AssemblyPart
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/parts [post]
func CreateAssemblyPart(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.AssemblyPart
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if p.BuildingID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "building_id is required"})
			return
		}
		if p.NetWeightTotal < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "net_weight_total cannot be negative"})
			return
		}

		building, err := repository.FetchBuildingByID(db, p.BuildingID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
			return
		}

		if p.PartMark == "" {
			seq, err := repository.NextPartSequence(db, p.BuildingID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			p.PartMark = repository.GeneratePartMark("PM", building.Designation, seq)
		}

		session, userName := sessionStamp(db, c)
		p.CreatedBy = userName

		query := `
			INSERT INTO assembly_part (building_id, part_mark, description, quantity, net_weight_total, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
			RETURNING id, created_at, updated_at`
		err = db.QueryRow(query, p.BuildingID, p.PartMark, p.Description, p.Quantity, p.NetWeightTotal, p.CreatedBy).
			Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Parts",
			EventName:    "Post",
			Description:  "Created part " + p.PartMark,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
			ProjectID:    building.ProjectID,
		})

		c.JSON(http.StatusCreated, p)
	}
}

// GetAssemblyParts godoc
// @Summary      List assembly parts of a building
// @Tags         parts
// @Param        building_id  query  int   true   "Building ID"
// @Param        with_logs    query  bool  false  "Attach production logs"
// @Success      200  {array}  models.AssemblyPart
// @Router       /api/parts [get]
func GetAssemblyParts(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		buildingID, err := strconv.Atoi(c.Query("building_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "building_id is required"})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		if c.Query("with_logs") == "true" {
			parts, err := storage.LoadPartsWithLogs(ctx, db, []int{buildingID})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, parts)
			return
		}

		rows, err := db.QueryContext(ctx, `
			SELECT id, building_id, part_mark, COALESCE(description, ''), quantity, net_weight_total,
			       COALESCE(created_by, ''), created_at, updated_at
			FROM assembly_part WHERE building_id = $1 ORDER BY id`, buildingID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		parts := []models.AssemblyPart{}
		for rows.Next() {
			var p models.AssemblyPart
			if err := rows.Scan(&p.ID, &p.BuildingID, &p.PartMark, &p.Description, &p.Quantity, &p.NetWeightTotal,
				&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			parts = append(parts, p)
		}

		c.JSON(http.StatusOK, parts)
	}
}

// GetAssemblyPartByID godoc
// @Summary      Get assembly part by ID
// @Tags         parts
// @Param        id   path      int  true  "Part ID"
// @Success      200  {object}  models.AssemblyPart
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/parts/{id} [get]
func GetAssemblyPartByID(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var p models.AssemblyPart
		err := db.QueryRow(`
			SELECT id, building_id, part_mark, COALESCE(description, ''), quantity, net_weight_total,
			       COALESCE(created_by, ''), created_at, updated_at
			FROM assembly_part WHERE id=$1`, id).
			Scan(&p.ID, &p.BuildingID, &p.PartMark, &p.Description, &p.Quantity, &p.NetWeightTotal,
				&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, p)
	}
}

// UpdateAssemblyPart godoc
// @Summary      Update assembly part
// @Tags         parts
// @Param        id    path      int                  true  "Part ID"
// @Param        body  body      models.AssemblyPart  true  "Part"
// @Success      200   {object}  models.AssemblyPart
// @Router       /api/parts/{id} [put]
func UpdateAssemblyPart(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var p models.AssemblyPart
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if p.NetWeightTotal < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "net_weight_total cannot be negative"})
			return
		}

		res, err := db.Exec(`
			UPDATE assembly_part SET part_mark=$1, description=$2, quantity=$3, net_weight_total=$4, updated_at=NOW()
			WHERE id=$5`,
			p.PartMark, p.Description, p.Quantity, p.NetWeightTotal, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}

		intID, err := strconv.Atoi(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
			return
		}
		p.ID = intID
		c.JSON(http.StatusOK, p)
	}
}

// DeleteAssemblyPart godoc
// @Summary      Delete assembly part
// @Tags         parts
// @Param        id   path      int  true  "Part ID"
// @Success      200  {object}  models.MessageResponse
// @Router       /api/parts/{id} [delete]
func DeleteAssemblyPart(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`DELETE FROM assembly_part WHERE id=$1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Part deleted successfully"})
	}
}
