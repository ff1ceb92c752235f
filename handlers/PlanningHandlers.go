package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/refedo/OTS-sub004/models"
)

// CreateObjective godoc
// @Summary      Create planning objective
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        body  body      models.ObjectiveGorm  true  "Objective"
// @Success      201   {object}  models.ObjectiveGorm
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/planning/objectives [post]
func CreateObjective(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var obj models.ObjectiveGorm
		if err := c.ShouldBindJSON(&obj); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if obj.Title == "" || obj.Quarter == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title and quarter are required"})
			return
		}
		if obj.Status == "" {
			obj.Status = "active"
		}

		if err := gdb.Create(&obj).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, obj)
	}
}

// GetObjectives godoc
// @Summary      List planning objectives with key results
// @Tags         planning
// @Param        year     query  int     false  "Year filter"
// @Param        quarter  query  string  false  "Quarter filter"
// @Success      200  {array}  models.ObjectiveGorm
// @Router       /api/planning/objectives [get]
func GetObjectives(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := gdb.Preload("KeyResults").Order("id")
		if year := c.Query("year"); year != "" {
			y, err := strconv.Atoi(year)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
				return
			}
			query = query.Where("year = ?", y)
		}
		if quarter := c.Query("quarter"); quarter != "" {
			query = query.Where("quarter = ?", quarter)
		}

		var objectives []models.ObjectiveGorm
		if err := query.Find(&objectives).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, objectives)
	}
}

// UpdateObjective godoc
// @Summary      Update planning objective
// @Tags         planning
// @Param        id    path      int                   true  "Objective ID"
// @Param        body  body      models.ObjectiveGorm  true  "Objective"
// @Success      200   {object}  models.ObjectiveGorm
// @Router       /api/planning/objectives/{id} [put]
func UpdateObjective(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var obj models.ObjectiveGorm
		if err := gdb.First(&obj, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Objective not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var update models.ObjectiveGorm
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		obj.Title = update.Title
		obj.Description = update.Description
		obj.Quarter = update.Quarter
		obj.Year = update.Year
		obj.Status = update.Status
		if err := gdb.Save(&obj).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, obj)
	}
}

// DeleteObjective godoc
// @Summary      Delete planning objective
// @Tags         planning
// @Param        id   path      int  true  "Objective ID"
// @Success      200  {object}  models.MessageResponse
// @Router       /api/planning/objectives/{id} [delete]
func DeleteObjective(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := gdb.Delete(&models.ObjectiveGorm{}, c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Objective not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Objective deleted successfully"})
	}
}

// CreateKeyResult godoc
// @Summary      Add a key result to an objective
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        body  body      models.KeyResultGorm  true  "Key result"
// @Success      201   {object}  models.KeyResultGorm
// @Router       /api/planning/key-results [post]
func CreateKeyResult(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var kr models.KeyResultGorm
		if err := c.ShouldBindJSON(&kr); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if kr.ObjectiveID == 0 || kr.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "objective_id and title are required"})
			return
		}

		var count int64
		gdb.Model(&models.ObjectiveGorm{}).Where("id = ?", kr.ObjectiveID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Objective not found"})
			return
		}

		if err := gdb.Create(&kr).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, kr)
	}
}

// UpdateKeyResultProgress godoc
// @Summary      Update the current value of a key result
// @Tags         planning
// @Param        id    path  int     true  "Key result ID"
// @Param        body  body  object  true  "Current value"
// @Success      200   {object}  models.KeyResultGorm
// @Router       /api/planning/key-results/{id} [put]
func UpdateKeyResultProgress(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var kr models.KeyResultGorm
		if err := gdb.First(&kr, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Key result not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var body struct {
			CurrentValue float64 `json:"current_value"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		kr.CurrentValue = body.CurrentValue
		if err := gdb.Save(&kr).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, kr)
	}
}

// CreateKPIRecord godoc
// @Summary      Record a KPI value
// @Tags         planning
// @Accept       json
// @Produce      json
// @Param        body  body      models.KPIRecordGorm  true  "KPI record"
// @Success      201   {object}  models.KPIRecordGorm
// @Router       /api/planning/kpis [post]
func CreateKPIRecord(gdb *gorm.DB, db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var kpi models.KPIRecordGorm
		if err := c.ShouldBindJSON(&kpi); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if kpi.Name == "" || kpi.Department == "" || kpi.Period == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, department and period are required"})
			return
		}

		_, userName := sessionStamp(db, c)
		kpi.CreatedBy = userName

		if err := gdb.Create(&kpi).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, kpi)
	}
}

// GetKPIRecords godoc
// @Summary      List KPI records
// @Tags         planning
// @Param        department  query  string  false  "Department filter"
// @Param        period      query  string  false  "Period filter"
// @Param        project_id  query  int     false  "Project filter"
// @Success      200  {array}  models.KPIRecordGorm
// @Router       /api/planning/kpis [get]
func GetKPIRecords(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := gdb.Order("id")
		if department := c.Query("department"); department != "" {
			query = query.Where("department = ?", department)
		}
		if period := c.Query("period"); period != "" {
			query = query.Where("period = ?", period)
		}
		if projectID := c.Query("project_id"); projectID != "" {
			pid, err := strconv.Atoi(projectID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project_id"})
				return
			}
			query = query.Where("project_id = ?", pid)
		}

		var records []models.KPIRecordGorm
		if err := query.Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, records)
	}
}
