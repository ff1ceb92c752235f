package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/repository"
)

// CreateStageConfig godoc
// @Summary      Add a stage to the catalog
// @Description  Appends a stage at the end of the pipeline when order_index is omitted
// @Tags         stage-config
// @Accept       json
// @Produce      json
// @Param        body  body      models.OperationStageConfig  true  "Stage"
// @Success      201   {object}  models.OperationStageConfig
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/stage-config [post]
func CreateStageConfig(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var cfg models.OperationStageConfig
		if err := c.ShouldBindJSON(&cfg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if cfg.StageCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stage_code is required"})
			return
		}

		if cfg.OrderIndex == 0 {
			next, err := repository.NextStageOrderIndex(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			cfg.OrderIndex = next
		}

		query := `
			INSERT INTO operation_stage_config (stage_code, stage_name, order_index)
			VALUES ($1, $2, $3) RETURNING id`
		err := db.QueryRow(query, cfg.StageCode, cfg.StageName, cfg.OrderIndex).Scan(&cfg.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, cfg)
	}
}

// GetStageConfigs godoc
// @Summary      List the stage catalog in pipeline order
// @Tags         stage-config
// @Success      200  {array}  models.OperationStageConfig
// @Router       /api/stage-config [get]
func GetStageConfigs(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(`
			SELECT id, stage_code, stage_name, order_index
			FROM operation_stage_config ORDER BY order_index`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		configs := []models.OperationStageConfig{}
		for rows.Next() {
			var cfg models.OperationStageConfig
			if err := rows.Scan(&cfg.ID, &cfg.StageCode, &cfg.StageName, &cfg.OrderIndex); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			configs = append(configs, cfg)
		}

		c.JSON(http.StatusOK, configs)
	}
}

// UpdateStageConfig godoc
// @Summary      Update a stage catalog entry
// @Tags         stage-config
// @Param        id    path      int                          true  "Stage ID"
// @Param        body  body      models.OperationStageConfig  true  "Stage"
// @Success      200   {object}  models.OperationStageConfig
// @Router       /api/stage-config/{id} [put]
func UpdateStageConfig(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var cfg models.OperationStageConfig
		if err := c.ShouldBindJSON(&cfg); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := db.Exec(`UPDATE operation_stage_config SET stage_name=$1, order_index=$2 WHERE id=$3`,
			cfg.StageName, cfg.OrderIndex, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stage not found"})
			return
		}

		intID, err := strconv.Atoi(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid stage ID"})
			return
		}
		cfg.ID = intID
		c.JSON(http.StatusOK, cfg)
	}
}

// DeleteStageConfig godoc
// @Summary      Remove a stage from the catalog
// @Tags         stage-config
// @Param        id   path      int  true  "Stage ID"
// @Success      200  {object}  models.MessageResponse
// @Router       /api/stage-config/{id} [delete]
func DeleteStageConfig(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`DELETE FROM operation_stage_config WHERE id=$1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Stage not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Stage deleted successfully"})
	}
}
