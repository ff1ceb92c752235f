package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/rollup"
	"github.com/refedo/OTS-sub004/storage"
	"github.com/refedo/OTS-sub004/utils"
)

// GetProjectRollups godoc
// @Summary      Project rollup dashboard
// @Description  Resolves every active and draft project into per-building
// @Description  stage statuses and tonnage progress
// @Tags         rollups
// @Produce      json
// @Success      200  {array}   models.ProjectRollup
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/rollups [get]
func GetProjectRollups(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetSlowQueryContext(c.Request.Context())
		defer cancel()

		snap, err := storage.LoadRollupSnapshot(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rollup data", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, rollup.BuildProjectRollups(snap))
	}
}

// GetProjectRollupByID godoc
// @Summary      Rollup for one project
// @Tags         rollups
// @Produce      json
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  models.ProjectRollup
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/rollups/{id} [get]
func GetProjectRollupByID(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
			return
		}

		ctx, cancel := utils.GetSlowQueryContext(c.Request.Context())
		defer cancel()

		snap, err := storage.LoadRollupSnapshot(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rollup data", "details": err.Error()})
			return
		}

		for _, pr := range rollup.BuildProjectRollups(snap) {
			if pr.ID == id {
				c.JSON(http.StatusOK, pr)
				return
			}
		}

		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found or not active"})
	}
}

// GetBuildingProduction godoc
// @Summary      Production progress of one building
// @Description  Per-process-type tonnage buckets plus overall completion,
// @Description  derived from the building's production logs
// @Tags         rollups
// @Produce      json
// @Param        id   path      int  true  "Building ID"
// @Success      200  {object}  models.BuildingProduction
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/buildings/{id}/production [get]
func GetBuildingProduction(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building ID"})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		var exists bool
		if err := db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM building WHERE id = $1)`, id).Scan(&exists); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !exists {
			c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
			return
		}

		parts, err := storage.LoadPartsWithLogs(ctx, db, []int{id})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		prod := rollup.AggregateProduction(id, parts)
		c.JSON(http.StatusOK, gin.H{
			"production":          prod,
			"production_progress": prod.ProductionProgress(),
			"by_process_percent":  processPercentages(prod),
		})
	}
}

func processPercentages(prod models.BuildingProduction) map[string]float64 {
	out := make(map[string]float64, len(models.ProcessTypes))
	for _, pt := range models.ProcessTypes {
		out[pt] = prod.ProcessPercentage(pt)
	}
	return out
}
