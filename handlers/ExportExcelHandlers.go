package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/rollup"
	"github.com/refedo/OTS-sub004/storage"
	"github.com/refedo/OTS-sub004/utils"
)

// ExportRollupExcel godoc
// @Summary      Export the rollup dashboard as an Excel workbook
// @Description  One Projects sheet plus one Buildings sheet with per-stage
// @Description  statuses and tonnage numbers
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}    file  "XLSX workbook"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/exports/rollups [get]
func ExportRollupExcel() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := storage.GetDB()
		ctx, cancel := utils.GetSlowQueryContext(c.Request.Context())
		defer cancel()

		snap, err := storage.LoadRollupSnapshot(ctx, db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rollup data", "details": err.Error()})
			return
		}
		rollups := rollup.BuildProjectRollups(snap)

		f := excelize.NewFile()
		defer f.Close()

		projectSheet := "Projects"
		f.SetSheetName("Sheet1", projectSheet)
		projectHeaders := []string{"Project Number", "Name", "Status", "Buildings", "Avg Progress %"}
		for i, h := range projectHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(projectSheet, cell, h)
		}

		buildingSheet := "Buildings"
		f.NewSheet(buildingSheet)
		buildingHeaders := []string{"Project Number", "Building", "Name", "Progress %", "Production %", "Total Tonnage", "Completed Tonnage", "Completed Stages", "Pending", "Not Started"}
		for i, h := range buildingHeaders {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(buildingSheet, cell, h)
		}

		buildingRow := 2
		for pi, pr := range rollups {
			var progressSum float64
			for _, b := range pr.Buildings {
				progressSum += b.Progress

				values := []interface{}{
					pr.ProjectNumber, b.Designation, b.Name,
					fmt.Sprintf("%.1f", b.Progress), fmt.Sprintf("%.1f", b.ProductionProgress),
					fmt.Sprintf("%.2f", b.TotalTonnage), fmt.Sprintf("%.2f", b.CompletedTonnage),
					b.CompletedCount, b.PendingCount, b.NotStartedCount,
				}
				for i, v := range values {
					cell, _ := excelize.CoordinatesToCellName(i+1, buildingRow)
					f.SetCellValue(buildingSheet, cell, v)
				}
				buildingRow++
			}

			avgProgress := 0.0
			if len(pr.Buildings) > 0 {
				avgProgress = progressSum / float64(len(pr.Buildings))
			}
			values := []interface{}{pr.ProjectNumber, pr.Name, pr.Status, len(pr.Buildings), fmt.Sprintf("%.1f", avgProgress)}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, pi+2)
				f.SetCellValue(projectSheet, cell, v)
			}
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=rollup_export_%s.xlsx", time.Now().Format("2006-01-02")))
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
		}
	}
}

// ExportPartsExcel godoc
// @Summary      Export a building's parts as an Excel sheet
// @Description  One row per part with per-process completion percentages
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        building_id  query  int  true  "Building ID"
// @Success      200  {file}    file  "XLSX workbook"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /api/exports/parts [get]
func ExportPartsExcel() gin.HandlerFunc {
	return func(c *gin.Context) {
		db := storage.GetDB()
		buildingID, err := strconv.Atoi(c.Query("building_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "building_id is required"})
			return
		}

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		parts, err := storage.LoadPartsWithLogs(ctx, db, []int{buildingID})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := "Parts"
		f.SetSheetName("Sheet1", sheet)

		headers := []string{"Part Mark", "Description", "Quantity", "Net Weight (kg)", "Tonnage"}
		headers = append(headers, models.ProcessTypes...)
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			f.SetCellValue(sheet, cell, h)
		}

		for row, part := range parts {
			// Latest log per process type gives the part's current percentages.
			latest := make(map[string]models.ProductionLog)
			for _, lg := range part.Logs {
				latest[lg.ProcessType] = lg
			}

			values := []interface{}{
				part.PartMark, part.Description, part.Quantity,
				part.NetWeightTotal, fmt.Sprintf("%.3f", part.TonnageTotal()),
			}
			for _, pt := range models.ProcessTypes {
				lg, ok := latest[pt]
				switch {
				case !ok:
					values = append(values, "")
				case lg.RemainingQty == 0:
					values = append(values, "100%")
				default:
					pct := float64(lg.ProcessedQty) / float64(part.EffectiveQuantity()) * 100
					values = append(values, fmt.Sprintf("%.0f%%", pct))
				}
			}

			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row+2)
				f.SetCellValue(sheet, cell, v)
			}
		}

		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment;filename=parts_building_%d.xlsx", buildingID))
		if err := f.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
		}
	}
}
