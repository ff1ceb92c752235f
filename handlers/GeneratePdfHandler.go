package handlers

import (
	"database/sql"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/rollup"
	"github.com/refedo/OTS-sub004/storage"
	"github.com/refedo/OTS-sub004/utils"
)

// GenerateProjectReportPDF godoc
// @Summary      Project status report as PDF
// @Description  One page per building with stage statuses and tonnage progress
// @Tags         exports
// @Produce      application/pdf
// @Param        id   path      int  true  "Project ID"
// @Success      200  {file}    file  "PDF report"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/projects/{id}/report [get]
func GenerateProjectReportPDF(db *sql.DB) gin.HandlerFunc {
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

		var project *models.ProjectRollup
		for _, pr := range rollup.BuildProjectRollups(snap) {
			if pr.ID == id {
				p := pr
				project = &p
				break
			}
		}
		if project == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found or not active"})
			return
		}

		pdf := gofpdf.New("P", "mm", "A4", "")
		pdf.SetMargins(10, 10, 10)

		pdf.AddPage()
		pdf.SetFont("Arial", "B", 18)
		pdf.Cell(190, 10, "PROJECT STATUS REPORT")
		pdf.Ln(12)

		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(95, 8, project.ProjectNumber)
		pdf.Cell(95, 8, project.Name)
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(95, 6, fmt.Sprintf("Status: %s", project.Status))
		pdf.Cell(95, 6, fmt.Sprintf("Generated: %s", time.Now().Format("02-Jan-2006")))
		pdf.Ln(12)

		for _, b := range project.Buildings {
			pdf.SetFont("Arial", "B", 12)
			pdf.Cell(190, 8, fmt.Sprintf("%s - %s", b.Designation, b.Name))
			pdf.Ln(8)

			pdf.SetFont("Arial", "", 10)
			pdf.Cell(95, 6, fmt.Sprintf("Stage progress: %.1f%%", b.Progress))
			pdf.Cell(95, 6, fmt.Sprintf("Production: %.1f%% (%.2f of %.2f tons)",
				b.ProductionProgress, b.CompletedTonnage, b.TotalTonnage))
			pdf.Ln(8)

			pdf.SetFont("Arial", "B", 10)
			pdf.SetFillColor(240, 240, 240)
			pdf.CellFormat(70, 7, "Stage", "1", 0, "L", true, 0, "")
			pdf.CellFormat(40, 7, "Status", "1", 0, "C", true, 0, "")
			pdf.CellFormat(40, 7, "Date", "1", 0, "C", true, 0, "")
			pdf.CellFormat(40, 7, "Progress", "1", 1, "C", true, 0, "")

			pdf.SetFont("Arial", "", 10)
			for _, st := range b.Stages {
				eventDate := ""
				if st.EventDate != nil {
					eventDate = st.EventDate.Format("02-Jan-2006")
				}
				progress := ""
				if st.ProgressPercentage != nil {
					progress = fmt.Sprintf("%.1f%%", *st.ProgressPercentage)
				}
				pdf.CellFormat(70, 7, st.StageName, "1", 0, "L", false, 0, "")
				pdf.CellFormat(40, 7, st.Status, "1", 0, "C", false, 0, "")
				pdf.CellFormat(40, 7, eventDate, "1", 0, "C", false, 0, "")
				pdf.CellFormat(40, 7, progress, "1", 1, "C", false, 0, "")
			}
			pdf.Ln(6)
		}

		c.Header("Content-Type", "application/pdf")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.pdf", project.ProjectNumber))
		if err := pdf.Output(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate PDF"})
		}
	}
}
