package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skip2/go-qrcode"
)

// GeneratePartQRCode godoc
// @Summary      Generate a part label QR code
// @Description  Encodes the part mark with its building and project context
// @Description  as a PNG for shop-floor labels
// @Tags         qr
// @Produce      png
// @Param        id    path   int  true   "Part ID"
// @Param        size  query  int  false  "Image size in pixels (default 256)"
// @Success      200  {file}    file  "PNG image"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/parts/{id}/qr [get]
func GeneratePartQRCode(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid part ID"})
			return
		}

		var partMark, buildingDesignation, projectNumber string
		err = db.QueryRow(`
			SELECT p.part_mark, b.designation, pr.project_number
			FROM assembly_part p
			JOIN building b ON p.building_id = b.id
			JOIN project pr ON b.project_id = pr.id
			WHERE p.id = $1`, id).Scan(&partMark, &buildingDesignation, &projectNumber)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Part not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		size := 256
		if s := c.Query("size"); s != "" {
			if parsed, err := strconv.Atoi(s); err == nil && parsed >= 64 && parsed <= 1024 {
				size = parsed
			}
		}

		payload, err := json.Marshal(gin.H{
			"part_id":        id,
			"part_mark":      partMark,
			"building":       buildingDesignation,
			"project_number": projectNumber,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build QR payload"})
			return
		}

		png, err := qrcode.Encode(string(payload), qrcode.Medium, size)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate QR code"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename="+partMark+".png")
		c.Data(http.StatusOK, "image/png", png)
	}
}
