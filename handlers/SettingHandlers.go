package handlers

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
)

// GetSettings godoc
// @Summary      Get a user's settings
// @Tags         settings
// @Param        user_id  path  int  true  "User ID"
// @Success      200  {object}  models.Setting
// @Router       /api/settings/{user_id} [get]
func GetSettings(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var s models.Setting
		err = db.QueryRow(`
			SELECT id, user_id, COALESCE(language, 'en'), COALESCE(theme, 'light'),
			       COALESCE(weight_unit, 'ton'), COALESCE(notifications, true)
			FROM settings WHERE user_id = $1`, userID).
			Scan(&s.ID, &s.UserID, &s.Language, &s.Theme, &s.WeightUnit, &s.Notifications)
		if err == sql.ErrNoRows {
			// No row yet: answer with defaults instead of a 404.
			c.JSON(http.StatusOK, models.Setting{
				UserID: userID, Language: "en", Theme: "light", WeightUnit: "ton", Notifications: true,
			})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, s)
	}
}

// UpsertSettings godoc
// @Summary      Save a user's settings
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        user_id  path  int             true  "User ID"
// @Param        body     body  models.Setting  true  "Settings"
// @Success      200  {object}  models.Setting
// @Router       /api/settings/{user_id} [put]
func UpsertSettings(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}

		var s models.Setting
		if err := c.ShouldBindJSON(&s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.UserID = userID

		query := `
			INSERT INTO settings (user_id, language, theme, weight_unit, notifications)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id)
			DO UPDATE SET language=$2, theme=$3, weight_unit=$4, notifications=$5
			RETURNING id`
		if err := db.QueryRow(query, s.UserID, s.Language, s.Theme, s.WeightUnit, s.Notifications).Scan(&s.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, s)
	}
}
