package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/refedo/OTS-sub004/models"
)

// CreateAccountMapping godoc
// @Summary      Map a cost category to a ledger account
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        body  body      models.AccountMappingGorm  true  "Mapping"
// @Success      201   {object}  models.AccountMappingGorm
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/account-mappings [post]
func CreateAccountMapping(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var m models.AccountMappingGorm
		if err := c.ShouldBindJSON(&m); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if m.CostCategory == "" || m.AccountCode == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cost_category and account_code are required"})
			return
		}
		if m.Direction == "" {
			m.Direction = "debit"
		}
		m.Active = true

		if err := gdb.Create(&m).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, m)
	}
}

// GetAccountMappings godoc
// @Summary      List account mappings
// @Tags         accounting
// @Param        active  query  bool  false  "Only active mappings"
// @Success      200  {array}  models.AccountMappingGorm
// @Router       /api/account-mappings [get]
func GetAccountMappings(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := gdb.Order("cost_category")
		if c.Query("active") == "true" {
			query = query.Where("active = ?", true)
		}

		var mappings []models.AccountMappingGorm
		if err := query.Find(&mappings).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, mappings)
	}
}

// UpdateAccountMapping godoc
// @Summary      Update an account mapping
// @Tags         accounting
// @Param        id    path      int                        true  "Mapping ID"
// @Param        body  body      models.AccountMappingGorm  true  "Mapping"
// @Success      200   {object}  models.AccountMappingGorm
// @Router       /api/account-mappings/{id} [put]
func UpdateAccountMapping(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var m models.AccountMappingGorm
		if err := gdb.First(&m, c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var update models.AccountMappingGorm
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		m.AccountCode = update.AccountCode
		m.AccountName = update.AccountName
		m.Direction = update.Direction
		m.Active = update.Active
		if err := gdb.Save(&m).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, m)
	}
}

// DeleteAccountMapping godoc
// @Summary      Delete an account mapping
// @Tags         accounting
// @Param        id   path      int  true  "Mapping ID"
// @Success      200  {object}  models.MessageResponse
// @Router       /api/account-mappings/{id} [delete]
func DeleteAccountMapping(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := gdb.Delete(&models.AccountMappingGorm{}, c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": res.Error.Error()})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Mapping not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Mapping deleted successfully"})
	}
}
