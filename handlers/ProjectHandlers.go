package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/repository"
	"github.com/refedo/OTS-sub004/utils"
)

// CreateProject godoc
// @Summary      Create project
// @Description  Creates a project; the project number is generated when omitted
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        body  body      models.Project  true  "Project"
// @Success      201   {object}  models.Project
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/projects [post]
func CreateProject(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p models.Project
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if p.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Project name is required"})
			return
		}
		if p.Status == "" {
			p.Status = "Draft"
		}

		if p.ProjectNumber == "" {
			number, err := repository.GenerateProjectNumber(db)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			p.ProjectNumber = number
		}

		scopeJSON, err := json.Marshal(p.ScopeOfWork)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope of work"})
			return
		}

		session, userName := sessionStamp(db, c)
		p.CreatedBy = userName

		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		query := `
			INSERT INTO project (project_number, name, status, client_name, contract_date, down_payment_date, scope_of_work, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
			RETURNING id, created_at, updated_at`
		err = db.QueryRowContext(ctx, query,
			p.ProjectNumber, p.Name, p.Status, p.ClientName, p.ContractDate, p.DownPaymentDate, scopeJSON, p.CreatedBy,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Projects",
			EventName:    "Post",
			Description:  "Created project " + p.ProjectNumber,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
			ProjectID:    p.ID,
		})

		c.JSON(http.StatusCreated, p)
	}
}

// GetProjects godoc
// @Summary      List projects
// @Tags         projects
// @Param        status  query  string  false  "Status filter"
// @Success      200  {array}  models.Project
// @Router       /api/projects [get]
func GetProjects(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := utils.GetDefaultQueryContext(c.Request.Context())
		defer cancel()

		query := `
			SELECT id, project_number, name, status, COALESCE(client_name, ''),
			       contract_date, down_payment_date, COALESCE(scope_of_work, 'null'::jsonb),
			       COALESCE(created_by, ''), created_at, updated_at
			FROM project`
		args := []interface{}{}
		if status := c.Query("status"); status != "" {
			query += ` WHERE status = $1`
			args = append(args, status)
		}
		query += ` ORDER BY id`

		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		projects := []models.Project{}
		for rows.Next() {
			var p models.Project
			var scopeRaw []byte
			if err := rows.Scan(
				&p.ID, &p.ProjectNumber, &p.Name, &p.Status, &p.ClientName,
				&p.ContractDate, &p.DownPaymentDate, &scopeRaw,
				&p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
			); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			p.ScopeOfWork = models.ParseScopeOfWork(scopeRaw)
			projects = append(projects, p)
		}

		c.JSON(http.StatusOK, projects)
	}
}

// GetProjectByID godoc
// @Summary      Get project by ID
// @Tags         projects
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  models.Project
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/projects/{id} [get]
func GetProjectByID(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
			return
		}

		p, err := repository.FetchProjectByID(db, id)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}

		c.JSON(http.StatusOK, p)
	}
}

// UpdateProject godoc
// @Summary      Update project
// @Tags         projects
// @Param        id    path      int             true  "Project ID"
// @Param        body  body      models.Project  true  "Project"
// @Success      200   {object}  models.Project
// @Failure      404   {object}  models.ErrorResponse
// @Router       /api/projects/{id} [put]
func UpdateProject(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var p models.Project
		if err := c.ShouldBindJSON(&p); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		scopeJSON, err := json.Marshal(p.ScopeOfWork)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid scope of work"})
			return
		}

		query := `
			UPDATE project
			SET name=$1, status=$2, client_name=$3, contract_date=$4, down_payment_date=$5, scope_of_work=$6, updated_at=NOW()
			WHERE id=$7`
		res, err := db.Exec(query, p.Name, p.Status, p.ClientName, p.ContractDate, p.DownPaymentDate, scopeJSON, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}

		intID, err := strconv.Atoi(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
			return
		}
		p.ID = intID

		session, userName := sessionStamp(db, c)
		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Projects",
			EventName:    "Put",
			Description:  "Updated project " + p.Name,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
			ProjectID:    intID,
		})

		c.JSON(http.StatusOK, p)
	}
}

// DeleteProject godoc
// @Summary      Delete project
// @Tags         projects
// @Param        id   path      int  true  "Project ID"
// @Success      200  {object}  models.MessageResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/projects/{id} [delete]
func DeleteProject(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`DELETE FROM project WHERE id=$1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
			return
		}

		session, userName := sessionStamp(db, c)
		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Projects",
			EventName:    "Delete",
			Description:  "Deleted project " + id,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
		})

		c.JSON(http.StatusOK, gin.H{"message": "Project deleted successfully"})
	}
}
