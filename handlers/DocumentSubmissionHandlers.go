package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
)

// CreateDocumentSubmission godoc
// @Summary      Record a document submission
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body      models.DocumentSubmission  true  "Submission"
// @Success      201   {object}  models.DocumentSubmission
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/document-submissions [post]
func CreateDocumentSubmission(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var s models.DocumentSubmission
		if err := c.ShouldBindJSON(&s); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if s.ProjectID == 0 || s.DocumentType == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id and document_type are required"})
			return
		}
		if s.SubmissionDate == nil {
			now := time.Now()
			s.SubmissionDate = &now
		}
		if s.Status == "" {
			s.Status = "Submitted"
		}

		session, userName := sessionStamp(db, c)
		s.CreatedBy = userName

		query := `
			INSERT INTO document_submission (project_id, building_id, document_type, submission_date, approval_date, status, client_code, client_response, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
			RETURNING id, created_at`
		err := db.QueryRow(query, s.ProjectID, s.BuildingID, s.DocumentType, s.SubmissionDate, s.ApprovalDate,
			s.Status, s.ClientCode, s.ClientResponse, s.CreatedBy).
			Scan(&s.ID, &s.CreatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Documents",
			EventName:    "Post",
			Description:  "Submitted " + s.DocumentType,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
			ProjectID:    s.ProjectID,
		})

		c.JSON(http.StatusCreated, s)
	}
}

// GetDocumentSubmissions godoc
// @Summary      List document submissions of a project
// @Tags         documents
// @Param        project_id     query  int     true   "Project ID"
// @Param        document_type  query  string  false  "Document type filter"
// @Success      200  {array}  models.DocumentSubmission
// @Router       /api/document-submissions [get]
func GetDocumentSubmissions(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		projectID, err := strconv.Atoi(c.Query("project_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "project_id is required"})
			return
		}

		query := `
			SELECT id, project_id, building_id, document_type, submission_date, approval_date, status,
			       COALESCE(client_code, ''), COALESCE(client_response, ''), COALESCE(created_by, ''), created_at
			FROM document_submission WHERE project_id = $1`
		args := []interface{}{projectID}
		if docType := c.Query("document_type"); docType != "" {
			query += ` AND document_type = $2`
			args = append(args, docType)
		}
		query += ` ORDER BY id`

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		submissions := []models.DocumentSubmission{}
		for rows.Next() {
			var s models.DocumentSubmission
			var buildingID sql.NullInt64
			if err := rows.Scan(&s.ID, &s.ProjectID, &buildingID, &s.DocumentType, &s.SubmissionDate, &s.ApprovalDate,
				&s.Status, &s.ClientCode, &s.ClientResponse, &s.CreatedBy, &s.CreatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			if buildingID.Valid {
				id := int(buildingID.Int64)
				s.BuildingID = &id
			}
			submissions = append(submissions, s)
		}

		c.JSON(http.StatusOK, submissions)
	}
}

// ApproveDocumentSubmission godoc
// @Summary      Approve a document submission
// @Description  Stamps the approval date and client response on a submission
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        id    path      int     true  "Submission ID"
// @Param        body  body      object  true  "Approval details"
// @Success      200   {object}  models.DocumentSubmission
// @Failure      404   {object}  models.ErrorResponse
// @Router       /api/document-submissions/{id}/approve [put]
func ApproveDocumentSubmission(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission ID"})
			return
		}

		var approval struct {
			ApprovalDate   *time.Time `json:"approval_date"`
			ClientCode     string     `json:"client_code"`
			ClientResponse string     `json:"client_response"`
		}
		if err := c.ShouldBindJSON(&approval); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if approval.ApprovalDate == nil {
			now := time.Now()
			approval.ApprovalDate = &now
		}

		var s models.DocumentSubmission
		var buildingID sql.NullInt64
		err = db.QueryRow(`
			UPDATE document_submission
			SET approval_date=$1, status='Approved', client_code=$2, client_response=$3
			WHERE id=$4
			RETURNING id, project_id, building_id, document_type, submission_date, approval_date, status,
			          COALESCE(client_code, ''), COALESCE(client_response, ''), COALESCE(created_by, ''), created_at`,
			approval.ApprovalDate, approval.ClientCode, approval.ClientResponse, id).
			Scan(&s.ID, &s.ProjectID, &buildingID, &s.DocumentType, &s.SubmissionDate, &s.ApprovalDate,
				&s.Status, &s.ClientCode, &s.ClientResponse, &s.CreatedBy, &s.CreatedAt)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if buildingID.Valid {
			bid := int(buildingID.Int64)
			s.BuildingID = &bid
		}

		session, userName := sessionStamp(db, c)
		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Documents",
			EventName:    "Put",
			Description:  "Approved " + s.DocumentType,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
			ProjectID:    s.ProjectID,
		})

		c.JSON(http.StatusOK, s)
	}
}
