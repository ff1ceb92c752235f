package handlers

import (
	"database/sql"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/utils"
)

// GetSessionDetails resolves the session row and the display name of its
// owner; mutation handlers use it to stamp activity logs. The id is accepted
// raw or as the full Authorization header value.
func GetSessionDetails(db *sql.DB, sessionID string) (models.Session, string, error) {
	sessionID = utils.SessionIDFromHeader(sessionID)

	var session models.Session
	var userName string

	query := `
        SELECT s.user_id, CONCAT(u.first_name, ' ', u.last_name) AS user_name, s.host_name, s.ip_address
        FROM session s
        JOIN users u ON s.user_id = u.id
        WHERE s.session_id = $1`

	err := db.QueryRow(query, sessionID).Scan(
		&session.UserID,
		&userName,
		&session.HostName,
		&session.IPAddress,
	)
	if err != nil {
		return models.Session{}, "", err
	}
	session.SessionID = sessionID
	return session, userName, nil
}

// sessionStamp resolves the caller's session for activity-log stamping. A
// failed lookup never blocks the mutation itself; it is logged and the audit
// row carries empty session fields.
func sessionStamp(db *sql.DB, c *gin.Context) (models.Session, string) {
	session, userName, err := GetSessionDetails(db, c.GetHeader("Authorization"))
	if err != nil {
		log.Printf("session lookup for activity log failed: %v", err)
	}
	return session, userName
}

// SaveActivityLog appends one audit entry.
func SaveActivityLog(db *sql.DB, log models.ActivityLog) error {
	query := `
    INSERT INTO activity_logs (
        created_at, user_name, host_name, event_context, ip_address,
        description, event_name, project_id
    ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := db.Exec(query,
		log.CreatedAt, log.UserName, log.HostName, log.EventContext, log.IPAddress,
		log.Description, log.EventName, log.ProjectID,
	)
	return err
}

// GetActivityLogsHandler godoc
// @Summary      Get activity logs
// @Tags         activity-logs
// @Param        page        query  int     false  "Page"
// @Param        limit       query  int     false  "Limit"
// @Param        project_id  query  int     false  "Project filter"
// @Success      200         {object}  object
// @Router       /api/logs [get]
func GetActivityLogsHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}
		limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if err != nil || limit < 1 {
			limit = 10
		}
		offset := (page - 1) * limit

		where := ""
		args := []interface{}{}
		if projectID := c.Query("project_id"); projectID != "" {
			pid, err := strconv.Atoi(projectID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project_id"})
				return
			}
			where = " WHERE project_id = $1"
			args = append(args, pid)
		}

		var totalRecords int
		if err := db.QueryRow(`SELECT COUNT(*) FROM activity_logs`+where, args...).Scan(&totalRecords); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting logs"})
			return
		}

		totalPages := int(math.Ceil(float64(totalRecords) / float64(limit)))

		query := `
			SELECT id, created_at, COALESCE(user_name, ''), COALESCE(host_name, ''),
			       COALESCE(event_context, ''), COALESCE(ip_address, ''),
			       COALESCE(description, ''), COALESCE(event_name, ''), COALESCE(project_id, 0)
			FROM activity_logs` + where +
			` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2)
		args = append(args, limit, offset)

		rows, err := db.Query(query, args...)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error querying logs"})
			return
		}
		defer rows.Close()

		var logs []models.ActivityLog
		for rows.Next() {
			var log models.ActivityLog
			if err := rows.Scan(
				&log.ID, &log.CreatedAt, &log.UserName, &log.HostName, &log.EventContext,
				&log.IPAddress, &log.Description, &log.EventName, &log.ProjectID,
			); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error scanning logs"})
				return
			}
			logs = append(logs, log)
		}

		c.JSON(http.StatusOK, gin.H{
			"logs": logs,
			"pagination": gin.H{
				"current_page":  page,
				"page_size":     limit,
				"total_records": totalRecords,
				"total_pages":   totalPages,
				"has_next":      page < totalPages,
				"has_prev":      page > 1,
			},
		})
	}
}
