package handlers

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/utils"
)

// CreateUser godoc
// @Summary      Create user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      models.User  true  "User"
// @Success      201   {object}  models.User
// @Failure      400   {object}  models.ErrorResponse
// @Router       /api/users [post]
func CreateUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var u models.User
		if err := c.ShouldBindJSON(&u); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if u.Email == "" || u.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		query := `
			INSERT INTO users (employee_id, email, password, first_name, last_name, is_admin, phone_no, role_id, department, suspended, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, false, NOW(), NOW())
			RETURNING id, created_at, updated_at`
		err = db.QueryRow(query, u.EmployeeId, u.Email, hashed, u.FirstName, u.LastName,
			u.IsAdmin, u.PhoneNo, u.RoleID, u.Department).
			Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		session, userName := sessionStamp(db, c)
		_ = SaveActivityLog(db, models.ActivityLog{
			EventContext: "Users",
			EventName:    "Post",
			Description:  "Created user " + u.Email,
			UserName:     userName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
		})

		u.Password = ""
		c.JSON(http.StatusCreated, u)
	}
}

// GetUsers godoc
// @Summary      List users
// @Tags         users
// @Success      200  {array}  models.User
// @Router       /api/users [get]
func GetUsers(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := db.Query(`
			SELECT u.id, COALESCE(u.employee_id, ''), u.email, u.first_name, u.last_name, u.is_admin,
			       COALESCE(u.phone_no, ''), u.role_id, COALESCE(r.role_name, ''), u.suspended,
			       COALESCE(u.department, ''), u.created_at, u.updated_at
			FROM users u
			LEFT JOIN roles r ON u.role_id = r.role_id
			ORDER BY u.id`)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		defer rows.Close()

		users := []models.User{}
		for rows.Next() {
			var u models.User
			if err := rows.Scan(&u.ID, &u.EmployeeId, &u.Email, &u.FirstName, &u.LastName, &u.IsAdmin,
				&u.PhoneNo, &u.RoleID, &u.RoleName, &u.Suspended, &u.Department, &u.CreatedAt, &u.UpdatedAt); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			users = append(users, u)
		}

		c.JSON(http.StatusOK, users)
	}
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Tags         users
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/users/{id} [get]
func GetUserByID(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var u models.User
		err := db.QueryRow(`
			SELECT u.id, COALESCE(u.employee_id, ''), u.email, u.first_name, u.last_name, u.is_admin,
			       COALESCE(u.phone_no, ''), u.role_id, COALESCE(r.role_name, ''), u.suspended,
			       COALESCE(u.department, ''), u.created_at, u.updated_at
			FROM users u
			LEFT JOIN roles r ON u.role_id = r.role_id
			WHERE u.id = $1`, id).
			Scan(&u.ID, &u.EmployeeId, &u.Email, &u.FirstName, &u.LastName, &u.IsAdmin,
				&u.PhoneNo, &u.RoleID, &u.RoleName, &u.Suspended, &u.Department, &u.CreatedAt, &u.UpdatedAt)
		if err == sql.ErrNoRows {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, u)
	}
}

// UpdateUser godoc
// @Summary      Update user
// @Tags         users
// @Param        id    path      int          true  "User ID"
// @Param        body  body      models.User  true  "User"
// @Success      200   {object}  models.User
// @Router       /api/users/{id} [put]
func UpdateUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var u models.User
		if err := c.ShouldBindJSON(&u); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := db.Exec(`
			UPDATE users SET employee_id=$1, first_name=$2, last_name=$3, is_admin=$4, phone_no=$5,
			       role_id=$6, department=$7, updated_at=NOW()
			WHERE id=$8`,
			u.EmployeeId, u.FirstName, u.LastName, u.IsAdmin, u.PhoneNo, u.RoleID, u.Department, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		intID, err := strconv.Atoi(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
			return
		}
		u.ID = intID
		u.Password = ""
		c.JSON(http.StatusOK, u)
	}
}

// SuspendUser godoc
// @Summary      Suspend or reinstate a user
// @Tags         users
// @Param        id    path  int     true  "User ID"
// @Param        body  body  object  true  "Suspension flag"
// @Success      200   {object}  models.MessageResponse
// @Router       /api/users/{id}/suspend [put]
func SuspendUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		var body struct {
			Suspended bool `json:"suspended"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		res, err := db.Exec(`UPDATE users SET suspended=$1, updated_at=NOW() WHERE id=$2`, body.Suspended, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		// Suspension kicks the user out of every device.
		if body.Suspended {
			_, _ = db.Exec(`DELETE FROM session WHERE user_id = $1`, id)
		}

		c.JSON(http.StatusOK, gin.H{"message": "User suspension updated"})
	}
}

// DeleteUser godoc
// @Summary      Delete user
// @Tags         users
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  models.MessageResponse
// @Router       /api/users/{id} [delete]
func DeleteUser(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		res, err := db.Exec(`DELETE FROM users WHERE id=$1`, id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		rowsAffected, _ := res.RowsAffected()
		if rowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
	}
}
