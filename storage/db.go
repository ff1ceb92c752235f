package storage

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/refedo/OTS-sub004/models"
)

var db *sql.DB

func InitDB() *sql.DB {
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")

	connStr := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%s sslmode=disable",
		user, password, dbname, host, port)

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(2 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	return db
}

func GetDB() *sql.DB {
	return db
}

// GetUserByEmail fetches a user record by email, including the password hash
// for login verification.
func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	var u models.User
	query := `
		SELECT u.id, u.email, u.password, u.first_name, u.last_name, u.is_admin, u.role_id,
		       COALESCE(r.role_name, ''), u.suspended, COALESCE(u.department, '')
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.role_id
		WHERE u.email = $1`
	err := db.QueryRow(query, email).Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.IsAdmin, &u.RoleID,
		&u.RoleName, &u.Suspended, &u.Department,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found")
	} else if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveSession stores a new session for a user. When allowMultipleSessions is
// false all existing sessions for that user are removed first, limiting the
// account to a single device.
func SaveSession(db *sql.DB, session *models.Session, allowMultipleSessions bool) error {
	if !allowMultipleSessions {
		if _, err := db.Exec(`DELETE FROM session WHERE user_id = $1`, session.UserID); err != nil {
			return fmt.Errorf("failed to delete existing user sessions: %v", err)
		}
	}

	insertQuery := `INSERT INTO session (user_id, session_id, host_name, ip_address, timestp, expires_at, refresh_token, refresh_token_expires_at)
                    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := db.Exec(insertQuery, session.UserID, session.SessionID, session.HostName, session.IPAddress,
		session.Timestamp, session.ExpiresAt, session.RefreshToken, session.RefreshTokenExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to insert new session: %v", err)
	}
	return nil
}

// GetUserBySessionID resolves the user owning an unexpired session.
func GetUserBySessionID(db *sql.DB, sessionID string) (*models.User, error) {
	var u models.User
	query := `
		SELECT u.id, u.email, u.first_name, u.last_name, u.is_admin, u.role_id, u.suspended
		FROM session s
		JOIN users u ON s.user_id = u.id
		WHERE s.session_id = $1 AND s.expires_at > NOW()`
	err := db.QueryRow(query, sessionID).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.IsAdmin, &u.RoleID, &u.Suspended,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found or expired")
	} else if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveRefreshToken binds a refresh token to an existing session so each
// device carries its own token.
func SaveRefreshToken(db *sql.DB, userID int, sessionID string, refreshToken string, expiresAt time.Time) error {
	result, err := db.Exec(
		`UPDATE session SET refresh_token = $1, refresh_token_expires_at = $2 WHERE session_id = $3 AND user_id = $4`,
		refreshToken, expiresAt, sessionID, userID)
	if err != nil {
		return fmt.Errorf("failed to save refresh token: %v", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %v", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("session not found for session_id: %s and user_id: %d", sessionID, userID)
	}
	return nil
}

// GetRefreshTokenBySession retrieves the unexpired refresh token for a session.
func GetRefreshTokenBySession(db *sql.DB, sessionID string) (string, error) {
	var refreshToken string
	err := db.QueryRow(`
		SELECT refresh_token FROM session
		WHERE session_id = $1 AND refresh_token_expires_at > NOW()`, sessionID).Scan(&refreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh token not found: %v", err)
	}
	return refreshToken, nil
}

// DeleteSession removes one session (logout).
func DeleteSession(db *sql.DB, sessionID string) error {
	_, err := db.Exec(`DELETE FROM session WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %v", err)
	}
	return nil
}

// CleanupExpiredSessions drops sessions past their expiry. Run daily from
// the maintenance cron.
func CleanupExpiredSessions(db *sql.DB) error {
	res, err := db.Exec(`DELETE FROM session WHERE expires_at < NOW()`)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		log.Printf("Cleaned up %d expired sessions", n)
	}
	return nil
}
