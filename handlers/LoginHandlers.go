package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/refedo/OTS-sub004/models"
	"github.com/refedo/OTS-sub004/storage"
	"github.com/refedo/OTS-sub004/utils"
)

// LoginHandler authenticates a user and opens a session
// @Summary Login user
// @Description Authenticate with email and password, returns session and tokens
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login credentials"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /api/login [post]
func LoginHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var loginData struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
			IP       string `json:"ip"`
		}
		if err := c.ShouldBindJSON(&loginData); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
			return
		}

		user, err := storage.GetUserByEmail(db, loginData.Email)
		if err != nil || !utils.ValidatePassword(user.Password, loginData.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		if user.Suspended {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}

		// Per-user setting; default allows multiple devices.
		allowMultipleSessions := true
		if err := db.QueryRow(`SELECT allow_multiple_sessions FROM settings WHERE user_id = $1`, user.ID).Scan(&allowMultipleSessions); err != nil && err != sql.ErrNoRows {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings", "details": err.Error()})
			return
		}

		sessionID := uuid.NewString()

		accessToken, err := utils.GenerateJWT(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		refreshToken, err := utils.GenerateRefreshToken(user.Email, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
			return
		}

		session := &models.Session{
			UserID:                user.ID,
			SessionID:             sessionID,
			HostName:              user.Email,
			IPAddress:             loginData.IP,
			Timestamp:             time.Now(),
			ExpiresAt:             time.Now().Add(24 * time.Hour),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresAt: time.Now().Add(15 * 24 * time.Hour),
		}
		if err := storage.SaveSession(db, session, allowMultipleSessions); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session", "details": err.Error()})
			return
		}

		logEntry := models.ActivityLog{
			EventContext: "Login",
			EventName:    "Post",
			Description:  "User logged in",
			UserName:     user.FirstName + " " + user.LastName,
			HostName:     session.HostName,
			IPAddress:    session.IPAddress,
			CreatedAt:    time.Now(),
		}
		if logErr := SaveActivityLog(db, logEntry); logErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log activity", "details": logErr.Error()})
			return
		}

		user.Password = ""
		c.JSON(http.StatusOK, models.LoginResponse{
			SessionID:    sessionID,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			User:         *user,
		})
	}
}

// refreshClaims pulls the email and session binding out of a refresh token.
func refreshClaims(token *jwt.Token) (email, sessionID string, ok bool) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", false
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", "", false
	}
	email, _ = claims["email"].(string)
	sessionID, _ = claims["sessionId"].(string)
	return email, sessionID, email != "" && sessionID != ""
}

// ValidateSessionHandler checks whether the session in the Authorization
// header is still valid
// @Summary Validate session
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Session ID"
// @Success 200 {object} object
// @Failure 401 {object} models.ErrorResponse
// @Router /api/validate-session [get]
func ValidateSessionHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := utils.SessionIDFromHeader(c.GetHeader("Authorization"))
		if sessionID == "" {
			utils.ErrorResponse(c, "No session provided", http.StatusUnauthorized)
			return
		}

		user, err := storage.GetUserBySessionID(db, sessionID)
		if err != nil {
			utils.ErrorResponse(c, "Session not found or expired", http.StatusUnauthorized)
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Session is valid", "user": user})
	}
}

// LogoutHandler closes the session in the Authorization header
// @Summary Logout
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Session ID"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/logout [post]
func LogoutHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := utils.SessionIDFromHeader(c.GetHeader("Authorization"))
		if sessionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing Authorization header"})
			return
		}

		if err := storage.DeleteSession(db, sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
			return
		}

		utils.SuccessResponse(c, "Session deleted, user logged out", http.StatusOK)
	}
}

// RefreshTokenHandler exchanges a refresh token for a new access token
// @Summary Refresh access token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body object true "Refresh token request"
// @Success 200 {object} object
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /api/refresh-token [post]
func RefreshTokenHandler(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var refreshRequest struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&refreshRequest); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token is required"})
			return
		}

		parsedToken, err := utils.ValidateJWT(refreshRequest.RefreshToken)
		if err != nil || !parsedToken.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
			return
		}

		email, sessionID, ok := refreshClaims(parsedToken)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		user, err := storage.GetUserByEmail(db, email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		if user.Suspended {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is suspended"})
			return
		}

		stored, err := storage.GetRefreshTokenBySession(db, sessionID)
		if err != nil || stored != refreshRequest.RefreshToken {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not found, expired, or refresh token mismatch"})
			return
		}

		newAccessToken, err := utils.GenerateJWT(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
			return
		}

		// Rotate the refresh token so a leaked one stops working after use.
		newRefreshToken, err := utils.GenerateRefreshToken(user.Email, sessionID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate refresh token"})
			return
		}
		if err := storage.SaveRefreshToken(db, user.ID, sessionID, newRefreshToken, time.Now().Add(15*24*time.Hour)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save refresh token", "details": err.Error()})
			return
		}

		// Extend the session alongside the new tokens.
		if _, err := db.Exec(`UPDATE session SET expires_at = $1, timestp = $2 WHERE session_id = $3`,
			time.Now().Add(24*time.Hour), time.Now(), sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update session", "details": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Token refreshed successfully",
			"access_token":  newAccessToken,
			"refresh_token": newRefreshToken,
			"session_id":    sessionID,
			"expires_in":    900,
		})
	}
}
