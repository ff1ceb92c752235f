package models

import (
	"time"

	_ "github.com/lib/pq"
)

type User struct {
	ID          int       `json:"id" example:"1"`
	EmployeeId  string    `json:"employee_id" example:"EMP001"`
	Email       string    `json:"email" example:"user@example.com"`
	Password    string    `json:"password" example:""`
	FirstName   string    `json:"first_name" example:"Ahmed"`
	LastName    string    `json:"last_name" example:"Saleh"`
	CreatedAt   time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-01-15T10:30:00Z"`
	FirstAccess time.Time `json:"first_access,omitempty" example:"2024-01-15T10:30:00Z"`
	LastAccess  time.Time `json:"last_access,omitempty" example:"2024-01-15T10:30:00Z"`
	IsAdmin     bool      `json:"is_admin" example:"false"`
	PhoneNo     string    `json:"phone_no" example:"0501234567"`
	RoleID      int       `json:"role_id" example:"1"`
	RoleName    string    `json:"role_name" example:"Production Manager"`
	Suspended   bool      `json:"suspended" example:"false"`
	Department  string    `json:"department" example:"Production"`
}

type Session struct {
	UserID                int       `json:"user_id" example:"1"`
	SessionID             string    `json:"session_id" example:""`
	HostName              string    `json:"host_name" example:"workstation-01"`
	IPAddress             string    `json:"ip_address" example:"10.0.0.12"`
	Timestamp             time.Time `json:"timestp" example:"2024-01-15T10:30:00Z"`
	ExpiresAt             time.Time `json:"expires_at" example:"2024-01-16T10:30:00Z"`
	RefreshToken          string    `json:"refresh_token,omitempty" example:""`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at,omitempty" example:"2024-01-30T10:30:00Z"`
}

type ActivityLog struct {
	ID           int       `json:"id" example:"1"`
	EventContext string    `json:"event_context" example:"Production"`
	EventName    string    `json:"event_name" example:"Create"`
	Description  string    `json:"description" example:"Logged welding for part PM-102"`
	UserName     string    `json:"user_name" example:"Ahmed Saleh"`
	HostName     string    `json:"host_name" example:"workstation-01"`
	IPAddress    string    `json:"ip_address" example:"10.0.0.12"`
	CreatedAt    time.Time `json:"created_at" example:"2024-01-15T10:30:00Z"`
	ProjectID    int       `json:"project_id" example:"1"`
}

type Setting struct {
	ID            int    `json:"id" example:"1"`
	UserID        int    `json:"user_id" example:"1"`
	Language      string `json:"language" example:"en"`
	Theme         string `json:"theme" example:"light"`
	WeightUnit    string `json:"weight_unit" example:"ton"`
	Notifications bool   `json:"notifications" example:"true"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required" example:"user@example.com"`
	Password string `json:"password" binding:"required" example:""`
}

type LoginResponse struct {
	SessionID    string `json:"session_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}
