package models

type ErrorResponse struct {
	Error   string `json:"error" example:"Invalid session"`
	Details string `json:"details,omitempty" example:""`
}

type MessageResponse struct {
	Message string `json:"message" example:"Deleted successfully"`
}
