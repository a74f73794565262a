package models

// Session mirrors the hash the auth service writes to Redis under
// "session:<token>". This service only reads it to resolve the caller.
type Session struct {
	SessionToken string `json:"session_token"`
	UserID       string `json:"user_id"`
	CreatedAt    string `json:"created_at"`
	ExpiresAt    string `json:"expires_at"`
	LastActivity string `json:"last_activity"`
}
