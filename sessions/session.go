package sessions

// Session binds a user to their current valid refresh token. At most one
// session exists per user; a new login replaces the previous one.
type Session struct {
	UserID       string `json:"user_id"`
	RefreshToken string `json:"refresh_token"`
}
