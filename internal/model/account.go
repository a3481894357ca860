package model

// Account is the authenticated user as the backend sees them.
type Account struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Plan       string `json:"plan"`
	RoomsUsed  int    `json:"rooms_used"`
	RoomsQuota int    `json:"rooms_quota"`
}
